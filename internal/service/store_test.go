package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourEmotion/blog/internal/config"
	"github.com/yourEmotion/blog/internal/models"
	"github.com/yourEmotion/blog/internal/service"
)

func ptr[T any](v T) *T { return &v }

// stores returns a fresh instance of every PostStore implementation.
func stores(t *testing.T) map[string]service.PostStore {
	t.Helper()

	db, err := config.InitDB(config.DatabaseConfig{Driver: config.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	sqlStore := service.NewBlogService(db)
	require.NoError(t, sqlStore.Init(context.Background()))
	t.Cleanup(func() { _ = sqlStore.Close() })

	return map[string]service.PostStore{
		"memory": service.NewMemoryService(),
		"sqlite": sqlStore,
	}
}

func forEachStore(t *testing.T, fn func(t *testing.T, s service.PostStore)) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			fn(t, s)
		})
	}
}

func mustCreate(t *testing.T, s service.PostStore, in models.CreatePostInput) *models.Post {
	t.Helper()
	p, err := s.Create(context.Background(), in)
	require.NoError(t, err)
	return p
}

func published(title, content, excerpt string) models.CreatePostInput {
	return models.CreatePostInput{Title: title, Content: content, Excerpt: excerpt, Author: "Amy", Published: true}
}

func ids(posts []models.Post) []uint64 {
	out := make([]uint64, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func TestCreate(t *testing.T) {
	forEachStore(t, func(t *testing.T, s service.PostStore) {
		ctx := context.Background()
		seen := map[uint64]bool{}
		for i := 0; i < 3; i++ {
			p := mustCreate(t, s, published("Hello", "World body", "Hi"))
			assert.NotZero(t, p.ID)
			assert.False(t, seen[p.ID], "id %d reused", p.ID)
			seen[p.ID] = true
			assert.True(t, p.CreatedAt.Equal(p.UpdatedAt))
			assert.False(t, p.CreatedAt.IsZero())
		}

		draft := mustCreate(t, s, models.CreatePostInput{Title: "t", Content: "c", Excerpt: "e", Author: "a"})
		assert.False(t, draft.Published)

		got, found, err := s.GetByID(ctx, int64(draft.ID))
		require.NoError(t, err)
		require.True(t, found)
		assert.False(t, got.Published)
		assert.Equal(t, "t", got.Title)
		assert.True(t, got.CreatedAt.Equal(draft.CreatedAt))
	})
}

func TestCreateValidation(t *testing.T) {
	cases := []struct {
		name string
		in   models.CreatePostInput
	}{
		{"missing title", models.CreatePostInput{Content: "c", Excerpt: "e", Author: "a"}},
		{"missing content", models.CreatePostInput{Title: "t", Excerpt: "e", Author: "a"}},
		{"missing excerpt", models.CreatePostInput{Title: "t", Content: "c", Author: "a"}},
		{"blank author", models.CreatePostInput{Title: "t", Content: "c", Excerpt: "e", Author: "   "}},
	}

	forEachStore(t, func(t *testing.T, s service.PostStore) {
		for _, tc := range cases {
			_, err := s.Create(context.Background(), tc.in)
			var ve *service.ValidationError
			assert.True(t, errors.As(err, &ve), tc.name)
		}

		all, err := s.ListAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestGetByID(t *testing.T) {
	forEachStore(t, func(t *testing.T, s service.PostStore) {
		ctx := context.Background()
		p := mustCreate(t, s, published("Hello", "World", "Hi"))

		got, found, err := s.GetByID(ctx, int64(p.ID))
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, "Hello", got.Title)

		got, found, err = s.GetByID(ctx, int64(p.ID)+100)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, got)

		_, _, err = s.GetByID(ctx, 0)
		assert.True(t, service.IsValidation(err))
		_, _, err = s.GetByID(ctx, -4)
		assert.True(t, service.IsValidation(err))
	})
}

func TestListPublished(t *testing.T) {
	forEachStore(t, func(t *testing.T, s service.PostStore) {
		ctx := context.Background()

		posts, err := s.ListPublished(ctx)
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)

		first := mustCreate(t, s, published("one", "c", "e"))
		draft := mustCreate(t, s, models.CreatePostInput{Title: "draft", Content: "c", Excerpt: "e", Author: "a"})
		third := mustCreate(t, s, published("three", "c", "e"))

		posts, err = s.ListPublished(ctx)
		require.NoError(t, err)
		assert.Equal(t, []uint64{third.ID, first.ID}, ids(posts))
		for _, p := range posts {
			assert.True(t, p.Published)
		}

		all, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []uint64{third.ID, draft.ID, first.ID}, ids(all))
	})
}

func TestUpdate(t *testing.T) {
	forEachStore(t, func(t *testing.T, s service.PostStore) {
		ctx := context.Background()
		orig := mustCreate(t, s, published("Hello", "World body", "Hi"))

		updated, err := s.Update(ctx, int64(orig.ID), models.PostPatch{Title: ptr("Hello again")})
		require.NoError(t, err)
		assert.Equal(t, orig.ID, updated.ID)
		assert.Equal(t, "Hello again", updated.Title)
		assert.Equal(t, orig.Content, updated.Content)
		assert.Equal(t, orig.Excerpt, updated.Excerpt)
		assert.Equal(t, orig.Author, updated.Author)
		assert.True(t, updated.Published)
		assert.True(t, updated.CreatedAt.Equal(orig.CreatedAt))
		assert.False(t, updated.UpdatedAt.Before(orig.UpdatedAt))

		// explicit false is applied, not treated as absent
		unpublished, err := s.Update(ctx, int64(orig.ID), models.PostPatch{Published: ptr(false)})
		require.NoError(t, err)
		assert.False(t, unpublished.Published)
		assert.Equal(t, "Hello again", unpublished.Title)
		assert.False(t, unpublished.UpdatedAt.Before(updated.UpdatedAt))

		touched, err := s.Update(ctx, int64(orig.ID), models.PostPatch{})
		require.NoError(t, err)
		assert.False(t, touched.UpdatedAt.Before(unpublished.UpdatedAt))

		stored, found, err := s.GetByID(ctx, int64(orig.ID))
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "Hello again", stored.Title)
		assert.False(t, stored.Published)
	})
}

func TestUpdateErrors(t *testing.T) {
	forEachStore(t, func(t *testing.T, s service.PostStore) {
		ctx := context.Background()
		p := mustCreate(t, s, published("Hello", "World", "Hi"))

		_, err := s.Update(ctx, int64(p.ID)+100, models.PostPatch{Title: ptr("x")})
		assert.ErrorIs(t, err, service.ErrPostNotFound)

		_, err = s.Update(ctx, int64(p.ID), models.PostPatch{Title: ptr("  ")})
		assert.True(t, service.IsValidation(err))

		_, err = s.Update(ctx, 0, models.PostPatch{Title: ptr("x")})
		assert.True(t, service.IsValidation(err))

		stored, _, err := s.GetByID(ctx, int64(p.ID))
		require.NoError(t, err)
		assert.Equal(t, "Hello", stored.Title)
		assert.True(t, stored.UpdatedAt.Equal(p.UpdatedAt))
	})
}

func TestDelete(t *testing.T) {
	forEachStore(t, func(t *testing.T, s service.PostStore) {
		ctx := context.Background()
		keep := mustCreate(t, s, published("keep", "c", "e"))
		gone := mustCreate(t, s, published("gone", "c", "e"))

		deleted, err := s.Delete(ctx, int64(gone.ID)+100)
		require.NoError(t, err)
		assert.False(t, deleted)
		all, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		deleted, err = s.Delete(ctx, int64(gone.ID))
		require.NoError(t, err)
		assert.True(t, deleted)

		_, found, err := s.GetByID(ctx, int64(gone.ID))
		require.NoError(t, err)
		assert.False(t, found)

		deleted, err = s.Delete(ctx, int64(gone.ID))
		require.NoError(t, err)
		assert.False(t, deleted)

		next := mustCreate(t, s, published("next", "c", "e"))
		assert.NotEqual(t, gone.ID, next.ID)
		assert.NotEqual(t, keep.ID, next.ID)
	})
}

func TestSearch(t *testing.T) {
	forEachStore(t, func(t *testing.T, s service.PostStore) {
		ctx := context.Background()
		inTitle := mustCreate(t, s, published("Go Concurrency", "body", "summary"))
		inContent := mustCreate(t, s, published("Other", "all about GOROUTINES", "summary"))
		inExcerpt := mustCreate(t, s, published("Third", "body", "a goal for the year"))
		_ = mustCreate(t, s, models.CreatePostInput{Title: "Go drafts", Content: "go", Excerpt: "go", Author: "a"})
		_ = mustCreate(t, s, models.CreatePostInput{Title: "Nope", Content: "c", Excerpt: "e", Author: "Gopher", Published: true})
		percent := mustCreate(t, s, published("100% organic", "body", "summary"))

		got, err := s.Search(ctx, "go")
		require.NoError(t, err)
		assert.Equal(t, []uint64{inExcerpt.ID, inContent.ID, inTitle.ID}, ids(got))

		got, err = s.Search(ctx, "WORLD")
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = s.Search(ctx, "%")
		require.NoError(t, err)
		assert.Equal(t, []uint64{percent.ID}, ids(got))

		got, err = s.Search(ctx, "_")
		require.NoError(t, err)
		assert.Empty(t, got)

		_, err = s.Search(ctx, "")
		assert.True(t, service.IsValidation(err))
		_, err = s.Search(ctx, "   ")
		assert.True(t, service.IsValidation(err))
	})
}

func TestSearchFoldsUnicodeCase(t *testing.T) {
	forEachStore(t, func(t *testing.T, s service.PostStore) {
		ctx := context.Background()
		ecole := mustCreate(t, s, published("École d'été", "body", "summary"))
		strasse := mustCreate(t, s, published("Other", "Die GROSSE Straße", "summary"))

		got, err := s.Search(ctx, "école")
		require.NoError(t, err)
		assert.Equal(t, []uint64{ecole.ID}, ids(got))

		got, err = s.Search(ctx, "ÉTÉ")
		require.NoError(t, err)
		assert.Equal(t, []uint64{ecole.ID}, ids(got))

		got, err = s.Search(ctx, "STRASSE")
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = s.Search(ctx, "STRAßE")
		require.NoError(t, err)
		assert.Equal(t, []uint64{strasse.ID}, ids(got))
	})
}

func TestPing(t *testing.T) {
	forEachStore(t, func(t *testing.T, s service.PostStore) {
		assert.NoError(t, s.Ping(context.Background()))
	})
}
