package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yourEmotion/blog/internal/models"
)

const memoryStoreLabel = "memory"

// MemoryService keeps posts in process memory. It is meant for local
// development and tests; nothing survives a restart.
type MemoryService struct {
	mu     sync.RWMutex
	posts  map[uint64]models.Post
	nextID uint64
}

// NewMemoryService returns an empty store preloaded with the given posts.
// Seed ids and timestamps are kept as provided.
func NewMemoryService(seed ...models.Post) *MemoryService {
	s := &MemoryService{
		posts:  make(map[uint64]models.Post, len(seed)),
		nextID: 1,
	}
	for _, p := range seed {
		if p.ID == 0 {
			p.ID = s.nextID
		}
		s.posts[p.ID] = p
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	return s
}

func (s *MemoryService) Init(ctx context.Context) error {
	return nil
}

func (s *MemoryService) Create(ctx context.Context, in models.CreatePostInput) (*models.Post, error) {
	defer observe(memoryStoreLabel, "create", time.Now())
	if err := ValidateCreate(in); err != nil {
		return nil, err
	}

	ts := now()
	s.mu.Lock()
	defer s.mu.Unlock()
	post := models.Post{
		ID:        s.nextID,
		Title:     in.Title,
		Content:   in.Content,
		Excerpt:   in.Excerpt,
		Author:    in.Author,
		Published: in.Published,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	s.nextID++
	s.posts[post.ID] = post
	return &post, nil
}

func (s *MemoryService) GetByID(ctx context.Context, id int64) (*models.Post, bool, error) {
	defer observe(memoryStoreLabel, "get", time.Now())
	if err := validateID(id); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[uint64(id)]
	if !ok {
		return nil, false, nil
	}
	return &post, true, nil
}

func (s *MemoryService) ListPublished(ctx context.Context) ([]models.Post, error) {
	defer observe(memoryStoreLabel, "list_published", time.Now())
	return s.collect(func(p models.Post) bool { return p.Published }), nil
}

func (s *MemoryService) ListAll(ctx context.Context) ([]models.Post, error) {
	defer observe(memoryStoreLabel, "list_all", time.Now())
	return s.collect(func(models.Post) bool { return true }), nil
}

func (s *MemoryService) Update(ctx context.Context, id int64, patch models.PostPatch) (*models.Post, error) {
	defer observe(memoryStoreLabel, "update", time.Now())
	if err := validateID(id); err != nil {
		return nil, err
	}
	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[uint64(id)]
	if !ok {
		return nil, ErrPostNotFound
	}
	patch.Apply(&post)
	if ts := now(); ts.After(post.UpdatedAt) {
		post.UpdatedAt = ts
	}
	s.posts[post.ID] = post
	return &post, nil
}

func (s *MemoryService) Delete(ctx context.Context, id int64) (bool, error) {
	defer observe(memoryStoreLabel, "delete", time.Now())
	if err := validateID(id); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[uint64(id)]; !ok {
		return false, nil
	}
	delete(s.posts, uint64(id))
	return true, nil
}

func (s *MemoryService) Search(ctx context.Context, query string) ([]models.Post, error) {
	defer observe(memoryStoreLabel, "search", time.Now())
	q, err := ValidateQuery(query)
	if err != nil {
		return nil, err
	}

	q = strings.ToLower(q)
	return s.collect(func(p models.Post) bool {
		return p.Published && (strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Content), q) ||
			strings.Contains(strings.ToLower(p.Excerpt), q))
	}), nil
}

func (s *MemoryService) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryService) Close() error {
	return nil
}

// collect returns matching posts ordered newest first, ties broken by id.
func (s *MemoryService) collect(match func(models.Post) bool) []models.Post {
	s.mu.RLock()
	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if match(p) {
			out = append(out, p)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
