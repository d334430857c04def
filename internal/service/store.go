package service

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/yourEmotion/blog/internal/models"
)

// PostStore is the persistence boundary for posts. Handlers only ever talk to
// this interface.
type PostStore interface {
	// Init prepares the backing storage, creating the posts table if needed.
	Init(ctx context.Context) error
	Create(ctx context.Context, in models.CreatePostInput) (*models.Post, error)
	// GetByID reports found=false for an unknown id instead of failing.
	GetByID(ctx context.Context, id int64) (*models.Post, bool, error)
	// ListPublished returns published posts, newest first.
	ListPublished(ctx context.Context) ([]models.Post, error)
	// ListAll returns every post including drafts, newest first.
	ListAll(ctx context.Context) ([]models.Post, error)
	// Update overwrites the supplied fields and returns ErrPostNotFound for an unknown id.
	Update(ctx context.Context, id int64, patch models.PostPatch) (*models.Post, error)
	// Delete reports whether a post was removed.
	Delete(ctx context.Context, id int64) (bool, error)
	// Search matches published posts whose title, content or excerpt
	// contains the query, ignoring case (Unicode simple case folding).
	Search(ctx context.Context, query string) ([]models.Post, error)
	Ping(ctx context.Context) error
	Close() error
}

// Время выполнения операций хранилища по бэкенду (sql, memory) и операции
var storeOpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "blog_store_operation_duration_seconds",
	Help:    "Time taken by post store operations",
	Buckets: prometheus.DefBuckets,
}, []string{"store", "operation"})

func init() {
	prometheus.MustRegister(storeOpDuration)
}

func observe(store, op string, start time.Time) {
	storeOpDuration.WithLabelValues(store, op).Observe(time.Since(start).Seconds())
}

func validateID(id int64) error {
	if id <= 0 {
		return &ValidationError{Field: "id", Message: "must be a positive integer"}
	}
	return nil
}

// ValidateCreate checks that every required field is non-blank.
func ValidateCreate(in models.CreatePostInput) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"title", in.Title},
		{"content", in.Content},
		{"excerpt", in.Excerpt},
		{"author", in.Author},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{
			Field:   strings.Join(missing, ","),
			Message: "title, content, excerpt, and author are required",
		}
	}
	return nil
}

// ValidatePatch rejects supplied text fields that are blank.
func ValidatePatch(p models.PostPatch) error {
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"title", p.Title},
		{"content", p.Content},
		{"excerpt", p.Excerpt},
		{"author", p.Author},
	} {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return &ValidationError{Field: f.name, Message: "must not be empty"}
		}
	}
	return nil
}

// ValidateQuery returns the trimmed query or a ValidationError when it is blank.
func ValidateQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", &ValidationError{Field: "q", Message: "search query is required"}
	}
	return q, nil
}

// now returns the current time at the precision every backend can store.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
