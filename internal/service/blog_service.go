package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yourEmotion/blog/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sqlStoreLabel = "sql"

// BlogService is the gorm-backed PostStore.
type BlogService struct {
	db *gorm.DB
}

func NewBlogService(db *gorm.DB) *BlogService {
	return &BlogService{db: db}
}

func (s *BlogService) Init(ctx context.Context) error {
	defer observe(sqlStoreLabel, "init", time.Now())
	if err := s.db.WithContext(ctx).AutoMigrate(&models.Post{}); err != nil {
		return storageErr("migrate posts", err)
	}
	return nil
}

func (s *BlogService) Create(ctx context.Context, in models.CreatePostInput) (*models.Post, error) {
	defer observe(sqlStoreLabel, "create", time.Now())
	if err := ValidateCreate(in); err != nil {
		return nil, err
	}

	ts := now()
	post := models.Post{
		Title:     in.Title,
		Content:   in.Content,
		Excerpt:   in.Excerpt,
		Author:    in.Author,
		Published: in.Published,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, storageErr("create post", err)
	}
	return &post, nil
}

func (s *BlogService) GetByID(ctx context.Context, id int64) (*models.Post, bool, error) {
	defer observe(sqlStoreLabel, "get", time.Now())
	if err := validateID(id); err != nil {
		return nil, false, err
	}

	var post models.Post
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storageErr("get post", err)
	}
	return &post, true, nil
}

func (s *BlogService) ListPublished(ctx context.Context) ([]models.Post, error) {
	defer observe(sqlStoreLabel, "list_published", time.Now())
	posts := make([]models.Post, 0)
	if err := s.newest(ctx).Where("published = ?", true).Find(&posts).Error; err != nil {
		return nil, storageErr("list published posts", err)
	}
	return posts, nil
}

func (s *BlogService) ListAll(ctx context.Context) ([]models.Post, error) {
	defer observe(sqlStoreLabel, "list_all", time.Now())
	posts := make([]models.Post, 0)
	if err := s.newest(ctx).Find(&posts).Error; err != nil {
		return nil, storageErr("list posts", err)
	}
	return posts, nil
}

func (s *BlogService) Update(ctx context.Context, id int64, patch models.PostPatch) (*models.Post, error) {
	defer observe(sqlStoreLabel, "update", time.Now())
	if err := validateID(id); err != nil {
		return nil, err
	}
	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}

	cols := patch.Columns()
	var post models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Take(&post).Error; err != nil {
			return err
		}
		// updated_at never moves backwards, even if the clock does
		ts := now()
		if ts.Before(post.UpdatedAt) {
			ts = post.UpdatedAt
		}
		cols["updated_at"] = ts

		res := tx.Model(&models.Post{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", id).Take(&post).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, storageErr("update post", err)
	}
	return &post, nil
}

func (s *BlogService) Delete(ctx context.Context, id int64) (bool, error) {
	defer observe(sqlStoreLabel, "delete", time.Now())
	if err := validateID(id); err != nil {
		return false, err
	}

	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if res.Error != nil {
		return false, storageErr("delete post", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *BlogService) Search(ctx context.Context, query string) ([]models.Post, error) {
	defer observe(sqlStoreLabel, "search", time.Now())
	q, err := ValidateQuery(query)
	if err != nil {
		return nil, err
	}

	pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
	posts := make([]models.Post, 0)
	err = s.newest(ctx).
		Where("published = ?", true).
		Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\' OR LOWER(excerpt) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern).
		Find(&posts).Error
	if err != nil {
		return nil, storageErr("search posts", err)
	}
	return posts, nil
}

func (s *BlogService) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return storageErr("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return storageErr("ping", err)
	}
	return nil
}

func (s *BlogService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	zap.L().Info("Closing database connection")
	return sqlDB.Close()
}

func (s *BlogService) newest(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Order("created_at desc").Order("id desc")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
