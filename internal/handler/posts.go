// Package handler exposes the post store over HTTP.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourEmotion/blog/internal/models"
	"github.com/yourEmotion/blog/internal/service"
	"go.uber.org/zap"
)

type PostHandler struct {
	store service.PostStore
}

func NewPostHandler(store service.PostStore) *PostHandler {
	return &PostHandler{store: store}
}

// Register mounts the post and search routes on r.
func (h *PostHandler) Register(r gin.IRoutes) {
	r.GET("/posts", h.listPosts)
	r.POST("/posts", h.createPost)
	r.GET("/posts/:id", h.getPost)
	r.PUT("/posts/:id", h.updatePost)
	r.DELETE("/posts/:id", h.deletePost)
	r.GET("/search", h.searchPosts)
}

func (h *PostHandler) listPosts(c *gin.Context) {
	var (
		posts []models.Post
		err   error
	)
	switch c.DefaultQuery("status", "published") {
	case "published":
		posts, err = h.store.ListPublished(c.Request.Context())
	case "all":
		posts, err = h.store.ListAll(c.Request.Context())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}
	if err != nil {
		h.fail(c, err, "Failed to fetch posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *PostHandler) createPost(c *gin.Context) {
	var in models.CreatePostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := service.ValidateCreate(in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title, content, excerpt, and author are required"})
		return
	}

	post, err := h.store.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, "Failed to create post")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

func (h *PostHandler) getPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, found, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to fetch post")
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *PostHandler) updatePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var patch models.PostPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := service.ValidatePatch(patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.store.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.fail(c, err, "Failed to update post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *PostHandler) deletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to delete post")
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func (h *PostHandler) searchPosts(c *gin.Context) {
	query := c.Query("q")
	if _, err := service.ValidateQuery(query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	posts, err := h.store.Search(c.Request.Context(), query)
	if err != nil {
		h.fail(c, err, "Failed to search posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "query": query})
}

// parseID writes a 400 and reports false when the :id segment is not a
// positive integer.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return 0, false
	}
	return id, true
}

// fail maps store errors to responses. Validation and not-found errors are
// the caller's fault; anything else is logged and hidden behind msg.
func (h *PostHandler) fail(c *gin.Context, err error, msg string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, service.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	default:
		zap.L().Error(msg,
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
