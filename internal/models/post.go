package models

import (
	"time"
)

type Post struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"type:text;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Excerpt   string    `gorm:"type:text;not null" json:"excerpt"`
	Author    string    `gorm:"type:text;not null" json:"author"`
	Published bool      `gorm:"not null;default:false" json:"published"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// CreatePostInput is the payload accepted when creating a post.
// An omitted published flag creates a draft.
type CreatePostInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Excerpt   string `json:"excerpt"`
	Author    string `json:"author"`
	Published bool   `json:"published"`
}

// PostPatch carries a partial update. A nil field is left untouched.
type PostPatch struct {
	Title     *string `json:"title,omitempty"`
	Content   *string `json:"content,omitempty"`
	Excerpt   *string `json:"excerpt,omitempty"`
	Author    *string `json:"author,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

// Apply copies every supplied field of the patch onto p.
func (pp PostPatch) Apply(p *Post) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Content != nil {
		p.Content = *pp.Content
	}
	if pp.Excerpt != nil {
		p.Excerpt = *pp.Excerpt
	}
	if pp.Author != nil {
		p.Author = *pp.Author
	}
	if pp.Published != nil {
		p.Published = *pp.Published
	}
}

// Columns returns the supplied fields keyed by column name.
func (pp PostPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 5)
	if pp.Title != nil {
		cols["title"] = *pp.Title
	}
	if pp.Content != nil {
		cols["content"] = *pp.Content
	}
	if pp.Excerpt != nil {
		cols["excerpt"] = *pp.Excerpt
	}
	if pp.Author != nil {
		cols["author"] = *pp.Author
	}
	if pp.Published != nil {
		cols["published"] = *pp.Published
	}
	return cols
}
