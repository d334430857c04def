package service

import (
	"time"

	"github.com/yourEmotion/blog/internal/models"
)

// FixturePosts returns the sample posts used to seed development stores.
func FixturePosts() []models.Post {
	at := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}
	return []models.Post{
		{
			ID:    1,
			Title: "The Future of Web Development in 2025",
			Content: "The landscape of web development keeps moving. Edge computing has become an " +
				"everyday architecture pattern and server-side logic now runs close to users.",
			Excerpt:   "Trends in web development for 2025: edge computing, serverless databases and AI-assisted tooling.",
			Author:    "Alex Chen",
			Published: true,
			CreatedAt: at("2025-01-15T10:30:00Z"),
			UpdatedAt: at("2025-01-15T10:30:00Z"),
		},
		{
			ID:    2,
			Title: "Building Responsive UIs with Modern CSS",
			Content: "Modern CSS gives developers grid layouts, container queries and custom " +
				"properties, enough to build responsive interfaces without a framework.",
			Excerpt:   "How Grid, Container Queries and Custom Properties change responsive design.",
			Author:    "Sarah Johnson",
			Published: true,
			CreatedAt: at("2025-02-22T14:15:00Z"),
			UpdatedAt: at("2025-02-22T14:15:00Z"),
		},
		{
			ID:    3,
			Title: "Getting Started with a Serverless SQL Database",
			Content: "Serverless SQL databases built on SQLite run next to the application at the " +
				"edge. This walkthrough covers setting one up for a small project.",
			Excerpt:   "A guide to getting started with a serverless SQL database that runs at the edge.",
			Author:    "Michael Rodriguez",
			Published: true,
			CreatedAt: at("2025-03-08T09:45:00Z"),
			UpdatedAt: at("2025-03-08T09:45:00Z"),
		},
	}
}

// FixtureInputs returns FixturePosts as create payloads, for seeding stores
// that assign their own ids.
func FixtureInputs() []models.CreatePostInput {
	posts := FixturePosts()
	in := make([]models.CreatePostInput, 0, len(posts))
	for _, p := range posts {
		in = append(in, models.CreatePostInput{
			Title:     p.Title,
			Content:   p.Content,
			Excerpt:   p.Excerpt,
			Author:    p.Author,
			Published: p.Published,
		})
	}
	return in
}
