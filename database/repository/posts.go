package repository

import (
	"fmt"
	"strings"

	"github.com/matthewbroadbent/blog-norivane/database"
	"github.com/matthewbroadbent/blog-norivane/pkg/gorm"
)

// Posts is the read-only capability over the posts table. It backs the
// unauthenticated endpoints and cannot mutate anything.
type Posts struct {
	DB *database.Connection
	// ExposeDrafts widens reads beyond published posts. Off by default;
	// callers opt in through configuration or a verified identity.
	ExposeDrafts bool
}

// List returns posts most recent first: published posts by publication date,
// or every post by creation date when drafts are exposed.
func (p Posts) List() ([]database.Post, error) {
	var posts []database.Post

	query := p.DB.Sql().Preload("Author").Preload("Tags")

	if p.ExposeDrafts {
		query = query.Order("created_at DESC")
	} else {
		query = query.
			Where("status = ?", database.PostStatusPublished).
			Order("published_at DESC")
	}

	if result := query.Find(&posts); gorm.HasDbIssues(result.Error) {
		return nil, fmt.Errorf("issue listing posts: %s", result.Error)
	}

	return posts, nil
}

// FindBySlug performs an exact-match lookup under the same visibility rule as
// List: drafts stay hidden unless they are exposed. A nil post with a nil
// error means the slug does not resolve; a non-nil error is a store failure.
func (p Posts) FindBySlug(slug string) (*database.Post, error) {
	post := &database.Post{}

	query := p.DB.Sql().
		Preload("Author").
		Preload("Tags").
		Where("slug = ?", strings.ToLower(strings.TrimSpace(slug)))

	if !p.ExposeDrafts {
		query = query.Where("status = ?", database.PostStatusPublished)
	}

	result := query.First(post)

	if gorm.IsNotFound(result.Error) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, fmt.Errorf("issue finding post [%s]: %w", slug, result.Error)
	}

	return post, nil
}
