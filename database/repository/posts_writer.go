package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	stdgorm "gorm.io/gorm"

	"github.com/matthewbroadbent/blog-norivane/database"
	"github.com/matthewbroadbent/blog-norivane/pkg/auth"
	"github.com/matthewbroadbent/blog-norivane/pkg/gorm"
)

// ErrPostNotFound reports a mutation that matched zero rows.
var ErrPostNotFound = errors.New("post not found")

// ErrDuplicateSlug reports a write rejected by the slug unique constraint.
var ErrDuplicateSlug = errors.New("duplicate slug")

// ErrUnknownAuthor reports a validated identity with no matching account.
var ErrUnknownAuthor = errors.New("unknown author")

// PostsWriter is the mutation capability over posts. It can only be
// constructed from a validated identity: the bearer token is resolved before
// this type exists, and the writes then run on the service's own database
// credentials rather than anything caller-supplied.
type PostsWriter struct {
	db     *database.Connection
	author database.User
}

func MakePostsWriter(db *database.Connection, claims *auth.Claims) (*PostsWriter, error) {
	if db == nil {
		return nil, errors.New("posts writer requires a database connection")
	}

	if claims == nil || strings.TrimSpace(claims.UserID) == "" {
		return nil, errors.New("posts writer requires an authenticated identity")
	}

	users := Users{DB: db}

	author, err := users.FindByUUID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("issue resolving the authenticated identity [%s]: %w", claims.UserID, err)
	}

	if author == nil {
		return nil, fmt.Errorf("no account matches the authenticated identity [%s]: %w", claims.UserID, ErrUnknownAuthor)
	}

	return &PostsWriter{db: db, author: *author}, nil
}

// Author returns the identity every write is attributed to.
func (w PostsWriter) Author() database.User {
	return w.author
}

// Create persists a new post attributed to the writer's identity. A post
// created as published gets its publication timestamp immediately.
func (w PostsWriter) Create(attrs database.PostAttrs) (*database.Post, error) {
	status := attrs.Status
	if status == "" {
		status = database.PostStatusDraft
	}

	post := database.Post{
		UUID:            uuid.NewString(),
		AuthorID:        w.author.ID,
		Slug:            attrs.Slug,
		Title:           attrs.Title,
		Excerpt:         attrs.Excerpt,
		Content:         attrs.Content,
		FeaturedImage:   attrs.FeaturedImage,
		Status:          status,
		MetaTitle:       attrs.MetaTitle,
		MetaDescription: attrs.MetaDescription,
	}

	if status == database.PostStatusPublished {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	err := w.db.Transaction(func(tx *stdgorm.DB) error {
		if result := tx.Create(&post); result.Error != nil {
			return result.Error
		}

		return w.syncTags(tx, &post, attrs.Tags)
	})

	if err != nil {
		if gorm.IsDuplicated(err) {
			return nil, fmt.Errorf("slug [%s] is already taken: %w", attrs.Slug, ErrDuplicateSlug)
		}

		return nil, fmt.Errorf("issue creating post [%s]: %w", attrs.Slug, err)
	}

	post.Author = w.author

	return &post, nil
}

// Update replaces the document identified by slug. The publication timestamp
// is set on the first draft-to-published transition and preserved forever
// after, including on a transition back to draft.
func (w PostsWriter) Update(slug string, attrs database.PostAttrs) (*database.Post, error) {
	post := &database.Post{}

	result := w.db.Sql().Where("slug = ?", strings.TrimSpace(slug)).First(post)

	if gorm.IsNotFound(result.Error) {
		return nil, ErrPostNotFound
	}

	if result.Error != nil {
		return nil, fmt.Errorf("issue loading post [%s]: %w", slug, result.Error)
	}

	post.Title = attrs.Title
	post.Excerpt = attrs.Excerpt
	post.Content = attrs.Content
	post.FeaturedImage = attrs.FeaturedImage
	post.MetaTitle = attrs.MetaTitle
	post.MetaDescription = attrs.MetaDescription

	if attrs.Slug != "" {
		post.Slug = attrs.Slug
	}

	status := attrs.Status
	if status == "" {
		status = post.Status
	}

	if status == database.PostStatusPublished && post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	post.Status = status

	err := w.db.Transaction(func(tx *stdgorm.DB) error {
		saved := tx.Save(post)
		if saved.Error != nil {
			return saved.Error
		}

		if saved.RowsAffected == 0 {
			return ErrPostNotFound
		}

		return w.syncTags(tx, post, attrs.Tags)
	})

	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, ErrPostNotFound
		}

		if gorm.IsDuplicated(err) {
			return nil, fmt.Errorf("slug [%s] is already taken: %w", post.Slug, ErrDuplicateSlug)
		}

		return nil, fmt.Errorf("issue updating post [%s]: %w", slug, err)
	}

	post.Author = w.author

	return post, nil
}

// Delete removes the post identified by slug for good, tag links included,
// which frees the slug for reuse. Deleting an absent slug is surfaced as
// ErrPostNotFound so callers can report strict semantics.
func (w PostsWriter) Delete(slug string) error {
	post := &database.Post{}

	result := w.db.Sql().Where("slug = ?", strings.TrimSpace(slug)).First(post)

	if gorm.IsNotFound(result.Error) {
		return ErrPostNotFound
	}

	if result.Error != nil {
		return fmt.Errorf("issue loading post [%s]: %w", slug, result.Error)
	}

	err := w.db.Transaction(func(tx *stdgorm.DB) error {
		if links := tx.Where("post_id = ?", post.ID).Delete(&database.PostTag{}); links.Error != nil {
			return fmt.Errorf("error unlinking tags [%s]: %w", post.Slug, links.Error)
		}

		deleted := tx.Delete(post)
		if deleted.Error != nil {
			return deleted.Error
		}

		if deleted.RowsAffected == 0 {
			return ErrPostNotFound
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return ErrPostNotFound
		}

		return fmt.Errorf("issue deleting post [%s]: %w", slug, err)
	}

	return nil
}

// syncTags replaces the post's tag set, creating missing tags on the fly.
func (w PostsWriter) syncTags(tx *stdgorm.DB, post *database.Post, tags []database.TagAttrs) error {
	if result := tx.Where("post_id = ?", post.ID).Delete(&database.PostTag{}); result.Error != nil {
		return fmt.Errorf("error unlinking tags [%s]: %w", post.Slug, result.Error)
	}

	post.Tags = nil

	for _, attrs := range tags {
		tag := database.Tag{}

		err := tx.
			Where("slug = ?", attrs.Slug).
			Attrs(database.Tag{UUID: uuid.NewString(), Slug: attrs.Slug, Name: attrs.Name}).
			FirstOrCreate(&tag).Error

		if err != nil {
			return fmt.Errorf("error resolving tag [%s:%s]: %w", attrs.Slug, post.Slug, err)
		}

		trace := database.PostTag{PostID: post.ID, TagID: tag.ID}

		if result := tx.Create(&trace); result.Error != nil {
			return fmt.Errorf("error linking tags [%s:%s]: %w", tag.Slug, post.Slug, result.Error)
		}

		post.Tags = append(post.Tags, tag)
	}

	return nil
}
