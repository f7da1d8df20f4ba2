package payload

import (
	baseHttp "net/http"
	"strings"
	"time"

	"github.com/matthewbroadbent/blog-norivane/database"
	"github.com/matthewbroadbent/blog-norivane/pkg/portal"
)

// ExcerptLength caps auto-derived excerpts.
const ExcerptLength = 160

type PostRequest struct {
	Title           string   `json:"title" validate:"required"`
	Slug            string   `json:"slug"`
	Excerpt         string   `json:"excerpt"`
	Content         string   `json:"content"`
	FeaturedImage   string   `json:"featured_image"`
	Status          string   `json:"status" validate:"omitempty,oneof=draft published"`
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	Tags            []string `json:"tags"`
}

type PostResponse struct {
	UUID            string        `json:"id"`
	Author          UserResponse  `json:"author"`
	Slug            string        `json:"slug"`
	Title           string        `json:"title"`
	Excerpt         string        `json:"excerpt"`
	Content         string        `json:"content"`
	FeaturedImage   string        `json:"featured_image"`
	Status          string        `json:"status"`
	MetaTitle       string        `json:"meta_title"`
	MetaDescription string        `json:"meta_description"`
	PublishedAt     *time.Time    `json:"published_at"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	Tags            []TagResponse `json:"tags"`
}

type TagResponse struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func GetSlugFrom(r *baseHttp.Request) string {
	str := portal.MakeStringable(r.PathValue("slug"))

	return strings.TrimSpace(str.ToLower())
}

// GetPostAttrs normalises an editor submission into storable attributes. A
// supplied slug is re-slugged so stored slugs are always in canonical form; an
// absent slug stays empty, which updates read as "keep the stored one". A
// missing excerpt is derived from the content.
func GetPostAttrs(request PostRequest) database.PostAttrs {
	excerpt := strings.TrimSpace(request.Excerpt)
	if excerpt == "" {
		excerpt = portal.MakeStringable(request.Content).Excerpt(ExcerptLength)
	}

	var tags []database.TagAttrs
	for _, name := range request.Tags {
		tagSlug := portal.MakeStringable(name).Slug()
		if tagSlug == "" {
			continue
		}

		tags = append(tags, database.TagAttrs{
			Slug: tagSlug,
			Name: strings.TrimSpace(name),
		})
	}

	return database.PostAttrs{
		Slug:            portal.MakeStringable(request.Slug).Slug(),
		Title:           strings.TrimSpace(request.Title),
		Excerpt:         excerpt,
		Content:         request.Content,
		FeaturedImage:   strings.TrimSpace(request.FeaturedImage),
		Status:          strings.TrimSpace(strings.ToLower(request.Status)),
		MetaTitle:       strings.TrimSpace(request.MetaTitle),
		MetaDescription: strings.TrimSpace(request.MetaDescription),
		Tags:            tags,
	}
}

// GetCreatePostAttrs is GetPostAttrs for brand-new posts: when no slug is
// supplied there is no stored one to keep, so it falls back to the title.
func GetCreatePostAttrs(request PostRequest) database.PostAttrs {
	attrs := GetPostAttrs(request)

	if attrs.Slug == "" {
		attrs.Slug = portal.MakeStringable(request.Title).Slug()
	}

	return attrs
}

func GetPostResponse(p database.Post) PostResponse {
	tags := make([]TagResponse, 0, len(p.Tags))
	for _, tag := range p.Tags {
		tags = append(tags, TagResponse{Slug: tag.Slug, Name: tag.Name})
	}

	return PostResponse{
		UUID:            p.UUID,
		Slug:            p.Slug,
		Title:           p.Title,
		Excerpt:         p.Excerpt,
		Content:         p.Content,
		FeaturedImage:   p.FeaturedImage,
		Status:          p.Status,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		PublishedAt:     p.PublishedAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Tags:            tags,
		Author: UserResponse{
			UUID:        p.Author.UUID,
			Email:       p.Author.Email,
			DisplayName: p.Author.DisplayName,
		},
	}
}

func GetPostsResponse(posts []database.Post) []PostResponse {
	response := make([]PostResponse, 0, len(posts))

	for _, post := range posts {
		response = append(response, GetPostResponse(post))
	}

	return response
}
