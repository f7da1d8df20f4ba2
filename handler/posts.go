package handler

import (
	"errors"
	"fmt"
	baseHttp "net/http"

	"github.com/matthewbroadbent/blog-norivane/database"
	"github.com/matthewbroadbent/blog-norivane/database/repository"
	"github.com/matthewbroadbent/blog-norivane/handler/payload"
	"github.com/matthewbroadbent/blog-norivane/pkg/endpoint"
	"github.com/matthewbroadbent/blog-norivane/pkg/middleware"
	"github.com/matthewbroadbent/blog-norivane/pkg/portal"
)

// PostsHandler serves the posts surface: the public reads and the guarded
// writes. Writes resolve their author from the request's bearer claims, never
// from the payload.
type PostsHandler struct {
	Posts     repository.Posts
	DB        *database.Connection
	Validator *portal.Validator
}

func MakePostsHandler(posts repository.Posts, db *database.Connection, validator *portal.Validator) PostsHandler {
	return PostsHandler{
		Posts:     posts,
		DB:        db,
		Validator: validator,
	}
}

func (h PostsHandler) Index(w baseHttp.ResponseWriter, r *baseHttp.Request) *endpoint.ApiError {
	posts, err := h.Posts.List()
	if err != nil {
		return endpoint.LogInternalError("could not list posts", err)
	}

	resp := endpoint.NewNoCacheResponse(w, r)

	if err := resp.RespondOk(payload.GetPostsResponse(posts)); err != nil {
		return endpoint.LogInternalError("could not encode posts response", err)
	}

	return nil
}

// Show resolves a post under the public visibility rule. An authenticated
// caller also sees drafts, which is how the editor reads a draft back right
// after saving it.
func (h PostsHandler) Show(w baseHttp.ResponseWriter, r *baseHttp.Request) *endpoint.ApiError {
	slug := payload.GetSlugFrom(r)

	posts := h.Posts
	if _, ok := middleware.GetClaims(r.Context()); ok {
		posts.ExposeDrafts = true
	}

	post, err := posts.FindBySlug(slug)
	if err != nil {
		return endpoint.LogInternalError("could not look up the post", err)
	}

	if post == nil {
		return endpoint.NotFound(fmt.Sprintf("post [%s] was not found", slug))
	}

	resp := endpoint.NewNoCacheResponse(w, r)

	if err := resp.RespondOk(payload.GetPostResponse(*post)); err != nil {
		return endpoint.LogInternalError("could not encode post response", err)
	}

	return nil
}

func (h PostsHandler) Store(w baseHttp.ResponseWriter, r *baseHttp.Request) *endpoint.ApiError {
	request, closer, err := endpoint.ParseRequestBody[payload.PostRequest](r)
	defer closer()

	if err != nil {
		return endpoint.BadRequestError("invalid request body")
	}

	if rejects, _ := h.Validator.Rejects(request); rejects {
		return endpoint.BadRequestError("invalid post attributes: " + h.Validator.GetErrorsAsJson())
	}

	writer, apiErr := h.writerFor(r)
	if apiErr != nil {
		return apiErr
	}

	attrs := payload.GetCreatePostAttrs(request)
	if attrs.Slug == "" {
		return endpoint.BadRequestError("a title or slug is required")
	}

	post, err := writer.Create(attrs)
	if err != nil {
		return mapWriteError(attrs.Slug, err)
	}

	resp := endpoint.NewNoCacheResponse(w, r)

	if err := resp.RespondCreated(payload.GetPostResponse(*post)); err != nil {
		return endpoint.LogInternalError("could not encode post response", err)
	}

	return nil
}

func (h PostsHandler) Update(w baseHttp.ResponseWriter, r *baseHttp.Request) *endpoint.ApiError {
	slug := payload.GetSlugFrom(r)

	request, closer, err := endpoint.ParseRequestBody[payload.PostRequest](r)
	defer closer()

	if err != nil {
		return endpoint.BadRequestError("invalid request body")
	}

	if rejects, _ := h.Validator.Rejects(request); rejects {
		return endpoint.BadRequestError("invalid post attributes: " + h.Validator.GetErrorsAsJson())
	}

	writer, apiErr := h.writerFor(r)
	if apiErr != nil {
		return apiErr
	}

	post, err := writer.Update(slug, payload.GetPostAttrs(request))
	if err != nil {
		return mapWriteError(slug, err)
	}

	resp := endpoint.NewNoCacheResponse(w, r)

	if err := resp.RespondOk(payload.GetPostResponse(*post)); err != nil {
		return endpoint.LogInternalError("could not encode post response", err)
	}

	return nil
}

func (h PostsHandler) Destroy(w baseHttp.ResponseWriter, r *baseHttp.Request) *endpoint.ApiError {
	slug := payload.GetSlugFrom(r)

	writer, apiErr := h.writerFor(r)
	if apiErr != nil {
		return apiErr
	}

	if err := writer.Delete(slug); err != nil {
		return mapWriteError(slug, err)
	}

	resp := endpoint.NewNoCacheResponse(w, r)
	resp.RespondNoContent()

	return nil
}

// writerFor builds the mutation capability for the request's authenticated
// identity. The bearer middleware guarantees claims are present, so a miss
// here means the route was wired without it.
func (h PostsHandler) writerFor(r *baseHttp.Request) (*repository.PostsWriter, *endpoint.ApiError) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		return nil, endpoint.UnauthorisedError("missing bearer token")
	}

	writer, err := repository.MakePostsWriter(h.DB, claims)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownAuthor) {
			return nil, endpoint.UnauthorisedError("unknown account")
		}

		return nil, endpoint.LogInternalError("could not resolve the authenticated account", err)
	}

	return writer, nil
}

func mapWriteError(slug string, err error) *endpoint.ApiError {
	switch {
	case errors.Is(err, repository.ErrPostNotFound):
		return endpoint.NotFound(fmt.Sprintf("post [%s] was not found", slug))
	case errors.Is(err, repository.ErrDuplicateSlug):
		return endpoint.ConflictError(fmt.Sprintf("slug [%s] is already taken", slug))
	default:
		return endpoint.LogInternalError("could not persist post", err)
	}
}
