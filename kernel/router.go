package kernel

import (
	baseHttp "net/http"

	"github.com/matthewbroadbent/blog-norivane/database"
	"github.com/matthewbroadbent/blog-norivane/database/repository"
	"github.com/matthewbroadbent/blog-norivane/env"
	"github.com/matthewbroadbent/blog-norivane/handler"
	"github.com/matthewbroadbent/blog-norivane/pkg/endpoint"
	"github.com/matthewbroadbent/blog-norivane/pkg/middleware"
	"github.com/matthewbroadbent/blog-norivane/pkg/portal"
)

type Router struct {
	Env       *env.Environment
	Mux       *baseHttp.ServeMux
	Pipeline  middleware.Pipeline
	Db        *database.Connection
	Validator *portal.Validator
}

// PublicPipelineFor adapts a handler for routes anyone may call.
func (r *Router) PublicPipelineFor(apiHandler endpoint.ApiHandler) baseHttp.HandlerFunc {
	return endpoint.NewApiHandler(
		r.Pipeline.Chain(apiHandler),
	)
}

// GuardedPipelineFor adapts a handler for routes that require a valid bearer
// token. The token check runs before the handler, so a rejected request never
// touches storage.
func (r *Router) GuardedPipelineFor(apiHandler endpoint.ApiHandler) baseHttp.HandlerFunc {
	return endpoint.NewApiHandler(
		r.Pipeline.Chain(
			apiHandler,
			r.Pipeline.Bearer.Handle,
		),
	)
}

// OptionalPipelineFor adapts a handler for public routes that widen their
// behaviour when the caller presents a valid bearer token. Anonymous requests
// still pass, just without claims in context.
func (r *Router) OptionalPipelineFor(apiHandler endpoint.ApiHandler) baseHttp.HandlerFunc {
	return endpoint.NewApiHandler(
		r.Pipeline.Chain(
			apiHandler,
			r.Pipeline.Bearer.Optional,
		),
	)
}

func (r *Router) Auth() {
	users := repository.Users{DB: r.Db}
	abstract := handler.MakeAuthHandler(&users, r.Pipeline.Bearer.Handler, r.Validator)

	login := r.PublicPipelineFor(abstract.Login)

	r.Mux.HandleFunc("POST /auth/login", login)
}

func (r *Router) Posts() {
	posts := repository.Posts{DB: r.Db, ExposeDrafts: r.Env.Blog.ExposeDrafts}
	abstract := handler.MakePostsHandler(posts, r.Db, r.Validator)

	index := r.PublicPipelineFor(abstract.Index)
	show := r.OptionalPipelineFor(abstract.Show)
	store := r.GuardedPipelineFor(abstract.Store)
	update := r.GuardedPipelineFor(abstract.Update)
	destroy := r.GuardedPipelineFor(abstract.Destroy)

	r.Mux.HandleFunc("GET /blog/posts", index)
	r.Mux.HandleFunc("POST /blog/posts", store)
	r.Mux.HandleFunc("GET /blog/posts/{slug}", show)
	r.Mux.HandleFunc("PUT /blog/posts/{slug}", update)
	r.Mux.HandleFunc("DELETE /blog/posts/{slug}", destroy)
}

func (r *Router) Metrics() {
	abstract := handler.NewMetricsHandler()

	r.Mux.Handle("GET /metrics", abstract)
}

func (r *Router) KeepAlive() {
	abstract := handler.MakeKeepAliveHandler()

	r.Mux.HandleFunc("GET /ping", r.PublicPipelineFor(abstract.Handle))
}

func (r *Router) KeepAliveDB() {
	abstract := handler.MakeKeepAliveDBHandler(r.Db)

	r.Mux.HandleFunc("GET /ping-db", r.PublicPipelineFor(abstract.Handle))
}

// Editor serves the built editor bundle when a directory is configured. The
// API stays headless otherwise.
func (r *Router) Editor() {
	if !r.Env.Blog.ServesEditor() {
		return
	}

	fs := baseHttp.FileServer(baseHttp.Dir(r.Env.Blog.EditorDir))

	r.Mux.Handle("GET /editor/", baseHttp.StripPrefix("/editor/", fs))
}
