package kernel

import (
	"fmt"
	baseHttp "net/http"
	"time"

	"github.com/matthewbroadbent/blog-norivane/database"
	"github.com/matthewbroadbent/blog-norivane/env"
	"github.com/matthewbroadbent/blog-norivane/pkg/auth"
	"github.com/matthewbroadbent/blog-norivane/pkg/llogs"
	"github.com/matthewbroadbent/blog-norivane/pkg/middleware"
	"github.com/matthewbroadbent/blog-norivane/pkg/portal"
)

type App struct {
	router    *Router
	sentry    *portal.Sentry
	logs      llogs.Driver
	validator *portal.Validator
	env       *env.Environment
	db        *database.Connection
}

func MakeApp(e *env.Environment, validator *portal.Validator) (*App, error) {
	jwtHandler, err := auth.MakeJWTHandler(
		[]byte(e.App.MasterKey),
		time.Duration(e.App.TokenTTLMinutes)*time.Minute,
	)

	if err != nil {
		return nil, fmt.Errorf("bootstrapping error > could not create jwt handler: %w", err)
	}

	db := MakeDbConnection(e)

	app := App{
		env:       e,
		validator: validator,
		logs:      MakeLogs(e),
		sentry:    MakeSentry(e),
		db:        db,
	}

	router := Router{
		Env:       e,
		Db:        db,
		Mux:       baseHttp.NewServeMux(),
		Validator: validator,
		Pipeline:  middleware.MakePipeline(e, jwtHandler),
	}

	app.SetRouter(router)

	return &app, nil
}

func (a *App) Boot() {
	if a == nil || a.router == nil {
		panic("bootstrapping error > Invalid setup")
	}

	router := *a.router

	router.Auth()
	router.Posts()
	router.Metrics()
	router.KeepAlive()
	router.KeepAliveDB()
	router.Editor()
}

func (a *App) SetRouter(router Router) {
	a.router = &router
}

func (a *App) GetMux() *baseHttp.ServeMux {
	return a.router.Mux
}

func (a *App) GetEnv() *env.Environment {
	return a.env
}

func (a *App) GetDB() *database.Connection {
	return a.db
}

func (a *App) GetSentry() *portal.Sentry {
	return a.sentry
}

func (a *App) CloseDB() {
	if a.db != nil {
		a.db.Close()
	}
}

func (a *App) CloseLogs() {
	if a.logs != nil {
		a.logs.Close()
	}
}
