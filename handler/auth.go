package handler

import (
	"log/slog"
	baseHttp "net/http"

	"github.com/matthewbroadbent/blog-norivane/database/repository"
	"github.com/matthewbroadbent/blog-norivane/handler/payload"
	"github.com/matthewbroadbent/blog-norivane/pkg/auth"
	"github.com/matthewbroadbent/blog-norivane/pkg/endpoint"
	"github.com/matthewbroadbent/blog-norivane/pkg/portal"
)

// AuthHandler signs editors in. Credentials are checked against the users
// table and a signed bearer token is issued on success. Unknown accounts and
// wrong passwords produce the same response, so the endpoint does not leak
// which addresses have accounts.
type AuthHandler struct {
	Users     *repository.Users
	JWT       auth.JWTHandler
	Validator *portal.Validator
}

func MakeAuthHandler(users *repository.Users, jwt auth.JWTHandler, validator *portal.Validator) AuthHandler {
	return AuthHandler{
		Users:     users,
		JWT:       jwt,
		Validator: validator,
	}
}

func (h AuthHandler) Login(w baseHttp.ResponseWriter, r *baseHttp.Request) *endpoint.ApiError {
	request, closer, err := endpoint.ParseRequestBody[payload.LoginRequest](r)
	defer closer()

	if err != nil {
		return endpoint.BadRequestError("invalid request body")
	}

	if rejects, _ := h.Validator.Rejects(request); rejects {
		return endpoint.BadRequestError("email and password are required")
	}

	user, err := h.Users.FindByEmail(request.Email)
	if err != nil {
		return endpoint.LogInternalError("could not look up the account", err)
	}

	if user == nil || !auth.VerifyPassword(user.PasswordHash, request.Password) {
		return endpoint.UnauthorisedError("invalid credentials")
	}

	token, expiresAt, err := h.JWT.Generate(user.UUID, user.Email)
	if err != nil {
		slog.Error("failed to generate session token", "err", err)

		return endpoint.InternalError("could not create a session")
	}

	session := payload.SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: payload.UserResponse{
			UUID:        user.UUID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
		},
	}

	resp := endpoint.NewNoCacheResponse(w, r)

	if err := resp.RespondOk(session); err != nil {
		return endpoint.LogInternalError("could not encode session response", err)
	}

	return nil
}
