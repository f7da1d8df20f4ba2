package repository

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/matthewbroadbent/blog-norivane/database"
	"github.com/matthewbroadbent/blog-norivane/pkg/gorm"
)

type Users struct {
	DB *database.Connection
}

// FindByEmail resolves an account case-insensitively. A nil user with a nil
// error means no account exists; a non-nil error is a store failure.
func (r Users) FindByEmail(email string) (*database.User, error) {
	user := &database.User{}

	result := r.DB.Sql().
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user)

	if gorm.IsNotFound(result.Error) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, fmt.Errorf("issue finding user by email: %w", result.Error)
	}

	return user, nil
}

func (r Users) FindByUUID(userUUID string) (*database.User, error) {
	user := &database.User{}

	result := r.DB.Sql().
		Where("uuid = ?", strings.TrimSpace(userUUID)).
		First(&user)

	if gorm.IsNotFound(result.Error) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, fmt.Errorf("issue finding user [%s]: %w", userUUID, result.Error)
	}

	return user, nil
}

func (r Users) Create(attrs database.UserAttrs) (*database.User, error) {
	user := database.User{
		UUID:         uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(attrs.Email)),
		PasswordHash: attrs.PasswordHash,
		DisplayName:  attrs.DisplayName,
	}

	if result := r.DB.Sql().Create(&user); gorm.HasDbIssues(result.Error) {
		return nil, fmt.Errorf("issue creating users: %s", result.Error)
	}

	return &user, nil
}
