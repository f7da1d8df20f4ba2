package handler_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/matthewbroadbent/blog-norivane/database"
	"github.com/matthewbroadbent/blog-norivane/pkg/auth"
)

const testPassword = "correct-horse-battery"

func newTestConnection(t *testing.T) *database.Connection {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(database.SchemaModels()...); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return database.NewConnectionFromGorm(db)
}

func seedEditor(t *testing.T, conn *database.Connection, email string) *database.User {
	t.Helper()

	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := database.User{
		UUID:         uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  "Test Editor",
	}

	if err := conn.Sql().Create(&user).Error; err != nil {
		t.Fatalf("seed editor: %v", err)
	}

	return &user
}

func newJWTHandler(t *testing.T) auth.JWTHandler {
	t.Helper()

	handler, err := auth.MakeJWTHandler([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	if err != nil {
		t.Fatalf("make jwt handler: %v", err)
	}

	return handler
}

func bearerFor(t *testing.T, jwt auth.JWTHandler, user *database.User) string {
	t.Helper()

	token, _, err := jwt.Generate(user.UUID, user.Email)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	return "Bearer " + token
}
