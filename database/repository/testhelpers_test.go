package repository_test

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/matthewbroadbent/blog-norivane/database"
	"github.com/matthewbroadbent/blog-norivane/env"
	"github.com/matthewbroadbent/blog-norivane/pkg/auth"
)

func newSQLiteConnection(t *testing.T) *database.Connection {
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

func seedUser(t *testing.T, conn *database.Connection, email string) *database.User {
	t.Helper()

	user := database.User{
		UUID:         uuid.NewString(),
		Email:        email,
		PasswordHash: "irrelevant-for-repo-tests",
		DisplayName:  "Seeded Author",
	}

	if err := conn.Sql().Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	return &user
}

func claimsFor(user *database.User) *auth.Claims {
	return &auth.Claims{UserID: user.UUID, Email: user.Email}
}

func newPostgresConnection(t *testing.T) *database.Connection {
	t.Helper()

	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed")
	}

	if err := exec.Command("docker", "ps").Run(); err != nil {
		t.Skip("docker not running")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	t.Cleanup(cancel)

	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("secret"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("container run err: %v", err)
	}

	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(pg)
	})

	host, err := pg.Host(ctx)
	if err != nil {
		t.Fatalf("host err: %v", err)
	}

	port, err := pg.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port err: %v", err)
	}

	e := &env.Environment{
		DB: env.DBEnvironment{
			UserName:     "test",
			UserPassword: "secret",
			DatabaseName: "testdb",
			Port:         port.Int(),
			Host:         host,
			DriverName:   database.DriverName,
			SSLMode:      "disable",
			TimeZone:     "UTC",
		},
	}

	conn, err := database.MakeConnection(e)
	if err != nil {
		t.Fatalf("make connection: %v", err)
	}

	if err := conn.Sql().AutoMigrate(database.SchemaModels()...); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}

	return conn
}
