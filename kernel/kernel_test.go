package kernel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matthewbroadbent/blog-norivane/env"
	"github.com/matthewbroadbent/blog-norivane/pkg/portal"
)

func setBootEnv(t *testing.T) {
	t.Helper()

	t.Setenv("ENV_APP_NAME", "blog-norivane")
	t.Setenv("ENV_APP_URL", "http://localhost:8080")
	t.Setenv("ENV_APP_ENV_TYPE", "local")
	t.Setenv("ENV_APP_MASTER_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("ENV_APP_TOKEN_TTL_MINUTES", "60")
	t.Setenv("ENV_APP_LOG_LEVEL", "debug")
	t.Setenv("ENV_APP_LOGS_DIR", t.TempDir()+"/logs-%s.log")
	t.Setenv("ENV_APP_LOGS_DATE_FORMAT", "2006-01-02")
	t.Setenv("ENV_DB_USER_NAME", "blog_user")
	t.Setenv("ENV_DB_USER_PASSWORD", "blog_pass")
	t.Setenv("ENV_DB_DATABASE_NAME", "blog_db")
	t.Setenv("ENV_DB_PORT", "5432")
	t.Setenv("ENV_DB_HOST", "localhost")
	t.Setenv("ENV_DB_SSL_MODE", "disable")
	t.Setenv("ENV_DB_TIMEZONE", "UTC")
	t.Setenv("ENV_HTTP_HOST", "localhost")
	t.Setenv("ENV_HTTP_PORT", "8080")
	t.Setenv("ENV_HTTP_ALLOWED_ORIGIN", "*")
	t.Setenv("ENV_SENTRY_DSN", "")
	t.Setenv("ENV_SENTRY_CSP", "")
	t.Setenv("ENV_BLOG_EXPOSE_DRAFTS", "")
	t.Setenv("ENV_BLOG_EDITOR_DIR", "")
	t.Setenv("ENV_BACKUP_SCHEDULE", "")
	t.Setenv("ENV_BACKUP_DIR", "")
	t.Setenv("ENV_BACKUP_BIN_DIR", "")

	// keep secret files out of the way so env vars win
	originalSecrets := env.SecretsDir
	env.SecretsDir = t.TempDir()
	t.Cleanup(func() { env.SecretsDir = originalSecrets })
}

func TestMakeEnvReadsProcessEnvironment(t *testing.T) {
	setBootEnv(t)

	e := MakeEnv(portal.GetDefaultValidator())

	if e.App.Name != "blog-norivane" || e.App.TokenTTLMinutes != 60 {
		t.Fatalf("unexpected app environment: %+v", e.App)
	}

	if e.DB.Port != 5432 || e.DB.DriverName != "postgres" {
		t.Fatalf("unexpected db environment: %+v", e.DB)
	}

	if e.Network.AllowedOrigin != "*" {
		t.Fatalf("unexpected network environment: %+v", e.Network)
	}

	if e.Blog.ExposeDrafts || e.Blog.ServesEditor() {
		t.Fatalf("expected headless defaults, got %+v", e.Blog)
	}

	if e.Backup.IsEnabled() {
		t.Fatalf("expected backups disabled by default")
	}
}

func TestMakeEnvPanicsOnBadPort(t *testing.T) {
	setBootEnv(t)
	t.Setenv("ENV_DB_PORT", "not-a-number")

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid port")
		}
	}()

	MakeEnv(portal.GetDefaultValidator())
}

func TestMakeEnvPanicsOnShortMasterKey(t *testing.T) {
	setBootEnv(t)
	t.Setenv("ENV_APP_MASTER_KEY", "too-short")

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for short master key")
		}
	}()

	MakeEnv(portal.GetDefaultValidator())
}

func TestMakeEnvHonoursExposeDrafts(t *testing.T) {
	setBootEnv(t)
	t.Setenv("ENV_BLOG_EXPOSE_DRAFTS", "true")

	e := MakeEnv(portal.GetDefaultValidator())

	if !e.Blog.ExposeDrafts {
		t.Fatalf("expected drafts to be exposed")
	}
}

func TestIgniteFailsWithoutEnvFile(t *testing.T) {
	if _, err := Ignite(filepath.Join(t.TempDir(), "missing.env"), portal.GetDefaultValidator()); err == nil {
		t.Fatalf("expected an error for a missing env file")
	}
}

func TestIgniteLoadsEnvFile(t *testing.T) {
	setBootEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("ENV_APP_NAME=from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	// godotenv does not override variables that are already set
	t.Setenv("ENV_APP_NAME", "")
	_ = os.Unsetenv("ENV_APP_NAME")

	e, err := Ignite(path, portal.GetDefaultValidator())
	if err != nil {
		t.Fatalf("ignite: %v", err)
	}

	if e.App.Name != "from-dotenv" {
		t.Fatalf("expected name from dotenv, got %q", e.App.Name)
	}
}
