package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetEnvVarTrimsWhitespace(t *testing.T) {
	t.Setenv("BLOG_TEST_KEY", "  value \n")

	if got := GetEnvVar("BLOG_TEST_KEY"); got != "value" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestGetSecretOrEnvPrefersSecretFile(t *testing.T) {
	dir := t.TempDir()

	original := SecretsDir
	SecretsDir = dir
	t.Cleanup(func() { SecretsDir = original })

	if err := os.WriteFile(filepath.Join(dir, "pg_password"), []byte(" hunter2 \n"), 0o600); err != nil {
		t.Fatalf("write secret: %v", err)
	}

	t.Setenv("ENV_DB_USER_PASSWORD", "from-env")

	if got := GetSecretOrEnv("pg_password", "ENV_DB_USER_PASSWORD"); got != "hunter2" {
		t.Fatalf("expected secret file value, got %q", got)
	}

	if got := GetSecretOrEnv("missing_secret", "ENV_DB_USER_PASSWORD"); got != "from-env" {
		t.Fatalf("expected env fallback, got %q", got)
	}
}

func TestDBEnvironmentGetDSN(t *testing.T) {
	db := DBEnvironment{
		UserName:     "blog_user",
		UserPassword: "secret",
		DatabaseName: "blog_db",
		Port:         5432,
		Host:         "localhost",
		DriverName:   "postgres",
		SSLMode:      "disable",
		TimeZone:     "UTC",
	}

	dsn := db.GetDSN()

	for _, fragment := range []string{"host=localhost", "user=blog_user", "dbname=blog_db", "port=5432", "sslmode=disable"} {
		if !strings.Contains(dsn, fragment) {
			t.Fatalf("dsn %q missing %q", dsn, fragment)
		}
	}
}

func TestAppEnvironmentTypeChecks(t *testing.T) {
	if !(AppEnvironment{Type: "production"}).IsProduction() {
		t.Fatalf("expected production")
	}

	if !(AppEnvironment{Type: "local"}).IsLocal() {
		t.Fatalf("expected local")
	}

	if !(AppEnvironment{Type: "staging"}).IsStaging() {
		t.Fatalf("expected staging")
	}
}

func TestNetEnvironmentGetHostURL(t *testing.T) {
	net := NetEnvironment{HttpHost: "0.0.0.0", HttpPort: "8080"}

	if got := net.GetHostURL(); got != "0.0.0.0:8080" {
		t.Fatalf("unexpected host url: %q", got)
	}
}
