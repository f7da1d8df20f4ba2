package kernel

import (
	"log"
	"strconv"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/matthewbroadbent/blog-norivane/database"
	"github.com/matthewbroadbent/blog-norivane/env"
	"github.com/matthewbroadbent/blog-norivane/pkg/llogs"
	"github.com/matthewbroadbent/blog-norivane/pkg/portal"
)

func MakeSentry(e *env.Environment) *portal.Sentry {
	cOptions := sentry.ClientOptions{
		Dsn:         e.Sentry.DSN,
		Environment: e.App.Type,
	}

	if err := sentry.Init(cOptions); err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}

	options := sentryhttp.Options{}
	handler := sentryhttp.New(options)

	return &portal.Sentry{
		Handler: handler,
		Options: &options,
		Env:     e,
	}
}

func MakeDbConnection(e *env.Environment) *database.Connection {
	dbConn, err := database.MakeConnection(e)

	if err != nil {
		panic("Sql: error connecting to Postgres: " + err.Error())
	}

	return dbConn
}

func MakeLogs(e *env.Environment) llogs.Driver {
	lDriver, err := llogs.MakeFilesLogs(e)

	if err != nil {
		panic("logs: error opening logs file: " + err.Error())
	}

	return lDriver
}

func MakeEnv(validate *portal.Validator) *env.Environment {
	errorSuffix := "Environment: "

	port, err := strconv.Atoi(env.GetEnvVar("ENV_DB_PORT"))
	if err != nil {
		panic(errorSuffix + "invalid value for ENV_DB_PORT: " + err.Error())
	}

	ttl, err := strconv.Atoi(env.GetEnvVar("ENV_APP_TOKEN_TTL_MINUTES"))
	if err != nil {
		panic(errorSuffix + "invalid value for ENV_APP_TOKEN_TTL_MINUTES: " + err.Error())
	}

	app := env.AppEnvironment{
		Name:            env.GetEnvVar("ENV_APP_NAME"),
		URL:             env.GetEnvVar("ENV_APP_URL"),
		Type:            env.GetEnvVar("ENV_APP_ENV_TYPE"),
		MasterKey:       env.GetSecretOrEnv("app_master_key", "ENV_APP_MASTER_KEY"),
		TokenTTLMinutes: ttl,
	}

	db := env.DBEnvironment{
		UserName:     env.GetSecretOrEnv("pg_username", "ENV_DB_USER_NAME"),
		UserPassword: env.GetSecretOrEnv("pg_password", "ENV_DB_USER_PASSWORD"),
		DatabaseName: env.GetSecretOrEnv("pg_dbname", "ENV_DB_DATABASE_NAME"),
		Port:         port,
		Host:         env.GetEnvVar("ENV_DB_HOST"),
		DriverName:   database.DriverName,
		SSLMode:      env.GetEnvVar("ENV_DB_SSL_MODE"),
		TimeZone:     env.GetEnvVar("ENV_DB_TIMEZONE"),
	}

	logsEnv := env.LogsEnvironment{
		Level:      env.GetEnvVar("ENV_APP_LOG_LEVEL"),
		Dir:        env.GetEnvVar("ENV_APP_LOGS_DIR"),
		DateFormat: env.GetEnvVar("ENV_APP_LOGS_DATE_FORMAT"),
	}

	netEnv := env.NetEnvironment{
		HttpHost:      env.GetEnvVar("ENV_HTTP_HOST"),
		HttpPort:      env.GetEnvVar("ENV_HTTP_PORT"),
		AllowedOrigin: env.GetEnvVar("ENV_HTTP_ALLOWED_ORIGIN"),
	}

	sentryEnv := env.SentryEnvironment{
		DSN: env.GetEnvVar("ENV_SENTRY_DSN"),
		CSP: env.GetEnvVar("ENV_SENTRY_CSP"),
	}

	blogEnv := env.BlogEnvironment{
		ExposeDrafts: env.GetEnvVar("ENV_BLOG_EXPOSE_DRAFTS") == "true",
		EditorDir:    env.GetEnvVar("ENV_BLOG_EDITOR_DIR"),
	}

	backupEnv := env.BackupEnvironment{
		Schedule: env.GetEnvVar("ENV_BACKUP_SCHEDULE"),
		Dir:      env.GetEnvVar("ENV_BACKUP_DIR"),
		BinDir:   env.GetEnvVar("ENV_BACKUP_BIN_DIR"),
	}

	if _, err := validate.Rejects(app); err != nil {
		panic(errorSuffix + "invalid [APP] model: " + validate.GetErrorsAsJson())
	}

	if _, err := validate.Rejects(db); err != nil {
		panic(errorSuffix + "invalid [Sql] model: " + validate.GetErrorsAsJson())
	}

	if _, err := validate.Rejects(logsEnv); err != nil {
		panic(errorSuffix + "invalid [logs] model: " + validate.GetErrorsAsJson())
	}

	if _, err := validate.Rejects(netEnv); err != nil {
		panic(errorSuffix + "invalid [NETWORK] model: " + validate.GetErrorsAsJson())
	}

	if _, err := validate.Rejects(sentryEnv); err != nil {
		panic(errorSuffix + "invalid [SENTRY] model: " + validate.GetErrorsAsJson())
	}

	if _, err := validate.Rejects(blogEnv); err != nil {
		panic(errorSuffix + "invalid [BLOG] model: " + validate.GetErrorsAsJson())
	}

	if _, err := validate.Rejects(backupEnv); err != nil {
		panic(errorSuffix + "invalid [BACKUP] model: " + validate.GetErrorsAsJson())
	}

	blog := &env.Environment{
		App:     app,
		DB:      db,
		Logs:    logsEnv,
		Network: netEnv,
		Sentry:  sentryEnv,
		Blog:    blogEnv,
		Backup:  backupEnv,
	}

	if _, err := validate.Rejects(blog); err != nil {
		panic(errorSuffix + "invalid environment model: " + validate.GetErrorsAsJson())
	}

	return blog
}
