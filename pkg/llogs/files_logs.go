package llogs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/matthewbroadbent/blog-norivane/env"
)

type FilesLogs struct {
	path   string
	file   *os.File
	logger *slog.Logger
	env    *env.Environment
}

// MakeFilesLogs opens the dated log file configured in the environment and
// installs it as the default slog destination.
func MakeFilesLogs(e *env.Environment) (Driver, error) {
	manager := FilesLogs{}
	manager.env = e

	manager.path = manager.DefaultPath()

	dir := filepath.Dir(manager.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return FilesLogs{}, fmt.Errorf("failed to create log directory: %w", err)
	}

	resource, err := os.OpenFile(manager.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)

	if err != nil {
		return FilesLogs{}, err
	}

	logger := slog.New(slog.NewTextHandler(resource, &slog.HandlerOptions{
		Level: manager.Level(),
	}))

	slog.SetDefault(logger)

	manager.file = resource
	manager.logger = logger

	return manager, nil
}

func (manager FilesLogs) DefaultPath() string {
	logsEnv := manager.env.Logs

	return fmt.Sprintf(
		logsEnv.Dir,
		time.Now().UTC().Format(logsEnv.DateFormat),
	)
}

func (manager FilesLogs) Level() slog.Level {
	switch manager.env.Logs.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (manager FilesLogs) Close() bool {
	if err := manager.file.Close(); err != nil {
		manager.logger.Error("error closing file: " + err.Error())

		return false
	}

	return true
}
