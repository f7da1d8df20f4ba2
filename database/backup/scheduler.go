package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/matthewbroadbent/blog-norivane/env"
)

// CommandRunner abstracts exec.CommandContext so the backup routine can be
// tested without a postgres client installed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string, env map[string]string) error
}

// ExecRunner executes commands on the host.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args []string, envVars map[string]string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), flattenEnv(envVars)...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w: %s", name, err, string(output))
	}

	return nil
}

var scheduleParser = cron.NewParser(
	cron.SecondOptional |
		cron.Minute |
		cron.Hour |
		cron.Dom |
		cron.Month |
		cron.Dow |
		cron.Descriptor,
)

// Scheduler runs pg_dump on the configured cron expression and writes
// timestamped dumps into the backup directory.
type Scheduler struct {
	cron        *cron.Cron
	env         *env.Environment
	runner      CommandRunner
	logger      *slog.Logger
	now         func() time.Time
	jobTimeout  time.Duration
	started     bool
	startStopMu sync.Mutex
}

type Option func(*Scheduler)

// WithCommandRunner swaps the command runner, useful in tests.
func WithCommandRunner(runner CommandRunner) Option {
	return func(s *Scheduler) {
		if runner != nil {
			s.runner = runner
		}
	}
}

// WithNow controls the timestamp used for dump filenames.
func WithNow(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithJobTimeout bounds each backup execution.
func WithJobTimeout(timeout time.Duration) Option {
	return func(s *Scheduler) {
		if timeout > 0 {
			s.jobTimeout = timeout
		}
	}
}

func NewScheduler(environment *env.Environment, opts ...Option) (*Scheduler, error) {
	if environment == nil {
		return nil, errors.New("environment cannot be nil")
	}

	if _, err := scheduleParser.Parse(environment.Backup.Schedule); err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}

	scheduler := &Scheduler{
		cron:       cron.New(cron.WithParser(scheduleParser)),
		env:        environment,
		runner:     ExecRunner{},
		logger:     slog.Default(),
		now:        time.Now,
		jobTimeout: 5 * time.Minute,
	}

	for _, opt := range opts {
		opt(scheduler)
	}

	return scheduler, nil
}

// Start schedules the routine. The scheduler stops itself when ctx is
// cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	if s == nil {
		return errors.New("scheduler is nil")
	}

	s.startStopMu.Lock()
	defer s.startStopMu.Unlock()

	if s.started {
		return errors.New("scheduler already started")
	}

	job := func() {
		jobCtx := ctx
		if jobCtx == nil {
			jobCtx = context.Background()
		}

		if s.jobTimeout > 0 {
			var cancel context.CancelFunc
			jobCtx, cancel = context.WithTimeout(jobCtx, s.jobTimeout)
			defer cancel()
		}

		if err := s.Run(jobCtx); err != nil {
			s.logger.Error("database backup failed", "error", err)
		}
	}

	if _, err := s.cron.AddFunc(s.env.Backup.Schedule, job); err != nil {
		return fmt.Errorf("schedule backup job: %w", err)
	}

	s.cron.Start()
	s.started = true

	if ctx != nil {
		go func() {
			<-ctx.Done()
			s.Stop()
		}()
	}

	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s == nil {
		return
	}

	s.startStopMu.Lock()
	if !s.started {
		s.startStopMu.Unlock()
		return
	}

	ctx := s.cron.Stop()
	s.started = false
	s.startStopMu.Unlock()

	<-ctx.Done()
}

// Run performs one backup immediately.
func (s *Scheduler) Run(ctx context.Context) error {
	if s == nil {
		return errors.New("scheduler is nil")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	backupDir := s.env.Backup.Dir
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	timestamp := s.now().UTC().Format("20060102T150405Z")
	filePath := filepath.Join(backupDir, fmt.Sprintf("backup-%s.sql", timestamp))

	command := "pg_dump"
	if s.env.Backup.BinDir != "" {
		command = filepath.Join(s.env.Backup.BinDir, command)
	}

	args := []string{
		"--host", s.env.DB.Host,
		"--port", strconv.Itoa(s.env.DB.Port),
		"--username", s.env.DB.UserName,
		"--file", filePath,
		"--no-owner",
		"--no-privileges",
		s.env.DB.DatabaseName,
	}

	envVars := map[string]string{
		"PGPASSWORD": s.env.DB.UserPassword,
		"PGSSLMODE":  s.env.DB.SSLMode,
	}

	if err := s.runner.Run(ctx, command, args, envVars); err != nil {
		return err
	}

	s.logger.Info("database backup created", "path", filePath)

	return nil
}

func flattenEnv(envVars map[string]string) []string {
	if len(envVars) == 0 {
		return nil
	}

	values := make([]string, 0, len(envVars))
	for key, value := range envVars {
		values = append(values, fmt.Sprintf("%s=%s", key, value))
	}

	return values
}
