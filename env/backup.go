package env

type BackupEnvironment struct {
	// Schedule is a cron expression; empty disables the backup routine.
	Schedule string `validate:"omitempty,cron"`
	Dir      string `validate:"required_with=Schedule,omitempty"`
	// BinDir locates the postgres client binaries (pg_dump).
	BinDir string `validate:"omitempty"`
}

func (e BackupEnvironment) IsEnabled() bool {
	return e.Schedule != ""
}
