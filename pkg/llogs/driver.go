package llogs

// Driver is the minimal surface the application needs from a logging backend.
type Driver interface {
	Close() bool
}
