package internal

import "time"

// File permission constants
const (
	// DirectoryPermissions is the standard permission for creating directories
	DirectoryPermissions = 0755

	// FilePermissions is the permission used for table files written back by the service
	FilePermissions = 0644
)

// Authoring constants
const (
	// DuplicateAngle is the angle in degrees under which two normals are
	// considered to describe the same side
	DuplicateAngle = 0.05
)

// Analysis constants
const (
	// DefaultSamples is the number of random orientations drawn by default
	DefaultSamples = 100000

	// ProgressSteps is how many times the progress bar is advanced per run
	ProgressSteps = 100
)

// Duration constants for commonly used timeouts
const (
	// DefaultTimeout is used for standard operations
	DefaultTimeout = 5 * time.Second

	// DefaultDebounce is how long the watcher waits for writes to settle
	DefaultDebounce = 250 * time.Millisecond

	// SentryFlushTimeout bounds how long shutdown waits for queued events
	SentryFlushTimeout = 2 * time.Second
)
