package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Binding errors
	ErrUnsupportedObject = fmt.Errorf("unsupported host object")
	ErrUnknownKey        = fmt.Errorf("unknown key")

	// Storage errors
	ErrPresetNotFound = fmt.Errorf("preset not found")
	ErrEmptyPreset    = fmt.Errorf("preset has no values")

	// Schema errors
	ErrNoMigrations     = fmt.Errorf("no migrations applied")
	ErrUnknownMigration = fmt.Errorf("unknown migration version")

	// Export errors
	ErrUnsupportedFormat = fmt.Errorf("unsupported format")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
