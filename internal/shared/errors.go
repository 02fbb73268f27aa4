package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Storage errors
	ErrNotFound       = fmt.Errorf("record not found")
	ErrNotInitialized = fmt.Errorf("storage not initialized")
	ErrCorruptData    = fmt.Errorf("corrupt data in storage")
	ErrStorageFailed  = fmt.Errorf("storage operation failed")

	// Upload validation errors
	ErrInvalidFileType = fmt.Errorf("invalid file type")
	ErrFileTooLarge    = fmt.Errorf("file too large")
	ErrInvalidEncoding = fmt.Errorf("invalid file encoding")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
