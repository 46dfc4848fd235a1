package letters

import (
	"errors"
	"fmt"
)

var (
	ErrMissingResume         = errors.New("resume is required")
	ErrMissingJobDescription = errors.New("job description is required")
	ErrGenerationInFlight    = errors.New("generation already in progress")
)

const (
	ErrorCodeMissingInput = "MISSING_INPUT"
	ErrorCodeFileRead     = "FILE_READ_ERROR"
	ErrorCodeAPI          = "API_ERROR"
	ErrorCodeFileWrite    = "FILE_WRITE_ERROR"
	ErrorCodeConflict     = "GENERATION_IN_FLIGHT"
)

// APIError wraps a failure from the generation API.
type APIError struct {
	Err error
}

func (e *APIError) Error() string { return fmt.Sprintf("generation api: %v", e.Err) }
func (e *APIError) Unwrap() error { return e.Err }

// FileWriteError wraps a failure to render or write the PDF artifact.
type FileWriteError struct {
	Err error
}

func (e *FileWriteError) Error() string { return fmt.Sprintf("write pdf: %v", e.Err) }
func (e *FileWriteError) Unwrap() error { return e.Err }
