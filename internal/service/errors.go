package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input rejected before anything is written.
	ErrValidation = errors.New("invalid input")
	// ErrUnauthorized is returned when a bearer token resolves to no user.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrGenerationFailed marks an LLM call that failed or produced unusable output.
	ErrGenerationFailed = errors.New("AI generation failed")
	// ErrMasterConversation is returned when deleting the master conversation.
	ErrMasterConversation = errors.New("the master conversation cannot be deleted")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func invalidErr(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// GenerationError carries the user-facing message for a failed generation.
// It matches ErrGenerationFailed under errors.Is.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string { return e.Message }

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }

const (
	msgGenerationFailed = "AI generation failed"
	msgParseFailed      = "Failed to parse AI response"
)
