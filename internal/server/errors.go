package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/cv-builder/internal/assistant"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/identity"
	"github.com/jonathan/cv-builder/internal/imaging"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/storage"
	"github.com/jonathan/cv-builder/internal/theme"
)

// ErrBadRequest indicates a malformed request
type ErrBadRequest struct {
	Message string
	Cause   error
}

func (e *ErrBadRequest) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ErrBadRequest) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailTaken  *identity.ErrEmailAlreadyExists
		badCreds    *identity.ErrInvalidCredentials
		badToken    *identity.ErrInvalidToken
		invalid     *identity.ErrValidation
		badRequest  *ErrBadRequest
		loadErr     *resume.LoadError
		editErr     *resume.EditError
		optionsErr  *rendering.OptionsError
		unknownSec  *assistant.ErrUnknownSection
		unsupported *imaging.ErrUnsupportedType
		tooLarge    *imaging.ErrTooLarge
		exportErr   *export.ExportError
		maxBytesErr *http.MaxBytesError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &emailTaken):
		return http.StatusConflict
	case errors.As(err, &badCreds), errors.As(err, &badToken), errors.Is(err, identity.ErrRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, storage.ErrNotFound), errors.As(err, &unknownSec):
		return http.StatusNotFound
	case errors.As(err, &tooLarge), errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &invalid), errors.As(err, &badRequest), errors.As(err, &loadErr),
		errors.As(err, &editErr), errors.As(err, &optionsErr),
		errors.Is(err, assistant.ErrEmptyPrompt), errors.Is(err, imaging.ErrEmpty),
		errors.Is(err, theme.ErrThemeName), errors.Is(err, resume.ErrIndexOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &exportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
