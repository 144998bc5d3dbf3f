package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/cv-builder/internal/assistant"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/identity"
	"github.com/jonathan/cv-builder/internal/imaging"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/storage"
	"github.com/jonathan/cv-builder/internal/theme"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "email taken", err: &identity.ErrEmailAlreadyExists{Email: "a@b.com"}, want: http.StatusConflict},
		{name: "bad credentials", err: &identity.ErrInvalidCredentials{}, want: http.StatusUnauthorized},
		{name: "bad token", err: &identity.ErrInvalidToken{Reason: "expired"}, want: http.StatusUnauthorized},
		{name: "revoked", err: identity.ErrRevoked, want: http.StatusUnauthorized},
		{name: "identity validation", err: &identity.ErrValidation{Message: "invalid"}, want: http.StatusBadRequest},
		{name: "bad request", err: &ErrBadRequest{Message: "invalid body"}, want: http.StatusBadRequest},
		{name: "load error", err: &resume.LoadError{Message: "not JSON"}, want: http.StatusBadRequest},
		{name: "edit error", err: &resume.EditError{Section: "skills", Index: 3, Cause: resume.ErrIndexOutOfRange}, want: http.StatusBadRequest},
		{name: "options", err: &rendering.OptionsError{Field: "main font", Value: "x"}, want: http.StatusBadRequest},
		{name: "empty prompt", err: assistant.ErrEmptyPrompt, want: http.StatusBadRequest},
		{name: "empty image", err: imaging.ErrEmpty, want: http.StatusBadRequest},
		{name: "theme name", err: theme.ErrThemeName, want: http.StatusBadRequest},
		{name: "unknown section", err: &assistant.ErrUnknownSection{Section: "hobbies"}, want: http.StatusNotFound},
		{name: "not found", err: storage.ErrNotFound, want: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("get: %w", storage.ErrNotFound), want: http.StatusNotFound},
		{name: "too large", err: &imaging.ErrTooLarge{Size: 10, Limit: 5}, want: http.StatusRequestEntityTooLarge},
		{name: "body too large", err: &http.MaxBytesError{Limit: 5}, want: http.StatusRequestEntityTooLarge},
		{name: "unsupported type", err: &imaging.ErrUnsupportedType{MIME: "text/plain"}, want: http.StatusUnsupportedMediaType},
		{name: "export", err: &export.ExportError{Format: "pdf", Message: "crashed"}, want: http.StatusBadGateway},
		{name: "deadline", err: fmt.Errorf("export: %w", context.DeadlineExceeded), want: http.StatusGatewayTimeout},
		{name: "export deadline", err: &export.ExportError{Format: "pdf", Message: "timed out", Cause: context.DeadlineExceeded}, want: http.StatusGatewayTimeout},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrBadRequest(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := &ErrBadRequest{Message: "invalid request body", Cause: cause}

	assert.Equal(t, "invalid request body: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "missing", (&ErrBadRequest{Message: "missing"}).Error())
}
