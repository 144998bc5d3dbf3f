package server

import (
	"net/http"

	"github.com/jonathan/cv-builder/internal/theme"
)

// handleGetSettings returns the caller's theme settings.
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	settings, err := s.settings.Load(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, settings)
}

// handlePutSettings replaces the caller's theme settings.
func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	// Fields missing from the body keep their defaults.
	settings := theme.Default()
	if err := decodeJSON(w, r, &settings); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := settings.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.settings.Save(r.Context(), userID, settings); err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, settings)
}
