package server

import (
	"net/http"

	"github.com/jonathan/cv-builder/internal/server/middleware"
	"github.com/jonathan/cv-builder/internal/types"
)

// handleRegister creates an account and returns a session token.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	resp, err := s.auth.Register(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, resp)
}

// handleSignIn authenticates credentials and returns a session token.
func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var creds types.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		s.fail(w, r, err)
		return
	}

	resp, err := s.auth.SignIn(r.Context(), creds)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleSignOut revokes the token that authenticated the request.
func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetToken(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := s.auth.SignOut(r.Context(), token); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
