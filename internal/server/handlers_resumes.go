package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/server/middleware"
	"github.com/jonathan/cv-builder/internal/storage"
	"github.com/jonathan/cv-builder/internal/types"
)

// SaveResumeRequest is the body of POST /resumes.
type SaveResumeRequest struct {
	Name   string          `json:"resumeName"`
	Resume json.RawMessage `json:"resumeData"`
}

// ResumeListResponse is the body returned by GET /resumes.
type ResumeListResponse struct {
	Resumes []types.SavedResume `json:"resumes"`
	Count   int                 `json:"count"`
}

func (s *Server) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return id, true
}

// handleListResumes lists the caller's saved resumes.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	list, err := s.store.List(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if list == nil {
		list = []types.SavedResume{}
	}
	s.jsonResponse(w, http.StatusOK, ResumeListResponse{Resumes: list, Count: len(list)})
}

// handleSaveResume stores a named snapshot of the posted document.
func (s *Server) handleSaveResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var req SaveResumeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if len(req.Resume) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "resumeData is required")
		return
	}
	doc, err := resume.DecodeBytes(req.Resume)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	saved, err := s.store.Save(r.Context(), userID, doc, req.Name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, saved)
}

// handleGetResume returns one of the caller's saved resumes. Resumes of
// other users are reported as not found.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	saved, err := s.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if saved.UserID != userID {
		s.fail(w, r, storage.ErrNotFound)
		return
	}
	s.jsonResponse(w, http.StatusOK, saved)
}

// handleDeleteResume removes one of the caller's saved resumes.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	if err := s.store.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
