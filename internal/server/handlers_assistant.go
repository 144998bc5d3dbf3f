package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/cv-builder/internal/assistant"
	"github.com/jonathan/cv-builder/internal/imaging"
	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/types"
)

// AssistRequest is the body of POST /assistant/{section}. When Resume is
// set the generated content is applied to it.
type AssistRequest struct {
	Prompt string          `json:"prompt"`
	Resume json.RawMessage `json:"resumeData,omitempty"`
}

// AssistResponse carries generated content and, when requested, the
// updated document.
type AssistResponse struct {
	Section  assistant.Section     `json:"section"`
	Content  string                `json:"content"`
	Examples []string              `json:"examples,omitempty"`
	Resume   *types.ResumeDocument `json:"resumeData,omitempty"`
}

// ImageResponse is the body returned by POST /images.
type ImageResponse struct {
	DataURL string `json:"dataUrl"`
}

// imageField is the multipart field holding the uploaded picture.
const imageField = "image"

// handleAssist generates section content from a prompt.
func (s *Server) handleAssist(w http.ResponseWriter, r *http.Request) {
	section, err := assistant.ParseSection(r.PathValue("section"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if s.assistant == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "assistant is not configured")
		return
	}

	var req AssistRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	content, err := s.assistant.Generate(r.Context(), section, req.Prompt)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := AssistResponse{Section: section, Content: content, Examples: assistant.Examples(section)}
	if len(req.Resume) > 0 {
		doc, err := resume.DecodeBytes(req.Resume)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if resp.Resume, err = assistant.Apply(doc, section, content); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleUploadImage validates and compresses a profile picture and returns
// it as a data URL.
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.MaxUploadSize
	// Leave room for the multipart envelope so oversize files reach imaging.
	r.Body = http.MaxBytesReader(w, r.Body, limit+64<<10)
	if err := r.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.fail(w, r, &imaging.ErrTooLarge{Size: maxErr.Limit, Limit: limit})
			return
		}
		s.fail(w, r, &ErrBadRequest{Message: "invalid multipart form", Cause: err})
		return
	}

	file, _, err := r.FormFile(imageField)
	if err != nil {
		s.fail(w, r, &ErrBadRequest{Message: "missing image field", Cause: err})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.fail(w, r, &ErrBadRequest{Message: "failed to read image", Cause: err})
		return
	}

	dataURL, err := imaging.Process(data, limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ImageResponse{DataURL: dataURL})
}
