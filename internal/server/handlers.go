package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/jonathan/cv-builder/internal/validation"
)

// RenderRequest is the body of /render and /export.
type RenderRequest struct {
	Resume        json.RawMessage         `json:"resumeData"`
	Template      string                  `json:"template,omitempty"`
	Theme         rendering.ColorTheme    `json:"colorTheme"`
	Customization rendering.Customization `json:"customization"`
}

// ValidateResponse is the body returned by /validate.
type ValidateResponse struct {
	Valid  bool                     `json:"valid"`
	Errors *validation.ResumeErrors `json:"errors"`
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return &ErrBadRequest{Message: "invalid request body", Cause: err}
	}
	return nil
}

// readDocument decodes and schema-checks a document posted as the whole body.
func readDocument(w http.ResponseWriter, r *http.Request) (*types.ResumeDocument, error) {
	return resume.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

// handleAnalyze scores the posted document.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	doc, err := readDocument(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.analyzer.Analyze(doc))
}

// handleValidate reports field errors of the posted document.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	doc, err := readDocument(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	errs := validation.ValidateResume(doc)
	s.jsonResponse(w, http.StatusOK, ValidateResponse{Valid: errs.Empty(), Errors: errs})
}

// handleTemplates lists the available templates.
func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, rendering.Templates())
}

// renderRequest decodes a RenderRequest and renders its document. The
// template query parameter takes precedence over the body.
func (s *Server) renderRequest(w http.ResponseWriter, r *http.Request) (*types.ResumeDocument, string, error) {
	var req RenderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, "", err
	}
	if len(req.Resume) == 0 {
		return nil, "", &ErrBadRequest{Message: "resumeData is required"}
	}
	doc, err := resume.DecodeBytes(req.Resume)
	if err != nil {
		return nil, "", err
	}

	opts := rendering.Options{
		Template:      req.Template,
		Theme:         req.Theme,
		Customization: req.Customization,
	}
	if t := r.URL.Query().Get("template"); t != "" {
		opts.Template = t
	}

	html, err := rendering.Render(doc, opts)
	if err != nil {
		return nil, "", err
	}
	return doc, html, nil
}

// handleRender returns the document as HTML or plain text.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "html"
	}
	if format != "html" && format != "txt" {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		return
	}

	_, html, err := s.renderRequest(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if format == "txt" {
		text, err := rendering.PlainText(html)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, text)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

// handleExport prints the document to PDF or PNG.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	var contentType string
	switch format {
	case "pdf":
		contentType = "application/pdf"
	case "png":
		contentType = "image/png"
	default:
		s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("unsupported export format %q", format))
		return
	}
	if s.exporter == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "export is not configured")
		return
	}

	doc, html, err := s.renderRequest(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var data []byte
	if format == "pdf" {
		printable, perr := export.Printable(html, "CV - "+rendering.Title(doc))
		if perr != nil {
			s.fail(w, r, perr)
			return
		}
		data, err = s.exporter.PDF(r.Context(), printable)
	} else {
		data, err = s.exporter.PNG(r.Context(), html)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	name := export.FileName(doc, format)
	log.Printf("[server] exported %s (%d bytes)", name, len(data))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
