// Package session owns the document being edited. Each edit swaps in a new
// immutable snapshot and recomputes validation and analysis, so concurrent
// readers such as a preview and the analytics panel always see a
// consistent state.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/cv-builder/internal/analytics"
	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/storage"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/jonathan/cv-builder/internal/validation"
)

// Edit derives a new document from the current one. It must not modify its
// argument.
type Edit func(doc *types.ResumeDocument) (*types.ResumeDocument, error)

// State is one consistent view of the session. Values are never modified
// after they are published.
type State struct {
	Document *types.ResumeDocument
	Report   *types.AnalysisReport
	Personal validation.FieldErrors
	Section  types.Section
	Version  int
}

// Session holds the current State for one editor.
type Session struct {
	mu       sync.RWMutex
	analyzer *analytics.Analyzer
	state    State
}

// New starts a session with an empty document.
func New(analyzer *analytics.Analyzer) *Session {
	if analyzer == nil {
		analyzer = analytics.NewAnalyzer(nil)
	}
	s := &Session{analyzer: analyzer}
	s.state = s.derive(resume.New(), types.SectionPersonal, 0)
	return s
}

func (s *Session) derive(doc *types.ResumeDocument, section types.Section, version int) State {
	return State{
		Document: doc,
		Report:   s.analyzer.Analyze(doc),
		Personal: validation.ValidatePersonalInfo(doc.PersonalInfo),
		Section:  section,
		Version:  version,
	}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Apply runs edit against the current document and publishes the result.
// On error the state is unchanged.
func (s *Session) Apply(edit Edit) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := edit(s.state.Document)
	if err != nil {
		return s.state, err
	}
	if next == nil {
		return s.state, fmt.Errorf("edit returned no document")
	}
	s.state = s.derive(resume.Clone(next), s.state.Section, s.state.Version+1)
	return s.state, nil
}

// Replace publishes doc as the new document.
func (s *Session) Replace(doc *types.ResumeDocument) State {
	st, _ := s.Apply(func(*types.ResumeDocument) (*types.ResumeDocument, error) {
		return resume.Clone(doc), nil
	})
	return st
}

// Reset discards the document and starts over from an empty one.
func (s *Session) Reset() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.derive(resume.New(), types.SectionPersonal, s.state.Version+1)
	return s.state
}

// Open moves the editor to section.
func (s *Session) Open(section types.Section) error {
	if !section.Valid() {
		return fmt.Errorf("unknown section %q", section)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Section = section
	return nil
}

// Navigate resolves a suggestion action to its section and opens it.
func (s *Session) Navigate(action types.SuggestionAction) (types.Section, error) {
	section, ok := action.Target()
	if !ok {
		return "", fmt.Errorf("unknown suggestion action %q", action)
	}
	return section, s.Open(section)
}

// Save persists the current document under name.
func (s *Session) Save(ctx context.Context, store storage.Store, userID, name string) (*types.SavedResume, error) {
	doc := s.Snapshot().Document
	return store.Save(ctx, userID, doc, name)
}

// Load replaces the document with a saved one.
func (s *Session) Load(saved *types.SavedResume) State {
	return s.Replace(saved.Document)
}
