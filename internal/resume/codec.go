package resume

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
)

// Decode reads a JSON document from r, validates it against the resume
// schema, and returns it normalized. This is the boundary for any document
// arriving from outside the process.
func Decode(r io.Reader) (*types.ResumeDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Message: "failed to read document", Cause: err}
	}
	return DecodeBytes(data)
}

// DecodeBytes is Decode for an in-memory payload.
func DecodeBytes(data []byte) (*types.ResumeDocument, error) {
	if !json.Valid(data) {
		return nil, &LoadError{Message: "document is not valid JSON"}
	}

	if err := schemas.ValidateResume(data); err != nil {
		return nil, &LoadError{Message: "document does not match schema", Cause: err}
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Message: "failed to unmarshal JSON", Cause: err}
	}

	Normalize(&doc)
	return &doc, nil
}

// LoadFile decodes the document stored at path.
func LoadFile(path string) (*types.ResumeDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to open file %s", path), Cause: err}
	}
	defer f.Close()

	return Decode(f)
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc *types.ResumeDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Clone(doc)); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return nil
}
