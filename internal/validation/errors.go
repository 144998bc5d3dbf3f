// Package validation provides field-level validation of resume documents.
// Failures are reported as values, never as Go errors.
package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Code classifies a field failure
type Code string

// Failure codes
const (
	CodeRequired      Code = "required"
	CodeTooShort      Code = "too_short"
	CodeInvalidFormat Code = "invalid_format"
	CodeInvalidDate   Code = "invalid_date"
	CodeDateRange     Code = "date_range"
)

// FieldError is a single failure scoped to one named field
type FieldError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// FieldErrors maps a JSON field name to its failure. An empty map means valid.
type FieldErrors map[string]FieldError

// Codes returns the failure code per field, convenient for comparisons.
func (fe FieldErrors) Codes() map[string]Code {
	codes := make(map[string]Code, len(fe))
	for field, err := range fe {
		codes[field] = err.Code
	}
	return codes
}

// String renders the errors sorted by field name.
func (fe FieldErrors) String() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, fe[f].Message))
	}
	return strings.Join(parts, "; ")
}

// ResumeErrors aggregates the failures of a whole document.
// Entry errors are keyed by the entry index.
type ResumeErrors struct {
	PersonalInfo   FieldErrors         `json:"personalInfo,omitempty"`
	WorkExperience map[int]FieldErrors `json:"workExperience,omitempty"`
	Education      map[int]FieldErrors `json:"education,omitempty"`
}

// Empty reports whether the document had no failures.
func (re *ResumeErrors) Empty() bool {
	return len(re.PersonalInfo) == 0 && len(re.WorkExperience) == 0 && len(re.Education) == 0
}

// Message returns the failure message for a field, or "" when the field is valid.
// index is ignored for the personal info section.
func (re *ResumeErrors) Message(section, field string, index int) string {
	var fe FieldErrors
	switch section {
	case "personalInfo":
		fe = re.PersonalInfo
	case "workExperience":
		fe = re.WorkExperience[index]
	case "education":
		fe = re.Education[index]
	}
	return fe[field].Message
}
