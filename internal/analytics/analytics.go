// Package analytics scores a resume document and derives suggestions,
// strengths and descriptive metrics from it. Every function here is pure:
// the same document and reference time always produce the same report.
package analytics

import (
	"math"
	"time"

	"github.com/jonathan/cv-builder/internal/types"
)

// Clock supplies the reference time for current positions.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Analyzer computes reports against an injected clock.
type Analyzer struct {
	clock Clock
}

// NewAnalyzer creates an Analyzer. A nil clock uses SystemClock.
func NewAnalyzer(clock Clock) *Analyzer {
	if clock == nil {
		clock = SystemClock
	}
	return &Analyzer{clock: clock}
}

// Analyze computes the report for doc.
func (a *Analyzer) Analyze(doc *types.ResumeDocument) *types.AnalysisReport {
	return AnalyzeAt(doc, a.clock.Now())
}

// Analyze computes the report for doc using the wall clock.
func Analyze(doc *types.ResumeDocument) *types.AnalysisReport {
	return AnalyzeAt(doc, time.Now())
}

// AnalyzeAt computes the report for doc with now as the end of current
// positions. A nil document is scored as an empty one.
func AnalyzeAt(doc *types.ResumeDocument, now time.Time) *types.AnalysisReport {
	if doc == nil {
		doc = &types.ResumeDocument{}
	}

	scores := types.Scores{
		Completeness:   Completeness(doc),
		ContentQuality: ContentQuality(doc),
		Structure:      Structure(doc),
		Keywords:       Keywords(doc),
	}
	overall := Overall(scores)

	return &types.AnalysisReport{
		Overall:     overall,
		Grade:       Grade(overall),
		Scores:      scores,
		Suggestions: Suggestions(doc, scores),
		Strengths:   Strengths(doc, scores),
		Metrics:     ComputeMetrics(doc, now),
	}
}

// Overall is the rounded mean of the four sub-scores.
func Overall(s types.Scores) int {
	sum := s.Completeness + s.ContentQuality + s.Structure + s.Keywords
	return int(math.Round(float64(sum) / 4))
}

// Grade maps an overall score to its letter grade.
func Grade(overall int) string {
	switch {
	case overall >= 90:
		return "A+"
	case overall >= 80:
		return "A"
	case overall >= 70:
		return "B+"
	case overall >= 60:
		return "B"
	case overall >= 50:
		return "C"
	default:
		return "D"
	}
}

// Level buckets a score for display: success, warning or danger.
func Level(score int) string {
	switch {
	case score >= 80:
		return "success"
	case score >= 60:
		return "warning"
	default:
		return "danger"
	}
}
