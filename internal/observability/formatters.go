// Package observability provides formatted output for the CLI.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/cv-builder/internal/analytics"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/jonathan/cv-builder/internal/validation"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the width of a score bar
	barWidth = 20
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// bar draws score as a filled bar of barWidth cells.
func bar(score int) string {
	filled := max(0, min(barWidth, score*barWidth/100))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// PrintReport outputs the scores, metrics, strengths and suggestions of an analysis.
func (p *Printer) PrintReport(report *types.AnalysisReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:  %d/100  Grade %s (%s)\n\n", report.Overall, report.Grade, analytics.Level(report.Overall)))

	rows := []struct {
		label string
		score int
	}{
		{"Completeness", report.Scores.Completeness},
		{"Content", report.Scores.ContentQuality},
		{"Structure", report.Scores.Structure},
		{"Keywords", report.Scores.Keywords},
	}
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-13s %s %3d\n", r.label, bar(r.score), r.score))
	}

	m := report.Metrics
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Words: %d   Skills: %d   Experience: %.1f years\n", m.WordCount, m.SkillsCount, m.ExperienceYears))
	sb.WriteString(fmt.Sprintf("Sections completed: %d/%d", m.SectionsCompleted, m.TotalSections))

	p.printBox("CV ANALYSIS", sb.String())

	if len(report.Strengths) > 0 {
		var st strings.Builder
		count := min(len(report.Strengths), maxItemsToShow)
		for i := 0; i < count; i++ {
			st.WriteString(fmt.Sprintf("✓ %s\n", report.Strengths[i]))
		}
		if len(report.Strengths) > maxItemsToShow {
			st.WriteString(fmt.Sprintf("... and %d more\n", len(report.Strengths)-maxItemsToShow))
		}
		p.printBox("STRENGTHS", strings.TrimSuffix(st.String(), "\n"))
	}

	if len(report.Suggestions) > 0 {
		var sg strings.Builder
		for i, s := range report.Suggestions {
			marker := "•"
			if s.Kind == types.SuggestionWarning {
				marker = "!"
			}
			sg.WriteString(fmt.Sprintf("%s %s\n", marker, s.Title))
			sg.WriteString(fmt.Sprintf("  %s\n", s.Description))
			sg.WriteString(fmt.Sprintf("  → %s", s.Target))
			if i < len(report.Suggestions)-1 {
				sg.WriteString("\n\n")
			}
		}
		p.printBox("SUGGESTIONS", sg.String())
	}
}

func writeFieldErrors(sb *strings.Builder, prefix string, fe validation.FieldErrors) {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		sb.WriteString(fmt.Sprintf("✗ %s%s: %s\n", prefix, f, fe[f].Message))
	}
}

func sortedIndexes(m map[int]validation.FieldErrors) []int {
	idx := make([]int, 0, len(m))
	for i := range m {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// PrintValidation outputs every field failure, or a success box when there are none.
func (p *Printer) PrintValidation(errs *validation.ResumeErrors) {
	if errs == nil || errs.Empty() {
		p.printBox("✓ NO VALIDATION ERRORS", "All fields are valid.")
		return
	}

	var sb strings.Builder
	writeFieldErrors(&sb, "personalInfo.", errs.PersonalInfo)
	for _, i := range sortedIndexes(errs.WorkExperience) {
		writeFieldErrors(&sb, fmt.Sprintf("workExperience[%d].", i), errs.WorkExperience[i])
	}
	for _, i := range sortedIndexes(errs.Education) {
		writeFieldErrors(&sb, fmt.Sprintf("education[%d].", i), errs.Education[i])
	}

	p.printBox("VALIDATION ERRORS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSavedResumes outputs a user's saved resumes, newest last.
func (p *Printer) PrintSavedResumes(list []types.SavedResume) {
	if len(list) == 0 {
		p.printBox("SAVED RESUMES", "No saved resumes.")
		return
	}

	var sb strings.Builder
	for i, r := range list {
		sb.WriteString(fmt.Sprintf("%s  %s\n", r.UpdatedAt.Format("2006-01-02 15:04"), r.Name))
		sb.WriteString(fmt.Sprintf("  id: %s", r.ID))
		if i < len(list)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("SAVED RESUMES (%d)", len(list)), sb.String())
}

// PrintTemplates outputs the available templates.
func (p *Printer) PrintTemplates(list []rendering.Template) {
	var sb strings.Builder
	for i, t := range list {
		sb.WriteString(fmt.Sprintf("%-13s %s", t.ID, t.Description))
		if t.Premium {
			sb.WriteString(" ★")
		}
		if i < len(list)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("TEMPLATES", sb.String())
}
