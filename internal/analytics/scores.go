package analytics

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/types"
)

const maxScore = 100

// Vocabulary is the professional terms searched for in the summary and
// job descriptions.
var Vocabulary = []string{
	"liderazgo",
	"gestión",
	"innovación",
	"resultados",
	"equipo",
	"proyecto",
	"estrategia",
	"análisis",
	"desarrollo",
	"mejora",
}

func textLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Completeness scores how many of the expected fields are filled in.
func Completeness(doc *types.ResumeDocument) int {
	score := 0
	info := doc.PersonalInfo

	if info.FullName != "" {
		score += 10
	}
	if info.Email != "" {
		score += 10
	}
	if info.Phone != "" {
		score += 5
	}
	if resume.HasProfileImage(doc) {
		score += 5
	}

	if textLen(doc.ProfessionalSummary) > 50 {
		score += 20
	}

	switch n := len(doc.WorkExperience); {
	case n >= 2:
		score += 25
	case n >= 1:
		score += 15
	}

	if len(doc.Education) >= 1 {
		score += 15
	}

	switch n := len(doc.Skills); {
	case n >= 5:
		score += 10
	case n >= 3:
		score += 5
	}

	return min(score, maxScore)
}

// ContentQuality scores the depth of the written content. Work entries
// accumulate without a per-entry limit; the total is capped once.
func ContentQuality(doc *types.ResumeDocument) int {
	score := 0

	summary := textLen(doc.ProfessionalSummary)
	switch {
	case summary >= 100 && summary <= 300:
		score += 25
	case summary >= 50:
		score += 15
	}

	for _, exp := range doc.WorkExperience {
		if textLen(exp.Description) > 100 {
			score += 15
		}
		if len(exp.Achievements) > 0 {
			score += 10
		}
	}

	switch n := len(doc.Skills); {
	case n >= 8:
		score += 20
	case n >= 5:
		score += 15
	}

	switch n := len(doc.Certifications); {
	case n >= 2:
		score += 15
	case n >= 1:
		score += 10
	}

	return min(score, maxScore)
}

// Structure scores dates, contact details and section balance. Section
// ordering always earns the baseline.
func Structure(doc *types.ResumeDocument) int {
	score := 20

	if datesConsistent(doc.WorkExperience) {
		score += 25
	}

	if doc.PersonalInfo.Email != "" && doc.PersonalInfo.Phone != "" {
		score += 20
	}

	filled := 0
	for _, n := range []int{
		len(doc.WorkExperience),
		len(doc.Education),
		len(doc.Skills),
		len(doc.Certifications),
	} {
		if n > 0 {
			filled++
		}
	}
	switch filled {
	case 4:
		score += 35
	case 3:
		score += 25
	case 2:
		score += 15
	}

	return min(score, maxScore)
}

// datesConsistent holds when every entry has a start and either an end or
// the current flag. It is vacuously true for no entries.
func datesConsistent(entries []types.WorkExperience) bool {
	for _, exp := range entries {
		if exp.StartDate == "" || (!exp.Current && exp.EndDate == "") {
			return false
		}
	}
	return true
}

// Keywords scores vocabulary coverage with a case-insensitive substring
// match over the summary and all job descriptions.
func Keywords(doc *types.ResumeDocument) int {
	text := keywordText(doc)

	score := 0
	for _, kw := range Vocabulary {
		if strings.Contains(text, kw) {
			score += 10
		}
	}
	return min(score, maxScore)
}

func keywordText(doc *types.ResumeDocument) string {
	descriptions := make([]string, len(doc.WorkExperience))
	for i, exp := range doc.WorkExperience {
		descriptions[i] = exp.Description
	}
	text := doc.ProfessionalSummary + " " + strings.Join(descriptions, " ")
	return strings.ToLower(norm.NFC.String(text))
}
