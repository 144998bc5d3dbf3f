package analytics

import (
	"math"
	"strings"
	"time"

	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/types"
)

const totalSections = 5

// ComputeMetrics derives the descriptive counts. now ends current positions.
func ComputeMetrics(doc *types.ResumeDocument, now time.Time) types.Metrics {
	completed := 0
	for _, ok := range []bool{
		doc.PersonalInfo.FullName != "",
		doc.ProfessionalSummary != "",
		len(doc.WorkExperience) > 0,
		len(doc.Education) > 0,
		len(doc.Skills) > 0,
	} {
		if ok {
			completed++
		}
	}

	return types.Metrics{
		WordCount:         len(strings.Fields(doc.ProfessionalSummary)),
		SectionsCompleted: completed,
		TotalSections:     totalSections,
		ExperienceYears:   ExperienceYears(doc.WorkExperience, now),
		SkillsCount:       len(doc.Skills),
	}
}

// ExperienceYears sums the month spans of all entries and converts them to
// years rounded to one decimal. Entries with unparseable dates or an end
// before the start contribute nothing.
func ExperienceYears(entries []types.WorkExperience, now time.Time) float64 {
	total := 0
	for _, exp := range entries {
		months, ok := entryMonths(exp, now)
		if ok {
			total += months
		}
	}
	return math.Round(float64(total)/12*10) / 10
}

func entryMonths(exp types.WorkExperience, now time.Time) (int, bool) {
	start, err := resume.ParseDate(exp.StartDate)
	if err != nil {
		return 0, false
	}

	end := now.UTC()
	if !exp.Current {
		end, err = resume.ParseDate(exp.EndDate)
		if err != nil {
			return 0, false
		}
	}

	months := resume.MonthsBetween(start, end)
	if months < 0 {
		return 0, false
	}
	return months, true
}
