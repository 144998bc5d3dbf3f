package analytics

import (
	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/types"
)

func suggestion(kind types.SuggestionKind, action types.SuggestionAction, title, description string) types.Suggestion {
	target, _ := action.Target()
	return types.Suggestion{
		Kind:        kind,
		Title:       title,
		Description: description,
		Action:      action,
		Target:      target,
	}
}

// Suggestions lists the fixes for the document's deficiencies. The order
// is fixed: complete info, photo, summary, skills.
func Suggestions(doc *types.ResumeDocument, scores types.Scores) []types.Suggestion {
	out := []types.Suggestion{}

	if scores.Completeness < 80 {
		out = append(out, suggestion(types.SuggestionWarning, types.ActionCompleteInfo,
			"Incomplete information",
			"Fill in every section to strengthen your profile"))
	}

	if !resume.HasProfileImage(doc) {
		out = append(out, suggestion(types.SuggestionInfo, types.ActionAddPhoto,
			"Add a professional photo",
			"Profile photos increase the chances of being contacted"))
	}

	if textLen(doc.ProfessionalSummary) < 100 {
		out = append(out, suggestion(types.SuggestionWarning, types.ActionImproveSummary,
			"Improve your professional summary",
			"A summary of 100-300 characters is ideal to catch attention"))
	}

	if len(doc.Skills) < 8 {
		out = append(out, suggestion(types.SuggestionInfo, types.ActionAddSkills,
			"Add more skills",
			"Include at least 8-10 relevant skills"))
	}

	return out
}

// Strengths lists what the document already does well.
func Strengths(doc *types.ResumeDocument, scores types.Scores) []string {
	out := []string{}

	if scores.Completeness >= 90 {
		out = append(out, "Very complete profile")
	}
	if len(doc.WorkExperience) >= 3 {
		out = append(out, "Extensive work experience")
	}
	if len(doc.Certifications) >= 2 {
		out = append(out, "Strong certifications")
	}
	if textLen(doc.ProfessionalSummary) >= 150 {
		out = append(out, "Detailed professional summary")
	}

	return out
}
