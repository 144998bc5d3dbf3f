package resume

import (
	"slices"

	"github.com/jonathan/cv-builder/internal/types"
)

// New returns an empty, normalized document.
func New() *types.ResumeDocument {
	doc := &types.ResumeDocument{}
	Normalize(doc)
	return doc
}

// Normalize replaces nil slices with empty ones so that consumers never
// distinguish absence from emptiness. It also drops unknown or repeated
// section order entries and appends missing body sections.
func Normalize(doc *types.ResumeDocument) {
	if doc.WorkExperience == nil {
		doc.WorkExperience = []types.WorkExperience{}
	}
	if doc.Education == nil {
		doc.Education = []types.Education{}
	}
	if doc.Skills == nil {
		doc.Skills = []types.Skill{}
	}
	if doc.Languages == nil {
		doc.Languages = []types.Language{}
	}
	if doc.Certifications == nil {
		doc.Certifications = []types.Certification{}
	}
	for i := range doc.WorkExperience {
		if doc.WorkExperience[i].Achievements == nil {
			doc.WorkExperience[i].Achievements = []string{}
		}
	}
	doc.SectionOrder = normalizeOrder(doc.SectionOrder)
}

func normalizeOrder(order []types.Section) []types.Section {
	result := make([]types.Section, 0, len(types.DefaultSectionOrder))
	seen := make(map[types.Section]struct{})
	for _, s := range order {
		if !s.IsBody() {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		result = append(result, s)
	}
	for _, s := range types.DefaultSectionOrder {
		if _, ok := seen[s]; !ok {
			result = append(result, s)
		}
	}
	return result
}

// Clone returns a deep copy of doc. The copy shares no slices or pointers
// with the original, so holders of the old snapshot never observe an edit.
func Clone(doc *types.ResumeDocument) *types.ResumeDocument {
	if doc == nil {
		return New()
	}

	out := *doc
	if doc.PersonalInfo.ProfileImage != nil {
		img := *doc.PersonalInfo.ProfileImage
		out.PersonalInfo.ProfileImage = &img
	}

	out.WorkExperience = make([]types.WorkExperience, len(doc.WorkExperience))
	for i, exp := range doc.WorkExperience {
		exp.Achievements = slices.Clone(exp.Achievements)
		if exp.Achievements == nil {
			exp.Achievements = []string{}
		}
		out.WorkExperience[i] = exp
	}
	out.Education = append([]types.Education{}, doc.Education...)
	out.Skills = append([]types.Skill{}, doc.Skills...)
	out.Languages = append([]types.Language{}, doc.Languages...)
	out.Certifications = append([]types.Certification{}, doc.Certifications...)
	out.SectionOrder = normalizeOrder(doc.SectionOrder)

	return &out
}

// HasProfileImage reports whether a non-empty photo is attached.
func HasProfileImage(doc *types.ResumeDocument) bool {
	return doc.PersonalInfo.ProfileImage != nil && *doc.PersonalInfo.ProfileImage != ""
}
