//nolint:revive // types is a standard Go package name pattern
package types

// Section identifies a navigable part of the editing form.
// The body sections also define the rendering order of a document.
type Section string

// Form sections
const (
	SectionPersonal       Section = "personal"
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionSkills         Section = "skills"
	SectionLanguages      Section = "languages"
	SectionCertifications Section = "certifications"
	SectionTemplates      Section = "templates"
	SectionAdvanced       Section = "advanced"
)

// DefaultSectionOrder is the body order used when a document has none.
var DefaultSectionOrder = []Section{
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionLanguages,
	SectionCertifications,
}

// IsBody reports whether the section is rendered in the document body.
func (s Section) IsBody() bool {
	for _, b := range DefaultSectionOrder {
		if b == s {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	switch s {
	case SectionPersonal, SectionTemplates, SectionAdvanced:
		return true
	}
	return s.IsBody()
}
