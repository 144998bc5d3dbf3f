// Package types provides type definitions for structured data used throughout the cv-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// ResumeDocument is the complete record of a user's CV content.
// Values are treated as immutable snapshots: edits produce a new document.
type ResumeDocument struct {
	PersonalInfo        PersonalInfo     `json:"personalInfo"`
	ProfessionalSummary string           `json:"professionalSummary"`
	WorkExperience      []WorkExperience `json:"workExperience"`
	Education           []Education      `json:"education"`
	Skills              []Skill          `json:"skills"`
	Languages           []Language       `json:"languages"`
	Certifications      []Certification  `json:"certifications"`
	SectionOrder        []Section        `json:"sectionOrder,omitempty"`
}

// PersonalInfo holds contact details. Only FullName and Email carry
// requiredness rules.
type PersonalInfo struct {
	FullName  string `json:"fullName"`
	Title     string `json:"title"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedIn"`
	Portfolio string `json:"portfolio"`
	// ProfileImage is a self-contained data URL, nil when no photo is set.
	ProfileImage *string `json:"profileImage"`
}

// WorkExperience represents one job entry
type WorkExperience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Current      bool     `json:"current,omitempty"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education represents one education entry
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description,omitempty"`
}

// SkillLevel is the self-assessed proficiency of a skill
type SkillLevel string

// Skill levels
const (
	SkillLevelUnset   SkillLevel = ""
	SkillBeginner     SkillLevel = "Principiante"
	SkillIntermediate SkillLevel = "Intermedio"
	SkillAdvanced     SkillLevel = "Avanzado"
	SkillExpert       SkillLevel = "Experto"
)

// Valid reports whether the level is one of the known values or unset.
func (l SkillLevel) Valid() bool {
	switch l {
	case SkillLevelUnset, SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert:
		return true
	}
	return false
}

// Skill is a named skill with an optional level
type Skill struct {
	Name  string     `json:"name"`
	Level SkillLevel `json:"level,omitempty"`
}

// LanguageLevel is a CEFR level or native
type LanguageLevel string

// Language levels
const (
	LanguageLevelUnset LanguageLevel = ""
	LanguageA1         LanguageLevel = "A1"
	LanguageA2         LanguageLevel = "A2"
	LanguageB1         LanguageLevel = "B1"
	LanguageB2         LanguageLevel = "B2"
	LanguageC1         LanguageLevel = "C1"
	LanguageC2         LanguageLevel = "C2"
	LanguageNative     LanguageLevel = "Nativo"
)

// Valid reports whether the level is one of the known values or unset.
func (l LanguageLevel) Valid() bool {
	switch l {
	case LanguageLevelUnset, LanguageA1, LanguageA2, LanguageB1, LanguageB2, LanguageC1, LanguageC2, LanguageNative:
		return true
	}
	return false
}

// Language is a spoken language with an optional level
type Language struct {
	Name  string        `json:"name"`
	Level LanguageLevel `json:"level,omitempty"`
}

// Certification represents a certificate or license
type Certification struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Year         string `json:"year"`
}

// SavedResume is a persisted named snapshot of a document
type SavedResume struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Name      string          `json:"resumeName"`
	Document  *ResumeDocument `json:"resumeData"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
