package resume

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// Every edit below takes the current snapshot and returns a new one.
// The input document is never modified, including on error.

// SetPersonalField sets one personal info field by its JSON name.
func SetPersonalField(doc *types.ResumeDocument, field, value string) (*types.ResumeDocument, error) {
	next := Clone(doc)
	p := &next.PersonalInfo
	switch field {
	case "fullName":
		p.FullName = value
	case "title":
		p.Title = value
	case "email":
		p.Email = value
	case "phone":
		p.Phone = value
	case "location":
		p.Location = value
	case "linkedIn":
		p.LinkedIn = value
	case "portfolio":
		p.Portfolio = value
	default:
		return nil, fmt.Errorf("unknown personal info field %q", field)
	}
	return next, nil
}

// SetPersonalInfo replaces the whole personal info record, keeping the photo.
func SetPersonalInfo(doc *types.ResumeDocument, info types.PersonalInfo) *types.ResumeDocument {
	next := Clone(doc)
	img := next.PersonalInfo.ProfileImage
	next.PersonalInfo = info
	next.PersonalInfo.ProfileImage = img
	return next
}

// SetSummary replaces the professional summary.
func SetSummary(doc *types.ResumeDocument, summary string) *types.ResumeDocument {
	next := Clone(doc)
	next.ProfessionalSummary = summary
	return next
}

// SetProfileImage attaches a photo given as a data URL.
func SetProfileImage(doc *types.ResumeDocument, dataURL string) (*types.ResumeDocument, error) {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return nil, fmt.Errorf("profile image must be an image data URL")
	}
	next := Clone(doc)
	next.PersonalInfo.ProfileImage = &dataURL
	return next, nil
}

// ClearProfileImage removes the photo.
func ClearProfileImage(doc *types.ResumeDocument) *types.ResumeDocument {
	next := Clone(doc)
	next.PersonalInfo.ProfileImage = nil
	return next
}

// AppendWorkExperience adds an entry at the end of the list.
func AppendWorkExperience(doc *types.ResumeDocument, entry types.WorkExperience) *types.ResumeDocument {
	next := Clone(doc)
	entry.Achievements = cloneAchievements(entry.Achievements)
	next.WorkExperience = append(next.WorkExperience, entry)
	return next
}

// UpdateWorkExperience replaces the entry at index i.
func UpdateWorkExperience(doc *types.ResumeDocument, i int, entry types.WorkExperience) (*types.ResumeDocument, error) {
	next := Clone(doc)
	entry.Achievements = cloneAchievements(entry.Achievements)
	if err := updateAt(next.WorkExperience, i, entry, "workExperience"); err != nil {
		return nil, err
	}
	return next, nil
}

// RemoveWorkExperience deletes the entry at index i.
func RemoveWorkExperience(doc *types.ResumeDocument, i int) (*types.ResumeDocument, error) {
	next := Clone(doc)
	s, err := removeAt(next.WorkExperience, i, "workExperience")
	if err != nil {
		return nil, err
	}
	next.WorkExperience = s
	return next, nil
}

// AppendEducation adds an entry at the end of the list.
func AppendEducation(doc *types.ResumeDocument, entry types.Education) *types.ResumeDocument {
	next := Clone(doc)
	next.Education = append(next.Education, entry)
	return next
}

// UpdateEducation replaces the entry at index i.
func UpdateEducation(doc *types.ResumeDocument, i int, entry types.Education) (*types.ResumeDocument, error) {
	next := Clone(doc)
	if err := updateAt(next.Education, i, entry, "education"); err != nil {
		return nil, err
	}
	return next, nil
}

// RemoveEducation deletes the entry at index i.
func RemoveEducation(doc *types.ResumeDocument, i int) (*types.ResumeDocument, error) {
	next := Clone(doc)
	s, err := removeAt(next.Education, i, "education")
	if err != nil {
		return nil, err
	}
	next.Education = s
	return next, nil
}

// AppendSkill adds a skill at the end of the list.
func AppendSkill(doc *types.ResumeDocument, skill types.Skill) *types.ResumeDocument {
	next := Clone(doc)
	next.Skills = append(next.Skills, skill)
	return next
}

// UpdateSkill replaces the skill at index i.
func UpdateSkill(doc *types.ResumeDocument, i int, skill types.Skill) (*types.ResumeDocument, error) {
	next := Clone(doc)
	if err := updateAt(next.Skills, i, skill, "skills"); err != nil {
		return nil, err
	}
	return next, nil
}

// RemoveSkill deletes the skill at index i.
func RemoveSkill(doc *types.ResumeDocument, i int) (*types.ResumeDocument, error) {
	next := Clone(doc)
	s, err := removeAt(next.Skills, i, "skills")
	if err != nil {
		return nil, err
	}
	next.Skills = s
	return next, nil
}

// ReplaceSkills swaps the whole skill list.
func ReplaceSkills(doc *types.ResumeDocument, skills []types.Skill) *types.ResumeDocument {
	next := Clone(doc)
	next.Skills = append([]types.Skill{}, skills...)
	return next
}

// AppendLanguage adds a language at the end of the list.
func AppendLanguage(doc *types.ResumeDocument, lang types.Language) *types.ResumeDocument {
	next := Clone(doc)
	next.Languages = append(next.Languages, lang)
	return next
}

// UpdateLanguage replaces the language at index i.
func UpdateLanguage(doc *types.ResumeDocument, i int, lang types.Language) (*types.ResumeDocument, error) {
	next := Clone(doc)
	if err := updateAt(next.Languages, i, lang, "languages"); err != nil {
		return nil, err
	}
	return next, nil
}

// RemoveLanguage deletes the language at index i.
func RemoveLanguage(doc *types.ResumeDocument, i int) (*types.ResumeDocument, error) {
	next := Clone(doc)
	s, err := removeAt(next.Languages, i, "languages")
	if err != nil {
		return nil, err
	}
	next.Languages = s
	return next, nil
}

// AppendCertification adds a certification at the end of the list.
func AppendCertification(doc *types.ResumeDocument, cert types.Certification) *types.ResumeDocument {
	next := Clone(doc)
	next.Certifications = append(next.Certifications, cert)
	return next
}

// UpdateCertification replaces the certification at index i.
func UpdateCertification(doc *types.ResumeDocument, i int, cert types.Certification) (*types.ResumeDocument, error) {
	next := Clone(doc)
	if err := updateAt(next.Certifications, i, cert, "certifications"); err != nil {
		return nil, err
	}
	return next, nil
}

// RemoveCertification deletes the certification at index i.
func RemoveCertification(doc *types.ResumeDocument, i int) (*types.ResumeDocument, error) {
	next := Clone(doc)
	s, err := removeAt(next.Certifications, i, "certifications")
	if err != nil {
		return nil, err
	}
	next.Certifications = s
	return next, nil
}

// MoveSection moves the body section at position from to position to,
// shifting the sections in between.
func MoveSection(doc *types.ResumeDocument, from, to int) (*types.ResumeDocument, error) {
	next := Clone(doc)
	order := next.SectionOrder
	if from < 0 || from >= len(order) {
		return nil, &EditError{Section: "sectionOrder", Index: from, Cause: ErrIndexOutOfRange}
	}
	if to < 0 || to >= len(order) {
		return nil, &EditError{Section: "sectionOrder", Index: to, Cause: ErrIndexOutOfRange}
	}
	moved := order[from]
	order = slices.Delete(order, from, from+1)
	order = slices.Insert(order, to, moved)
	next.SectionOrder = order
	return next, nil
}

func updateAt[T any](s []T, i int, v T, section string) error {
	if i < 0 || i >= len(s) {
		return &EditError{Section: section, Index: i, Cause: ErrIndexOutOfRange}
	}
	s[i] = v
	return nil
}

func removeAt[T any](s []T, i int, section string) ([]T, error) {
	if i < 0 || i >= len(s) {
		return nil, &EditError{Section: section, Index: i, Cause: ErrIndexOutOfRange}
	}
	return slices.Delete(s, i, i+1), nil
}

func cloneAchievements(a []string) []string {
	if a == nil {
		return []string{}
	}
	return slices.Clone(a)
}
