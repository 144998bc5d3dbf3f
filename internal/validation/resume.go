package validation

import "github.com/jonathan/cv-builder/internal/types"

// ValidateResume runs every section validator over doc.
func ValidateResume(doc *types.ResumeDocument) *ResumeErrors {
	errs := &ResumeErrors{}

	if personal := ValidatePersonalInfo(doc.PersonalInfo); len(personal) > 0 {
		errs.PersonalInfo = personal
	}
	if work := ValidateWorkExperience(doc.WorkExperience); len(work) > 0 {
		errs.WorkExperience = work
	}
	if edu := ValidateEducation(doc.Education); len(edu) > 0 {
		errs.Education = edu
	}

	return errs
}
