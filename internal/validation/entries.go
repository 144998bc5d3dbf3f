package validation

import (
	"strings"

	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/types"
)

// ValidateWorkExperience checks each entry and returns the failures keyed by
// entry index. Entries without failures are absent from the map.
func ValidateWorkExperience(entries []types.WorkExperience) map[int]FieldErrors {
	result := make(map[int]FieldErrors)

	for i, exp := range entries {
		errs := FieldErrors{}

		if strings.TrimSpace(exp.Position) == "" {
			errs["position"] = FieldError{Code: CodeRequired, Message: "Job title is required"}
		}
		if strings.TrimSpace(exp.Company) == "" {
			errs["company"] = FieldError{Code: CodeRequired, Message: "Company name is required"}
		}

		checkDates(errs, exp.StartDate, exp.EndDate, !exp.Current)

		if len(errs) > 0 {
			result[i] = errs
		}
	}

	return result
}

// ValidateEducation checks each entry and returns the failures keyed by
// entry index.
func ValidateEducation(entries []types.Education) map[int]FieldErrors {
	result := make(map[int]FieldErrors)

	for i, edu := range entries {
		errs := FieldErrors{}

		if strings.TrimSpace(edu.Degree) == "" {
			errs["degree"] = FieldError{Code: CodeRequired, Message: "Degree is required"}
		}
		if strings.TrimSpace(edu.Institution) == "" {
			errs["institution"] = FieldError{Code: CodeRequired, Message: "Institution is required"}
		}
		if edu.StartDate != "" {
			if _, err := resume.ParseDate(edu.StartDate); err != nil {
				errs["startDate"] = FieldError{Code: CodeInvalidDate, Message: "Start date is not a valid date"}
			}
		}
		if edu.EndDate != "" {
			if _, err := resume.ParseDate(edu.EndDate); err != nil {
				errs["endDate"] = FieldError{Code: CodeInvalidDate, Message: "End date is not a valid date"}
			}
		}

		if len(errs) > 0 {
			result[i] = errs
		}
	}

	return result
}

// checkDates applies the start/end rules of a work entry. endRequired is
// false for current positions.
func checkDates(errs FieldErrors, startDate, endDate string, endRequired bool) {
	if strings.TrimSpace(startDate) == "" {
		errs["startDate"] = FieldError{Code: CodeRequired, Message: "Start date is required"}
	}
	if endRequired && strings.TrimSpace(endDate) == "" {
		errs["endDate"] = FieldError{Code: CodeRequired, Message: "End date is required unless this is your current job"}
	}

	var startOK, endOK bool
	start, err := resume.ParseDate(startDate)
	if startDate != "" {
		if err != nil {
			errs["startDate"] = FieldError{Code: CodeInvalidDate, Message: "Start date is not a valid date"}
		} else {
			startOK = true
		}
	}
	end, err := resume.ParseDate(endDate)
	if endRequired && endDate != "" {
		if err != nil {
			errs["endDate"] = FieldError{Code: CodeInvalidDate, Message: "End date is not a valid date"}
		} else {
			endOK = true
		}
	}

	if startOK && endOK && start.After(end) {
		errs["dateRange"] = FieldError{Code: CodeDateRange, Message: "Start date must be before end date"}
	}
}
