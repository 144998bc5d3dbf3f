package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cv-builder/internal/types"
)

func TestValidatePersonalInfo(t *testing.T) {
	tests := []struct {
		name string
		info types.PersonalInfo
		want map[string]Code
	}{
		{
			name: "valid minimal",
			info: types.PersonalInfo{FullName: "Jane Doe", Email: "jane@example.com"},
			want: map[string]Code{},
		},
		{
			name: "short name and bad email",
			info: types.PersonalInfo{FullName: "A", Email: "bad"},
			want: map[string]Code{"fullName": CodeTooShort, "email": CodeInvalidFormat},
		},
		{
			name: "whitespace only is required",
			info: types.PersonalInfo{FullName: "   ", Email: "  "},
			want: map[string]Code{"fullName": CodeRequired, "email": CodeRequired},
		},
		{
			name: "two runes with accents",
			info: types.PersonalInfo{FullName: "Ñá", Email: "n@a.es"},
			want: map[string]Code{},
		},
		{
			name: "international phone",
			info: types.PersonalInfo{FullName: "Ana Ruiz", Email: "ana@x.com", Phone: "+34600123456"},
			want: map[string]Code{},
		},
		{
			name: "grouped phone",
			info: types.PersonalInfo{FullName: "Ana Ruiz", Email: "ana@x.com", Phone: "+1 (555) 123-4567"},
			want: map[string]Code{},
		},
		{
			name: "letters in phone",
			info: types.PersonalInfo{FullName: "Ana Ruiz", Email: "ana@x.com", Phone: "call me"},
			want: map[string]Code{"phone": CodeInvalidFormat},
		},
		{
			name: "valid linkedin and portfolio",
			info: types.PersonalInfo{
				FullName:  "Ana Ruiz",
				Email:     "ana@x.com",
				LinkedIn:  "https://www.linkedin.com/in/ana-ruiz/",
				Portfolio: "anaruiz.dev/work",
			},
			want: map[string]Code{},
		},
		{
			name: "linkedin company page",
			info: types.PersonalInfo{FullName: "Ana Ruiz", Email: "ana@x.com", LinkedIn: "https://linkedin.com/company/acme"},
			want: map[string]Code{"linkedIn": CodeInvalidFormat},
		},
		{
			name: "portfolio without tld",
			info: types.PersonalInfo{FullName: "Ana Ruiz", Email: "ana@x.com", Portfolio: "localhost"},
			want: map[string]Code{"portfolio": CodeInvalidFormat},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePersonalInfo(tt.info)
			assert.Equal(t, tt.want, got.Codes())
		})
	}
}

func TestValidatePersonalInfo_Messages(t *testing.T) {
	errs := ValidatePersonalInfo(types.PersonalInfo{FullName: "A", Email: "bad"})

	assert.Equal(t, "Name must be at least 2 characters", errs["fullName"].Message)
	assert.Equal(t, "Please enter a valid email", errs["email"].Message)
	assert.Equal(t, "email: Please enter a valid email; fullName: Name must be at least 2 characters", errs.String())
}

func TestValidateWorkExperience(t *testing.T) {
	tests := []struct {
		name  string
		entry types.WorkExperience
		want  map[string]Code
	}{
		{
			name:  "closed range",
			entry: types.WorkExperience{Company: "Acme", Position: "Dev", StartDate: "2020-01", EndDate: "2022-06"},
		},
		{
			name:  "current without end",
			entry: types.WorkExperience{Company: "Acme", Position: "Dev", StartDate: "2020-01", Current: true},
		},
		{
			name:  "empty entry",
			entry: types.WorkExperience{},
			want: map[string]Code{
				"company":   CodeRequired,
				"position":  CodeRequired,
				"startDate": CodeRequired,
				"endDate":   CodeRequired,
			},
		},
		{
			name:  "inverted range",
			entry: types.WorkExperience{Company: "Acme", Position: "Dev", StartDate: "2023-01", EndDate: "2021-01"},
			want:  map[string]Code{"dateRange": CodeDateRange},
		},
		{
			name:  "unparseable start",
			entry: types.WorkExperience{Company: "Acme", Position: "Dev", StartDate: "last spring", EndDate: "2021-01"},
			want:  map[string]Code{"startDate": CodeInvalidDate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateWorkExperience([]types.WorkExperience{tt.entry})
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got[0].Codes())
		})
	}
}

func TestValidateWorkExperience_KeyedByIndex(t *testing.T) {
	entries := []types.WorkExperience{
		{Company: "Acme", Position: "Dev", StartDate: "2020-01", Current: true},
		{Company: "", Position: "Dev", StartDate: "2018-01", EndDate: "2019-12"},
	}

	got := ValidateWorkExperience(entries)

	assert.Len(t, got, 1)
	assert.Contains(t, got, 1)
	assert.Equal(t, CodeRequired, got[1]["company"].Code)
}

func TestValidateEducation(t *testing.T) {
	entries := []types.Education{
		{Institution: "Universidad de Sevilla", Degree: "Grado en Informática", StartDate: "2014", EndDate: "2018"},
		{Institution: "", Degree: "", EndDate: "someday"},
	}

	got := ValidateEducation(entries)

	assert.NotContains(t, got, 0)
	assert.Equal(t, map[string]Code{
		"institution": CodeRequired,
		"degree":      CodeRequired,
		"endDate":     CodeInvalidDate,
	}, got[1].Codes())
}

func TestValidateResume(t *testing.T) {
	doc := &types.ResumeDocument{
		PersonalInfo: types.PersonalInfo{FullName: "Jane Doe", Email: "jane@example.com"},
		WorkExperience: []types.WorkExperience{
			{Company: "Acme", Position: "Dev", StartDate: "2020-01", Current: true},
		},
	}

	errs := ValidateResume(doc)
	assert.True(t, errs.Empty())

	doc.PersonalInfo.Email = ""
	doc.Education = []types.Education{{Institution: "MIT"}}

	errs = ValidateResume(doc)
	assert.False(t, errs.Empty())
	assert.Equal(t, "Email is required", errs.Message("personalInfo", "email", 0))
	assert.Equal(t, "Degree is required", errs.Message("education", "degree", 0))
	assert.Empty(t, errs.Message("workExperience", "company", 0))
}

func TestValidator_StructTags(t *testing.T) {
	type contact struct {
		Phone    string `validate:"omitempty,cv_phone"`
		LinkedIn string `validate:"omitempty,cv_linkedin"`
	}

	assert.NoError(t, Validator().Struct(contact{Phone: "600-123-456"}))
	assert.Error(t, Validator().Struct(contact{LinkedIn: "https://example.com/ana"}))
}
