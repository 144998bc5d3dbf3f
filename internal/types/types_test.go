//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestionAction_Target(t *testing.T) {
	tests := []struct {
		action SuggestionAction
		want   Section
		ok     bool
	}{
		{ActionCompleteInfo, SectionPersonal, true},
		{ActionAddPhoto, SectionPersonal, true},
		{ActionImproveSummary, SectionPersonal, true},
		{ActionAddSkills, SectionSkills, true},
		{SuggestionAction("add_languages"), "", false},
	}

	for _, tt := range tests {
		got, ok := tt.action.Target()
		assert.Equal(t, tt.ok, ok, string(tt.action))
		assert.Equal(t, tt.want, got, string(tt.action))
	}
}

func TestSection_Valid(t *testing.T) {
	assert.True(t, SectionExperience.IsBody())
	assert.False(t, SectionPersonal.IsBody())
	assert.True(t, SectionPersonal.Valid())
	assert.True(t, SectionAdvanced.Valid())
	assert.False(t, Section("sidebar").Valid())
}

func TestLevels_Valid(t *testing.T) {
	assert.True(t, SkillLevelUnset.Valid())
	assert.True(t, SkillExpert.Valid())
	assert.False(t, SkillLevel("Guru").Valid())

	assert.True(t, LanguageNative.Valid())
	assert.True(t, LanguageB2.Valid())
	assert.False(t, LanguageLevel("D1").Valid())
}

func TestResumeDocument_JSONShape(t *testing.T) {
	data := []byte(`{
		"personalInfo": {"fullName": "Ana Ruiz", "email": "ana@x.com", "profileImage": null},
		"professionalSummary": "Backend",
		"workExperience": [{"company": "Acme", "position": "Dev", "startDate": "2020-01", "endDate": "", "current": true, "description": ""}],
		"skills": [{"name": "Go", "level": "Experto"}],
		"certifications": [{"name": "CKA", "organization": "CNCF", "year": "2022"}]
	}`)

	var doc ResumeDocument
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "Ana Ruiz", doc.PersonalInfo.FullName)
	assert.Nil(t, doc.PersonalInfo.ProfileImage)
	assert.True(t, doc.WorkExperience[0].Current)
	assert.Equal(t, SkillExpert, doc.Skills[0].Level)
	assert.Equal(t, "2022", doc.Certifications[0].Year)
}

func TestSavedResume_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(SavedResume{ID: "u_1", UserID: "u", Name: "Mi CV"})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Mi CV", raw["resumeName"])
	assert.Contains(t, raw, "resumeData")
}
