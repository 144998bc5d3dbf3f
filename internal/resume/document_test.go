package resume

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/cv-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SlicesAreEmptyNotNil(t *testing.T) {
	doc := New()

	assert.NotNil(t, doc.WorkExperience)
	assert.NotNil(t, doc.Education)
	assert.NotNil(t, doc.Skills)
	assert.NotNil(t, doc.Languages)
	assert.NotNil(t, doc.Certifications)
	assert.Equal(t, types.DefaultSectionOrder, doc.SectionOrder)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))
	assert.NotContains(t, buf.String(), "null,")
	assert.Contains(t, buf.String(), `"workExperience": []`)
}

func TestNormalize_SectionOrder(t *testing.T) {
	doc := &types.ResumeDocument{
		SectionOrder: []types.Section{
			types.SectionSkills,
			types.SectionPersonal,
			types.SectionSkills,
			types.SectionEducation,
		},
	}

	Normalize(doc)

	assert.Equal(t, []types.Section{
		types.SectionSkills,
		types.SectionEducation,
		types.SectionExperience,
		types.SectionLanguages,
		types.SectionCertifications,
	}, doc.SectionOrder)
}

func TestClone_SharesNothing(t *testing.T) {
	img := "data:image/png;base64,AAAA"
	doc := New()
	doc.PersonalInfo.ProfileImage = &img
	doc.WorkExperience = []types.WorkExperience{{Company: "Acme", Achievements: []string{"Shipped"}}}
	doc.Skills = []types.Skill{{Name: "Go"}}

	cp := Clone(doc)
	*cp.PersonalInfo.ProfileImage = "changed"
	cp.WorkExperience[0].Achievements[0] = "changed"
	cp.Skills[0].Name = "Rust"

	assert.Equal(t, "data:image/png;base64,AAAA", *doc.PersonalInfo.ProfileImage)
	assert.Equal(t, "Shipped", doc.WorkExperience[0].Achievements[0])
	assert.Equal(t, "Go", doc.Skills[0].Name)
}

func TestEdits_DoNotMutateInput(t *testing.T) {
	doc := New()
	doc = AppendSkill(doc, types.Skill{Name: "Go"})
	doc = AppendSkill(doc, types.Skill{Name: "SQL"})

	next, err := RemoveSkill(doc, 0)
	require.NoError(t, err)

	assert.Len(t, doc.Skills, 2)
	require.Len(t, next.Skills, 1)
	assert.Equal(t, "SQL", next.Skills[0].Name)
}

func TestEdits_PreserveOrder(t *testing.T) {
	doc := New()
	for _, c := range []string{"A", "B", "C"} {
		doc = AppendWorkExperience(doc, types.WorkExperience{Company: c})
	}

	doc, err := UpdateWorkExperience(doc, 1, types.WorkExperience{Company: "B2"})
	require.NoError(t, err)

	companies := make([]string, 0, len(doc.WorkExperience))
	for _, e := range doc.WorkExperience {
		companies = append(companies, e.Company)
	}
	assert.Equal(t, []string{"A", "B2", "C"}, companies)
}

func TestEdits_IndexOutOfRange(t *testing.T) {
	doc := New()

	_, err := UpdateEducation(doc, 0, types.Education{})
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = RemoveCertification(doc, -1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	var editErr *EditError
	require.ErrorAs(t, err, &editErr)
	assert.Equal(t, "certifications", editErr.Section)
}

func TestSetPersonalField(t *testing.T) {
	doc := New()

	next, err := SetPersonalField(doc, "email", "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", next.PersonalInfo.Email)
	assert.Empty(t, doc.PersonalInfo.Email)

	_, err = SetPersonalField(doc, "nickname", "x")
	assert.Error(t, err)
}

func TestProfileImage(t *testing.T) {
	doc := New()

	_, err := SetProfileImage(doc, "/home/me/photo.png")
	require.Error(t, err)

	withImg, err := SetProfileImage(doc, "data:image/jpeg;base64,/9j/")
	require.NoError(t, err)
	assert.True(t, HasProfileImage(withImg))
	assert.False(t, HasProfileImage(doc))

	cleared := ClearProfileImage(withImg)
	assert.False(t, HasProfileImage(cleared))
	assert.True(t, HasProfileImage(withImg))
}

func TestMoveSection(t *testing.T) {
	doc := New()

	next, err := MoveSection(doc, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []types.Section{
		types.SectionSkills,
		types.SectionExperience,
		types.SectionEducation,
		types.SectionLanguages,
		types.SectionCertifications,
	}, next.SectionOrder)
	assert.Equal(t, types.DefaultSectionOrder, doc.SectionOrder)

	_, err = MoveSection(doc, 0, 9)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestDecode(t *testing.T) {
	input := `{
		"personalInfo": {"fullName": "Ana Ruiz", "email": "ana@x.com", "profileImage": null},
		"professionalSummary": "Hello",
		"skills": [{"name": "Go", "level": "Experto"}]
	}`

	doc, err := Decode(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "Ana Ruiz", doc.PersonalInfo.FullName)
	assert.Nil(t, doc.PersonalInfo.ProfileImage)
	assert.NotNil(t, doc.WorkExperience)
	assert.Equal(t, types.SkillExpert, doc.Skills[0].Level)
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "{"},
		{name: "missing personal info", input: `{"skills": []}`},
		{name: "bad level", input: `{"personalInfo": {"fullName": "A", "email": ""}, "skills": [{"name": "Go", "level": "Ninja"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			var loadErr *LoadError
			assert.ErrorAs(t, err, &loadErr)
		})
	}
}

func TestEncodeDecode_KeepsOrder(t *testing.T) {
	doc := New()
	doc.PersonalInfo = types.PersonalInfo{FullName: "Ana", Email: "ana@x.com"}
	doc = AppendLanguage(doc, types.Language{Name: "Spanish", Level: types.LanguageNative})
	doc = AppendLanguage(doc, types.Language{Name: "English", Level: types.LanguageC1})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))

	back, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc, back)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{in: "2020-03", want: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "2020-03-15", want: time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "2019", want: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "", ok: false},
		{in: "March 2020", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	start := time.Date(2019, 11, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 15, MonthsBetween(start, end))
	assert.Equal(t, -15, MonthsBetween(end, start))
}
