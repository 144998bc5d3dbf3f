package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/types"
)

type fakeClient struct {
	content string
	json    string
	err     error
	prompts []string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.content, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.json, f.err
}

func (f *fakeClient) Close() error { return nil }

func TestParseSection(t *testing.T) {
	for _, s := range []string{"summary", "experience", "skills"} {
		got, err := ParseSection(s)
		require.NoError(t, err)
		assert.Equal(t, Section(s), got)
	}

	_, err := ParseSection("education")
	var unknown *ErrUnknownSection
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "education", unknown.Section)
}

func TestExamples(t *testing.T) {
	assert.Equal(t, "Frontend developer specialised in React", Examples(SectionSummary)[0])
	assert.Len(t, Examples(SectionExperience), 4)
	assert.Equal(t, "SQL, Excel, Tableau, Power BI", Examples(SectionSkills)[3])
	assert.Nil(t, Examples("languages"))
}

func TestSimulated_Generate(t *testing.T) {
	ctx := context.Background()
	gen := Simulated{}

	summary, err := gen.Generate(ctx, SectionSummary, "  cloud infrastructure ")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(summary, "Dynamic professional with more than 5 years of experience in cloud infrastructure."))

	experience, err := gen.Generate(ctx, SectionExperience, "logistics")
	require.NoError(t, err)
	lines := strings.Split(experience, "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "in logistics")

	skills, err := gen.Generate(ctx, SectionSkills, "Kubernetes")
	require.NoError(t, err)
	assert.Contains(t, skills, ", Kubernetes, ")

	again, err := gen.Generate(ctx, SectionSkills, "Kubernetes")
	require.NoError(t, err)
	assert.Equal(t, skills, again)
}

func TestSimulated_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Simulated{}.Generate(ctx, SectionSummary, "   ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)

	_, err = Simulated{}.Generate(ctx, "education", "x")
	var unknown *ErrUnknownSection
	assert.ErrorAs(t, err, &unknown)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Simulated{}.Generate(canceled, SectionSummary, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLLMGenerator_Generate(t *testing.T) {
	t.Run("summary uses content prompt", func(t *testing.T) {
		client := &fakeClient{content: "A seasoned engineer."}
		got, err := NewLLMGenerator(client).Generate(context.Background(), SectionSummary, "Go backend")
		require.NoError(t, err)
		assert.Equal(t, "A seasoned engineer.", got)
		require.Len(t, client.prompts, 1)
		assert.Contains(t, client.prompts[0], "described as: Go backend.")
		assert.NotContains(t, client.prompts[0], "{{.Prompt}}")
	})

	t.Run("skills parsed from json", func(t *testing.T) {
		client := &fakeClient{json: "```json\n[\"Go\", \" SQL \", \"\"]\n```"}
		got, err := NewLLMGenerator(client).Generate(context.Background(), SectionSkills, "backend")
		require.NoError(t, err)
		assert.Equal(t, "Go, SQL", got)
	})

	t.Run("client error wrapped", func(t *testing.T) {
		boom := errors.New("quota exceeded")
		client := &fakeClient{err: boom}
		_, err := NewLLMGenerator(client).Generate(context.Background(), SectionExperience, "x")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("empty prompt never reaches client", func(t *testing.T) {
		client := &fakeClient{}
		_, err := NewLLMGenerator(client).Generate(context.Background(), SectionSummary, "")
		assert.ErrorIs(t, err, ErrEmptyPrompt)
		assert.Empty(t, client.prompts)
	})
}

func TestNew_WithoutKeyIsSimulated(t *testing.T) {
	gen, closeFn, err := New(context.Background(), "")
	require.NoError(t, err)
	assert.IsType(t, Simulated{}, gen)
	assert.NoError(t, closeFn())
}

func TestApply(t *testing.T) {
	base := resume.New()
	base.ProfessionalSummary = "Old summary"
	base.WorkExperience = []types.WorkExperience{
		{Company: "A", Position: "Dev", StartDate: "2019-01", EndDate: "2020-01", Description: "first"},
		{Company: "B", Position: "Lead", StartDate: "2020-02", Current: true, Description: "second"},
	}
	base.Skills = []types.Skill{{Name: "Old", Level: types.SkillExpert}}
	base = resume.Clone(base)
	before := resume.Clone(base)

	t.Run("summary replaces", func(t *testing.T) {
		got, err := Apply(base, SectionSummary, "New summary")
		require.NoError(t, err)
		assert.Equal(t, "New summary", got.ProfessionalSummary)
	})

	t.Run("experience sets last description", func(t *testing.T) {
		got, err := Apply(base, SectionExperience, "• Did things")
		require.NoError(t, err)
		require.Len(t, got.WorkExperience, 2)
		assert.Equal(t, "first", got.WorkExperience[0].Description)
		assert.Equal(t, "• Did things", got.WorkExperience[1].Description)
		assert.Equal(t, "Lead", got.WorkExperience[1].Position)
	})

	t.Run("experience appends when empty", func(t *testing.T) {
		got, err := Apply(resume.New(), SectionExperience, "• Did things")
		require.NoError(t, err)
		require.Len(t, got.WorkExperience, 1)
		assert.Equal(t, "• Did things", got.WorkExperience[0].Description)
		assert.Empty(t, got.WorkExperience[0].Company)
	})

	t.Run("skills replaced from comma list", func(t *testing.T) {
		got, err := Apply(base, SectionSkills, "Go, SQL,\n  Leadership , ,")
		require.NoError(t, err)
		assert.Equal(t, []types.Skill{{Name: "Go"}, {Name: "SQL"}, {Name: "Leadership"}}, got.Skills)
	})

	t.Run("unknown section", func(t *testing.T) {
		_, err := Apply(base, "education", "x")
		assert.Error(t, err)
	})

	assert.Equal(t, before, base)
}

func TestGenerateThenApply(t *testing.T) {
	content, err := Simulated{}.Generate(context.Background(), SectionSkills, "Go")
	require.NoError(t, err)

	doc, err := Apply(nil, SectionSkills, content)
	require.NoError(t, err)
	assert.Len(t, doc.Skills, 7)
	assert.Equal(t, "Go", doc.Skills[2].Name)
}
