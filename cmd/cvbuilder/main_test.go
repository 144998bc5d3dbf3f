package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so commands can run
// repeatedly in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "")
	if os.Getenv("DATA_DIR") == "" {
		t.Setenv("DATA_DIR", t.TempDir())
	}

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeDoc(t *testing.T, doc *types.ResumeDocument) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cv.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, resume.Encode(f, doc))
	require.NoError(t, f.Close())
	return path
}

func sampleDoc() *types.ResumeDocument {
	doc := resume.New()
	doc.PersonalInfo.FullName = "Ana García"
	doc.PersonalInfo.Email = "ana@example.com"
	doc.ProfessionalSummary = "Backend engineer building reliable services in Go."
	doc.WorkExperience = []types.WorkExperience{{
		Company: "Acme", Position: "Engineer", StartDate: "2019-01", Current: true,
	}}
	doc.Skills = []types.Skill{{Name: "Go"}}
	return doc
}

func TestAnalyzeCommand(t *testing.T) {
	path := writeDoc(t, sampleDoc())

	out, err := execute(t, "analyze", "--in", path)
	require.NoError(t, err)
	assert.Contains(t, out, "CV ANALYSIS")
	assert.Contains(t, out, "Overall:")

	out, err = execute(t, "analyze", "--in", path, "--json")
	require.NoError(t, err)
	var report types.AnalysisReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.Metrics.SkillsCount)
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	_, err := execute(t, "analyze")
	assert.Error(t, err)

	_, err = execute(t, "analyze", "--in", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"skills": "Go"}`), 0o644))
	_, err = execute(t, "analyze", "--in", bad)
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "--in", writeDoc(t, sampleDoc()))
	require.NoError(t, err)
	assert.Contains(t, out, "NO VALIDATION ERRORS")

	doc := sampleDoc()
	doc.PersonalInfo.Email = "nope"
	out, err = execute(t, "validate", "--in", writeDoc(t, doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, out, "personalInfo.email")
}

func TestExportCommand_TextFormats(t *testing.T) {
	path := writeDoc(t, sampleDoc())
	dir := t.TempDir()

	tests := []struct {
		format string
		want   string
	}{
		{format: "html", want: "<title>CV - Ana García</title>"},
		{format: "txt", want: "Ana García"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			outPath := filepath.Join(dir, "cv."+tt.format)
			out, err := execute(t, "export", "--in", path, "--format", tt.format, "--template", "executive", "--out", outPath)
			require.NoError(t, err)
			assert.Contains(t, out, "Wrote "+outPath)

			data, err := os.ReadFile(outPath)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
		})
	}
}

func TestExportCommand_Errors(t *testing.T) {
	path := writeDoc(t, sampleDoc())

	_, err := execute(t, "export", "--in", path, "--format", "docx")
	assert.ErrorContains(t, err, "unsupported format")

	_, err = execute(t, "export", "--in", path, "--format", "all", "--out", "x.pdf")
	assert.Error(t, err)

	_, err = execute(t, "export", "--in", path, "--format", "html", "--primary", "blue", "--out", filepath.Join(t.TempDir(), "x.html"))
	assert.ErrorContains(t, err, "primary color")
}

func TestAssistCommand(t *testing.T) {
	out, err := execute(t, "assist", "--section", "summary", "--prompt", "data engineering")
	require.NoError(t, err)
	assert.Contains(t, out, "data engineering")

	_, err = execute(t, "assist", "--section", "hobbies", "--prompt", "x")
	assert.Error(t, err)

	_, err = execute(t, "assist", "--prompt", "x", "--out", "cv.json")
	assert.Error(t, err)
}

func TestAssistCommand_ApplyAndSave(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	path := writeDoc(t, sampleDoc())
	outPath := filepath.Join(t.TempDir(), "updated.json")

	out, err := execute(t, "assist", "--section", "skills", "--prompt", "Kubernetes",
		"--in", path, "--out", outPath, "--save", "With skills")
	require.NoError(t, err)
	assert.Contains(t, out, "Overall score:")
	assert.Contains(t, out, `Saved "With skills"`)

	updated, err := resume.LoadFile(outPath)
	require.NoError(t, err)
	names := make([]string, 0, len(updated.Skills))
	for _, s := range updated.Skills {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "Kubernetes")

	out, err = execute(t, "resumes")
	require.NoError(t, err)
	assert.Contains(t, out, "SAVED RESUMES (1)")
	assert.Contains(t, out, "With skills")
}

func TestTemplatesCommand(t *testing.T) {
	out, err := execute(t, "templates")
	require.NoError(t, err)
	for _, id := range []string{"modern", "professional", "creative", "executive", "premium"} {
		assert.True(t, strings.Contains(out, id), id)
	}
}
