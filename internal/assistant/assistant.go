// Package assistant generates draft CV content for a section and applies it
// to a document.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/cv-builder/internal/llm"
	"github.com/jonathan/cv-builder/internal/prompts"
	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/types"
)

// Section is a part of the document the assistant can write.
type Section string

// Assistant sections
const (
	SectionSummary    Section = "summary"
	SectionExperience Section = "experience"
	SectionSkills     Section = "skills"
)

// Sections lists the supported sections.
var Sections = []Section{SectionSummary, SectionExperience, SectionSkills}

// ErrEmptyPrompt is returned when the user prompt is blank.
var ErrEmptyPrompt = errors.New("prompt is empty")

// ErrUnknownSection reports a section the assistant cannot write
type ErrUnknownSection struct {
	Section string
}

func (e *ErrUnknownSection) Error() string {
	return fmt.Sprintf("unknown assistant section %q", e.Section)
}

// ParseSection validates s as an assistant section.
func ParseSection(s string) (Section, error) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", &ErrUnknownSection{Section: s}
}

// Examples returns the sample prompts for section, or nil for an unknown one.
func Examples(section Section) []string {
	p, err := prompts.Get(prompts.AssistantFile, string(section))
	if err != nil {
		return nil
	}
	return p.Examples
}

// Generator produces content for a section from a user prompt.
type Generator interface {
	Generate(ctx context.Context, section Section, prompt string) (string, error)
}

// New returns a Gemini-backed generator when apiKey is set and the
// simulated one otherwise. The returned close function releases the client.
func New(ctx context.Context, apiKey string) (Generator, func() error, error) {
	if apiKey == "" {
		log.Printf("[assistant] no API key configured, using simulated generator")
		return Simulated{}, func() error { return nil }, nil
	}
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, nil, err
	}
	return NewLLMGenerator(client), client.Close, nil
}

func checkInput(section Section, prompt string) (string, error) {
	if _, err := ParseSection(string(section)); err != nil {
		return "", err
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	return prompt, nil
}

// LLMGenerator writes content with a language model.
type LLMGenerator struct {
	client llm.Client
}

// NewLLMGenerator creates a generator using client.
func NewLLMGenerator(client llm.Client) *LLMGenerator {
	return &LLMGenerator{client: client}
}

// Generate implements Generator. Skills are requested as a JSON list and
// returned comma-separated.
func (g *LLMGenerator) Generate(ctx context.Context, section Section, prompt string) (string, error) {
	prompt, err := checkInput(section, prompt)
	if err != nil {
		return "", err
	}

	tmpl, err := prompts.Get(prompts.AssistantFile, string(section))
	if err != nil {
		return "", err
	}
	full := prompts.Format(tmpl.Instruction, map[string]string{"Prompt": prompt})

	if section == SectionSkills {
		raw, err := g.client.GenerateJSON(ctx, full)
		if err != nil {
			return "", fmt.Errorf("failed to generate skills: %w", err)
		}
		skills, err := llm.ParseStringList(raw)
		if err != nil {
			return "", err
		}
		return strings.Join(skills, ", "), nil
	}

	text, err := g.client.GenerateContent(ctx, full)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", section, err)
	}
	return text, nil
}

// Simulated is a deterministic offline generator.
type Simulated struct{}

// Generate implements Generator.
func (Simulated) Generate(ctx context.Context, section Section, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	prompt, err := checkInput(section, prompt)
	if err != nil {
		return "", err
	}

	switch section {
	case SectionSummary:
		return "Dynamic professional with more than 5 years of experience in " + prompt + ". " +
			"Proven ability to lead teams, manage complex projects and deliver exceptional results. " +
			"Passionate about innovation and continuous growth.", nil
	case SectionExperience:
		return strings.Join([]string{
			"• Led strategic initiatives in " + prompt + " that increased efficiency by 25%",
			"• Designed and rolled out streamlined processes that cut operating costs by 15%",
			"• Worked with cross-functional teams to deliver critical projects on time",
			"• Mentored 5+ junior developers, improving their productivity and satisfaction",
		}, "\n"), nil
	default:
		return "Data analysis, Project management, " + prompt +
			", Team leadership, Problem solving, Effective communication, Strategic thinking", nil
	}
}

// Apply returns a new document with content placed in section:
// summary replaces the professional summary, experience sets the last
// entry's description (appending an entry when there is none) and skills
// replaces the skill list with the comma-separated names.
func Apply(doc *types.ResumeDocument, section Section, content string) (*types.ResumeDocument, error) {
	if doc == nil {
		doc = resume.New()
	}
	switch section {
	case SectionSummary:
		return resume.SetSummary(doc, content), nil
	case SectionExperience:
		if n := len(doc.WorkExperience); n > 0 {
			entry := doc.WorkExperience[n-1]
			entry.Description = content
			return resume.UpdateWorkExperience(doc, n-1, entry)
		}
		return resume.AppendWorkExperience(doc, types.WorkExperience{Description: content}), nil
	case SectionSkills:
		return resume.ReplaceSkills(doc, SplitSkills(content)), nil
	}
	return nil, &ErrUnknownSection{Section: string(section)}
}

// SplitSkills splits comma-separated content into named skills.
func SplitSkills(content string) []types.Skill {
	var skills []types.Skill
	for _, name := range strings.Split(content, ",") {
		if name = strings.TrimSpace(name); name != "" {
			skills = append(skills, types.Skill{Name: name})
		}
	}
	return skills
}
