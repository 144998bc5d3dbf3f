//nolint:revive // types is a standard Go package name pattern
package types

// AnalysisReport is the scoring and feedback bundle derived from a ResumeDocument.
// It is never persisted on its own.
type AnalysisReport struct {
	Overall     int          `json:"overall"`
	Grade       string       `json:"grade"`
	Scores      Scores       `json:"scores"`
	Suggestions []Suggestion `json:"suggestions"`
	Strengths   []string     `json:"strengths"`
	Metrics     Metrics      `json:"metrics"`
}

// Scores holds the four sub-scores, each in [0,100]
type Scores struct {
	Completeness   int `json:"completeness"`
	ContentQuality int `json:"contentQuality"`
	Structure      int `json:"structure"`
	Keywords       int `json:"keywords"`
}

// SuggestionKind is the severity of a suggestion
type SuggestionKind string

// Suggestion kinds
const (
	SuggestionWarning SuggestionKind = "warning"
	SuggestionInfo    SuggestionKind = "info"
)

// SuggestionAction names the fix a suggestion proposes.
// The set is closed; every action resolves to a form section via Target.
type SuggestionAction string

// Suggestion actions
const (
	ActionCompleteInfo   SuggestionAction = "complete_info"
	ActionAddPhoto       SuggestionAction = "add_photo"
	ActionImproveSummary SuggestionAction = "improve_summary"
	ActionAddSkills      SuggestionAction = "add_skills"
)

var actionTargets = map[SuggestionAction]Section{
	ActionCompleteInfo:   SectionPersonal,
	ActionAddPhoto:       SectionPersonal,
	ActionImproveSummary: SectionPersonal,
	ActionAddSkills:      SectionSkills,
}

// Target returns the section the host should navigate to for this action.
// The boolean is false for an unknown action.
func (a SuggestionAction) Target() (Section, bool) {
	s, ok := actionTargets[a]
	return s, ok
}

// Suggestion is an actionable recommendation tied to a document deficiency
type Suggestion struct {
	Kind        SuggestionKind   `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Action      SuggestionAction `json:"action"`
	Target      Section          `json:"target"`
}

// Metrics are descriptive counts over the document
type Metrics struct {
	WordCount         int     `json:"wordCount"`
	SectionsCompleted int     `json:"sectionsCompleted"`
	TotalSections     int     `json:"totalSections"`
	ExperienceYears   float64 `json:"experienceYears"`
	SkillsCount       int     `json:"skillsCount"`
}
