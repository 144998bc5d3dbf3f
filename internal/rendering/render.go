package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"sync"

	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/types"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// Template describes one of the built-in designs.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Premium     bool   `json:"isPremium"`
}

// DefaultTemplate is used for empty or unknown template ids.
const DefaultTemplate = "modern"

var catalog = []Template{
	{ID: "modern", Name: "Modern", Description: "Clean, contemporary design"},
	{ID: "professional", Name: "Professional", Description: "Classic, formal style"},
	{ID: "creative", Name: "Creative", Description: "Dynamic, eye-catching design"},
	{ID: "executive", Name: "Executive", Description: "Elegant and sophisticated"},
	{ID: "premium", Name: "Premium", Description: "Exclusive design with animations", Premium: true},
}

// Templates lists the built-in designs in display order.
func Templates() []Template {
	return append([]Template(nil), catalog...)
}

// Lookup returns the template with id, falling back to DefaultTemplate.
func Lookup(id string) Template {
	for _, t := range catalog {
		if t.ID == id {
			return t
		}
	}
	return catalog[0]
}

var parsed sync.Map // template id -> *template.Template

func parseTemplate(id string) (*template.Template, error) {
	if t, ok := parsed.Load(id); ok {
		return t.(*template.Template), nil
	}

	tmpl, err := template.New(id).ParseFS(templateFS,
		"templates/layout.html.tmpl",
		"templates/partials.html.tmpl",
		"templates/"+id+".html.tmpl",
	)
	if err != nil {
		return nil, &TemplateError{Template: id, Message: "failed to parse template", Cause: err}
	}

	actual, _ := parsed.LoadOrStore(id, tmpl)
	return actual.(*template.Template), nil
}

// view is the data passed to the templates.
type view struct {
	TemplateID string
	Title      string
	Doc        *types.ResumeDocument
	Order      []types.Section
	Photo      template.URL
	Vars       template.CSS
}

func cssVars(o Options) template.CSS {
	c := o.Customization
	// Values are validated against fixed patterns and lists before reaching here.
	return template.CSS(fmt.Sprintf(
		":root { --primary: %s; --secondary: %s; --accent: %s; --main-font: '%s'; --heading-font: '%s'; --heading-weight: %s; --section-spacing: %srem; }",
		o.Theme.Primary, o.Theme.Secondary, o.Theme.Accent,
		c.MainFont, c.HeadingFont, c.HeadingWeight,
		strconv.FormatFloat(c.SectionSpacing, 'f', -1, 64),
	))
}

// Title is the document title for doc: the full name, or "Resume".
func Title(doc *types.ResumeDocument) string {
	if name := strings.TrimSpace(doc.PersonalInfo.FullName); name != "" {
		return name
	}
	return "Resume"
}

// Render produces a complete HTML page for doc. Body sections follow the
// document's section order.
func Render(doc *types.ResumeDocument, opts Options) (string, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return "", err
	}

	tmpl, err := parseTemplate(opts.Template)
	if err != nil {
		return "", err
	}

	snapshot := resume.Clone(doc)
	v := view{
		TemplateID: opts.Template,
		Title:      "CV - " + Title(snapshot),
		Doc:        snapshot,
		Order:      snapshot.SectionOrder,
		Vars:       cssVars(opts),
	}
	if img := snapshot.PersonalInfo.ProfileImage; img != nil && strings.HasPrefix(*img, "data:image/") {
		v.Photo = template.URL(*img)
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, "page", v); err != nil {
		return "", &TemplateError{Template: opts.Template, Message: "failed to execute template", Cause: err}
	}
	return b.String(), nil
}
