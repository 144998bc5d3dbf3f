package rendering

import (
	"regexp"
	"slices"
	"strconv"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ColorTheme is the three-color palette applied to a template.
type ColorTheme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// DefaultTheme is the palette used when none is chosen.
var DefaultTheme = ColorTheme{
	Primary:   "#4361ee",
	Secondary: "#3f37c9",
	Accent:    "#4895ef",
}

// Validate checks that every color is a #rrggbb value.
func (t ColorTheme) Validate() error {
	for _, c := range []struct{ field, value string }{
		{"primary", t.Primary},
		{"secondary", t.Secondary},
		{"accent", t.Accent},
	} {
		if !hexColor.MatchString(c.value) {
			return &OptionsError{Field: c.field + " color", Value: c.value, Message: "expected #rrggbb"}
		}
	}
	return nil
}

// withDefaults fills empty colors from DefaultTheme.
func (t ColorTheme) withDefaults() ColorTheme {
	if t.Primary == "" {
		t.Primary = DefaultTheme.Primary
	}
	if t.Secondary == "" {
		t.Secondary = DefaultTheme.Secondary
	}
	if t.Accent == "" {
		t.Accent = DefaultTheme.Accent
	}
	return t
}

// Fonts offered for body and heading text.
var Fonts = []string{"Roboto", "Open Sans", "Montserrat", "Lato", "Poppins"}

// HeadingWeights offered for headings.
var HeadingWeights = []string{"300", "400", "500", "600", "700", "800"}

// Section spacing bounds in rem.
const (
	MinSectionSpacing = 1.0
	MaxSectionSpacing = 5.0
)

// Customization holds the typography settings.
type Customization struct {
	MainFont       string  `json:"mainFont"`
	HeadingFont    string  `json:"headingFont"`
	SectionSpacing float64 `json:"sectionSpacing"`
	HeadingWeight  string  `json:"headingWeight"`
}

// DefaultCustomization is the typography used when none is chosen.
var DefaultCustomization = Customization{
	MainFont:       "Roboto",
	HeadingFont:    "Montserrat",
	SectionSpacing: 2.5,
	HeadingWeight:  "600",
}

func (c Customization) withDefaults() Customization {
	if c.MainFont == "" {
		c.MainFont = DefaultCustomization.MainFont
	}
	if c.HeadingFont == "" {
		c.HeadingFont = DefaultCustomization.HeadingFont
	}
	if c.SectionSpacing == 0 {
		c.SectionSpacing = DefaultCustomization.SectionSpacing
	}
	if c.HeadingWeight == "" {
		c.HeadingWeight = DefaultCustomization.HeadingWeight
	}
	return c
}

// Validate checks the settings against the offered choices.
func (c Customization) Validate() error {
	if !slices.Contains(Fonts, c.MainFont) {
		return &OptionsError{Field: "main font", Value: c.MainFont, Message: "unsupported font"}
	}
	if !slices.Contains(Fonts, c.HeadingFont) {
		return &OptionsError{Field: "heading font", Value: c.HeadingFont, Message: "unsupported font"}
	}
	if !slices.Contains(HeadingWeights, c.HeadingWeight) {
		return &OptionsError{Field: "heading weight", Value: c.HeadingWeight, Message: "unsupported weight"}
	}
	if c.SectionSpacing < MinSectionSpacing || c.SectionSpacing > MaxSectionSpacing {
		return &OptionsError{
			Field:   "section spacing",
			Value:   strconv.FormatFloat(c.SectionSpacing, 'f', -1, 64),
			Message: "must be between 1 and 5",
		}
	}
	return nil
}

// Options selects the template and its styling. Zero values use defaults.
type Options struct {
	Template      string        `json:"template"`
	Theme         ColorTheme    `json:"colorTheme"`
	Customization Customization `json:"customization"`
}

// Normalize fills defaults and validates the options.
func (o Options) Normalize() (Options, error) {
	o.Template = Lookup(o.Template).ID
	o.Theme = o.Theme.withDefaults()
	o.Customization = o.Customization.withDefaults()
	if err := o.Theme.Validate(); err != nil {
		return o, err
	}
	if err := o.Customization.Validate(); err != nil {
		return o, err
	}
	return o, nil
}
