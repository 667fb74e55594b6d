// Package prompt builds the instruction text sent alongside an image.
//
// A [Template] decides which request fields condition the prompt and which
// JSON shape the model is asked to return. Building a prompt is pure: the same
// [Params] always produce the same text.
package prompt

import (
	"fmt"
	"sort"
	"strings"
)

// Params are the optional request fields a template may use.
type Params struct {
	Style    string
	Season   string
	Language string
}

// Template identifiers.
const (
	IDStyled   = "styled"
	IDSeasonal = "seasonal"
	IDBasic    = "basic"
)

const returnJSON = " Return ONLY a JSON object (no markdown, no backticks) with this structure:\n"

// Template describes one prompt variant.
type Template struct {
	ID string
	// MaxTokens is the output token budget requested from the model.
	MaxTokens int
	// Fields lists the request fields that change the prompt text.
	Fields []string

	language bool
	styled   bool
	schema   func(Params) string
}

// UsesField reports whether the named request field conditions this template.
func (t Template) UsesField(name string) bool {
	for _, f := range t.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Build returns the prompt for p. Fields the template does not use are ignored.
func (t Template) Build(p Params) string {
	p.Style = strings.TrimSpace(p.Style)
	p.Season = strings.TrimSpace(p.Season)
	if !t.styled {
		p.Style, p.Season = "", ""
	}

	var b strings.Builder
	if t.language {
		b.WriteString(LanguageDirective(p.Language))
	}

	if p.Style != "" && p.Season != "" {
		fmt.Fprintf(&b, "Analyze this fashion item and provide %s style outfit suggestions specifically for %s season. "+
			"Create polished, detailed outfit combinations that perfectly blend %s aesthetics with %s weather and vibe.",
			p.Style, p.Season, p.Style, p.Season)
	} else {
		b.WriteString("Analyze this fashion item and provide styling suggestions.")
	}

	b.WriteString(returnJSON)
	b.WriteString(t.schema(p))
	return b.String()
}

var (
	// Styled conditions on style, season and language and asks for three outfits.
	Styled = Template{
		ID:        IDStyled,
		MaxTokens: 2000,
		Fields:    []string{"style", "season", "language"},
		language:  true,
		styled:    true,
		schema:    styledSchema,
	}

	// Seasonal conditions on style and season only.
	Seasonal = Template{
		ID:        IDSeasonal,
		MaxTokens: 2000,
		Fields:    []string{"style", "season"},
		styled:    true,
		schema:    styledSchema,
	}

	// Basic uses the image alone and asks for two outfits with retailer search terms.
	Basic = Template{
		ID:        IDBasic,
		MaxTokens: 1500,
		schema:    basicSchema,
	}

	// Default is the template used when none is configured.
	Default = Styled
)

var templates = map[string]Template{
	IDStyled:   Styled,
	IDSeasonal: Seasonal,
	IDBasic:    Basic,
}

// Lookup returns the template registered under id. The empty id selects [Default].
func Lookup(id string) (Template, bool) {
	if id == "" {
		return Default, true
	}
	t, ok := templates[strings.ToLower(id)]
	return t, ok
}

// IDs returns the registered template identifiers in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(templates))
	for id := range templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func prefixed(prefix, s string) string {
	if s == "" {
		return ""
	}
	return prefix + s
}

func styledSchema(p Params) string {
	style, season := p.Style, p.Season
	return fmt.Sprintf(`{
  "itemDescription": "brief description of the item and its color",
  "styleCategory": "%s",
  "colorPalette": ["color1", "color2", "color3"],
  "outfitSuggestions": [
    {
      "name": "Outfit name that reflects the %s %s vibe",
      "items": {
        "tops": "detailed suggestion with specific colors, fabrics, and %s appropriate pieces",
        "bottoms": "detailed suggestion with specific colors, styles, and %s appropriate pieces",
        "accessories": "detailed accessories including shoes, bags, jewelry that complement the %s %s"
      },
      "vibe": "description of the complete look and why it works for %s %s"
    },
    {
      "name": "Second outfit name with different approach to %s %s",
      "items": {
        "tops": "different detailed suggestion",
        "bottoms": "different detailed suggestion",
        "accessories": "different accessories"
      },
      "vibe": "description of this look"
    },
    {
      "name": "Third outfit - another variation",
      "items": {
        "tops": "another detailed suggestion",
        "bottoms": "another detailed suggestion",
        "accessories": "more accessories"
      },
      "vibe": "description"
    }
  ],
  "tips": ["%s-specific tip for %s", "tip about colors and combinations", "tip about layering or fabric choices %s"]
}`,
		or(style, "casual/formal/sporty/elegant"),
		or(style, "style"), prefixed("and ", season),
		season,
		season,
		or(style, "style"), prefixed("and work for ", season),
		or(style, "this style"), prefixed("in ", season),
		or(style, "the style"), prefixed("for ", season),
		or(style, "style"), or(season, "this season"), prefixed("for ", season),
	)
}

func basicSchema(Params) string {
	return `{
  "itemDescription": "brief description of the item and its color",
  "styleCategory": "casual/formal/sporty/elegant",
  "colorPalette": ["color1", "color2", "color3"],
  "outfitSuggestions": [
    {
      "name": "Outfit name",
      "items": {
        "tops": "suggestion with colors",
        "bottoms": "suggestion with colors",
        "accessories": "suggestion"
      },
      "vibe": "description of the look",
      "searchTerms": {
        "zara": "zara search term",
        "mango": "mango search term",
        "parfois": "parfois search term"
      }
    },
    {
      "name": "Another outfit name",
      "items": {
        "tops": "different suggestion with colors",
        "bottoms": "different suggestion with colors",
        "accessories": "different suggestion"
      },
      "vibe": "description of this look",
      "searchTerms": {
        "zara": "zara search term",
        "mango": "mango search term",
        "parfois": "parfois search term"
      }
    }
  ],
  "tips": ["tip1", "tip2", "tip3"]
}`
}
