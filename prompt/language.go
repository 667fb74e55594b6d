package prompt

import (
	"fmt"
	"strings"
)

// English is the language the model answers in when no directive is given.
const English = "English"

// languages maps lower-cased names to the spelling used in directives.
var languages = map[string]string{
	"english":    English,
	"spanish":    "Spanish",
	"french":     "French",
	"german":     "German",
	"italian":    "Italian",
	"portuguese": "Portuguese",
	"dutch":      "Dutch",
	"polish":     "Polish",
	"russian":    "Russian",
	"ukrainian":  "Ukrainian",
	"turkish":    "Turkish",
	"greek":      "Greek",
	"swedish":    "Swedish",
	"arabic":     "Arabic",
	"hebrew":     "Hebrew",
	"hindi":      "Hindi",
	"japanese":   "Japanese",
	"korean":     "Korean",
	"chinese":    "Chinese",
}

// NormalizeLanguage returns the canonical spelling of a known language name.
// Unknown names are returned trimmed but otherwise untouched.
func NormalizeLanguage(name string) string {
	name = strings.TrimSpace(name)
	if canonical, ok := languages[strings.ToLower(name)]; ok {
		return canonical
	}
	return name
}

// IsKnownLanguage reports whether name is in the language table.
func IsKnownLanguage(name string) bool {
	_, ok := languages[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// LanguageDirective returns the instruction forcing the reply into language,
// or the empty string when language is empty or English.
func LanguageDirective(language string) string {
	language = NormalizeLanguage(language)
	if language == "" || language == English {
		return ""
	}
	return fmt.Sprintf("IMPORTANT: Respond in %s. All text in the JSON (itemDescription, outfit names, vibe descriptions, tips) must be in %s. ", language, language)
}
