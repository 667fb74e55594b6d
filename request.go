package stylist

import (
	"strings"

	"github.com/spetersoncode/stylist/prompt"
)

// AnalysisRequest is the inbound payload: an image plus optional styling hints.
type AnalysisRequest struct {
	// ImageData is the base64-encoded image. Required.
	ImageData string `json:"imageData"`
	Style     string `json:"style,omitempty"`
	Season    string `json:"season,omitempty"`
	Language  string `json:"language,omitempty"`
}

// Validate checks that the request carries an image.
func (r AnalysisRequest) Validate() error {
	if strings.TrimSpace(r.ImageData) == "" {
		return NewUserInputError("No image data provided", ErrNoImageData)
	}
	return nil
}

// PromptParams returns the fields a prompt template may condition on.
func (r AnalysisRequest) PromptParams() prompt.Params {
	return prompt.Params{
		Style:    r.Style,
		Season:   r.Season,
		Language: r.Language,
	}
}
