// Package google implements [stylist.VisionProvider] on the Gemini API through
// google.golang.org/genai. The image is decoded and sent as inline bytes.
package google
