// Package openai implements [stylist.VisionProvider] on the OpenAI chat
// completions API. The image travels as a base64 data URI content part.
package openai
