// Package anthropic implements [stylist.VisionProvider] on top of the official
// Anthropic Go SDK.
//
// Each call sends one user message: an inline base64 image block followed by
// a text block holding the prompt. The SDK's own retries are turned off and
// error responses are intercepted before the SDK decodes them, so the caller
// sees the upstream status and body verbatim:
//
//	client := anthropic.New(apiKey)
//	reply, err := client.Describe(ctx, stylist.NewJPEG(data), prompt,
//	    stylist.WithMaxTokens(2000),
//	)
package anthropic
