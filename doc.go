// Package stylist turns a photo of a clothing item into outfit suggestions.
//
// An [Analyzer] builds a prompt from a [prompt.Template] and the optional
// style, season and language of an [AnalysisRequest], sends the image and
// the prompt to a [VisionProvider] in a single call, and returns the model's
// JSON reply unmodified.
//
// Use the [github.com/spetersoncode/stylist/client] package for a provider
// backed by Anthropic, OpenAI or Google, and the
// [github.com/spetersoncode/stylist/server] package to expose the analyzer
// over HTTP.
//
// # Basic Usage
//
//	c := client.New(client.Config{
//	    APIKeys: client.APIKeys{Anthropic: os.Getenv("ANTHROPIC_API_KEY")},
//	})
//
//	analyzer := stylist.NewAnalyzer(c)
//	result, err := analyzer.Analyze(ctx, stylist.AnalysisRequest{
//	    ImageData: base64Image,
//	    Style:     "minimalist",
//	    Season:    "summer",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(string(result.Result))
//
// # Templates
//
// Three templates are available: [prompt.Styled] (the default, with a
// language directive), [prompt.Seasonal] and [prompt.Basic]:
//
//	analyzer := stylist.NewAnalyzer(c, stylist.WithTemplate(prompt.Basic))
//
// # Error Handling
//
// Every error returned by Analyze carries a category. [HTTPStatus] maps it
// onto a response code: user input errors are 400, configuration and
// response errors are 500, and upstream errors keep the provider's status.
//
//	if stylist.IsUpstream(err) {
//	    log.Printf("provider returned %d", stylist.StatusCodeOf(err))
//	}
package stylist
