// Package upstream converts non-success model API responses into stylist errors.
//
// Provider SDKs parse error bodies into their own types and may drop text that
// is not JSON. The adapters hook these helpers in before the SDK sees the
// response so the caller gets the status code and the body exactly as sent.
package upstream

import (
	"io"
	"net/http"
	"strings"

	"github.com/spetersoncode/stylist"
)

// maxBody caps how much of an error body is echoed back.
const maxBody = 64 << 10

// OK reports whether res carries a success status.
func OK(res *http.Response) bool {
	return res.StatusCode >= 200 && res.StatusCode < 300
}

// ReadError consumes and closes the body of a non-success response and
// returns it as an upstream error labelled with the provider name.
func ReadError(p stylist.Provider, res *http.Response) error {
	defer res.Body.Close()
	body, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil && len(body) == 0 {
		return stylist.NewUpstreamError(p.Label(), res.StatusCode, res.Status, err)
	}
	return stylist.NewUpstreamError(p.Label(), res.StatusCode, strings.TrimSpace(string(body)), nil)
}

// Transport is an http.RoundTripper that fails non-success responses with
// ReadError. It is used with SDKs that accept an *http.Client but no middleware.
type Transport struct {
	Provider stylist.Provider
	Base     http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	res, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if !OK(res) {
		return nil, ReadError(t.Provider, res)
	}
	return res, nil
}
