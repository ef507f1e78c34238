package mess

import "net/http"

// transport implements http.RoundTripper and attaches the admin bearer token
// before forwarding requests to the underlying transport.
type transport struct {
	token string
	base  http.RoundTripper
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(req)
}

// AdminTransport wraps an http.RoundTripper so that every request made through
// it carries the admin token.
func AdminTransport(token string, base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &transport{token: token, base: base}
}
