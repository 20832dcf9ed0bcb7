package xhttp

import (
	"fmt"
	"net/http"
)

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

var _ http.RoundTripper = (*userAgentTransport)(nil)

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(UserAgent, t.userAgent)
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	return resp, nil
}

func NewTransport(userAgent string) http.RoundTripper {
	return &userAgentTransport{base: http.DefaultTransport, userAgent: userAgent}
}
