package xhttp

import (
	"net/http"
	"testing"
)

func TestClientAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		xForwardedFor  string
		cfConnectingIP string
		remoteAddr     string
		expected       string
	}{
		{
			name:          "x-forwarded-for single hop",
			xForwardedFor: "203.0.113.195",
			remoteAddr:    "192.0.2.1:1234",
			expected:      "203.0.113.195",
		},
		{
			name:          "x-forwarded-for first of many hops",
			xForwardedFor: "203.0.113.195, 70.41.3.18, 150.172.238.178",
			remoteAddr:    "192.0.2.1:1234",
			expected:      "203.0.113.195",
		},
		{
			name:          "x-forwarded-for padded",
			xForwardedFor: "   198.51.100.7 ,10.0.0.1",
			expected:      "198.51.100.7",
		},
		{
			name:           "x-forwarded-for takes precedence over cdn header",
			xForwardedFor:  "203.0.113.195",
			cfConnectingIP: "198.51.100.1",
			expected:       "203.0.113.195",
		},
		{
			name:           "cdn header when no forwarded-for",
			cfConnectingIP: "198.51.100.1",
			remoteAddr:     "192.0.2.1:1234",
			expected:       "198.51.100.1",
		},
		{
			name:           "empty first hop falls through to cdn header",
			xForwardedFor:  " , 10.0.0.1",
			cfConnectingIP: "198.51.100.1",
			expected:       "198.51.100.1",
		},
		{
			name:          "IPv6 in x-forwarded-for",
			xForwardedFor: "2001:db8::1",
			expected:      "2001:db8::1",
		},
		{
			name:       "remote addr ignored",
			remoteAddr: "192.0.2.1:1234",
			expected:   UnknownAddress,
		},
		{
			name:     "no headers at all",
			expected: UnknownAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := buildRequest(t, tt.xForwardedFor, tt.cfConnectingIP, tt.remoteAddr)
			if got := ClientAddress(req); got != tt.expected {
				t.Errorf("ClientAddress() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func buildRequest(t *testing.T, xForwardedFor, cfConnectingIP, remoteAddr string) *http.Request {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodPost, "http://example.com/webhooks/terra", nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	if xForwardedFor != "" {
		req.Header.Set(XForwardedFor, xForwardedFor)
	}
	if cfConnectingIP != "" {
		req.Header.Set(CFConnectingIP, cfConnectingIP)
	}

	req.RemoteAddr = remoteAddr

	return req
}
