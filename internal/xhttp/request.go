package xhttp

import (
	"net/http"
	"strings"
)

// UnknownAddress is the shared bucket for callers without forwarding headers.
const UnknownAddress = "unknown"

// ClientAddress resolves the caller address used for rate limiting: the first
// X-Forwarded-For hop, then CF-Connecting-IP, then UnknownAddress. The socket
// address is deliberately ignored; behind the edge proxy it is always the proxy.
func ClientAddress(r *http.Request) string {
	if xff := r.Header.Get(XForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if cf := strings.TrimSpace(r.Header.Get(CFConnectingIP)); cf != "" {
		return cf
	}
	return UnknownAddress
}
