package xhttp

import (
	"net/http"
	"strconv"
	"time"
)

const (
	XForwardedFor    = "X-Forwarded-For"
	CFConnectingIP   = "CF-Connecting-IP"
	XRequestID       = "X-Request-ID"
	XContentTypeOpts = "X-Content-Type-Options"
	XFrameOpts       = "X-Frame-Options"
	ReferrerPolicy   = "Referrer-Policy"
	Origin           = "Origin"
	Authorization    = "Authorization"
	RetryAfter       = "Retry-After"
	UserAgent        = "User-Agent"
)

const (
	AccessControlAllowOrigin  = "Access-Control-Allow-Origin"
	AccessControlAllowMethods = "Access-Control-Allow-Methods"
	AccessControlAllowHeaders = "Access-Control-Allow-Headers"
	AccessControlMaxAge       = "Access-Control-Max-Age"
	Vary                      = "Vary"
)

const (
	ContentType     = "Content-Type"
	ApplicationJSON = "application/json"
)

func SetHeaderRequestID(w http.ResponseWriter, requestID string) {
	w.Header().Set(XRequestID, requestID)
}

func SetHeaderContentTypeApplicationJSON(w http.ResponseWriter) {
	w.Header().Set(ContentType, ApplicationJSON)
}

// SetHeaderRetryAfter writes delay-seconds, rounding up so a client never retries early.
func SetHeaderRetryAfter(w http.ResponseWriter, retryAfter time.Duration) {
	seconds := int64((retryAfter + time.Second - 1) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set(RetryAfter, strconv.FormatInt(seconds, 10))
}
