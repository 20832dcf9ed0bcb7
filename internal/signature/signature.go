// Package signature authenticates webhook deliveries with an HMAC-SHA256 of
// the raw request body keyed by the shared secret, hex encoded.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
)

var (
	ErrMissingSecret    = errors.New("signature secret not configured")
	ErrMissingSignature = errors.New("missing signature header")
	ErrInvalidSignature = errors.New("invalid signature")
)

type Verifier struct {
	secret []byte
}

func New(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify checks supplied against the signature of body. It fails closed
// when no secret is configured and never hashes when supplied is empty.
func (v *Verifier) Verify(body []byte, supplied string) error {
	if len(v.secret) == 0 {
		return ErrMissingSecret
	}

	supplied = strings.TrimSpace(supplied)
	if supplied == "" {
		return ErrMissingSignature
	}

	expected := sign(v.secret, body)
	if len(expected) != len(supplied) {
		return ErrInvalidSignature
	}
	if !hmac.Equal([]byte(expected), []byte(supplied)) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign returns the hex signature a sender would attach to body.
func Sign(secret string, body []byte) string {
	return sign([]byte(secret), body)
}

func sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Header reads the signature header. Lookup is case-insensitive through the
// canonical form, with a raw upper-case key as fallback for headers that were
// stored without canonicalisation.
func Header(h http.Header, name string) string {
	if v := h.Get(name); v != "" {
		return v
	}
	if vs := h[strings.ToUpper(name)]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}
