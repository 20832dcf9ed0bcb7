package middleware

import (
	"net/http"
	"slices"
)

// Chain wraps h so that middleware[0] is the outermost layer.
func Chain(h http.Handler, middleware ...func(http.Handler) http.Handler) http.Handler {
	for _, m := range slices.Backward(middleware) {
		h = m(h)
	}
	return h
}
