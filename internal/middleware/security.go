// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"strings"
)

// SecureHeaders returns middleware that adds security-related HTTP headers
// to every response. With no frame ancestors the response may only be
// framed by the same origin. Listed ancestors are allowed to embed it,
// which the frontend needs for its site preview iframe.
func SecureHeaders(frameAncestors ...string) func(http.Handler) http.Handler {
	var csp string
	if len(frameAncestors) > 0 {
		csp = "frame-ancestors 'self' " + strings.Join(frameAncestors, " ")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()

			h.Set("X-Content-Type-Options", "nosniff")

			if csp != "" {
				h.Set("Content-Security-Policy", csp)
			} else {
				h.Set("X-Frame-Options", "SAMEORIGIN")
			}

			// The legacy XSS filter is disabled; CSP supersedes it.
			h.Set("X-XSS-Protection", "0")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", "interest-cohort=()")

			next.ServeHTTP(w, r)
		})
	}
}
