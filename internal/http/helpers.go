package http

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// contextWithPartialTimeout bounds backend calls made while rendering a
// partial, so a slow query never hangs the page.
func contextWithPartialTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 7*time.Second)
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}
