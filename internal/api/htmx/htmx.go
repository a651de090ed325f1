// Package htmx reads and writes the htmx request and response headers.
package htmx

import (
	"net/http"
	"strings"
)

const (
	HeaderRequest = "HX-Request"
	HeaderTrigger = "HX-Trigger"
)

func IsRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(HeaderRequest), "true")
}

// Trigger returns response headers that fire events on the client after the swap.
func Trigger(events ...string) map[string]string {
	return map[string]string{HeaderTrigger: strings.Join(events, ", ")}
}

// SetTrigger writes the trigger header directly, for responses without a body.
func SetTrigger(w http.ResponseWriter, events ...string) {
	w.Header().Set(HeaderTrigger, strings.Join(events, ", "))
}
