package coverflow

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
)

// RenderHTML writes a templ component to the HTTP response.
//
// Sets Content-Type to text/html and renders with the request's context.
// Use it for the page that embeds a carousel:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    coverflow.RenderHTML(w, r, page(host.Component(id)))
//	}
func RenderHTML(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// IsHTMX returns true if the request originated from HTMX.
//
// HTMX sends HX-Request: true on all requests. The host requires it on
// clicks, which stops cross-origin form posts.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// BuildTriggerHeader builds an HX-Trigger header value.
//
//  1. Event only: "coverflow:select" -> "coverflow:select"
//  2. Event with data: {"coverflow:select": {"url": "b.jpg", "index": 1}}
//
// When data is provided, HTMX fires the event with evt.detail set to it,
// so page scripts can react to selections without a round trip.
func BuildTriggerHeader(event string, data map[string]any) string {
	if event == "" {
		return ""
	}
	if data == nil {
		return event
	}
	b, err := json.Marshal(map[string]any{event: data})
	if err != nil {
		return event
	}
	return string(b)
}

// selectionTrigger is the HX-Trigger value for a user selection.
func selectionTrigger(url string, idx int) string {
	return BuildTriggerHeader(SelectEvent, map[string]any{
		"url":   url,
		"index": idx,
	})
}
