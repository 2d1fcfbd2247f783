package coverflow

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
)

// TestResult holds the response of a simulated renderer request.
type TestResult struct {
	HTML            string
	StatusCode      int
	Headers         http.Header
	TriggeredEvents []string
}

// TestRender flushes cf through Render and returns the HTML.
//
// Use this for unit tests of what the client would receive without an
// HTTP round trip. The model is flushed, so its dirty set is cleared.
//
//	result, err := coverflow.TestRender(cf)
//	if !result.HTMLContains(`src="a.jpg"`) { ... }
func TestRender(cf *CoverFlow) (*TestResult, error) {
	var buf bytes.Buffer
	cf.MarkDirty(AllFields)
	err := cf.Flush(context.Background(), SyncerFunc(func(ctx context.Context, s WidgetState, _ FieldSet) error {
		return Render("", s, RenderOptions{}).Render(ctx, &buf)
	}))
	if err != nil {
		return nil, err
	}
	return &TestResult{
		HTML:       buf.String(),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestClick simulates the renderer reporting a click for session id.
//
//	result, err := coverflow.TestClick(host, id, "b.jpg", false)
//	if !result.HasEvent(coverflow.SelectEvent) { ... }
func TestClick(h *Host, id, imageURL string, initial bool) (*TestResult, error) {
	tok, err := h.Token(id)
	if err != nil {
		return nil, err
	}
	return NewTestRequest(http.MethodPost, h.ClickPath()).
		WithFormData("p", tok).
		WithFormData("url", imageURL).
		WithFormData("initial", strconv.FormatBool(initial)).
		Execute(h.Handler())
}

// TestGet simulates a full render request for session id.
func TestGet(h *Host, id string) (*TestResult, error) {
	tok, err := h.Token(id)
	if err != nil {
		return nil, err
	}
	return NewTestRequest(http.MethodGet, h.Path()+"s/"+tok).Execute(h.Handler())
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HasEvent checks if an event was triggered.
func (r *TestResult) HasEvent(event string) bool {
	for _, e := range r.TriggeredEvents {
		if e == event {
			return true
		}
	}
	return false
}

// Selection decodes the coverflow:select trigger, if any.
func (r *TestResult) Selection() (url string, index int, ok bool) {
	var payload map[string]struct {
		URL   string `json:"url"`
		Index int    `json:"index"`
	}
	if err := json.Unmarshal([]byte(r.Headers.Get("HX-Trigger")), &payload); err != nil {
		return "", 0, false
	}
	sel, ok := payload[SelectEvent]
	if !ok {
		return "", 0, false
	}
	return sel.URL, sel.Index, true
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// parseTriggerHeader parses the HX-Trigger header value into event names.
// The header can be a comma-separated list of names or a JSON object.
func parseTriggerHeader(trigger string) []string {
	trigger = strings.TrimSpace(trigger)
	if trigger == "" {
		return nil
	}

	if strings.HasPrefix(trigger, "{") {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal([]byte(trigger), &obj); err != nil {
			return nil
		}
		events := make([]string, 0, len(obj))
		for k := range obj {
			events = append(events, k)
		}
		return events
	}

	parts := strings.Split(trigger, ",")
	events := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			events = append(events, p)
		}
	}
	return events
}

// TestRequestBuilder provides a fluent interface for building test requests.
//
//	result, err := coverflow.NewTestRequest("POST", host.ClickPath()).
//	    WithFormData("p", token).
//	    WithFormData("url", "a.jpg").
//	    WithoutHTMX().
//	    Execute(host.Handler())
type TestRequestBuilder struct {
	method   string
	url      string
	formData url.Values
	headers  map[string]string
	htmx     bool
	ctx      context.Context
}

// NewTestRequest creates a new test request builder.
func NewTestRequest(method, target string) *TestRequestBuilder {
	return &TestRequestBuilder{
		method:   method,
		url:      target,
		formData: url.Values{},
		headers:  make(map[string]string),
		htmx:     true,
		ctx:      context.Background(),
	}
}

// WithFormData adds form data to the request.
func (b *TestRequestBuilder) WithFormData(key, value string) *TestRequestBuilder {
	b.formData.Set(key, value)
	return b
}

// WithHeader adds a header to the request.
func (b *TestRequestBuilder) WithHeader(key, value string) *TestRequestBuilder {
	b.headers[key] = value
	return b
}

// WithoutHTMX drops the default HX-Request header.
func (b *TestRequestBuilder) WithoutHTMX() *TestRequestBuilder {
	b.htmx = false
	return b
}

// WithContext sets the context for the request.
func (b *TestRequestBuilder) WithContext(ctx context.Context) *TestRequestBuilder {
	b.ctx = ctx
	return b
}

// Execute runs the request against handler.
func (b *TestRequestBuilder) Execute(handler http.Handler) (*TestResult, error) {
	req := httptest.NewRequest(b.method, b.url, strings.NewReader(b.formData.Encode()))
	req = req.WithContext(b.ctx)

	if b.htmx {
		req.Header.Set("HX-Request", "true")
	}
	if len(b.formData) > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range b.headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	result := &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
	}
	if trigger := rec.Header().Get("HX-Trigger"); trigger != "" {
		result.TriggeredEvents = parseTriggerHeader(trigger)
	}
	return result, nil
}
