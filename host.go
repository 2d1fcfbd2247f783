package coverflow

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/a-h/templ"
	"github.com/google/uuid"
)

//go:embed static/coverflow.js
var staticFiles embed.FS

// Host owns carousel sessions and serves the renderer's traffic.
//
// Each attached CoverFlow is one session. Host serializes every turn on a
// session (a click, a Do call, a render) and flushes dirty state at the end
// of the turn, so any number of setter calls made in one turn reach the
// client as a single rebuild.
//
//	host := coverflow.NewHost(coverflow.WithKey(key))
//	http.Handle(coverflow.DefaultPath, host.Handler())
//
//	id := host.Attach(coverflow.New(urls))
//	coverflow.RenderHTML(w, r, page(host.Component(id)))
//
// Routes, relative to the host path:
//
//	GET  s/{token}       full render of the session
//	POST click           renderer click: p (token), url, initial
//	GET  coverflow.js    client glue
type Host struct {
	mu       sync.RWMutex
	mux      *http.ServeMux
	encoder  *Encoder
	sessions map[string]*session
	path     string
	sealed   bool
	log      Logger

	// OnError is called when a request fails.
	// Customize this to handle errors appropriately for your application.
	OnError func(http.ResponseWriter, *http.Request, error)
}

type session struct {
	mu sync.Mutex
	id string
	cf *CoverFlow
}

// NewHost creates a host. Panics if the token encoder cannot be built.
func NewHost(opts ...Option) *Host {
	o := buildOptions(opts)

	enc, err := NewEncoder(o.key)
	if err != nil {
		panic(fmt.Sprintf("coverflow: failed to create encoder: %v", err))
	}

	h := &Host{
		mux:      http.NewServeMux(),
		encoder:  enc,
		sessions: make(map[string]*session),
		path:     o.path,
		sealed:   o.sealed,
		log:      o.logger,
	}

	h.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		switch {
		case IsNotFound(err):
			http.Error(w, "Not found", http.StatusNotFound)
		case IsBadRequest(err):
			http.Error(w, "Bad request", http.StatusBadRequest)
		default:
			http.Error(w, "Internal error", http.StatusInternalServerError)
		}
	}

	h.mux.HandleFunc("GET "+h.path+"s/{token}", h.handleRender)
	h.mux.HandleFunc("POST "+h.path+"click", h.handleClick)
	h.mux.HandleFunc("GET "+h.path+"coverflow.js", h.handleScript)

	return h
}

// Path returns the URL prefix the host's routes live under.
func (h *Host) Path() string {
	return h.path
}

// ClickPath returns the endpoint renderers post clicks to.
func (h *Host) ClickPath() string {
	return h.path + "click"
}

// ScriptPath returns the URL of the client glue script.
func (h *Host) ScriptPath() string {
	return h.path + "coverflow.js"
}

// Attach registers cf as a new session and returns its id. Panics if cf is
// nil.
func (h *Host) Attach(cf *CoverFlow) string {
	if cf == nil {
		panic("coverflow: Attach called with nil CoverFlow")
	}
	s := &session{id: uuid.NewString(), cf: cf}

	h.mu.Lock()
	h.sessions[s.id] = s
	h.mu.Unlock()

	h.log.Debugf("attached session %s (%d images)", s.id, len(cf.state.URLs))
	return s.id
}

// Detach drops the session. Further requests for it return 404.
func (h *Host) Detach(id string) {
	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()

	h.log.Debugf("detached session %s", id)
}

// Len returns the number of attached sessions.
func (h *Host) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Host) lookup(id string) (*session, error) {
	h.mu.RLock()
	s, ok := h.sessions[id]
	h.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Do runs fn as one turn on the session's model. The changes fn makes are
// flushed by the next render of the session.
//
// fn must not call back into the host for the same session.
func (h *Host) Do(ctx context.Context, id string, fn func(cf *CoverFlow)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s, err := h.lookup(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.cf)
	return nil
}

// Token returns the token renderers use to refer to the session.
func (h *Host) Token(id string) (string, error) {
	if _, err := h.lookup(id); err != nil {
		return "", err
	}
	tok, err := h.encoder.Encode(sessionToken{ID: id}, h.sealed)
	if err != nil {
		return "", fmt.Errorf("coverflow: encode token: %w", err)
	}
	return tok, nil
}

func (h *Host) resolve(token string) (*session, error) {
	var st sessionToken
	if err := h.encoder.Decode(token, h.sealed, &st); err != nil {
		return nil, wrapEncodingError(err)
	}
	return h.lookup(st.ID)
}

// Component renders the session in full. Use it to embed a carousel in a
// page; later rebuilds arrive through the host's own routes.
func (h *Host) Component(id string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s, err := h.lookup(id)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()

		s.cf.MarkDirty(AllFields)
		return h.flush(ctx, s, w)
	})
}

// flush pushes the session's dirty state to w as a full render.
// Caller holds s.mu.
func (h *Host) flush(ctx context.Context, s *session, w io.Writer) error {
	tok, err := h.encoder.Encode(sessionToken{ID: s.id}, h.sealed)
	if err != nil {
		return fmt.Errorf("coverflow: encode token: %w", err)
	}
	opts := RenderOptions{ClickPath: h.ClickPath(), Token: tok}

	return s.cf.Flush(ctx, SyncerFunc(func(ctx context.Context, state WidgetState, changed FieldSet) error {
		h.log.Debugf("flush session %s changed=%s", s.id, changed)
		return Render(ElementID(s.id), state, opts).Render(ctx, w)
	}))
}

// ElementID is the DOM id of a session's root element.
func ElementID(id string) string {
	return "coverflow-" + id
}

// Handler returns the HTTP handler for host routes.
// Mount it at Path() in your application.
func (h *Host) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CSRF protection: mutating methods require HX-Request header
		if r.Method != http.MethodGet && r.Method != http.MethodHead && !IsHTMX(r) {
			http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
			return
		}

		h.mux.ServeHTTP(w, r)
	})
}

func (h *Host) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
	h.OnError(w, r, err)
}

func (h *Host) handleRender(w http.ResponseWriter, r *http.Request) {
	s, err := h.resolve(r.PathValue("token"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	s.cf.MarkDirty(AllFields)
	if err := h.flush(r.Context(), s, &buf); err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (h *Host) handleClick(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %v", ErrBadClick, err))
		return
	}

	s, err := h.resolve(r.PostForm.Get("p"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if _, ok := r.PostForm["url"]; !ok {
		h.fail(w, r, fmt.Errorf("%w: missing url", ErrBadClick))
		return
	}
	url := r.PostForm.Get("url")

	var initial bool
	if v := r.PostForm.Get("initial"); v != "" {
		initial, err = strconv.ParseBool(v)
		if err != nil {
			h.fail(w, r, fmt.Errorf("%w: initial=%q", ErrBadClick, v))
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cf.OnRendererClick(url, initial)
	idx := s.cf.SelectedIndex()
	h.log.Debugf("click session %s url=%q initial=%v index=%d", s.id, url, initial, idx)

	if !initial {
		w.Header().Set("HX-Trigger", selectionTrigger(url, idx))
	}

	// End of turn: listeners may have changed the model.
	if !s.cf.IsDirty() {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	if err := h.flush(r.Context(), s, &buf); err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (h *Host) handleScript(w http.ResponseWriter, r *http.Request) {
	data, err := staticFiles.ReadFile("static/coverflow.js")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Write(data)
}
