package cfecho

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pthm/coverflow"
)

func TestMount(t *testing.T) {
	e := echo.New()
	host := Mount(e)

	if host == nil {
		t.Fatal("Mount returned nil host")
	}
	if host.Path() != coverflow.DefaultPath {
		t.Errorf("Path() = %q, want %q", host.Path(), coverflow.DefaultPath)
	}
}

func TestMountWithPath(t *testing.T) {
	e := echo.New()
	host := Mount(e, coverflow.WithPath("/components/"))

	if host.Path() != "/components/" {
		t.Errorf("Path() = %q, want %q", host.Path(), "/components/")
	}
}

func TestMountRoutesClicks(t *testing.T) {
	e := echo.New()
	host := Mount(e, coverflow.WithKey([]byte("echo-test-key")))

	cf := coverflow.New([]string{"a.jpg", "b.jpg"})
	var got []int
	cf.AddImageSelectionListener(coverflow.ListenerFunc(func(ev coverflow.ImageSelectionEvent) {
		got = append(got, ev.SelectedIndex)
	}))
	id := host.Attach(cf)

	// The page embed flushes the initial state; later clicks are 204 unless
	// something changed.
	if err := host.Component(id).Render(context.Background(), io.Discard); err != nil {
		t.Fatalf("Component() error = %v", err)
	}

	tok, err := host.Token(id)
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}

	form := url.Values{"p": {tok}, "url": {"b.jpg"}, "initial": {"false"}}
	req := httptest.NewRequest(http.MethodPost, host.ClickPath(), strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusNoContent, rec.Body.String())
	}
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("listener saw %v, want [1]", got)
	}
	if cf.SelectedIndex() != 1 {
		t.Errorf("SelectedIndex() = %d, want 1", cf.SelectedIndex())
	}
}

func TestMountGroup(t *testing.T) {
	e := echo.New()
	g := e.Group("/app")
	host := MountGroup(g, "/app", coverflow.WithPath("/app/_cf/"))

	id := host.Attach(coverflow.New([]string{"x.png"}))
	tok, _ := host.Token(id)

	req := httptest.NewRequest(http.MethodGet, host.Path()+"s/"+tok, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `src="x.png"`) {
		t.Errorf("body missing image: %s", rec.Body.String())
	}
}

func TestMountGroupRejectsForeignPath(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for host path outside the group")
		}
	}()
	e := echo.New()
	MountGroup(e.Group("/app"), "/app", coverflow.WithPath("/_cf/"))
}

func TestRender(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	cf := coverflow.New([]string{"a.jpg"})
	if err := Render(c, coverflow.Render("g", cf.State(), coverflow.RenderOptions{})); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `id="g"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}
