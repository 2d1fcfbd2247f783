package coverflow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// ClickEvent is the DOM event the client script dispatches on the carousel
// root when the current item changes. Its detail carries url and initial.
const ClickEvent = "coverflow:click"

// SelectEvent is the HX-Trigger event the host emits for user selections.
const SelectEvent = "coverflow:select"

// RenderOptions carries the host-side wiring for a rendered carousel.
type RenderOptions struct {
	// ClickPath is the endpoint clicks are posted to. Empty renders a
	// read-only carousel.
	ClickPath string
	// Token identifies the session; posted back with every click.
	Token string
	// Class is appended to the root element's class list.
	Class string
}

// FlipsterOptions maps state onto the client plugin's option object.
func FlipsterOptions(s WidgetState) map[string]any {
	var start any = "center"
	if s.Start >= 0 {
		start = s.Start
	}
	var autoplay any = false
	if s.Autoplay() {
		autoplay = s.AutoplayMillis
	}
	return map[string]any{
		"style":       s.Style.Plugin(),
		"start":       start,
		"loop":        s.Loop,
		"autoplay":    autoplay,
		"keyboard":    s.Keyboard,
		"scrollwheel": s.Mousewheel,
		"buttons":     s.NavigationButtons,
	}
}

// ClickAttrs builds the HTMX attributes that post a click back to the host.
//
// The client script fires ClickEvent with {url, initial} in the event
// detail; hx-vals lifts both into the request alongside the session token.
func ClickAttrs(path, token string) templ.Attributes {
	if path == "" {
		return templ.Attributes{}
	}
	tok, _ := json.Marshal(token)
	return templ.Attributes{
		"hx-post":    path,
		"hx-trigger": ClickEvent,
		"hx-swap":    "outerHTML",
		"hx-vals":    fmt.Sprintf("js:{p: %s, url: event.detail.url, initial: event.detail.initial}", tok),
	}
}

// Render returns the markup for one snapshot. The output is a complete
// replacement for the previous one (outerHTML swap); the client script
// re-initializes the plugin on every swap.
func Render(id string, s WidgetState, opts RenderOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder

		cfg, err := json.Marshal(FlipsterOptions(s))
		if err != nil {
			return err
		}

		class := "coverflow"
		if opts.Class != "" {
			class += " " + opts.Class
		}

		sb.WriteString(`<div`)
		if id != "" {
			writeAttr(&sb, "id", id)
		}
		writeAttr(&sb, "class", class)
		writeAttr(&sb, "data-flipster", string(cfg))
		attrs := ClickAttrs(opts.ClickPath, opts.Token)
		for _, k := range []string{"hx-post", "hx-trigger", "hx-swap", "hx-vals"} {
			if v, ok := attrs[k]; ok {
				writeAttr(&sb, k, fmt.Sprint(v))
			}
		}
		sb.WriteString(`><ul>`)

		size := fmt.Sprintf("max-height:%dpx;max-width:%dpx", s.MaxSize, s.MaxSize)
		for _, u := range s.URLs {
			sb.WriteString(`<li><img`)
			writeAttr(&sb, "src", u)
			writeAttr(&sb, "style", size)
			sb.WriteString(`></li>`)
		}

		sb.WriteString(`</ul></div>`)
		_, err = io.WriteString(w, sb.String())
		return err
	})
}

func writeAttr(sb *strings.Builder, name, value string) {
	sb.WriteString(` `)
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(templ.EscapeString(value))
	sb.WriteString(`"`)
}

// Script returns the <script> tag that loads the client glue from src.
func Script(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<script src="`+templ.EscapeString(src)+`" defer></script>`)
		return err
	})
}
