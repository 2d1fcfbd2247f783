package main

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/pthm/coverflow"
)

const head = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>coverflow</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/jquery.flipster@1.1.2/dist/jquery.flipster.min.css">
<script src="https://code.jquery.com/jquery-3.1.1.min.js"></script>
<script src="https://cdn.jsdelivr.net/npm/jquery.flipster@1.1.2/dist/jquery.flipster.min.js"></script>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
`

func page(host *coverflow.Host, id string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if err := coverflow.Script(host.ScriptPath()).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "</head>\n<body>\n"); err != nil {
			return err
		}
		if err := host.Component(id).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, settingsForm(id)); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n</body>\n</html>\n")
		return err
	})
}

func settingsForm(id string) string {
	return fmt.Sprintf(`
<form hx-post="/settings/%s" hx-target="#%s" hx-swap="outerHTML">
  <select name="style">
    <option value="coverflow">coverflow</option>
    <option value="carousel">carousel</option>
    <option value="wheel">wheel</option>
    <option value="flat">flat</option>
  </select>
  <label>size <input name="maxSize" type="number" value="%d"></label>
  <label>start <input name="start" type="number" value="-1"></label>
  <label>autoplay ms <input name="autoplay" type="number"></label>
  <label><input name="keyboard" type="checkbox"> keyboard</label>
  <label><input name="mousewheel" type="checkbox"> mousewheel</label>
  <label><input name="loop" type="checkbox"> loop</label>
  <label><input name="buttons" type="checkbox"> buttons</label>
  <button>apply</button>
</form>`, templ.EscapeString(id), templ.EscapeString(coverflow.ElementID(id)), coverflow.DefaultMaxSize)
}
