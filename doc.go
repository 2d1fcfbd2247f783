// Package coverflow provides a server-held model for a "coverflow" image
// carousel whose visual side is rendered in the browser by the jQuery
// Flipster plugin.
//
// The server is authoritative. The browser only draws what it is sent and
// reports which image is current.
//
// # Model
//
// CoverFlow holds the image list and the display settings (size, keyboard,
// mousewheel, loop, navigation buttons, autoplay, style, start position)
// plus the index of the last selected image.
//
//	cf := coverflow.New([]string{"a.jpg", "b.jpg", "c.jpg"})
//	cf.SetStyle(coverflow.StyleCarousel)
//	cf.SetAutoplay(500) // raised to 1000ms, and loop is switched on
//
// Setters never fail and never talk to the client. They mark the touched
// field dirty. Getters never mark anything.
//
// # Synchronization
//
// Flush hands the full state to a Syncer when anything is dirty, then
// clears the dirty set. The client rebuilds from scratch on every flush,
// so Syncers always get the whole WidgetState; the changed FieldSet is for
// logging and diagnostics.
//
//	err := cf.Flush(ctx, coverflow.SyncerFunc(func(ctx context.Context, s coverflow.WidgetState, changed coverflow.FieldSet) error {
//	    return coverflow.Render("gallery", s, coverflow.RenderOptions{}).Render(ctx, w)
//	}))
//
// # Selection
//
// The client reports every item switch as click(url, initial). The model
// stores the first index of url in the current list (NoSelection if absent)
// and, unless initial is set, notifies listeners:
//
//	cf.AddImageSelectionListener(coverflow.ListenerFunc(func(ev coverflow.ImageSelectionEvent) {
//	    fmt.Println(ev.URL, ev.SelectedIndex)
//	}))
//
// initial marks the selection the plugin makes by itself when it starts,
// which is not user interaction.
//
// A ListenerFunc is not comparable, so RemoveImageSelectionListener cannot
// find it. Keep the Registration that AddImageSelectionListener returns
// and call its Remove method instead.
//
// # Hosting
//
// Host carries all of this over HTTP. It keeps one CoverFlow per session,
// serializes turns on a session, and flushes at the end of every turn so a
// batch of changes reaches the browser as one rebuild. Session references
// sent to the browser are signed (or, with WithSealedTokens, encrypted).
//
//	host := coverflow.NewHost(coverflow.WithKey(key))
//	http.Handle(host.Path(), host.Handler())
//
//	id := host.Attach(coverflow.New(urls))
//	coverflow.RenderHTML(w, r, layout(host.Component(id)))
//
// Clicks require the HX-Request header HTMX sends, which rules out
// cross-origin form posts. User selections are also broadcast to the page
// as an HX-Trigger "coverflow:select" event.
package coverflow
