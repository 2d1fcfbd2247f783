package coverflow

import (
	"context"
)

// CoverFlow is the server-side model of one carousel.
//
// It owns the synchronized WidgetState and the local selection. Every
// setter marks the touched field dirty; nothing is pushed to the client
// until the host calls Flush, so a batch of setter calls made during one
// turn results in a single rebuild on the client.
//
// A CoverFlow is not safe for concurrent use. Hosts serialize access per
// session (see Host).
//
//	cf := coverflow.New([]string{"a.jpg", "b.jpg", "c.jpg"})
//	cf.SetAutoplay(3000)
//	cf.AddImageSelectionListener(coverflow.ListenerFunc(func(ev coverflow.ImageSelectionEvent) {
//	    log.Printf("selected %d", ev.SelectedIndex)
//	}))
type CoverFlow struct {
	state    WidgetState
	selected int
	dirty    FieldSet

	listeners []listenerEntry
	nextID    uint64
}

// New creates a carousel showing urls in order. A nil slice is treated as
// empty. The new model is fully dirty so the first flush sends everything.
func New(urls []string) *CoverFlow {
	return &CoverFlow{
		state:    defaultState(urls),
		selected: NoSelection,
		dirty:    AllFields,
	}
}

func (c *CoverFlow) mark(f Field) {
	c.dirty |= f
}

// SetURLs replaces the image list. Contents are not validated; duplicates
// and empty strings are passed through and an empty list renders an empty
// carousel. The selected index is left as is, even if it no longer points
// into the new list.
func (c *CoverFlow) SetURLs(urls []string) {
	if urls == nil {
		urls = []string{}
	}
	c.state.URLs = urls
	c.mark(FieldURLs)
}

// URLs returns a copy of the image list.
func (c *CoverFlow) URLs() []string {
	return append([]string{}, c.state.URLs...)
}

// SetMaxImageSize sets the pixel bound applied to both image dimensions.
func (c *CoverFlow) SetMaxImageSize(px int) {
	c.state.MaxSize = px
	c.mark(FieldMaxSize)
}

func (c *CoverFlow) MaxImageSize() int {
	return c.state.MaxSize
}

// SetKeyboardEnabled toggles global arrow-key navigation.
func (c *CoverFlow) SetKeyboardEnabled(on bool) {
	c.state.Keyboard = on
	c.mark(FieldKeyboard)
}

func (c *CoverFlow) KeyboardEnabled() bool {
	return c.state.Keyboard
}

// SetMousewheelEnabled toggles mousewheel navigation.
func (c *CoverFlow) SetMousewheelEnabled(on bool) {
	c.state.Mousewheel = on
	c.mark(FieldMousewheel)
}

func (c *CoverFlow) MousewheelEnabled() bool {
	return c.state.Mousewheel
}

// SetLoopEnabled toggles wrap-around from the last image to the first and
// back.
func (c *CoverFlow) SetLoopEnabled(on bool) {
	c.state.Loop = on
	c.mark(FieldLoop)
}

func (c *CoverFlow) LoopEnabled() bool {
	return c.state.Loop
}

// SetNavigationButtonsEnabled toggles the previous/next buttons.
func (c *CoverFlow) SetNavigationButtonsEnabled(on bool) {
	c.state.NavigationButtons = on
	c.mark(FieldNavigationButtons)
}

func (c *CoverFlow) NavigationButtonsEnabled() bool {
	return c.state.NavigationButtons
}

// SetAutoplay sets the autoplay interval in milliseconds. Values <= 0
// disable autoplay, values below MinAutoplay are raised to it.
//
// Autoplay requires loop: enabling autoplay also enables loop. Disabling
// autoplay leaves loop as it is.
func (c *CoverFlow) SetAutoplay(ms int) {
	c.state.AutoplayMillis = normalizeAutoplay(ms)
	c.mark(FieldAutoplay)

	if c.Autoplay() {
		c.SetLoopEnabled(true)
	}
}

// DisableAutoplay is SetAutoplay with no interval.
func (c *CoverFlow) DisableAutoplay() {
	c.SetAutoplay(0)
}

// AutoplayMillis returns the stored interval, AutoplayOff when disabled.
func (c *CoverFlow) AutoplayMillis() int {
	return c.state.AutoplayMillis
}

// Autoplay reports whether autoplay is enabled.
func (c *CoverFlow) Autoplay() bool {
	return c.state.Autoplay()
}

// SetStyle sets the visual style.
func (c *CoverFlow) SetStyle(s Style) {
	c.state.Style = s
	c.mark(FieldStyle)
}

func (c *CoverFlow) Style() Style {
	return c.state.Style
}

// SetStartElement sets the index the carousel starts on. Any negative value
// means "start in the center"; the renderer interprets it.
func (c *CoverFlow) SetStartElement(idx int) {
	c.state.Start = idx
	c.mark(FieldStart)
}

func (c *CoverFlow) StartElement() int {
	return c.state.Start
}

// SelectedIndex returns the index of the last reported selection, or
// NoSelection.
func (c *CoverFlow) SelectedIndex() int {
	return c.selected
}

// State returns a copy of the synchronized state.
func (c *CoverFlow) State() WidgetState {
	return c.state.Clone()
}

// Dirty returns the fields changed since the last successful flush.
func (c *CoverFlow) Dirty() FieldSet {
	return c.dirty
}

// IsDirty reports whether a flush would push anything.
func (c *CoverFlow) IsDirty() bool {
	return c.dirty != 0
}

// MarkDirty forces fields to be resent on the next flush, e.g. after the
// client lost its DOM and needs a full rebuild.
func (c *CoverFlow) MarkDirty(fields FieldSet) {
	c.dirty |= fields & AllFields
}

// Flush pushes the current state to s if anything is dirty. The dirty set
// is cleared only when s succeeds, so a failed flush is retried by the
// next one.
func (c *CoverFlow) Flush(ctx context.Context, s Syncer) error {
	if c.dirty == 0 {
		return nil
	}
	if err := s.Sync(ctx, c.state.Clone(), c.dirty); err != nil {
		return err
	}
	c.dirty = 0
	return nil
}

// OnRendererClick handles the renderer's click report.
//
// The selection becomes the first index of url in the current list, or
// NoSelection when url is unknown. Listeners are notified unless initial
// is set: the renderer flags the selection it makes on its own while
// bootstrapping so that it is not mistaken for user interaction.
func (c *CoverFlow) OnRendererClick(url string, initial bool) {
	idx := c.state.IndexOf(url)
	c.selected = idx

	if initial {
		return
	}
	c.fire(ImageSelectionEvent{Source: c, URL: url, SelectedIndex: idx})
}

// AddImageSelectionListener registers l. Listeners are called
// synchronously in registration order.
func (c *CoverFlow) AddImageSelectionListener(l ImageSelectionListener) Registration {
	c.nextID++
	c.listeners = append(c.listeners, listenerEntry{id: c.nextID, l: l})
	return Registration{owner: c, id: c.nextID}
}

// RemoveImageSelectionListener unregisters every registration of l.
// Listeners whose dynamic type is not comparable (ListenerFunc) must be
// removed through their Registration instead.
func (c *CoverFlow) RemoveImageSelectionListener(l ImageSelectionListener) {
	kept := c.listeners[:0]
	for _, e := range c.listeners {
		if !sameListener(e.l, l) {
			kept = append(kept, e)
		}
	}
	c.listeners = kept
}

func (c *CoverFlow) fire(ev ImageSelectionEvent) {
	ls := make([]listenerEntry, len(c.listeners))
	copy(ls, c.listeners)
	for _, e := range ls {
		e.l.OnImageSelection(ev)
	}
}
