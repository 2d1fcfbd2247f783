package coverflow

import "reflect"

// ImageSelectionEvent is delivered to listeners when the user moves the
// carousel onto an image.
type ImageSelectionEvent struct {
	// Source is the carousel the selection happened on.
	Source *CoverFlow
	// URL is the image URL the renderer reported.
	URL string
	// SelectedIndex is the first index of URL in the image list at the time
	// of the click, or NoSelection if the URL was not in the list.
	SelectedIndex int
}

// ImageSelectionListener receives selection events.
type ImageSelectionListener interface {
	OnImageSelection(ev ImageSelectionEvent)
}

// ListenerFunc adapts a function to ImageSelectionListener.
//
// Function values cannot be compared, so a ListenerFunc can only be
// removed through the Registration returned when it was added.
type ListenerFunc func(ev ImageSelectionEvent)

// OnImageSelection calls f(ev).
func (f ListenerFunc) OnImageSelection(ev ImageSelectionEvent) {
	f(ev)
}

// Registration is returned by AddImageSelectionListener.
type Registration struct {
	owner *CoverFlow
	id    uint64
}

// Remove unregisters the listener. Calling it more than once is harmless.
func (r Registration) Remove() {
	if r.owner == nil {
		return
	}
	l := r.owner.listeners[:0]
	for _, e := range r.owner.listeners {
		if e.id != r.id {
			l = append(l, e)
		}
	}
	r.owner.listeners = l
}

type listenerEntry struct {
	id uint64
	l  ImageSelectionListener
}

// sameListener compares listeners by identity without panicking on
// dynamic types that are not comparable.
func sameListener(a, b ImageSelectionListener) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
