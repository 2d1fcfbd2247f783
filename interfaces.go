package coverflow

import (
	"context"
)

// Syncer receives flushed state. It is the boundary between the model and
// whatever carries state to the client: an HTTP response, a websocket, a
// test recorder.
//
// Sync gets a private copy of the whole state plus the set of fields that
// changed since the previous successful flush. Renderers are expected to
// rebuild from state alone; changed is informational.
//
// Example:
//
//	var html bytes.Buffer
//	err := cf.Flush(ctx, coverflow.SyncerFunc(func(ctx context.Context, s coverflow.WidgetState, _ coverflow.FieldSet) error {
//	    return coverflow.Render("gallery", s, coverflow.RenderOptions{}).Render(ctx, &html)
//	}))
//
// Returning an error keeps the model dirty.
type Syncer interface {
	Sync(ctx context.Context, state WidgetState, changed FieldSet) error
}

// SyncerFunc adapts a function to Syncer.
type SyncerFunc func(ctx context.Context, state WidgetState, changed FieldSet) error

// Sync calls f.
func (f SyncerFunc) Sync(ctx context.Context, state WidgetState, changed FieldSet) error {
	return f(ctx, state, changed)
}

// Recorder is a Syncer that keeps every flushed snapshot in memory.
// Useful in tests and for hosts that poll rather than push.
type Recorder struct {
	Snapshots []WidgetState
	Changes   []FieldSet
	Err       error
}

// Sync records the snapshot, or returns r.Err without recording if set.
func (r *Recorder) Sync(ctx context.Context, state WidgetState, changed FieldSet) error {
	if r.Err != nil {
		return r.Err
	}
	r.Snapshots = append(r.Snapshots, state)
	r.Changes = append(r.Changes, changed)
	return nil
}

// Last returns the most recent snapshot and whether there was one.
func (r *Recorder) Last() (WidgetState, bool) {
	if len(r.Snapshots) == 0 {
		return WidgetState{}, false
	}
	return r.Snapshots[len(r.Snapshots)-1], true
}
