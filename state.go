package coverflow

import (
	"strings"
)

// Defaults applied by New.
const (
	DefaultMaxSize = 200

	// AutoplayOff is the stored autoplay interval when autoplay is disabled.
	AutoplayOff = -1

	// MinAutoplay is the smallest accepted autoplay interval in milliseconds.
	MinAutoplay = 1000

	// StartCenter asks the renderer to start on the middle image.
	StartCenter = -1

	// NoSelection is the selected index before any click has arrived, and
	// the index reported for a URL that is not in the list.
	NoSelection = -1
)

// Style is the visual variant the client plugin renders with.
type Style string

const (
	StyleCoverflow Style = "COVERFLOW"
	StyleCarousel  Style = "CAROUSEL"
	StyleWheel     Style = "WHEEL"
	StyleFlat      Style = "FLAT"
)

// Plugin returns the style name as the client plugin expects it.
func (s Style) Plugin() string {
	return strings.ToLower(string(s))
}

// WidgetState is the full state pushed to the renderer on every flush.
// The renderer rebuilds from it; there is no incremental patching.
type WidgetState struct {
	URLs              []string `json:"urlList"`
	MaxSize           int      `json:"maxSize"`
	Keyboard          bool     `json:"enableKeyboard"`
	Mousewheel        bool     `json:"enableMousewheel"`
	Loop              bool     `json:"enableLoop"`
	NavigationButtons bool     `json:"enableNavigationButtons"`
	AutoplayMillis    int      `json:"autoplayMilliseconds"`
	Style             Style    `json:"style"`
	Start             int      `json:"start"`
}

func defaultState(urls []string) WidgetState {
	if urls == nil {
		urls = []string{}
	}
	return WidgetState{
		URLs:           urls,
		MaxSize:        DefaultMaxSize,
		AutoplayMillis: AutoplayOff,
		Style:          StyleCoverflow,
		Start:          StartCenter,
	}
}

// Clone returns a copy that shares no memory with s.
func (s WidgetState) Clone() WidgetState {
	c := s
	c.URLs = append([]string(nil), s.URLs...)
	if c.URLs == nil {
		c.URLs = []string{}
	}
	return c
}

// Autoplay reports whether autoplay is enabled.
func (s WidgetState) Autoplay() bool {
	return s.AutoplayMillis > 0
}

// IndexOf returns the first index of url in the image list, or NoSelection.
func (s WidgetState) IndexOf(url string) int {
	for i, u := range s.URLs {
		if u == url {
			return i
		}
	}
	return NoSelection
}

// normalizeAutoplay maps a requested autoplay interval to the stored value.
func normalizeAutoplay(ms int) int {
	switch {
	case ms <= 0:
		return AutoplayOff
	case ms < MinAutoplay:
		return MinAutoplay
	default:
		return ms
	}
}
