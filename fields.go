package coverflow

import (
	"math/bits"
	"strings"
)

// Field identifies one synchronized property of WidgetState.
type Field uint16

const (
	FieldURLs Field = 1 << iota
	FieldMaxSize
	FieldKeyboard
	FieldMousewheel
	FieldLoop
	FieldNavigationButtons
	FieldAutoplay
	FieldStyle
	FieldStart

	fieldEnd
)

// FieldSet is a set of Fields. The zero value is empty.
type FieldSet = Field

// AllFields contains every synchronized field.
const AllFields FieldSet = fieldEnd - 1

var fieldNames = [...]string{
	"urlList",
	"maxSize",
	"enableKeyboard",
	"enableMousewheel",
	"enableLoop",
	"enableNavigationButtons",
	"autoplayMilliseconds",
	"style",
	"start",
}

// Has reports whether every field in f is set in s.
func (s Field) Has(f Field) bool {
	return f != 0 && s&f == f
}

// Len returns the number of fields in the set.
func (s Field) Len() int {
	return bits.OnesCount16(uint16(s))
}

// Names returns the wire names of the fields in the set, in declaration order.
func (s Field) Names() []string {
	var names []string
	for i, name := range fieldNames {
		if s&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return names
}

func (s Field) String() string {
	if s == 0 {
		return "{}"
	}
	return "{" + strings.Join(s.Names(), ",") + "}"
}
