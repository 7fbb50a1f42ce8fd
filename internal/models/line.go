package models

import (
	"errors"
	"fmt"
	"strings"
)

// Line is one of the suburban rail corridors. It partitions stations,
// timetables and live trains.
type Line string

const (
	LineWestern Line = "western"
	LineCentral Line = "central"
	LineHarbour Line = "harbour"
)

var ErrInvalidLine = errors.New("invalid line")

// Lines returns every line in enumeration order. Lookups that scan across
// lines must use this order so that ties resolve deterministically.
func Lines() []Line {
	return []Line{LineWestern, LineCentral, LineHarbour}
}

// ParseLine converts a case-insensitive line name into a Line
func ParseLine(s string) (Line, error) {
	l := Line(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidLine, s)
	}
	return l, nil
}

func (l Line) Valid() bool {
	switch l {
	case LineWestern, LineCentral, LineHarbour:
		return true
	}
	return false
}

// Abbreviation returns the operator prefix used in train numbers
func (l Line) Abbreviation() string {
	switch l {
	case LineWestern:
		return "WR"
	case LineCentral:
		return "CR"
	case LineHarbour:
		return "HR"
	}
	return strings.ToUpper(string(l))
}

// DisplayName returns the capitalised name, e.g. "Western"
func (l Line) DisplayName() string {
	if l == "" {
		return ""
	}
	return strings.ToUpper(string(l[:1])) + string(l[1:])
}
