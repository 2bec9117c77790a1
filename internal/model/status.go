package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status is a character status normalized into a closed domain.
// The remote API documents Alive, Dead and unknown, but the field is an
// open string; anything else normalizes to StatusOther.
type Status string

const (
	StatusAlive   Status = "alive"
	StatusDead    Status = "dead"
	StatusUnknown Status = "unknown"
	StatusOther   Status = "other"
)

// NormalizeStatus maps a raw status string into the Status domain,
// ignoring case and surrounding whitespace.
func NormalizeStatus(raw string) Status {
	switch Status(cases.Fold().String(strings.TrimSpace(raw))) {
	case StatusAlive:
		return StatusAlive
	case StatusDead:
		return StatusDead
	case StatusUnknown:
		return StatusUnknown
	default:
		return StatusOther
	}
}

// Label returns the status in title case for display.
func (s Status) Label() string {
	return cases.Title(language.English).String(string(s))
}

// Color is the display color associated with a status.
type Color string

const (
	// ColorAffirmative is used for living characters.
	ColorAffirmative Color = "green"
	// ColorNegative is used for dead characters.
	ColorNegative Color = "red"
	// ColorNeutral is used for unknown and unrecognized statuses.
	ColorNeutral Color = "gray"
)

// StatusColor returns the display color for a raw status string.
func StatusColor(raw string) Color {
	switch NormalizeStatus(raw) {
	case StatusAlive:
		return ColorAffirmative
	case StatusDead:
		return ColorNegative
	default:
		return ColorNeutral
	}
}
