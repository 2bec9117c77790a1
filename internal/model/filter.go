package model

import "strings"

// Filter selects which characters the view displays.
type Filter string

const (
	FilterAll   Filter = "all"
	FilterAlive Filter = "alive"
	FilterDead  Filter = "dead"
)

// Filters lists every accepted filter value in display order.
var Filters = []Filter{FilterAll, FilterAlive, FilterDead}

// ParseFilter converts user input into a Filter. Matching is
// case-insensitive. Input outside the enumerated set yields FilterAll and
// ok == false so callers can decide whether to warn or reject.
func ParseFilter(s string) (f Filter, ok bool) {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterAll:
		return FilterAll, true
	case FilterAlive:
		return FilterAlive, true
	case FilterDead:
		return FilterDead, true
	default:
		return FilterAll, false
	}
}

// Match reports whether a character passes the filter.
func (f Filter) Match(c Character) bool {
	switch f {
	case FilterAlive:
		return c.Normalized() == StatusAlive
	case FilterDead:
		return c.Normalized() == StatusDead
	default:
		return true
	}
}

// Apply returns the subsequence of characters that pass the filter,
// preserving order. The input slice is never modified.
func (f Filter) Apply(characters []Character) []Character {
	out := make([]Character, 0, len(characters))
	for _, c := range characters {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}
