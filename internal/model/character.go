package model

// LocationRef is the location a character was last seen at.
// URL is dereferenceable on the character service; it is empty for
// characters whose location is unknown.
type LocationRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Character is a single catalog entity.
//
// Characters are immutable once fetched. A drill-down produces fresh
// values decoded from the resident endpoints rather than mutating the
// characters already on screen.
type Character struct {
	// ID uniquely identifies the character on the remote service.
	ID int `json:"id"`

	Name    string `json:"name"`
	Image   string `json:"image"`
	Species string `json:"species"`

	// Status is the raw status string. Use Normalized to compare it.
	Status string `json:"status"`

	// Episode holds the episode URLs the character appears in, in
	// broadcast order. The first entry is the first appearance.
	Episode []string `json:"episode"`

	Location LocationRef `json:"location"`
}

// Normalized returns the character's status folded into the fixed
// status domain.
func (c Character) Normalized() Status {
	return NormalizeStatus(c.Status)
}

// FirstEpisodeURL returns the URL of the character's first appearance and
// reports whether the character has any episode reference at all.
func (c Character) FirstEpisodeURL() (string, bool) {
	if len(c.Episode) == 0 {
		return "", false
	}
	return c.Episode[0], true
}

// PageInfo describes the character listing the view was seeded from.
type PageInfo struct {
	Count int    `json:"count"`
	Pages int    `json:"pages"`
	Next  string `json:"next,omitempty"`
	Prev  string `json:"prev,omitempty"`
}

// Episode is the subset of the episode resource rmcatalog reads.
type Episode struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	AirDate string `json:"air_date,omitempty"`
	Code    string `json:"episode,omitempty"`
}

// Location is the subset of the location resource rmcatalog reads.
type Location struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"type,omitempty"`
	Dimension string   `json:"dimension,omitempty"`
	Residents []string `json:"residents"`
}
