package model

import "time"

// PendingLabel is shown in place of a first-episode name that has not
// been resolved. Characters without any episode reference keep it
// permanently.
const PendingLabel = "Loading..."

// Card is one character as presented to the user.
type Card struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	Species      string `json:"species"`
	Status       string `json:"status"`
	StatusColor  Color  `json:"statusColor"`
	LocationName string `json:"locationName"`
	LocationURL  string `json:"locationUrl"`
	FirstSeenIn  string `json:"firstSeenIn"`

	// Pending is true when FirstSeenIn is the pending sentinel.
	Pending bool `json:"pending"`
}

// NewCard builds the card for c. episodeName is the resolved name of
// the first episode, or "" when it is not (yet) known.
func NewCard(c Character, episodeName string) Card {
	card := Card{
		ID:           c.ID,
		Name:         c.Name,
		Image:        c.Image,
		Species:      c.Species,
		Status:       c.Status,
		StatusColor:  StatusColor(c.Status),
		LocationName: c.Location.Name,
		LocationURL:  c.Location.URL,
		FirstSeenIn:  episodeName,
	}
	if episodeName == "" {
		card.FirstSeenIn = PendingLabel
		card.Pending = true
	}
	return card
}

// Snapshot is a point-in-time rendering of the view state.
type Snapshot struct {
	// ID is assigned when the snapshot is persisted; empty otherwise.
	ID string `json:"id,omitempty"`

	TakenAt time.Time `json:"takenAt"`
	Filter  Filter    `json:"filter"`

	// TotalCount and Pages come from the listing's page info and are not
	// affected by filtering or drill-down.
	TotalCount int `json:"totalCount"`
	Pages      int `json:"pages"`

	// SelectedLocation is the name of the location being drilled into,
	// or empty when the view shows the initial listing.
	SelectedLocation string `json:"selectedLocation,omitempty"`

	// CharacterCount is the size of the unfiltered character set.
	CharacterCount int `json:"characterCount"`

	Cards []Card `json:"cards"`
}

// PendingCount returns how many cards still show the pending sentinel.
func (s *Snapshot) PendingCount() int {
	n := 0
	for _, c := range s.Cards {
		if c.Pending {
			n++
		}
	}
	return n
}

// StatusCounts tallies the displayed cards by normalized status.
func (s *Snapshot) StatusCounts() map[Status]int {
	counts := make(map[Status]int, 4)
	for _, c := range s.Cards {
		counts[NormalizeStatus(c.Status)]++
	}
	return counts
}
