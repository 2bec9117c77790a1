// Package view holds the browsable view state and keeps it consistent
// across concurrent fetches.
//
// A Controller owns the current character set, the listing page info,
// the status filter, the selected location and the episode name index.
// Every mutation replaces whole values; nothing is edited in place, so a
// reader that copied a slice under the lock can keep using it.
//
// Whenever the character set is replaced (initial load, reset or
// drill-down) the controller starts an enrichment pass in the background.
// Each replacement bumps a generation counter and a pass only publishes
// its index if its generation is still current, so a slow pass for a
// superseded set can never overwrite the index of a newer one.
package view
