// Package model defines the data structures shared across rmcatalog.
//
// This package contains the following main types:
//   - Character: one catalog entity as returned by the character endpoint
//   - PageInfo: aggregate counts of the character listing
//   - Episode, Location: secondary resources dereferenced from a Character
//   - Status, Filter, Color: status normalization and projection rules
//   - Snapshot, Card: the display surface rendered by the report writers
//
// The models live in their own package so that api, view, report and
// database can all depend on them without import cycles. All types are
// JSON-serializable with the field names used by the remote API.
package model
