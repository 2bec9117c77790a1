// Package api is the client for the remote character service and the
// data access layer built on top of it.
//
// The service exposes three resource kinds, all as JSON:
//   - the character listing: GET <base>/character?page=1 -> {info, results}
//   - an episode: GET <episode-url> -> {name, ...}
//   - a location: GET <location-url> -> {name, residents, ...}
//
// Episode, location and resident URLs are absolute and always come from a
// previous response; the client only constructs the listing URL itself.
//
// # Errors
//
// Every fetch returns one of three failure kinds, testable with errors.Is:
//   - ErrNetwork: the request failed before a response arrived
//   - ErrBadResponse: a response arrived with a non-2xx status (*StatusError)
//   - ErrDecode: the body is not JSON or lacks a required field
//
// Nothing is retried or cached. Each call is one network round trip.
package api
