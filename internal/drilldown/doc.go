// Package drilldown turns a location reference into the set of
// characters residing there.
//
// Resolve fetches the location, fetches every resident concurrently and
// returns the residents that could be fetched, in the order the location
// lists them. A resident that fails is logged and dropped. Failing to
// fetch or decode the location itself fails the whole drill-down, so the
// caller can leave its current state untouched.
package drilldown
