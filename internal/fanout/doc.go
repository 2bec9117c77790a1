// Package fanout runs a function over a slice of inputs concurrently and
// joins on all of them.
//
// Results come back in input order regardless of completion order, and a
// failing task never cancels its siblings: every task runs to completion
// and its error is reported alongside its index. Callers decide what a
// failed item means.
package fanout
