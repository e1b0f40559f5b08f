// Package seating implements the seat-assignment engine.
//
// A Flight owns one Cabin per travel class.  Each cabin keeps its seats and
// the travelers seated on them in append-only tables and refers to both by
// index.  The pool of available seats is an index slice ordered by seat id.
//
// Checking in a party works in three steps:
//
//  1. the party is sorted so that the hardest travelers to place come first
//     (minors, then window, aisle and no-preference travelers);
//  2. a window as wide as the party slides over the pool and every position
//     is scored with a greedy traveler-by-traveler match;
//  3. the cheapest window is matched again, this time writing the travelers
//     onto the seats, and the consumed seats leave the pool.
//
// The engine is synchronous and not safe for concurrent use.  Callers that
// share a Flight between goroutines must serialize every call touching a
// class, one lock per class being sufficient.
package seating
