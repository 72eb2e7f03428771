// Package session holds the ordered turns of one interactive conversation.
//
// Invariants:
//   - Turns are immutable values; the session is append-only until Clear.
//   - Insertion order is the order sent to the model.
package session
