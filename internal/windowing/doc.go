// Package windowing selects the slice of conversation history sent to the
// model.
//
// A budget of zero (the default) means no windowing: the full history is
// sent. A positive budget keeps the newest turns whose estimated cost fits,
// always as a contiguous suffix so the model sees an unbroken conversation.
package windowing
