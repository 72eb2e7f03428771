// Package runner drives one interactive conversation.
//
// A Runner owns the session's turns and its in-memory memory document.
// Each submission runs to completion before the next one starts:
//
//	Idle -> AwaitingIntentMatch -> {LocalReply | ModelDispatch} -> Idle
//
// Local rules may mutate the document and answer directly; anything they do
// not answer goes to the model gateway with the prior history. A failed
// gateway call leaves the user's turn in place and appends nothing else.
package runner
