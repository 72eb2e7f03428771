// Package intent recognises the small set of utterances the companion can
// answer from local memory without calling the model.
//
// Rules run in a fixed priority order:
//
//	store-lunch -> recall-lunch -> create-reminder -> list-reminders
//
// store-lunch only mutates memory and never ends evaluation, so it can fire
// in the same turn as any reply rule. The first rule that produces a reply
// ends evaluation. When no rule replies the caller dispatches to the model.
package intent
