// Package provider implements the model gateway: it sends the conversation
// to a hosted chat model and returns the reply text.
//
// Backends:
//   - Anthropic Messages API (default)
//   - Gemini API
//
// Gateways never retry. A failed call returns an *Error whose Kind tells the
// caller what went wrong and whose Message is safe to show the user.
package provider
