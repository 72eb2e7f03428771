// Package metrics derives small, privacy-safe features from user text.
package metrics
