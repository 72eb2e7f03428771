package metrics

import (
	"strings"
	"unicode/utf8"
)

// Features holds basic local text features derived from an utterance.
type Features struct {
	Bytes    int
	Runes    int
	Words    int
	Lines    int
	Question bool
}

// CountFeatures computes byte, rune, word and line counts for the input
// string, and whether it reads as a question.
func CountFeatures(s string) Features {
	return Features{
		Bytes:    len(s),
		Runes:    utf8.RuneCountInString(s),
		Words:    countWords(s),
		Lines:    countLines(s),
		Question: strings.HasSuffix(strings.TrimSpace(s), "?"),
	}
}

// countWords counts words split on Unicode whitespace.
func countWords(s string) int {
	return len(strings.Fields(s))
}

// countLines returns 0 for empty strings; otherwise 1 plus the number of '\n' runes.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return 1 + strings.Count(s, "\n")
}
