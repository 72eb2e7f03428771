package windowing

import (
	"unicode/utf8"

	"github.com/petasbytes/companion/internal/session"
)

// TokenCounter estimates input-token cost for turns.
type TokenCounter interface {
	CountTurn(t session.Turn) int
}

// HeuristicCounter is the default deterministic estimator: the rune count of
// the turn text plus a fixed per-turn overhead for role framing.
type HeuristicCounter struct{}

// Fixed per-turn overhead; changing it requires updating the counter tests.
const turnOverhead = 4

func (HeuristicCounter) CountTurn(t session.Turn) int {
	return utf8.RuneCountInString(t.Text) + turnOverhead
}

// CountAll sums the cost of turns with c.
func CountAll(c TokenCounter, turns []session.Turn) int {
	total := 0
	for _, t := range turns {
		total += c.CountTurn(t)
	}
	return total
}
