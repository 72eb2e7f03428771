package windowing

import (
	"fmt"
	"os"

	"github.com/petasbytes/companion/internal/session"
)

// Stats summarizes the result of window preparation.
//
// Fields:
// - Total: estimated tokens for included turns only.
// - Budget: the input token budget used (<= 0 means unlimited).
// - IncludedTurns: number of turns included.
// - SkippedTurns: total turns minus IncludedTurns.
// - OverBudgetNewest: true when the newest turn alone exceeds Budget.
type Stats struct {
	Total            int
	Budget           int
	IncludedTurns    int
	SkippedTurns     int
	OverBudgetNewest bool
}

// PrepareSendWindow returns a suffix of turns (oldest→newest) that fits
// within budget using c.
//
// Rules:
// - budget <= 0: every turn is included.
// - Otherwise include turns scanning newest→oldest while total ≤ budget.
// - If the newest turn alone exceeds budget, return an empty window and set OverBudgetNewest.
func PrepareSendWindow(turns []session.Turn, budget int, c TokenCounter) ([]session.Turn, Stats) {
	if len(turns) == 0 {
		return nil, Stats{Budget: budget}
	}

	if budget <= 0 {
		return turns, Stats{
			Total:         CountAll(c, turns),
			Budget:        budget,
			IncludedTurns: len(turns),
		}
	}

	total := 0
	start := len(turns)
	for i := len(turns) - 1; i >= 0; i-- {
		cost := c.CountTurn(turns[i])
		if start == len(turns) && cost > budget {
			vlogf("reason=over_budget_newest_turn budget=%d cost=%d", budget, cost)
			return nil, Stats{
				Budget:           budget,
				SkippedTurns:     len(turns),
				OverBudgetNewest: true,
			}
		}
		if total+cost > budget {
			break
		}
		total += cost
		start = i
	}

	window := turns[start:]
	if skipped := start; skipped > 0 {
		vlogf("trimmed history: skipped=%d kept=%d total=%d budget=%d", skipped, len(window), total, budget)
	}
	return window, Stats{
		Total:         total,
		Budget:        budget,
		IncludedTurns: len(window),
		SkippedTurns:  start,
	}
}

// minimal verbose logging when COMPANION_VERBOSE_WINDOW_LOGS=1
var verbose = os.Getenv("COMPANION_VERBOSE_WINDOW_LOGS") == "1"

func vlogf(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[windowing] "+format+"\n", args...)
	}
}
