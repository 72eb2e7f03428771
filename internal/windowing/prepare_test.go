package windowing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petasbytes/companion/internal/session"
	"github.com/petasbytes/companion/internal/windowing"
)

func TestPrepareSendWindow_EmptyTurns(t *testing.T) {
	window, stats := windowing.PrepareSendWindow(nil, 123, windowing.HeuristicCounter{})
	assert.Nil(t, window)
	assert.Equal(t, windowing.Stats{Budget: 123}, stats)
}

func TestPrepareSendWindow_ZeroBudget_SendsFullHistory(t *testing.T) {
	turns := []session.Turn{A("hello"), U("hi"), A("how are you?")}

	window, stats := windowing.PrepareSendWindow(turns, 0, windowing.HeuristicCounter{})

	assert.Equal(t, turns, window)
	assert.Equal(t, windowing.Stats{
		Total:         (5 + 4) + (2 + 4) + (12 + 4),
		IncludedTurns: 3,
	}, stats)
}

func TestPrepareSendWindow_Budgeted(t *testing.T) {
	cases := []struct {
		name      string
		turns     []session.Turn
		budget    int
		wantTexts []string
		wantStats windowing.Stats
	}{
		{
			// oldest(6+4) + mid(3+4) + new(3+4) = 24
			name:      "all fit including oldest",
			turns:     []session.Turn{U("oldest"), A("mid"), U("new")},
			budget:    24,
			wantTexts: []string{"oldest", "mid", "new"},
			wantStats: windowing.Stats{Total: 24, Budget: 24, IncludedTurns: 3},
		},
		{
			// a(1+4)=5, bbbb(4+4)=8, cc(2+4)=6
			name:      "newest two fit exactly",
			turns:     []session.Turn{U("a"), A("bbbb"), U("cc")},
			budget:    14,
			wantTexts: []string{"bbbb", "cc"},
			wantStats: windowing.Stats{Total: 14, Budget: 14, IncludedTurns: 2, SkippedTurns: 1},
		},
		{
			// a small older turn is not pulled in past a skipped larger one
			name:      "stops at first overflow",
			turns:     []session.Turn{U("x"), A("a much longer assistant turn"), U("hi")},
			budget:    10,
			wantTexts: []string{"hi"},
			wantStats: windowing.Stats{Total: 6, Budget: 10, IncludedTurns: 1, SkippedTurns: 2},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			window, stats := windowing.PrepareSendWindow(tc.turns, tc.budget, windowing.HeuristicCounter{})

			texts := make([]string, 0, len(window))
			for _, turn := range window {
				texts = append(texts, turn.Text)
			}
			assert.Equal(t, tc.wantTexts, texts)
			assert.Equal(t, tc.wantStats, stats)
		})
	}
}

func TestPrepareSendWindow_NewestTurnOverBudget(t *testing.T) {
	turns := []session.Turn{U("old"), U("this one is far too long")}

	window, stats := windowing.PrepareSendWindow(turns, 10, windowing.HeuristicCounter{})

	assert.Empty(t, window)
	assert.Equal(t, windowing.Stats{Budget: 10, SkippedTurns: 2, OverBudgetNewest: true}, stats)
}
