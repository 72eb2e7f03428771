package intent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petasbytes/companion/internal/intent"
	"github.com/petasbytes/companion/memory"
)

func TestParseReminder(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want memory.Reminder
		ok   bool
	}{
		{"NoSpaceLower", "remind me to take aspirin at 9am", memory.Reminder{Task: "take aspirin", Time: "9AM"}, true},
		{"SpaceUpper", "remind me to take aspirin at 9 AM", memory.Reminder{Task: "take aspirin", Time: "9AM"}, true},
		{"TwoDigitsPM", "please remind me to call my daughter at 11 pm", memory.Reminder{Task: "call my daughter", Time: "11PM"}, true},
		{"NoMeridiem", "remind me to feed the cat at 7", memory.Reminder{Task: "feed the cat", Time: "7"}, true},
		{"TaskSpansConjunction", "remind me to take pills and walk at 9am", memory.Reminder{Task: "take pills and walk", Time: "9AM"}, true},
		{"TaskContainsAt", "remind me to look at photos at 3pm", memory.Reminder{Task: "look at photos", Time: "3PM"}, true},
		{"TrailingText", "remind me to water plants at 8 am tomorrow", memory.Reminder{Task: "water plants", Time: "8AM"}, true},
		{"MixedCaseInput", "Remind Me To Drink Water At 10AM", memory.Reminder{Task: "Drink Water", Time: "10AM"}, true},
		{"NoTime", "remind me to take aspirin", memory.Reminder{}, false},
		{"TimeNotDigits", "remind me to take aspirin at noon", memory.Reminder{}, false},
		{"BlankTask", "remind me to   at 9am", memory.Reminder{}, false},
		{"Unrelated", "what are my reminders", memory.Reminder{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := intent.ParseReminder(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
