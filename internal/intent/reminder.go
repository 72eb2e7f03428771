package intent

import (
	"regexp"
	"strings"

	"github.com/petasbytes/companion/memory"
)

// The task capture is lazy so it stops at the first " at " that is followed
// by a time, and still spans earlier " at " occurrences when it has to.
var reminderPattern = regexp.MustCompile(`(?i)remind me to (.+?) at (\d{1,2}(?:\s?[ap]m)?)`)

// ParseReminder extracts a reminder from a "remind me to <task> at <time>"
// utterance. The time is upper-cased with whitespace removed ("9 am" -> "9AM").
func ParseReminder(utterance string) (memory.Reminder, bool) {
	m := reminderPattern.FindStringSubmatch(utterance)
	if m == nil {
		return memory.Reminder{}, false
	}
	task := strings.TrimSpace(m[1])
	if task == "" {
		return memory.Reminder{}, false
	}
	return memory.Reminder{Task: task, Time: normalizeTime(m[2])}, true
}

func normalizeTime(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}
