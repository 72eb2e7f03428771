package session

import "time"

const (
	MorningGreeting   = "Good morning! I'm here with you. How are you feeling today?"
	AfternoonGreeting = "Good afternoon! It's nice to talk with you. How is your day going?"
	EveningGreeting   = "Good evening! I'm here if you'd like to talk. How was your day?"
)

// Greeting picks the opening line from the local wall-clock hour:
// [05:00,12:00) morning, [12:00,17:00) afternoon, otherwise evening.
func Greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h >= 5 && h < 12:
		return MorningGreeting
	case h >= 12 && h < 17:
		return AfternoonGreeting
	default:
		return EveningGreeting
	}
}
