package shell

import (
	"strings"
	"time"
)

// Kind classifies an input line.
type Kind int

const (
	// Say is free text for the conversation.
	Say Kind = iota
	Quick
	Save
	Load
	Reminders
	Clear
	Summary
	Help
	Quit
	Unknown
)

// Command is a parsed input line.
type Command struct {
	Kind Kind
	// Name is the command word without the slash, lower-cased.
	Name string
	// Text is the utterance for Say, or the raw line otherwise.
	Text string
}

var commandKinds = map[string]Kind{
	"save":      Save,
	"load":      Load,
	"reminders": Reminders,
	"clear":     Clear,
	"summary":   Summary,
	"help":      Help,
	"quit":      Quit,
	"exit":      Quit,
}

// ParseCommand classifies line. Anything not starting with "/" is Say.
func ParseCommand(line string) Command {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "/") {
		return Command{Kind: Say, Text: line}
	}
	name := strings.ToLower(strings.TrimPrefix(strings.Fields(trimmed + " ")[0], "/"))
	if k, ok := commandKinds[name]; ok {
		return Command{Kind: k, Name: name, Text: trimmed}
	}
	if _, ok := quickActions[name]; ok {
		return Command{Kind: Quick, Name: name, Text: trimmed}
	}
	return Command{Kind: Unknown, Name: name, Text: trimmed}
}

// DateLayout is how the day quick action spells out today's date.
const DateLayout = "Monday, January 02, 2006"

var quickActions = map[string]func(now time.Time) string{
	"day": func(now time.Time) string {
		return "What day is it today? Today is " + now.Format(DateLayout) + "."
	},
	"tea":   func(time.Time) string { return "How do I make a cup of tea?" },
	"lunch": func(time.Time) string { return "What did I have for lunch yesterday?" },
	"lost":  func(time.Time) string { return "I feel lost. Can you help me feel better?" },
}

// QuickUtterance returns the pre-filled utterance for a quick action.
func QuickUtterance(name string, now time.Time) (string, bool) {
	f, ok := quickActions[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return f(now), true
}

const helpText = `Type a message and press Enter to talk.

Quick questions:
  /day        What day is it today?
  /tea        How do I make a cup of tea?
  /lunch      What did I have for lunch yesterday?
  /lost       I feel lost. Can you help me feel better?

Memory and conversation:
  /save       Save reminders and lunch to disk
  /load       Load the saved reminders and lunch
  /reminders  Show your reminders
  /clear      Start the conversation over
  /summary    Show the whole conversation as text
  /help       Show this help
  /quit       Leave`
