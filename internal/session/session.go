package session

import (
	"strings"
	"unicode"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Label is the capitalised role name used in transcripts.
func (r Role) Label() string {
	s := string(r)
	if s == "" {
		return s
	}
	rs := []rune(s)
	rs[0] = unicode.ToUpper(rs[0])
	return string(rs)
}

// Turn is one utterance tagged with its speaker.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

func UserTurn(text string) Turn      { return Turn{Role: RoleUser, Text: text} }
func AssistantTurn(text string) Turn { return Turn{Role: RoleAssistant, Text: text} }

// Session is owned by a single interactive loop and is not safe for
// concurrent use.
type Session struct {
	turns []Turn
}

func New() *Session {
	return &Session{}
}

func (s *Session) Append(t Turn) {
	s.turns = append(s.turns, t)
}

// Turns returns a copy of the history, oldest first.
func (s *Session) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Session) Len() int { return len(s.turns) }

func (s *Session) Empty() bool { return len(s.turns) == 0 }

// Last returns the newest turn.
func (s *Session) Last() (Turn, bool) {
	if len(s.turns) == 0 {
		return Turn{}, false
	}
	return s.turns[len(s.turns)-1], true
}

func (s *Session) Clear() {
	s.turns = nil
}

// Transcript renders one "{Role}: {text}" line per turn.
func (s *Session) Transcript() string {
	return Transcript(s.turns)
}

func Transcript(turns []Turn) string {
	var b strings.Builder
	for i, t := range turns {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(t.Role.Label())
		b.WriteString(": ")
		b.WriteString(t.Text)
	}
	return b.String()
}
