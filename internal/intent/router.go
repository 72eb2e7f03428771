package intent

import (
	"fmt"
	"strings"

	"github.com/petasbytes/companion/memory"
)

const (
	RuleStoreLunch     = "store-lunch"
	RuleRecallLunch    = "recall-lunch"
	RuleCreateReminder = "create-reminder"
	RuleListReminders  = "list-reminders"
)

const (
	recallLunchPhrase = "what did i have for lunch yesterday"

	LunchUnknownReply = "I'm sorry, I don't remember what you had for lunch yesterday."
	NoRemindersReply  = "You don't have any reminders saved yet."
	remindersHeader   = "Here are your reminders:"
)

// Utterance is the input handed to each rule.
type Utterance struct {
	Text  string // as typed
	Lower string // lower-cased, used for matching
}

// Rule is one {predicate, effect} pair. Apply returns NoMatch when the
// predicate does not hold and must not touch doc in that case.
type Rule struct {
	Name  string
	Apply func(u Utterance, doc *memory.Document) Outcome
}

// Router evaluates rules in order.
type Router struct {
	rules []Rule
}

// NewRouter returns a router over rules, or over DefaultRules when none are given.
func NewRouter(rules ...Rule) *Router {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Router{rules: rules}
}

// DefaultRules returns the built-in rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: RuleStoreLunch, Apply: storeLunch},
		{Name: RuleRecallLunch, Apply: recallLunch},
		{Name: RuleCreateReminder, Apply: createReminder},
		{Name: RuleListReminders, Apply: listReminders},
	}
}

// Route applies the rules to text against doc. Mutations are applied to doc
// in place. At most one reply is produced.
func (r *Router) Route(text string, doc *memory.Document) Outcome {
	u := Utterance{Text: text, Lower: strings.ToLower(text)}

	var (
		mutated bool
		fired   []string
	)
	for _, rule := range r.rules {
		o := rule.Apply(u, doc)
		if o.Kind == NoMatch {
			continue
		}
		fired = append(fired, rule.Name)
		if o.Mutated() {
			mutated = true
		}
		if o.Replied() {
			return Outcome{Kind: combine(mutated, true), Reply: o.Reply, Rules: fired}
		}
	}
	return Outcome{Kind: combine(mutated, false), Rules: fired}
}

func storeLunch(u Utterance, doc *memory.Document) Outcome {
	if !strings.Contains(u.Lower, "i had") || !strings.Contains(u.Lower, "lunch") {
		return Outcome{}
	}
	doc.SetLastLunch(u.Text)
	return Outcome{Kind: Mutate}
}

func recallLunch(u Utterance, doc *memory.Document) Outcome {
	if !strings.Contains(u.Lower, recallLunchPhrase) {
		return Outcome{}
	}
	if lunch, ok := doc.Lunch(); ok {
		return Outcome{Kind: Reply, Reply: "You told me: " + lunch}
	}
	return Outcome{Kind: Reply, Reply: LunchUnknownReply}
}

func createReminder(u Utterance, doc *memory.Document) Outcome {
	rem, ok := ParseReminder(u.Lower)
	if !ok {
		return Outcome{}
	}
	doc.AddReminder(rem)
	return Outcome{
		Kind:  MutateAndReply,
		Reply: fmt.Sprintf("Okay, I will remind you to %s at %s.", rem.Task, rem.Time),
	}
}

func listReminders(u Utterance, doc *memory.Document) Outcome {
	if !strings.Contains(u.Lower, "reminders") {
		return Outcome{}
	}
	return Outcome{Kind: Reply, Reply: FormatReminders(doc.Reminders)}
}

// FormatReminders renders the reminder list the way the list-reminders rule
// replies with it.
func FormatReminders(rs []memory.Reminder) string {
	if len(rs) == 0 {
		return NoRemindersReply
	}
	var b strings.Builder
	b.WriteString(remindersHeader)
	for _, r := range rs {
		b.WriteString("\n• ")
		b.WriteString(r.String())
	}
	return b.String()
}
