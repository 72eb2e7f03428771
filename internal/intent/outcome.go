package intent

// Kind tags what a rule (or a whole routing pass) did.
type Kind int

const (
	NoMatch Kind = iota
	Mutate
	Reply
	MutateAndReply
)

func (k Kind) String() string {
	switch k {
	case Mutate:
		return "mutate"
	case Reply:
		return "reply"
	case MutateAndReply:
		return "mutate_and_reply"
	default:
		return "no_match"
	}
}

// Outcome is the result of applying a rule or routing an utterance.
type Outcome struct {
	Kind  Kind
	Reply string
	// Rules lists the names of every rule that fired, in evaluation order.
	Rules []string
}

// Mutated reports whether the memory document was changed.
func (o Outcome) Mutated() bool { return o.Kind == Mutate || o.Kind == MutateAndReply }

// Replied reports whether a local reply was produced.
func (o Outcome) Replied() bool { return o.Kind == Reply || o.Kind == MutateAndReply }

func combine(mutated, replied bool) Kind {
	switch {
	case mutated && replied:
		return MutateAndReply
	case replied:
		return Reply
	case mutated:
		return Mutate
	default:
		return NoMatch
	}
}
