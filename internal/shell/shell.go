package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/petasbytes/companion/internal/provider"
	"github.com/petasbytes/companion/internal/runner"
	"github.com/petasbytes/companion/internal/session"
	"github.com/petasbytes/companion/memory"
)

// Shell runs the interactive loop for one Runner.
type Shell struct {
	r       *runner.Runner
	in      io.Reader
	out     *Printer
	now     func() time.Time
	memPath string
	// fatal ends the session; set when the provider rejects the API key.
	fatal error
}

type Option func(*Shell)

func WithColor(on bool) Option {
	return func(s *Shell) { s.out.color = on }
}

func WithClock(now func() time.Time) Option {
	return func(s *Shell) { s.now = now }
}

// New returns a shell reading lines from in and writing to out. memPath is
// only used in notices.
func New(r *runner.Runner, in io.Reader, out io.Writer, memPath string, opts ...Option) *Shell {
	s := &Shell{
		r:       r,
		in:      in,
		out:     NewPrinter(out, false),
		now:     time.Now,
		memPath: memPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run greets, then handles lines until /quit, end of input, or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	s.out.Notice("Type /help for options. Ctrl-C to quit.")
	s.r.EnsureGreeting()
	s.out.Render(s.r.Turns())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	scanner := bufio.NewScanner(s.in)
	inputCh := make(chan string)
	go func() {
		defer close(inputCh)
		for scanner.Scan() {
			select {
			case inputCh <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		s.out.Prompt()
		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			return nil
		case line, ok = <-inputCh:
			if !ok {
				return scanner.Err()
			}
		}
		if quit := s.Handle(ctx, line); quit {
			return s.fatal
		}
	}
}

// Handle processes one input line and reports whether the session is over:
// the user asked to quit, or the provider rejected the credential.
func (s *Shell) Handle(ctx context.Context, line string) bool {
	cmd := ParseCommand(line)
	switch cmd.Kind {
	case Say:
		return s.say(ctx, cmd.Text, false)
	case Quick:
		text, _ := QuickUtterance(cmd.Name, s.now())
		return s.say(ctx, text, true)
	case Save:
		if err := s.r.SaveMemory(); err != nil {
			s.out.Error(fmt.Sprintf("Could not save memory: %v", err))
			return false
		}
		s.out.Notice("Memory saved to " + s.memPath + ".")
	case Load:
		s.load()
	case Reminders:
		s.out.Block(s.r.Reminders())
	case Clear:
		s.r.ClearHistory()
		s.r.EnsureGreeting()
		s.out.Render(s.r.Turns())
		s.out.Notice("Conversation cleared.")
	case Summary:
		s.out.Block("Conversation summary:")
		s.out.Block(s.r.Transcript())
	case Help:
		s.out.Block(helpText)
	case Quit:
		s.out.Notice("Goodbye.")
		return true
	default:
		s.out.Error(fmt.Sprintf("Unknown command /%s. Type /help for options.", cmd.Name))
	}
	return false
}

func (s *Shell) say(ctx context.Context, text string, echo bool) bool {
	if echo {
		s.out.RenderTurn(session.UserTurn(text))
	}
	res, err := s.r.Submit(ctx, text)
	switch {
	case errors.Is(err, runner.ErrEmptyInput):
		return false
	case errors.Is(err, provider.ErrAuth):
		s.out.Error(provider.UserMessage(err))
		s.out.Notice("Please ask someone to check the API key, then start me again.")
		s.fatal = err
		return true
	case err != nil:
		s.out.Error(provider.UserMessage(err))
		return false
	}
	s.out.RenderTurn(session.AssistantTurn(res.Reply))
	return false
}

func (s *Shell) load() {
	err := s.r.LoadMemory()
	switch {
	case errors.Is(err, memory.ErrNotFound):
		s.out.Notice("No saved memory found at " + s.memPath + ". Keeping what I remember now.")
	case err != nil:
		s.out.Error(fmt.Sprintf("Could not load memory: %v. Keeping what I remember now.", err))
	default:
		s.out.Render(s.r.Turns())
		s.out.Notice("Memory loaded from " + s.memPath + ".")
	}
}
