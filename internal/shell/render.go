package shell

import (
	"fmt"
	"io"

	"github.com/petasbytes/companion/internal/session"
)

const (
	ansiReset  = "\u001b[0m"
	ansiBlue   = "\u001b[94m"
	ansiYellow = "\u001b[93m"
	ansiRed    = "\u001b[91m"
	ansiDim    = "\u001b[2m"
	clearTerm  = "\u001b[H\u001b[2J"
)

// Printer writes turns and notices to a terminal.
type Printer struct {
	w     io.Writer
	color bool
}

func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

func (p *Printer) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + ansiReset
}

func (p *Printer) label(r session.Role) string {
	if r == session.RoleUser {
		return p.paint(ansiBlue, "You")
	}
	return p.paint(ansiYellow, r.Label())
}

// RenderTurn prints a single turn.
func (p *Printer) RenderTurn(t session.Turn) {
	fmt.Fprintf(p.w, "%s: %s\n", p.label(t.Role), t.Text)
}

// Render redraws the whole conversation.
func (p *Printer) Render(turns []session.Turn) {
	if p.color {
		fmt.Fprint(p.w, clearTerm)
	}
	for _, t := range turns {
		p.RenderTurn(t)
	}
}

func (p *Printer) Prompt() {
	fmt.Fprintf(p.w, "%s: ", p.label(session.RoleUser))
}

func (p *Printer) Notice(msg string) {
	fmt.Fprintln(p.w, p.paint(ansiDim, msg))
}

// Error prints an inline error; the conversation carries on.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.w, p.paint(ansiRed, msg))
}

// Block prints multi-line text as is.
func (p *Printer) Block(text string) {
	fmt.Fprintln(p.w, text)
}
