// Package teatest drives bubbletea models synchronously in tests.
//
// Instead of starting a tea.Program, the Driver calls Update directly and
// runs every returned Cmd inline, feeding the resulting messages back in
// until the model goes quiet. Cmds that block (timers, tickers) are given a
// short deadline and dropped when it passes.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxSteps bounds the number of messages processed per Send.
const MaxSteps = 100

// CmdDeadline is how long a single Cmd may run before it is dropped.
// Store-backed Cmds return in well under a millisecond.
var CmdDeadline = 250 * time.Millisecond

// Driver feeds messages into a tea.Model and keeps the latest model value.
type Driver struct {
	t     testing.TB
	model tea.Model

	// Quit is set once the model asked the program to exit.
	Quit bool
	// Steps counts messages delivered to Update, including drained ones.
	Steps int
}

// Option adjusts a Driver before Start.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before Init runs.
func WithSize(width, height int) Option {
	return func(d *Driver) {
		d.model, _ = d.model.Update(tea.WindowSizeMsg{Width: width, Height: height})
	}
}

// New wraps model. Call Start to run Init.
func New(t testing.TB, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{t: t, model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start runs Init and everything it triggers.
func (d *Driver) Start() *Driver {
	d.t.Helper()
	d.run(d.model.Init())
	return d
}

// Model returns the current model value.
func (d *Driver) Model() tea.Model { return d.model }

// View renders the current model.
func (d *Driver) View() string { return d.model.View() }

// Send delivers msg and drains the Cmds it produces.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.Quit {
		return
	}
	d.deliver(msg)
}

// Key sends a key by its bubbletea name: "up", "down", "left", "right",
// "enter", "esc", "ctrl+c", or a single printable character.
func (d *Driver) Key(name string) {
	d.t.Helper()
	d.Send(keyMsg(name))
}

// Keys sends each name in turn.
func (d *Driver) Keys(names ...string) {
	d.t.Helper()
	for _, n := range names {
		d.Key(n)
	}
}

func (d *Driver) deliver(msg tea.Msg) {
	d.t.Helper()
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		if d.Steps >= MaxSteps {
			d.t.Fatalf("teatest: model did not settle after %d messages", MaxSteps)
			return
		}
		next := queue[0]
		queue = queue[1:]

		if _, ok := next.(tea.QuitMsg); ok {
			d.Quit = true
		}
		d.Steps++
		var cmd tea.Cmd
		d.model, cmd = d.model.Update(next)
		if d.Quit {
			return
		}
		queue = append(queue, collect(cmd)...)
	}
}

func (d *Driver) run(cmd tea.Cmd) {
	d.t.Helper()
	for _, msg := range collect(cmd) {
		d.deliver(msg)
	}
}

// collect runs cmd, expanding batches, and returns the messages produced in
// time.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg, ok := runWithDeadline(cmd)
	if !ok || msg == nil {
		return nil
	}
	if batch, isBatch := msg.(tea.BatchMsg); isBatch {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func runWithDeadline(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(CmdDeadline):
		return nil, false
	}
}

func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}
