package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// debounceMsg fires when a debounce window closes. Stale messages (a
// newer trigger superseded them) carry an old sequence number and are
// dropped by Accept.
type debounceMsg struct {
	id  string
	seq int
}

// Debouncer coalesces rapid triggers into one message per quiet period.
// Used for search typing: every keystroke re-arms the window, and only
// the message for the latest trigger is accepted. Unlike a timer-based
// debouncer there is nothing to cancel; superseded ticks still arrive
// and are ignored.
type Debouncer struct {
	id       string
	seq      int
	duration time.Duration
}

// NewDebouncer creates a debouncer. The id separates instances so pages
// can run several without crosstalk.
func NewDebouncer(id string, duration time.Duration) Debouncer {
	return Debouncer{id: id, duration: duration}
}

// Trigger arms (or re-arms) the debounce window.
func (d *Debouncer) Trigger() tea.Cmd {
	d.seq++
	seq := d.seq
	if d.duration <= 0 {
		return func() tea.Msg { return debounceMsg{id: d.id, seq: seq} }
	}
	return tea.Tick(d.duration, func(time.Time) tea.Msg {
		return debounceMsg{id: d.id, seq: seq}
	})
}

// Accept reports whether msg is this debouncer's latest pending tick.
func (d *Debouncer) Accept(msg tea.Msg) bool {
	m, ok := msg.(debounceMsg)
	return ok && m.id == d.id && m.seq == d.seq
}
