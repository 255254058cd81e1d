package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FrameEvent is what a frame interaction asks of the owning page. The
// frame itself is stateless beyond the search input: paging and data live
// in the page.
type FrameEvent int

const (
	FrameNone FrameEvent = iota
	// FrameSearchChanged: committed search text changed; reload page 1.
	FrameSearchChanged
	// FramePrev / FrameNext: pager pressed. The page checks enablement.
	FramePrev
	FrameNext
)

// PagerInfo is passed at render time. The pager row only appears when
// the page supplies it.
type PagerInfo struct {
	Page       int
	TotalPages int
	CanPrev    bool
	CanNext    bool
}

// Frame is the shared page shell: title, optional back hint, optional
// secondary navigation hint, search box, content, pager.
type Frame struct {
	Title         string
	BackHint      string
	SecondaryHint string

	search    textinput.Model
	focused   bool
	committed string
	deb       Debouncer
}

// NewFrame builds a frame. id keeps debounce messages of multiple frames
// apart; debounce controls how long after the last keystroke a search
// commit fires.
func NewFrame(id, title string, debounce time.Duration) Frame {
	ti := textinput.New()
	ti.Placeholder = "Search by customer name"
	ti.CharLimit = SearchCharLimit
	ti.Width = SearchInputWidth

	return Frame{
		Title:  title,
		search: ti,
		deb:    NewDebouncer(id, debounce),
	}
}

// SearchFocused reports whether keystrokes are going into the search box.
func (f Frame) SearchFocused() bool { return f.focused }

// Search returns the committed search text.
func (f Frame) Search() string { return f.committed }

// Update routes messages to the frame. The returned event tells the page
// what, if anything, it must do.
func (f Frame) Update(msg tea.Msg) (Frame, tea.Cmd, FrameEvent) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !f.focused {
			switch msg.String() {
			case "/":
				f.focused = true
				f.search.Focus()
				return f, textinput.Blink, FrameNone
			case "[":
				return f, nil, FramePrev
			case "]":
				return f, nil, FrameNext
			}
			return f, nil, FrameNone
		}

		switch msg.String() {
		case "esc":
			// Clear action: reset search to empty and leave the box.
			f.focused = false
			f.search.Blur()
			f.search.SetValue("")
			return f.commit()
		case "enter":
			f.focused = false
			f.search.Blur()
			return f.commit()
		}

		before := f.search.Value()
		var cmd tea.Cmd
		f.search, cmd = f.search.Update(msg)
		if f.search.Value() != before {
			return f, tea.Batch(cmd, f.deb.Trigger()), FrameNone
		}
		return f, cmd, FrameNone

	case debounceMsg:
		if f.deb.Accept(msg) {
			return f.commit()
		}
		return f, nil, FrameNone
	}

	if f.focused {
		var cmd tea.Cmd
		f.search, cmd = f.search.Update(msg)
		return f, cmd, FrameNone
	}
	return f, nil, FrameNone
}

// commit publishes the current input value as the committed search text.
func (f Frame) commit() (Frame, tea.Cmd, FrameEvent) {
	value := f.search.Value()
	if value == f.committed {
		return f, nil, FrameNone
	}
	f.committed = value
	return f, nil, FrameSearchChanged
}

// View renders the shell around content. pager may be nil for pages
// without paging.
func (f Frame) View(content string, pager *PagerInfo, styles Styles) string {
	var b strings.Builder

	if f.BackHint != "" {
		b.WriteString(styles.Accent.Render(f.BackHint))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.Title.Render(f.Title))
	b.WriteString("\n")

	if f.SecondaryHint != "" {
		b.WriteString(styles.Accent.Render(f.SecondaryHint))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	searchLabel := styles.Muted.Render("Search:")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, searchLabel, " ", f.search.View()))
	if f.focused {
		b.WriteString(styles.Muted.Render("  enter: apply • esc: clear"))
	}
	b.WriteString("\n\n")

	b.WriteString(content)

	if pager != nil {
		b.WriteString("\n")
		b.WriteString(renderPager(*pager, styles))
	}

	return b.String()
}

func renderPager(p PagerInfo, styles Styles) string {
	prev := "[ ← Prev"
	next := "] Next →"

	var left, right string
	if p.CanPrev {
		left = styles.Accent.Render(prev)
	} else {
		left = styles.Muted.Render(prev)
	}
	if p.CanNext {
		right = styles.Accent.Render(next)
	} else {
		right = styles.Muted.Render(next)
	}

	middle := styles.Body.Render(fmt.Sprintf("  Page %d of %d  ", p.Page, p.TotalPages))
	return lipgloss.JoinHorizontal(lipgloss.Center, left, middle, right)
}
