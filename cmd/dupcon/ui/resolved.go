package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"dupcon/internal/api"
	"dupcon/internal/config"
)

// resolvedLoadedMsg is a resolved-listing response, sequenced like the
// duplicates page's loads.
type resolvedLoadedMsg struct {
	seq  uint64
	page *api.ResolvedPage
	err  error
}

// ResolvedEvent asks the app for page-level navigation.
type ResolvedEvent int

const (
	ResNone ResolvedEvent = iota
	ResBack
)

// ResolvedModel is the read-only audit view of merged groups. Exactly one
// parent may be expanded at a time; expanding another collapses the first.
type ResolvedModel struct {
	frame  Frame
	banner Banner

	records    []api.Customer
	page       int
	totalPages int
	cursor     int
	expanded   string // group key of the expanded parent, "" when none
	errText    string
	loadSeq    uint64

	gw     Gateway
	cfg    *config.Config
	log    *zap.Logger
	styles Styles
	width  int
}

// NewResolvedModel builds the resolved merges page.
func NewResolvedModel(gw Gateway, cfg *config.Config, logger *zap.Logger, styles Styles) ResolvedModel {
	frame := NewFrame("resolved", "Resolved Merges", cfg.SearchDebounce)
	frame.BackHint = "esc: back to duplicate customers"

	return ResolvedModel{
		frame:      frame,
		banner:     NewBanner(cfg.BannerTTL),
		page:       1,
		totalPages: 1,
		gw:         gw,
		cfg:        cfg,
		log:        logger,
		styles:     styles,
	}
}

// Init fetches the first page.
func (m ResolvedModel) Init() (ResolvedModel, tea.Cmd) {
	return m, m.load()
}

func (m *ResolvedModel) load() tea.Cmd {
	m.loadSeq++
	seq := m.loadSeq
	page, pageSize, search := m.page, m.cfg.PageSize, m.frame.Search()
	gw := m.gw
	return func() tea.Msg {
		result, err := gw.FetchResolved(context.Background(), page, pageSize, search)
		return resolvedLoadedMsg{seq: seq, page: result, err: err}
	}
}

// Update drives the page.
func (m ResolvedModel) Update(msg tea.Msg) (ResolvedModel, tea.Cmd, ResolvedEvent) {
	m.banner.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil, ResNone

	case resolvedLoadedMsg:
		if msg.seq != m.loadSeq {
			return m, nil, ResNone
		}
		if msg.err != nil {
			m.log.Warn("resolved load failed", zap.Error(msg.err))
			// Keep the last-good records; just surface the failure.
			m.errText = "Failed to load resolved duplicates"
			return m, nil, ResNone
		}
		m.errText = ""
		m.records = msg.page.Records
		m.totalPages = msg.page.TotalPages
		if m.totalPages < 1 {
			m.totalPages = 1
		}
		if m.page > m.totalPages {
			m.page = m.totalPages
		}
		if m.cursor >= len(m.records) {
			m.cursor = 0
		}
		return m, nil, ResNone

	case tea.KeyMsg:
		if m.frame.SearchFocused() {
			break
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil, ResNone
		case "down", "j":
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
			return m, nil, ResNone
		case "enter", " ":
			m.toggle()
			return m, nil, ResNone
		case "esc", "q":
			return m, nil, ResBack
		}
	}

	frame, cmd, event := m.frame.Update(msg)
	m.frame = frame
	switch event {
	case FrameSearchChanged:
		m.page = 1
		return m, tea.Batch(cmd, m.load()), ResNone
	case FramePrev:
		if m.page > 1 {
			m.page--
			return m, tea.Batch(cmd, m.load()), ResNone
		}
	case FrameNext:
		if m.page < m.totalPages {
			m.page++
			return m, tea.Batch(cmd, m.load()), ResNone
		}
	}
	return m, cmd, ResNone
}

// toggle expands the parent under the cursor, collapsing whatever else
// was open. Toggling the open one collapses it.
func (m *ResolvedModel) toggle() {
	if m.cursor >= len(m.records) {
		return
	}
	key := m.records[m.cursor].GroupKey
	if m.expanded == key {
		m.expanded = ""
	} else {
		m.expanded = key
	}
}

// Expanded returns the currently expanded group key, if any.
func (m ResolvedModel) Expanded() (string, bool) {
	return m.expanded, m.expanded != ""
}

// View renders the page.
func (m ResolvedModel) View() string {
	var content strings.Builder

	if m.banner.Visible() {
		content.WriteString(m.banner.View(m.styles))
		content.WriteString("\n\n")
	}
	if m.errText != "" {
		content.WriteString(m.styles.Error.Render(m.errText))
		content.WriteString("\n\n")
	}

	if len(m.records) == 0 {
		content.WriteString(m.styles.Muted.Render("No resolved merges found."))
	} else {
		for i, parent := range m.records {
			content.WriteString(m.renderParent(i, parent))
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(m.styles.Help.Render("enter: expand/collapse • /: search • [ ]: page • esc: back"))

	pager := &PagerInfo{
		Page:       m.page,
		TotalPages: m.totalPages,
		CanPrev:    m.page > 1,
		CanNext:    m.page < m.totalPages,
	}
	return m.frame.View(content.String(), pager, m.styles)
}

func (m ResolvedModel) renderParent(i int, parent api.Customer) string {
	marker := "+"
	open := m.expanded == parent.GroupKey
	if open {
		marker = "-"
	}

	header := fmt.Sprintf("[%s] %s (%s)", marker, parent.Name, parent.CustCode)
	if i == m.cursor {
		header = m.styles.Selected.Render("> " + header)
	} else {
		header = "  " + m.styles.Body.Render(header)
	}

	if !open {
		return header
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	detail := func(label, value string) {
		b.WriteString("      ")
		b.WriteString(m.styles.Muted.Render(label + ": "))
		b.WriteString(m.styles.Body.Render(value))
		b.WriteString("\n")
	}
	detail("Address 1", parent.Add01)
	detail("Address 2", parent.Add02)
	detail("Post Code", parent.PostCode)
	detail("Country", parent.Country)

	b.WriteString("      ")
	b.WriteString(m.styles.Header.Render("Children:"))
	b.WriteString("\n")
	if len(parent.Children) == 0 {
		b.WriteString("      ")
		b.WriteString(m.styles.Muted.Render("No child records found."))
		b.WriteString("\n")
	} else {
		for _, child := range parent.Children {
			b.WriteString(fmt.Sprintf("      • %s (%s)\n", child.Name, child.CustCode))
		}
	}
	return b.String()
}
