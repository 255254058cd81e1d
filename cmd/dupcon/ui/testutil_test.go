package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"dupcon/internal/api"
	"dupcon/internal/config"
)

// testConfig keeps every timer tiny so tests can execute tick commands
// synchronously without noticeable sleeps.
func testConfig() *config.Config {
	return &config.Config{
		APIBaseURL:     "http://test",
		RequestTimeout: time.Second,
		PageSize:       10,
		MergeSettle:    time.Millisecond,
		BannerTTL:      5 * time.Millisecond,
		SearchDebounce: time.Millisecond,
	}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collectMsgs executes a command tree (flattening batches) and returns
// every produced message. Tick commands block for their duration, which
// is why testConfig uses millisecond timers.
func collectMsgs(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, sub := range batch {
			msgs = append(msgs, collectMsgs(t, sub)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// firstMsgOf runs the command tree and returns the first message of type M.
func firstMsgOf[M tea.Msg](t *testing.T, cmd tea.Cmd) (M, bool) {
	t.Helper()
	for _, msg := range collectMsgs(t, cmd) {
		if m, ok := msg.(M); ok {
			return m, true
		}
	}
	var zero M
	return zero, false
}

func testLogger() *zap.Logger { return zap.NewNop() }

func twoGroupPage() *api.DuplicatesPage {
	return &api.DuplicatesPage{
		Records: []api.Customer{
			{CustCode: "A", Name: "Acme Ltd", Add01: "1 High St", Add02: "Unit 2", PostCode: "AB1 2CD", Country: "UK", GroupKey: "G1"},
			{CustCode: "B", Name: "ACME Limited", Add01: "1 High Street", Add02: "Unit 2", PostCode: "AB1 2CD", Country: "UK", GroupKey: "G1"},
			{CustCode: "C", Name: "Borealis AB", Add01: "Kungsgatan 1", Add02: "Fl 3", PostCode: "111 43", Country: "SE", GroupKey: "G2"},
		},
		TotalPages: 3,
	}
}

// loadedDuplicates builds a review page and feeds it the initial load.
func loadedDuplicates(t *testing.T, gw *fakeGateway) DuplicatesModel {
	t.Helper()
	if gw.fetchFn == nil {
		gw.fetchFn = func(page, pageSize int, search string) (*api.DuplicatesPage, error) {
			return twoGroupPage(), nil
		}
	}

	m, cmd := NewDuplicatesModel(gw, testConfig(), testLogger(), DefaultStyles()).Init()
	loaded, ok := firstMsgOf[duplicatesLoadedMsg](t, cmd)
	if !ok {
		t.Fatal("Init did not issue a load")
	}
	m, _, _ = m.Update(loaded)
	return m
}
