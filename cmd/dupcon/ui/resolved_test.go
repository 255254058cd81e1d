package ui

import (
	"errors"
	"strings"
	"testing"

	"dupcon/internal/api"
)

func resolvedFixture() *api.ResolvedPage {
	return &api.ResolvedPage{
		Records: []api.Customer{
			{
				CustCode: "P1", Name: "Acme Ltd", GroupKey: "G1", IsParent: true,
				Add01: "1 High St", PostCode: "AB1 2CD", Country: "UK",
				Children: []api.Customer{
					{CustCode: "C1", Name: "ACME Limited"},
					{CustCode: "C2", Name: "Acme Ltd."},
				},
			},
			{
				CustCode: "P2", Name: "Borealis AB", GroupKey: "G2", IsParent: true,
			},
		},
		TotalPages: 2,
	}
}

func loadedResolved(t *testing.T, gw *fakeGateway) ResolvedModel {
	t.Helper()
	if gw.resolvedFn == nil {
		gw.resolvedFn = func(page, pageSize int, search string) (*api.ResolvedPage, error) {
			return resolvedFixture(), nil
		}
	}
	m, cmd := NewResolvedModel(gw, testConfig(), testLogger(), DefaultStyles()).Init()
	loaded, ok := firstMsgOf[resolvedLoadedMsg](t, cmd)
	if !ok {
		t.Fatal("Init did not issue a load")
	}
	m, _, _ = m.Update(loaded)
	return m
}

func TestResolvedSingleExpansion(t *testing.T) {
	gw := newFakeGateway()
	m := loadedResolved(t, gw)

	m, _, _ = m.Update(keyPress("enter"))
	if key, ok := m.Expanded(); !ok || key != "G1" {
		t.Fatalf("expected G1 expanded, got %q ok=%v", key, ok)
	}

	// Expanding another parent collapses the first.
	m, _, _ = m.Update(keyPress("down"))
	m, _, _ = m.Update(keyPress("enter"))
	if key, _ := m.Expanded(); key != "G2" {
		t.Errorf("expected expansion to move to G2, got %q", key)
	}

	// Toggling the open one collapses it.
	m, _, _ = m.Update(keyPress("enter"))
	if _, ok := m.Expanded(); ok {
		t.Error("toggling the expanded parent should collapse it")
	}
}

func TestResolvedExpandedDetailRendering(t *testing.T) {
	gw := newFakeGateway()
	m := loadedResolved(t, gw)

	out := m.View()
	if !strings.Contains(out, "[+] Acme Ltd (P1)") {
		t.Errorf("collapsed parent header missing:\n%s", out)
	}
	if strings.Contains(out, "Children:") {
		t.Error("collapsed parents must not render details")
	}

	m, _, _ = m.Update(keyPress("enter"))
	out = m.View()
	for _, want := range []string{"[-] Acme Ltd (P1)", "Children:", "ACME Limited (C1)", "Acme Ltd. (C2)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expanded view missing %q", want)
		}
	}

	// A childless parent gets the placeholder.
	m, _, _ = m.Update(keyPress("down"))
	m, _, _ = m.Update(keyPress("enter"))
	if !strings.Contains(m.View(), "No child records found.") {
		t.Error("childless parent placeholder missing")
	}
}

func TestResolvedLoadFailureKeepsRecords(t *testing.T) {
	gw := newFakeGateway()
	m := loadedResolved(t, gw)

	gw.resolvedFn = func(int, int, string) (*api.ResolvedPage, error) {
		return nil, errors.New("boom")
	}
	cmd := (&m).load()
	failed, _ := firstMsgOf[resolvedLoadedMsg](t, cmd)
	m, _, _ = m.Update(failed)

	if len(m.records) != 2 {
		t.Error("failed reload must keep last-good records")
	}
	if m.errText != "Failed to load resolved duplicates" {
		t.Errorf("expected failure text, got %q", m.errText)
	}
	if !strings.Contains(m.View(), "Failed to load resolved duplicates") {
		t.Error("failure text should render")
	}
}

func TestResolvedStaleLoadIsDropped(t *testing.T) {
	gw := newFakeGateway()
	m := loadedResolved(t, gw)

	staleSeq := m.loadSeq
	m.loadSeq++ // a newer load was issued meanwhile
	m, _, _ = m.Update(resolvedLoadedMsg{seq: staleSeq, page: &api.ResolvedPage{TotalPages: 1}})

	if len(m.records) != 2 {
		t.Error("stale response must not replace current records")
	}
}

func TestResolvedSearchAndPaging(t *testing.T) {
	gw := newFakeGateway()
	m := loadedResolved(t, gw) // totalPages = 2, page = 1

	m, cmd, _ := m.Update(keyPress("]"))
	if _, ok := firstMsgOf[resolvedLoadedMsg](t, cmd); !ok {
		t.Fatal("Next should reload")
	}
	calls := gw.callLog()
	if calls[len(calls)-1] != `fetchResolved(page=2,search="")` {
		t.Errorf("unexpected reload call: %s", calls[len(calls)-1])
	}

	// Search commit resets to page 1.
	m, _, _ = m.Update(keyPress("/"))
	for _, r := range "bor" {
		m, _, _ = m.Update(keyPress(string(r)))
	}
	_, cmd, _ = m.Update(keyPress("enter"))
	if _, ok := firstMsgOf[resolvedLoadedMsg](t, cmd); !ok {
		t.Fatal("search commit should reload")
	}
	calls = gw.callLog()
	if calls[len(calls)-1] != `fetchResolved(page=1,search="bor")` {
		t.Errorf("search reload must be for page 1: %s", calls[len(calls)-1])
	}
}

func TestResolvedBackNavigation(t *testing.T) {
	gw := newFakeGateway()
	m := loadedResolved(t, gw)

	_, _, event := m.Update(keyPress("esc"))
	if event != ResBack {
		t.Errorf("esc should go back, got %v", event)
	}
	_, _, event = m.Update(keyPress("q"))
	if event != ResBack {
		t.Errorf("q should go back, got %v", event)
	}
}

func TestResolvedEmptyPlaceholder(t *testing.T) {
	gw := newFakeGateway()
	gw.resolvedFn = func(int, int, string) (*api.ResolvedPage, error) {
		return &api.ResolvedPage{TotalPages: 1}, nil
	}
	m := loadedResolved(t, gw)

	if !strings.Contains(m.View(), "No resolved merges found.") {
		t.Error("empty state missing")
	}
}
