// Package review holds the working state of the duplicate-review page:
// the fetched records grouped by group key, per-record edit buffers,
// per-group parent selection, validation errors, and paging. It is pure
// state — no I/O — so the whole merge workflow is unit-testable without a
// terminal or a server.
package review

import (
	"strings"

	"dupcon/internal/api"
)

// EditableFields are the inline-editable customer fields, in display
// order. The same set is required to be non-blank before a merge.
var EditableFields = []string{"name", "add01", "add02", "postCode", "country"}

// Group is one duplicate cluster as displayed: the server's records in
// arrival order under their shared key.
type Group struct {
	Key     string
	Records []api.Customer
}

// Workspace is the review page's working set. All of it is transient: it
// is rebuilt from scratch on navigation and replaced wholesale on reload.
type Workspace struct {
	records []api.Customer
	groups  []Group

	edits     map[string]map[string]string // custCode -> field -> pending value
	parents   map[string]string            // groupKey -> selected parent code
	valErrors map[string]map[string]string // groupKey -> field -> message

	page       int
	totalPages int
	search     string

	loadSeq uint64
}

// New returns an empty workspace on page 1.
func New() *Workspace {
	return &Workspace{
		edits:      make(map[string]map[string]string),
		parents:    make(map[string]string),
		valErrors:  make(map[string]map[string]string),
		page:       1,
		totalPages: 1,
	}
}

// SetRecords replaces the working set with a fresh server page and
// regroups it. Groups keep the order of first appearance so the display
// is stable across reloads of identical data.
func (w *Workspace) SetRecords(records []api.Customer) {
	w.records = records
	w.groups = w.groups[:0]

	byKey := make(map[string]int)
	for _, rec := range records {
		idx, ok := byKey[rec.GroupKey]
		if !ok {
			idx = len(w.groups)
			byKey[rec.GroupKey] = idx
			w.groups = append(w.groups, Group{Key: rec.GroupKey})
		}
		w.groups[idx].Records = append(w.groups[idx].Records, rec)
	}
}

// Groups returns the grouped working set in display order.
func (w *Workspace) Groups() []Group { return w.groups }

// Record returns the last-fetched record for code.
func (w *Workspace) Record(code string) (api.Customer, bool) {
	for _, rec := range w.records {
		if rec.CustCode == code {
			return rec, true
		}
	}
	return api.Customer{}, false
}

// Edit buffers a pending value for one field of one record. Only buffered
// fields override the fetched value; everything else displays as fetched.
func (w *Workspace) Edit(code, field, value string) {
	buf, ok := w.edits[code]
	if !ok {
		buf = make(map[string]string)
		w.edits[code] = buf
	}
	buf[field] = value
}

// PendingEdits reports whether the record has unsaved edits.
func (w *Workspace) PendingEdits(code string) bool {
	return len(w.edits[code]) > 0
}

// ClearEdits drops the buffer for code, typically after a successful save.
func (w *Workspace) ClearEdits(code string) {
	delete(w.edits, code)
}

// Effective returns the last-fetched record with pending edits applied on
// top. A record with no edits round-trips unchanged.
func (w *Workspace) Effective(code string) (api.Customer, bool) {
	rec, ok := w.Record(code)
	if !ok {
		return api.Customer{}, false
	}
	for field, value := range w.edits[code] {
		setField(&rec, field, value)
	}
	return rec, true
}

// FieldValue returns the displayed value for one field of one record:
// the buffered edit if present, the fetched value otherwise.
func (w *Workspace) FieldValue(code, field string) string {
	if buf, ok := w.edits[code]; ok {
		if v, ok := buf[field]; ok {
			return v
		}
	}
	rec, ok := w.Record(code)
	if !ok {
		return ""
	}
	return FieldOf(rec, field)
}

// SelectParent marks code as the candidate parent for its group. The
// selection is exclusive per group and replaces any previous choice
// atomically; the group's validation errors are reset.
func (w *Workspace) SelectParent(groupKey, code string) {
	w.parents[groupKey] = code
	delete(w.valErrors, groupKey)
}

// SelectedParent returns the candidate parent code for the group, if any.
func (w *Workspace) SelectedParent(groupKey string) (string, bool) {
	code, ok := w.parents[groupKey]
	return code, ok
}

// ValidationError returns the stored message for one field of a group.
func (w *Workspace) ValidationError(groupKey, field string) (string, bool) {
	msg, ok := w.valErrors[groupKey][field]
	return msg, ok
}

// Page returns the current 1-based page number.
func (w *Workspace) Page() int { return w.page }

// TotalPages returns the server-reported page count.
func (w *Workspace) TotalPages() int { return w.totalPages }

// Search returns the committed search text.
func (w *Workspace) Search() string { return w.search }

// SetTotalPages records the server-reported page count.
func (w *Workspace) SetTotalPages(n int) {
	if n < 1 {
		n = 1
	}
	w.totalPages = n
	if w.page > w.totalPages {
		w.page = w.totalPages
	}
}

// SetPage moves to page p if it is in range. Returns true if it moved.
func (w *Workspace) SetPage(p int) bool {
	if p < 1 || p > w.totalPages || p == w.page {
		return false
	}
	w.page = p
	return true
}

// SetSearch commits new search text. Any actual change resets to page 1.
// Returns true if the committed text changed (i.e. a reload is due).
func (w *Workspace) SetSearch(s string) bool {
	if s == w.search {
		return false
	}
	w.search = s
	w.page = 1
	return true
}

// CanPrev reports whether the Prev pager control is enabled.
func (w *Workspace) CanPrev() bool { return w.page > 1 }

// CanNext reports whether the Next pager control is enabled.
func (w *Workspace) CanNext() bool { return w.page < w.totalPages }

// BeginLoad issues a new load sequence number. Loads are never cancelled;
// instead the most recently issued one is authoritative.
func (w *Workspace) BeginLoad() uint64 {
	w.loadSeq++
	return w.loadSeq
}

// AcceptLoad reports whether a response for seq should be applied. Stale
// responses (a newer load was issued since) are discarded regardless of
// arrival order.
func (w *Workspace) AcceptLoad(seq uint64) bool {
	return seq == w.loadSeq
}

// FieldOf reads a named editable field from a record.
func FieldOf(c api.Customer, field string) string {
	switch field {
	case "name":
		return c.Name
	case "add01":
		return c.Add01
	case "add02":
		return c.Add02
	case "postCode":
		return c.PostCode
	case "country":
		return c.Country
	}
	return ""
}

func setField(c *api.Customer, field, value string) {
	switch field {
	case "name":
		c.Name = value
	case "add01":
		c.Add01 = value
	case "add02":
		c.Add02 = value
	case "postCode":
		c.PostCode = value
	case "country":
		c.Country = value
	}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
