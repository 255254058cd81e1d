package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"dupcon/internal/api"
	"dupcon/internal/config"
	"dupcon/internal/review"
)

// duplicatesLoadedMsg is a listing response. seq ties it to the load that
// issued it; superseded loads are dropped on arrival.
type duplicatesLoadedMsg struct {
	seq  uint64
	page *api.DuplicatesPage
	err  error
}

// rowSavedMsg is the outcome of a single-row save.
type rowSavedMsg struct {
	code string
	err  error
}

// mergeDoneMsg is the outcome of the two-step merge: update the parent,
// then merge the group. updated reports whether the first step succeeded,
// so the parent's edit buffer can be cleared even if the merge then failed.
type mergeDoneMsg struct {
	groupKey   string
	parentCode string
	updated    bool
	result     *api.MergeResult
	err        error
}

// mergeSettledMsg fires after the post-merge settle delay; the page then
// reloads to pick up the regrouped data.
type mergeSettledMsg struct{}

// DuplicatesEvent asks the app for page-level navigation.
type DuplicatesEvent int

const (
	DupNone DuplicatesEvent = iota
	DupOpenResolved
	DupLogout
)

// cursorPos addresses one field cell in the grouped table.
type cursorPos struct {
	group int
	row   int
	field int
}

// DuplicatesModel is the duplicate-review workflow page. Groups arrive
// pre-clustered from the server; the operator edits fields inline, picks
// a parent per group, and merges. All mutations reload the current page
// afterwards; a failed load keeps the last-good data on screen.
type DuplicatesModel struct {
	ws     *review.Workspace
	frame  Frame
	banner Banner
	spin   spinner.Model

	cursor    cursorPos
	editor    textinput.Model
	editing   bool
	loading   bool // initial fetch only
	loaded    bool
	mergeBusy string // group key being merged, "" when idle

	gw     Gateway
	cfg    *config.Config
	log    *zap.Logger
	styles Styles
	width  int
	height int
}

// NewDuplicatesModel builds the review page.
func NewDuplicatesModel(gw Gateway, cfg *config.Config, logger *zap.Logger, styles Styles) DuplicatesModel {
	frame := NewFrame("duplicates", "Duplicate Customers", cfg.SearchDebounce)
	frame.SecondaryHint = "r: view resolved records"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Accent

	editor := textinput.New()
	editor.CharLimit = 128
	editor.Width = FieldCellWidth

	return DuplicatesModel{
		ws:     review.New(),
		frame:  frame,
		banner: NewBanner(cfg.BannerTTL),
		spin:   sp,
		editor: editor,
		gw:     gw,
		cfg:    cfg,
		log:    logger,
		styles: styles,
	}
}

// Init fetches the first page. The updated model must be kept: it tracks
// the in-flight load.
func (m DuplicatesModel) Init() (DuplicatesModel, tea.Cmd) {
	cmd := m.load()
	m.loading = true
	return m, tea.Batch(cmd, m.spin.Tick)
}

// load issues one listing fetch for the current page/search. The returned
// response is applied only if no newer load was issued meanwhile.
func (m *DuplicatesModel) load() tea.Cmd {
	seq := m.ws.BeginLoad()
	page, pageSize, search := m.ws.Page(), m.cfg.PageSize, m.ws.Search()
	gw := m.gw
	m.log.Debug("loading duplicates",
		zap.Uint64("seq", seq),
		zap.Int("page", page),
		zap.String("search", search))
	return func() tea.Msg {
		result, err := gw.FetchDuplicates(context.Background(), page, pageSize, search)
		return duplicatesLoadedMsg{seq: seq, page: result, err: err}
	}
}

// Update drives the page.
func (m DuplicatesModel) Update(msg tea.Msg) (DuplicatesModel, tea.Cmd, DuplicatesEvent) {
	m.banner.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil, DupNone

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd, DupNone
		}
		return m, nil, DupNone

	case duplicatesLoadedMsg:
		return m.applyLoad(msg)

	case rowSavedMsg:
		if msg.err != nil {
			m.log.Warn("row save failed", zap.String("code", msg.code), zap.Error(msg.err))
			// Buffer stays intact so typed input is not lost.
			return m, m.banner.Show("Error saving customer", BannerError), DupNone
		}
		m.ws.ClearEdits(msg.code)
		return m, m.load(), DupNone

	case mergeDoneMsg:
		return m.applyMergeDone(msg)

	case mergeSettledMsg:
		return m, m.load(), DupNone

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	frame, cmd, event := m.frame.Update(msg)
	m.frame = frame
	return m.applyFrameEvent(event, cmd)
}

func (m DuplicatesModel) applyLoad(msg duplicatesLoadedMsg) (DuplicatesModel, tea.Cmd, DuplicatesEvent) {
	if !m.ws.AcceptLoad(msg.seq) {
		m.log.Debug("dropping superseded load", zap.Uint64("seq", msg.seq))
		return m, nil, DupNone
	}
	m.loading = false

	if msg.err != nil {
		m.log.Warn("duplicates load failed", zap.Error(msg.err))
		// Last-good data stays on screen; only the banner reports it.
		return m, m.banner.Show("Failed to load data", BannerError), DupNone
	}

	m.loaded = true
	m.ws.SetRecords(msg.page.Records)
	m.ws.SetTotalPages(msg.page.TotalPages)
	m.clampCursor()

	if msg.page.BannerMessage != "" {
		return m, m.banner.Show(msg.page.BannerMessage, msg.page.BannerType), DupNone
	}
	return m, nil, DupNone
}

func (m DuplicatesModel) applyMergeDone(msg mergeDoneMsg) (DuplicatesModel, tea.Cmd, DuplicatesEvent) {
	m.mergeBusy = ""
	if msg.updated {
		m.ws.ClearEdits(msg.parentCode)
	}
	if msg.err != nil {
		m.log.Warn("merge failed",
			zap.String("group", msg.groupKey),
			zap.String("parent", msg.parentCode),
			zap.Error(msg.err))
		return m, m.banner.Show("Failed to save or merge parent", BannerError), DupNone
	}

	m.log.Info("group merged",
		zap.String("group", msg.groupKey),
		zap.String("parent", msg.parentCode))

	message := "Group merged successfully."
	kind := BannerSuccess
	if msg.result != nil && msg.result.BannerMessage != "" {
		message = msg.result.BannerMessage
	}
	if msg.result != nil && msg.result.BannerType != "" {
		kind = msg.result.BannerType
	}

	// Give the server its settle window before refetching the regrouped
	// page.
	settle := tea.Tick(m.cfg.MergeSettle, func(time.Time) tea.Msg {
		return mergeSettledMsg{}
	})
	return m, tea.Batch(m.banner.Show(message, kind), settle), DupNone
}

func (m DuplicatesModel) handleKey(msg tea.KeyMsg) (DuplicatesModel, tea.Cmd, DuplicatesEvent) {
	if m.editing {
		return m.handleEditorKey(msg)
	}

	if m.frame.SearchFocused() {
		frame, cmd, event := m.frame.Update(msg)
		m.frame = frame
		return m.applyFrameEvent(event, cmd)
	}

	switch msg.String() {
	case "up", "k":
		m.moveRow(-1)
		return m, nil, DupNone
	case "down", "j":
		m.moveRow(1)
		return m, nil, DupNone
	case "left", "h":
		m.moveField(-1)
		return m, nil, DupNone
	case "right", "l":
		m.moveField(1)
		return m, nil, DupNone

	case "enter":
		return m.beginEdit()

	case " ":
		if group, rec, ok := m.current(); ok {
			m.ws.SelectParent(group.Key, rec.CustCode)
		}
		return m, nil, DupNone

	case "s":
		if _, rec, ok := m.current(); ok {
			return m, m.saveRow(rec.CustCode), DupNone
		}
		return m, nil, DupNone

	case "m":
		return m.beginMerge()

	case "r":
		return m, nil, DupOpenResolved

	case "ctrl+l":
		return m, nil, DupLogout
	}

	frame, cmd, event := m.frame.Update(msg)
	m.frame = frame
	return m.applyFrameEvent(event, cmd)
}

func (m DuplicatesModel) handleEditorKey(msg tea.KeyMsg) (DuplicatesModel, tea.Cmd, DuplicatesEvent) {
	switch msg.String() {
	case "enter":
		if _, rec, ok := m.current(); ok {
			field := review.EditableFields[m.cursor.field]
			m.ws.Edit(rec.CustCode, field, m.editor.Value())
		}
		m.editing = false
		return m, nil, DupNone
	case "esc":
		m.editing = false
		return m, nil, DupNone
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd, DupNone
}

func (m DuplicatesModel) beginEdit() (DuplicatesModel, tea.Cmd, DuplicatesEvent) {
	_, rec, ok := m.current()
	if !ok {
		return m, nil, DupNone
	}
	field := review.EditableFields[m.cursor.field]
	m.editor.SetValue(m.ws.FieldValue(rec.CustCode, field))
	m.editor.CursorEnd()
	m.editor.Focus()
	m.editing = true
	return m, textinput.Blink, DupNone
}

func (m DuplicatesModel) beginMerge() (DuplicatesModel, tea.Cmd, DuplicatesEvent) {
	group, _, ok := m.current()
	if !ok || m.mergeBusy != "" {
		return m, nil, DupNone
	}

	errs, err := m.ws.Validate(group.Key)
	if err != nil {
		return m, m.banner.Show("Select a parent before merging", BannerError), DupNone
	}
	if len(errs) > 0 {
		// Errors render inline next to the offending fields; no call made.
		return m, nil, DupNone
	}

	parentCode, _ := m.ws.SelectedParent(group.Key)
	parent, ok := m.ws.Effective(parentCode)
	if !ok {
		return m, nil, DupNone
	}

	m.mergeBusy = group.Key
	gw := m.gw
	groupKey := group.Key
	return m, func() tea.Msg {
		// Persist pending parent edits first, then merge.
		if err := gw.UpdateCustomer(context.Background(), parent); err != nil {
			return mergeDoneMsg{groupKey: groupKey, parentCode: parentCode, err: err}
		}
		result, err := gw.MergeGroup(context.Background(), groupKey, parentCode, parent)
		return mergeDoneMsg{
			groupKey:   groupKey,
			parentCode: parentCode,
			updated:    true,
			result:     result,
			err:        err,
		}
	}, DupNone
}

func (m *DuplicatesModel) saveRow(code string) tea.Cmd {
	effective, ok := m.ws.Effective(code)
	if !ok {
		return nil
	}
	gw := m.gw
	return func() tea.Msg {
		err := gw.UpdateCustomer(context.Background(), effective)
		return rowSavedMsg{code: code, err: err}
	}
}

func (m DuplicatesModel) applyFrameEvent(event FrameEvent, cmd tea.Cmd) (DuplicatesModel, tea.Cmd, DuplicatesEvent) {
	switch event {
	case FrameSearchChanged:
		if m.ws.SetSearch(m.frame.Search()) {
			return m, tea.Batch(cmd, m.load()), DupNone
		}
	case FramePrev:
		if m.ws.CanPrev() && m.ws.SetPage(m.ws.Page()-1) {
			return m, tea.Batch(cmd, m.load()), DupNone
		}
	case FrameNext:
		if m.ws.CanNext() && m.ws.SetPage(m.ws.Page()+1) {
			return m, tea.Batch(cmd, m.load()), DupNone
		}
	}
	return m, cmd, DupNone
}

// current returns the group and record under the cursor.
func (m DuplicatesModel) current() (review.Group, api.Customer, bool) {
	groups := m.ws.Groups()
	if m.cursor.group >= len(groups) {
		return review.Group{}, api.Customer{}, false
	}
	group := groups[m.cursor.group]
	if m.cursor.row >= len(group.Records) {
		return review.Group{}, api.Customer{}, false
	}
	return group, group.Records[m.cursor.row], true
}

func (m *DuplicatesModel) moveRow(delta int) {
	groups := m.ws.Groups()
	if len(groups) == 0 {
		return
	}
	g, r := m.cursor.group, m.cursor.row
	r += delta
	for r < 0 {
		if g == 0 {
			r = 0
			break
		}
		g--
		r = len(groups[g].Records) - 1
	}
	for r >= len(groups[g].Records) {
		if g == len(groups)-1 {
			r = len(groups[g].Records) - 1
			break
		}
		g++
		r = 0
	}
	m.cursor.group, m.cursor.row = g, r
}

func (m *DuplicatesModel) moveField(delta int) {
	f := m.cursor.field + delta
	if f < 0 {
		f = 0
	}
	if f > len(review.EditableFields)-1 {
		f = len(review.EditableFields) - 1
	}
	m.cursor.field = f
}

func (m *DuplicatesModel) clampCursor() {
	groups := m.ws.Groups()
	if len(groups) == 0 {
		m.cursor = cursorPos{}
		return
	}
	if m.cursor.group >= len(groups) {
		m.cursor.group = len(groups) - 1
	}
	if rows := len(groups[m.cursor.group].Records); m.cursor.row >= rows {
		m.cursor.row = rows - 1
	}
}

// View renders the page.
func (m DuplicatesModel) View() string {
	var content strings.Builder

	if m.banner.Visible() {
		content.WriteString(m.banner.View(m.styles))
		content.WriteString("\n\n")
	}

	switch {
	case m.loading:
		content.WriteString(m.spin.View())
		content.WriteString(m.styles.Muted.Render(" Loading..."))
	case len(m.ws.Groups()) == 0:
		content.WriteString(m.styles.Muted.Render("No duplicates found."))
	default:
		for gi, group := range m.ws.Groups() {
			content.WriteString(m.renderGroup(gi, group))
			content.WriteString("\n")
		}
	}

	content.WriteString("\n")
	content.WriteString(m.styles.Help.Render(
		"space: select parent • enter: edit field • s: save row • m: merge group • /: search • [ ]: page • ctrl+l: logout"))

	pager := &PagerInfo{
		Page:       m.ws.Page(),
		TotalPages: m.ws.TotalPages(),
		CanPrev:    m.ws.CanPrev(),
		CanNext:    m.ws.CanNext(),
	}
	return m.frame.View(content.String(), pager, m.styles)
}

func (m DuplicatesModel) renderGroup(gi int, group review.Group) string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Group: " + group.Key))
	if m.mergeBusy == group.Key {
		b.WriteString(m.styles.Muted.Render("  merging..."))
	}
	b.WriteString("\n")

	// Header row.
	cells := []string{padCell("Sel", 4), padCell("Code", CodeCellWidth)}
	for _, field := range review.EditableFields {
		cells = append(cells, padCell(field, FieldCellWidth))
	}
	cells = append(cells, padCell("Role", RoleCellWidth))
	b.WriteString(m.styles.Muted.Render(strings.Join(cells, " ")))
	b.WriteString("\n")

	selectedCode, _ := m.ws.SelectedParent(group.Key)
	for ri, rec := range group.Records {
		b.WriteString(m.renderRow(gi, ri, group, rec, selectedCode))
		b.WriteString("\n")
	}

	// Validation errors for the selected parent, next to their fields.
	if selectedCode != "" {
		var errLines []string
		for _, field := range review.EditableFields {
			if msg, ok := m.ws.ValidationError(group.Key, field); ok {
				errLines = append(errLines, msg)
			}
		}
		if len(errLines) > 0 {
			b.WriteString(m.styles.Error.Render("  " + strings.Join(errLines, " • ")))
			b.WriteString("\n")
		}
	}

	return m.styles.GroupBox.Render(b.String())
}

func (m DuplicatesModel) renderRow(gi, ri int, group review.Group, rec api.Customer, selectedCode string) string {
	radio := "( )"
	if rec.CustCode == selectedCode {
		radio = "(•)"
	}

	dirty := " "
	if m.ws.PendingEdits(rec.CustCode) {
		dirty = "*"
	}

	cells := []string{padCell(radio+dirty, 4), padCell(rec.CustCode, CodeCellWidth)}
	for fi, field := range review.EditableFields {
		underCursor := gi == m.cursor.group && ri == m.cursor.row && fi == m.cursor.field
		if underCursor && m.editing {
			cells = append(cells, padCell(m.editor.View(), FieldCellWidth))
			continue
		}

		value := truncateCell(m.ws.FieldValue(rec.CustCode, field), FieldCellWidth)
		cell := padCell(value, FieldCellWidth)
		switch {
		case underCursor:
			cell = m.styles.Selected.Render(cell)
		case rec.CustCode == selectedCode:
			if _, bad := m.ws.ValidationError(group.Key, field); bad {
				cell = m.styles.Error.Render(cell)
			}
		}
		cells = append(cells, cell)
	}
	cells = append(cells, padCell(roleOf(rec), RoleCellWidth))

	line := strings.Join(cells, " ")
	if gi == m.cursor.group && ri == m.cursor.row && !m.editing {
		return m.styles.Body.Render("> ") + line
	}
	return "  " + line
}

// roleOf labels a record's current server-side role in its group.
func roleOf(rec api.Customer) string {
	switch {
	case rec.IsParent:
		return "Parent"
	case rec.ParentCustCode != "":
		return "Child"
	default:
		return "Unassigned"
	}
}

func padCell(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
