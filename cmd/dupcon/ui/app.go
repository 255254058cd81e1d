package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"dupcon/internal/config"
	"dupcon/internal/session"
)

type page int

const (
	pageLogin page = iota
	pageDuplicates
	pageResolved
)

// App is the root model. It owns the session and swaps the active page.
// Page models are rebuilt on every navigation: all review state (edit
// buffers, selection, paging) is transient and starts fresh, matching the
// lifecycle of the pages it replaces.
type App struct {
	page    page
	login   LoginModel
	dup     DuplicatesModel
	res     ResolvedModel
	initCmd tea.Cmd

	sess   *session.Store
	gw     Gateway
	cfg    *config.Config
	log    *zap.Logger
	styles Styles
	width  int
	height int
}

// NewApp builds the console. An existing stored credential skips the
// login screen; its validity is only ever decided by the server.
func NewApp(gw Gateway, sess *session.Store, cfg *config.Config, logger *zap.Logger) App {
	styles := DefaultStyles()
	app := App{
		sess:   sess,
		gw:     gw,
		cfg:    cfg,
		log:    logger,
		styles: styles,
	}

	if sess.IsAuthenticated() {
		app.page = pageDuplicates
		app.dup, app.initCmd = NewDuplicatesModel(gw, cfg, logger, styles).Init()
	} else {
		app.page = pageLogin
		app.login = NewLoginModel(gw, logger, styles)
		app.initCmd = app.login.Init()
	}
	return app
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.initCmd
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	}

	switch a.page {
	case pageLogin:
		login, cmd, event := a.login.Update(msg)
		a.login = login
		if event.Authenticated {
			if err := a.sess.SetToken(event.Token); err != nil {
				a.log.Warn("failed to persist token", zap.Error(err))
			}
			return a.openDuplicates(cmd)
		}
		return a, cmd

	case pageDuplicates:
		dup, cmd, event := a.dup.Update(msg)
		a.dup = dup
		switch event {
		case DupOpenResolved:
			return a.openResolved(cmd)
		case DupLogout:
			return a.logout(cmd)
		}
		return a, cmd

	case pageResolved:
		res, cmd, event := a.res.Update(msg)
		a.res = res
		if event == ResBack {
			return a.openDuplicates(cmd)
		}
		return a, cmd
	}
	return a, nil
}

func (a App) openDuplicates(prior tea.Cmd) (tea.Model, tea.Cmd) {
	a.page = pageDuplicates
	dup, cmd := NewDuplicatesModel(a.gw, a.cfg, a.log, a.styles).Init()
	a.dup = dup
	return a.resized(), tea.Batch(prior, cmd)
}

func (a App) openResolved(prior tea.Cmd) (tea.Model, tea.Cmd) {
	a.page = pageResolved
	res, cmd := NewResolvedModel(a.gw, a.cfg, a.log, a.styles).Init()
	a.res = res
	return a.resized(), tea.Batch(prior, cmd)
}

// logout tears the session down and forces the login screen.
func (a App) logout(prior tea.Cmd) (tea.Model, tea.Cmd) {
	if err := a.sess.Clear(); err != nil {
		a.log.Warn("failed to clear token", zap.Error(err))
	}
	a.log.Info("logged out")
	a.page = pageLogin
	a.login = NewLoginModel(a.gw, a.log, a.styles)
	return a.resized(), tea.Batch(prior, a.login.Init())
}

// resized replays the current terminal size into the freshly built page.
func (a App) resized() App {
	if a.width == 0 {
		return a
	}
	size := tea.WindowSizeMsg{Width: a.width, Height: a.height}
	switch a.page {
	case pageDuplicates:
		a.dup, _, _ = a.dup.Update(size)
	case pageResolved:
		a.res, _, _ = a.res.Update(size)
	}
	return a
}

// View implements tea.Model.
func (a App) View() string {
	var body string
	switch a.page {
	case pageLogin:
		body = a.login.View()
	case pageDuplicates:
		body = a.dup.View()
	case pageResolved:
		body = a.res.View()
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}
