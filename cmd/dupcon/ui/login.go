package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"dupcon/internal/api"
)

// loginResultMsg carries the outcome of the async login call.
type loginResultMsg struct {
	result *api.LoginResult
	err    error
}

// LoginEvent tells the app a login round-trip finished successfully.
type LoginEvent struct {
	Authenticated bool
	Token         string
}

const (
	loginFieldUsername = iota
	loginFieldPassword
)

// LoginModel is the credential capture screen. Failures — a rejected
// login or a 2xx with no token — render as an inline error under the
// form; nothing here locks out or rate limits.
type LoginModel struct {
	username textinput.Model
	password textinput.Model
	focus    int
	errText  string
	busy     bool

	gw     Gateway
	log    *zap.Logger
	styles Styles
	width  int
}

// NewLoginModel builds the login screen.
func NewLoginModel(gw Gateway, logger *zap.Logger, styles Styles) LoginModel {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = LoginCharLimit
	username.Width = LoginInputWidth
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = LoginCharLimit
	password.Width = LoginInputWidth
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return LoginModel{
		username: username,
		password: password,
		gw:       gw,
		log:      logger,
		styles:   styles,
	}
}

// Init starts the cursor blink.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input and the login round trip.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd, LoginEvent) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil, LoginEvent{}
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.setFocus(1 - m.focus)
			return m, textinput.Blink, LoginEvent{}
		case "enter":
			if m.focus == loginFieldUsername {
				m.setFocus(loginFieldPassword)
				return m, textinput.Blink, LoginEvent{}
			}
			return m.submit()
		}

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.log.Warn("login rejected", zap.Error(msg.err))
			m.errText = capitalize(msg.err.Error())
			return m, nil, LoginEvent{}
		}
		if msg.result.Token == "" {
			m.errText = "Login failed: no token returned."
			return m, nil, LoginEvent{}
		}
		m.log.Info("login succeeded")
		return m, nil, LoginEvent{Authenticated: true, Token: msg.result.Token}
	}

	var cmd tea.Cmd
	if m.focus == loginFieldUsername {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd, LoginEvent{}
}

func (m *LoginModel) setFocus(field int) {
	m.focus = field
	if field == loginFieldUsername {
		m.username.Focus()
		m.password.Blur()
	} else {
		m.password.Focus()
		m.username.Blur()
	}
}

func (m LoginModel) submit() (LoginModel, tea.Cmd, LoginEvent) {
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()
	if username == "" || password == "" {
		m.errText = "Enter a username and password."
		return m, nil, LoginEvent{}
	}

	m.errText = ""
	m.busy = true
	gw := m.gw
	return m, func() tea.Msg {
		result, err := gw.Login(context.Background(), username, password)
		return loginResultMsg{result: result, err: err}
	}, LoginEvent{}
}

// View renders the form.
func (m LoginModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Company Admin Login"))
	b.WriteString("\n\n")
	b.WriteString(m.username.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n\n")

	if m.busy {
		b.WriteString(m.styles.Muted.Render("Signing in..."))
	} else {
		b.WriteString(m.styles.Help.Render("enter: sign in • tab: switch field • ctrl+c: quit"))
	}

	if m.errText != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Error.Render(m.errText))
	}

	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
