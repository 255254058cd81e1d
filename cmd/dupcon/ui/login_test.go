package ui

import (
	"errors"
	"strings"
	"testing"

	"dupcon/internal/api"
)

func typedLogin(t *testing.T, gw *fakeGateway, username, password string) LoginModel {
	t.Helper()
	m := NewLoginModel(gw, testLogger(), DefaultStyles())
	for _, r := range username {
		m, _, _ = m.Update(keyPress(string(r)))
	}
	m, _, _ = m.Update(keyPress("tab"))
	for _, r := range password {
		m, _, _ = m.Update(keyPress(string(r)))
	}
	return m
}

func TestLoginHappyPath(t *testing.T) {
	gw := newFakeGateway()
	gw.loginFn = func(username, password string) (*api.LoginResult, error) {
		if username != "admin" || password != "hunter2" {
			t.Errorf("credentials not forwarded: %q/%q", username, password)
		}
		return &api.LoginResult{Token: "tok-1"}, nil
	}

	m := typedLogin(t, gw, "admin", "hunter2")
	m, cmd, _ := m.Update(keyPress("enter"))
	if !m.busy {
		t.Error("submit should mark the form busy")
	}

	result, ok := firstMsgOf[loginResultMsg](t, cmd)
	if !ok {
		t.Fatal("submit issued no login call")
	}
	m, _, event := m.Update(result)

	if !event.Authenticated || event.Token != "tok-1" {
		t.Errorf("expected authenticated event with token, got %+v", event)
	}
	if m.busy {
		t.Error("busy flag should clear")
	}
}

func TestLoginEnterOnUsernameMovesToPassword(t *testing.T) {
	gw := newFakeGateway()
	m := NewLoginModel(gw, testLogger(), DefaultStyles())

	m, _, _ = m.Update(keyPress("a"))
	m, _, _ = m.Update(keyPress("enter"))

	if m.focus != loginFieldPassword {
		t.Error("enter on the username field should move focus, not submit")
	}
	if len(gw.callLog()) != 0 {
		t.Error("no login call should be made yet")
	}
}

func TestLoginEmptyFieldsRejectedLocally(t *testing.T) {
	gw := newFakeGateway()
	m := NewLoginModel(gw, testLogger(), DefaultStyles())

	m, _, _ = m.Update(keyPress("tab")) // jump to password, both blank
	m, _, _ = m.Update(keyPress("enter"))

	if m.errText != "Enter a username and password." {
		t.Errorf("expected local validation error, got %q", m.errText)
	}
	if len(gw.callLog()) != 0 {
		t.Error("blank credentials must not reach the server")
	}
}

func TestLoginRejectionShownInline(t *testing.T) {
	gw := newFakeGateway()
	gw.loginFn = func(string, string) (*api.LoginResult, error) {
		return nil, errors.New("invalid username or password")
	}

	m := typedLogin(t, gw, "admin", "wrong")
	m, cmd, _ := m.Update(keyPress("enter"))
	result, _ := firstMsgOf[loginResultMsg](t, cmd)
	m, _, event := m.Update(result)

	if event.Authenticated {
		t.Fatal("rejected login must not authenticate")
	}
	if m.errText != "Invalid username or password" {
		t.Errorf("expected capitalized inline error, got %q", m.errText)
	}
	if !strings.Contains(m.View(), "Invalid username or password") {
		t.Error("error should render under the form")
	}
}

func TestLoginTokenlessSuccessIsFailure(t *testing.T) {
	gw := newFakeGateway()
	gw.loginFn = func(string, string) (*api.LoginResult, error) {
		return &api.LoginResult{}, nil
	}

	m := typedLogin(t, gw, "admin", "hunter2")
	m, cmd, _ := m.Update(keyPress("enter"))
	result, _ := firstMsgOf[loginResultMsg](t, cmd)
	m, _, event := m.Update(result)

	if event.Authenticated {
		t.Fatal("a 2xx without a token must not authenticate")
	}
	if m.errText != "Login failed: no token returned." {
		t.Errorf("unexpected error text: %q", m.errText)
	}
}

func TestLoginIgnoresKeysWhileBusy(t *testing.T) {
	gw := newFakeGateway()
	m := typedLogin(t, gw, "admin", "hunter2")
	m, cmd, _ := m.Update(keyPress("enter"))

	before := len(gw.callLog()) // submit cmd not yet executed
	m, resubmit, _ := m.Update(keyPress("enter"))
	if resubmit != nil {
		t.Error("enter while busy must not issue a second call")
	}
	_, _ = firstMsgOf[loginResultMsg](t, cmd)
	if got := len(gw.callLog()); got != before+1 {
		t.Errorf("expected exactly one login call, got %d", got-before)
	}
}
