package api

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a token. A non-2xx answer is
// ErrInvalidCredentials. A 2xx answer with an empty token field is NOT an
// error here — the login screen decides how to present it.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var result LoginResult
	body := loginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/Auth/login", nil, body, &result, ErrInvalidCredentials); err != nil {
		return nil, err
	}
	return &result, nil
}
