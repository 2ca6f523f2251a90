package api

import (
	"context"
	"net/http"
)

// LoginRequest is the credential payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for POST /auth/register
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginResult is the session material returned by login and register
type LoginResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// Login exchanges credentials for a token pair and the user record
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var result LoginResult
	if err := parseResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Register creates an account and returns a ready-to-use session
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/register", req)
	if err != nil {
		return nil, err
	}

	var result LoginResult
	if err := parseResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Me validates the current credential and returns the account it belongs to
func (c *Client) Me(ctx context.Context) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := parseResponse(resp, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// Logout revokes the refresh token server-side
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/logout", map[string]string{
		"refreshToken": refreshToken,
	})
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}

// ForgotPassword requests a password reset email
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/forgot-password", map[string]string{
		"email": email,
	})
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}

// ResetPassword completes a password reset with an emailed token
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/reset-password", map[string]string{
		"token":    token,
		"password": password,
	})
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}
