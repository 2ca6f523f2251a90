package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNoProfile is returned by MyProfile when the account has never applied
// as an author. Callers treat it as a normal state, not a failure.
var ErrNoProfile = errors.New("no author profile")

// ApplyRequest is the payload for POST /authors/apply
type ApplyRequest struct {
	PenName string `json:"penName"`
	Bio     string `json:"bio"`
}

// UpdateProfileRequest carries the editable author profile fields
type UpdateProfileRequest struct {
	PenName   *string `json:"penName,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	PhotoURL  *string `json:"photoUrl,omitempty"`
	Website   *string `json:"website,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	MTNNumber *string `json:"mtnNumber,omitempty"`
	OMNumber  *string `json:"omNumber,omitempty"`
}

// Earnings is the author's balance plus the transaction ledger
type Earnings struct {
	Balance      float64
	Transactions []Transaction
}

// WithdrawalRequest is the payload for POST /authors/me/withdraw
type WithdrawalRequest struct {
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"`
	PhoneNumber string  `json:"phoneNumber"`
}

// Apply submits an author application
func (c *Client) Apply(ctx context.Context, penName, bio string) (*AuthorProfile, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/authors/apply", ApplyRequest{
		PenName: penName,
		Bio:     bio,
	})
	if err != nil {
		return nil, err
	}

	var profile AuthorProfile
	if err := parseResponse(resp, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// MyProfile fetches the current account's author profile.
// A 404 means the account has not applied yet and maps to ErrNoProfile.
func (c *Client) MyProfile(ctx context.Context) (*AuthorProfile, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/authors/me", nil)
	if err != nil {
		return nil, err
	}

	var profile AuthorProfile
	if err := parseResponse(resp, &profile); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, ErrNoProfile
		}
		return nil, err
	}

	return &profile, nil
}

// UpdateMyProfile edits the author profile
func (c *Client) UpdateMyProfile(ctx context.Context, req UpdateProfileRequest) (*AuthorProfile, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, "/authors/me", req)
	if err != nil {
		return nil, err
	}

	var profile AuthorProfile
	if err := parseResponse(resp, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// MyStats fetches the author's aggregate sales figures
func (c *Client) MyStats(ctx context.Context) (*AuthorStats, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/authors/me/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats AuthorStats
	if err := parseResponse(resp, &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

// MyEarnings fetches the balance and transaction history.
// The backend serializes the balance as a decimal string.
func (c *Client) MyEarnings(ctx context.Context) (*Earnings, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/authors/me/earnings", nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Balance      json.Number   `json:"balance"`
		Transactions []Transaction `json:"transactions"`
	}
	if err := parseResponse(resp, &payload); err != nil {
		return nil, err
	}

	var balance float64
	if payload.Balance != "" {
		balance, err = payload.Balance.Float64()
		if err != nil {
			return nil, fmt.Errorf("failed to parse balance %q: %w", payload.Balance, err)
		}
	}

	return &Earnings{
		Balance:      balance,
		Transactions: payload.Transactions,
	}, nil
}

// RequestWithdrawal submits a payout request against the current balance
func (c *Client) RequestWithdrawal(ctx context.Context, req WithdrawalRequest) (*Withdrawal, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/authors/me/withdraw", req)
	if err != nil {
		return nil, err
	}

	var withdrawal Withdrawal
	if err := parseResponse(resp, &withdrawal); err != nil {
		return nil, err
	}
	return &withdrawal, nil
}
