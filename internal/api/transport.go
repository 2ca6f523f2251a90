package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/quillforge/quill/internal/credstore"
	"github.com/quillforge/quill/internal/log"
)

// AuthTransport is an http.RoundTripper that attaches the stored access
// token as a bearer header and, on the first 401 of a request, performs a
// single token refresh before replaying the request. A replayed request
// that fails again is handed back to the caller as-is; there is never a
// second refresh for the same original request.
//
// When the refresh itself fails the persisted credentials are cleared and
// OnForceLogout fires. The application shell subscribes to that signal;
// the transport itself never touches navigation or UI.
type AuthTransport struct {
	// Base performs the actual round trips (http.DefaultTransport if nil)
	Base http.RoundTripper

	// Creds is the shared durable token store
	Creds credstore.Store

	// RefreshURL is the absolute URL of the token refresh endpoint
	RefreshURL string

	// OnForceLogout is invoked after a failed refresh has cleared the
	// stored credentials. May be nil.
	OnForceLogout func()

	// Logger traces refresh activity. Token values are never logged.
	Logger *log.Logger

	// refreshClient performs the refresh call outside this transport so a
	// 401 from the refresh endpoint cannot recurse. Set once at
	// construction; RoundTrip must stay safe for concurrent use.
	refreshClient *http.Client
}

// defaultRefreshClient serves zero-value transports that bypassed
// NewAuthTransport
var defaultRefreshClient = &http.Client{Timeout: 15 * time.Second}

// NewAuthTransport creates a transport around base (http.DefaultTransport
// if nil)
func NewAuthTransport(base http.RoundTripper, creds credstore.Store, refreshURL string, onForceLogout func()) *AuthTransport {
	return &AuthTransport{
		Base:          base,
		Creds:         creds,
		RefreshURL:    refreshURL,
		OnForceLogout: onForceLogout,
		Logger:        log.DefaultLogger(),
		refreshClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (t *AuthTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *AuthTransport) refreshHTTP() *http.Client {
	if t.refreshClient != nil {
		return t.refreshClient
	}
	return defaultRefreshClient
}

func (t *AuthTransport) logger() *log.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return log.DefaultLogger()
}

// RoundTrip implements http.RoundTripper
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	creds, err := t.Creds.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	authed := cloneWithBearer(req, creds.AccessToken)

	resp, err := t.base().RoundTrip(authed)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// One refresh attempt, then one replay. Requests whose body cannot be
	// rebuilt are returned unauthorized rather than replayed corrupted.
	if creds.RefreshToken == "" || (req.Body != nil && req.GetBody == nil) {
		return resp, nil
	}

	pair, refreshErr := t.refresh(creds.RefreshToken)
	if refreshErr != nil {
		t.logger().Debug("token refresh failed, clearing credentials")
		if clearErr := t.Creds.Clear(); clearErr != nil {
			t.logger().Warn("failed to clear credentials", "error", clearErr)
		}
		if t.OnForceLogout != nil {
			t.OnForceLogout()
		}
		return resp, nil
	}

	creds.AccessToken = pair.AccessToken
	creds.RefreshToken = pair.RefreshToken
	if err := t.Creds.Save(creds); err != nil {
		t.logger().Warn("failed to persist refreshed credentials", "error", err)
	}

	t.logger().Debug("token refreshed, replaying request", "method", req.Method, "path", req.URL.Path)

	// The first response is superseded by the replay
	drainAndClose(resp)

	replay := cloneWithBearer(req, pair.AccessToken)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("failed to rebuild request body: %w", err)
		}
		replay.Body = body
	}

	return t.base().RoundTrip(replay)
}

// TokenPair is the rotated credential pair returned by a refresh
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshEnvelope struct {
	Success bool      `json:"success"`
	Data    TokenPair `json:"data"`
	Message string    `json:"message,omitempty"`
}

func (t *AuthTransport) refresh(refreshToken string) (*TokenPair, error) {
	body, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, t.RefreshURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.refreshHTTP().Do(req)
	if err != nil {
		return nil, fmt.Errorf("refresh call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: "token refresh rejected"}
	}

	var env refreshEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode refresh response: %w", err)
	}

	if env.Data.AccessToken == "" {
		return nil, fmt.Errorf("refresh response carried no access token")
	}

	return &env.Data, nil
}

// cloneWithBearer copies the request and sets the Authorization header.
// RoundTrippers must not mutate the caller's request.
func cloneWithBearer(req *http.Request, accessToken string) *http.Request {
	clone := req.Clone(req.Context())
	if accessToken != "" {
		clone.Header.Set("Authorization", "Bearer "+accessToken)
	} else {
		clone.Header.Del("Authorization")
	}
	return clone
}

func drainAndClose(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
