// Package api is the JSON-over-HTTP client for the Kindling platform.
package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kindling-cc/kindling/internal/keys"
)

// ErrEmptySignIn marks a sign-in that returned success with no payload.
// The server should never do this; callers treat it as a failed attempt.
var ErrEmptySignIn = errors.New("sign-in returned empty payload")

// AuthError is a server-reported authentication rejection.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return "authentication rejected"
	}
	return "authentication rejected: " + e.Reason
}

// Client talks to one Kindling server.
type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

// New builds a client for baseURL with the given request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// envelope is the standard response wrapper. Data stays raw so callers can
// distinguish "absent" from "null".
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn authenticates the derived key pair. The request carries the
// account, public key, and a signature over a timestamped statement; the
// server verifies the signature against the account's registered key.
func (c *Client) SignIn(ctx context.Context, kp keys.KeyPair) (SignInResult, error) {
	ts := c.now().UTC().Format(time.RFC3339)
	statement := fmt.Sprintf("kindling-signin:%s:%s", kp.Account, ts)
	body := map[string]string{
		"account":    kp.Account,
		"public_key": base64.StdEncoding.EncodeToString(kp.Public),
		"timestamp":  ts,
		"signature":  base64.StdEncoding.EncodeToString(kp.Sign([]byte(statement))),
	}

	env, err := c.post(ctx, "/api/sign_in", body, "")
	if err != nil {
		return SignInResult{}, err
	}
	if emptyPayload(env.Data) {
		return SignInResult{}, ErrEmptySignIn
	}
	var out SignInResult
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return SignInResult{}, fmt.Errorf("decode sign-in: %w", err)
	}
	if out.Token == "" {
		return SignInResult{}, ErrEmptySignIn
	}
	return out, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	_, err := c.post(ctx, "/api/users", reg, "")
	return err
}

// Profile fetches the public profile for an account.
func (c *Client) Profile(ctx context.Context, account string) (Profile, error) {
	env, err := c.get(ctx, "/api/users/"+account)
	if err != nil {
		return Profile{}, err
	}
	var out Profile
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return out, nil
}

// Transfer fetches one transfer by id.
func (c *Client) Transfer(ctx context.Context, id uuid.UUID) (Transfer, error) {
	env, err := c.get(ctx, "/api/transfers/"+id.String())
	if err != nil {
		return Transfer{}, err
	}
	var out Transfer
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return Transfer{}, fmt.Errorf("decode transfer: %w", err)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string) (envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return envelope{}, err
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, body any, token string) (envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return envelope{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return envelope{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (envelope, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return envelope{}, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return envelope{}, fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		// A bare "null" body decodes to a zero envelope, which callers see
		// as an empty payload.
		if err := json.Unmarshal(raw, &env); err != nil {
			return envelope{}, fmt.Errorf("decode response (%d): %w", resp.StatusCode, err)
		}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		reason := ""
		if env.Error != nil {
			reason = env.Error.Message
		}
		return envelope{}, &AuthError{Reason: reason}
	case resp.StatusCode >= 400:
		if env.Error != nil && env.Error.Message != "" {
			return envelope{}, fmt.Errorf("server error (%d): %s", resp.StatusCode, env.Error.Message)
		}
		return envelope{}, fmt.Errorf("server error (%d)", resp.StatusCode)
	}
	return env, nil
}

func emptyPayload(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
