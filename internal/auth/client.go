// Package auth talks to the givo auth backend and keeps the signed-in
// session in the application state.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fentz26/givo/internal/apperr"
	"github.com/google/uuid"
)

// DefaultTimeout is the default timeout for backend requests.
const DefaultTimeout = 10 * time.Second

// SignInResult is the identity returned by a successful sign-in.
type SignInResult struct {
	ID       string `json:"id"`
	Fullname string `json:"fullname,omitempty"`
	Email    string `json:"email"`
	Country  string `json:"country,omitempty"`
	Token    string `json:"token,omitempty"`
}

// SignUpRequest is the payload of a sign-up.
type SignUpRequest struct {
	Fullname string `json:"fullname"`
	Country  string `json:"country,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Client calls the auth endpoints under baseURL.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client. A zero timeout uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SignIn exchanges credentials for an identity and token.
func (c *Client) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	body, err := c.post(ctx, "/auth/signin", map[string]string{"email": email, "password": password})
	if err != nil {
		if errors.Is(err, apperr.ErrRequestFailed) {
			return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidCredentials, err)
		}
		return nil, err
	}

	var res SignInResult
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &res); err != nil {
			return nil, fmt.Errorf("%w: parse sign-in response: %w", apperr.ErrRequestFailed, err)
		}
	}
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	res.Email = email
	return &res, nil
}

// SignUp registers a new account.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	req.Fullname = strings.TrimSpace(req.Fullname)
	if req.Email == "" || req.Password == "" {
		return apperr.Validation("email and password are required")
	}
	if req.Fullname == "" {
		return apperr.Validation("full name is required")
	}
	_, err := c.post(ctx, "/auth/signup", req)
	return err
}

// RequestPasswordReset asks the backend to send a reset code to email.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperr.Validation("email is required")
	}
	_, err := c.post(ctx, "/auth/forgot", map[string]string{"email": email})
	return err
}

// VerifyCode checks a reset code.
func (c *Client) VerifyCode(ctx context.Context, email, code string) error {
	if strings.TrimSpace(code) == "" {
		return apperr.Validation("code is required")
	}
	_, err := c.post(ctx, "/auth/verify", map[string]string{"email": email, "code": strings.TrimSpace(code)})
	return err
}

// SetNewPassword completes a reset.
func (c *Client) SetNewPassword(ctx context.Context, email, code, password string) error {
	if password == "" {
		return apperr.Validation("password is required")
	}
	_, err := c.post(ctx, "/auth/reset", map[string]string{"email": email, "code": code, "password": password})
	return err
}

// Health checks that the backend answers.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

// post sends data as JSON and returns the response body.
func (c *Client) post(ctx context.Context, path string, data interface{}) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", apperr.ErrNetworkUnavailable, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", apperr.ErrNetworkUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", apperr.ErrRequestFailed, serverMessage(resp.StatusCode, body))
	}
	return body, nil
}

// serverMessage extracts {"message": "..."} from an error reply.
func serverMessage(status int, body []byte) string {
	var reply struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &reply); err == nil && reply.Message != "" {
		return reply.Message
	}
	return fmt.Sprintf("status %d", status)
}
