package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/fentz26/givo/internal/apperr"
	"github.com/fentz26/givo/internal/models"
	"github.com/fentz26/givo/internal/state"
)

// Backend is the subset of Client used by Manager.
type Backend interface {
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	SignUp(ctx context.Context, req SignUpRequest) error
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) error
	SetNewPassword(ctx context.Context, email, code, password string) error
}

// Manager handles sign-in state. The session itself lives in the state
// container so it is saved with the snapshot.
type Manager struct {
	backend Backend
	state   *state.Store
}

// NewManager creates a new auth manager.
func NewManager(backend Backend, st *state.Store) *Manager {
	return &Manager{backend: backend, state: st}
}

// IsAuthenticated reports whether a user is signed in.
func (m *Manager) IsAuthenticated() bool {
	return m.state.GetState().Auth.SignedIn()
}

// GetUser returns the signed-in user, or nil.
func (m *Manager) GetUser() *models.User {
	u := m.state.GetState().Auth.User
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

// Token returns the session token, empty when signed out.
func (m *Manager) Token() string {
	return m.state.GetState().Auth.Token
}

// Login signs in and stores the session.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	res, err := m.backend.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	user := models.User{ID: res.ID, Fullname: res.Fullname, Email: res.Email, Country: res.Country}
	m.state.Dispatch(state.SetUser{User: user, Token: res.Token})
	return &user, nil
}

// Register creates an account. It does not sign in.
func (m *Manager) Register(ctx context.Context, req SignUpRequest) error {
	return m.backend.SignUp(ctx, req)
}

// Logout clears the session.
func (m *Manager) Logout() {
	m.state.Dispatch(state.ClearUser{})
}

// UpdateProfile edits the signed-in user's profile locally.
func (m *Manager) UpdateProfile(patch state.ProfilePatch) error {
	if !m.IsAuthenticated() {
		return apperr.Validation("not signed in")
	}
	if patch.Email != nil && strings.TrimSpace(*patch.Email) == "" {
		return apperr.Validation("email cannot be empty")
	}
	m.state.Dispatch(state.UpdateProfile{Patch: patch})
	return nil
}

// PasswordReset carries the email and code between the steps of a reset.
type PasswordReset struct {
	backend Backend

	mu    sync.Mutex
	email string
	code  string
}

// NewPasswordReset starts an empty reset flow.
func (m *Manager) NewPasswordReset() *PasswordReset {
	return &PasswordReset{backend: m.backend}
}

// Request sends a reset code to email and remembers it.
func (p *PasswordReset) Request(ctx context.Context, email string) error {
	if err := p.backend.RequestPasswordReset(ctx, email); err != nil {
		return err
	}
	p.mu.Lock()
	p.email = strings.TrimSpace(email)
	p.code = ""
	p.mu.Unlock()
	return nil
}

// Verify checks code against the remembered email.
func (p *PasswordReset) Verify(ctx context.Context, code string) error {
	p.mu.Lock()
	email := p.email
	p.mu.Unlock()
	if email == "" {
		return apperr.Validation("request a reset code first")
	}
	if err := p.backend.VerifyCode(ctx, email, code); err != nil {
		return err
	}
	p.mu.Lock()
	p.code = strings.TrimSpace(code)
	p.mu.Unlock()
	return nil
}

// Complete sets the new password and clears the flow.
func (p *PasswordReset) Complete(ctx context.Context, password string) error {
	p.mu.Lock()
	email, code := p.email, p.code
	p.mu.Unlock()
	if email == "" || code == "" {
		return apperr.Validation("verify your reset code first")
	}
	if err := p.backend.SetNewPassword(ctx, email, code, password); err != nil {
		return err
	}
	p.Clear()
	return nil
}

// Email returns the email the flow is for.
func (p *PasswordReset) Email() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.email
}

// Clear forgets the email and code.
func (p *PasswordReset) Clear() {
	p.mu.Lock()
	p.email, p.code = "", ""
	p.mu.Unlock()
}
