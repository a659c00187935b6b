package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/fentz26/givo/internal/apperr"
	"github.com/fentz26/givo/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records requests and replies per path.
type fakeBackend struct {
	mu       sync.Mutex
	requests map[string]map[string]string
	status   map[string]int
	reply    map[string]interface{}
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	fb := &fakeBackend{
		requests: make(map[string]map[string]string),
		status:   make(map[string]int),
		reply:    make(map[string]interface{}),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)

		fb.mu.Lock()
		fb.requests[r.URL.Path] = body
		status, ok := fb.status[r.URL.Path]
		reply := fb.reply[r.URL.Path]
		fb.mu.Unlock()

		if !ok {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if reply != nil {
			json.NewEncoder(w).Encode(reply)
		}
	}))
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBackend) respond(path string, status int, reply interface{}) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if status == 0 {
		delete(fb.status, path)
	} else {
		fb.status[path] = status
	}
	fb.reply[path] = reply
}

func (fb *fakeBackend) request(path string) map[string]string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.requests[path]
}

func (fb *fakeBackend) count() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.requests)
}

func TestSignIn(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.respond("/auth/signin", 0, map[string]string{"id": "u1", "fullname": "Ann", "token": "tok"})
	c := NewClient(srv.URL+"/", time.Second)

	res, err := c.SignIn(context.Background(), " a@b.com ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u1", res.ID)
	assert.Equal(t, "a@b.com", res.Email)
	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, "pw", fb.request("/auth/signin")["password"])
}

func TestSignInGeneratesMissingID(t *testing.T) {
	_, srv := newFakeBackend(t)
	c := NewClient(srv.URL, time.Second)

	res, err := c.SignIn(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Empty(t, res.Token)
}

func TestSignInRejected(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.respond("/auth/signin", http.StatusUnauthorized, map[string]string{"message": "bad password"})
	c := NewClient(srv.URL, time.Second)

	_, err := c.SignIn(context.Background(), "a@b.com", "nope")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "bad password")
	assert.Equal(t, "Invalid email or password.", apperr.Message(err))
}

func TestValidationBeforeNetwork(t *testing.T) {
	fb, srv := newFakeBackend(t)
	c := NewClient(srv.URL, time.Second)
	ctx := context.Background()

	_, err := c.SignIn(ctx, "", "pw")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.ErrorIs(t, c.SignUp(ctx, SignUpRequest{Email: "a@b.com", Password: "pw"}), apperr.ErrValidation)
	assert.ErrorIs(t, c.RequestPasswordReset(ctx, " "), apperr.ErrValidation)
	assert.Zero(t, fb.count())
}

func TestNetworkUnavailable(t *testing.T) {
	_, srv := newFakeBackend(t)
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second)
	_, err := c.SignIn(context.Background(), "a@b.com", "pw")
	assert.ErrorIs(t, err, apperr.ErrNetworkUnavailable)
	assert.NotErrorIs(t, err, apperr.ErrInvalidCredentials)
	assert.ErrorIs(t, c.Health(context.Background()), apperr.ErrNetworkUnavailable)
}

func TestSignUpFailureCarriesServerMessage(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.respond("/auth/signup", http.StatusConflict, map[string]string{"message": "email taken"})
	c := NewClient(srv.URL, time.Second)

	err := c.SignUp(context.Background(), SignUpRequest{Fullname: "Ann", Email: "a@b.com", Password: "pw"})
	assert.ErrorIs(t, err, apperr.ErrRequestFailed)
	assert.Contains(t, err.Error(), "email taken")
}

func TestManagerSession(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.respond("/auth/signin", 0, map[string]string{"id": "1", "token": "tok"})
	st := state.New(state.DefaultState())
	m := NewManager(NewClient(srv.URL, time.Second), st)

	assert.False(t, m.IsAuthenticated())
	assert.ErrorIs(t, m.UpdateProfile(state.ProfilePatch{}), apperr.ErrValidation)

	user, err := m.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "1", user.ID)
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "tok", m.Token())

	name := "Ann"
	require.NoError(t, m.UpdateProfile(state.ProfilePatch{Fullname: &name}))
	assert.Equal(t, "Ann", m.GetUser().Fullname)

	m.Logout()
	assert.Nil(t, m.GetUser())
	assert.Empty(t, m.Token())
}

func TestPasswordResetFlow(t *testing.T) {
	fb, srv := newFakeBackend(t)
	m := NewManager(NewClient(srv.URL, time.Second), state.New(state.DefaultState()))
	ctx := context.Background()
	reset := m.NewPasswordReset()

	assert.ErrorIs(t, reset.Verify(ctx, "123"), apperr.ErrValidation)
	assert.ErrorIs(t, reset.Complete(ctx, "new"), apperr.ErrValidation)

	require.NoError(t, reset.Request(ctx, "a@b.com"))
	assert.Equal(t, "a@b.com", reset.Email())

	fb.respond("/auth/verify", http.StatusBadRequest, nil)
	assert.ErrorIs(t, reset.Verify(ctx, "000"), apperr.ErrRequestFailed)
	assert.ErrorIs(t, reset.Complete(ctx, "new"), apperr.ErrValidation, "an unverified code cannot complete")

	fb.respond("/auth/verify", 0, nil)
	require.NoError(t, reset.Verify(ctx, "123"))
	require.NoError(t, reset.Complete(ctx, "new"))

	got := fb.request("/auth/reset")
	assert.Equal(t, map[string]string{"email": "a@b.com", "code": "123", "password": "new"}, got)
	assert.Empty(t, reset.Email())
}
