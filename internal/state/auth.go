package state

import "github.com/fentz26/givo/internal/models"

// SetUser replaces the signed-in user and token.
type SetUser struct {
	User  models.User
	Token string
}

// ClearUser signs the user out.
type ClearUser struct{}

// ProfilePatch holds the profile fields UpdateProfile may change.
type ProfilePatch struct {
	Fullname *string
	Email    *string
	Country  *string
}

// UpdateProfile merges Patch into the current user, if any.
type UpdateProfile struct{ Patch ProfilePatch }

func (SetUser) Type() string       { return "auth/setUser" }
func (ClearUser) Type() string     { return "auth/clearUser" }
func (UpdateProfile) Type() string { return "auth/updateProfile" }

// SignedIn reports whether a user is present.
func (s AuthState) SignedIn() bool {
	return s.User != nil
}

func reduceAuth(s AuthState, a Action) AuthState {
	switch a := a.(type) {
	case SetUser:
		u := a.User
		return AuthState{User: &u, Token: a.Token}

	case ClearUser:
		return AuthState{}

	case UpdateProfile:
		if s.User == nil {
			return s
		}
		u := *s.User
		if a.Patch.Fullname != nil {
			u.Fullname = *a.Patch.Fullname
		}
		if a.Patch.Email != nil {
			u.Email = *a.Patch.Email
		}
		if a.Patch.Country != nil {
			u.Country = *a.Patch.Country
		}
		return AuthState{User: &u, Token: s.Token}
	}
	return s
}
