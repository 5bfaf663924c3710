// Package session holds the client's belief about which user, if any, is
// currently authenticated. The State is a single process-wide resource: the
// auth facade and the account-linking path are its only writers, route guards
// and UI code only read it.
package session

import "sync"

// User is the authenticated user record, the profile returned by the backend
// merged with the token pair that authenticated the profile fetch.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	IsVerified   bool   `json:"is_verified"`
	FirstName    string `json:"first_name"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// State is the authoritative session record. A nil user means signed out.
// Mutations are persisted through the snapshot repo so a restart does not
// require a fresh login while the stored tokens remain valid.
type State struct {
	mu        sync.RWMutex
	user      *User
	snapshots SnapshotRepo
}

// NewState creates a State backed by the given snapshot repo. It does not
// restore the previous snapshot; callers restore through the auth facade so
// the user/credential consistency invariant is checked in one place.
func NewState(snapshots SnapshotRepo) *State {
	return &State{snapshots: snapshots}
}

// User returns a copy of the current user, or nil when signed out.
func (s *State) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SignedIn reports whether a user is currently established.
func (s *State) SignedIn() bool {
	return s.User() != nil
}

// SetUser establishes the session and persists the snapshot.
func (s *State) SetUser(u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
	return s.snapshots.Save(&u)
}

// Clear resets the session to signed out and removes the snapshot. Safe to
// call when already signed out.
func (s *State) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	return s.snapshots.Delete()
}

// restore installs a previously persisted user without re-saving it. Used only
// by the auth facade's session restore.
func (s *State) restore(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// Snapshot loads the persisted user, if any, and installs it as the current
// session. The caller is responsible for validating it against the credential
// store before trusting it.
func (s *State) Snapshot() (*User, error) {
	u, err := s.snapshots.Load()
	if err != nil {
		return nil, err
	}
	s.restore(u)
	return s.User(), nil
}
