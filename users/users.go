// Package users reads and updates the signed-in user's profile.
package users

import (
	"context"
	"fmt"
	"unicode"

	"github.com/mindmate-app/mindmate-client/httpclient"
	"github.com/mindmate-app/mindmate-client/session"
)

// Profile is the backend's view of the authenticated user.
type Profile struct {
	ID         string `json:"id,omitempty"`
	Email      string `json:"email,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	IsVerified bool   `json:"is_verified,omitempty"`
}

// ProfileUpdate carries the editable fields of a profile.
type ProfileUpdate struct {
	FirstName string `json:"first_name,omitempty"`
}

type Service struct {
	api   *httpclient.Client
	state *session.State
}

func NewService(api *httpclient.Client, state *session.State) *Service {
	return &Service{api: api, state: state}
}

// Me fetches the current profile from the backend.
func (s *Service) Me(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := s.api.Get(ctx, "/user/me", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update pushes profile changes and refreshes the in-memory session user so
// the UI reflects the change without a relogin.
func (s *Service) Update(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	var p Profile
	if err := s.api.Put(ctx, "/user/me", update, &p); err != nil {
		return nil, err
	}
	if current := s.state.User(); current != nil {
		current.FirstName = p.FirstName
		current.Email = p.Email
		current.IsVerified = p.IsVerified
		if err := s.state.SetUser(*current); err != nil {
			return nil, fmt.Errorf("updating session user: %w", err)
		}
	}
	return &p, nil
}

// ValidatePasswordStrength checks a signup password before it is sent to the
// backend: at least 8 characters, mixed case, and at least one digit.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}
