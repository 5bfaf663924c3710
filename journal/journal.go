// Package journal manages the user's journal entries.
package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mindmate-app/mindmate-client/httpclient"
)

// Entry is a journal entry as the backend stores it. Mood is optional and,
// when present, uses the same 1..5 scale as mood logs.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Mood        *int      `json:"mood,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewEntry is the payload for creating an entry.
type NewEntry struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Mood        *int     `json:"mood,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Update carries partial changes. Nil fields are omitted so the backend keeps
// the stored value.
type Update struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Mood        *int     `json:"mood,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type Service struct {
	api *httpclient.Client
}

func NewService(api *httpclient.Client) *Service {
	return &Service{api: api}
}

func (s *Service) Create(ctx context.Context, draft NewEntry) (*Entry, error) {
	var entry Entry
	if err := s.api.Post(ctx, "/journal/", draft, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Service) All(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := s.api.Get(ctx, "/journal/", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	var entry Entry
	if err := s.api.Get(ctx, "/journal/"+id.String(), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, changes Update) (*Entry, error) {
	var entry Entry
	if err := s.api.Put(ctx, "/journal/"+id.String(), changes, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.api.Delete(ctx, "/journal/"+id.String())
}
