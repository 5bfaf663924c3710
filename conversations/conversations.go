// Package conversations manages the chat conversation list.
package conversations

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	"github.com/mindmate-app/mindmate-client/httpclient"
)

type Conversation struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type Service struct {
	api *httpclient.Client
}

func NewService(api *httpclient.Client) *Service {
	return &Service{api: api}
}

func (s *Service) List(ctx context.Context) ([]Conversation, error) {
	var convs []Conversation
	if err := s.api.Get(ctx, "/conversations/", &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

func (s *Service) Create(ctx context.Context) (*Conversation, error) {
	var conv Conversation
	if err := s.api.Post(ctx, "/conversations/", nil, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// Rename updates a conversation title. The backend takes the new title as a
// query parameter, not a body.
func (s *Service) Rename(ctx context.Context, id uuid.UUID, title string) error {
	path := "/conversations/" + id.String() + "?title=" + url.QueryEscape(title)
	return s.api.Patch(ctx, path, nil, nil)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.api.Delete(ctx, "/conversations/"+id.String())
}
