// Package moods records and reads daily mood logs (a 1..5 scale).
package moods

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mindmate-app/mindmate-client/httpclient"
)

// MinMood and MaxMood bound the mood scale the backend accepts.
const (
	MinMood = 1
	MaxMood = 5
)

// Log is a single mood entry.
type Log struct {
	ID        uuid.UUID `json:"id"`
	Mood      int       `json:"mood"`
	CreatedAt time.Time `json:"created_at"`
}

type Service struct {
	api *httpclient.Client
}

func NewService(api *httpclient.Client) *Service {
	return &Service{api: api}
}

func validMood(mood int) error {
	if mood < MinMood || mood > MaxMood {
		return fmt.Errorf("mood %d out of range %d..%d", mood, MinMood, MaxMood)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, mood int) (*Log, error) {
	if err := validMood(mood); err != nil {
		return nil, err
	}
	var logEntry Log
	if err := s.api.Post(ctx, "/mood/", map[string]int{"mood": mood}, &logEntry); err != nil {
		return nil, err
	}
	return &logEntry, nil
}

func (s *Service) All(ctx context.Context) ([]Log, error) {
	var logs []Log
	if err := s.api.Get(ctx, "/mood/", &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// Latest returns the most recent log, or nil when none has been recorded yet.
func (s *Service) Latest(ctx context.Context) (*Log, error) {
	var logEntry Log
	err := s.api.Get(ctx, "/mood/latest", &logEntry)
	if httpclient.IsStatus(err, 404) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &logEntry, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, mood int) (*Log, error) {
	if err := validMood(mood); err != nil {
		return nil, err
	}
	var logEntry Log
	if err := s.api.Put(ctx, "/mood/"+id.String(), map[string]int{"mood": mood}, &logEntry); err != nil {
		return nil, err
	}
	return &logEntry, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.api.Delete(ctx, "/mood/"+id.String())
}
