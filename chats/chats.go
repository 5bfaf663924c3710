// Package chats sends messages to the wellbeing assistant and reads back
// conversation history.
package chats

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mindmate-app/mindmate-client/httpclient"
)

// Message roles as the backend reports them.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type sendRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
}

type sendResponse struct {
	Reply string `json:"reply"`
}

type Service struct {
	api *httpclient.Client
}

func NewService(api *httpclient.Client) *Service {
	return &Service{api: api}
}

// Send posts a message into a conversation and returns the assistant's reply.
func (s *Service) Send(ctx context.Context, conversationID uuid.UUID, message string) (string, error) {
	var resp sendResponse
	err := s.api.Post(ctx, "/chat/send", sendRequest{
		ConversationID: conversationID.String(),
		Message:        message,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Reply, nil
}

func (s *Service) Messages(ctx context.Context, conversationID uuid.UUID) ([]Message, error) {
	var messages []Message
	if err := s.api.Get(ctx, "/chat/"+conversationID.String()+"/messages", &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// ExportPDF downloads a conversation transcript as a PDF document.
func (s *Service) ExportPDF(ctx context.Context, conversationID uuid.UUID) ([]byte, error) {
	return s.api.GetBlob(ctx, "/chat/"+conversationID.String()+"/export-pdf")
}
