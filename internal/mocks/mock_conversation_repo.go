package mocks

import (
	"context"

	"github.com/metinatakli/showtime-booking/internal/domain"
)

type MockConversationRepo struct {
	domain.ConversationRepository
	GetFunc    func(ctx context.Context, phone string) (*domain.Conversation, error)
	SaveFunc   func(ctx context.Context, conversation *domain.Conversation) error
	DeleteFunc func(ctx context.Context, phone string) error
}

func (m *MockConversationRepo) Get(ctx context.Context, phone string) (*domain.Conversation, error) {
	return m.GetFunc(ctx, phone)
}

func (m *MockConversationRepo) Save(ctx context.Context, conversation *domain.Conversation) error {
	return m.SaveFunc(ctx, conversation)
}

func (m *MockConversationRepo) Delete(ctx context.Context, phone string) error {
	return m.DeleteFunc(ctx, phone)
}
