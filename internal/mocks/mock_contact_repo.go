package mocks

import (
	"context"

	"github.com/metinatakli/showtime-booking/internal/domain"
)

type MockContactRepo struct {
	domain.ContactRepository
	GetByPhoneFunc func(ctx context.Context, phone string) (*domain.Contact, error)
	UpsertFunc     func(ctx context.Context, contact *domain.Contact) error
}

func (m *MockContactRepo) GetByPhone(ctx context.Context, phone string) (*domain.Contact, error) {
	return m.GetByPhoneFunc(ctx, phone)
}

func (m *MockContactRepo) Upsert(ctx context.Context, contact *domain.Contact) error {
	return m.UpsertFunc(ctx, contact)
}
