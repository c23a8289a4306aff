package domain

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidContact = errors.New("contact needs a phone, name and email")

// Contact is someone who has booked through a conversation before. Their name
// and email seed the next conversation started from the same phone.
type Contact struct {
	Phone     string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ContactRepository interface {
	GetByPhone(ctx context.Context, phone string) (*Contact, error)

	// Upsert creates the contact or replaces the name and email stored for
	// its phone, filling in CreatedAt and UpdatedAt.
	Upsert(ctx context.Context, contact *Contact) error
}
