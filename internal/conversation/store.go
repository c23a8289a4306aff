// Package conversation keeps the slot values collected while chatting with a
// contact, keyed by phone number. Entries expire after a period without
// updates.
package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/metinatakli/showtime-booking/internal/domain"
)

const DefaultIdleTimeout = 20 * time.Minute

// Store persists conversations through an scs.Store, so any of the scs
// backends (Redis, memory) can hold them. New conversations are prefilled
// from contacts when one is given.
type Store struct {
	store       scs.Store
	contacts    domain.ContactRepository
	idleTimeout time.Duration
	now         func() time.Time
}

func NewStore(store scs.Store, contacts domain.ContactRepository, idleTimeout time.Duration) *Store {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}

	return &Store{
		store:       store,
		contacts:    contacts,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Get returns the conversation for phone, starting a new one at the greeting
// stage on first contact. A returning contact's new conversation starts with
// their name and email already filled.
func (s *Store) Get(ctx context.Context, phone string) (*domain.Conversation, error) {
	b, found, err := s.find(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	if found {
		var c domain.Conversation
		if err := json.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("failed to decode conversation: %w", err)
		}

		return &c, nil
	}

	now := s.now().UTC()
	c := &domain.Conversation{
		Phone:     phone,
		Stage:     domain.StageGreeting,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.prefill(ctx, c); err != nil {
		return nil, err
	}

	if err := s.commit(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Save stores c and pushes its expiry out by the idle timeout.
func (s *Store) Save(ctx context.Context, c *domain.Conversation) error {
	c.UpdatedAt = s.now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = c.UpdatedAt
	}

	return s.commit(ctx, c)
}

func (s *Store) Delete(ctx context.Context, phone string) error {
	var err error

	if cs, ok := s.store.(scs.CtxStore); ok {
		err = cs.DeleteCtx(ctx, phone)
	} else {
		err = s.store.Delete(phone)
	}

	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}

	return nil
}

func (s *Store) prefill(ctx context.Context, c *domain.Conversation) error {
	if s.contacts == nil {
		return nil
	}

	contact, err := s.contacts.GetByPhone(ctx, c.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil
		}

		return fmt.Errorf("failed to load contact: %w", err)
	}

	c.Name = contact.Name
	c.Email = contact.Email

	return nil
}

func (s *Store) find(ctx context.Context, phone string) ([]byte, bool, error) {
	if cs, ok := s.store.(scs.CtxStore); ok {
		return cs.FindCtx(ctx, phone)
	}

	return s.store.Find(phone)
}

func (s *Store) commit(ctx context.Context, c *domain.Conversation) error {
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode conversation: %w", err)
	}

	expiry := s.now().Add(s.idleTimeout)

	if cs, ok := s.store.(scs.CtxStore); ok {
		err = cs.CommitCtx(ctx, c.Phone, b, expiry)
	} else {
		err = s.store.Commit(c.Phone, b, expiry)
	}

	if err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}

	return nil
}
