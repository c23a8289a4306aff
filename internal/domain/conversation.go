package domain

import (
	"context"
	"time"
)

type ConversationStage string

const (
	StageGreeting   ConversationStage = "greeting"
	StageBrowsing   ConversationStage = "browsing"
	StageSelecting  ConversationStage = "selecting"
	StageConfirming ConversationStage = "confirming"
	StageFeedback   ConversationStage = "feedback"
)

func (s ConversationStage) Valid() bool {
	switch s {
	case StageGreeting, StageBrowsing, StageSelecting, StageConfirming, StageFeedback:
		return true
	}

	return false
}

// Conversation holds the slot values collected while chatting with a contact.
type Conversation struct {
	Phone      string            `json:"phone"`
	Stage      ConversationStage `json:"stage"`
	MovieTitle string            `json:"movieTitle,omitempty"`
	ShowtimeID string            `json:"showtimeId,omitempty"`
	Seats      *SeatsRequest     `json:"seats,omitempty"`
	Name       string            `json:"name,omitempty"`
	Email      string            `json:"email,omitempty"`
	BookingID  string            `json:"bookingId,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// MissingBookingSlots lists the slots that must be filled before the
// conversation can be turned into a booking.
func (c *Conversation) MissingBookingSlots() []string {
	var missing []string

	if c.ShowtimeID == "" {
		missing = append(missing, "showtimeId")
	}
	if c.Seats == nil {
		missing = append(missing, "seats")
	}
	if c.Name == "" {
		missing = append(missing, "name")
	}
	if c.Email == "" {
		missing = append(missing, "email")
	}

	return missing
}

type ConversationRepository interface {
	Get(ctx context.Context, phone string) (*Conversation, error)
	Save(ctx context.Context, conversation *Conversation) error
	Delete(ctx context.Context, phone string) error
}
