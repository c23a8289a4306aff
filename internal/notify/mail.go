package notify

import (
	"context"

	"github.com/metinatakli/showtime-booking/internal/mailer"
)

const bookingConfirmationTemplate = "booking_confirmation.tmpl"

// MailNotifier emails the customer a confirmation with a line per seat and
// the total. Events without a customer email are skipped.
type MailNotifier struct {
	mailer mailer.Mailer
}

func NewMailNotifier(m mailer.Mailer) *MailNotifier {
	return &MailNotifier{mailer: m}
}

func (n *MailNotifier) BookingConfirmed(ctx context.Context, event BookingConfirmed) error {
	if event.CustomerEmail == "" {
		return nil
	}

	return n.mailer.Send(event.CustomerEmail, bookingConfirmationTemplate, event)
}
