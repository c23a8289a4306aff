package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2/memstore"
	"github.com/metinatakli/showtime-booking/api"
	"github.com/metinatakli/showtime-booking/internal/booking"
	"github.com/metinatakli/showtime-booking/internal/conversation"
	"github.com/metinatakli/showtime-booking/internal/domain"
	"github.com/metinatakli/showtime-booking/internal/mocks"
	"github.com/metinatakli/showtime-booking/internal/notify"
	"github.com/metinatakli/showtime-booking/internal/repository"
	"github.com/metinatakli/showtime-booking/internal/validator"
)

// newTestApplication wires an application against an in-memory inventory, an
// in-memory conversation store backed by an in-memory contact book and a
// mocked catalog. The booking coordinator is built last so options can swap
// the inventory.
func newTestApplication(opts ...func(*Application)) *Application {
	contacts := newContactBook()

	app := &Application{
		config:        Config{Env: "test"},
		validator:     validator.NewValidator(),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		inventory:     repository.NewMemoryInventoryStore(),
		catalog:       &mocks.MockCatalogRepo{},
		conversations: conversation.NewStore(memstore.NewWithCleanupInterval(0), contacts, 0),
		contacts:      contacts,
		notifier:      notify.Nop{},
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.booker == nil {
		app.booker = booking.NewCoordinator(app.inventory, app.logger, 0)
	}

	return app
}

// newContactBook returns a contact repository that keeps contacts in a map.
func newContactBook() *mocks.MockContactRepo {
	contacts := make(map[string]domain.Contact)

	return &mocks.MockContactRepo{
		GetByPhoneFunc: func(ctx context.Context, phone string) (*domain.Contact, error) {
			contact, ok := contacts[phone]
			if !ok {
				return nil, domain.ErrRecordNotFound
			}

			return &contact, nil
		},
		UpsertFunc: func(ctx context.Context, contact *domain.Contact) error {
			contacts[contact.Phone] = *contact
			return nil
		},
	}
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader = http.NoBody

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
