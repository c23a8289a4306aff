package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/showtime-booking/internal/domain"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("conversation_stage", validateConversationStage)
	validator.RegisterValidation("phone", validatePhone)

	return validator
}

func validateConversationStage(fl validator.FieldLevel) bool {
	return domain.ConversationStage(fl.Field().String()).Valid()
}

// validatePhone accepts E.164 numbers such as +15550001111.
func validatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()

	if len(phone) < 8 || len(phone) > 16 || phone[0] != '+' || phone[1] == '0' {
		return false
	}

	for _, ch := range phone[1:] {
		if ch < '0' || ch > '9' {
			return false
		}
	}

	return true
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", err.Param())
	case "conversation_stage":
		return "must be one of greeting, browsing, selecting, confirming, feedback"
	case "phone":
		return "must be a phone number in international format, e.g. +15550001111"
	default:
		return "is invalid"
	}
}
