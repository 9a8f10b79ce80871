package create_reservation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
)

// validateSlotRequest проверяет, что дата и время указаны корректно
func validateSlotRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	return nil
}

// validateRequester проверяет данные заявителя
func validateRequester(req *Request) error {
	name := strings.TrimSpace(req.RequesterName)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.RequesterEmail)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !IsValidEmail(email) {
		return fmt.Errorf("%w: email %q is not valid", ErrInvalidInput, email)
	}

	if req.AppointmentTypeID <= 0 {
		return fmt.Errorf("%w: appointment type is required", ErrInvalidInput)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// IsValidEmail синтаксическая проверка адреса. Форма "Имя <addr>" не принимается.
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && strings.Contains(email[strings.LastIndex(email, "@")+1:], ".")
}
