package reservations

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = fmt.Errorf("reservation not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = fmt.Errorf("access denied: %w", domain.ErrForbidden)

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = fmt.Errorf("reservations: %w", domain.ErrInvalidTransition)

	// ErrReservationStarted возвращается, когда заявитель отменяет уже начавшееся или прошедшее бронирование
	ErrReservationStarted = fmt.Errorf("reservation has already started: %w", domain.ErrInvalidTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reservations: %w", domain.ErrValidationFailed)

	// ErrInternal возвращается, когда хранилище недоступно
	ErrInternal = fmt.Errorf("reservations: %w", domain.ErrRemoteUnavailable)
)

// WarningMeetingLinkMissing онлайн-консультация подтверждена без ссылки на встречу
const WarningMeetingLinkMissing = "meeting_link_missing"
