package domain

import "errors"

// Классы ошибок. Пакетные sentinel-ошибки оборачивают один из них,
// хендлеры по ним выбирают HTTP статус.
var (
	// ErrConfigurationInvalid конфигурация календаря нарушает инварианты
	ErrConfigurationInvalid = errors.New("configuration invalid")

	// ErrSlotUnavailable слот уже занят или вне окна бронирования
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrValidationFailed отсутствуют или некорректны поля запроса
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidTransition недопустимая смена статуса
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrRemoteUnavailable хранилище или внешний сервис недоступен
	ErrRemoteUnavailable = errors.New("remote unavailable")

	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)
