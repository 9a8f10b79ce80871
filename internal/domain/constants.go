package domain

// Значения календаря по умолчанию (если настройки еще не сохранялись)
const (
	DefaultSlotDurationMinutes = 60
	DefaultMinAdvanceHours     = 24
	DefaultMaxAdvanceDays      = 30 // 0 = без ограничения
	DefaultTimezone            = "UTC"
	DefaultLanguage            = "en"
)

// Ограничения бизнес-валидации
const (
	MinSlotDurationMinutes      = 1
	MaxSlotDurationMinutes      = 480 // 8 hours
	MaxMinAdvanceHours          = 720 // 30 days
	MaxMaxAdvanceDays           = 365
	MaxNotesLength              = 2000
	MaxCancellationReasonLength = 500
	MaxNameLength               = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
