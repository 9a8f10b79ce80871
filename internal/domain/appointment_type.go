package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// AppointmentType тип консультации (услуга)
type AppointmentType struct {
	ID              int64
	Names           map[string]string // язык -> название
	Descriptions    map[string]string
	DurationMinutes int
	Price           float64
	Color           string
	AvailableOnline bool
	AvailableOnSite bool
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Name название на языке lang, с fallback на язык по умолчанию и затем на любой
func (t *AppointmentType) Name(lang string) string {
	if n, ok := t.Names[lang]; ok && n != "" {
		return n
	}
	if n, ok := t.Names[DefaultLanguage]; ok && n != "" {
		return n
	}
	langs := make([]string, 0, len(t.Names))
	for l := range t.Names {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	for _, l := range langs {
		if t.Names[l] != "" {
			return t.Names[l]
		}
	}
	return ""
}

// Validate проверяет поля типа консультации
func (t *AppointmentType) Validate() error {
	var problems []string
	if t.Name(DefaultLanguage) == "" {
		problems = append(problems, "name is required")
	}
	if t.DurationMinutes <= 0 || t.DurationMinutes > MaxSlotDurationMinutes {
		problems = append(problems, fmt.Sprintf("duration must be in 1..%d minutes", MaxSlotDurationMinutes))
	}
	if t.Price < 0 {
		problems = append(problems, "price must not be negative")
	}
	if !t.AvailableOnline && !t.AvailableOnSite {
		problems = append(problems, "type must be available online or on site")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(problems, "; "))
	}
	return nil
}
