package domain

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// BlockedDate день, исключенный из доступности независимо от расписания.
// Recurrence - RRULE (RFC 5545), например FREQ=YEARLY для праздников.
type BlockedDate struct {
	ID         int64
	Date       time.Time
	Reason     *string
	Recurrence *string
	CreatedAt  time.Time
}

// Blocks попадает ли день под блокировку
func (b *BlockedDate) Blocks(day time.Time) bool {
	if SameDate(b.Date, day) {
		return true
	}
	if b.Recurrence == nil || *b.Recurrence == "" {
		return false
	}

	rule, err := b.rule()
	if err != nil {
		return false
	}
	start := DateOnly(day)
	occurrences := rule.Between(start, start.AddDate(0, 0, 1), true)
	for _, occ := range occurrences {
		if SameDate(occ, day) {
			return true
		}
	}
	return false
}

// Validate проверяет RRULE
func (b *BlockedDate) Validate() error {
	if b.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidationFailed)
	}
	if b.Recurrence != nil && *b.Recurrence != "" {
		if _, err := b.rule(); err != nil {
			return fmt.Errorf("%w: invalid recurrence: %v", ErrValidationFailed, err)
		}
	}
	return nil
}

func (b *BlockedDate) rule() (*rrule.RRule, error) {
	rule, err := rrule.StrToRRule(*b.Recurrence)
	if err != nil {
		return nil, err
	}
	rule.DTStart(DateOnly(b.Date))
	return rule, nil
}

// IsDateBlocked проверяет день по списку блокировок
func IsDateBlocked(day time.Time, blocked []*BlockedDate) bool {
	for _, b := range blocked {
		if b.Blocks(day) {
			return true
		}
	}
	return false
}

// DateOnly полночь UTC той же календарной даты
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate совпадают ли календарные даты
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
