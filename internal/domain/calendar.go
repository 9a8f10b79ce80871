package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ConsultingService/pkg/ptr"
	"github.com/m04kA/SMC-ConsultingService/pkg/types"
)

// DaySchedule рабочие часы одного дня недели
type DaySchedule struct {
	Enabled    bool
	Start      types.TimeString
	End        types.TimeString
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
}

// HasBreak задан ли перерыв
func (d DaySchedule) HasBreak() bool {
	return d.BreakStart != nil && d.BreakEnd != nil
}

// CalendarConfig настройки календаря (одна запись на сервис).
// Week индексируется time.Weekday: 0 - воскресенье.
type CalendarConfig struct {
	Week                [7]DaySchedule
	SlotDurationMinutes int
	MinAdvanceHours     int
	MaxAdvanceDays      int // 0 = unlimited
	Timezone            string
	UpdatedAt           time.Time
}

// DefaultCalendarConfig Пн-Пт 09:00-17:00, перерыв 12:00-13:00
func DefaultCalendarConfig() *CalendarConfig {
	cfg := &CalendarConfig{
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		MinAdvanceHours:     DefaultMinAdvanceHours,
		MaxAdvanceDays:      DefaultMaxAdvanceDays,
		Timezone:            DefaultTimezone,
	}
	for wd := time.Monday; wd <= time.Friday; wd++ {
		cfg.Week[wd] = DaySchedule{
			Enabled:    true,
			Start:      types.MustTimeString("09:00"),
			End:        types.MustTimeString("17:00"),
			BreakStart: ptr.Ptr(types.MustTimeString("12:00")),
			BreakEnd:   ptr.Ptr(types.MustTimeString("13:00")),
		}
	}
	for _, wd := range []time.Weekday{time.Saturday, time.Sunday} {
		cfg.Week[wd] = DaySchedule{
			Start: types.MustTimeString("09:00"),
			End:   types.MustTimeString("17:00"),
		}
	}
	return cfg
}

// Day расписание для дня недели
func (c *CalendarConfig) Day(wd time.Weekday) DaySchedule {
	return c.Week[wd]
}

// HasHorizon ограничено ли бронирование вперед
func (c *CalendarConfig) HasHorizon() bool {
	return c.MaxAdvanceDays > 0
}

// Location часовой пояс календаря. Некорректный пояс отсекается Validate, здесь fallback на UTC.
func (c *CalendarConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Validate проверяет инварианты конфигурации. Все нарушения собираются в одну ошибку.
func (c *CalendarConfig) Validate() error {
	var problems []string

	if c.SlotDurationMinutes < MinSlotDurationMinutes || c.SlotDurationMinutes > MaxSlotDurationMinutes {
		problems = append(problems, fmt.Sprintf("slot duration must be in %d..%d minutes",
			MinSlotDurationMinutes, MaxSlotDurationMinutes))
	}
	if c.MinAdvanceHours < 0 || c.MinAdvanceHours > MaxMinAdvanceHours {
		problems = append(problems, fmt.Sprintf("min advance must be in 0..%d hours", MaxMinAdvanceHours))
	}
	if c.MaxAdvanceDays < 0 || c.MaxAdvanceDays > MaxMaxAdvanceDays {
		problems = append(problems, fmt.Sprintf("max advance must be in 0..%d days", MaxMaxAdvanceDays))
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			problems = append(problems, fmt.Sprintf("unknown timezone %q", c.Timezone))
		}
	}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day := c.Week[wd]
		if !day.Enabled {
			continue
		}
		name := strings.ToLower(wd.String())
		if err := day.Start.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("%s: invalid start %q", name, day.Start))
			continue
		}
		if err := day.End.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("%s: invalid end %q", name, day.End))
			continue
		}
		if !day.Start.IsBefore(day.End) {
			problems = append(problems, fmt.Sprintf("%s: start must be before end", name))
			continue
		}

		if (day.BreakStart == nil) != (day.BreakEnd == nil) {
			problems = append(problems, fmt.Sprintf("%s: break start and end must be set together", name))
			continue
		}
		if !day.HasBreak() {
			continue
		}
		if day.BreakStart.Validate() != nil || day.BreakEnd.Validate() != nil {
			problems = append(problems, fmt.Sprintf("%s: invalid break time", name))
			continue
		}
		if !day.BreakStart.IsBefore(*day.BreakEnd) {
			problems = append(problems, fmt.Sprintf("%s: break start must be before break end", name))
			continue
		}
		if day.BreakStart.IsBefore(day.Start) || day.BreakEnd.IsAfter(day.End) {
			problems = append(problems, fmt.Sprintf("%s: break must be within working hours", name))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigurationInvalid, strings.Join(problems, "; "))
	}
	return nil
}
