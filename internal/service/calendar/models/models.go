package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/pkg/types"
)

// weekOrder порядок дней в ответе: с понедельника
var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// Request модели

// DaySchedule расписание дня недели
type DaySchedule struct {
	Weekday    string  `json:"weekday"` // "monday" ... "sunday"
	Enabled    bool    `json:"enabled"`
	Start      string  `json:"start,omitempty"` // "09:00"
	End        string  `json:"end,omitempty"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// UpdateConfigRequest полная замена настроек календаря.
// Дни, которых нет в запросе, выключаются.
type UpdateConfigRequest struct {
	Days                []DaySchedule `json:"days"`
	SlotDurationMinutes int           `json:"slotDurationMinutes"`
	MinAdvanceHours     int           `json:"minAdvanceHours"`
	MaxAdvanceDays      int           `json:"maxAdvanceDays"` // 0 = без ограничений
	Timezone            string        `json:"timezone"`
}

// ToDomain конвертирует request в domain модель. Ошибки формата времени и дней недели
// возвращаются с domain.ErrConfigurationInvalid.
func (r *UpdateConfigRequest) ToDomain() (*domain.CalendarConfig, error) {
	cfg := &domain.CalendarConfig{
		SlotDurationMinutes: r.SlotDurationMinutes,
		MinAdvanceHours:     r.MinAdvanceHours,
		MaxAdvanceDays:      r.MaxAdvanceDays,
		Timezone:            strings.TrimSpace(r.Timezone),
	}
	if cfg.Timezone == "" {
		cfg.Timezone = domain.DefaultTimezone
	}

	seen := make(map[time.Weekday]bool, len(r.Days))
	for _, d := range r.Days {
		wd, err := ParseWeekday(d.Weekday)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrConfigurationInvalid, err)
		}
		if seen[wd] {
			return nil, fmt.Errorf("%w: duplicate weekday %q", domain.ErrConfigurationInvalid, d.Weekday)
		}
		seen[wd] = true

		day, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfigurationInvalid, d.Weekday, err)
		}
		cfg.Week[wd] = day
	}
	return cfg, nil
}

func (d DaySchedule) toDomain() (domain.DaySchedule, error) {
	out := domain.DaySchedule{Enabled: d.Enabled}

	var err error
	if d.Start != "" {
		if out.Start, err = types.NewTimeStringFromString(d.Start); err != nil {
			return out, err
		}
	}
	if d.End != "" {
		if out.End, err = types.NewTimeStringFromString(d.End); err != nil {
			return out, err
		}
	}
	if d.Enabled && (out.Start.IsZero() || out.End.IsZero()) {
		return out, fmt.Errorf("start and end are required for an enabled day")
	}
	if out.BreakStart, err = parseOptionalTime(d.BreakStart); err != nil {
		return out, err
	}
	if out.BreakEnd, err = parseOptionalTime(d.BreakEnd); err != nil {
		return out, err
	}
	return out, nil
}

func parseOptionalTime(s *string) (*types.TimeString, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := types.NewTimeStringFromString(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseWeekday "monday" -> time.Monday
func ParseWeekday(s string) (time.Weekday, error) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.EqualFold(strings.TrimSpace(s), wd.String()) {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// CreateBlockedDateRequest запрос на блокировку даты
type CreateBlockedDateRequest struct {
	Date       string  `json:"date"` // "2026-12-25"
	Reason     *string `json:"reason,omitempty"`
	Recurrence *string `json:"recurrence,omitempty"` // RRULE, например "FREQ=YEARLY"
}

// AppointmentTypeRequest создание или полная замена типа консультации
type AppointmentTypeRequest struct {
	Names           map[string]string `json:"names"`
	Descriptions    map[string]string `json:"descriptions,omitempty"`
	DurationMinutes int               `json:"durationMinutes"`
	Price           float64           `json:"price"`
	Color           string            `json:"color,omitempty"`
	AvailableOnline bool              `json:"availableOnline"`
	AvailableOnSite bool              `json:"availableOnSite"`
	Active          *bool             `json:"active,omitempty"` // по умолчанию true
}

// ToDomain конвертирует request в domain модель
func (r *AppointmentTypeRequest) ToDomain() *domain.AppointmentType {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &domain.AppointmentType{
		Names:           r.Names,
		Descriptions:    r.Descriptions,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		Color:           strings.TrimSpace(r.Color),
		AvailableOnline: r.AvailableOnline,
		AvailableOnSite: r.AvailableOnSite,
		Active:          active,
	}
}

// Response модели

// CalendarConfigResponse настройки календаря
type CalendarConfigResponse struct {
	Days                []DaySchedule `json:"days"`
	SlotDurationMinutes int           `json:"slotDurationMinutes"`
	MinAdvanceHours     int           `json:"minAdvanceHours"`
	MaxAdvanceDays      int           `json:"maxAdvanceDays"`
	Timezone            string        `json:"timezone"`
	UpdatedAt           *time.Time    `json:"updatedAt,omitempty"`
}

// BlockedDateResponse заблокированная дата
type BlockedDateResponse struct {
	ID         int64     `json:"id"`
	Date       string    `json:"date"`
	Reason     *string   `json:"reason,omitempty"`
	Recurrence *string   `json:"recurrence,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BlockedDateListResponse список заблокированных дат
type BlockedDateListResponse struct {
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
}

// AppointmentTypeResponse тип консультации
type AppointmentTypeResponse struct {
	ID              int64             `json:"id"`
	Name            string            `json:"name"` // на запрошенном языке
	Names           map[string]string `json:"names"`
	Descriptions    map[string]string `json:"descriptions"`
	DurationMinutes int               `json:"durationMinutes"`
	Price           float64           `json:"price"`
	Color           string            `json:"color"`
	AvailableOnline bool              `json:"availableOnline"`
	AvailableOnSite bool              `json:"availableOnSite"`
	Active          bool              `json:"active"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// AppointmentTypeListResponse список типов консультаций
type AppointmentTypeListResponse struct {
	AppointmentTypes []AppointmentTypeResponse `json:"appointmentTypes"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.CalendarConfig) *CalendarConfigResponse {
	if c == nil {
		return nil
	}

	resp := &CalendarConfigResponse{
		Days:                make([]DaySchedule, 0, len(weekOrder)),
		SlotDurationMinutes: c.SlotDurationMinutes,
		MinAdvanceHours:     c.MinAdvanceHours,
		MaxAdvanceDays:      c.MaxAdvanceDays,
		Timezone:            c.Timezone,
	}
	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	for _, wd := range weekOrder {
		day := c.Day(wd)
		dto := DaySchedule{
			Weekday: strings.ToLower(wd.String()),
			Enabled: day.Enabled,
			Start:   day.Start.String(),
			End:     day.End.String(),
		}
		if day.BreakStart != nil {
			s := day.BreakStart.String()
			dto.BreakStart = &s
		}
		if day.BreakEnd != nil {
			s := day.BreakEnd.String()
			dto.BreakEnd = &s
		}
		resp.Days = append(resp.Days, dto)
	}
	return resp
}

// FromDomainBlockedDate конвертирует domain модель в DTO
func FromDomainBlockedDate(b *domain.BlockedDate) *BlockedDateResponse {
	if b == nil {
		return nil
	}
	return &BlockedDateResponse{
		ID:         b.ID,
		Date:       b.Date.Format(domain.DateFormat),
		Reason:     b.Reason,
		Recurrence: b.Recurrence,
		CreatedAt:  b.CreatedAt,
	}
}

// FromDomainBlockedDateList конвертирует список
func FromDomainBlockedDateList(list []*domain.BlockedDate) *BlockedDateListResponse {
	resp := &BlockedDateListResponse{BlockedDates: make([]BlockedDateResponse, 0, len(list))}
	for _, b := range list {
		resp.BlockedDates = append(resp.BlockedDates, *FromDomainBlockedDate(b))
	}
	return resp
}

// FromDomainAppointmentType конвертирует domain модель в DTO
func FromDomainAppointmentType(t *domain.AppointmentType, lang string) *AppointmentTypeResponse {
	if t == nil {
		return nil
	}
	return &AppointmentTypeResponse{
		ID:              t.ID,
		Name:            t.Name(lang),
		Names:           nonNil(t.Names),
		Descriptions:    nonNil(t.Descriptions),
		DurationMinutes: t.DurationMinutes,
		Price:           t.Price,
		Color:           t.Color,
		AvailableOnline: t.AvailableOnline,
		AvailableOnSite: t.AvailableOnSite,
		Active:          t.Active,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// FromDomainAppointmentTypeList конвертирует список
func FromDomainAppointmentTypeList(list []*domain.AppointmentType, lang string) *AppointmentTypeListResponse {
	resp := &AppointmentTypeListResponse{AppointmentTypes: make([]AppointmentTypeResponse, 0, len(list))}
	for _, t := range list {
		resp.AppointmentTypes = append(resp.AppointmentTypes, *FromDomainAppointmentType(t, lang))
	}
	return resp
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
