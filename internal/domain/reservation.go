package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ConsultingService/pkg/types"
)

// ReservationStatus статус бронирования
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusNoShow    ReservationStatus = "no_show"
)

// AllStatuses порядок колонок на доске бронирований
var AllStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// IsValid проверяет, что статус известен
func (s ReservationStatus) IsValid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// IsTerminal из терминального статуса переходов нет
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

// Reservation бронирование консультации
type Reservation struct {
	ID     int64
	UserID *string // subject из identity provider, если заявитель был авторизован

	RequesterName  string
	RequesterEmail string
	RequesterPhone *string

	AppointmentTypeID int64
	ServiceName       string // денормализовано на момент бронирования

	Date            time.Time // только дата
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int

	Status          ReservationStatus
	AssignedStaffID *string
	MeetingLink     *string
	Fee             float64 // цена типа на момент бронирования
	Online          bool

	Notes         *string // видны клиенту
	InternalNotes *string // только для сотрудников

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksSlot занимает ли бронирование слот в сетке.
// Слот освобождает только отмена.
func (r *Reservation) BlocksSlot() bool {
	return r.Status != StatusCancelled
}

// StartsAt момент начала в часовом поясе календаря
func (r *Reservation) StartsAt(loc *time.Location) time.Time {
	return r.StartTime.On(r.Date, loc)
}

// IsOwnedBy принадлежит ли бронирование пользователю (по subject или email)
func (r *Reservation) IsOwnedBy(identity Identity) bool {
	if identity.UserID != "" && r.UserID != nil && *r.UserID == identity.UserID {
		return true
	}
	return identity.Email != "" && strings.EqualFold(identity.Email, r.RequesterEmail)
}

// NeedsMeetingLink онлайн-консультация без ссылки на встречу
func (r *Reservation) NeedsMeetingLink() bool {
	return r.Online && (r.MeetingLink == nil || strings.TrimSpace(*r.MeetingLink) == "")
}

// ReservationFilter фильтр для списка бронирований
type ReservationFilter struct {
	DateFrom *time.Time          // включительно
	DateTo   *time.Time          // включительно
	Statuses []ReservationStatus // пусто - все статусы
	UserID   *string
	Email    *string
}

// ReservationDetailsPatch изменяемые администратором поля (nil - не менять)
type ReservationDetailsPatch struct {
	MeetingLink     *string
	Fee             *float64
	Notes           *string
	InternalNotes   *string
	AssignedStaffID *string
}

// IsEmpty нет ни одного изменения
func (p *ReservationDetailsPatch) IsEmpty() bool {
	return p.MeetingLink == nil && p.Fee == nil && p.Notes == nil &&
		p.InternalNotes == nil && p.AssignedStaffID == nil
}
