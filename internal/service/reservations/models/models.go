package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
)

// Request модели

// ListRequest фильтр списка бронирований администратора
type ListRequest struct {
	DateFrom *time.Time `json:"dateFrom,omitempty"`
	DateTo   *time.Time `json:"dateTo,omitempty"`
	Statuses []string   `json:"statuses,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		DateFrom: r.DateFrom,
		DateTo:   r.DateTo,
	}
	if r.DateFrom != nil && r.DateTo != nil && r.DateTo.Before(*r.DateFrom) {
		return filter, fmt.Errorf("dateTo is before dateFrom")
	}
	for _, s := range r.Statuses {
		status, err := ToDomainStatus(s)
		if err != nil {
			return filter, err
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	return filter, nil
}

// TransitionRequest смена статуса
type TransitionRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"` // причина отмены
}

// UpdateDetailsRequest правка полей бронирования администратором
type UpdateDetailsRequest struct {
	MeetingLink     *string  `json:"meetingLink,omitempty"`
	Fee             *float64 `json:"fee,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
	InternalNotes   *string  `json:"internalNotes,omitempty"`
	AssignedStaffID *string  `json:"assignedStaffId,omitempty"`
}

// ToDomainPatch конвертирует request в patch
func (r *UpdateDetailsRequest) ToDomainPatch() domain.ReservationDetailsPatch {
	return domain.ReservationDetailsPatch{
		MeetingLink:     r.MeetingLink,
		Fee:             r.Fee,
		Notes:           r.Notes,
		InternalNotes:   r.InternalNotes,
		AssignedStaffID: r.AssignedStaffID,
	}
}

// Response модели

// ReservationResponse бронирование для клиента и админки
type ReservationResponse struct {
	ID                int64   `json:"id"`
	UserID            *string `json:"userId,omitempty"`
	RequesterName     string  `json:"requesterName"`
	RequesterEmail    string  `json:"requesterEmail"`
	RequesterPhone    *string `json:"requesterPhone,omitempty"`
	AppointmentTypeID int64   `json:"appointmentTypeId"`
	ServiceName       string  `json:"serviceName"`
	Date              string  `json:"date"`      // "2026-10-19"
	StartTime         string  `json:"startTime"` // "14:00"
	EndTime           string  `json:"endTime"`
	DurationMinutes   int     `json:"durationMinutes"`
	Status            string  `json:"status"`
	AssignedStaffID   *string `json:"assignedStaffId,omitempty"`
	MeetingLink       *string `json:"meetingLink,omitempty"`
	Fee               float64 `json:"fee"`
	Online            bool    `json:"online"`
	Notes             *string `json:"notes,omitempty"`
	InternalNotes     *string `json:"internalNotes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	// Доступные администратору переходы
	AllowedTransitions []string `json:"allowedTransitions"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// BoardColumn колонка канбан-доски
type BoardColumn struct {
	Status       string                `json:"status"`
	Reservations []ReservationResponse `json:"reservations"`
}

// BoardResponse доска бронирований по статусам
type BoardResponse struct {
	Columns []BoardColumn `json:"columns"`
}

// TransitionResponse результат смены статуса.
// При ошибке Reservation содержит текущее состояние записи на сервере.
type TransitionResponse struct {
	Reservation *ReservationResponse `json:"reservation"`
	Warnings    []string             `json:"warnings,omitempty"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO.
// Внутренние заметки видны только администратору.
func FromDomainReservation(r *domain.Reservation, forAdmin bool) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		RequesterName:      r.RequesterName,
		RequesterEmail:     r.RequesterEmail,
		RequesterPhone:     r.RequesterPhone,
		AppointmentTypeID:  r.AppointmentTypeID,
		ServiceName:        r.ServiceName,
		Date:               r.Date.Format(domain.DateFormat),
		StartTime:          r.StartTime.String(),
		EndTime:            r.EndTime.String(),
		DurationMinutes:    r.DurationMinutes,
		Status:             string(r.Status),
		AssignedStaffID:    r.AssignedStaffID,
		MeetingLink:        r.MeetingLink,
		Fee:                r.Fee,
		Online:             r.Online,
		Notes:              r.Notes,
		CancellationReason: r.CancellationReason,
		AllowedTransitions: []string{},
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if forAdmin {
		resp.InternalNotes = r.InternalNotes
		for _, st := range domain.AllowedTransitions(r.Status, domain.ActorAdmin) {
			resp.AllowedTransitions = append(resp.AllowedTransitions, string(st))
		}
	} else {
		for _, st := range domain.AllowedTransitions(r.Status, domain.ActorRequester) {
			resp.AllowedTransitions = append(resp.AllowedTransitions, string(st))
		}
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список
func FromDomainReservationList(list []*domain.Reservation, forAdmin bool) *ReservationListResponse {
	resp := &ReservationListResponse{Reservations: make([]ReservationResponse, 0, len(list))}
	for _, r := range list {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r, forAdmin))
	}
	return resp
}

// NewBoard раскладывает бронирования по колонкам в порядке статусов
func NewBoard(list []*domain.Reservation) *BoardResponse {
	byStatus := make(map[domain.ReservationStatus][]ReservationResponse, len(domain.AllStatuses))
	for _, r := range list {
		byStatus[r.Status] = append(byStatus[r.Status], *FromDomainReservation(r, true))
	}

	board := &BoardResponse{Columns: make([]BoardColumn, 0, len(domain.AllStatuses))}
	for _, st := range domain.AllStatuses {
		items := byStatus[st]
		if items == nil {
			items = []ReservationResponse{}
		}
		board.Columns = append(board.Columns, BoardColumn{Status: string(st), Reservations: items})
	}
	return board
}

// ToDomainStatus конвертирует строку в статус
func ToDomainStatus(s string) (domain.ReservationStatus, error) {
	status := domain.ReservationStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return status, nil
}
