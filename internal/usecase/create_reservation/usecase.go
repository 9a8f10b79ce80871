package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/internal/infra/changefeed"
	appointmentTypeRepo "github.com/m04kA/SMC-ConsultingService/internal/infra/storage/appointment_type"
	"github.com/m04kA/SMC-ConsultingService/internal/usecase/get_available_slots"
)

// UseCase use case создания бронирования с повторной проверкой слота
type UseCase struct {
	availability        AvailabilityCalculator
	reservationRepo     ReservationRepository
	appointmentTypeRepo AppointmentTypeRepository
	publisher           Publisher
	metrics             Metrics
	timeProvider        TimeProvider
	logger              Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availability AvailabilityCalculator,
	reservationRepo ReservationRepository,
	appointmentTypeRepo AppointmentTypeRepository,
	publisher Publisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability:        availability,
		reservationRepo:     reservationRepo,
		appointmentTypeRepo: appointmentTypeRepo,
		publisher:           publisher,
		metrics:             nopMetrics{},
		timeProvider:        &RealTimeProvider{},
		logger:              logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// WithMetrics подключает метрики исходов бронирования
func (uc *UseCase) WithMetrics(m Metrics) *UseCase {
	uc.metrics = m
	return uc
}

// Execute выполняет попытку бронирования.
//
// Проверки идут по порядку до первой ошибки: слот есть в только что пересчитанном
// списке, слот укладывается в окно бронирования, данные заявителя корректны.
// Блокировки нет: два одновременных запроса на один слот могут пройти оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	res, err := uc.execute(ctx, req)
	uc.metrics.IncReservationAttempt(outcomeOf(err))
	if err != nil {
		return nil, err
	}
	return &Response{Reservation: res}, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Reservation, error) {
	// 1. Дата и время должны быть указаны
	if err := validateSlotRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	uc.logger.Info("CreateReservation: date=%s, time=%s, type=%d",
		date.Format(domain.DateFormat), req.StartTime, req.AppointmentTypeID)

	// 2. Свежий пересчет доступности
	availability, err := uc.availability.Execute(ctx, &get_available_slots.Request{Date: date})
	if err != nil {
		return nil, mapAvailabilityError(err)
	}

	now := uc.timeProvider.Now()
	cfg := availability.Config

	// 3. Слот должен присутствовать в пересчитанном списке
	if !get_available_slots.IsSlotAvailable(req.StartTime, availability.Slots) {
		if cfg != nil && !get_available_slots.WithinBookingWindow(date, req.StartTime, cfg, now) {
			uc.logger.Warn("CreateReservation: slot %s on %s is outside the booking window",
				req.StartTime, date.Format(domain.DateFormat))
			return nil, ErrOutsideBookingWindow
		}
		uc.logger.Warn("CreateReservation: slot %s on %s is not available",
			req.StartTime, date.Format(domain.DateFormat))
		return nil, ErrSlotTaken
	}

	// 4. Политика бронирования на момент отправки формы
	if cfg != nil && !get_available_slots.WithinBookingWindow(date, req.StartTime, cfg, now) {
		uc.logger.Warn("CreateReservation: slot %s on %s violates booking policy at submission",
			req.StartTime, date.Format(domain.DateFormat))
		return nil, ErrOutsideBookingWindow
	}

	// 5. Данные заявителя и тип консультации
	if err := validateRequester(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	appointmentType, err := uc.appointmentTypeRepo.GetByID(ctx, req.AppointmentTypeID)
	if err != nil {
		if errors.Is(err, appointmentTypeRepo.ErrAppointmentTypeNotFound) {
			uc.logger.Warn("CreateReservation: appointment type id=%d not found", req.AppointmentTypeID)
			return nil, ErrAppointmentTypeNotFound
		}
		uc.logger.Error("CreateReservation: failed to get appointment type id=%d: %v", req.AppointmentTypeID, err)
		return nil, fmt.Errorf("%w: failed to get appointment type: %v", ErrStorage, err)
	}
	if !appointmentType.Active {
		uc.logger.Warn("CreateReservation: appointment type id=%d is not active", req.AppointmentTypeID)
		return nil, ErrAppointmentTypeInactive
	}

	// 6. Собираем бронирование, цена и формат фиксируются на момент записи
	endTime, err := req.StartTime.AddMinutes(appointmentType.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateReservation: slot %s + %d minutes crosses midnight", req.StartTime, appointmentType.DurationMinutes)
		return nil, fmt.Errorf("%w: reservation must end within the day", ErrInvalidInput)
	}

	reservation := &domain.Reservation{
		UserID:            req.UserID,
		RequesterName:     strings.TrimSpace(req.RequesterName),
		RequesterEmail:    strings.TrimSpace(req.RequesterEmail),
		RequesterPhone:    req.RequesterPhone,
		AppointmentTypeID: appointmentType.ID,
		ServiceName:       appointmentType.Name(req.Language),
		Date:              date,
		StartTime:         req.StartTime,
		EndTime:           endTime,
		DurationMinutes:   appointmentType.DurationMinutes,
		Status:            domain.StatusPending,
		Fee:               appointmentType.Price,
		Online:            appointmentType.AvailableOnline,
		Notes:             req.Notes,
	}

	// 7. Сохраняем
	created, err := uc.reservationRepo.Create(ctx, reservation)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrStorage, err)
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", created.ID)

	// 8. Уведомляем подписчиков, ошибка не отменяет бронирование
	event := changefeed.Event{
		Type:       changefeed.EventCreated,
		Collection: changefeed.CollectionReservations,
		ID:         created.ID,
		Date:       created.Date.Format(domain.DateFormat),
		Status:     string(created.Status),
		OccurredAt: now,
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateReservation: failed to publish event for id=%d: %v", created.ID, err)
	}

	return created, nil
}

func mapAvailabilityError(err error) error {
	switch {
	case errors.Is(err, get_available_slots.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, get_available_slots.ErrInvalidConfig):
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	default:
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeCreated
	case errors.Is(err, domain.ErrSlotUnavailable):
		return outcomeSlotUnavailable
	case errors.Is(err, domain.ErrValidationFailed):
		return outcomeValidationFailed
	default:
		return outcomeError
	}
}
