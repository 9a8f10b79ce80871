package export_calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ConsultingService/internal/infra/storage/calendar"
)

// UseCase выгрузка предстоящих бронирований в iCalendar
type UseCase struct {
	reservationRepo ReservationRepository
	calendarRepo    CalendarRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, calendarRepo CalendarRepository, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		calendarRepo:    calendarRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute собирает ленту с сегодняшнего дня. Отмененные бронирования не попадают.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Часовой пояс и горизонт из настроек календаря
	cfg, err := uc.calendarRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, calendarRepo.ErrConfigNotFound) {
			uc.logger.Error("ExportCalendar: failed to get calendar config: %v", err)
			return nil, fmt.Errorf("%w: failed to get calendar config: %v", ErrStorage, err)
		}
		cfg = domain.DefaultCalendarConfig()
	}

	loc := cfg.Location()
	now := uc.timeProvider.Now()
	today := domain.DateOnly(now.In(loc))

	days := cfg.MaxAdvanceDays
	if req != nil && req.Days > 0 {
		days = req.Days
	}

	filter := domain.ReservationFilter{
		DateFrom: &today,
		Statuses: []domain.ReservationStatus{domain.StatusPending, domain.StatusConfirmed},
	}
	if days > 0 {
		until := today.AddDate(0, 0, days)
		filter.DateTo = &until
	}

	// 2. Бронирования
	reservations, err := uc.reservationRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("ExportCalendar: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrStorage, err)
	}

	// 3. Сериализация
	cal := BuildCalendar(reservations, loc, now)

	uc.logger.Info("ExportCalendar: exported %d reservations", len(reservations))

	return &Response{
		Content: []byte(cal.Serialize()),
		Count:   len(reservations),
	}, nil
}
