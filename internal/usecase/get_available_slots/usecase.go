package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ConsultingService/internal/infra/storage/calendar"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	calendarRepo    CalendarRepository
	blockedDateRepo BlockedDateRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	calendarRepo CalendarRepository,
	blockedDateRepo BlockedDateRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		calendarRepo:    calendarRepo,
		blockedDateRepo: blockedDateRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов.
// Данные всегда перечитываются из хранилища, кеша нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	uc.logger.Info("GetAvailableSlots: date=%s", date.Format(domain.DateFormat))

	// 2. Загружаем конфигурацию, дни-исключения и бронирования на дату
	cfg, blocked, reservations, err := uc.load(ctx, date)
	if err != nil {
		return nil, err
	}

	// 3. Считаем слоты
	slots := ComputeAvailableSlots(date, cfg, blocked, reservations, uc.timeProvider.Now())

	uc.logger.Info("GetAvailableSlots: %d slots for date=%s", len(slots), date.Format(domain.DateFormat))

	return &Response{
		Date:                date,
		Slots:               slots,
		SlotDurationMinutes: cfg.SlotDurationMinutes,
		Timezone:            cfg.Location().String(),
		Config:              cfg,
	}, nil
}

func (uc *UseCase) load(ctx context.Context, date time.Time) (*domain.CalendarConfig, []*domain.BlockedDate, []*domain.Reservation, error) {
	cfg, err := uc.calendarRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, calendarRepo.ErrConfigNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get calendar config: %v", err)
			return nil, nil, nil, fmt.Errorf("%w: failed to get calendar config: %v", ErrStorage, err)
		}
		// Настройки еще не сохранялись
		cfg = domain.DefaultCalendarConfig()
		uc.logger.Info("GetAvailableSlots: using default calendar config")
	}
	if err := cfg.Validate(); err != nil {
		uc.logger.Error("GetAvailableSlots: stored calendar config is invalid: %v", err)
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	blocked, err := uc.blockedDateRepo.List(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked dates: %v", err)
		return nil, nil, nil, fmt.Errorf("%w: failed to get blocked dates: %v", ErrStorage, err)
	}

	reservations, err := uc.reservationRepo.List(ctx, domain.ReservationFilter{
		DateFrom: &date,
		DateTo:   &date,
		Statuses: slotBlockingStatuses(),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, nil, nil, fmt.Errorf("%w: failed to get reservations: %v", ErrStorage, err)
	}

	return cfg, blocked, reservations, nil
}

// slotBlockingStatuses все статусы, кроме отмены
func slotBlockingStatuses() []domain.ReservationStatus {
	out := make([]domain.ReservationStatus, 0, len(domain.AllStatuses))
	for _, st := range domain.AllStatuses {
		if st != domain.StatusCancelled {
			out = append(out, st)
		}
	}
	return out
}
