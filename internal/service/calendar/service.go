package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/internal/infra/changefeed"
	appointmentTypeRepo "github.com/m04kA/SMC-ConsultingService/internal/infra/storage/appointment_type"
	blockedDateRepo "github.com/m04kA/SMC-ConsultingService/internal/infra/storage/blocked_date"
	calendarRepo "github.com/m04kA/SMC-ConsultingService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-ConsultingService/internal/service/calendar/models"
)

// Service сервис настроек календаря, заблокированных дат и типов консультаций
type Service struct {
	calendarRepo        CalendarRepository
	blockedDateRepo     BlockedDateRepository
	appointmentTypeRepo AppointmentTypeRepository
	txManager           TransactionManager
	publisher           Publisher
	logger              Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(
	calendarRepo CalendarRepository,
	blockedDateRepo BlockedDateRepository,
	appointmentTypeRepo AppointmentTypeRepository,
	txManager TransactionManager,
	publisher Publisher,
	logger Logger,
) *Service {
	return &Service{
		calendarRepo:        calendarRepo,
		blockedDateRepo:     blockedDateRepo,
		appointmentTypeRepo: appointmentTypeRepo,
		txManager:           txManager,
		publisher:           publisher,
		logger:              logger,
	}
}

// GetConfig получает настройки календаря.
// Если настройки еще не сохранялись, возвращает значения по умолчанию.
func (s *Service) GetConfig(ctx context.Context) (*models.CalendarConfigResponse, error) {
	s.logger.Info("GetConfig: fetching calendar config")

	cfg, err := s.calendarRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrConfigNotFound) {
			s.logger.Info("GetConfig: config not stored yet, using defaults")
			return models.FromDomainConfig(domain.DefaultCalendarConfig()), nil
		}
		s.logger.Error("GetConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(cfg), nil
}

// UpdateConfig заменяет настройки календаря.
// Некорректная конфигурация не сохраняется.
func (s *Service) UpdateConfig(ctx context.Context, req *models.UpdateConfigRequest) (*models.CalendarConfigResponse, error) {
	s.logger.Info("UpdateConfig: updating calendar config")

	cfg, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("UpdateConfig: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		s.logger.Warn("UpdateConfig: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var saved *domain.CalendarConfig
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		saved, err = s.calendarRepo.Save(txCtx, cfg)
		return err
	})
	if err != nil {
		s.logger.Error("UpdateConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
	}

	s.publish(ctx, changefeed.EventUpdated, 0, "")
	s.logger.Info("UpdateConfig: successfully updated calendar config")
	return models.FromDomainConfig(saved), nil
}

// ListBlockedDates список заблокированных дат
func (s *Service) ListBlockedDates(ctx context.Context) (*models.BlockedDateListResponse, error) {
	list, err := s.blockedDateRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListBlockedDates: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBlockedDates - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBlockedDates: fetched %d blocked dates", len(list))
	return models.FromDomainBlockedDateList(list), nil
}

// CreateBlockedDate блокирует дату (с необязательным правилом повторения)
func (s *Service) CreateBlockedDate(ctx context.Context, req *models.CreateBlockedDateRequest) (*models.BlockedDateResponse, error) {
	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(req.Date))
	if err != nil {
		s.logger.Warn("CreateBlockedDate: invalid date %q", req.Date)
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	bd := &domain.BlockedDate{
		Date:       date,
		Reason:     trimmedOrNil(req.Reason),
		Recurrence: trimmedOrNil(req.Recurrence),
	}
	if err := bd.Validate(); err != nil {
		s.logger.Warn("CreateBlockedDate: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.blockedDateRepo.Create(ctx, bd)
	if err != nil {
		s.logger.Error("CreateBlockedDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.publish(ctx, changefeed.EventCreated, created.ID, created.Date.Format(domain.DateFormat))
	s.logger.Info("CreateBlockedDate: blocked date id=%d on %s", created.ID, req.Date)
	return models.FromDomainBlockedDate(created), nil
}

// DeleteBlockedDate снимает блокировку
func (s *Service) DeleteBlockedDate(ctx context.Context, id int64) error {
	if err := s.blockedDateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockedDateRepo.ErrBlockedDateNotFound) {
			s.logger.Warn("DeleteBlockedDate: blocked date id=%d not found", id)
			return ErrBlockedDateNotFound
		}
		s.logger.Error("DeleteBlockedDate: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.publish(ctx, changefeed.EventDeleted, id, "")
	s.logger.Info("DeleteBlockedDate: deleted blocked date id=%d", id)
	return nil
}

// ListAppointmentTypes типы консультаций; activeOnly для публичной формы
func (s *Service) ListAppointmentTypes(ctx context.Context, activeOnly bool, lang string) (*models.AppointmentTypeListResponse, error) {
	list, err := s.appointmentTypeRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("ListAppointmentTypes: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAppointmentTypes - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainAppointmentTypeList(list, lang), nil
}

// GetAppointmentType тип консультации по ID
func (s *Service) GetAppointmentType(ctx context.Context, id int64, lang string) (*models.AppointmentTypeResponse, error) {
	at, err := s.appointmentTypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapAppointmentTypeError("GetAppointmentType", id, err)
	}
	return models.FromDomainAppointmentType(at, lang), nil
}

// CreateAppointmentType создает тип консультации
func (s *Service) CreateAppointmentType(ctx context.Context, req *models.AppointmentTypeRequest) (*models.AppointmentTypeResponse, error) {
	at := req.ToDomain()
	if err := at.Validate(); err != nil {
		s.logger.Warn("CreateAppointmentType: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.appointmentTypeRepo.Create(ctx, at)
	if err != nil {
		s.logger.Error("CreateAppointmentType: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateAppointmentType - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateAppointmentType: created appointment type id=%d", created.ID)
	return models.FromDomainAppointmentType(created, domain.DefaultLanguage), nil
}

// UpdateAppointmentType заменяет тип консультации.
// Существующие бронирования хранят свою стоимость и не пересчитываются.
func (s *Service) UpdateAppointmentType(ctx context.Context, id int64, req *models.AppointmentTypeRequest) (*models.AppointmentTypeResponse, error) {
	at := req.ToDomain()
	at.ID = id
	if err := at.Validate(); err != nil {
		s.logger.Warn("UpdateAppointmentType: validation failed for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.appointmentTypeRepo.Update(ctx, at)
	if err != nil {
		return nil, s.mapAppointmentTypeError("UpdateAppointmentType", id, err)
	}

	s.logger.Info("UpdateAppointmentType: updated appointment type id=%d", id)
	return models.FromDomainAppointmentType(updated, domain.DefaultLanguage), nil
}

func (s *Service) mapAppointmentTypeError(op string, id int64, err error) error {
	if errors.Is(err, appointmentTypeRepo.ErrAppointmentTypeNotFound) {
		s.logger.Warn("%s: appointment type id=%d not found", op, id)
		return ErrAppointmentTypeNotFound
	}
	s.logger.Error("%s: repository error for appointment type id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// publish сообщает клиентам, что доступность могла измениться
func (s *Service) publish(ctx context.Context, eventType changefeed.EventType, id int64, date string) {
	event := changefeed.Event{
		Type:       eventType,
		Collection: changefeed.CollectionCalendar,
		ID:         id,
		Date:       date,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish: failed to publish calendar %s event: %v", eventType, err)
	}
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
