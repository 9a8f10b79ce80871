package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/internal/infra/changefeed"
	calendarRepo "github.com/m04kA/SMC-ConsultingService/internal/infra/storage/calendar"
	reservationRepo "github.com/m04kA/SMC-ConsultingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ConsultingService/internal/usecase/export_calendar"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	reservationRepo ReservationRepository
	calendarRepo    CalendarRepository
	txManager       TransactionManager
	notifier        Notifier
	publisher       Publisher
	metrics         Metrics
	timeProvider    TimeProvider
	organizer       export_calendar.Organizer
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	calendarRepo CalendarRepository,
	txManager TransactionManager,
	notifier Notifier,
	publisher Publisher,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		calendarRepo:    calendarRepo,
		txManager:       txManager,
		notifier:        notifier,
		publisher:       publisher,
		metrics:         nopMetrics{},
		timeProvider:    realTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// WithMetrics подключает метрики переходов
func (s *Service) WithMetrics(m Metrics) *Service {
	s.metrics = m
	return s
}

// WithOrganizer задает отправителя приглашений в календарь
func (s *Service) WithOrganizer(o export_calendar.Organizer) *Service {
	s.organizer = o
	return s
}

// Get получает бронирование по ID.
// Администратор видит любое бронирование, заявитель только свое.
func (s *Service) Get(ctx context.Context, id int64, identity domain.Identity) (*models.ReservationResponse, error) {
	s.logger.Info("Get: fetching reservation id=%d", id)

	res, err := s.getByID(ctx, id, "Get")
	if err != nil {
		return nil, err
	}

	if !identity.IsAdmin && !res.IsOwnedBy(identity) {
		s.logger.Warn("Get: access denied to reservation id=%d for user=%s", id, identity.UserID)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(res, identity.IsAdmin), nil
}

// ListMine бронирования текущего пользователя (по subject или email)
func (s *Service) ListMine(ctx context.Context, identity domain.Identity) (*models.ReservationListResponse, error) {
	if identity.IsAnonymous() {
		return nil, ErrAccessDenied
	}
	s.logger.Info("ListMine: fetching reservations for user=%s", identity.UserID)

	filter := domain.ReservationFilter{}
	if identity.UserID != "" {
		filter.UserID = &identity.UserID
	}
	if identity.Email != "" {
		filter.Email = &identity.Email
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListMine: repository error for user=%s: %v", identity.UserID, err)
		return nil, fmt.Errorf("%w: ListMine - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListMine: fetched %d reservations for user=%s", len(list), identity.UserID)
	return models.FromDomainReservationList(list, false), nil
}

// List бронирования для таблицы администратора
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ReservationListResponse, error) {
	list, err := s.list(ctx, req, "List")
	if err != nil {
		return nil, err
	}
	return models.FromDomainReservationList(list, true), nil
}

// Board бронирования, сгруппированные по статусам
func (s *Service) Board(ctx context.Context, req *models.ListRequest) (*models.BoardResponse, error) {
	list, err := s.list(ctx, req, "Board")
	if err != nil {
		return nil, err
	}
	return models.NewBoard(list), nil
}

func (s *Service) list(ctx context.Context, req *models.ListRequest, op string) ([]*domain.Reservation, error) {
	if req == nil {
		req = &models.ListRequest{}
	}
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("%s: invalid filter: %v", op, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d reservations", op, len(list))
	return list, nil
}

// Transition меняет статус бронирования по таблице переходов.
// Используется и таблицей, и доской администратора.
// При ошибке после загрузки записи возвращает ее текущее состояние вместе с ошибкой.
func (s *Service) Transition(
	ctx context.Context,
	id int64,
	identity domain.Identity,
	req *models.TransitionRequest,
) (*models.TransitionResponse, error) {
	target, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("Transition: reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}
	if req.Reason != nil && utf8.RuneCountInString(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	actor := domain.ActorFor(identity)
	s.logger.Info("Transition: reservation id=%d to %s by %s", id, target, actor)

	loc, err := s.location(ctx)
	if err != nil {
		return nil, err
	}
	now := s.timeProvider.Now()

	var (
		current *domain.Reservation
		updated *domain.Reservation
		from    domain.ReservationStatus
	)

	// 1. Читаем, проверяем и сохраняем в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		res, err := s.getByID(txCtx, id, "Transition")
		if err != nil {
			return err
		}
		current = res
		from = res.Status

		if actor == domain.ActorRequester {
			if !res.IsOwnedBy(identity) {
				s.logger.Warn("Transition: user=%s does not own reservation id=%d", identity.UserID, id)
				return ErrAccessDenied
			}
			if !res.StartsAt(loc).After(now) {
				s.logger.Warn("Transition: reservation id=%d has already started", id)
				return ErrReservationStarted
			}
		}

		if err := domain.ValidateTransition(from, target, actor); err != nil {
			s.logger.Warn("Transition: reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		next := *res
		next.Status = target
		if target == domain.StatusCancelled {
			cancelledAt := now
			next.CancelledAt = &cancelledAt
			next.CancellationReason = trimmedOrNil(req.Reason)
		}

		saved, err := s.reservationRepo.Update(txCtx, &next)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("Transition: repository error for reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
		}
		updated = saved
		return nil
	})
	if err != nil {
		var truth *models.ReservationResponse
		if current != nil && !errors.Is(err, ErrAccessDenied) {
			truth = models.FromDomainReservation(current, identity.IsAdmin)
		}
		return &models.TransitionResponse{Reservation: truth}, err
	}

	s.logger.Info("Transition: reservation id=%d %s -> %s", id, from, target)
	s.metrics.IncStatusTransition(string(from), string(target), string(actor))
	s.publish(ctx, changefeed.EventUpdated, updated)

	// 2. Побочные эффекты не откатывают переход
	resp := &models.TransitionResponse{Reservation: models.FromDomainReservation(updated, identity.IsAdmin)}
	switch target {
	case domain.StatusConfirmed:
		if updated.NeedsMeetingLink() {
			s.logger.Warn("Transition: online reservation id=%d confirmed without meeting link", id)
			resp.Warnings = append(resp.Warnings, WarningMeetingLinkMissing)
		}
		s.sendConfirmation(ctx, updated, loc)
	case domain.StatusCancelled:
		s.sendCancellation(ctx, updated, actor)
	}

	return resp, nil
}

// CancelByRequester отмена заявителем своего будущего бронирования
func (s *Service) CancelByRequester(ctx context.Context, id int64, identity domain.Identity, reason *string) (*models.TransitionResponse, error) {
	if identity.IsAnonymous() {
		return nil, ErrAccessDenied
	}
	requester := identity
	requester.IsAdmin = false
	return s.Transition(ctx, id, requester, &models.TransitionRequest{
		Status: string(domain.StatusCancelled),
		Reason: reason,
	})
}

// UpdateDetails правка ссылки, стоимости, заметок и исполнителя
func (s *Service) UpdateDetails(ctx context.Context, id int64, req *models.UpdateDetailsRequest) (*models.ReservationResponse, error) {
	patch := req.ToDomainPatch()
	if err := validatePatch(&patch); err != nil {
		s.logger.Warn("UpdateDetails: reservation id=%d: %v", id, err)
		return nil, err
	}

	s.logger.Info("UpdateDetails: updating reservation id=%d", id)

	var updated *domain.Reservation
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		res, err := s.getByID(txCtx, id, "UpdateDetails")
		if err != nil {
			return err
		}

		applyPatch(res, &patch)

		saved, err := s.reservationRepo.Update(txCtx, res)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("UpdateDetails: repository error for reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateDetails - repository error: %v", ErrInternal, err)
		}
		updated = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, changefeed.EventUpdated, updated)
	s.logger.Info("UpdateDetails: successfully updated reservation id=%d", id)
	return models.FromDomainReservation(updated, true), nil
}

// Delete удаляет бронирование (крайняя мера администратора)
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting reservation id=%d", id)

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.publish(ctx, changefeed.EventDeleted, &domain.Reservation{ID: id})
	s.logger.Info("Delete: successfully deleted reservation id=%d", id)
	return nil
}

func (s *Service) getByID(ctx context.Context, id int64, op string) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return res, nil
}

// location часовой пояс календаря, по умолчанию UTC
func (s *Service) location(ctx context.Context) (*time.Location, error) {
	cfg, err := s.calendarRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrConfigNotFound) {
			return domain.DefaultCalendarConfig().Location(), nil
		}
		s.logger.Error("location: failed to get calendar config: %v", err)
		return nil, fmt.Errorf("%w: failed to get calendar config: %v", ErrInternal, err)
	}
	return cfg.Location(), nil
}

func (s *Service) publish(ctx context.Context, eventType changefeed.EventType, res *domain.Reservation) {
	event := changefeed.Event{
		Type:       eventType,
		Collection: changefeed.CollectionReservations,
		ID:         res.ID,
		Status:     string(res.Status),
		OccurredAt: s.timeProvider.Now(),
	}
	if !res.Date.IsZero() {
		event.Date = res.Date.Format(domain.DateFormat)
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish: failed to publish %s event for reservation id=%d: %v", eventType, res.ID, err)
	}
}

func validatePatch(p *domain.ReservationDetailsPatch) error {
	if p.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if p.Fee != nil && *p.Fee < 0 {
		return fmt.Errorf("%w: fee must not be negative", ErrInvalidInput)
	}
	if p.Notes != nil && utf8.RuneCountInString(*p.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if p.InternalNotes != nil && utf8.RuneCountInString(*p.InternalNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: internal notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

// applyPatch пустая строка очищает поле
func applyPatch(res *domain.Reservation, p *domain.ReservationDetailsPatch) {
	if p.MeetingLink != nil {
		res.MeetingLink = trimmedOrNil(p.MeetingLink)
	}
	if p.Fee != nil {
		res.Fee = *p.Fee
	}
	if p.Notes != nil {
		res.Notes = trimmedOrNil(p.Notes)
	}
	if p.InternalNotes != nil {
		res.InternalNotes = trimmedOrNil(p.InternalNotes)
	}
	if p.AssignedStaffID != nil {
		res.AssignedStaffID = trimmedOrNil(p.AssignedStaffID)
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
