package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/internal/infra/changefeed"
	leadRepo "github.com/m04kA/SMC-ConsultingService/internal/infra/storage/lead"
	"github.com/m04kA/SMC-ConsultingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ConsultingService/internal/service/leads/models"
	"github.com/m04kA/SMC-ConsultingService/internal/usecase/create_reservation"
)

// Service сервис CRM заявок
type Service struct {
	leadRepo   LeadRepository
	notifier   Notifier
	publisher  Publisher
	recipients []string
	logger     Logger
}

// NewService создает новый экземпляр сервиса заявок.
// recipients - адреса администраторов для уведомлений о новых заявках.
func NewService(leadRepo LeadRepository, notifier Notifier, publisher Publisher, recipients []string, logger Logger) *Service {
	return &Service{
		leadRepo:   leadRepo,
		notifier:   notifier,
		publisher:  publisher,
		recipients: recipients,
		logger:     logger,
	}
}

// Create сохраняет заявку из публичной формы и уведомляет администраторов
func (s *Service) Create(ctx context.Context, req *models.CreateLeadRequest) (*models.LeadResponse, error) {
	lead, err := validateCreate(req)
	if err != nil {
		s.logger.Warn("Create: invalid lead form: %v", err)
		return nil, err
	}

	created, err := s.leadRepo.Create(ctx, lead)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created lead id=%d from %s", created.ID, created.Email)
	s.publish(ctx, changefeed.EventCreated, created)
	s.notifyAdmins(ctx, created)

	return models.FromDomainLead(created), nil
}

// Get получает заявку по ID
func (s *Service) Get(ctx context.Context, id int64) (*models.LeadResponse, error) {
	lead, err := s.getByID(ctx, id, "Get")
	if err != nil {
		return nil, err
	}
	return models.FromDomainLead(lead), nil
}

// List заявки, при необходимости только одного этапа
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.LeadListResponse, error) {
	list, err := s.list(ctx, req)
	if err != nil {
		return nil, err
	}
	return models.FromDomainLeadList(list), nil
}

// Pipeline заявки, разложенные по этапам для CRM доски
func (s *Service) Pipeline(ctx context.Context) (*models.PipelineResponse, error) {
	list, err := s.list(ctx, nil)
	if err != nil {
		return nil, err
	}
	return models.NewPipeline(list), nil
}

func (s *Service) list(ctx context.Context, req *models.ListRequest) ([]*domain.ContactLead, error) {
	filter := domain.LeadFilter{}
	if req != nil && req.Stage != nil && *req.Stage != "" {
		stage := domain.LeadStage(*req.Stage)
		if err := domain.ValidateStage(stage); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Stage = &stage
	}

	list, err := s.leadRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d leads", len(list))
	return list, nil
}

// MoveStage переносит заявку на этап. Переход между любыми этапами разрешен,
// перенос на текущий этап ничего не меняет.
func (s *Service) MoveStage(ctx context.Context, id int64, req *models.MoveStageRequest) (*models.LeadResponse, error) {
	stage := domain.LeadStage(strings.TrimSpace(req.Stage))
	if err := domain.ValidateStage(stage); err != nil {
		s.logger.Warn("MoveStage: lead id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	lead, err := s.getByID(ctx, id, "MoveStage")
	if err != nil {
		return nil, err
	}
	if lead.Stage == stage {
		return models.FromDomainLead(lead), nil
	}

	from := lead.Stage
	lead.Stage = stage
	updated, err := s.update(ctx, lead, "MoveStage")
	if err != nil {
		return nil, err
	}

	s.logger.Info("MoveStage: lead id=%d %s -> %s", id, from, stage)
	s.publish(ctx, changefeed.EventUpdated, updated)
	return models.FromDomainLead(updated), nil
}

// UpdateEstimatedValue задает оценку сделки
func (s *Service) UpdateEstimatedValue(ctx context.Context, id int64, req *models.UpdateEstimatedValueRequest) (*models.LeadResponse, error) {
	if req.EstimatedValue != nil && *req.EstimatedValue < 0 {
		return nil, fmt.Errorf("%w: estimated value must not be negative", ErrInvalidInput)
	}

	lead, err := s.getByID(ctx, id, "UpdateEstimatedValue")
	if err != nil {
		return nil, err
	}

	lead.EstimatedValue = req.EstimatedValue
	updated, err := s.update(ctx, lead, "UpdateEstimatedValue")
	if err != nil {
		return nil, err
	}

	s.publish(ctx, changefeed.EventUpdated, updated)
	return models.FromDomainLead(updated), nil
}

// Delete удаляет заявку
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.leadRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, leadRepo.ErrLeadNotFound) {
			s.logger.Warn("Delete: lead id=%d not found", id)
			return ErrLeadNotFound
		}
		s.logger.Error("Delete: repository error for lead id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.publish(ctx, changefeed.EventDeleted, &domain.ContactLead{ID: id})
	s.logger.Info("Delete: deleted lead id=%d", id)
	return nil
}

func (s *Service) getByID(ctx context.Context, id int64, op string) (*domain.ContactLead, error) {
	lead, err := s.leadRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leadRepo.ErrLeadNotFound) {
			s.logger.Warn("%s: lead id=%d not found", op, id)
			return nil, ErrLeadNotFound
		}
		s.logger.Error("%s: repository error for lead id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return lead, nil
}

func (s *Service) update(ctx context.Context, lead *domain.ContactLead, op string) (*domain.ContactLead, error) {
	updated, err := s.leadRepo.Update(ctx, lead)
	if err != nil {
		if errors.Is(err, leadRepo.ErrLeadNotFound) {
			return nil, ErrLeadNotFound
		}
		s.logger.Error("%s: repository error for lead id=%d: %v", op, lead.ID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return updated, nil
}

func (s *Service) publish(ctx context.Context, eventType changefeed.EventType, lead *domain.ContactLead) {
	event := changefeed.Event{
		Type:       eventType,
		Collection: changefeed.CollectionLeads,
		ID:         lead.ID,
		Status:     string(lead.Stage),
		OccurredAt: time.Now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish: failed to publish %s event for lead id=%d: %v", eventType, lead.ID, err)
	}
}

// notifyAdmins ошибка отправки не влияет на создание заявки
func (s *Service) notifyAdmins(ctx context.Context, lead *domain.ContactLead) {
	if len(s.recipients) == 0 {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "New contact request #%d\n\n", lead.ID)
	fmt.Fprintf(&b, "From: %s <%s>\n", lead.Name, lead.Email)
	if lead.Phone != nil {
		fmt.Fprintf(&b, "Phone: %s\n", *lead.Phone)
	}
	fmt.Fprintf(&b, "Subject: %s\n\n%s\n", lead.Subject, lead.Message)

	msg := notifier.Message{
		To:      s.recipients,
		Subject: fmt.Sprintf("New lead: %s", lead.Subject),
		Body:    b.String(),
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Warn("notifyAdmins: failed to notify about lead id=%d: %v", lead.ID, err)
	}
}

func validateCreate(req *models.CreateLeadRequest) (*domain.ContactLead, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.Email)
	if !create_reservation.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: email %q is not valid", ErrInvalidInput, email)
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		return nil, fmt.Errorf("%w: subject is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(subject) > MaxSubjectLength {
		return nil, fmt.Errorf("%w: subject must be at most %d characters", ErrInvalidInput, MaxSubjectLength)
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(message) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: message must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	var phone *string
	if req.Phone != nil {
		if p := strings.TrimSpace(*req.Phone); p != "" {
			if utf8.RuneCountInString(p) > MaxPhoneLength {
				return nil, fmt.Errorf("%w: phone is too long", ErrInvalidInput)
			}
			phone = &p
		}
	}

	return &domain.ContactLead{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Subject: subject,
		Message: message,
		Stage:   domain.LeadStageNew,
	}, nil
}
