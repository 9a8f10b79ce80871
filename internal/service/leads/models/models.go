package models

import (
	"time"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
)

// CreateLeadRequest форма обратной связи
type CreateLeadRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
}

// ListRequest фильтр списка заявок
type ListRequest struct {
	Stage *string
}

// MoveStageRequest перенос карточки на другой этап
type MoveStageRequest struct {
	Stage string `json:"stage"`
}

// UpdateEstimatedValueRequest оценка сделки; nil сбрасывает оценку
type UpdateEstimatedValueRequest struct {
	EstimatedValue *float64 `json:"estimatedValue"`
}

// LeadResponse заявка
type LeadResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone,omitempty"`
	Subject        string    `json:"subject"`
	Message        string    `json:"message"`
	Stage          string    `json:"stage"`
	EstimatedValue *float64  `json:"estimatedValue,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// LeadListResponse список заявок
type LeadListResponse struct {
	Leads []LeadResponse `json:"leads"`
}

// PipelineColumn колонка CRM доски
type PipelineColumn struct {
	Stage      string         `json:"stage"`
	Leads      []LeadResponse `json:"leads"`
	TotalValue float64        `json:"totalValue"`
}

// PipelineResponse CRM доска
type PipelineResponse struct {
	Columns []PipelineColumn `json:"columns"`
}

// FromDomainLead конвертирует domain модель в DTO
func FromDomainLead(l *domain.ContactLead) *LeadResponse {
	if l == nil {
		return nil
	}
	return &LeadResponse{
		ID:             l.ID,
		Name:           l.Name,
		Email:          l.Email,
		Phone:          l.Phone,
		Subject:        l.Subject,
		Message:        l.Message,
		Stage:          string(l.Stage),
		EstimatedValue: l.EstimatedValue,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

// FromDomainLeadList конвертирует список
func FromDomainLeadList(list []*domain.ContactLead) *LeadListResponse {
	resp := &LeadListResponse{Leads: make([]LeadResponse, 0, len(list))}
	for _, l := range list {
		resp.Leads = append(resp.Leads, *FromDomainLead(l))
	}
	return resp
}

// NewPipeline раскладывает заявки по этапам в порядке domain.LeadStages
func NewPipeline(list []*domain.ContactLead) *PipelineResponse {
	index := make(map[domain.LeadStage]int, len(domain.LeadStages))
	resp := &PipelineResponse{Columns: make([]PipelineColumn, 0, len(domain.LeadStages))}
	for i, st := range domain.LeadStages {
		index[st] = i
		resp.Columns = append(resp.Columns, PipelineColumn{Stage: string(st), Leads: []LeadResponse{}})
	}

	for _, l := range list {
		i, ok := index[l.Stage]
		if !ok {
			continue
		}
		col := &resp.Columns[i]
		col.Leads = append(col.Leads, *FromDomainLead(l))
		if l.EstimatedValue != nil {
			col.TotalValue += *l.EstimatedValue
		}
	}
	return resp
}
