package domain

import (
	"fmt"
	"time"
)

// LeadStage этап воронки заявок
type LeadStage string

const (
	LeadStageNew       LeadStage = "new"
	LeadStageContacted LeadStage = "contacted"
	LeadStageQualified LeadStage = "qualified"
	LeadStageProposal  LeadStage = "proposal"
	LeadStageWon       LeadStage = "won"
	LeadStageLost      LeadStage = "lost"
)

// LeadStages колонки CRM доски по порядку
var LeadStages = []LeadStage{
	LeadStageNew,
	LeadStageContacted,
	LeadStageQualified,
	LeadStageProposal,
	LeadStageWon,
	LeadStageLost,
}

// IsValid известен ли этап
func (s LeadStage) IsValid() bool {
	for _, st := range LeadStages {
		if s == st {
			return true
		}
	}
	return false
}

// IsClosed сделка закрыта
func (s LeadStage) IsClosed() bool {
	return s == LeadStageWon || s == LeadStageLost
}

// ValidateStage проверяет целевой этап при перетаскивании
func ValidateStage(s LeadStage) error {
	if !s.IsValid() {
		return fmt.Errorf("%w: unknown lead stage %q", ErrValidationFailed, s)
	}
	return nil
}

// ContactLead заявка из формы обратной связи
type ContactLead struct {
	ID             int64
	Name           string
	Email          string
	Phone          *string
	Subject        string
	Message        string
	Stage          LeadStage
	EstimatedValue *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LeadFilter фильтр списка заявок
type LeadFilter struct {
	Stage *LeadStage
}
