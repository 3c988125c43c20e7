package events

import (
	"fmt"
	"time"

	"github.com/avlasov/legal-planner-backend/internal/model"
	"github.com/google/uuid"
)

type eventDTO struct {
	ID          int64
	FirmID      uuid.UUID
	RuleID      *int64
	Title       string
	Description string
	Color       string
	AssigneeIDs []int64
	CaseID      *int64
	MatterID    *int64
	StartDate   time.Time
}

func mapToOccurrence(dto *eventDTO) *model.Occurrence {
	entityID := dto.ID

	return &model.Occurrence{
		ID:          fmt.Sprintf("e%v_%v", dto.ID, dto.StartDate.Unix()),
		FirmID:      dto.FirmID,
		RuleID:      dto.RuleID,
		EntityID:    &entityID,
		Kind:        model.KindEvent,
		Virtual:     false,
		Start:       dto.StartDate,
		Title:       dto.Title,
		Description: dto.Description,
		Color:       dto.Color,
		AssigneeIDs: dto.AssigneeIDs,
		CaseID:      dto.CaseID,
		MatterID:    dto.MatterID,
	}
}
