package tasks

import (
	"fmt"
	"time"

	"github.com/avlasov/legal-planner-backend/internal/model"
	"github.com/google/uuid"
)

type taskDTO struct {
	ID          int64
	FirmID      uuid.UUID
	RuleID      *int64
	Title       string
	Description string
	Priority    int
	Status      string
	AssigneeIDs []int64
	CaseID      *int64
	MatterID    *int64
	DueAt       time.Time
}

func mapToOccurrence(dto *taskDTO) *model.Occurrence {
	entityID := dto.ID

	return &model.Occurrence{
		ID:          fmt.Sprintf("t%v_%v", dto.ID, dto.DueAt.Unix()),
		FirmID:      dto.FirmID,
		RuleID:      dto.RuleID,
		EntityID:    &entityID,
		Kind:        model.KindTask,
		Virtual:     false,
		Start:       dto.DueAt,
		Title:       dto.Title,
		Description: dto.Description,
		Priority:    model.Priority(dto.Priority),
		Status:      model.Status(dto.Status),
		AssigneeIDs: dto.AssigneeIDs,
		CaseID:      dto.CaseID,
		MatterID:    dto.MatterID,
	}
}
