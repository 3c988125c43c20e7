package hearings

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/avlasov/legal-planner-backend/internal/database"
	"github.com/avlasov/legal-planner-backend/internal/model"
	"github.com/google/uuid"
)

type hearingDTO struct {
	ID          int64
	FirmID      uuid.UUID
	Title       string
	Description string
	Status      string
	AssigneeIDs []int64
	CaseID      *int64
	ScheduledAt time.Time
}

func (*Repository) GetOccurrences(ctx context.Context, q database.Queryable, firmID uuid.UUID, from, to time.Time) ([]*model.Occurrence, error) {
	qb := baseQuery.
		Where(sq.Eq{"firm_id": firmID}).
		Where(sq.Eq{"deleted_at": nil}).
		Where(sq.GtOrEq{"scheduled_at": model.DateOnly(from)}).
		Where(sq.Lt{"scheduled_at": model.DateOnly(to).AddDate(0, 0, 1)})

	var dtos []*hearingDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Occurrence, len(dtos))
	for i, d := range dtos {
		entityID := d.ID
		res[i] = &model.Occurrence{
			ID:          fmt.Sprintf("h%v_%v", d.ID, d.ScheduledAt.Unix()),
			FirmID:      d.FirmID,
			EntityID:    &entityID,
			Kind:        model.KindHearing,
			Virtual:     false,
			Start:       d.ScheduledAt,
			Title:       d.Title,
			Description: d.Description,
			Status:      model.Status(d.Status),
			AssigneeIDs: d.AssigneeIDs,
			CaseID:      d.CaseID,
		}
	}

	return res, nil
}
