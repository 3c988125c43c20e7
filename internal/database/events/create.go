package events

import (
	"context"
	"fmt"

	"github.com/avlasov/legal-planner-backend/internal/database"
	"github.com/avlasov/legal-planner-backend/internal/model"
)

// CreateMaterialized inserts an event row created from a rule occurrence.
// A unique violation on (rule_id, occurrence date) surfaces as
// model.ErrAlreadyExists so the caller can recover the competing row.
func (*Repository) CreateMaterialized(ctx context.Context, q database.Queryable, occ *model.Occurrence) (int64, error) {
	qb := database.PSQL.
		Insert(database.EventsTable).
		Columns(
			"firm_id",
			"rule_id",
			"title",
			"description",
			"color",
			"assignee_ids",
			"case_id",
			"matter_id",
			"start_date",
		).
		Values(
			occ.FirmID,
			occ.RuleID,
			occ.Title,
			occ.Description,
			occ.Color,
			occ.AssigneeIDs,
			occ.CaseID,
			occ.MatterID,
			occ.Start,
		).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		if database.IsUniqueViolation(err) {
			return 0, model.ErrAlreadyExists
		}
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}
