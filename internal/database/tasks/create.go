package tasks

import (
	"context"
	"fmt"

	"github.com/avlasov/legal-planner-backend/internal/database"
	"github.com/avlasov/legal-planner-backend/internal/model"
)

// CreateMaterialized inserts a task row created from a rule occurrence.
// The tasks table carries a partial unique index on (rule_id, occurrence
// date); a violation means a competing caller won the race and surfaces
// as model.ErrAlreadyExists.
func (*Repository) CreateMaterialized(ctx context.Context, q database.Queryable, occ *model.Occurrence) (int64, error) {
	qb := database.PSQL.
		Insert(database.TasksTable).
		Columns(
			"firm_id",
			"rule_id",
			"title",
			"description",
			"priority",
			"status",
			"assignee_ids",
			"case_id",
			"matter_id",
			"due_at",
		).
		Values(
			occ.FirmID,
			occ.RuleID,
			occ.Title,
			occ.Description,
			int(occ.Priority),
			string(occ.Status),
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
