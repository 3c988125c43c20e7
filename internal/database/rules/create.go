package rules

import (
	"context"
	"fmt"

	"github.com/avlasov/legal-planner-backend/internal/database"
	"github.com/avlasov/legal-planner-backend/internal/model"
)

func (*Repository) CreateRule(ctx context.Context, q database.Queryable, rule *model.RecurrenceRule) (int64, error) {
	title, description, priority, color, assigneeIDs, caseID, matterID := templateColumns(rule)

	qb := database.PSQL.
		Insert(database.RulesTable).
		Columns(
			"firm_id",
			"kind",
			"frequency",
			"repeat_interval",
			"days_of_week",
			"day_of_month",
			"month",
			"time_of_day",
			"business_days_only",
			"active",
			"start_date",
			"end_type",
			"end_date",
			"end_count",
			"exclusions",
			"title",
			"description",
			"priority",
			"color",
			"assignee_ids",
			"case_id",
			"matter_id",
		).
		Values(
			rule.FirmID,
			int(rule.Kind),
			int(rule.Frequency),
			rule.Interval,
			weekdaySlice(rule.DaysOfWeek),
			rule.DayOfMonth,
			int(rule.Month),
			rule.TimeOfDay,
			rule.BusinessDaysOnly,
			rule.Active,
			rule.StartDate,
			int(rule.End.Type),
			rule.End.Date,
			rule.End.Count,
			exclusionSlice(rule.Exclusions),
			title,
			description,
			priority,
			color,
			assigneeIDs,
			caseID,
			matterID,
		).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}
