package rules

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/avlasov/legal-planner-backend/internal/database"
	"github.com/avlasov/legal-planner-backend/internal/model"
)

func (*Repository) UpdateRule(ctx context.Context, q database.Queryable, rule *model.RecurrenceRule) error {
	title, description, priority, color, assigneeIDs, caseID, matterID := templateColumns(rule)

	qb := database.PSQL.
		Update(database.RulesTable).
		SetMap(map[string]interface{}{
			"kind":               int(rule.Kind),
			"frequency":          int(rule.Frequency),
			"repeat_interval":    rule.Interval,
			"days_of_week":       weekdaySlice(rule.DaysOfWeek),
			"day_of_month":       rule.DayOfMonth,
			"month":              int(rule.Month),
			"time_of_day":        rule.TimeOfDay,
			"business_days_only": rule.BusinessDaysOnly,
			"active":             rule.Active,
			"start_date":         rule.StartDate,
			"end_type":           int(rule.End.Type),
			"end_date":           rule.End.Date,
			"end_count":          rule.End.Count,
			"exclusions":         exclusionSlice(rule.Exclusions),
			"title":              title,
			"description":        description,
			"priority":           priority,
			"color":              color,
			"assignee_ids":       assigneeIDs,
			"case_id":            caseID,
			"matter_id":          matterID,
		}).
		Where(sq.Eq{"id": rule.ID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

// IncrementOccurrencesCreated bumps the cumulative materialization
// counter by exactly one via read-modify-write inside the database, so
// concurrent materializations of different dates never lose an update.
// The counter is append-only; nothing ever decrements it.
func (*Repository) IncrementOccurrencesCreated(ctx context.Context, q database.Queryable, id int64, executedAt time.Time, nextAt *time.Time) error {
	qb := database.PSQL.
		Update(database.RulesTable).
		Set("occurrences_created", sq.Expr("occurrences_created + 1")).
		Set("last_executed_at", executedAt).
		Set("next_executed_at", nextAt).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

// AppendExclusion adds date to the rule's exclusion set; appending a date
// already present is a no-op.
func (*Repository) AppendExclusion(ctx context.Context, q database.Queryable, id int64, date time.Time) error {
	day := model.DateOnly(date)

	qb := database.PSQL.
		Update(database.RulesTable).
		Set("exclusions", sq.Expr("array_append(exclusions, ?)", day)).
		Where(sq.Eq{"id": id}).
		Where(sq.Expr("not exclusions @> array[?::timestamptz]", day))

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
