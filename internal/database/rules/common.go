package rules

import "github.com/avlasov/legal-planner-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select("id",
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
		"occurrences_created",
		"last_executed_at",
		"next_executed_at",
		"title",
		"description",
		"priority",
		"color",
		"assignee_ids",
		"case_id",
		"matter_id",
	).
	From(database.RulesTable)
