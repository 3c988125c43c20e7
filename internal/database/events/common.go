package events

import "github.com/avlasov/legal-planner-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select("id",
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
	From(database.EventsTable)
