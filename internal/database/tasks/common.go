package tasks

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
		"priority",
		"status",
		"assignee_ids",
		"case_id",
		"matter_id",
		"due_at",
	).
	From(database.TasksTable)
