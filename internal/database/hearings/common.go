package hearings

import "github.com/avlasov/legal-planner-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

// Hearings are entered by hand, never templated by a rule; the engine
// only reads them into the consolidated calendar.
var baseQuery = database.PSQL.
	Select("id",
		"firm_id",
		"title",
		"description",
		"status",
		"assignee_ids",
		"case_id",
		"scheduled_at",
	).
	From(database.HearingsTable)
