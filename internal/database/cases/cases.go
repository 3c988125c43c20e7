package cases

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/avlasov/legal-planner-backend/internal/database"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

// Exists probes for a live case row. Soft-deleted cases count as gone:
// a rule template holding a reference to one gets the reference cleared
// at materialization time.
func (*Repository) Exists(ctx context.Context, q database.Queryable, id int64) (bool, error) {
	qb := database.PSQL.
		Select("count(*)").
		From(database.CasesTable).
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"deleted_at": nil})

	var count int
	if err := q.Get(ctx, &count, qb); err != nil {
		return false, fmt.Errorf("SQL request: %w", err)
	}

	return count > 0, nil
}
