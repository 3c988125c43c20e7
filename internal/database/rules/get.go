package rules

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/avlasov/legal-planner-backend/internal/database"
	"github.com/avlasov/legal-planner-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
)

func (*Repository) GetRuleByID(ctx context.Context, q database.Queryable, id int64) (*model.RecurrenceRule, error) {
	qb := baseQuery.
		Where(sq.Eq{"id": id})

	dto := &ruleDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToRule(dto), nil
}

// GetActiveRules returns every active rule of the firm regardless of
// start date: consolidation must consider rules whose series began long
// before the requested window.
func (*Repository) GetActiveRules(ctx context.Context, q database.Queryable, firmID uuid.UUID) ([]*model.RecurrenceRule, error) {
	qb := baseQuery.
		Where(sq.Eq{"firm_id": firmID}).
		Where(sq.Eq{"active": true})

	var dtos []*ruleDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.RecurrenceRule, len(dtos))
	for i, d := range dtos {
		res[i] = mapToRule(d)
	}

	return res, nil
}
