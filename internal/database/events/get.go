package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/avlasov/legal-planner-backend/internal/database"
	"github.com/avlasov/legal-planner-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
)

func (*Repository) GetOccurrences(ctx context.Context, q database.Queryable, firmID uuid.UUID, from, to time.Time) ([]*model.Occurrence, error) {
	qb := baseQuery.
		Where(sq.Eq{"firm_id": firmID}).
		Where(sq.Eq{"deleted_at": nil}).
		Where(sq.GtOrEq{"start_date": model.DateOnly(from)}).
		Where(sq.Lt{"start_date": model.DateOnly(to).AddDate(0, 0, 1)})

	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Occurrence, len(dtos))
	for i, d := range dtos {
		res[i] = mapToOccurrence(d)
	}

	return res, nil
}

func (*Repository) GetByRuleAndDate(ctx context.Context, q database.Queryable, ruleID int64, date time.Time) (*model.Occurrence, error) {
	day := model.DateOnly(date)

	qb := baseQuery.
		Where(sq.Eq{"rule_id": ruleID}).
		Where(sq.GtOrEq{"start_date": day}).
		Where(sq.Lt{"start_date": day.AddDate(0, 0, 1)})

	dto := &eventDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoRecord
		}
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToOccurrence(dto), nil
}
