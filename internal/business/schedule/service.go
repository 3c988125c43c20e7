package schedule

import (
	"context"
	"time"

	"github.com/avlasov/legal-planner-backend/internal/database"
	"github.com/avlasov/legal-planner-backend/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service owns the read-time schedule engine: consolidation of real and
// virtual occurrences, on-demand materialization, and single-occurrence
// exclusion. Expansion itself lives in internal/recurrence and is pure;
// the service adds the store round-trips around it.
type Service struct {
	db       database.PGX
	logger   *zap.SugaredLogger
	rules    rulesRepository
	tasks    occurrencesRepository
	events   occurrencesRepository
	hearings occurrencesReader
	cases    existenceRepository
	matters  existenceRepository
}

type rulesRepository interface {
	CreateRule(ctx context.Context, q database.Queryable, rule *model.RecurrenceRule) (int64, error)
	GetRuleByID(ctx context.Context, q database.Queryable, id int64) (*model.RecurrenceRule, error)
	GetActiveRules(ctx context.Context, q database.Queryable, firmID uuid.UUID) ([]*model.RecurrenceRule, error)
	UpdateRule(ctx context.Context, q database.Queryable, rule *model.RecurrenceRule) error
	IncrementOccurrencesCreated(ctx context.Context, q database.Queryable, id int64, executedAt time.Time, nextAt *time.Time) error
	AppendExclusion(ctx context.Context, q database.Queryable, id int64, date time.Time) error
}

type occurrencesReader interface {
	GetOccurrences(ctx context.Context, q database.Queryable, firmID uuid.UUID, from, to time.Time) ([]*model.Occurrence, error)
}

type occurrencesRepository interface {
	occurrencesReader
	CreateMaterialized(ctx context.Context, q database.Queryable, occ *model.Occurrence) (int64, error)
	GetByRuleAndDate(ctx context.Context, q database.Queryable, ruleID int64, date time.Time) (*model.Occurrence, error)
}

type existenceRepository interface {
	Exists(ctx context.Context, q database.Queryable, id int64) (bool, error)
}

func NewService(
	db database.PGX,
	logger *zap.SugaredLogger,
	rules rulesRepository,
	tasks occurrencesRepository,
	events occurrencesRepository,
	hearings occurrencesReader,
	cases existenceRepository,
	matters existenceRepository,
) *Service {
	return &Service{
		db:       db,
		logger:   logger,
		rules:    rules,
		tasks:    tasks,
		events:   events,
		hearings: hearings,
		cases:    cases,
		matters:  matters,
	}
}
