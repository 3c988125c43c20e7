package schedule

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/avlasov/legal-planner-backend/internal/database"
	"github.com/avlasov/legal-planner-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"go.uber.org/zap"
)

type fakeDB struct{}

func (fakeDB) Exec(context.Context, sq.Sqlizer) (pgconn.CommandTag, error) { return nil, nil }
func (fakeDB) Get(context.Context, interface{}, sq.Sqlizer) error          { return nil }
func (fakeDB) Select(context.Context, interface{}, sq.Sqlizer) error       { return nil }
func (fakeDB) BeginTx(context.Context, *pgx.TxOptions) (database.Tx, error) {
	return fakeTx{}, nil
}

type fakeTx struct{ fakeDB }

func (fakeTx) Commit(context.Context) error   { return nil }
func (fakeTx) Rollback(context.Context) error { return nil }

type fakeRules struct {
	rules      map[int64]*model.RecurrenceRule
	listErr    error
	increments map[int64]int
	exclusions map[int64][]time.Time
}

func newFakeRules(rules ...*model.RecurrenceRule) *fakeRules {
	m := map[int64]*model.RecurrenceRule{}
	for _, r := range rules {
		m[r.ID] = r
	}
	return &fakeRules{
		rules:      m,
		increments: map[int64]int{},
		exclusions: map[int64][]time.Time{},
	}
}

func (f *fakeRules) CreateRule(_ context.Context, _ database.Queryable, rule *model.RecurrenceRule) (int64, error) {
	id := int64(len(f.rules) + 1)
	rule.ID = id
	f.rules[id] = rule
	return id, nil
}

func (f *fakeRules) GetRuleByID(_ context.Context, _ database.Queryable, id int64) (*model.RecurrenceRule, error) {
	rule, ok := f.rules[id]
	if !ok {
		return nil, model.ErrNoRecord
	}
	return rule, nil
}

func (f *fakeRules) GetActiveRules(_ context.Context, _ database.Queryable, firmID uuid.UUID) ([]*model.RecurrenceRule, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var res []*model.RecurrenceRule
	for _, r := range f.rules {
		if r.Active && r.FirmID == firmID {
			res = append(res, r)
		}
	}
	return res, nil
}

func (f *fakeRules) UpdateRule(_ context.Context, _ database.Queryable, rule *model.RecurrenceRule) error {
	f.rules[rule.ID] = rule
	return nil
}

func (f *fakeRules) IncrementOccurrencesCreated(_ context.Context, _ database.Queryable, id int64, _ time.Time, _ *time.Time) error {
	f.increments[id]++
	return nil
}

func (f *fakeRules) AppendExclusion(_ context.Context, _ database.Queryable, id int64, date time.Time) error {
	f.exclusions[id] = append(f.exclusions[id], date)
	return nil
}

type fakeOccurrences struct {
	occs     []*model.Occurrence
	nextID   int64
	conflict bool
	created  []*model.Occurrence
}

// GetOccurrences applies the same window predicate as the SQL readers:
// start >= date(from) and start < date(to) + 1 day.
func (f *fakeOccurrences) GetOccurrences(_ context.Context, _ database.Queryable, firmID uuid.UUID, from, to time.Time) ([]*model.Occurrence, error) {
	lo := model.DateOnly(from)
	hi := model.DateOnly(to).AddDate(0, 0, 1)

	var res []*model.Occurrence
	for _, o := range f.occs {
		if o.FirmID == firmID && !o.Start.Before(lo) && o.Start.Before(hi) {
			res = append(res, o)
		}
	}
	return res, nil
}

func (f *fakeOccurrences) CreateMaterialized(_ context.Context, _ database.Queryable, occ *model.Occurrence) (int64, error) {
	if f.conflict {
		return 0, model.ErrAlreadyExists
	}
	f.nextID++
	stored := *occ
	entityID := f.nextID
	stored.EntityID = &entityID
	stored.Virtual = false
	f.occs = append(f.occs, &stored)
	f.created = append(f.created, &stored)
	return f.nextID, nil
}

func (f *fakeOccurrences) GetByRuleAndDate(_ context.Context, _ database.Queryable, ruleID int64, date time.Time) (*model.Occurrence, error) {
	for _, o := range f.occs {
		if o.RuleID != nil && *o.RuleID == ruleID && model.DateKey(o.Start) == model.DateKey(date) {
			return o, nil
		}
	}
	return nil, model.ErrNoRecord
}

type fakeExistence struct {
	existing map[int64]bool
}

func (f *fakeExistence) Exists(_ context.Context, _ database.Queryable, id int64) (bool, error) {
	return f.existing[id], nil
}

type testEnv struct {
	service  *Service
	rules    *fakeRules
	tasks    *fakeOccurrences
	events   *fakeOccurrences
	hearings *fakeOccurrences
	cases    *fakeExistence
	matters  *fakeExistence
}

func newTestEnv(rules ...*model.RecurrenceRule) *testEnv {
	env := &testEnv{
		rules:    newFakeRules(rules...),
		tasks:    &fakeOccurrences{},
		events:   &fakeOccurrences{},
		hearings: &fakeOccurrences{},
		cases:    &fakeExistence{existing: map[int64]bool{}},
		matters:  &fakeExistence{existing: map[int64]bool{}},
	}
	env.service = NewService(
		fakeDB{},
		zap.NewNop().Sugar(),
		env.rules,
		env.tasks,
		env.events,
		env.hearings,
		env.cases,
		env.matters,
	)
	return env
}

var testFirmID = uuid.MustParse("7f0c2c4e-90ff-4f57-b4f2-1b2a4a1c9d11")

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weeklyTaskRule(id int64, mods ...func(*model.RecurrenceRule)) *model.RecurrenceRule {
	r := &model.RecurrenceRule{
		ID:         id,
		Active:     true,
		Exclusions: map[int64]struct{}{},
		RuleCreate: model.RuleCreate{
			FirmID:     testFirmID,
			Kind:       model.KindTask,
			Frequency:  model.FrequencyWeekly,
			Interval:   1,
			DaysOfWeek: map[time.Weekday]struct{}{time.Monday: {}},
			TimeOfDay:  10 * time.Hour,
			StartDate:  day(2025, time.June, 2),
			End:        model.EndCondition{Type: model.EndNever},
			Task:       &model.TaskTemplate{Title: fmt.Sprintf("weekly filing %d", id)},
		},
	}
	for _, mod := range mods {
		mod(r)
	}
	return r
}

func realTask(id int64, ruleID *int64, start time.Time) *model.Occurrence {
	entityID := id
	return &model.Occurrence{
		ID:       fmt.Sprintf("t%v_%v", id, start.Unix()),
		FirmID:   testFirmID,
		RuleID:   ruleID,
		EntityID: &entityID,
		Kind:     model.KindTask,
		Start:    start,
		Status:   model.StatusPending,
	}
}
