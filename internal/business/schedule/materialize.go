package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avlasov/legal-planner-backend/internal/model"
	"github.com/avlasov/legal-planner-backend/internal/recurrence"
	"github.com/google/uuid"
)

// Materialize converts one virtual occurrence of a rule into a durable
// task or event row. Stale template references to deleted cases or
// advisory matters are dropped, reported as issues but never fatal.
//
// Two callers racing on the same (rule, date) both get the same row
// back: the insert is guarded by a uniqueness constraint, and the loser
// recovers the winner's row instead of failing. Only the winning insert
// increments the rule's occurrence counter.
func (s *Service) Materialize(ctx context.Context, firmID uuid.UUID, ruleID int64, date time.Time) (*model.Occurrence, []*model.RuleIssue, error) {
	rule, err := s.rules.GetRuleByID(ctx, s.db, ruleID)
	if err != nil {
		return nil, nil, fmt.Errorf("rulesRepository.GetRuleByID: %w", err)
	}
	if rule.FirmID != firmID {
		return nil, nil, model.ErrNoRecord
	}
	if !rule.Active {
		return nil, nil, model.ErrRuleInactive
	}

	day := model.DateOnly(date)
	if _, ok := rule.Exclusions[model.DateKey(day)]; ok {
		return nil, nil, model.ErrDateExcluded
	}

	issues, err := s.revalidateRefs(ctx, rule)
	if err != nil {
		return nil, nil, err
	}

	var repo occurrencesRepository
	switch rule.Kind {
	case model.KindTask:
		repo = s.tasks
	case model.KindEvent:
		repo = s.events
	default:
		return nil, nil, fmt.Errorf("rule %d templates unsupported kind %v", rule.ID, rule.Kind)
	}

	occ := recurrence.Instantiate(rule, day)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	id, err := repo.CreateMaterialized(ctx, tx, occ)
	if err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			existing, err := repo.GetByRuleAndDate(ctx, s.db, ruleID, day)
			if err != nil {
				return nil, issues, fmt.Errorf("fetch competing occurrence: %w", err)
			}
			return existing, issues, nil
		}
		return nil, issues, fmt.Errorf("insert materialized entity: %w", err)
	}

	if err := s.rules.IncrementOccurrencesCreated(ctx, tx, rule.ID, time.Now().UTC(), s.adviseNext(rule, day)); err != nil {
		return nil, issues, fmt.Errorf("rulesRepository.IncrementOccurrencesCreated: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, issues, fmt.Errorf("commit tx: %w", err)
	}

	occ.EntityID = &id
	occ.Virtual = false
	switch rule.Kind {
	case model.KindTask:
		occ.ID = fmt.Sprintf("t%v_%v", id, occ.Start.Unix())
	case model.KindEvent:
		occ.ID = fmt.Sprintf("e%v_%v", id, occ.Start.Unix())
	}

	return occ, issues, nil
}

// revalidateRefs re-checks the template's optional case and advisory
// matter references; templates routinely outlive the entity they were
// first linked to, so a dead reference is cleared, not an error.
func (s *Service) revalidateRefs(ctx context.Context, rule *model.RecurrenceRule) ([]*model.RuleIssue, error) {
	var caseID, matterID *int64
	switch rule.Kind {
	case model.KindTask:
		caseID, matterID = rule.Task.CaseID, rule.Task.MatterID
	case model.KindEvent:
		caseID, matterID = rule.Event.CaseID, rule.Event.MatterID
	}

	var issues []*model.RuleIssue

	if caseID != nil {
		ok, err := s.cases.Exists(ctx, s.db, *caseID)
		if err != nil {
			return nil, fmt.Errorf("casesRepository.Exists: %w", err)
		}
		if !ok {
			s.logger.Warnw("dropping stale case reference", "rule_id", rule.ID, "case_id", *caseID)
			issues = append(issues, &model.RuleIssue{RuleID: rule.ID, Reason: fmt.Sprintf("case %d no longer exists, reference dropped", *caseID)})
			caseID = nil
		}
	}

	if matterID != nil {
		ok, err := s.matters.Exists(ctx, s.db, *matterID)
		if err != nil {
			return nil, fmt.Errorf("mattersRepository.Exists: %w", err)
		}
		if !ok {
			s.logger.Warnw("dropping stale matter reference", "rule_id", rule.ID, "matter_id", *matterID)
			issues = append(issues, &model.RuleIssue{RuleID: rule.ID, Reason: fmt.Sprintf("advisory matter %d no longer exists, reference dropped", *matterID)})
			matterID = nil
		}
	}

	switch rule.Kind {
	case model.KindTask:
		rule.Task.CaseID, rule.Task.MatterID = caseID, matterID
	case model.KindEvent:
		rule.Event.CaseID, rule.Event.MatterID = caseID, matterID
	}

	return issues, nil
}

// adviseNext computes the advisory next_executed_at stamp: the first
// occurrence strictly after the materialized date. Purely informational,
// expansion never reads it.
func (s *Service) adviseNext(rule *model.RecurrenceRule, day time.Time) *time.Time {
	occs, err := recurrence.Expand(rule, day.AddDate(0, 0, 1), day.AddDate(2, 0, 0))
	if err != nil || len(occs) == 0 {
		return nil
	}
	next := occs[0].Start
	return &next
}
