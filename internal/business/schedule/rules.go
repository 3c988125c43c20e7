package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/avlasov/legal-planner-backend/internal/model"
	"github.com/avlasov/legal-planner-backend/internal/recurrence"
	"github.com/google/uuid"
)

func (s *Service) CreateRule(ctx context.Context, info *model.RuleCreate) (*model.RecurrenceRule, error) {
	rule := &model.RecurrenceRule{
		Active:     true,
		Exclusions: map[int64]struct{}{},
		RuleCreate: *info,
	}

	if err := recurrence.ValidateRule(rule); err != nil {
		return nil, fmt.Errorf("validate rule: %w", err)
	}

	id, err := s.rules.CreateRule(ctx, s.db, rule)
	if err != nil {
		return nil, fmt.Errorf("rulesRepository.CreateRule: %w", err)
	}

	rule.ID = id
	return rule, nil
}

func (s *Service) GetRule(ctx context.Context, firmID uuid.UUID, id int64) (*model.RecurrenceRule, error) {
	rule, err := s.rules.GetRuleByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("rulesRepository.GetRuleByID: %w", err)
	}
	if rule.FirmID != firmID {
		return nil, model.ErrNoRecord
	}

	return rule, nil
}

// UpdateRule re-templates the rule. Future expansions pick the change up
// on the next consolidation; rows already materialized are independent
// entities and stay as they are. Setting active to false is the only way
// to retire a rule — rows are never deleted, so the materialization
// history and counter survive.
func (s *Service) UpdateRule(ctx context.Context, firmID uuid.UUID, id int64, info *model.RuleCreate, active bool) (*model.RecurrenceRule, error) {
	oldRule, err := s.GetRule(ctx, firmID, id)
	if err != nil {
		return nil, err
	}

	rule := &model.RecurrenceRule{
		ID:                 oldRule.ID,
		Active:             active,
		Exclusions:         oldRule.Exclusions,
		OccurrencesCreated: oldRule.OccurrencesCreated,
		LastExecutedAt:     oldRule.LastExecutedAt,
		NextExecutedAt:     oldRule.NextExecutedAt,
		RuleCreate:         *info,
	}
	rule.FirmID = oldRule.FirmID

	if err := recurrence.ValidateRule(rule); err != nil {
		return nil, fmt.Errorf("validate rule: %w", err)
	}

	if err := s.rules.UpdateRule(ctx, s.db, rule); err != nil {
		return nil, fmt.Errorf("rulesRepository.UpdateRule: %w", err)
	}

	return rule, nil
}

// ExcludeOccurrence suppresses a single date of the series — the
// "delete this one occurrence" operation. The rule and every other
// occurrence are untouched; excluding an already-excluded date is a
// no-op.
func (s *Service) ExcludeOccurrence(ctx context.Context, firmID uuid.UUID, ruleID int64, date time.Time) error {
	if _, err := s.GetRule(ctx, firmID, ruleID); err != nil {
		return err
	}

	if err := s.rules.AppendExclusion(ctx, s.db, ruleID, date); err != nil {
		return fmt.Errorf("rulesRepository.AppendExclusion: %w", err)
	}

	return nil
}
