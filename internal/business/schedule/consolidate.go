package schedule

import (
	"context"
	"fmt"
	"sort"

	"github.com/avlasov/legal-planner-backend/internal/model"
	"github.com/avlasov/legal-planner-backend/internal/recurrence"
	"github.com/google/uuid"
)

// Consolidate merges the firm's real occurrences with the virtual ones
// expanded from its active rules inside the filter window, removes
// virtuals already materialized, applies the caller's filters and sorts
// by start time. It mutates nothing.
//
// A malformed rule is skipped and reported as an issue; one bad rule
// must not blank out the firm's calendar. When the rule listing itself
// fails, the result degrades to the real occurrences only.
func (s *Service) Consolidate(ctx context.Context, firmID uuid.UUID, filter model.OccurrencesFilter) ([]*model.Occurrence, []*model.RuleIssue, error) {
	kinds := kindSet(filter.Kinds)

	reals, err := s.fetchReal(ctx, firmID, filter, kinds)
	if err != nil {
		return nil, nil, err
	}

	realsByRule := make(map[int64][]*model.Occurrence)
	for _, o := range reals {
		if o.RuleID != nil {
			realsByRule[*o.RuleID] = append(realsByRule[*o.RuleID], o)
		}
	}

	var issues []*model.RuleIssue

	rules, err := s.rules.GetActiveRules(ctx, s.db, firmID)
	if err != nil {
		s.logger.Errorw("listing active rules failed, returning real occurrences only",
			"firm_id", firmID, "err", err)
		issues = append(issues, &model.RuleIssue{Reason: fmt.Sprintf("recurring schedules unavailable: %v", err)})
		rules = nil
	}

	res := reals
	for _, rule := range rules {
		if _, ok := kinds[rule.Kind]; !ok {
			continue
		}

		virtuals, err := recurrence.Expand(rule, filter.From, filter.To)
		if err != nil {
			s.logger.Warnw("skipping malformed rule", "rule_id", rule.ID, "err", err)
			issues = append(issues, &model.RuleIssue{RuleID: rule.ID, Reason: err.Error()})
			continue
		}

		res = append(res, recurrence.Dedupe(virtuals, realsByRule[rule.ID])...)
	}

	res = applyFilters(res, filter)

	sort.SliceStable(res, func(i, j int) bool {
		if !res[i].Start.Equal(res[j].Start) {
			return res[i].Start.Before(res[j].Start)
		}
		return ruleIDOf(res[i]) < ruleIDOf(res[j])
	})

	return res, issues, nil
}

func (s *Service) fetchReal(ctx context.Context, firmID uuid.UUID, filter model.OccurrencesFilter, kinds map[model.EntityKind]struct{}) ([]*model.Occurrence, error) {
	var res []*model.Occurrence

	readers := []struct {
		kind model.EntityKind
		repo occurrencesReader
	}{
		{model.KindTask, s.tasks},
		{model.KindEvent, s.events},
		{model.KindHearing, s.hearings},
	}

	for _, r := range readers {
		if _, ok := kinds[r.kind]; !ok {
			continue
		}

		occs, err := r.repo.GetOccurrences(ctx, s.db, firmID, filter.From, filter.To)
		if err != nil {
			return nil, fmt.Errorf("fetch occurrences for kind %v: %w", r.kind, err)
		}
		res = append(res, occs...)
	}

	return res, nil
}

func applyFilters(occs []*model.Occurrence, filter model.OccurrencesFilter) []*model.Occurrence {
	statuses := make(map[model.Status]struct{}, len(filter.Statuses))
	for _, st := range filter.Statuses {
		statuses[st] = struct{}{}
	}

	res := occs[:0]
	for _, o := range occs {
		if len(statuses) != 0 && o.Status != "" {
			if _, ok := statuses[o.Status]; !ok {
				continue
			}
		}

		// Records with no assignees predate assignment and stay visible
		// to everyone.
		if filter.AssigneeID != nil && len(o.AssigneeIDs) != 0 && !containsID(o.AssigneeIDs, *filter.AssigneeID) {
			continue
		}

		res = append(res, o)
	}

	return res
}

func kindSet(kinds []model.EntityKind) map[model.EntityKind]struct{} {
	res := make(map[model.EntityKind]struct{}, 3)
	if len(kinds) == 0 {
		res[model.KindTask] = struct{}{}
		res[model.KindEvent] = struct{}{}
		res[model.KindHearing] = struct{}{}
		return res
	}
	for _, k := range kinds {
		res[k] = struct{}{}
	}
	return res
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func ruleIDOf(o *model.Occurrence) int64 {
	if o.RuleID == nil {
		return 0
	}
	return *o.RuleID
}
