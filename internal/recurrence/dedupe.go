package recurrence

import (
	"github.com/avlasov/legal-planner-backend/internal/model"
)

type occurrenceKey struct {
	ruleID int64
	date   int64
}

// Dedupe drops virtual occurrences that already exist as a materialized
// row for the same (rule, date). Dates compare at day granularity: a
// materialized row's stored time may drift from the rule's current
// time-of-day after a rule edit, and the row stays authoritative.
func Dedupe(virtuals, reals []*model.Occurrence) []*model.Occurrence {
	if len(virtuals) == 0 || len(reals) == 0 {
		return virtuals
	}

	materialized := make(map[occurrenceKey]struct{}, len(reals))
	for _, o := range reals {
		if o.RuleID == nil {
			continue
		}
		materialized[occurrenceKey{*o.RuleID, model.DateKey(o.Start)}] = struct{}{}
	}

	res := virtuals[:0]
	for _, v := range virtuals {
		if v.RuleID != nil {
			if _, ok := materialized[occurrenceKey{*v.RuleID, model.DateKey(v.Start)}]; ok {
				continue
			}
		}
		res = append(res, v)
	}

	return res
}
