package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/avlasov/legal-planner-backend/internal/model"
	"github.com/google/uuid"
)

var errCantRetrieveFirm = fmt.Errorf("can't retrieve firm id from context")

func (a *Api) getCalendarHandler(w http.ResponseWriter, r *http.Request) {
	firmID, ok := r.Context().Value(contextKeyFirmID).(uuid.UUID)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveFirm)
		return
	}

	filter, err := parseCalendarQuery(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	occurrences, issues, err := a.schedule.Consolidate(r.Context(), firmID, *filter)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("consolidate: %w", err))
		return
	}

	occResp, _ := mapSlice(occurrences, mapToOccurrenceResp)
	issuesResp, _ := mapSlice(issues, mapToIssueResp)

	resp := struct {
		Occurrences []*occurrenceResp `json:"occurrences"`
		Issues      []*issueResp      `json:"issues,omitempty"`
	}{
		Occurrences: occResp,
		Issues:      issuesResp,
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func parseCalendarQuery(r *http.Request) (*model.OccurrencesFilter, error) {
	var err error

	res := &model.OccurrencesFilter{}

	v := r.URL.Query().Get("from")
	if v == "" {
		return nil, fmt.Errorf("from must be provided")
	}
	res.From, err = time.Parse(dateFormat, v)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %w", err)
	}

	v = r.URL.Query().Get("to")
	if v == "" {
		return nil, fmt.Errorf("to must be provided")
	}
	res.To, err = time.Parse(dateFormat, v)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %w", err)
	}

	if res.To.Before(res.From) {
		return nil, fmt.Errorf("to must not precede from")
	}

	for _, v := range r.URL.Query()["kinds"] {
		kind, err := parseKind(v)
		if err != nil {
			return nil, err
		}
		res.Kinds = append(res.Kinds, kind)
	}

	for _, v := range r.URL.Query()["statuses"] {
		res.Statuses = append(res.Statuses, model.Status(v))
	}

	if v := r.URL.Query().Get("assignee_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid assignee id %v", v)
		}
		res.AssigneeID = &id
	}

	return res, nil
}
