package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/avlasov/legal-planner-backend/internal/model"
	"github.com/avlasov/legal-planner-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ruleReq struct {
	Kind             string  `json:"kind"`
	Frequency        string  `json:"frequency"`
	Interval         int     `json:"interval"`
	DaysOfWeek       []int   `json:"days_of_week"`
	DayOfMonth       int     `json:"day_of_month"`
	Month            int     `json:"month"`
	TimeOfDay        string  `json:"time_of_day"`
	BusinessDaysOnly bool    `json:"business_days_only"`
	StartDate        date    `json:"start_date"`
	EndType          string  `json:"end_type"`
	EndDate          *date   `json:"end_date"`
	EndCount         int     `json:"end_count"`
	Active           *bool   `json:"active"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Priority         int     `json:"priority"`
	Color            string  `json:"color"`
	AssigneeIDs      []int64 `json:"assignee_ids"`
	CaseID           *int64  `json:"case_id"`
	MatterID         *int64  `json:"matter_id"`
}

func (a *Api) createRuleHandler(w http.ResponseWriter, r *http.Request) {
	firmID, ok := r.Context().Value(contextKeyFirmID).(uuid.UUID)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveFirm)
		return
	}

	req := &ruleReq{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	info, v := mapToRuleCreate(req, firmID)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	rule, err := a.schedule.CreateRule(r.Context(), info)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("create rule: %w", err))
		return
	}

	resp, _ := mapToRuleResp(rule)
	if err := a.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getRuleHandler(w http.ResponseWriter, r *http.Request) {
	firmID, ok := r.Context().Value(contextKeyFirmID).(uuid.UUID)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveFirm)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	rule, err := a.schedule.GetRule(r.Context(), firmID, id)
	if err != nil {
		if errors.Is(err, model.ErrNoRecord) {
			a.notFoundResponse(w, r)
			return
		}
		a.serverErrorResponse(w, r, fmt.Errorf("get rule: %w", err))
		return
	}

	resp, _ := mapToRuleResp(rule)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateRuleHandler(w http.ResponseWriter, r *http.Request) {
	firmID, ok := r.Context().Value(contextKeyFirmID).(uuid.UUID)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveFirm)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	req := &ruleReq{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	info, v := mapToRuleCreate(req, firmID)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	rule, err := a.schedule.UpdateRule(r.Context(), firmID, id, info, active)
	if err != nil {
		if errors.Is(err, model.ErrNoRecord) {
			a.notFoundResponse(w, r)
			return
		}
		a.serverErrorResponse(w, r, fmt.Errorf("update rule: %w", err))
		return
	}

	resp, _ := mapToRuleResp(rule)
	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) materializeHandler(w http.ResponseWriter, r *http.Request) {
	firmID, ok := r.Context().Value(contextKeyFirmID).(uuid.UUID)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveFirm)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	req := &struct {
		Date date `json:"date"`
	}{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	occ, issues, err := a.schedule.Materialize(r.Context(), firmID, id, time.Time(req.Date))
	switch {
	case errors.Is(err, model.ErrNoRecord):
		a.notFoundResponse(w, r)
		return
	case errors.Is(err, model.ErrRuleInactive), errors.Is(err, model.ErrDateExcluded):
		a.conflictResponse(w, r, err.Error())
		return
	case err != nil:
		a.serverErrorResponse(w, r, fmt.Errorf("materialize: %w", err))
		return
	}

	occResp, _ := mapToOccurrenceResp(occ)
	issuesResp, _ := mapSlice(issues, mapToIssueResp)

	resp := struct {
		Occurrence *occurrenceResp `json:"occurrence"`
		Issues     []*issueResp    `json:"issues,omitempty"`
	}{
		Occurrence: occResp,
		Issues:     issuesResp,
	}

	if err := a.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) excludeOccurrenceHandler(w http.ResponseWriter, r *http.Request) {
	firmID, ok := r.Context().Value(contextKeyFirmID).(uuid.UUID)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveFirm)
		return
	}

	id, err := parseIDParam(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	req := &struct {
		Date date `json:"date"`
	}{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if err := a.schedule.ExcludeOccurrence(r.Context(), firmID, id, time.Time(req.Date)); err != nil {
		if errors.Is(err, model.ErrNoRecord) {
			a.notFoundResponse(w, r)
			return
		}
		a.serverErrorResponse(w, r, fmt.Errorf("exclude occurrence: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid rule id")
	}
	return id, nil
}

func mapToRuleCreate(req *ruleReq, firmID uuid.UUID) (*model.RuleCreate, *validator.Validator) {
	v := validator.New()

	kind, err := parseKind(req.Kind)
	v.Check(err == nil, "kind", "must be task or event")
	v.Check(kind != model.KindHearing, "kind", "hearings cannot be templated by a rule")

	frequency, err := parseFrequency(req.Frequency)
	v.Check(err == nil, "frequency", "must be daily, weekly, monthly or yearly")

	endType, err := parseEndType(req.EndType)
	v.Check(err == nil, "end_type", "must be never, by_date or after_count")

	v.Check(req.Interval >= 1, "interval", "must be a positive integer")
	v.Check(len(req.Title) != 0, "title", "title must be provided")
	v.Check(!time.Time(req.StartDate).IsZero(), "start_date", "start date must be provided")

	timeOfDay, err := time.Parse(timeOfDayFormat, req.TimeOfDay)
	v.Check(err == nil, "time_of_day", "must be in HH:MM format")

	for _, d := range req.DaysOfWeek {
		v.Check(d >= 0 && d <= 6, "days_of_week", "weekday indices must be between 0 and 6")
	}

	switch frequency {
	case model.FrequencyWeekly:
		v.Check(len(req.DaysOfWeek) != 0, "days_of_week", "weekly rules need at least one weekday")
	case model.FrequencyMonthly:
		v.Check(req.DayOfMonth >= 1 && req.DayOfMonth <= 31, "day_of_month", "must be between 1 and 31")
	case model.FrequencyYearly:
		v.Check(req.DayOfMonth >= 1 && req.DayOfMonth <= 31, "day_of_month", "must be between 1 and 31")
		v.Check(req.Month >= 1 && req.Month <= 12, "month", "must be between 1 and 12")
	}

	if endType == model.EndByDate {
		v.Check(req.EndDate != nil, "end_date", "end date must be provided")
	}
	if endType == model.EndAfterCount {
		v.Check(req.EndCount >= 1, "end_count", "must be a positive integer")
	}

	if !v.Valid() {
		return nil, v
	}

	daysOfWeek := make(map[time.Weekday]struct{}, len(req.DaysOfWeek))
	for _, d := range req.DaysOfWeek {
		daysOfWeek[time.Weekday(d)] = struct{}{}
	}

	info := &model.RuleCreate{
		FirmID:           firmID,
		Kind:             kind,
		Frequency:        frequency,
		Interval:         req.Interval,
		DaysOfWeek:       daysOfWeek,
		DayOfMonth:       req.DayOfMonth,
		Month:            time.Month(req.Month),
		TimeOfDay:        time.Duration(timeOfDay.Hour())*time.Hour + time.Duration(timeOfDay.Minute())*time.Minute,
		BusinessDaysOnly: req.BusinessDaysOnly,
		StartDate:        time.Time(req.StartDate),
		End: model.EndCondition{
			Type:  endType,
			Count: req.EndCount,
		},
	}

	if req.EndDate != nil {
		endDate := time.Time(*req.EndDate)
		info.End.Date = &endDate
	}

	switch kind {
	case model.KindTask:
		info.Task = &model.TaskTemplate{
			Title:       req.Title,
			Description: req.Description,
			Priority:    model.Priority(req.Priority),
			AssigneeIDs: req.AssigneeIDs,
			CaseID:      req.CaseID,
			MatterID:    req.MatterID,
		}
	case model.KindEvent:
		info.Event = &model.EventTemplate{
			Title:       req.Title,
			Description: req.Description,
			Color:       req.Color,
			AssigneeIDs: req.AssigneeIDs,
			CaseID:      req.CaseID,
			MatterID:    req.MatterID,
		}
	}

	return info, v
}
