package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/josh-kwaku/economy-hud/internal/forecast"
	"github.com/josh-kwaku/economy-hud/internal/logging"
	"github.com/josh-kwaku/economy-hud/internal/simulate"
)

type projectionService interface {
	RunForecast(ctx context.Context, playerID uuid.UUID, req forecast.Request) (*forecast.Result, error)
	Simulate(ctx context.Context, playerID uuid.UUID, params simulate.Params) (*simulate.Result, error)
}

// ProjectionHandler serves the weekly forecast and the one-week simulation.
type ProjectionHandler struct {
	projections projectionService
}

func NewProjectionHandler(projections projectionService) *ProjectionHandler {
	return &ProjectionHandler{projections: projections}
}

type weeklyForecastRequest struct {
	Weeks    int              `json:"weeks"`
	Salary   int64            `json:"salary"`
	Income   int64            `json:"income"`
	Expenses map[string]int64 `json:"expenses"`
	Bonuses  map[string]int64 `json:"bonuses"`
}

func (r weeklyForecastRequest) toRequest() (forecast.Request, []FieldError) {
	var errs []FieldError
	if r.Weeks < 1 {
		errs = append(errs, FieldError{Field: "weeks", Message: "must be at least 1"})
	}
	expenses, err := forecast.ParseWeekKeys(r.Expenses)
	if err != nil {
		errs = append(errs, FieldError{Field: "expenses", Message: "keys must be week numbers like 3 or week_3"})
	}
	bonuses, err := forecast.ParseWeekKeys(r.Bonuses)
	if err != nil {
		errs = append(errs, FieldError{Field: "bonuses", Message: "keys must be week numbers like 3 or week_3"})
	}
	return forecast.Request{
		Weeks:    r.Weeks,
		Salary:   r.Salary,
		Income:   r.Income,
		Expenses: expenses,
		Bonuses:  bonuses,
	}, errs
}

// simulateRequest leaves unset fields at their defaults.
type simulateRequest struct {
	DailyIncomePrimary   *int64 `json:"daily_income_primary"`
	DailyIncomeSecondary *int64 `json:"daily_income_secondary"`
	DailyExpensesPrimary *int64 `json:"daily_expenses_primary"`
	WeeklyBonusPrimary   *int64 `json:"weekly_bonus_primary"`
	WeeklyBonusSecondary *int64 `json:"weekly_bonus_secondary"`
}

func (r simulateRequest) toParams() (simulate.Params, []FieldError) {
	p := simulate.DefaultParams()
	var errs []FieldError
	set := func(field string, src *int64, dst *int64) {
		if src == nil {
			return
		}
		if *src < 0 {
			errs = append(errs, FieldError{Field: field, Message: "must not be negative"})
			return
		}
		*dst = *src
	}
	set("daily_income_primary", r.DailyIncomePrimary, &p.DailyIncomePrimary)
	set("daily_income_secondary", r.DailyIncomeSecondary, &p.DailyIncomeSecondary)
	set("daily_expenses_primary", r.DailyExpensesPrimary, &p.DailyExpensesPrimary)
	set("weekly_bonus_primary", r.WeeklyBonusPrimary, &p.WeeklyBonusPrimary)
	set("weekly_bonus_secondary", r.WeeklyBonusSecondary, &p.WeeklyBonusSecondary)
	return p, errs
}

func (h *ProjectionHandler) WeeklyForecast(w http.ResponseWriter, r *http.Request) {
	playerID, appErr := ownerFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var body weeklyForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	req, fields := body.toRequest()
	if len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	res, err := h.projections.RunForecast(r.Context(), playerID, req)
	if err != nil {
		logging.FromContext(r.Context()).Warn("forecast rejected", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, res)
}

func (h *ProjectionHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	playerID, appErr := ownerFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var body simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	params, fields := body.toParams()
	if len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	res, err := h.projections.Simulate(r.Context(), playerID, params)
	if err != nil {
		logging.FromContext(r.Context()).Error("simulation failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, res)
}
