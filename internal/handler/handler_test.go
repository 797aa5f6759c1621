package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/economy-hud/internal/auth"
	"github.com/josh-kwaku/economy-hud/internal/domain"
	"github.com/josh-kwaku/economy-hud/internal/forecast"
	"github.com/josh-kwaku/economy-hud/internal/service"
	"github.com/josh-kwaku/economy-hud/internal/simulate"
	"github.com/josh-kwaku/economy-hud/internal/viewmodel"
)

type mockWallets struct {
	recordErr  error
	recorded   domain.ResourceKind
	amount     int64
	limit      int
	forecast   int64
	cleared    bool
	forecastRq forecast.Request
	params     simulate.Params
}

func (m *mockWallets) HUD(context.Context, uuid.UUID) viewmodel.ViewModel {
	return viewmodel.ViewModel{ForecastText: "+0"}
}

func (m *mockWallets) Transactions(_ context.Context, _ uuid.UUID, limit int) []viewmodel.Entry {
	m.limit = limit
	return []viewmodel.Entry{}
}

func (m *mockWallets) RecordTransaction(_ context.Context, _ uuid.UUID, kind domain.ResourceKind, amount int64, _ string) (*service.TransactionResult, error) {
	if m.recordErr != nil {
		return nil, m.recordErr
	}
	m.recorded, m.amount = kind, amount
	return &service.TransactionResult{}, nil
}

func (m *mockWallets) ClearLedger(context.Context, uuid.UUID) error {
	m.cleared = true
	return nil
}

func (m *mockWallets) SetForecast(_ context.Context, _ uuid.UUID, value int64) viewmodel.ViewModel {
	m.forecast = value
	return viewmodel.ViewModel{Forecast: value}
}

func (m *mockWallets) RunForecast(_ context.Context, _ uuid.UUID, req forecast.Request) (*forecast.Result, error) {
	m.forecastRq = req
	return &forecast.Result{}, nil
}

func (m *mockWallets) Simulate(_ context.Context, _ uuid.UUID, p simulate.Params) (*simulate.Result, error) {
	m.params = p
	return &simulate.Result{}, nil
}

func newMux(m *mockWallets) *http.ServeMux {
	wh := NewWalletHandler(m)
	ph := NewProjectionHandler(m)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /players/{id}/hud", wh.HUD)
	mux.HandleFunc("GET /players/{id}/transactions", wh.ListTransactions)
	mux.HandleFunc("POST /players/{id}/transactions", wh.RecordTransaction)
	mux.HandleFunc("DELETE /players/{id}/transactions", wh.ClearTransactions)
	mux.HandleFunc("PUT /players/{id}/forecast", wh.SetForecast)
	mux.HandleFunc("POST /players/{id}/forecast/weekly", ph.WeeklyForecast)
	mux.HandleFunc("POST /players/{id}/simulate", ph.Simulate)
	return mux
}

func serve(t *testing.T, mux http.Handler, claims *auth.Claims, method, path, body string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	if claims != nil {
		req = req.WithContext(auth.ContextWithClaims(req.Context(), *claims))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var resp APIResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestRespondDomainError(t *testing.T) {
	tests := []struct {
		err      error
		wantCode string
		status   int
	}{
		{domain.ErrInsufficientBalance, "INSUFFICIENT_BALANCE", http.StatusUnprocessableEntity},
		{domain.ErrBalanceOverflow, "BALANCE_OVERFLOW", http.StatusUnprocessableEntity},
		{domain.ErrInvalidResource, "INVALID_RESOURCE", http.StatusBadRequest},
		{domain.ErrInvalidWeeks, "INVALID_WEEKS", http.StatusBadRequest},
		{domain.ErrInvalidRequest, "INVALID_REQUEST", http.StatusBadRequest},
		{errors.New("disk on fire"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondDomainError(rec, fmt.Errorf("wrapped: %w", tt.err))

			assert.Equal(t, tt.status, rec.Code)
			var resp APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestOwnership(t *testing.T) {
	owner := uuid.New()
	path := "/players/" + owner.String() + "/hud"
	mux := newMux(&mockWallets{})

	tests := []struct {
		name   string
		claims *auth.Claims
		path   string
		status int
	}{
		{name: "no claims", path: path, status: http.StatusUnauthorized},
		{name: "owner", claims: &auth.Claims{PlayerID: owner, Role: auth.RolePlayer}, path: path, status: http.StatusOK},
		{name: "stranger", claims: &auth.Claims{PlayerID: uuid.New(), Role: auth.RolePlayer}, path: path, status: http.StatusNotFound},
		{name: "system", claims: &auth.Claims{PlayerID: uuid.New(), Role: auth.RoleSystem}, path: path, status: http.StatusOK},
		{name: "malformed id", claims: &auth.Claims{Role: auth.RoleSystem}, path: "/players/123/hud", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := serve(t, mux, tt.claims, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRecordTransactionHandler(t *testing.T) {
	id := uuid.New()
	claims := &auth.Claims{PlayerID: id, Role: auth.RolePlayer}
	path := "/players/" + id.String() + "/transactions"

	m := &mockWallets{}
	rec, resp := serve(t, newMux(m), claims, http.MethodPost, path, `{"resource":"Coaching Credits","amount":-3}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, domain.ResourceTertiary, m.recorded)
	assert.Equal(t, int64(-3), m.amount)

	m = &mockWallets{recordErr: fmt.Errorf("Add: %w", domain.ErrInsufficientBalance)}
	rec, resp = serve(t, newMux(m), claims, http.MethodPost, path, `{"resource":"coins","amount":-3}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "INSUFFICIENT_BALANCE", resp.Error.Code)

	rec, resp = serve(t, newMux(&mockWallets{}), claims, http.MethodPost, path, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	details, ok := resp.Error.Details.([]any)
	require.True(t, ok)
	assert.Len(t, details, 2)
}

func TestListAndClearHandlers(t *testing.T) {
	id := uuid.New()
	claims := &auth.Claims{PlayerID: id, Role: auth.RolePlayer}
	base := "/players/" + id.String()
	m := &mockWallets{}
	mux := newMux(m)

	rec, _ := serve(t, mux, claims, http.MethodGet, base+"/transactions?limit=7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, m.limit)

	rec, _ = serve(t, mux, claims, http.MethodGet, base+"/transactions?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = serve(t, mux, claims, http.MethodDelete, base+"/transactions", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, m.cleared)

	rec, _ = serve(t, mux, claims, http.MethodPut, base+"/forecast", `{"value":-200}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(-200), m.forecast)
}

func TestProjectionHandlers(t *testing.T) {
	id := uuid.New()
	claims := &auth.Claims{PlayerID: id, Role: auth.RolePlayer}
	base := "/players/" + id.String()
	m := &mockWallets{}
	mux := newMux(m)

	rec, _ := serve(t, mux, claims, http.MethodPost, base+"/forecast/weekly",
		`{"weeks":4,"income":10,"expenses":{"week_2":5},"bonuses":{"3":1}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, m.forecastRq.Weeks)
	assert.Equal(t, map[int]int64{2: 5}, m.forecastRq.Expenses)
	assert.Equal(t, map[int]int64{3: 1}, m.forecastRq.Bonuses)

	rec, _ = serve(t, mux, claims, http.MethodPost, base+"/forecast/weekly", `{"weeks":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = serve(t, mux, claims, http.MethodPost, base+"/simulate", `{"daily_income_primary":7}`)
	require.Equal(t, http.StatusOK, rec.Code)
	want := simulate.DefaultParams()
	want.DailyIncomePrimary = 7
	assert.Equal(t, want, m.params)

	rec, _ = serve(t, mux, claims, http.MethodPost, base+"/simulate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, simulate.DefaultParams(), m.params)
}
