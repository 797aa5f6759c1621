package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/josh-kwaku/economy-hud/internal/domain"
	"github.com/josh-kwaku/economy-hud/internal/logging"
	"github.com/josh-kwaku/economy-hud/internal/service"
	"github.com/josh-kwaku/economy-hud/internal/viewmodel"
)

const maxTransactionsLimit = 1000

type walletService interface {
	HUD(ctx context.Context, playerID uuid.UUID) viewmodel.ViewModel
	Transactions(ctx context.Context, playerID uuid.UUID, limit int) []viewmodel.Entry
	RecordTransaction(ctx context.Context, playerID uuid.UUID, kind domain.ResourceKind, amount int64, description string) (*service.TransactionResult, error)
	ClearLedger(ctx context.Context, playerID uuid.UUID) error
	SetForecast(ctx context.Context, playerID uuid.UUID, value int64) viewmodel.ViewModel
}

type WalletHandler struct {
	wallets walletService
}

func NewWalletHandler(wallets walletService) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

type recordTransactionRequest struct {
	Resource    string `json:"resource"`
	Amount      *int64 `json:"amount"`
	Description string `json:"description"`
}

func (r recordTransactionRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Resource == "" {
		errs = append(errs, FieldError{Field: "resource", Message: "required"})
	} else if _, err := domain.ParseResourceKind(r.Resource); err != nil {
		errs = append(errs, FieldError{Field: "resource", Message: "must be coins, gems, or credits"})
	}
	if r.Amount == nil {
		errs = append(errs, FieldError{Field: "amount", Message: "required"})
	}
	return errs
}

type setForecastRequest struct {
	Value *int64 `json:"value"`
}

type transactionsResponse struct {
	Entries []viewmodel.Entry `json:"entries"`
	Count   int               `json:"count"`
}

func (h *WalletHandler) HUD(w http.ResponseWriter, r *http.Request) {
	playerID, appErr := ownerFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	RespondSuccess(w, http.StatusOK, h.wallets.HUD(r.Context(), playerID))
}

func (h *WalletHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	playerID, appErr := ownerFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxTransactionsLimit {
			RespondValidationError(w, []FieldError{{Field: "limit", Message: "must be between 0 and 1000"}})
			return
		}
		limit = n
	}

	entries := h.wallets.Transactions(r.Context(), playerID, limit)
	RespondSuccess(w, http.StatusOK, transactionsResponse{Entries: entries, Count: len(entries)})
}

func (h *WalletHandler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	playerID, appErr := ownerFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req recordTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	kind, _ := domain.ParseResourceKind(req.Resource)
	result, err := h.wallets.RecordTransaction(r.Context(), playerID, kind, *req.Amount, req.Description)
	if err != nil {
		logging.FromContext(r.Context()).Warn("failed to record transaction", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, result)
}

func (h *WalletHandler) ClearTransactions(w http.ResponseWriter, r *http.Request) {
	playerID, appErr := ownerFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	if err := h.wallets.ClearLedger(r.Context(), playerID); err != nil {
		logging.FromContext(r.Context()).Error("failed to clear ledger", "error", err)
		RespondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WalletHandler) SetForecast(w http.ResponseWriter, r *http.Request) {
	playerID, appErr := ownerFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req setForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if req.Value == nil {
		RespondValidationError(w, []FieldError{{Field: "value", Message: "required"}})
		return
	}

	RespondSuccess(w, http.StatusOK, h.wallets.SetForecast(r.Context(), playerID, *req.Value))
}
