package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-twin/internal/api/middleware"
	"github.com/dvloznov/finance-twin/internal/domain"
	"github.com/dvloznov/finance-twin/internal/finance"
	"github.com/dvloznov/finance-twin/internal/repo"
	"github.com/dvloznov/finance-twin/internal/session"
)

const dateFormat = "2006-01-02"

// DashboardHandler exposes the dashboard core over JSON. It is a thin layer:
// all state transitions and error-to-notification conversion live in the
// service, the handler only translates HTTP.
type DashboardHandler struct {
	svc *finance.Service
	log zerolog.Logger
}

// NewDashboardHandler creates the handler for the given session's service.
func NewDashboardHandler(svc *finance.Service, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, log: log}
}

// Summary handles GET /api/summary
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"total_balance":        h.svc.TotalBalance(),
		"monthly_income":       h.svc.MonthlyIncome(),
		"monthly_expenses":     h.svc.MonthlyExpenses(),
		"spending_by_category": h.svc.SpendingByCategory(),
	})
}

// Session handles GET /api/session
func (h *DashboardHandler) Session(w http.ResponseWriter, r *http.Request) {
	user := session.FromContext(r.Context())
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": user != nil,
		"user":          user,
	})
}

// ListTransactions handles GET /api/transactions
func (h *DashboardHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions := h.svc.Transactions()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

// AddTransaction handles POST /api/transactions
func (h *DashboardHandler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID   string  `json:"account_id"`
		Date        string  `json:"date"`
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Type        string  `json:"type"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, err := time.Parse(dateFormat, req.Date)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	typ := domain.TransactionType(req.Type)
	if typ != domain.TransactionIncome && typ != domain.TransactionExpense {
		middleware.WriteError(w, http.StatusBadRequest, "type must be income or expense")
		return
	}

	input := domain.TransactionInput{
		Date:        date,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Type:        typ,
	}

	var tx *domain.Transaction
	if req.AccountID != "" {
		tx, err = h.svc.AddTransactionTo(r.Context(), req.AccountID, input)
	} else {
		tx, err = h.svc.AddTransaction(r.Context(), input)
	}
	if err != nil {
		h.writeServiceError(w, err, "Failed to add transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, tx)
}

// ListAccounts handles GET /api/accounts
func (h *DashboardHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts := h.svc.Accounts()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"accounts":      accounts,
		"total_balance": h.svc.TotalBalance(),
	})
}

// ListGoals handles GET /api/goals
func (h *DashboardHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"goals": h.svc.Goals(),
	})
}

// CreateGoal handles POST /api/goals
func (h *DashboardHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          string  `json:"name"`
		TargetAmount  float64 `json:"target_amount"`
		CurrentAmount float64 `json:"current_amount"`
		Deadline      string  `json:"deadline"`
		Category      string  `json:"category"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		middleware.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}

	deadline, err := time.Parse(dateFormat, req.Deadline)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "deadline must be YYYY-MM-DD")
		return
	}

	goal, err := h.svc.CreateGoal(r.Context(), domain.GoalInput{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      deadline,
		Category:      req.Category,
	})
	if err != nil {
		h.writeServiceError(w, err, "Failed to create goal")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, goal)
}

// UpdateGoalProgress handles POST /api/goals/{goalId}/progress
func (h *DashboardHandler) UpdateGoalProgress(w http.ResponseWriter, r *http.Request, goalID string) {
	var req struct {
		Amount float64 `json:"amount"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.svc.UpdateGoal(r.Context(), goalID, req.Amount); err != nil {
		h.writeServiceError(w, err, "Failed to update goal")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{
		"goal_id": goalID,
		"status":  "updated",
	})
}

// ListBudgets handles GET /api/budgets
func (h *DashboardHandler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"budgets": h.svc.Budgets(),
	})
}

// ListScenarios handles GET /api/scenarios
func (h *DashboardHandler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"scenarios": h.svc.Scenarios(),
	})
}

// RunScenario handles POST /api/scenarios
func (h *DashboardHandler) RunScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Adjustments domain.Adjustments `json:"adjustments"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// RunScenario keeps a local result even when persistence fails, so an
	// error here is strictly internal.
	scenario, err := h.svc.RunScenario(r.Context(), req.Adjustments)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to run scenario")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to run scenario")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, scenario)
}

func (h *DashboardHandler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, repo.ErrReadOnly):
		middleware.WriteError(w, http.StatusUnauthorized, "Sign in to save your data")
	default:
		h.log.Error().Err(err).Msg(fallback)
		middleware.WriteError(w, http.StatusBadGateway, fallback)
	}
}
