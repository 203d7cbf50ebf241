package handler

import (
	"log/slog"
	"net/http"

	"expense-api/internal/logging"
	"expense-api/internal/models"
	"expense-api/internal/store"
	"expense-api/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BudgetHandler serves the budget registry.
type BudgetHandler struct {
	Budgets *store.Budgets
	Log     *slog.Logger
}

func NewBudgetHandler(budgets *store.Budgets, log *slog.Logger) *BudgetHandler {
	return &BudgetHandler{
		Budgets: budgets,
		Log:     logging.WithComponent(log, logging.ComponentHTTP),
	}
}

type createBudgetReq struct {
	Category    string           `json:"category" binding:"required"`
	LimitAmount *decimal.Decimal `json:"limit_amount" binding:"required"`
	Month       int              `json:"month" binding:"required,min=1,max=12"`
	Year        int              `json:"year" binding:"required"`
}

type budgetResp struct {
	ID          uint            `json:"id"`
	Category    models.Category `json:"category"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
}

func toBudgetResp(b *models.Budget) budgetResp {
	return budgetResp{
		ID:          b.ID,
		Category:    b.Category,
		LimitAmount: b.LimitAmount,
		Month:       b.Month,
		Year:        b.Year,
	}
}

func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createBudgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid request body")
		return
	}

	budget, err := h.Budgets.Create(c.Request.Context(), user.ID, store.NewBudget{
		Category:    models.Category(req.Category),
		LimitAmount: *req.LimitAmount,
		Month:       req.Month,
		Year:        req.Year,
	})
	if err != nil {
		respondError(c, h.Log, "create budget", err)
		return
	}
	util.Success(c, toBudgetResp(budget))
}

// ListBudgets returns the caller's budgets, optionally ?month=&year=
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	month, errM := optionalIntQuery(c, "month")
	year, errY := optionalIntQuery(c, "year")
	if errM != nil || errY != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "month and year must be integers")
		return
	}

	budgets, err := h.Budgets.List(c.Request.Context(), user.ID, store.BudgetQuery{Month: month, Year: year})
	if err != nil {
		respondError(c, h.Log, "list budgets", err)
		return
	}

	items := make([]budgetResp, 0, len(budgets))
	for i := range budgets {
		items = append(items, toBudgetResp(&budgets[i]))
	}
	util.Success(c, items)
}
