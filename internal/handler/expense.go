package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"expense-api/internal/logging"
	"expense-api/internal/models"
	"expense-api/internal/store"
	"expense-api/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// maxPageSize caps ?limit on expense listings.
const maxPageSize = 1000

// ExpenseHandler serves the expense ledger.
type ExpenseHandler struct {
	Expenses *store.Expenses
	Log      *slog.Logger
}

func NewExpenseHandler(expenses *store.Expenses, log *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		Expenses: expenses,
		Log:      logging.WithComponent(log, logging.ComponentHTTP),
	}
}

type createExpenseReq struct {
	Title       string           `json:"title" binding:"required,max=255"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Category    string           `json:"category" binding:"required"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
}

type expenseResp struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	Category    models.Category `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

func toExpenseResp(e *models.Expense) expenseResp {
	return expenseResp{
		ID:          e.ID,
		Title:       e.Title,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date,
	}
}

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid request body")
		return
	}

	in := store.NewExpense{
		Title:       req.Title,
		Amount:      *req.Amount,
		Category:    models.Category(req.Category),
		Description: req.Description,
	}
	if req.Date != "" {
		date, err := util.ParseDate(req.Date)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		in.Date = &date
	}

	expense, err := h.Expenses.Append(c.Request.Context(), user.ID, in)
	if err != nil {
		respondError(c, h.Log, "create expense", err)
		return
	}
	util.Success(c, toExpenseResp(expense))
}

// ListExpenses pages through the caller's expenses: ?skip=0&limit=100&category=food
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "skip must be a non-negative integer")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(store.DefaultLimit)))
	if err != nil || limit < 1 || limit > maxPageSize {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "limit must be between 1 and 1000")
		return
	}
	category := c.Query("category")
	if category != "" {
		if err := util.ValidateCategory(category); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
	}

	expenses, err := h.Expenses.List(c.Request.Context(), user.ID, store.ExpenseQuery{
		Offset:   skip,
		Limit:    limit,
		Category: models.Category(category),
	})
	if err != nil {
		respondError(c, h.Log, "list expenses", err)
		return
	}

	items := make([]expenseResp, 0, len(expenses))
	for i := range expenses {
		items = append(items, toExpenseResp(&expenses[i]))
	}
	util.Success(c, items)
}

// DeleteExpense removes one of the caller's expenses. Someone else's id gets
// the same 404 as a missing one.
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid expense id")
		return
	}

	deleted, err := h.Expenses.Remove(c.Request.Context(), user.ID, uint(id))
	if err != nil {
		respondError(c, h.Log, "delete expense", err)
		return
	}
	if !deleted {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Expense not found")
		return
	}

	util.Success(c, util.Response{
		"message": "Expense deleted successfully",
	})
}
