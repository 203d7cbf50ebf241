package store

import (
	"context"
	"fmt"
	"time"

	"expense-api/internal/models"
	"expense-api/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultLimit is the page size used when a listing does not ask for one.
const DefaultLimit = 100

// NewExpense is the input to Expenses.Append. A nil Date means now.
type NewExpense struct {
	Title       string
	Amount      decimal.Decimal
	Category    models.Category
	Description string
	Date        *time.Time
}

// ExpenseQuery pages through one user's expenses. An empty Category matches all.
type ExpenseQuery struct {
	Offset   int
	Limit    int
	Category models.Category
}

// Period selects one calendar month.
type Period struct {
	Year  int
	Month int
}

// Expenses is the owner-scoped expense ledger.
type Expenses struct {
	db  *gorm.DB
	now func() time.Time
}

func NewExpenses(db *gorm.DB) *Expenses {
	return &Expenses{db: db, now: time.Now}
}

func (s *Expenses) owned(ctx context.Context, userID uint) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Expense{}).Where("user_id = ?", userID)
}

// Append stores a new expense for userID.
func (s *Expenses) Append(ctx context.Context, userID uint, in NewExpense) (*models.Expense, error) {
	if err := util.ValidateAmount(in.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := util.ValidateCategory(string(in.Category)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	date := s.now().UTC()
	if in.Date != nil {
		date = in.Date.UTC()
	}

	expense := models.Expense{
		UserID:      userID,
		Title:       in.Title,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        date,
	}
	if err := s.db.WithContext(ctx).Create(&expense).Error; err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return &expense, nil
}

// List returns a page of userID's expenses in insertion order. Pages past the
// end are empty, not an error.
func (s *Expenses) List(ctx context.Context, userID uint, q ExpenseQuery) ([]models.Expense, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	f := filter{}.eqIf(q.Category != "", "category", q.Category)

	expenses := []models.Expense{}
	if err := f.apply(s.owned(ctx, userID)).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// Within returns every expense of userID, optionally restricted to one month,
// in insertion order.
func (s *Expenses) Within(ctx context.Context, userID uint, period *Period) ([]models.Expense, error) {
	q := s.owned(ctx, userID)
	if period != nil {
		start, end := util.MonthRange(period.Year, period.Month)
		q = q.Where("date >= ? AND date < ?", start, end)
	}

	expenses := []models.Expense{}
	if err := q.Order("id ASC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	return expenses, nil
}

// Remove deletes expense id if it belongs to userID and reports whether a row
// was deleted. Someone else's expense looks exactly like a missing one.
func (s *Expenses) Remove(ctx context.Context, userID, id uint) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Expense{})
	if res.Error != nil {
		return false, fmt.Errorf("delete expense: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
