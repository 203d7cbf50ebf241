package store

import (
	"context"
	"errors"
	"fmt"

	"expense-api/internal/models"
	"expense-api/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NewBudget is the input to Budgets.Create.
type NewBudget struct {
	Category    models.Category
	LimitAmount decimal.Decimal
	Month       int
	Year        int
}

// BudgetQuery narrows a listing. Nil fields do not filter.
type BudgetQuery struct {
	Month *int
	Year  *int
}

// Budgets is the per-user budget registry.
type Budgets struct {
	db *gorm.DB
}

func NewBudgets(db *gorm.DB) *Budgets {
	return &Budgets{db: db}
}

// Create stores a budget, or returns ErrBudgetExists when userID already has
// one for the same category, month and year. The unique index on those columns
// backs the pre-check, so concurrent creators cannot both succeed.
func (s *Budgets) Create(ctx context.Context, userID uint, in NewBudget) (*models.Budget, error) {
	if err := util.ValidateCategory(string(in.Category)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := util.ValidateMonth(in.Month); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := util.ValidateAmount(in.LimitAmount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Budget{}).
		Where("user_id = ? AND category = ? AND month = ? AND year = ?", userID, in.Category, in.Month, in.Year).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check budget: %w", err)
	}
	if count > 0 {
		return nil, ErrBudgetExists
	}

	budget := models.Budget{
		UserID:      userID,
		Category:    in.Category,
		LimitAmount: in.LimitAmount,
		Month:       in.Month,
		Year:        in.Year,
	}
	if err := s.db.WithContext(ctx).Create(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBudgetExists
		}
		return nil, fmt.Errorf("create budget: %w", err)
	}
	return &budget, nil
}

// List returns userID's budgets matching q, unpaginated.
func (s *Budgets) List(ctx context.Context, userID uint, q BudgetQuery) ([]models.Budget, error) {
	f := filter{}.eq("user_id", userID)
	if q.Month != nil {
		f = f.eq("month", *q.Month)
	}
	if q.Year != nil {
		f = f.eq("year", *q.Year)
	}

	budgets := []models.Budget{}
	if err := f.apply(s.db.WithContext(ctx).Model(&models.Budget{})).
		Order("id ASC").
		Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}
