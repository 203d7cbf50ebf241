package store

import (
	"context"

	"expense-api/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CategoryTotal is one row of a spending summary.
type CategoryTotal struct {
	Category    models.Category `json:"category"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// SpendingSummary is the per-category breakdown for one month.
type SpendingSummary struct {
	Summary     []CategoryTotal `json:"summary"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
}

// Analytics computes read-only aggregates over the ledger.
type Analytics struct {
	expenses *Expenses
}

func NewAnalytics(expenses *Expenses) *Analytics {
	return &Analytics{expenses: expenses}
}

// SpendingSummary groups userID's expenses dated in month/year by category.
func (a *Analytics) SpendingSummary(ctx context.Context, userID uint, month, year int) (*SpendingSummary, error) {
	expenses, err := a.expenses.Within(ctx, userID, &Period{Year: year, Month: month})
	if err != nil {
		return nil, err
	}

	totals, total := Summarize(expenses)
	return &SpendingSummary{
		Summary:     totals,
		TotalAmount: total,
		Month:       month,
		Year:        year,
	}, nil
}

// Summarize sums amounts per category and the grand total. Each percentage is
// groupTotal/total*100 rounded to two places, or zero when total is zero.
// Rows follow the order of models.Categories.
func Summarize(expenses []models.Expense) ([]CategoryTotal, decimal.Decimal) {
	sums := make(map[models.Category]decimal.Decimal)
	total := decimal.Zero
	for i := range expenses {
		e := &expenses[i]
		sums[e.Category] = sums[e.Category].Add(e.Amount)
		total = total.Add(e.Amount)
	}

	out := make([]CategoryTotal, 0, len(sums))
	appendRow := func(c models.Category, sum decimal.Decimal) {
		pct := decimal.Zero
		if total.IsPositive() {
			pct = sum.Div(total).Mul(hundred).Round(2)
		}
		out = append(out, CategoryTotal{Category: c, TotalAmount: sum, Percentage: pct})
	}

	for _, c := range models.Categories {
		if sum, ok := sums[c]; ok {
			appendRow(c, sum)
			delete(sums, c)
		}
	}
	// rows written before a category was retired
	for c, sum := range sums {
		appendRow(c, sum)
	}
	return out, total
}
