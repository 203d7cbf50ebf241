package store

import (
	"time"

	"expense-api/internal/models"

	"github.com/shopspring/decimal"
)

func (s *StoreSuite) TestAppend_DefaultsDateToNow() {
	u := s.mustUser("a@example.com")
	now := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	s.expenses.now = func() time.Time { return now }

	e, err := s.expenses.Append(s.ctx, u.ID, NewExpense{
		Title:       "Lunch",
		Amount:      dec("12.50"),
		Category:    models.CategoryFood,
		Description: "noodles",
	})
	s.Require().NoError(err)
	s.NotZero(e.ID)
	s.True(e.Date.Equal(now))
	s.Equal(u.ID, e.UserID)

	stored, err := s.expenses.Within(s.ctx, u.ID, nil)
	s.Require().NoError(err)
	s.Require().Len(stored, 1)
	s.True(stored[0].Amount.Equal(dec("12.5")), "amount %s", stored[0].Amount)
	s.Equal("noodles", stored[0].Description)
	s.True(stored[0].Date.Equal(now))
}

func (s *StoreSuite) TestAppend_Validation() {
	u := s.mustUser("a@example.com")

	_, err := s.expenses.Append(s.ctx, u.ID, NewExpense{Title: "x", Amount: dec("-1"), Category: models.CategoryFood})
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.expenses.Append(s.ctx, u.ID, NewExpense{Title: "x", Amount: dec("1"), Category: "groceries"})
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.expenses.Append(s.ctx, u.ID, NewExpense{Title: "free", Amount: decimal.Zero, Category: models.CategoryOther})
	s.NoError(err)
}

func (s *StoreSuite) TestList_Pagination() {
	u := s.mustUser("a@example.com")
	now := time.Now()
	first := s.mustExpense(u.ID, "first", "1", models.CategoryFood, now)
	second := s.mustExpense(u.ID, "second", "2", models.CategoryFood, now.Add(-48*time.Hour))
	s.mustExpense(u.ID, "third", "3", models.CategoryBills, now)

	page, err := s.expenses.List(s.ctx, u.ID, ExpenseQuery{Offset: 1, Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(second.ID, page[0].ID)

	all, err := s.expenses.List(s.ctx, u.ID, ExpenseQuery{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal(first.ID, all[0].ID, "insertion order, not date order")

	beyond, err := s.expenses.List(s.ctx, u.ID, ExpenseQuery{Offset: 10})
	s.Require().NoError(err)
	s.NotNil(beyond)
	s.Empty(beyond)
}

func (s *StoreSuite) TestList_CategoryFilter() {
	u := s.mustUser("a@example.com")
	now := time.Now()
	s.mustExpense(u.ID, "bus", "2", models.CategoryTransport, now)
	s.mustExpense(u.ID, "pizza", "9", models.CategoryFood, now)
	s.mustExpense(u.ID, "train", "20", models.CategoryTransport, now)

	got, err := s.expenses.List(s.ctx, u.ID, ExpenseQuery{Category: models.CategoryTransport})
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("bus", got[0].Title)
	s.Equal("train", got[1].Title)
}

func (s *StoreSuite) TestOwnershipIsolation_Expenses() {
	alice := s.mustUser("alice@example.com")
	bob := s.mustUser("bob@example.com")
	secret := s.mustExpense(alice.ID, "alice only", "10", models.CategoryShopping, time.Now())

	list, err := s.expenses.List(s.ctx, bob.ID, ExpenseQuery{})
	s.Require().NoError(err)
	s.Empty(list)

	deleted, err := s.expenses.Remove(s.ctx, bob.ID, secret.ID)
	s.Require().NoError(err)
	s.False(deleted)

	still, err := s.expenses.List(s.ctx, alice.ID, ExpenseQuery{})
	s.Require().NoError(err)
	s.Len(still, 1)
}

func (s *StoreSuite) TestRemove_Idempotent() {
	u := s.mustUser("a@example.com")
	e := s.mustExpense(u.ID, "once", "5", models.CategoryOther, time.Now())

	deleted, err := s.expenses.Remove(s.ctx, u.ID, e.ID)
	s.Require().NoError(err)
	s.True(deleted)

	deleted, err = s.expenses.Remove(s.ctx, u.ID, e.ID)
	s.Require().NoError(err)
	s.False(deleted)

	deleted, err = s.expenses.Remove(s.ctx, u.ID, 9999)
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *StoreSuite) TestWithin_MonthBoundaries() {
	u := s.mustUser("a@example.com")
	s.mustExpense(u.ID, "last of feb", "1", models.CategoryFood, time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC))
	s.mustExpense(u.ID, "first of mar", "2", models.CategoryFood, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	s.mustExpense(u.ID, "end of mar", "3", models.CategoryFood, time.Date(2025, 3, 31, 23, 59, 59, 500, time.UTC))
	s.mustExpense(u.ID, "first of apr", "4", models.CategoryFood, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))

	got, err := s.expenses.Within(s.ctx, u.ID, &Period{Year: 2025, Month: 3})
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("first of mar", got[0].Title)
	s.Equal("end of mar", got[1].Title)
}

func (s *StoreSuite) TestAppend_KeepsFullPrecision() {
	u := s.mustUser("a@example.com")
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	amounts := []string{"123456789012.12345678", "12345678901234567.89", "0.00000001"}
	for _, a := range amounts {
		s.mustExpense(u.ID, "big", a, models.CategoryBills, day)
	}

	stored, err := s.expenses.List(s.ctx, u.ID, ExpenseQuery{Limit: DefaultLimit})
	s.Require().NoError(err)
	s.Require().Len(stored, len(amounts))
	for i, a := range amounts {
		s.Equal(a, stored[i].Amount.String())
	}

	summary, err := s.analytics.SpendingSummary(s.ctx, u.ID, 3, 2025)
	s.Require().NoError(err)
	s.Equal("12345802358023580.01345679", summary.TotalAmount.String())
}
