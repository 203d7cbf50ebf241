package store

import (
	"sync"

	"expense-api/internal/models"
)

func (s *StoreSuite) TestCreateBudget_Conflict() {
	u := s.mustUser("a@example.com")
	in := NewBudget{Category: models.CategoryFood, LimitAmount: dec("300"), Month: 6, Year: 2025}

	b, err := s.budgets.Create(s.ctx, u.ID, in)
	s.Require().NoError(err)
	s.NotZero(b.ID)
	s.True(b.LimitAmount.Equal(dec("300")))

	_, err = s.budgets.Create(s.ctx, u.ID, in)
	s.ErrorIs(err, ErrBudgetExists)
	s.NotErrorIs(err, ErrNotFound)

	// different month, different category and different owner are all fine
	_, err = s.budgets.Create(s.ctx, u.ID, NewBudget{Category: models.CategoryFood, LimitAmount: dec("300"), Month: 7, Year: 2025})
	s.NoError(err)
	_, err = s.budgets.Create(s.ctx, u.ID, NewBudget{Category: models.CategoryBills, LimitAmount: dec("300"), Month: 6, Year: 2025})
	s.NoError(err)
	other := s.mustUser("b@example.com")
	_, err = s.budgets.Create(s.ctx, other.ID, in)
	s.NoError(err)
}

func (s *StoreSuite) TestCreateBudget_ConcurrentCreatorsOnlyOneWins() {
	u := s.mustUser("a@example.com")
	in := NewBudget{Category: models.CategoryTransport, LimitAmount: dec("50"), Month: 1, Year: 2026}

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		losers  []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.budgets.Create(s.ctx, u.ID, in)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
				return
			}
			losers = append(losers, err)
		}()
	}
	wg.Wait()

	s.Equal(1, created)
	s.Len(losers, workers-1)
	for _, err := range losers {
		s.ErrorIs(err, ErrBudgetExists)
	}
	list, err := s.budgets.List(s.ctx, u.ID, BudgetQuery{})
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *StoreSuite) TestCreateBudget_Validation() {
	u := s.mustUser("a@example.com")

	_, err := s.budgets.Create(s.ctx, u.ID, NewBudget{Category: models.CategoryFood, LimitAmount: dec("1"), Month: 13, Year: 2025})
	s.ErrorIs(err, ErrInvalidInput)
	_, err = s.budgets.Create(s.ctx, u.ID, NewBudget{Category: "rent", LimitAmount: dec("1"), Month: 1, Year: 2025})
	s.ErrorIs(err, ErrInvalidInput)
	_, err = s.budgets.Create(s.ctx, u.ID, NewBudget{Category: models.CategoryFood, LimitAmount: dec("-1"), Month: 1, Year: 2025})
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *StoreSuite) TestListBudgets_Filters() {
	u := s.mustUser("a@example.com")
	for _, in := range []NewBudget{
		{Category: models.CategoryFood, LimitAmount: dec("1"), Month: 1, Year: 2025},
		{Category: models.CategoryBills, LimitAmount: dec("2"), Month: 1, Year: 2026},
		{Category: models.CategoryFood, LimitAmount: dec("3"), Month: 2, Year: 2025},
	} {
		_, err := s.budgets.Create(s.ctx, u.ID, in)
		s.Require().NoError(err)
	}

	month, year := 1, 2025
	all, err := s.budgets.List(s.ctx, u.ID, BudgetQuery{})
	s.Require().NoError(err)
	s.Len(all, 3)

	byMonth, err := s.budgets.List(s.ctx, u.ID, BudgetQuery{Month: &month})
	s.Require().NoError(err)
	s.Len(byMonth, 2)

	byYear, err := s.budgets.List(s.ctx, u.ID, BudgetQuery{Year: &year})
	s.Require().NoError(err)
	s.Len(byYear, 2)

	both, err := s.budgets.List(s.ctx, u.ID, BudgetQuery{Month: &month, Year: &year})
	s.Require().NoError(err)
	s.Require().Len(both, 1)
	s.True(both[0].LimitAmount.Equal(dec("1")))

	other := s.mustUser("b@example.com")
	none, err := s.budgets.List(s.ctx, other.ID, BudgetQuery{})
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *StoreSuite) TestCreateBudget_KeepsFullPrecision() {
	u := s.mustUser("a@example.com")
	limit := "123456789012.12345678"

	b, err := s.budgets.Create(s.ctx, u.ID, NewBudget{Category: models.CategoryBills, LimitAmount: dec(limit), Month: 3, Year: 2025})
	s.Require().NoError(err)
	s.Equal(limit, b.LimitAmount.String())

	list, err := s.budgets.List(s.ctx, u.ID, BudgetQuery{})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(limit, list[0].LimitAmount.String())
}
