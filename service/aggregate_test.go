package service

import (
	"testing"
	"time"

	"budget/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleCategories() []models.Category {
	return []models.Category{
		{ID: 1, Name: "Food", Budget: dec("300")},
		{ID: 2, Name: "Rent", Budget: dec("1000")},
	}
}

func TestSpendingByCategory_Example(t *testing.T) {
	expenses := []models.Expense{
		{ID: 1, CategoryID: 1, Amount: dec("50"), Date: day(2024, 5, 3)},
		{ID: 2, CategoryID: 1, Amount: dec("25"), Date: day(2024, 5, 9)},
	}

	got := SpendingByCategory(sampleCategories(), expenses)
	require.Len(t, got, 2)

	assert.Equal(t, "Food", got[0].CategoryName)
	assert.Equal(t, "300", got[0].Budget.String())
	assert.Equal(t, "75", got[0].Spent.String())
	assert.Equal(t, 25.0, got[0].Percentage)
	assert.Equal(t, "225", got[0].Remaining.String())

	assert.Equal(t, "Rent", got[1].CategoryName)
	assert.True(t, got[1].Spent.IsZero())
	assert.Equal(t, 0.0, got[1].Percentage)

	totalSpent := TotalSpent(expenses)
	assert.Equal(t, "75", totalSpent.String())
	assert.Equal(t, "1225", Remaining(TotalBudget(sampleCategories()), totalSpent).String())
}

func TestSpendingByCategory_OneEntryPerCategory(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Name: "Food", Budget: dec("100")},
		{ID: 2, Name: "Fun", Budget: dec("50")},
		{ID: 3, Name: "Gym", Budget: dec("40")},
	}
	expenses := []models.Expense{
		{CategoryID: 2, Amount: dec("10.50")},
		{CategoryID: 2, Amount: dec("4.50")},
		{CategoryID: 1, Amount: dec("1")},
	}

	got := SpendingByCategory(categories, expenses)
	require.Len(t, got, 3)

	seen := map[uint]int{}
	sum := decimal.Zero
	for _, s := range got {
		seen[s.CategoryID]++
		sum = sum.Add(s.Spent)
	}
	assert.Equal(t, map[uint]int{1: 1, 2: 1, 3: 1}, seen)
	assert.True(t, sum.Equal(TotalSpent(expenses)))
}

func TestSpendingByCategory_SortOrder(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Name: "Zoo", Budget: dec("100")},
		{ID: 2, Name: "Books", Budget: dec("100")},
		{ID: 3, Name: "Apples", Budget: dec("10")},
		{ID: 4, Name: "Cinema", Budget: dec("100")},
	}
	expenses := []models.Expense{
		{CategoryID: 1, Amount: dec("20")},
		{CategoryID: 2, Amount: dec("20")},
		{CategoryID: 3, Amount: dec("9")},
	}

	got := SpendingByCategory(categories, expenses)
	names := make([]string, 0, len(got))
	for _, s := range got {
		names = append(names, s.CategoryName)
	}
	// 90% > 20% (Books < Zoo) > 0%
	assert.Equal(t, []string{"Apples", "Books", "Zoo", "Cinema"}, names)
}

func TestSpendingByCategory_IgnoresUnknownCategory(t *testing.T) {
	expenses := []models.Expense{{CategoryID: 99, Amount: dec("10")}}
	got := SpendingByCategory(sampleCategories(), expenses)
	require.Len(t, got, 2)
	for _, s := range got {
		assert.True(t, s.Spent.IsZero())
	}
	// 孤立记录仍计入总支出
	assert.Equal(t, "10", TotalSpent(expenses).String())
}

func TestSpendingByCategory_OverBudgetProgress(t *testing.T) {
	categories := []models.Category{{ID: 1, Name: "Food", Budget: dec("100")}}
	expenses := []models.Expense{{CategoryID: 1, Amount: dec("150")}}

	got := SpendingByCategory(categories, expenses)
	require.Len(t, got, 1)
	assert.Equal(t, 150.0, got[0].Percentage)
	assert.Equal(t, 100.0, got[0].Progress)
	assert.True(t, got[0].OverBudget)
	assert.Equal(t, "-50", got[0].Remaining.String())
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 33.3, Percentage(dec("1"), dec("3")))
	assert.Equal(t, 66.7, Percentage(dec("2"), dec("3")))
	assert.Equal(t, 0.0, Percentage(decimal.Zero, dec("3")))

	// 预算为 0
	assert.Equal(t, 0.0, Percentage(decimal.Zero, decimal.Zero))
	assert.Equal(t, NoCeilingPercentage, Percentage(dec("0.01"), decimal.Zero))
}

func TestTotalBudget_OrderIndependent(t *testing.T) {
	a := []models.Category{{Budget: dec("10.25")}, {Budget: dec("5")}, {Budget: dec("0")}}
	b := []models.Category{a[2], a[0], a[1]}
	assert.Equal(t, "15.25", TotalBudget(a).String())
	assert.True(t, TotalBudget(a).Equal(TotalBudget(b)))
	assert.True(t, TotalBudget(nil).IsZero())
}

func TestTotalSpent_Empty(t *testing.T) {
	assert.True(t, TotalSpent(nil).IsZero())
}

func TestRemaining_Negative(t *testing.T) {
	assert.Equal(t, "-20", Remaining(dec("80"), dec("100")).String())
}

func TestFilterByMonth(t *testing.T) {
	expenses := []models.Expense{
		{ID: 1, Date: day(2024, 4, 30)},
		{ID: 2, Date: day(2024, 5, 1)},
		{ID: 3, Date: day(2024, 5, 31)},
		{ID: 4, Date: day(2023, 5, 15)},
		{ID: 5, Date: day(2024, 6, 1)},
	}

	got := FilterByMonth(expenses, 2024, time.May)
	ids := []uint{}
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []uint{2, 3}, ids)
	assert.NotNil(t, FilterByMonth(nil, 2024, time.May))
}

func TestDailySpending(t *testing.T) {
	expenses := []models.Expense{
		{Amount: dec("5"), Date: day(2024, 5, 9)},
		{Amount: dec("10"), Date: day(2024, 5, 2)},
		{Amount: dec("2.5"), Date: day(2024, 5, 9)},
	}

	got := DailySpending(expenses)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-05-02", got[0].Date)
	assert.Equal(t, "10", got[0].Amount.String())
	assert.Equal(t, "2024-05-09", got[1].Date)
	assert.Equal(t, "7.5", got[1].Amount.String())
}

func TestDailyAverage(t *testing.T) {
	assert.True(t, DailyAverage(nil).IsZero())

	daily := []DailyAmount{{Date: "2024-05-01", Amount: dec("10")}, {Date: "2024-05-02", Amount: dec("20")}}
	assert.Equal(t, "15", DailyAverage(daily).String())

	daily = append(daily, DailyAmount{Date: "2024-05-03", Amount: dec("0")})
	assert.Equal(t, "10", DailyAverage(daily).String())

	daily = []DailyAmount{{Amount: dec("10")}, {Amount: dec("0")}, {Amount: dec("0")}}
	assert.Equal(t, "3.33", DailyAverage(daily).String())
}

func TestBuildDashboard(t *testing.T) {
	expenses := []models.Expense{
		{ID: 3, CategoryID: 2, Amount: dec("999"), Date: day(2024, 4, 1)},
		{ID: 2, CategoryID: 1, Amount: dec("25"), Date: day(2024, 5, 9)},
		{ID: 1, CategoryID: 1, Amount: dec("50"), Date: day(2024, 5, 3)},
	}

	d := BuildDashboard(sampleCategories(), expenses, Month{Year: 2024, Month: time.May})

	assert.Equal(t, "2024-05", d.Month)
	assert.Equal(t, "1300", d.TotalBudget.String())
	assert.Equal(t, "75", d.TotalSpent.String())
	assert.Equal(t, "1225", d.Remaining.String())
	assert.Equal(t, 2, d.ExpenseCount)
	require.Len(t, d.Categories, 2)
	assert.Equal(t, "Food", d.Categories[0].CategoryName)
	require.Len(t, d.Daily, 2)
	assert.Equal(t, "37.5", d.DailyAverage.String())
	// 1300 / 31
	assert.Equal(t, "41.94", d.DailyBudget.String())
}

func TestDailyBudget(t *testing.T) {
	assert.Equal(t, "10", DailyBudget(dec("290"), Month{Year: 2024, Month: time.February}).String())
	assert.Equal(t, "10", DailyBudget(dec("280"), Month{Year: 2023, Month: time.February}).String())
	assert.True(t, DailyBudget(decimal.Zero, Month{Year: 2024, Month: time.May}).IsZero())
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, Month{Year: 2024, Month: time.February}, m)
	assert.Equal(t, "2024-02", m.String())
	assert.Equal(t, 29, m.Days())

	_, err = ParseMonth("2024/02")
	assert.True(t, IsValidation(err))

	assert.Equal(t, Month{Year: 2026, Month: time.October}, CurrentMonth(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)))
}
