package service

import (
	"sort"
	"time"

	"budget/models"

	"github.com/shopspring/decimal"
)

// NoCeilingPercentage 预算为 0 但已有支出时的占比
// 比值无定义，这里固定为一个足够大的值，保证排在最前面
const NoCeilingPercentage = 9999.9

var hundred = decimal.NewFromInt(100)

// CategorySummary 单个类别在某月的预算使用情况
type CategorySummary struct {
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Color        string          `json:"color"`
	Budget       decimal.Decimal `json:"budget"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	Percentage   float64         `json:"percentage"`  // spent / budget * 100，保留 1 位小数
	Progress     float64         `json:"progress"`    // 进度条，封顶 100
	OverBudget   bool            `json:"over_budget"` // spent > budget
}

// DailyAmount 某一天的支出合计
type DailyAmount struct {
	Date   string          `json:"date"` // YYYY-MM-DD
	Amount decimal.Decimal `json:"amount"`
}

// Dashboard 某月的汇总视图
type Dashboard struct {
	Month        string            `json:"month"`
	TotalBudget  decimal.Decimal   `json:"total_budget"`
	TotalSpent   decimal.Decimal   `json:"total_spent"`
	Remaining    decimal.Decimal   `json:"remaining"`
	ExpenseCount int               `json:"expense_count"`
	Categories   []CategorySummary `json:"categories"`
	Daily        []DailyAmount     `json:"daily"`
	DailyAverage decimal.Decimal   `json:"daily_average"`
	DailyBudget  decimal.Decimal   `json:"daily_budget"` // 总预算按当月天数平摊
}

// FilterByMonth 返回日期落在指定年月内的消费记录
func FilterByMonth(expenses []models.Expense, year int, month time.Month) []models.Expense {
	result := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.InMonth(year, month) {
			result = append(result, e)
		}
	}
	return result
}

// TotalBudget 所有类别预算之和，与月份无关
func TotalBudget(categories []models.Category) decimal.Decimal {
	total := decimal.Zero
	for _, c := range categories {
		total = total.Add(c.Budget)
	}
	return total
}

// TotalSpent 消费金额之和，空集合为 0
func TotalSpent(monthExpenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range monthExpenses {
		total = total.Add(e.Amount)
	}
	return total
}

// Remaining 剩余预算，超支时为负数
func Remaining(totalBudget, totalSpent decimal.Decimal) decimal.Decimal {
	return totalBudget.Sub(totalSpent)
}

// SpendingByCategory 按类别汇总支出
//
// 每个类别恰好出现一次，没有支出的类别 spent 为 0。
// 结果按 percentage 降序，相同时按名称升序、再按 ID 升序。
// 不属于任何已知类别的消费记录不计入，但 TotalSpent 仍会计入它们，
// 因此各类别 spent 之和等于 TotalSpent 只在没有孤立记录时成立。
// 通过网关写入时外键约束保证不会出现孤立记录。
func SpendingByCategory(categories []models.Category, monthExpenses []models.Expense) []CategorySummary {
	spent := make(map[uint]decimal.Decimal, len(categories))
	for _, e := range monthExpenses {
		spent[e.CategoryID] = spent[e.CategoryID].Add(e.Amount)
	}

	result := make([]CategorySummary, 0, len(categories))
	for _, c := range categories {
		s, ok := spent[c.ID]
		if !ok {
			s = decimal.Zero
		}
		pct := Percentage(s, c.Budget)
		result = append(result, CategorySummary{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			Color:        c.Color,
			Budget:       c.Budget,
			Spent:        s,
			Remaining:    c.Budget.Sub(s),
			Percentage:   pct,
			Progress:     capProgress(pct),
			OverBudget:   s.GreaterThan(c.Budget),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Percentage != b.Percentage {
			return a.Percentage > b.Percentage
		}
		if a.CategoryName != b.CategoryName {
			return a.CategoryName < b.CategoryName
		}
		return a.CategoryID < b.CategoryID
	})
	return result
}

// Percentage 计算 spent 占 budget 的百分比，四舍五入保留 1 位小数
// budget 为 0 时：spent 为 0 返回 0，否则返回 NoCeilingPercentage
func Percentage(spent, budget decimal.Decimal) float64 {
	if budget.Sign() <= 0 {
		if spent.Sign() <= 0 {
			return 0
		}
		return NoCeilingPercentage
	}
	pct, _ := spent.Div(budget).Mul(hundred).Round(1).Float64()
	return pct
}

func capProgress(pct float64) float64 {
	if pct > 100 {
		return 100
	}
	return pct
}

// DailySpending 按天汇总支出，日期升序
func DailySpending(monthExpenses []models.Expense) []DailyAmount {
	byDay := make(map[string]decimal.Decimal)
	for _, e := range monthExpenses {
		day := e.Day()
		byDay[day] = byDay[day].Add(e.Amount)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	result := make([]DailyAmount, 0, len(days))
	for _, day := range days {
		result = append(result, DailyAmount{Date: day, Amount: byDay[day]})
	}
	return result
}

// DailyAverage 有支出的天的平均金额，保留 2 位小数；没有数据时为 0
func DailyAverage(daily []DailyAmount) decimal.Decimal {
	if len(daily) == 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, d := range daily {
		total = total.Add(d.Amount)
	}
	return total.Div(decimal.NewFromInt(int64(len(daily)))).Round(2)
}

// DailyBudget 总预算平摊到当月每一天，保留 2 位小数
func DailyBudget(totalBudget decimal.Decimal, month Month) decimal.Decimal {
	return totalBudget.Div(decimal.NewFromInt(int64(month.Days()))).Round(2)
}

// BuildDashboard 基于快照计算指定月份的汇总视图
func BuildDashboard(categories []models.Category, expenses []models.Expense, month Month) Dashboard {
	monthExpenses := FilterByMonth(expenses, month.Year, month.Month)
	totalBudget := TotalBudget(categories)
	totalSpent := TotalSpent(monthExpenses)
	daily := DailySpending(monthExpenses)

	return Dashboard{
		Month:        month.String(),
		TotalBudget:  totalBudget,
		TotalSpent:   totalSpent,
		Remaining:    Remaining(totalBudget, totalSpent),
		ExpenseCount: len(monthExpenses),
		Categories:   SpendingByCategory(categories, monthExpenses),
		Daily:        daily,
		DailyAverage: DailyAverage(daily),
		DailyBudget:  DailyBudget(totalBudget, month),
	}
}
