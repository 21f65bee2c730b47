package service

import (
	"time"

	"budget/models"

	"github.com/shopspring/decimal"
)

// ExpenseFilter 消费记录筛选条件，零值表示不限
type ExpenseFilter struct {
	CategoryIDs []uint
	From        time.Time // 包含当天
	To          time.Time // 包含当天
}

// ExpenseStats 消费记录列表的汇总
type ExpenseStats struct {
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
}

// FilterExpenses 按类别和日期区间筛选，保持原有顺序
func FilterExpenses(expenses []models.Expense, f ExpenseFilter) []models.Expense {
	var allowed map[uint]struct{}
	if len(f.CategoryIDs) > 0 {
		allowed = make(map[uint]struct{}, len(f.CategoryIDs))
		for _, id := range f.CategoryIDs {
			allowed[id] = struct{}{}
		}
	}

	// 按 YYYY-MM-DD 字符串比较，避免时区造成的跨天
	from, to := "", ""
	if !f.From.IsZero() {
		from = f.From.Format(models.DateLayout)
	}
	if !f.To.IsZero() {
		to = f.To.Format(models.DateLayout)
	}

	result := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if allowed != nil {
			if _, ok := allowed[e.CategoryID]; !ok {
				continue
			}
		}
		day := e.Day()
		if from != "" && day < from {
			continue
		}
		if to != "" && day > to {
			continue
		}
		result = append(result, e)
	}
	return result
}

// SummarizeExpenses 计算条数、合计和单笔平均（保留 2 位小数）
func SummarizeExpenses(expenses []models.Expense) ExpenseStats {
	stats := ExpenseStats{Count: len(expenses), Total: TotalSpent(expenses), Average: decimal.Zero}
	if stats.Count > 0 {
		stats.Average = stats.Total.Div(decimal.NewFromInt(int64(stats.Count))).Round(2)
	}
	return stats
}
