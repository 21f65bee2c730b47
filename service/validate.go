package service

import (
	"strings"
	"time"

	"budget/models"

	"github.com/shopspring/decimal"
)

// CategoryInput 类别的待校验输入
type CategoryInput struct {
	Name   string
	Budget decimal.Decimal
	Color  string
}

// ExpenseInput 消费记录的待校验输入
type ExpenseInput struct {
	CategoryID  uint
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// 金额列为 decimal(10,2)：最多 2 位小数，整数部分最多 8 位
const moneyScale = 2

var moneyLimit = decimal.New(1, 8)

// checkMoney 校验金额能被列精确保存，label 用于提示
func checkMoney(field, label string, d decimal.Decimal) error {
	if !d.Equal(d.Round(moneyScale)) {
		return &ValidationError{Field: field, Message: label + "最多保留 2 位小数"}
	}
	if d.Abs().GreaterThanOrEqual(moneyLimit) {
		return &ValidationError{Field: field, Message: label + "超出范围，最大 99999999.99"}
	}
	return nil
}

// ValidateCategory 校验并规范化类别输入
// 新增时要求预算大于 0，修改时允许为 0
func ValidateCategory(in CategoryInput, creating bool) (CategoryInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Color = strings.TrimSpace(in.Color)
	if in.Name == "" {
		return in, &ValidationError{Field: "name", Message: "名称不能为空"}
	}
	if len([]rune(in.Name)) > 100 {
		return in, &ValidationError{Field: "name", Message: "名称不能超过 100 个字符"}
	}
	if err := checkMoney("budget", "预算", in.Budget); err != nil {
		return in, err
	}
	if in.Budget.IsNegative() {
		return in, &ValidationError{Field: "budget", Message: "预算不能为负数"}
	}
	if creating && !in.Budget.IsPositive() {
		return in, &ValidationError{Field: "budget", Message: "预算必须大于 0"}
	}
	if in.Color == "" {
		in.Color = models.DefaultCategoryColor
	}
	if len(in.Color) > 20 {
		return in, &ValidationError{Field: "color", Message: "颜色代码过长"}
	}
	return in, nil
}

// ValidateExpense 校验消费记录输入，categoryExists 为类别是否存在
func ValidateExpense(in ExpenseInput, categoryExists bool) (ExpenseInput, error) {
	in.Description = strings.TrimSpace(in.Description)
	if in.CategoryID == 0 || !categoryExists {
		return in, &ValidationError{Field: "category_id", Message: "类别不存在"}
	}
	if err := checkMoney("amount", "金额", in.Amount); err != nil {
		return in, err
	}
	if !in.Amount.IsPositive() {
		return in, &ValidationError{Field: "amount", Message: "金额必须大于 0"}
	}
	if in.Date.IsZero() {
		return in, &ValidationError{Field: "date", Message: "日期不能为空"}
	}
	if len([]rune(in.Description)) > 255 {
		return in, &ValidationError{Field: "description", Message: "描述不能超过 255 个字符"}
	}
	return in, nil
}
