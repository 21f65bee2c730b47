package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout 消费日期格式（只精确到天）
const DateLayout = "2006-01-02"

// Expense 消费记录，归属于一个类别
type Expense struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	CategoryID  uint            `json:"category_id" gorm:"index;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Description string          `json:"description" gorm:"size:255"`
	Date        time.Time       `json:"date" gorm:"type:date;not null;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Category    *Category       `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}

// Day 返回消费日期的 YYYY-MM-DD 表示
func (e Expense) Day() string {
	return e.Date.Format(DateLayout)
}

// InMonth 判断消费日期是否落在指定年月
func (e Expense) InMonth(year int, month time.Month) bool {
	return e.Date.Year() == year && e.Date.Month() == month
}
