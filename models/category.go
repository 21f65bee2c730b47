package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCategoryColor 类别默认颜色
const DefaultCategoryColor = "#4CAF50"

// Category 预算类别，Budget 为每月支出上限
type Category struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"size:100;not null"`
	Budget    decimal.Decimal `json:"budget" gorm:"type:decimal(10,2);not null"`
	Color     string          `json:"color" gorm:"size:20;default:#4CAF50"` // 颜色代码，仅用于展示
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}
