package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"budget/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Reporter 接收存储层错误，用于提示/记录
type Reporter func(err *StoreError)

// GatewayOption 网关可选项
type GatewayOption func(*Gateway)

// WithReporter 替换默认的错误上报（默认写日志）
func WithReporter(r Reporter) GatewayOption {
	return func(g *Gateway) {
		g.report = r
	}
}

// Gateway 类别与消费记录的持久化网关
//
// 每个操作都在 WithContext 派生的会话上执行，写操作包在事务里：成功提交，失败回滚。
// 任何存储错误（包括访问数据库时的 panic）都在操作边界被转换为 *StoreError，
// 同时返回空切片 / 0 / false 等哨兵值，不会向上抛出。
type Gateway struct {
	db     *gorm.DB
	report Reporter
}

// Snapshot 类别和消费记录的全量快照，每次写操作后重新获取
type Snapshot struct {
	Categories []models.Category
	Expenses   []models.Expense
}

// NewGateway 创建持久化网关
func NewGateway(db *gorm.DB, opts ...GatewayOption) *Gateway {
	g := &Gateway{db: db, report: logReporter}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func logReporter(err *StoreError) {
	log.Printf("存储错误: %v", err)
}

// ListCategories 按名称升序返回全部类别
func (g *Gateway) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := guard(func() error {
		return g.db.WithContext(ctx).Order("name ASC, id ASC").Find(&categories).Error
	})
	if err != nil {
		return []models.Category{}, g.fail("ListCategories", "查询类别失败", err)
	}
	return categories, nil
}

// ListExpenses 按日期倒序返回全部消费记录
func (g *Gateway) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	expenses := []models.Expense{}
	err := guard(func() error {
		return g.db.WithContext(ctx).Order("date DESC, id DESC").Find(&expenses).Error
	})
	if err != nil {
		return []models.Expense{}, g.fail("ListExpenses", "查询消费记录失败", err)
	}
	return expenses, nil
}

// Snapshot 重新获取类别与消费记录，返回遇到的第一个错误
func (g *Gateway) Snapshot(ctx context.Context) (Snapshot, error) {
	categories, err := g.ListCategories(ctx)
	expenses, expErr := g.ListExpenses(ctx)
	if err == nil {
		err = expErr
	}
	return Snapshot{Categories: categories, Expenses: expenses}, err
}

// GetCategory 按 ID 查询类别
func (g *Gateway) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	err := guard(func() error {
		return g.db.WithContext(ctx).First(&cat, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, g.fail("GetCategory", "查询类别失败", err)
	}
	return &cat, nil
}

// GetExpense 按 ID 查询消费记录
func (g *Gateway) GetExpense(ctx context.Context, id uint) (*models.Expense, error) {
	var expense models.Expense
	err := guard(func() error {
		return g.db.WithContext(ctx).First(&expense, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, g.fail("GetExpense", "查询消费记录失败", err)
	}
	return &expense, nil
}

// AddCategory 新增类别，返回生成的 ID；失败返回 0
// name、budget 的合法性由调用方负责
func (g *Gateway) AddCategory(ctx context.Context, name string, budget decimal.Decimal, color string) (uint, error) {
	cat := models.Category{Name: name, Budget: budget, Color: color}
	err := g.transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(&cat).Error
	})
	if err != nil {
		return 0, g.fail("AddCategory", "新增类别失败", err)
	}
	return cat.ID, nil
}

// AddExpense 新增消费记录，返回生成的 ID；失败返回 0
// amount > 0 由调用方保证
func (g *Gateway) AddExpense(ctx context.Context, categoryID uint, amount decimal.Decimal, description string, date time.Time) (uint, error) {
	expense := models.Expense{
		CategoryID:  categoryID,
		Amount:      amount,
		Description: description,
		Date:        truncateDay(date),
	}
	err := g.transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(&expense).Error
	})
	if err != nil {
		return 0, g.fail("AddExpense", "新增消费记录失败", err)
	}
	return expense.ID, nil
}

// UpdateCategory 按 ID 整行更新类别
func (g *Gateway) UpdateCategory(ctx context.Context, id uint, name string, budget decimal.Decimal, color string) (bool, error) {
	err := g.transaction(ctx, func(tx *gorm.DB) error {
		return tx.Model(&models.Category{}).Where("id = ?", id).Updates(map[string]interface{}{
			"name":   name,
			"budget": budget,
			"color":  color,
		}).Error
	})
	if err != nil {
		return false, g.fail("UpdateCategory", "更新类别失败", err)
	}
	return true, nil
}

// UpdateExpense 按 ID 整行更新消费记录
func (g *Gateway) UpdateExpense(ctx context.Context, id, categoryID uint, amount decimal.Decimal, description string, date time.Time) (bool, error) {
	err := g.transaction(ctx, func(tx *gorm.DB) error {
		return tx.Model(&models.Expense{}).Where("id = ?", id).Updates(map[string]interface{}{
			"category_id": categoryID,
			"amount":      amount,
			"description": description,
			"date":        truncateDay(date),
		}).Error
	})
	if err != nil {
		return false, g.fail("UpdateExpense", "更新消费记录失败", err)
	}
	return true, nil
}

// DeleteCategory 删除类别及其全部消费记录
// 先删消费记录再删类别，两步在同一事务内，要么都成功要么都回滚
func (g *Gateway) DeleteCategory(ctx context.Context, id uint) (bool, error) {
	err := g.transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
	if err != nil {
		return false, g.fail("DeleteCategory", "删除类别失败", err)
	}
	return true, nil
}

// DeleteExpense 按 ID 删除消费记录
func (g *Gateway) DeleteExpense(ctx context.Context, id uint) (bool, error) {
	err := g.transaction(ctx, func(tx *gorm.DB) error {
		return tx.Delete(&models.Expense{}, id).Error
	})
	if err != nil {
		return false, g.fail("DeleteExpense", "删除消费记录失败", err)
	}
	return true, nil
}

func (g *Gateway) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return guard(func() error {
		return g.db.WithContext(ctx).Transaction(fn)
	})
}

func (g *Gateway) fail(op, message string, err error) *StoreError {
	se := &StoreError{Op: op, Message: message, Err: err}
	if g.report != nil {
		g.report(se)
	}
	return se
}

// guard 把 fn 中的 panic 转换为 error
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

// truncateDay 去掉时分秒，保留原时区
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
