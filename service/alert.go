package service

import (
	"log"

	"budget/config"
	"budget/models"

	"github.com/shopspring/decimal"
)

// AlertService 预算阈值提醒
// 新增消费后，若该类别本月占比从阈值以下跨到阈值以上，则发送邮件
type AlertService struct {
	cfg   config.AlertConfig
	email *EmailService
}

// NewAlertService 创建预算提醒服务
func NewAlertService(alert config.AlertConfig, email *EmailService) *AlertService {
	if alert.ThresholdPercent <= 0 {
		alert.ThresholdPercent = 100
	}
	return &AlertService{cfg: alert, email: email}
}

// Enabled 提醒与邮件服务均启用时才生效
func (a *AlertService) Enabled() bool {
	return a != nil && a.cfg.Enabled && a.email != nil && a.email.Enabled()
}

// Crossed 判断新增 added 后占比是否跨过阈值
func (a *AlertService) Crossed(summary CategorySummary, added decimal.Decimal) bool {
	before := Percentage(summary.Spent.Sub(added), summary.Budget)
	return before < a.cfg.ThresholdPercent && summary.Percentage >= a.cfg.ThresholdPercent
}

// CheckAndNotify 检查类别本月支出并按需发送提醒，返回是否已发送
// monthExpenses 为该月全部消费记录；发送失败只记录日志
func (a *AlertService) CheckAndNotify(category models.Category, month Month, monthExpenses []models.Expense, added decimal.Decimal) bool {
	if !a.Enabled() {
		return false
	}

	summaries := SpendingByCategory([]models.Category{category}, monthExpenses)
	if len(summaries) == 0 || !a.Crossed(summaries[0], added) {
		return false
	}

	if err := a.email.SendBudgetAlert(a.cfg.Recipients, month.String(), summaries[0]); err != nil {
		log.Printf("发送预算提醒失败: %v", err)
		return false
	}
	log.Printf("已发送预算提醒: %s %s %.1f%%", month, category.Name, summaries[0].Percentage)
	return true
}
