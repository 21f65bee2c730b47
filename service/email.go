package service

import (
	"fmt"

	"budget/config"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg    *config.EmailConfig
	sender gomail.Sender // 为空时按配置拨号发送
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// WithSender 使用指定的发送器（测试或复用连接时使用）
func (s *EmailService) WithSender(sender gomail.Sender) *EmailService {
	s.sender = sender
	return s
}

// Enabled 邮件服务是否启用
func (s *EmailService) Enabled() bool {
	return s.cfg != nil && s.cfg.Enabled
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to []string, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if s.sender != nil {
		if err := gomail.Send(s.sender, m); err != nil {
			return fmt.Errorf("发送邮件失败: %w", err)
		}
		return nil
	}

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}

// SendTestEmail 发送测试邮件
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.Enabled() {
		return fmt.Errorf("邮件服务未启用")
	}

	subject := "【预算助手】邮件配置测试"
	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>✅ 邮件配置成功</h2>
    <p>如果您收到这封邮件，说明预算提醒可以正常发送。</p>
    <p style="color: #666;">—— 预算助手</p>
</body>
</html>
`
	return s.sendEmail([]string{toEmail}, subject, body)
}

// SendBudgetAlert 发送预算超限提醒
func (s *EmailService) SendBudgetAlert(to []string, month string, summary CategorySummary) error {
	if !s.Enabled() {
		return fmt.Errorf("邮件服务未启用，请配置 BUDGET_EMAIL_ENABLED=true")
	}
	if len(to) == 0 {
		return fmt.Errorf("未配置提醒收件人")
	}

	subject := fmt.Sprintf("【预算助手】%s %s 已使用 %.1f%%", month, summary.CategoryName, summary.Percentage)
	return s.sendEmail(to, subject, s.generateBudgetAlertBody(month, summary))
}

// generateBudgetAlertBody 生成预算提醒邮件内容
func (s *EmailService) generateBudgetAlertBody(month string, summary CategorySummary) string {
	status := "即将用完"
	if summary.OverBudget {
		status = "已超支"
	}
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: %s; color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .bar { height: 12px; border-radius: 6px; background: #f0f0f0; overflow: hidden; }
        .bar div { height: 12px; background: #ef4444; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>💰 预算提醒</h1>
        </div>
        <div class="content">
            <p>%s 的类别 <strong>%s</strong> 预算%s。</p>
            <p>预算: %s，已支出: %s，剩余: %s（%.1f%%）</p>
            <div class="bar"><div style="width: %.0f%%;"></div></div>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>© 预算助手</p>
        </div>
    </div>
</body>
</html>
`, summary.Color, month, summary.CategoryName, status,
		summary.Budget.StringFixed(2), summary.Spent.StringFixed(2), summary.Remaining.StringFixed(2),
		summary.Percentage, summary.Progress)
}
