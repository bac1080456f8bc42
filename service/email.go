package service

import (
	"fmt"
	"html"
	"time"

	"caisse/config"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
	now func() time.Time
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg, now: time.Now}
}

// Enabled 是否已启用且配置了收件人
func (s *EmailService) Enabled() bool {
	return s.cfg != nil && s.cfg.Enabled && s.cfg.NotifyTo != ""
}

// SendPasswordResetNotice 密码被重置后通知财务负责人
func (s *EmailService) SendPasswordResetNotice(username string) error {
	if !s.Enabled() {
		return fmt.Errorf("邮件服务未启用，请配置 email.enabled 与 email.notify_to")
	}

	subject := "[Caisse] Mot de passe réinitialisé"
	body := s.generateResetNoticeBody(username, s.now())

	return s.sendEmail(s.cfg.NotifyTo, subject, body)
}

// generateResetNoticeBody 生成通知邮件内容
func (s *EmailService) generateResetNoticeBody(username string, at time.Time) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #2563eb, #1d4ed8); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .warning { background: #fff3cd; border-left: 4px solid #ffc107; padding: 15px; margin: 20px 0; border-radius: 4px; }
        .warning p { margin: 0; color: #856404; font-size: 14px; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Caisse de l'église</h1>
        </div>
        <div class="content">
            <p>Le mot de passe du compte <strong>%s</strong> a été réinitialisé le %s (UTC).</p>
            <div class="warning">
                <p>Si cette opération n'était pas prévue, contactez immédiatement l'administrateur.</p>
            </div>
        </div>
        <div class="footer">
            <p>Ce message est envoyé automatiquement, merci de ne pas y répondre.</p>
        </div>
    </div>
</body>
</html>
`, html.EscapeString(username), at.UTC().Format("02/01/2006 15:04"))
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}
