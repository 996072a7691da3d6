package mailer

import (
	"fmt"
	"log"
	"net/smtp"

	"lesoblog/internal/config"
	"lesoblog/internal/models"
)

type Mailer interface {
	SendPasswordResetEmail(user *models.User, token string) error
}

type smtpMailer struct {
	cfg *config.Config
}

func NewSMTPMailer(cfg *config.Config) Mailer {
	return &smtpMailer{cfg: cfg}
}

// SendPasswordResetEmail отправляет письмо со ссылкой вида
// /reset_password/<token>. Доставка без подтверждения: ошибка
// логируется, но не возвращается пользователю.
func (m *smtpMailer) SendPasswordResetEmail(user *models.User, token string) error {
	resetURL := fmt.Sprintf("%s/reset_password/%s", m.cfg.BaseURL, token)

	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Сброс пароля\r\n\r\n"+
			"Здравствуйте, %s!\r\n\r\n"+
			"Чтобы сбросить пароль, перейдите по ссылке:\r\n%s\r\n\r\n"+
			"Если вы не запрашивали сброс пароля, проигнорируйте это письмо.\r\n",
		m.cfg.SMTP.From, user.Email, user.Username, resetURL)

	addr := m.cfg.SMTP.Host + ":" + m.cfg.SMTP.Port

	var auth smtp.Auth
	if m.cfg.SMTP.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTP.Username, m.cfg.SMTP.Password, m.cfg.SMTP.Host)
	}

	err := smtp.SendMail(addr, auth, m.cfg.SMTP.From, []string{user.Email}, []byte(body))
	if err != nil {
		log.Printf("Не удалось отправить письмо для сброса пароля: %v", err)
		return fmt.Errorf("ошибка при отправке письма: %w", err)
	}

	return nil
}
