package mail

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// ResetURLBase is the frontend page the token is appended to.
	ResetURLBase string
}

type ResetMailer struct {
	dialer *gomail.Dialer
	cfg    SMTPConfig
}

func NewResetMailer(cfg SMTPConfig) *ResetMailer {
	return &ResetMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		cfg:    cfg,
	}
}

func (m *ResetMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	_ = ctx

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Reset your password")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>We received a request to reset your password.</p>
<p><a href="%s?token=%s">Reset password</a></p>
<p>The link expires in one hour. If you didn't ask for this, ignore this mail.</p>`,
		m.cfg.ResetURLBase, token,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}
