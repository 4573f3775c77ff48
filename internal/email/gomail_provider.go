package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	BaseURL   string
}

// GomailProvider sends mail over SMTP via gomail.
type GomailProvider struct {
	config *SMTPConfig
	dialer *gomail.Dialer
}

func NewGomailProvider(config *SMTPConfig) *GomailProvider {
	return &GomailProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

func (p *GomailProvider) Send(msg *Message) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

func (p *GomailProvider) SendVerification(to, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", p.config.BaseURL, token)
	body := fmt.Sprintf(
		"<h2>Welcome to VisiPakalpojumi</h2>"+
			"<p>Please confirm your email address by following the link below:</p>"+
			"<p><a href=%q>Verify email</a></p>"+
			"<p>If you did not create an account, ignore this message.</p>",
		link,
	)

	return p.Send(&Message{
		To:      []string{to},
		Subject: "Confirm your email address",
		HTML:    body,
	})
}

func (p *GomailProvider) Close() error {
	return nil
}
