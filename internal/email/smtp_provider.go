package email

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPProvider sends mention emails over SMTP.
type SMTPProvider struct {
	config *SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPProvider(config *SMTPConfig) *SMTPProvider {
	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

func (p *SMTPProvider) SendMention(msg *MentionEmail) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", fmt.Sprintf("%s mentioned you on %s", msg.MentionedBy, msg.CandidateName))
	m.SetBody("text/html", fmt.Sprintf(
		"<p><strong>%s</strong> mentioned you in a note on <strong>%s</strong>:</p><blockquote>%s</blockquote>",
		html.EscapeString(msg.MentionedBy),
		html.EscapeString(msg.CandidateName),
		html.EscapeString(msg.Preview),
	))

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mention email: %w", err)
	}
	return nil
}
