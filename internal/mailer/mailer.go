// Package mailer sends operational email (downtime alerts, daily
// reports) over SMTP with STARTTLS.
package mailer

import (
	"errors"
	"fmt"
	"net/smtp"

	"github.com/mclemoreauction/tools/internal/config"
	"go.uber.org/zap"
)

type Mailer struct {
	cfg config.SMTPConfig
	log *zap.Logger
}

func New(cfg config.SMTPConfig, log *zap.Logger) (*Mailer, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("SMTP credentials are not set")
	}
	if cfg.From == "" || cfg.To == "" {
		return nil, errors.New("SMTP from/to addresses are not set")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Mailer{cfg: cfg, log: log}, nil
}

// Send delivers a plain-text message to the configured recipient.
func (m *Mailer) Send(subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.cfg.From, m.cfg.To, subject, body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{m.cfg.To}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.log.Info("sent email", zap.String("subject", subject), zap.String("to", m.cfg.To))
	return nil
}
