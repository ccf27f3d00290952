package notify

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailConfig is populated once at the process boundary and handed in;
// business logic never reads the environment directly.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

func EmailConfigFromEnv() EmailConfig {
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}
	cfg := EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
		To:       os.Getenv("EMAIL_RECIPIENT"),
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return cfg
}

func (c EmailConfig) Valid() bool {
	return c.Host != "" && c.Username != "" && c.Password != "" && c.To != ""
}

// SendReport submits one message per run over TLS, plain-text body with an
// HTML alternative.
func SendReport(cfg EmailConfig, subject, textBody, htmlBody string) error {
	if !cfg.Valid() {
		return fmt.Errorf("email not configured (need SMTP_HOST, SMTP_USERNAME, SMTP_PASSWORD, EMAIL_RECIPIENT)")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", cfg.To)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("sending report to %s: %v", cfg.To, err)
	}
	return nil
}
