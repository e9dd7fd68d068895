package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/minhvt/finbook/internal/config"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendDriftAlert notifies an account owner that the stored balance no longer
// matches the sum of the account's transactions.
func (s *Sender) SendDriftAlert(to, fullName, accountName, currency string, stored, computed decimal.Decimal) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Balance check failed for account %q", accountName)

	body := fmt.Sprintf(
		"Dear %s,\n\n", fullName,
	)
	body += fmt.Sprintf(
		"A nightly consistency check found that the balance of your account %q\n"+
			"does not match the sum of its transactions.\n\n"+
			"Stored balance:   %s %s\n"+
			"Transaction sum:  %s %s\n"+
			"Checked at:       %s\n\n"+
			"If you recently edited the account balance directly this is expected.\n"+
			"Otherwise, please review the account's transactions.\n",
		accountName, stored.String(), currency, computed.String(), currency,
		time.Now().Format("2006-01-02 15:04:05"),
	)
	body += "\nBest regards,\nFinbook"
	e.Text = []byte(body)

	// Send email
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
