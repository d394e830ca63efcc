package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/bookdragons/storefront/internal/config"
	"github.com/bookdragons/storefront/internal/domain"
)

// Mailer sends order confirmations to customers
type Mailer interface {
	SendOrderConfirmation(order *domain.Order) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewMailer returns an SMTP mailer, or nil when no SMTP host is configured
func NewMailer(cfg config.MailConfig, logger *zap.Logger) Mailer {
	if !cfg.Enabled() {
		logger.Info("SMTP not configured, order confirmation mail disabled")
		return nil
	}
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

func (m *smtpMailer) SendOrderConfirmation(order *domain.Order) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", order.CustomerEmail)
	msg.SetHeader("Subject", "Ordrebekreftelse "+order.OrderNumber)
	msg.SetBody("text/plain", confirmationBody(order))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send confirmation for %s: %w", order.OrderNumber, err)
	}
	m.logger.Info("Sent order confirmation",
		zap.String("order_number", order.OrderNumber),
		zap.String("to", order.CustomerEmail),
	)
	return nil
}

func confirmationBody(order *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hei %s,\n\n", order.CustomerName)
	fmt.Fprintf(&b, "Takk for din bestilling! Ordrenummer: %s\n\n", order.OrderNumber)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  bok #%d  %d x %d kr\n", item.BookID, item.Quantity, item.Price)
	}
	fmt.Fprintf(&b, "\nTotalt: %d kr\n", order.TotalAmount)
	b.WriteString("\nHilsen Bookdragons\n")
	return b.String()
}
