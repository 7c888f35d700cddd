package events

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends low-stock alert emails. Sends run in a goroutine and only
// log on failure.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	to       []string
	logger   *zap.Logger
}

func NewMailer(host string, port int, user, password string, to []string, logger *zap.Logger) *Mailer {
	if host == "" || len(to) == 0 {
		return nil
	}
	return &Mailer{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		to:       to,
		logger:   logger,
	}
}

func (m *Mailer) SendLowStockAlert(sku, name string, quantity, minimum int) {
	if m == nil {
		return
	}

	subject := fmt.Sprintf("Low stock: %s", sku)
	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>Low stock alert</h3>
				<p>Product: <strong>%s</strong> (%s)</p>
				<p>Quantity on hand: <strong>%d</strong>, minimum stock level: <strong>%d</strong></p>
				<p>This is an auto-generated email. Please do not reply.</p>
			</body>
		</html>
	`, name, sku, quantity, minimum)

	go func() {
		msg := gomail.NewMessage()
		msg.SetHeader("From", m.user)
		msg.SetHeader("To", m.to...)
		msg.SetHeader("Subject", subject)
		msg.SetBody("text/html", body)

		dialer := gomail.NewDialer(m.host, m.port, m.user, m.password)
		if err := dialer.DialAndSend(msg); err != nil {
			m.logger.Warn("failed to send low stock email",
				zap.String("sku", sku), zap.Error(err))
		}
	}()
}
