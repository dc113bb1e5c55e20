package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"

	"github.com/wneessen/go-mail"

	"pceshop_back_end/internal/config"
	"pceshop_back_end/internal/models"
)

var orderConfirmationTmpl = template.Must(template.New("order").Parse(`<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2>Order #{{.ID}} confirmed</h2>
		<p>Hello {{.FullName}},</p>
		<p>Thank you for your order. It will be shipped to {{.Address}}, {{.ZipCode}} {{.City}}.</p>
		<table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr><th align="left">Product</th><th align="left">Quantity</th><th align="left">Unit price</th></tr>
			</thead>
			<tbody>
			{{range .Items}}<tr><td>{{if .Product}}{{.Product.Name}}{{else}}#{{.ProductID}}{{end}}</td><td>{{.Quantity}}</td><td>{{.Price}}</td></tr>
			{{end}}</tbody>
		</table>
		<p><strong>Total: {{.TotalAmount}}</strong></p>
		<p>Shipping: {{.ShippingMethod}} / Payment: {{.PaymentMethod}}</p>
	</div>
</body>
</html>`))

var paymentReceivedTmpl = template.Must(template.New("paid").Parse(`<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #10b981;">Payment received</h2>
		<p>Hello {{.FullName}},</p>
		<p>We have received the payment of <strong>{{.TotalAmount}}</strong> for order #{{.ID}}.
		It is now being prepared for shipping ({{.ShippingMethod}}).</p>
	</div>
</body>
</html>`))

// Mailer sends transactional mail over SMTP. A nil *Mailer sends nothing.
type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	if cfg.Host == "" {
		log.Println("⚠️ SMTP_HOST not set, order mail disabled")
		return nil
	}
	return &Mailer{cfg: cfg}
}

// OrderConfirmation builds the confirmation message of order.
func OrderConfirmation(from string, order *models.Order) (*mail.Msg, error) {
	return orderMessage(from, order, fmt.Sprintf("Order #%d confirmation", order.ID), orderConfirmationTmpl)
}

// PaymentReceived builds the message sent once staff mark order as paid.
func PaymentReceived(from string, order *models.Order) (*mail.Msg, error) {
	return orderMessage(from, order, fmt.Sprintf("Payment received for order #%d", order.ID), paymentReceivedTmpl)
}

func orderMessage(from string, order *models.Order, subject string, tmpl *template.Template) (*mail.Msg, error) {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, order); err != nil {
		return nil, err
	}

	msg := mail.NewMsg(mail.WithEncoding(mail.NoEncoding))
	if err := msg.From(from); err != nil {
		return nil, err
	}
	if err := msg.To(order.Email); err != nil {
		return nil, err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body.String())
	return msg, nil
}

func (m *Mailer) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	if m == nil {
		return nil
	}
	msg, err := OrderConfirmation(m.cfg.From, order)
	if err != nil {
		return err
	}
	log.Println("📤 Sending order confirmation to", order.Email)
	return m.send(ctx, msg)
}

func (m *Mailer) SendPaymentReceived(ctx context.Context, order *models.Order) error {
	if m == nil {
		return nil
	}
	msg, err := PaymentReceived(m.cfg.From, order)
	if err != nil {
		return err
	}
	log.Println("📤 Sending payment notice to", order.Email)
	return m.send(ctx, msg)
}

func (m *Mailer) send(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}
