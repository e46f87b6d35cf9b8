package libs

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"techstore/models"
	"techstore/money"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, user, pass, from string) (*Mailer, error) {
	if host == "" || user == "" || pass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}
	return &Mailer{dialer: gomail.NewDialer(host, port, user, pass), from: from}, nil
}

var orderConfirmationTmpl = template.Must(template.New("order").Parse(`<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .logo { font-size: 24px; font-weight: bold; color: #2563eb; text-align: center; }
        .order-box { background-color: #eff6ff; padding: 20px; margin: 20px 0; border-radius: 8px; }
        td { padding: 4px 8px; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">TechStore</div>
        <h2>Đặt hàng thành công!</h2>
        <p>Xin chào {{.Name}}, cảm ơn bạn đã mua sắm tại TechStore.</p>
        <div class="order-box">
            <p><strong>Mã đơn hàng:</strong> {{.Number}}</p>
            <table>
                {{range .Lines}}<tr><td>{{.Name}} × {{.Quantity}}</td><td>{{.Amount}}</td></tr>
                {{end}}
                <tr><td>Tạm tính</td><td>{{.Subtotal}}</td></tr>
                <tr><td>Phí vận chuyển</td><td>{{.Shipping}}</td></tr>
                <tr><td>Thuế VAT (10%)</td><td>{{.Tax}}</td></tr>
                <tr><td><strong>Tổng cộng</strong></td><td><strong>{{.Total}}</strong></td></tr>
            </table>
            <p>Giao đến: {{.Address}}</p>
        </div>
        <div class="footer">
            <p>&copy; TechStore. Email này được gửi tự động, vui lòng không trả lời.</p>
        </div>
    </div>
</body>
</html>`))

type confirmationLine struct {
	Name     string
	Quantity int
	Amount   string
}

// RenderOrderConfirmation builds the subject and HTML body of the order email.
func RenderOrderConfirmation(order *models.Order) (string, string, error) {
	lines := make([]confirmationLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, confirmationLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Amount:   money.Format(item.Price * int64(item.Quantity)),
		})
	}

	var body bytes.Buffer
	err := orderConfirmationTmpl.Execute(&body, map[string]interface{}{
		"Name":     order.Shipping.FullName,
		"Number":   order.OrderNumber,
		"Lines":    lines,
		"Subtotal": money.Format(order.Totals.Subtotal),
		"Shipping": money.FormatShipping(order.Totals.ShippingFee),
		"Tax":      money.Format(order.Totals.Tax),
		"Total":    money.Format(order.Totals.Total),
		"Address":  fmt.Sprintf("%s, %s %s", order.Shipping.Address, order.Shipping.City, order.Shipping.ZipCode),
	})
	if err != nil {
		return "", "", err
	}

	subject := fmt.Sprintf("Xác nhận đơn hàng #%s - TechStore", order.OrderNumber)
	return subject, body.String(), nil
}

func (m *Mailer) SendOrderConfirmation(order *models.Order) error {
	subject, body, err := RenderOrderConfirmation(order)
	if err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", order.Shipping.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
