package mail

import (
	"context"
	"fmt"
	"strings"

	orderdom "storefront/internal/domain/order"
	itemdom "storefront/internal/domain/orderItem"
)

// EmailClient is the minimal sending port (implemented by SendGridClient).
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// OrderMailer renders and sends the order confirmation email.
type OrderMailer struct {
	client EmailClient
	from   string
}

func NewOrderMailer(client EmailClient, from string) *OrderMailer {
	return &OrderMailer{client: client, from: strings.TrimSpace(from)}
}

func (m *OrderMailer) SendOrderConfirmation(ctx context.Context, to string, o orderdom.Order, items []itemdom.OrderItem) error {
	if m == nil || m.client == nil {
		return fmt.Errorf("order_mailer: email client is nil")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order.\n\n")
	fmt.Fprintf(&b, "Order ID: %s\n", o.ID)
	fmt.Fprintf(&b, "Status:   %s\n\n", o.Status)
	for _, it := range items {
		variant := ""
		if it.Color != "" || it.Size != "" {
			variant = fmt.Sprintf(" (%s)", strings.TrimSpace(strings.Trim(it.Color+" "+it.Size, " ")))
		}
		fmt.Fprintf(&b, "  %d x %s%s - %s\n", it.Quantity, it.ProductName, variant, formatAmount(it.Subtotal()))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", formatAmount(o.TotalAmount))
	if o.Status == orderdom.StatusPending {
		fmt.Fprintf(&b, "\nPlease upload your payment receipt from the orders page.\n")
	}

	subject := fmt.Sprintf("Order confirmation %s", o.ID)
	return m.client.Send(ctx, m.from, to, subject, b.String())
}

// formatAmount renders minor units as a decimal string, e.g. 2500 -> "25.00".
func formatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
