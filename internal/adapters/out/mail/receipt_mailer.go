// internal/adapters/out/mail/receipt_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/money"
	saledom "storefront/internal/domain/sale"
)

// ReceiptMailer はチェックアウト成功後のレシートメール送信を行います。
// 送信失敗はチェックアウトを失敗させない（呼び出し側で WARN ログのみ）。
type ReceiptMailer struct {
	client      EmailClient
	fromAddress string
}

// NewReceiptMailer builds a mailer; client may come from NewSendGridClient.
func NewReceiptMailer(client EmailClient, fromAddress string) *ReceiptMailer {
	return &ReceiptMailer{
		client:      client,
		fromAddress: strings.TrimSpace(fromAddress),
	}
}

// SendReceipt mails an order summary for one checkout.
func (m *ReceiptMailer) SendReceipt(ctx context.Context, toEmail, customerName, checkoutID string, records []*saledom.Record) error {
	if m == nil || m.client == nil {
		return fmt.Errorf("receipt_mailer: not configured")
	}

	to := strings.TrimSpace(toEmail)
	if to == "" {
		return fmt.Errorf("receipt_mailer: recipient is empty")
	}
	if len(records) == 0 {
		return fmt.Errorf("receipt_mailer: no sale records")
	}

	subject := fmt.Sprintf("Your order %s", shortID(checkoutID))
	body := buildReceiptBody(customerName, records)

	return m.client.Send(ctx, m.fromAddress, to, subject, body)
}

func buildReceiptBody(customerName string, records []*saledom.Record) string {
	var b strings.Builder

	name := strings.TrimSpace(customerName)
	if name == "" {
		name = "customer"
	}
	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your order. Summary:\n\n", name)

	grand := decimal.Zero
	for _, r := range records {
		fmt.Fprintf(&b, "  %s x%d  %s\n",
			r.ItemName,
			r.QuantitySold,
			money.FormatAmount(r.TotalAmount, money.ZAR),
		)
		grand = grand.Add(r.TotalAmount)
	}

	fmt.Fprintf(&b, "\nTotal: %s\n", money.FormatAmount(grand, money.ZAR))
	return b.String()
}

func shortID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
