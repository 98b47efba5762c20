// Package notification forwards due alerts to a notification channel via Resend.
package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/granabot/backend/internal/domain/entity"
)

// ResendNotifier implements adapter.AlertNotifier by emailing a digest of
// due alerts through Resend. The WhatsApp delivery path lives in the
// platform's messaging service; this channel feeds the ops/digest inbox.
type ResendNotifier struct {
	client    *resend.Client
	fromName  string
	fromEmail string
	toEmail   string
}

// NewResendNotifier creates a new Resend-backed alert notifier.
func NewResendNotifier(apiKey, fromName, fromEmail, toEmail string) *ResendNotifier {
	return &ResendNotifier{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
		toEmail:   toEmail,
	}
}

// NotifyDueAlerts sends one digest email for the batch of due alerts.
func (n *ResendNotifier) NotifyDueAlerts(ctx context.Context, alerts []*entity.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	from := fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail)
	subject := fmt.Sprintf("GranaBot: %d alert(s) due today", len(alerts))

	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{n.toEmail},
		Subject: subject,
		Text:    digestBody(alerts),
	}

	if _, err := n.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send due-alert digest: %w", err)
	}
	return nil
}

func digestBody(alerts []*entity.Alert) string {
	var b strings.Builder
	for _, a := range alerts {
		sign := "-"
		if a.Kind == entity.RecurrenceKindIncome {
			sign = "+"
		}
		fmt.Fprintf(&b, "%s  %s  %sR$ %s  %s\n",
			a.Code,
			a.DueDate.Format("2006-01-02"),
			sign,
			a.Amount.StringFixed(2),
			a.Description,
		)
	}
	return b.String()
}
