// Package mailgun implements email.Sender on the Mailgun HTTP API.
package mailgun

import (
	"context"
	"fmt"
	"log/slog"

	mg "github.com/mailgun/mailgun-go/v5"

	"github.com/linemailhq/linemail/internal/email"
)

const ProviderName email.ProviderName = "mailgun"

type Adapter struct {
	logger *slog.Logger
	client *mg.Client
	domain string
}

func New(log *slog.Logger, domain, apiKey string) *Adapter {
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{
		logger: log.With(slog.String("adapter", "mailgun")),
		client: mg.NewMailgun(apiKey),
		domain: domain,
	}
}

func (a *Adapter) Type() email.ProviderName { return ProviderName }

func (a *Adapter) Send(ctx context.Context, msg email.OutboundEmail) (string, error) {
	m := mg.NewMessage(a.domain, msg.From, msg.Subject, msg.Body, msg.To...)
	for _, att := range msg.Attachments {
		m.AddBufferAttachment(att.Filename, att.Data)
	}

	resp, err := a.client.Send(ctx, m)
	if err != nil {
		return "", fmt.Errorf("mailgun send: %w", err)
	}
	return resp.ID, nil
}

var _ email.Sender = (*Adapter)(nil)
