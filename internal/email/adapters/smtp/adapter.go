// Package smtp implements email.Sender over plain SMTP.
package smtp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	mail "github.com/wneessen/go-mail"

	"github.com/linemailhq/linemail/internal/email"
)

const ProviderName email.ProviderName = "smtp"

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

type Adapter struct {
	logger *slog.Logger
	cfg    Config
}

func New(log *slog.Logger, cfg Config) *Adapter {
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{
		logger: log.With(slog.String("adapter", "smtp")),
		cfg:    cfg,
	}
}

func (a *Adapter) Type() email.ProviderName { return ProviderName }

func (a *Adapter) Send(ctx context.Context, msg email.OutboundEmail) (string, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return "", fmt.Errorf("set from: %w", err)
	}
	if err := m.To(msg.To...); err != nil {
		return "", fmt.Errorf("set to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	m.SetMessageID()
	for _, att := range msg.Attachments {
		if err := m.AttachReader(att.Filename, bytes.NewReader(att.Data),
			mail.WithFileContentType(mail.ContentType(att.ContentType))); err != nil {
			return "", fmt.Errorf("attach %s: %w", att.Filename, err)
		}
	}

	port := a.cfg.Port
	if port == 0 {
		port = 587
	}
	client, err := mail.NewClient(a.cfg.Host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(a.cfg.Username),
		mail.WithPassword(a.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return "", fmt.Errorf("create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}

	return m.GetMessageID(), nil
}

var _ email.Sender = (*Adapter)(nil)
