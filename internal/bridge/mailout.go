package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/linemailhq/linemail/internal/email"
)

const fallbackGreeting = "ユーザーからのメッセージ"

type mediaKind string

const (
	mediaImage mediaKind = "image"
	mediaVideo mediaKind = "video"
	mediaAudio mediaKind = "audio"
	mediaFile  mediaKind = "file"
)

var mediaLabels = map[mediaKind]string{
	mediaImage: "画像メッセージ",
	mediaVideo: "動画メッセージ",
	mediaAudio: "音声メッセージ",
	mediaFile:  "ファイルメッセージ",
}

// Mailer translates inbound chat events into outbound emails. The
// recipient list, sender identity, and subject are fixed at startup.
type Mailer struct {
	logger   *slog.Logger
	profiles ProfileFetcher
	contents ContentFetcher
	sender   email.Sender
	from     string
	to       []string
	subject  string
}

func NewMailer(log *slog.Logger, profiles ProfileFetcher, contents ContentFetcher, sender email.Sender, from string, to []string, subject string) *Mailer {
	if log == nil {
		log = slog.Default()
	}
	return &Mailer{
		logger:   log.With(slog.String("service", "mailer")),
		profiles: profiles,
		contents: contents,
		sender:   sender,
		from:     from,
		to:       to,
		subject:  subject,
	}
}

// HandleEvent translates one webhook event into at most one email send.
// Non-message events and unhandled message kinds are dropped without
// error; profile fetch, content fetch, and delivery failures surface as
// this event's error only.
func (m *Mailer) HandleEvent(ctx context.Context, ev webhook.EventInterface) error {
	msgEvent, ok := ev.(webhook.MessageEvent)
	if !ok {
		return nil
	}

	greeting, err := m.greeting(ctx, msgEvent.Source)
	if err != nil {
		return err
	}

	out, ok, err := m.buildEmail(ctx, greeting, msgEvent.Message)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if _, err := m.sender.Send(ctx, out); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// greeting resolves the body's leading line from the sender's profile,
// falling back to a generic line when the event has no user id.
func (m *Mailer) greeting(ctx context.Context, src webhook.SourceInterface) (string, error) {
	userID := sourceUserID(src)
	if userID == "" {
		return fallbackGreeting, nil
	}
	name, err := m.profiles.GetDisplayName(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get profile: %w", err)
	}
	return name + "さんからのメッセージ", nil
}

// buildEmail assembles the email for one message. The second return is
// false when the message kind produces no email.
func (m *Mailer) buildEmail(ctx context.Context, greeting string, content webhook.MessageContentInterface) (email.OutboundEmail, bool, error) {
	out := email.OutboundEmail{
		From:    m.from,
		To:      m.to,
		Subject: m.subject,
	}

	var body strings.Builder
	body.WriteString(greeting)
	body.WriteString("\n\n")

	switch c := content.(type) {
	case webhook.TextMessageContent:
		body.WriteString(c.Text)
	case webhook.StickerMessageContent:
		body.WriteString("スタンプ")
	case webhook.ImageMessageContent:
		if err := m.attachMedia(ctx, &out, &body, c.Id, mediaImage); err != nil {
			return email.OutboundEmail{}, false, err
		}
	case webhook.VideoMessageContent:
		if err := m.attachMedia(ctx, &out, &body, c.Id, mediaVideo); err != nil {
			return email.OutboundEmail{}, false, err
		}
	case webhook.AudioMessageContent:
		if err := m.attachMedia(ctx, &out, &body, c.Id, mediaAudio); err != nil {
			return email.OutboundEmail{}, false, err
		}
	case webhook.FileMessageContent:
		if err := m.attachMedia(ctx, &out, &body, c.Id, mediaFile); err != nil {
			return email.OutboundEmail{}, false, err
		}
	default:
		return email.OutboundEmail{}, false, nil
	}

	out.Body = body.String()
	return out, true, nil
}

// attachMedia runs the shared media pipeline: fetch the content bytes,
// attach them, then append the kind's label line. Every media kind gets
// both the attachment and its label.
func (m *Mailer) attachMedia(ctx context.Context, out *email.OutboundEmail, body *strings.Builder, messageID string, kind mediaKind) error {
	data, contentType, err := m.contents.FetchContent(ctx, messageID)
	if err != nil {
		return fmt.Errorf("fetch content: %w", err)
	}
	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}

	out.Attachments = append(out.Attachments, email.Attachment{
		Filename:    messageID + ExtensionForMime(contentType),
		ContentType: contentType,
		Data:        data,
	})
	body.WriteString(mediaLabels[kind])
	return nil
}

// sourceUserID returns the acting user's id for any source that carries
// one. Group and room events still identify the sending user.
func sourceUserID(src webhook.SourceInterface) string {
	switch s := src.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.UserId
	case webhook.RoomSource:
		return s.UserId
	default:
		return ""
	}
}
