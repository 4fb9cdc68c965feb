package bridge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/linemailhq/linemail/internal/storage"
)

// Messenger translates form submissions into ordered chat push
// messages for a fixed group target.
type Messenger struct {
	logger  *slog.Logger
	uploads storage.Uploader
	pusher  MessagePusher
	groupID string
}

func NewMessenger(log *slog.Logger, uploads storage.Uploader, pusher MessagePusher, groupID string) *Messenger {
	if log == nil {
		log = slog.Default()
	}
	return &Messenger{
		logger:  log.With(slog.String("service", "messenger")),
		uploads: uploads,
		pusher:  pusher,
		groupID: groupID,
	}
}

// HandleSubmission relays one submission to the group: the leading text
// message first, then one media message per supported uploaded file.
// Files are processed sequentially because the platform renders in send
// order. A failure aborts the remaining files; messages already pushed
// are not rolled back.
func (s *Messenger) HandleSubmission(ctx context.Context, sub Submission) error {
	if err := s.pusher.Push(ctx, s.groupID, textMessage(sub)); err != nil {
		return fmt.Errorf("push text message: %w", err)
	}

	for _, file := range sub.Files {
		msg, err := s.fileMessage(ctx, file)
		if err != nil {
			return err
		}
		if msg == nil {
			continue
		}
		if err := s.pusher.Push(ctx, s.groupID, msg); err != nil {
			return fmt.Errorf("push %s: %w", file.Name, err)
		}
	}
	return nil
}

func textMessage(sub Submission) *messaging_api.TextMessage {
	return &messaging_api.TextMessage{
		Text: fmt.Sprintf("From: %s\nSubject: %s\n\n%s", sub.From, sub.Subject, sub.Text),
	}
}

// fileMessage sniffs, uploads, and classifies one uploaded file. A nil
// message with nil error means the file's content type is unsupported.
func (s *Messenger) fileMessage(ctx context.Context, file SubmissionFile) (messaging_api.MessageInterface, error) {
	contentType := DetectContentType(file.Data)

	key := uuid.NewString() + "/" + file.Name
	url, err := s.uploads.Upload(ctx, key, file.Data, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", file.Name, err)
	}

	switch contentType {
	case "image/jpeg", "image/png":
		return &messaging_api.ImageMessage{
			OriginalContentUrl: url,
			PreviewImageUrl:    url,
		}, nil
	case "video/mp4", "video/x-m4v":
		return &messaging_api.VideoMessage{
			OriginalContentUrl: url,
			PreviewImageUrl:    url,
		}, nil
	case "audio/mp4", "audio/x-m4a":
		return &messaging_api.AudioMessage{
			OriginalContentUrl: url,
			Duration:           AudioDurationMillis(file.Data),
		}, nil
	default:
		s.logger.Debug("unsupported upload dropped",
			slog.String("name", file.Name),
			slog.String("content_type", contentType),
		)
		return nil, nil
	}
}
