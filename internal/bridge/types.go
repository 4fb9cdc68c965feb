// Package bridge implements the two relay pipelines: chat webhook
// events out to email, and form submissions out to chat push messages.
package bridge

import (
	"context"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// ProfileFetcher resolves a chat user's display name.
type ProfileFetcher interface {
	GetDisplayName(ctx context.Context, userID string) (string, error)
}

// ContentFetcher downloads the raw bytes of a media message together
// with the content type reported by the platform.
type ContentFetcher interface {
	FetchContent(ctx context.Context, messageID string) (data []byte, contentType string, err error)
}

// MessagePusher delivers one message to a fixed target.
type MessagePusher interface {
	Push(ctx context.Context, to string, msg messaging_api.MessageInterface) error
}

// Submission is one inbound form post: three plain text fields plus the
// uploaded files in submission order.
type Submission struct {
	From    string
	Subject string
	Text    string
	Files   []SubmissionFile
}

// SubmissionFile is an uploaded file buffer with its client-side name.
// The client-declared content type is deliberately not carried: the
// pipeline trusts only the sniffed type.
type SubmissionFile struct {
	Name string
	Data []byte
}

// EventResult is the outcome slot for one webhook event in a batch.
type EventResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
