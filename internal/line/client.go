// Package line wraps the LINE Messaging API behind the small interfaces
// the bridge package consumes.
package line

import (
	"context"
	"fmt"
	"io"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// Client is a thin adapter over the messaging and blob APIs. It is a
// process-wide singleton constructed once at startup.
type Client struct {
	api  *messaging_api.MessagingApiAPI
	blob *messaging_api.MessagingApiBlobAPI
}

func NewClient(channelToken string) (*Client, error) {
	api, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("create messaging api client: %w", err)
	}
	blob, err := messaging_api.NewMessagingApiBlobAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("create blob api client: %w", err)
	}
	return &Client{api: api, blob: blob}, nil
}

// GetDisplayName resolves a user's profile display name.
func (c *Client) GetDisplayName(_ context.Context, userID string) (string, error) {
	profile, err := c.api.GetProfile(userID)
	if err != nil {
		return "", fmt.Errorf("get profile %s: %w", userID, err)
	}
	return profile.DisplayName, nil
}

// FetchContent downloads the raw bytes of a media message together with
// the content type reported by the platform.
func (c *Client) FetchContent(_ context.Context, messageID string) ([]byte, string, error) {
	resp, err := c.blob.GetMessageContent(messageID)
	if err != nil {
		return nil, "", fmt.Errorf("get message content %s: %w", messageID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read message content %s: %w", messageID, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// Push delivers a single message to the target user or group. Sending
// one message per call keeps the platform's render order equal to the
// caller's call order.
func (c *Client) Push(_ context.Context, to string, msg messaging_api.MessageInterface) error {
	if _, err := c.api.PushMessage(&messaging_api.PushMessageRequest{
		To:       to,
		Messages: []messaging_api.MessageInterface{msg},
	}, ""); err != nil {
		return fmt.Errorf("push message to %s: %w", to, err)
	}
	return nil
}
