package bridge

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailer(profiles ProfileFetcher, contents ContentFetcher, sender *fakeSender) *Mailer {
	return NewMailer(nil, profiles, contents, sender,
		"relay@example.com",
		[]string{"inbox@example.com"},
		"LINEからのメッセージ",
	)
}

func textEvent(userID, text string) webhook.MessageEvent {
	ev := webhook.MessageEvent{
		Message: webhook.TextMessageContent{Id: "m-text", Text: text},
	}
	if userID != "" {
		ev.Source = webhook.UserSource{UserId: userID}
	}
	return ev
}

func TestHandleEventText(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	mailer := newTestMailer(
		&fakeProfiles{names: map[string]string{"U1": "田中"}},
		&fakeContents{},
		sender,
	)

	err := mailer.HandleEvent(context.Background(), textEvent("U1", "こんにちは"))
	require.NoError(t, err)

	sent := sender.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "田中さんからのメッセージ\n\nこんにちは", sent[0].Body)
	assert.Empty(t, sent[0].Attachments)
	assert.Equal(t, []string{"inbox@example.com"}, sent[0].To)
	assert.Equal(t, "relay@example.com", sent[0].From)
	assert.Equal(t, "LINEからのメッセージ", sent[0].Subject)
}

func TestHandleEventTextWithoutSource(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	mailer := newTestMailer(&fakeProfiles{}, &fakeContents{}, sender)

	err := mailer.HandleEvent(context.Background(), textEvent("", "hello"))
	require.NoError(t, err)

	sent := sender.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "ユーザーからのメッセージ\n\nhello", sent[0].Body)
}

func TestHandleEventGroupSenderProfile(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	mailer := newTestMailer(
		&fakeProfiles{names: map[string]string{"U9": "鈴木"}},
		&fakeContents{},
		sender,
	)

	ev := webhook.MessageEvent{
		Source:  webhook.GroupSource{GroupId: "G1", UserId: "U9"},
		Message: webhook.TextMessageContent{Id: "m1", Text: "group hello"},
	}
	require.NoError(t, mailer.HandleEvent(context.Background(), ev))

	sent := sender.all()
	require.Len(t, sent, 1)
	assert.True(t, strings.HasPrefix(sent[0].Body, "鈴木さんからのメッセージ"))
}

func TestHandleEventMediaKinds(t *testing.T) {
	t.Parallel()

	payload := []byte{0xFF, 0xD8, 0xFF, 0x01, 0x02}
	tests := []struct {
		name      string
		message   webhook.MessageContentInterface
		mime      string
		label     string
		extension string
	}{
		{name: "image", message: webhook.ImageMessageContent{Id: "m-img"}, mime: "image/jpeg", label: "画像メッセージ", extension: ".jpg"},
		{name: "video", message: webhook.VideoMessageContent{Id: "m-vid"}, mime: "video/mp4", label: "動画メッセージ", extension: ".mp4"},
		{name: "audio", message: webhook.AudioMessageContent{Id: "m-aud"}, mime: "audio/x-m4a", label: "音声メッセージ", extension: ".m4a"},
		{name: "file", message: webhook.FileMessageContent{Id: "m-file"}, mime: "application/pdf", label: "ファイルメッセージ", extension: ".pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sender := &fakeSender{}
			mailer := newTestMailer(
				&fakeProfiles{names: map[string]string{"U1": "田中"}},
				&fakeContents{data: payload, contentType: tt.mime},
				sender,
			)

			ev := webhook.MessageEvent{
				Source:  webhook.UserSource{UserId: "U1"},
				Message: tt.message,
			}
			require.NoError(t, mailer.HandleEvent(context.Background(), ev))

			sent := sender.all()
			require.Len(t, sent, 1)
			require.Len(t, sent[0].Attachments, 1)

			att := sent[0].Attachments[0]
			assert.Equal(t, tt.mime, att.ContentType)
			assert.True(t, strings.HasSuffix(att.Filename, tt.extension), "filename %q", att.Filename)
			assert.Equal(t,
				base64.StdEncoding.EncodeToString(payload),
				base64.StdEncoding.EncodeToString(att.Data),
			)
			assert.True(t, strings.HasSuffix(sent[0].Body, tt.label), "body %q", sent[0].Body)
		})
	}
}

func TestHandleEventSticker(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	mailer := newTestMailer(
		&fakeProfiles{names: map[string]string{"U1": "田中"}},
		&fakeContents{},
		sender,
	)

	ev := webhook.MessageEvent{
		Source:  webhook.UserSource{UserId: "U1"},
		Message: webhook.StickerMessageContent{Id: "m-sticker", StickerId: "52002734"},
	}
	require.NoError(t, mailer.HandleEvent(context.Background(), ev))

	sent := sender.all()
	require.Len(t, sent, 1)
	assert.Empty(t, sent[0].Attachments)
	assert.True(t, strings.HasSuffix(sent[0].Body, "スタンプ"))
}

func TestHandleEventUnhandledMessageKind(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	mailer := newTestMailer(
		&fakeProfiles{names: map[string]string{"U1": "田中"}},
		&fakeContents{},
		sender,
	)

	ev := webhook.MessageEvent{
		Source:  webhook.UserSource{UserId: "U1"},
		Message: webhook.LocationMessageContent{Id: "m-loc", Latitude: 35.65, Longitude: 139.74},
	}
	require.NoError(t, mailer.HandleEvent(context.Background(), ev))
	assert.Empty(t, sender.all())
}

func TestHandleEventNonMessageEvent(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	mailer := newTestMailer(&fakeProfiles{}, &fakeContents{}, sender)

	require.NoError(t, mailer.HandleEvent(context.Background(), webhook.FollowEvent{}))
	assert.Empty(t, sender.all())
}

func TestHandleEventProfileFetchFailure(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	mailer := newTestMailer(&fakeProfiles{failFor: "U1"}, &fakeContents{}, sender)

	err := mailer.HandleEvent(context.Background(), textEvent("U1", "hello"))
	require.Error(t, err)
	assert.Empty(t, sender.all())
}

func TestHandleEventContentFetchFailure(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	mailer := newTestMailer(
		&fakeProfiles{names: map[string]string{"U1": "田中"}},
		&fakeContents{err: errors.New("blob unavailable")},
		sender,
	)

	ev := webhook.MessageEvent{
		Source:  webhook.UserSource{UserId: "U1"},
		Message: webhook.ImageMessageContent{Id: "m-img"},
	}
	require.Error(t, mailer.HandleEvent(context.Background(), ev))
	assert.Empty(t, sender.all())
}

func TestHandleEventSendFailure(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{err: errors.New("delivery refused")}
	mailer := newTestMailer(
		&fakeProfiles{names: map[string]string{"U1": "田中"}},
		&fakeContents{},
		sender,
	)

	err := mailer.HandleEvent(context.Background(), textEvent("U1", "hello"))
	require.Error(t, err)
}
