package bridge

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"testing"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/linemailhq/linemail/internal/email"
)

type fakeProfiles struct {
	names   map[string]string
	failFor string
}

func (f *fakeProfiles) GetDisplayName(_ context.Context, userID string) (string, error) {
	if userID == f.failFor {
		return "", fmt.Errorf("profile lookup failed for %s", userID)
	}
	name, ok := f.names[userID]
	if !ok {
		return "", fmt.Errorf("unknown user %s", userID)
	}
	return name, nil
}

type fakeContents struct {
	data        []byte
	contentType string
	err         error
}

func (f *fakeContents) FetchContent(_ context.Context, _ string) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.data, f.contentType, nil
}

type fakeSender struct {
	mu   sync.Mutex
	sent []email.OutboundEmail
	err  error
}

func (f *fakeSender) Type() email.ProviderName { return "fake" }

func (f *fakeSender) Send(_ context.Context, msg email.OutboundEmail) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return fmt.Sprintf("msg-%d", len(f.sent)), nil
}

func (f *fakeSender) all() []email.OutboundEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]email.OutboundEmail(nil), f.sent...)
}

type fakePusher struct {
	targets []string
	msgs    []messaging_api.MessageInterface
	err     error
}

func (f *fakePusher) Push(_ context.Context, to string, msg messaging_api.MessageInterface) error {
	if f.err != nil {
		return f.err
	}
	f.targets = append(f.targets, to)
	f.msgs = append(f.msgs, msg)
	return nil
}

type fakeUploader struct {
	keys         []string
	contentTypes []string
	err          error
}

func (f *fakeUploader) Upload(_ context.Context, key string, _ []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	f.contentTypes = append(f.contentTypes, contentType)
	return "https://storage.example.com/relay-media/" + key, nil
}

// jpegBytes is the shortest prefix the sniffer classifies as image/jpeg.
func jpegBytes() []byte {
	return []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
}

func pngBytes() []byte {
	return []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}
}

// m4aBytes builds a minimal M4A container: an ftyp box with the M4A
// brand followed by a moov/mvhd pair carrying the given timescale and
// duration.
func m4aBytes(t *testing.T, timescale, duration uint32) []byte {
	t.Helper()

	var buf bytes.Buffer
	writeUint32 := func(v uint32) {
		if err := binary.Write(&buf, binary.BigEndian, v); err != nil {
			t.Fatalf("write box field: %v", err)
		}
	}

	writeUint32(16)
	buf.WriteString("ftyp")
	buf.WriteString("M4A ")
	writeUint32(0)

	const mvhdSize = 108
	writeUint32(8 + mvhdSize)
	buf.WriteString("moov")
	writeUint32(mvhdSize)
	buf.WriteString("mvhd")
	buf.Write(make([]byte, 4)) // version + flags
	writeUint32(0)             // creation time
	writeUint32(0)             // modification time
	writeUint32(timescale)
	writeUint32(duration)
	buf.Write(make([]byte, 80)) // rate through next track id

	return buf.Bytes()
}
