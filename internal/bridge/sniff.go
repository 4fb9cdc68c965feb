package bridge

import (
	"bytes"
	"strings"

	mp4 "github.com/abema/go-mp4"
	"github.com/gabriel-vasile/mimetype"
)

// DetectContentType sniffs the MIME type from the payload bytes. The
// client-declared type is never consulted.
func DetectContentType(data []byte) string {
	mtype := mimetype.Detect(data)
	// Strip parameters such as "; charset=utf-8" so classification can
	// match on the bare type.
	return strings.TrimSpace(strings.Split(mtype.String(), ";")[0])
}

// ExtensionForMime maps a MIME type to a file extension for attachment
// filenames. Unknown types get a generic binary extension.
func ExtensionForMime(contentType string) string {
	base := strings.TrimSpace(strings.Split(contentType, ";")[0])
	if mt := mimetype.Lookup(base); mt != nil && mt.Extension() != "" {
		return mt.Extension()
	}
	return ".bin"
}

// AudioDurationMillis extracts the movie duration from MP4/M4A metadata
// and converts it to milliseconds. Returns 0 when the duration cannot
// be determined.
func AudioDurationMillis(data []byte) int64 {
	info, err := mp4.Probe(bytes.NewReader(data))
	if err != nil || info == nil || info.Timescale == 0 {
		return 0
	}
	return int64(info.Duration) * 1000 / int64(info.Timescale)
}
