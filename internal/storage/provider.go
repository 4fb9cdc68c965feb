// Package storage abstracts public object storage for relayed media.
package storage

import "context"

// Uploader persists a payload under a key, makes it publicly readable,
// and returns a stable public URL. Objects are never deleted by this
// system.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (publicURL string, err error)
}
