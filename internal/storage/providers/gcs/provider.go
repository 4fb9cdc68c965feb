// Package gcs implements storage.Uploader on a Google Cloud Storage
// bucket.
package gcs

import (
	"context"
	"fmt"

	gstorage "cloud.google.com/go/storage"

	"github.com/linemailhq/linemail/internal/storage"
)

type Provider struct {
	client *gstorage.Client
	bucket *gstorage.BucketHandle
	name   string
}

// New creates a provider for the named bucket using ambient Google
// credentials.
func New(ctx context.Context, bucket string) (*Provider, error) {
	client, err := gstorage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &Provider{
		client: client,
		bucket: client.Bucket(bucket),
		name:   bucket,
	}, nil
}

// Upload writes data under key, marks the object publicly readable, and
// returns its public URL.
func (p *Provider) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	obj := p.bucket.Object(key)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize object %s: %w", key, err)
	}

	if err := obj.ACL().Set(ctx, gstorage.AllUsers, gstorage.RoleReader); err != nil {
		return "", fmt.Errorf("set public acl on %s: %w", key, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", p.name, key), nil
}

func (p *Provider) Close() error {
	return p.client.Close()
}

var _ storage.Uploader = (*Provider)(nil)
