// Package storage uploads artifacts to Google Cloud Storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type Client struct {
	gc      *gcs.Client
	timeout time.Duration
}

func New(ctx context.Context, credentialsFile string, timeout time.Duration) (*Client, error) {
	var opts []option.ClientOption
	if strings.TrimSpace(credentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	gc, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &Client{gc: gc, timeout: timeout}, nil
}

// Upload streams r into bucket/object. The write is only durable once the
// writer closes cleanly; any error aborts the object.
func (c *Client) Upload(ctx context.Context, bucket, object string, r io.Reader, contentType string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	w := c.gc.Bucket(bucket).Object(object).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %s/%s: %w", bucket, object, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize %s/%s: %w", bucket, object, err)
	}
	return nil
}

// PublicURL derives the object's public URL without a round trip. The URL is
// only meaningful once the corresponding Upload has completed.
func (c *Client) PublicURL(bucket, object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, object)
}

func (c *Client) Close() error {
	return c.gc.Close()
}
