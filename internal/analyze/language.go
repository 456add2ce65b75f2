// Package analyze wraps the Cloud Natural Language entity-analysis API behind
// the pipeline's EntityAnalyzer boundary.
package analyze

import (
	"context"
	"fmt"
	"strings"
	"time"

	language "cloud.google.com/go/language/apiv1"
	"cloud.google.com/go/language/apiv1/languagepb"
	"google.golang.org/api/option"
)

type Client struct {
	lc      *language.Client
	timeout time.Duration
}

func New(ctx context.Context, credentialsFile string, timeout time.Duration) (*Client, error) {
	var opts []option.ClientOption
	if strings.TrimSpace(credentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	lc, err := language.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("language client: %w", err)
	}
	return &Client{lc: lc, timeout: timeout}, nil
}

// AnalyzeEntities returns the entity names found in text, in the order the
// service reports them. Duplicates are kept; filtering is the service's job.
func (c *Client) AnalyzeEntities(ctx context.Context, text string) ([]string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.lc.AnalyzeEntities(ctx, &languagepb.AnalyzeEntitiesRequest{
		Document: &languagepb.Document{
			Source: &languagepb.Document_Content{Content: text},
			Type:   languagepb.Document_PLAIN_TEXT,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("analyze entities: %w", err)
	}

	keywords := make([]string, 0, len(resp.GetEntities()))
	for _, entity := range resp.GetEntities() {
		keywords = append(keywords, entity.GetName())
	}
	return keywords, nil
}

func (c *Client) Close() error {
	return c.lc.Close()
}
