package bigquery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bq "cloud.google.com/go/bigquery"
	"google.golang.org/api/option"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/config"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/logger"
)

var errProjectIDRequired = errors.New("gcp project id is required")

// Client wraps the BigQuery streaming inserter for the analytics dataset.
type Client struct {
	client  *bq.Client
	dataset string
}

// NewClient creates a BigQuery client scoped to the configured dataset.
func NewClient(ctx context.Context, gcp config.GCPConfig, cfg config.BigQueryConfig, logg *logger.Logger) (*Client, error) {
	if strings.TrimSpace(gcp.ProjectID) == "" {
		return nil, errProjectIDRequired
	}

	var opts []option.ClientOption
	if creds := strings.TrimSpace(gcp.CredentialsJSON); creds != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	}

	bqClient, err := bq.NewClient(ctx, gcp.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating bigquery client: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "bigquery client initialized")
	}

	return &Client{
		client:  bqClient,
		dataset: cfg.Dataset,
	}, nil
}

// Inserter returns the streaming inserter for the named table in the dataset.
func (c *Client) Inserter(table string) *bq.Inserter {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Dataset(c.dataset).Table(table).Inserter()
}

// Put streams rows into the named table.
func (c *Client) Put(ctx context.Context, table string, rows interface{}) error {
	ins := c.Inserter(table)
	if ins == nil {
		return errors.New("bigquery client not initialized")
	}
	return ins.Put(ctx, rows)
}

// Close releases the BigQuery client resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
