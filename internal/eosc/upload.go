package eosc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"eosc-harvest/internal/httpx"
)

// UploadReport summarizes one upload pass over the validated store.
type UploadReport struct {
	SuccessfulCreations int
	FailedCreations     int
	SuccessfulUpdates   int
	FailedUpdates       int
	Failures            []string
}

// CreateResource registers a validated new resource (POST).
func (c *Client) CreateResource(ctx context.Context, body []byte) error {
	return c.upsert(ctx, http.MethodPost, body)
}

// UpdateResource pushes a validated updated resource (PUT).
func (c *Client) UpdateResource(ctx context.Context, body []byte) error {
	return c.upsert(ctx, http.MethodPut, body)
}

func (c *Client) upsert(ctx context.Context, method string, body []byte) error {
	if c.User == "" || c.Pass == "" {
		return errors.New("eosc: missing env vars EOSC_USERNAME / EOSC_PASSWORD")
	}

	_, _, err := httpx.Do(
		ctx,
		c.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			r, err := http.NewRequestWithContext(ctx, method, c.BaseURL+"/trainingResource", bytes.NewReader(body))
			if err != nil {
				return nil, err
			}
			r.Header.Set("Content-Type", contentTypeJSON)
			r.Header.Set("Accept", contentTypeJSON)
			r.SetBasicAuth(c.User, c.Pass)
			return r, nil
		},
		// Uploads happen outside the harvest run, so the retrying default is
		// fine here.
		httpx.DefaultRetryConfig(),
	)
	if err != nil {
		return fmt.Errorf("eosc: %s resource failed: %w", method, err)
	}
	return nil
}
