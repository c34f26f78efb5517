// Package catalog talks to the GTN training-material API and fills the
// current snapshot.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"eosc-harvest/internal/domain"
	"eosc-harvest/internal/httpx"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Retry   httpx.RetryConfig
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: 2 * time.Minute, // per request
		},
		Retry: httpx.SingleAttempt(),
	}
}

// ListTopics fetches the topic index. The API returns an object keyed by
// topic name; order of keys is not meaningful, so we sort for deterministic
// runs.
func (c *Client) ListTopics(ctx context.Context) ([]string, error) {
	var index map[string]json.RawMessage
	err := httpx.DoJSON(ctx, c.HTTP, c.getRequest(c.BaseURL+"/api/topics.json"), &index, c.Retry)
	if err != nil {
		return nil, fmt.Errorf("catalog: list topics: %w", err)
	}

	topics := make([]string, 0, len(index))
	for t := range index {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics, nil
}

type topicResponse struct {
	Materials []json.RawMessage `json:"materials"`
}

// Materials fetches one topic's training records. Each record keeps its raw
// JSON alongside the parsed fields so the snapshot preserves everything.
func (c *Client) Materials(ctx context.Context, topic string) ([]domain.TrainingRecord, error) {
	var resp topicResponse
	url := fmt.Sprintf("%s/api/topics/%s.json", c.BaseURL, topic)
	if err := httpx.DoJSON(ctx, c.HTTP, c.getRequest(url), &resp, c.Retry); err != nil {
		return nil, fmt.Errorf("catalog: materials for %s: %w", topic, err)
	}

	records := make([]domain.TrainingRecord, 0, len(resp.Materials))
	for _, raw := range resp.Materials {
		rec, err := domain.ParseRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("catalog: materials for %s: %w", topic, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (c *Client) getRequest(url string) func(context.Context) (*http.Request, error) {
	return func(ctx context.Context) (*http.Request, error) {
		r, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		r.Header.Set("Accept", "application/json")
		return r, nil
	}
}
