package eosc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"eosc-harvest/internal/httpx"
)

const contentTypeJSON = "application/json"

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Retry   httpx.RetryConfig

	// Basic auth, only needed for upload.
	User string
	Pass string
}

func New(baseURL string) *Client {
	tr := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout:   2 * time.Minute,
			Transport: tr,
		},
		Retry: httpx.SingleAttempt(),
	}
}

// Validate turns a MapResult into a ValidationOutcome. Mapping errors pass
// through without a network call. Resources are pre-checked against the
// profile schema locally, then posted to the validate endpoint.
func (c *Client) Validate(ctx context.Context, mr MapResult) ValidationOutcome {
	if mr.Failed() {
		return ValidationOutcome{
			Kind:     KindMappingError,
			Identity: mr.Identity,
			Topic:    mr.Topic,
			Message:  mr.Err,
		}
	}

	body, err := json.Marshal(mr.Resource)
	if err != nil {
		return ValidationOutcome{
			Kind:     KindMappingError,
			Identity: mr.Identity,
			Topic:    mr.Topic,
			Message:  fmt.Sprintf("serialize resource: %v", err),
		}
	}

	if err := CheckProfileSchema(body); err != nil {
		return ValidationOutcome{
			Kind:     KindMappingError,
			Identity: mr.Identity,
			Topic:    mr.Topic,
			Message:  err.Error(),
		}
	}

	_, respBody, err := httpx.Do(
		ctx,
		c.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/trainingResource/validate", bytes.NewReader(body))
			if err != nil {
				return nil, err
			}
			r.Header.Set("Content-Type", contentTypeJSON)
			r.Header.Set("Accept", contentTypeJSON)
			return r, nil
		},
		c.Retry,
	)
	if err != nil {
		msg := err.Error()
		var herr *httpx.HTTPError
		if errors.As(err, &herr) {
			msg = string(herr.Body)
		}
		return ValidationOutcome{
			Kind:     KindAPIError,
			Identity: mr.Identity,
			Topic:    mr.Topic,
			Message:  msg,
		}
	}

	return ValidationOutcome{
		Kind:     KindAccepted,
		Identity: mr.Identity,
		Topic:    mr.Topic,
		Verdict:  parseVerdict(respBody),
		Resource: mr.Resource,
	}
}

// parseVerdict stringifies the validate endpoint's response body. By
// convention the body is a bare boolean-like JSON value; arrays take their
// first element.
func parseVerdict(body []byte) string {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return string(bytes.TrimSpace(body))
	}
	if arr, ok := v.([]any); ok && len(arr) > 0 {
		v = arr[0]
	}
	switch x := v.(type) {
	case bool:
		if x {
			return "True"
		}
		return "False"
	case string:
		return x
	default:
		return fmt.Sprintf("%v", v)
	}
}
