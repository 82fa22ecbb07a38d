package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
)

// Client talks to the SMS gateway. Scheduled delivery is the gateway's
// responsibility: the client only passes the future timestamp along.
type Client struct {
	baseURL    string
	apiKey     string
	senderName string
	httpClient *http.Client
}

type Config struct {
	BaseURL    string
	APIKey     string
	SenderName string
	Timeout    time.Duration
}

// scheduledLayout is the gateway's local timestamp format, ISO 8601 with
// milliseconds and no zone designator.
const scheduledLayout = "2006-01-02T15:04:05.000"

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		senderName: cfg.SenderName,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sendRequest struct {
	Receiver   string  `json:"receiver"`
	Message    string  `json:"message"`
	SenderName string  `json:"senderName"`
	Scheduled  *string `json:"scheduled"`
}

type Response struct {
	Status string `json:"status"`
	Result struct {
		BatchID string `json:"batchId"`
	} `json:"result"`
}

// Send submits one message, immediately or at the scheduled time, and
// returns the gateway's status and batch id.
func (c *Client) Send(ctx context.Context, receiver, message string, scheduled *time.Time) (*Response, error) {
	payload := sendRequest{
		Receiver:   receiver,
		Message:    message,
		SenderName: c.senderName,
	}
	if scheduled != nil {
		formatted := scheduled.Format(scheduledLayout)
		payload.Scheduled = &formatted
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/sms/send", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Join(domain.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sms send returned status %d: %w", resp.StatusCode, domain.ErrProvider)
	}

	var result Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode sms response: %w", domain.ErrProvider)
	}

	return &result, nil
}

// Delete cancels a scheduled message at the gateway by its batch id.
func (c *Client) Delete(ctx context.Context, batchID string) error {
	endpoint := fmt.Sprintf("%s/v1/sms/delete?batchId=%s", c.baseURL, url.QueryEscape(batchID))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build sms delete request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(domain.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms delete returned status %d: %w", resp.StatusCode, domain.ErrProvider)
	}

	return nil
}
