// Package apiclient is the HTTP client the relay agent and the timing client
// use to talk to the timing service.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
	"github.com/mcfadden20/Swim-meet-timer/internal/logger"
)

// APIClient handles communication with the timing service API
type APIClient struct {
	BaseURL    string
	Client     *http.Client
	Retries    int
	RetryDelay time.Duration
}

// Option configures an APIClient
type Option func(*APIClient)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *APIClient) { c.Client = hc }
}

// WithRetry sets how often a transient failure is retried within one call.
func WithRetry(retries int, delay time.Duration) Option {
	return func(c *APIClient) {
		c.Retries = retries
		c.RetryDelay = delay
	}
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string, opts ...Option) *APIClient {
	c := &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: DefaultTimeout,
		},
		Retries:    DefaultRetries,
		RetryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRequest sends one JSON request, retrying transport failures and 5xx
// responses with a fixed delay. Non-2xx responses come back as *StatusError.
func (c *APIClient) doRequest(ctx context.Context, method, path string, body, out any) error {
	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	log := logger.FromContext(ctx)
	target := c.BaseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.Retries; attempt++ {
		if attempt > 0 {
			log.Info(LogMsgRetrying, "attempt", attempt, "path", path, "delay", c.RetryDelay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.RetryDelay):
			}
		}

		lastErr = c.send(ctx, method, target, reqBody, out)
		if lastErr == nil || !IsTransient(lastErr) || ctx.Err() != nil {
			return lastErr
		}
		log.Warn(LogMsgRequestFailed, "error", lastErr, "attempt", attempt, "path", path)
	}

	return lastErr
}

func (c *APIClient) send(ctx context.Context, method, target string, reqBody []byte, out any) error {
	var rdr io.Reader
	if reqBody != nil {
		rdr = bytes.NewReader(reqBody)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	se := &StatusError{StatusCode: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var errResp errorResponse
	if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
		se.Message = errResp.Error
	} else {
		se.Message = strings.TrimSpace(string(data))
	}
	return se
}

func credentialQuery(accessCode, adminPIN string) string {
	q := url.Values{}
	q.Set(ParamAccessCode, accessCode)
	q.Set(ParamAdminPIN, adminPIN)
	return q.Encode()
}

// VerifyAuth checks a relay agent's credential pair.
func (c *APIClient) VerifyAuth(ctx context.Context, accessCode, adminPIN string) (*VerifyAuthResponse, error) {
	var out VerifyAuthResponse
	if err := c.doRequest(ctx, http.MethodGet, PathVerifyAuth+"?"+credentialQuery(accessCode, adminPIN), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PendingFiles lists the race files the meet's relay agent has not acknowledged.
func (c *APIClient) PendingFiles(ctx context.Context, accessCode, adminPIN string) ([]domain.PendingFile, error) {
	var out PendingResponse
	if err := c.doRequest(ctx, http.MethodGet, PathPendingFiles+"?"+credentialQuery(accessCode, adminPIN), nil, &out); err != nil {
		return nil, err
	}
	return out.Pending, nil
}

// Receipt acknowledges files and returns how many receipts were new.
func (c *APIClient) Receipt(ctx context.Context, accessCode, adminPIN string, filenames []string) (int, error) {
	if filenames == nil {
		filenames = []string{}
	}
	req := ReceiptRequest{AccessCode: accessCode, AdminPIN: adminPIN, Filenames: filenames}
	var out ReceiptResponse
	if err := c.doRequest(ctx, http.MethodPost, PathReceipt, req, &out); err != nil {
		return 0, err
	}
	return out.Acknowledged, nil
}

// SubmitTime records a lane time.
func (c *APIClient) SubmitTime(ctx context.Context, req TimeRequest) (*domain.ResultRecord, error) {
	var out domain.ResultRecord
	if err := c.doRequest(ctx, http.MethodPost, PathResults, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitDQ records or overwrites a lane's DQ.
func (c *APIClient) SubmitDQ(ctx context.Context, req DQRequest) (*domain.ResultRecord, error) {
	var out domain.ResultRecord
	if err := c.doRequest(ctx, http.MethodPost, PathSubmitDQ, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Status fetches the parsed meet program configuration for a meet.
func (c *APIClient) Status(ctx context.Context, meetID int64) (*domain.ConfigSnapshot, error) {
	q := url.Values{}
	q.Set(ParamMeetID, strconv.FormatInt(meetID, 10))
	var out domain.ConfigSnapshot
	if err := c.doRequest(ctx, http.MethodGet, PathMeetStatus+"?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// IsRejected reports whether the server refused the request itself.
func IsRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}
