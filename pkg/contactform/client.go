package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iotx/contactrelay/svc/contact"
)

const (
	// DefaultProbeTimeout bounds the liveness probe.
	DefaultProbeTimeout = 3 * time.Second

	// FallbackReason is shown when the relay gives no message of its own.
	FallbackReason = "Failed to send message"

	// TransportFailureReason is shown when no usable reply came back.
	TransportFailureReason = "Failed to send your message. Please try again later."

	healthPath  = "/api/health"
	contactPath = "/api/contact"
	maxReply    = 64 << 10
)

// Client talks to a relay over HTTP.
type Client struct {
	healthURL    string
	contactURL   string
	http         *http.Client
	probeTimeout time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithProbeTimeout overrides DefaultProbeTimeout.
func WithProbeTimeout(d time.Duration) ClientOption {
	return func(cl *Client) {
		if d > 0 {
			cl.probeTimeout = d
		}
	}
}

// NewClient returns a Client for the relay at baseURL, e.g. "https://api.iot-x.io".
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		healthURL:    u.JoinPath(healthPath).String(),
		contactURL:   u.JoinPath(contactPath).String(),
		http:         http.DefaultClient,
		probeTimeout: DefaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Probe reports whether the relay answers its health check with a 2xx
// within the probe timeout.
func (c *Client) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxReply))

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

type reply struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

// Send posts req to the relay. The Result is always usable; the error is
// non-nil only when no valid reply was received.
func (c *Client) Send(ctx context.Context, req contact.ContactRequest) (Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return failed(TransportFailureReason), errors.Join(ErrTransport, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.contactURL, bytes.NewReader(body))
	if err != nil {
		return failed(TransportFailureReason), errors.Join(ErrTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return failed(TransportFailureReason), errors.Join(ErrTransport, err)
	}
	defer resp.Body.Close()

	var r reply
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxReply)).Decode(&r)
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	if decodeErr != nil {
		res := failed(TransportFailureReason)
		res.HTTPStatus = resp.StatusCode
		return res, errors.Join(ErrTransport, fmt.Errorf("decode reply (status %d): %w", resp.StatusCode, decodeErr))
	}
	if ok {
		return Result{Status: StatusDelivered, Message: r.Message, HTTPStatus: resp.StatusCode}, nil
	}

	return Result{
		Status:     StatusFailed,
		Reason:     failureReason(r.Message, r.ErrorCode),
		ErrorCode:  r.ErrorCode,
		HTTPStatus: resp.StatusCode,
	}, nil
}

// failureReason formats the inline error the way the form shows it.
func failureReason(message, code string) string {
	if message == "" {
		message = FallbackReason
	}
	if code != "" {
		return fmt.Sprintf("%s (Error code: %s)", message, code)
	}
	return message
}
