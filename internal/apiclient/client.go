// Package apiclient is the REST consumer of the registrations contract. The
// admin tooling uses it when the service runs behind the hosted API rather
// than against a local store.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/voxxy-presents/presents-api/internal/model"
)

// APIError is an application-level failure: the server answered with a
// non-2xx status and (usually) a message worth showing verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// Client talks to the registrations API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Logger
}

// New builds a Client. The timeout bounds every request; the upstream
// contract does not specify one, so requests must not hang forever.
func New(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.WithFields(logrus.Fields{"method": method, "path": path}).Debug("api request")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(raw, &envelope); err == nil {
			apiErr.Message = envelope.Message
			if apiErr.Message == "" {
				apiErr.Message = envelope.Error
			}
		}
		if apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("request failed (%d)", resp.StatusCode)
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// CreateRegistration submits a new registration.
func (c *Client) CreateRegistration(ctx context.Context, req model.CreateRegistrationRequest) (*model.Registration, error) {
	var reg model.Registration
	if err := c.do(ctx, http.MethodPost, "/registrations", req, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// ListRegistrationsByEvent fetches all registrations for one event. The
// upstream response shape varies; the result is always a normalized slice.
func (c *Client) ListRegistrationsByEvent(ctx context.Context, eventID string) ([]model.Registration, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/registrations/event/"+eventID, nil, &raw); err != nil {
		return nil, err
	}
	regs, err := NormalizeRegistrations(raw)
	if err != nil {
		// Malformed payloads degrade to an empty list rather than failing
		// the whole panel.
		c.log.WithError(err).Warn("unexpected registration list shape")
		return []model.Registration{}, nil
	}
	return regs, nil
}

// MarkEmailSent flags a registration as having received its email.
func (c *Client) MarkEmailSent(ctx context.Context, registrationID string) error {
	return c.do(ctx, http.MethodPatch, "/registrations/"+registrationID+"/email-sent", nil, nil)
}
