package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/posdesk/pos-engine/internal/application/ports"
	domainErrors "github.com/posdesk/pos-engine/internal/domain/errors"
	"github.com/posdesk/pos-engine/internal/infrastructure/monitoring"
)

// Client is the shared JSON/HTTP transport for both remote services. Every
// request carries the bearer credential and a correlation id; a 401 from
// any endpoint invalidates the credential and fires the onUnauthorized
// hook. No retries: retry decisions belong to the user re-invoking the
// operation.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	creds          ports.CredentialStore
	onUnauthorized func()
	log            *zap.SugaredLogger
}

func NewClient(baseURL string, timeout time.Duration, creds ports.CredentialStore, onUnauthorized func(), log *zap.SugaredLogger) *Client {
	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		baseURL:        baseURL,
		creds:          creds,
		onUnauthorized: onUnauthorized,
		log:            log,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	op := method + " " + path

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &domainErrors.TransportError{Op: op, Err: err}
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return &domainErrors.TransportError{Op: op, Err: err}
	}

	token, err := c.creds.Token()
	if err != nil {
		// Same path as a 401 from the service: the operator has to sign
		// in again either way.
		return c.unauthorized()
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warnw("request failed", "op", op, "request_id", requestID, "error", err)
		return &domainErrors.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debugw("request completed",
		"op", op,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode == http.StatusUnauthorized {
		return c.unauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domainErrors.ServiceError{
			StatusCode: resp.StatusCode,
			Detail:     extractDetail(resp.Body),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &domainErrors.TransportError{Op: op, Err: err}
		}
	}
	return nil
}

func (c *Client) unauthorized() error {
	monitoring.UnauthorizedResponsesTotal.Inc()
	c.creds.Invalidate()
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return domainErrors.ErrUnauthorized
}

// extractDetail pulls the service's structured error message. Services
// answer errors as {"detail": ...} where detail is usually a string but may
// be any JSON value for validation errors.
func extractDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil {
		return ""
	}

	var payload struct {
		Detail interface{} `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Detail == nil {
		return ""
	}
	if s, ok := payload.Detail.(string); ok {
		return s
	}
	encoded, err := json.Marshal(payload.Detail)
	if err != nil {
		return ""
	}
	return string(encoded)
}
