package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultEndpoint is the development booking service
	DefaultEndpoint = "http://localhost:5000/api/disponibilidad"
	defaultTimeout  = 30 * time.Second
)

// Client talks to the booking service availability endpoint.
// Every call is a single attempt; there is no retry.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new availability client. A zero timeout disables it.
func NewClient(endpoint string, timeout time.Duration, logger *zap.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// NewDefaultClient creates a client for the development endpoint
func NewDefaultClient(logger *zap.Logger) *Client {
	return NewClient(DefaultEndpoint, defaultTimeout, logger)
}

// Endpoint returns the URL requests are posted to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// FetchAvailability posts the selection and returns the seats per date
func (c *Client) FetchAvailability(ctx context.Context, req AvailabilityRequest) (Availability, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("Fetching availability",
		zap.String("request_id", requestID),
		zap.String("endpoint", c.endpoint),
		zap.Int("year", req.Year),
		zap.String("month", req.Month),
		zap.String("route", req.Route.String()))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Availability request rejected",
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode))
		return nil, ErrRequestFailed
	}

	// Read and parse errors surface with their own message; the context
	// goes to the log only.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("Failed to read availability response",
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, err
	}

	var result AvailabilityResponse
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.Warn("Failed to parse availability response",
			zap.String("request_id", requestID),
			zap.Error(fmt.Errorf("failed to parse response: %w", err)))
		return nil, err
	}

	c.logger.Info("Availability fetched",
		zap.String("request_id", requestID),
		zap.Int("year", req.Year),
		zap.String("month", req.Month),
		zap.String("route", req.Route.String()),
		zap.Int("dates", len(result.Data)))

	return result.Data, nil
}
