package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainforecast "github.com/supplychain/backend/internal/domain/forecast"
	"github.com/supplychain/backend/internal/domain/shared"
)

// maxResponseSize limits the response body size to prevent memory exhaustion
const maxResponseSize = 1 * 1024 * 1024 // 1MB max response

// Config holds the forecasting service client configuration
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// HTTPClient calls the external demand forecasting service over HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewHTTPClient(cfg Config, logger *zap.Logger) *HTTPClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Retrain triggers a model retrain on the forecasting service.
func (c *HTTPClient) Retrain(ctx context.Context) error {
	body, err := c.doRequest(ctx, http.MethodPost, "/retrain", nil)
	if err != nil {
		return err
	}

	var resp retrainResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("forecast: failed to parse retrain response: %w", err)
	}
	if resp.Status != "ok" {
		return fmt.Errorf("forecast: retrain rejected: %s: %w", resp.Message, shared.ErrUpstreamUnavailable)
	}
	return nil
}

// LatestSnapshot fetches the newest prediction for a product and target week.
func (c *HTTPClient) LatestSnapshot(ctx context.Context, productID uuid.UUID, targetWeek time.Time) (*domainforecast.SnapshotResult, error) {
	q := url.Values{}
	q.Set("product_id", productID.String())
	q.Set("target_week", targetWeek.Format("2006-01-02"))

	body, err := c.doRequest(ctx, http.MethodGet, "/predictions/latest?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var result domainforecast.SnapshotResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("forecast: failed to parse prediction response: %w", err)
	}
	return &result, nil
}

func (c *HTTPClient) doRequest(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("forecast: failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("forecast: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Forecast service unreachable",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("forecast: request failed: %v: %w", err, shared.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("forecast: failed to read response: %w", err)
	}

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("forecast: upstream returned %d: %w", resp.StatusCode, shared.ErrUpstreamUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast: unexpected status %d: %s", resp.StatusCode, body)
	}
	return body, nil
}

type retrainResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

var _ domainforecast.Client = (*HTTPClient)(nil)
