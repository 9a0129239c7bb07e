// Package advisory talks to the external analysis service that turns a
// completed assessment into a three-strategy advisory plan. The service's
// scoring logic is opaque to this client; it only owns the wire exchange.
package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"agriassist/internal/geo"
)

// ErrBackend is the uniform submission failure. The service publishes no
// structured error body, so every non-2xx status and every transport error
// collapses into this one retryable condition.
var ErrBackend = errors.New("backend connection failed")

// BackendFailureNotice is the user-facing message for ErrBackend.
const BackendFailureNotice = "Backend connection failed. Is the analysis service running?"

// Strategy is one advisory scenario as returned by the service.
type Strategy struct {
	Title   string `json:"title"`
	Content string `json:"content"` // markdown
}

// StrategyResponse is the full analysis result: exactly three scenarios.
type StrategyResponse struct {
	LowRisk  Strategy `json:"lowRisk"`
	Balanced Strategy `json:"balanced"`
	HighRisk Strategy `json:"highRisk"`
}

// submission is the request body for /submit-survey.
type submission struct {
	Answers     map[string]string `json:"answers"`
	GPSLocation *geo.Fix          `json:"gps_location"`
}

// Client submits surveys to the analysis endpoint.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a submission client for the given base URL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// Submit sends the answer map and location snapshot to the analysis service
// and parses the three-strategy response. Location may be nil when no fix
// was acquired; it is serialized as JSON null.
func (c *Client) Submit(ctx context.Context, answers map[string]string, fix *geo.Fix) (*StrategyResponse, error) {
	body, err := json.Marshal(submission{Answers: answers, GPSLocation: fix})
	if err != nil {
		return nil, fmt.Errorf("marshal submission: %w", err)
	}

	requestID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/submit-survey", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	log := c.logger.With(zap.String("request_id", requestID))
	log.Debug("submitting survey",
		zap.Int("answers", len(answers)),
		zap.Bool("has_location", fix != nil))

	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn("submission transport failure", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Warn("submission rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", detail))
		return nil, fmt.Errorf("%w: status %d", ErrBackend, resp.StatusCode)
	}

	var result StrategyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Warn("submission response unparseable", zap.Error(err))
		return nil, fmt.Errorf("%w: decode response: %v", ErrBackend, err)
	}
	if err := result.validate(); err != nil {
		log.Warn("submission response incomplete", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	log.Debug("submission succeeded")
	return &result, nil
}

func (r *StrategyResponse) validate() error {
	for name, s := range map[string]Strategy{
		"lowRisk":  r.LowRisk,
		"balanced": r.Balanced,
		"highRisk": r.HighRisk,
	} {
		if s.Title == "" && s.Content == "" {
			return fmt.Errorf("response missing %s strategy", name)
		}
	}
	return nil
}
