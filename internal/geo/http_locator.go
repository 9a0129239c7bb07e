package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// AcquisitionTimeout is the hard per-attempt limit. A positioning endpoint
// that has not answered within this window is treated as timed out.
const AcquisitionTimeout = 10 * time.Second

// HTTPLocator acquires a position from a JSON positioning endpoint (a local
// GPS daemon or a network positioning service). The endpoint responds with
// {"lat": <float>, "lng": <float>}.
type HTTPLocator struct {
	endpoint string
	client   *http.Client
}

// NewHTTPLocator creates a locator for the given endpoint. An empty endpoint
// means the environment exposes no location capability.
func NewHTTPLocator(endpoint string) (*HTTPLocator, error) {
	if endpoint == "" {
		return nil, ErrUnavailable
	}
	return &HTTPLocator{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: AcquisitionTimeout,
		},
	}, nil
}

// Locate issues one positioning query. Cached positions are refused via
// Cache-Control so every acquisition reflects the current device state.
func (l *HTTPLocator) Locate(ctx context.Context) (Fix, error) {
	ctx, cancel := context.WithTimeout(ctx, AcquisitionTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return Fix{}, &Error{Kind: KindUnknown, Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, max-age=0")

	resp, err := l.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Fix{}, &Error{Kind: KindTimeout, Cause: err}
		}
		return Fix{}, &Error{Kind: KindPositionUnavailable, Cause: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return Fix{}, &Error{Kind: KindPermissionDenied, Cause: fmt.Errorf("positioning endpoint returned %d", resp.StatusCode)}
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusServiceUnavailable:
		return Fix{}, &Error{Kind: KindPositionUnavailable, Cause: fmt.Errorf("positioning endpoint returned %d", resp.StatusCode)}
	default:
		return Fix{}, &Error{Kind: KindUnknown, Cause: fmt.Errorf("positioning endpoint returned %d", resp.StatusCode)}
	}

	var fix Fix
	if err := json.NewDecoder(resp.Body).Decode(&fix); err != nil {
		return Fix{}, &Error{Kind: KindUnknown, Cause: fmt.Errorf("decode position: %w", err)}
	}
	return fix, nil
}
