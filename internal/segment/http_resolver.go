package segment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"cart-offer/internal/model"
)

// HTTPResolver looks segments up on the remote user segment service.
type HTTPResolver struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewHTTPResolver creates a resolver calling GET {baseURL}/user_segment.
func NewHTTPResolver(baseURL string, timeout time.Duration, logger zerolog.Logger) *HTTPResolver {
	return &HTTPResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "segment-client").Logger(),
	}
}

// Lookup fetches the user's segment. A 404 or an empty segment is reported
// as model.ErrUserNotFound.
func (r *HTTPResolver) Lookup(ctx context.Context, userID int64) (string, error) {
	endpoint := r.baseURL + "/user_segment?" + url.Values{
		"user_id": []string{strconv.FormatInt(userID, 10)},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build segment request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("segment service request failed")
		return "", fmt.Errorf("segment service request failed: %w", err)
	}
	defer resp.Body.Close()

	r.logger.Debug().
		Int64("user_id", userID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("segment service responded")

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", model.ErrUserNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("segment service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload model.SegmentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode segment response: %w", err)
	}

	if payload.Segment == "" {
		return "", model.ErrUserNotFound
	}

	return payload.Segment, nil
}
