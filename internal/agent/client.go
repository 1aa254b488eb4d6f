// Package agent talks to the chat runtime's HTTP search endpoint.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"relocation_quest/internal/domain"
)

const breakerName = "agent-search"

type Config struct {
	BaseURL          string
	Timeout          time.Duration
	MaxAttempts      int
	InitialBackoff   time.Duration
	MaxBackoff       time.Duration
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// errClient marks responses that retrying cannot fix.
var errClient = errors.New("client error")

type Client struct {
	httpClient     *http.Client
	searchURL      string
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	breaker        *gobreaker.CircuitBreaker[[]domain.SearchHit]
	logger         *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	logger = logger.With("component", "agent")

	base := strings.TrimRight(cfg.BaseURL, "/")
	base = strings.TrimSuffix(base, "/agui")

	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		searchURL:      base + "/search",
		maxAttempts:    maxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger,
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]domain.SearchHit](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errClient) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return c
}

// Search asks the chat runtime for articles matching query. Calls fail fast
// with gobreaker.ErrOpenState while the breaker is open.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.SearchHit, error) {
	return c.breaker.Execute(func() ([]domain.SearchHit, error) {
		return c.searchWithRetry(ctx, searchRequest{Query: query, Limit: limit})
	})
}

func (c *Client) searchWithRetry(ctx context.Context, body searchRequest) ([]domain.SearchHit, error) {
	var hits []domain.SearchHit
	var err error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		hits, err = c.doRequest(ctx, body)
		if err == nil || errors.Is(err, errClient) {
			return hits, err
		}

		if attempt == c.maxAttempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("search request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", c.maxAttempts, err)
}

func (c *Client) doRequest(ctx context.Context, body searchRequest) ([]domain.SearchHit, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.searchURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "RelocationQuest/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return nil, fmt.Errorf("unexpected status %d: %w", resp.StatusCode, errClient)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if searchResp.Articles == nil {
		return []domain.SearchHit{}, nil
	}
	return searchResp.Articles, nil
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}
