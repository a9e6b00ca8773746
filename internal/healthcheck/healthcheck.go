// Package healthcheck probes service dependencies concurrently.
package healthcheck

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Supported target kinds.
const (
	KindHTTP     = "http"
	KindPostgres = "postgres"
)

// ErrUnknownKind is returned for targets whose kind has no registered probe.
var ErrUnknownKind = errors.New("unknown target kind")

// Target is a dependency to probe.
type Target struct {
	Name    string `mapstructure:"name"`
	Kind    string `mapstructure:"kind"`
	Address string `mapstructure:"address"`
}

// Result is the outcome of probing one target.
type Result struct {
	Target  Target
	Healthy bool
	Latency time.Duration
	Err     error
}

// Probe checks a single target.
type Probe interface {
	Check(ctx context.Context, address string) error
}

// ProbeFunc adapts a function to Probe.
type ProbeFunc func(ctx context.Context, address string) error

func (f ProbeFunc) Check(ctx context.Context, address string) error {
	return f(ctx, address)
}

// Checker runs probes against targets.
type Checker struct {
	probes      map[string]Probe
	timeout     time.Duration
	concurrency int
	logger      zerolog.Logger
}

// NewChecker creates a checker with the http and postgres probes registered.
// Each probe is bounded by timeout.
func NewChecker(timeout time.Duration, concurrency int, logger zerolog.Logger) *Checker {
	c := &Checker{
		probes:      make(map[string]Probe),
		timeout:     timeout,
		concurrency: concurrency,
		logger:      logger.With().Str("component", "healthcheck").Logger(),
	}

	c.Register(KindHTTP, NewHTTPProbe(&http.Client{}))
	c.Register(KindPostgres, ProbeFunc(PostgresProbe))

	return c
}

// Register sets the probe used for kind, replacing any existing one.
func (c *Checker) Register(kind string, p Probe) {
	c.probes[strings.ToLower(kind)] = p
}

// Run probes every target concurrently and returns results in target order.
// It never fails itself; failures are reported per result.
func (c *Checker) Run(ctx context.Context, targets []Target) []Result {
	results := make([]Result, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	if c.concurrency > 0 {
		g.SetLimit(c.concurrency)
	}

	for i, target := range targets {
		g.Go(func() error {
			results[i] = c.check(gctx, target)
			return nil
		})
	}

	_ = g.Wait()

	return results
}

func (c *Checker) check(ctx context.Context, target Target) Result {
	res := Result{Target: target}

	probe, ok := c.probes[strings.ToLower(target.Kind)]
	if !ok {
		res.Err = fmt.Errorf("%w: %q", ErrUnknownKind, target.Kind)
		return res
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := probe.Check(ctx, target.Address)
	res.Latency = time.Since(start)

	if err != nil {
		res.Err = err
		c.logger.Warn().
			Err(err).
			Str("target", target.Name).
			Str("kind", target.Kind).
			Dur("latency", res.Latency).
			Msg("target unhealthy")
		return res
	}

	res.Healthy = true
	c.logger.Debug().
		Str("target", target.Name).
		Str("kind", target.Kind).
		Dur("latency", res.Latency).
		Msg("target healthy")

	return res
}

// AllHealthy reports whether every result is healthy.
func AllHealthy(results []Result) bool {
	for _, r := range results {
		if !r.Healthy {
			return false
		}
	}
	return true
}

// httpProbe expects a 2xx response to a GET.
type httpProbe struct {
	client *http.Client
}

// NewHTTPProbe creates a probe that GETs the address and expects a 2xx status.
func NewHTTPProbe(client *http.Client) Probe {
	return &httpProbe{client: client}
}

func (p *httpProbe) Check(ctx context.Context, address string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", address, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return nil
}

// PostgresProbe connects to the DSN and pings the server.
func PostgresProbe(ctx context.Context, dsn string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close(context.Background())

	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping: %w", err)
	}

	return nil
}
