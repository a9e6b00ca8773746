package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cart-offer/internal/cache"
	"cart-offer/internal/database"
	"cart-offer/internal/handler"
	"cart-offer/internal/repository"
	"cart-offer/internal/router"
	"cart-offer/internal/segment"
	"cart-offer/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const basePath = "/api/v1"

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, connection pool and schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// StartSegmentMock serves the built-in segment directory over HTTP and
// returns the base URL of its API.
func StartSegmentMock(t *testing.T) string {
	t.Helper()

	logger := zerolog.Nop()
	resolver := segment.NewDirectoryResolver(segment.DefaultDirectory())
	segmentHandler := handler.NewSegmentHandler(service.NewSegmentService(resolver, logger), logger)

	server := httptest.NewServer(router.NewSegmentMock(segmentHandler, router.Options{
		BasePath:    basePath,
		ServiceName: "segment-mock-test",
	}, logger))
	t.Cleanup(server.Close)

	return server.URL + basePath
}

// NewAPIServer wires the cart offer API over repo, resolving segments through
// the HTTP client against segmentURL.
func NewAPIServer(t *testing.T, repo repository.OfferRepository, segmentURL string) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	resolver := segment.NewCachedResolver(
		segment.NewHTTPResolver(segmentURL, 2*time.Second, logger),
		cache.NewInMemoryCache(),
		time.Minute,
		logger,
	)

	offerHandler := handler.NewOfferHandler(service.NewOfferService(repo, logger), logger)
	cartHandler := handler.NewCartHandler(service.NewCartService(repo, resolver, logger), logger)

	return router.New(offerHandler, cartHandler, router.Options{
		BasePath:    basePath,
		ServiceName: "cart-offer-test",
	}, logger)
}
