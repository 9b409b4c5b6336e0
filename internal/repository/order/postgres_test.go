package order

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"biomed-backend/internal/domain"
	"biomed-backend/internal/migrate"
)

// connectTestDB connects to the database named by TEST_DB_DSN and
// applies migrations. Tests using it are skipped when the variable is
// unset so the suite runs without a database by default.
func connectTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := pool.Exec(ctx, "TRUNCATE orders"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}

func testOrder(sessionID string) domain.Order {
	return domain.Order{
		SessionID:     sessionID,
		CustomerEmail: "buyer@example.com",
		CustomerName:  "Ayesha Khan",
		CustomerPhone: "+92 300 1234567",
		Address:       "House 12, Street 4",
		City:          "Lahore",
		AmountTotal:   478000,
		Currency:      "pkr",
		Items: []domain.OrderItem{
			{ID: "prod-1", Name: "Magioo Magnesium Glycinate (1000mg)", Quantity: 2, Price: 2390},
		},
		Status: domain.OrderPaid,
	}
}

func TestPostgresInsertAndList(t *testing.T) {
	pool := connectTestDB(t)
	repo := NewPostgres(pool, log.New(io.Discard, "", 0))
	ctx := context.Background()

	first, err := repo.Insert(ctx, testOrder("cs_it_1"))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if first.ID == "" || first.CreatedAt.IsZero() {
		t.Fatalf("expected generated id and timestamp, got %+v", first)
	}

	time.Sleep(5 * time.Millisecond)
	second := testOrder("cod_it_2")
	second.Status = domain.OrderCOD
	if _, err := repo.Insert(ctx, second); err != nil {
		t.Fatalf("insert second: %v", err)
	}

	orders, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	// Newest first.
	if orders[0].SessionID != "cod_it_2" || orders[1].SessionID != "cs_it_1" {
		t.Fatalf("unexpected ordering %q, %q", orders[0].SessionID, orders[1].SessionID)
	}
	if len(orders[1].Items) != 1 || orders[1].Items[0].Price != 2390 {
		t.Fatalf("items did not round-trip: %+v", orders[1].Items)
	}
}

func TestPostgresDuplicateSessionID(t *testing.T) {
	pool := connectTestDB(t)
	repo := NewPostgres(pool, log.New(io.Discard, "", 0))
	ctx := context.Background()

	if _, err := repo.Insert(ctx, testOrder("cs_dup_1")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, err := repo.Insert(ctx, testOrder("cs_dup_1"))
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestDisabledRepository(t *testing.T) {
	repo := NewDisabled()
	ctx := context.Background()

	if _, err := repo.Insert(ctx, testOrder("cs_1")); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	orders, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected empty listing, got %+v", orders)
	}
}
