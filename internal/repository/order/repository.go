package order

import (
	"context"

	"biomed-backend/internal/domain"
)

// Repository persists orders. Insert returns domain.ErrAlreadyExists
// when an order for the same session id is already recorded and
// domain.ErrStoreUnavailable when no datastore is configured; callers
// decide whether either is fatal for their flow.
type Repository interface {
	Insert(ctx context.Context, order domain.Order) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
}
