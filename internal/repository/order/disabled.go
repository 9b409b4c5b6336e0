package order

import (
	"context"

	"biomed-backend/internal/domain"
)

// disabledRepo stands in when no datastore is configured, so call
// sites never need a presence check. Inserts report unavailability;
// listing yields an empty result, matching the admin view of a
// storeless deployment.
type disabledRepo struct{}

func NewDisabled() Repository {
	return disabledRepo{}
}

func (disabledRepo) Insert(context.Context, domain.Order) (*domain.Order, error) {
	return nil, domain.ErrStoreUnavailable
}

func (disabledRepo) List(context.Context) ([]domain.Order, error) {
	return []domain.Order{}, nil
}
