package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict, e.g. an order
	// row already persisted for the same session id.
	ErrAlreadyExists = errors.New("already exists")
	// ErrStoreUnavailable indicates the datastore is not configured.
	ErrStoreUnavailable = errors.New("order store unavailable")
)
