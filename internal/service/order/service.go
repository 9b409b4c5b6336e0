package order

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"biomed-backend/internal/domain"
	"biomed-backend/internal/gateway/stripe"
	"biomed-backend/internal/pricing"
	orderrepo "biomed-backend/internal/repository/order"
)

// ErrSessionNotPaid is returned when a save is attempted for a session
// the provider does not report as paid.
var ErrSessionNotPaid = errors.New("session not paid")

// MissingFieldsError names the required customer field categories a
// cash-on-delivery submission left empty.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

type sessionRetriever interface {
	RetrieveSession(ctx context.Context, id string) (*stripe.Session, error)
}

const paymentStatusPaid = "paid"

// Service persists orders for both payment paths and serves the admin
// listing.
type Service struct {
	repo     orderrepo.Repository
	gateway  sessionRetriever
	builder  *pricing.Builder
	currency string
	logger   *log.Logger
}

func New(repo orderrepo.Repository, gw sessionRetriever, builder *pricing.Builder, currency string, logger *log.Logger) *Service {
	return &Service{
		repo:     repo,
		gateway:  gw,
		builder:  builder,
		currency: currency,
		logger:   logger,
	}
}

// SavePaid records the order behind a paid session. The operation is
// idempotent per session id: a duplicate insert resolves to success
// referencing the existing record. When the durable write cannot happen
// (store unavailable or rejecting) the payment has still succeeded
// upstream, so a synthetic unsaved acknowledgment is returned with
// saved=false instead of an error.
func (s *Service) SavePaid(ctx context.Context, sessionID string) (*domain.Order, bool, error) {
	session, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	if session.PaymentStatus != paymentStatusPaid {
		return nil, false, ErrSessionNotPaid
	}

	items, err := pricing.DecodeItems(session.Metadata)
	if err != nil {
		s.logger.Printf("session %s: decode items metadata: %v", session.ID, err)
		return &domain.Order{SessionID: session.ID}, false, nil
	}
	cust := pricing.CustomerFromMetadata(session.Metadata)
	email := session.CustomerEmail
	if email == "" {
		email = cust.Email
	}
	currency := session.Currency
	if currency == "" {
		currency = s.currency
	}

	saved, err := s.repo.Insert(ctx, domain.Order{
		SessionID:     session.ID,
		CustomerEmail: email,
		CustomerName:  cust.Name,
		CustomerPhone: cust.Phone,
		Address:       cust.Address,
		City:          cust.City,
		PostalCode:    cust.PostalCode,
		DeliveryNotes: cust.DeliveryNotes,
		AmountTotal:   session.AmountTotal,
		Currency:      currency,
		Items:         items,
		Status:        domain.OrderPaid,
	})
	switch {
	case err == nil:
		return saved, true, nil
	case errors.Is(err, domain.ErrAlreadyExists):
		// Already recorded, e.g. a success-page retry. Not an error.
		return &domain.Order{SessionID: session.ID}, true, nil
	case errors.Is(err, domain.ErrStoreUnavailable):
		return &domain.Order{SessionID: session.ID}, false, nil
	default:
		s.logger.Printf("insert paid order %s: %v", session.ID, err)
		return &domain.Order{SessionID: session.ID}, false, nil
	}
}

// PlaceCOD validates and persists a cash-on-delivery order. There is no
// upstream success to fall back on, so store unavailability and insert
// failures surface to the caller.
func (s *Service) PlaceCOD(ctx context.Context, items []pricing.CartItem, cust pricing.Customer) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, pricing.ErrEmptyCart
	}
	cust = cust.Trimmed()
	var missing []string
	if cust.Name == "" {
		missing = append(missing, "name")
	}
	if cust.Email == "" {
		missing = append(missing, "email")
	}
	if cust.Phone == "" {
		missing = append(missing, "phone")
	}
	if cust.Address == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	summaries := make([]pricing.ItemSummary, 0, len(items))
	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		summary := s.builder.Normalize(item)
		summaries = append(summaries, summary)
		orderItems = append(orderItems, domain.OrderItem{
			ID:       summary.ID,
			Name:     summary.Name,
			Quantity: summary.Quantity,
			Price:    summary.Price,
		})
	}

	return s.repo.Insert(ctx, domain.Order{
		SessionID:     "cod_" + uuid.NewString(),
		CustomerEmail: cust.Email,
		CustomerName:  cust.Name,
		CustomerPhone: cust.Phone,
		Address:       cust.Address,
		City:          cust.City,
		PostalCode:    cust.PostalCode,
		DeliveryNotes: cust.DeliveryNotes,
		AmountTotal:   pricing.Total(summaries),
		Currency:      s.currency,
		Items:         orderItems,
		Status:        domain.OrderCOD,
	})
}

// List returns all orders, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}
