package checkout

import (
	"context"
	"strings"

	"biomed-backend/internal/gateway/stripe"
	"biomed-backend/internal/pricing"
)

type gateway interface {
	CreateSession(ctx context.Context, p stripe.CreateSessionParams) (*stripe.Session, error)
	RetrieveSession(ctx context.Context, id string) (*stripe.Session, error)
}

// Service creates and looks up hosted payment sessions.
type Service struct {
	builder     *pricing.Builder
	gateway     gateway
	frontendURL string
	currency    string
}

func New(builder *pricing.Builder, gw gateway, frontendURL, currency string) *Service {
	return &Service{
		builder:     builder,
		gateway:     gw,
		frontendURL: frontendURL,
		currency:    currency,
	}
}

// CreateInput is the checkout request payload.
type CreateInput struct {
	Items      []pricing.CartItem `json:"items"`
	SuccessURL string             `json:"successUrl"`
	CancelURL  string             `json:"cancelUrl"`
	Customer   pricing.Customer   `json:"customer"`
}

// CreateResult identifies the hosted session the client is redirected to.
type CreateResult struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

// CreateSession prices the cart, serializes the metadata summary and
// submits the session to the gateway. Pricing failures surface as
// validation errors; provider rejections pass through unmodified.
func (s *Service) CreateSession(ctx context.Context, in CreateInput) (*CreateResult, error) {
	lineItems, summaries, err := s.builder.BuildLineItems(in.Items)
	if err != nil {
		return nil, err
	}
	metadata, err := pricing.SessionMetadata(in.Customer, summaries)
	if err != nil {
		return nil, err
	}

	successURL := strings.TrimSpace(in.SuccessURL)
	if successURL == "" {
		successURL = s.frontendURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	}
	cancelURL := strings.TrimSpace(in.CancelURL)
	if cancelURL == "" {
		cancelURL = s.frontendURL + "/checkout"
	}

	session, err := s.gateway.CreateSession(ctx, stripe.CreateSessionParams{
		Currency:      s.currency,
		LineItems:     lineItems,
		CustomerEmail: strings.TrimSpace(in.Customer.Email),
		Metadata:      metadata,
		SuccessURL:    successURL,
		CancelURL:     cancelURL,
	})
	if err != nil {
		return nil, err
	}
	return &CreateResult{URL: session.URL, SessionID: session.ID}, nil
}

// GetSession retrieves a session for the success page. Lookup failures
// are provider-authoritative and surface to the caller.
func (s *Service) GetSession(ctx context.Context, id string) (*stripe.Session, error) {
	return s.gateway.RetrieveSession(ctx, id)
}
