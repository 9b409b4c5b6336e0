package checkout

import (
	"context"
	"errors"
	"testing"

	"biomed-backend/internal/catalog"
	"biomed-backend/internal/gateway/stripe"
	"biomed-backend/internal/pricing"
)

type stubGateway struct {
	session    *stripe.Session
	createErr  error
	lastParams stripe.CreateSessionParams
	lastID     string
}

func (s *stubGateway) CreateSession(_ context.Context, p stripe.CreateSessionParams) (*stripe.Session, error) {
	s.lastParams = p
	return s.session, s.createErr
}

func (s *stubGateway) RetrieveSession(_ context.Context, id string) (*stripe.Session, error) {
	s.lastID = id
	return s.session, s.createErr
}

func newTestService(t *testing.T, gw gateway) *Service {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return New(pricing.NewBuilder(cat, "http://biomedpharmas.com"), gw, "http://biomedpharmas.com", "pkr")
}

func TestCreateSessionSubmitsCatalogPricing(t *testing.T) {
	gw := &stubGateway{session: &stripe.Session{ID: "cs_1", URL: "https://checkout.stripe.com/c/cs_1"}}
	svc := newTestService(t, gw)

	result, err := svc.CreateSession(context.Background(), CreateInput{
		Items: []pricing.CartItem{{ID: "prod-1", Quantity: float64(2)}},
		Customer: pricing.Customer{
			Name:  "Ayesha Khan",
			Email: "ayesha@example.com",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.URL != "https://checkout.stripe.com/c/cs_1" || result.SessionID != "cs_1" {
		t.Fatalf("unexpected result %+v", result)
	}

	p := gw.lastParams
	if p.Currency != "pkr" {
		t.Fatalf("unexpected currency %q", p.Currency)
	}
	if len(p.LineItems) != 1 || p.LineItems[0].UnitAmount != 239000 || p.LineItems[0].Quantity != 2 {
		t.Fatalf("unexpected line items %+v", p.LineItems)
	}
	if p.CustomerEmail != "ayesha@example.com" {
		t.Fatalf("unexpected email %q", p.CustomerEmail)
	}
	if p.Metadata["customer_name"] != "Ayesha Khan" {
		t.Fatalf("unexpected metadata %+v", p.Metadata)
	}
	if p.Metadata["items_schema"] != "v1" || p.Metadata["items"] == "" {
		t.Fatalf("items summary missing from metadata %+v", p.Metadata)
	}
}

func TestCreateSessionDefaultRedirectURLs(t *testing.T) {
	gw := &stubGateway{session: &stripe.Session{ID: "cs_1"}}
	svc := newTestService(t, gw)

	if _, err := svc.CreateSession(context.Background(), CreateInput{
		Items: []pricing.CartItem{{ID: "prod-2", Quantity: float64(1)}},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSuccess := "http://biomedpharmas.com/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	if gw.lastParams.SuccessURL != wantSuccess {
		t.Fatalf("unexpected success url %q", gw.lastParams.SuccessURL)
	}
	if gw.lastParams.CancelURL != "http://biomedpharmas.com/checkout" {
		t.Fatalf("unexpected cancel url %q", gw.lastParams.CancelURL)
	}
}

func TestCreateSessionClientRedirectURLsWin(t *testing.T) {
	gw := &stubGateway{session: &stripe.Session{ID: "cs_1"}}
	svc := newTestService(t, gw)

	if _, err := svc.CreateSession(context.Background(), CreateInput{
		Items:      []pricing.CartItem{{ID: "prod-2", Quantity: float64(1)}},
		SuccessURL: "https://shop.example.com/done",
		CancelURL:  "https://shop.example.com/cart",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gw.lastParams.SuccessURL != "https://shop.example.com/done" {
		t.Fatalf("unexpected success url %q", gw.lastParams.SuccessURL)
	}
	if gw.lastParams.CancelURL != "https://shop.example.com/cart" {
		t.Fatalf("unexpected cancel url %q", gw.lastParams.CancelURL)
	}
}

func TestCreateSessionEmptyCart(t *testing.T) {
	svc := newTestService(t, &stubGateway{})

	_, err := svc.CreateSession(context.Background(), CreateInput{})
	if !errors.Is(err, pricing.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCreateSessionGatewayErrorPassesThrough(t *testing.T) {
	gwErr := &stripe.Error{StatusCode: 400, Message: "Invalid currency: xxx"}
	svc := newTestService(t, &stubGateway{createErr: gwErr})

	_, err := svc.CreateSession(context.Background(), CreateInput{
		Items: []pricing.CartItem{{ID: "prod-1", Quantity: float64(1)}},
	})
	if !errors.Is(err, gwErr) {
		t.Fatalf("expected gateway error, got %v", err)
	}
}

func TestGetSessionDelegates(t *testing.T) {
	gw := &stubGateway{session: &stripe.Session{ID: "cs_9", PaymentStatus: "paid"}}
	svc := newTestService(t, gw)

	session, err := svc.GetSession(context.Background(), "cs_9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.ID != "cs_9" || gw.lastID != "cs_9" {
		t.Fatalf("unexpected session %+v (lastID %q)", session, gw.lastID)
	}
}
