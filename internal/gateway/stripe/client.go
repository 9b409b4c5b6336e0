package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.stripe.com"

// Client is a thin HTTP client for the Stripe Checkout Sessions API.
// It covers only the two calls the checkout flow needs; failures are
// never retried here since payment state is provider-authoritative.
type Client struct {
	key     string
	baseURL string
	httpc   *http.Client
}

// New creates a Client authenticated with the given secret key.
func New(key string) *Client {
	return &Client{
		key:     key,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// LineItem is one priced, quantified entry submitted to the gateway.
// UnitAmount is in the currency's minor unit.
type LineItem struct {
	Name       string
	ImageURL   string
	UnitAmount int64
	Quantity   int
}

// CreateSessionParams describes one hosted checkout session.
type CreateSessionParams struct {
	Currency      string
	LineItems     []LineItem
	CustomerEmail string
	Metadata      map[string]string
	SuccessURL    string
	CancelURL     string
}

// Session is the provider's view of one checkout attempt.
type Session struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
}

// Error carries a provider rejection. The message is safe to surface to
// the caller; Stripe already scrubs it of sensitive detail.
type Error struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("stripe: request failed with status %d", e.StatusCode)
}

type errorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateSession submits line items and metadata to create a hosted
// payment session and returns its URL and id.
func (c *Client) CreateSession(ctx context.Context, p CreateSessionParams) (*Session, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", p.SuccessURL)
	form.Set("cancel_url", p.CancelURL)
	if p.CustomerEmail != "" {
		form.Set("customer_email", p.CustomerEmail)
	}
	for i, li := range p.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", strings.ToLower(p.Currency))
		form.Set(prefix+"[price_data][product_data][name]", li.Name)
		if li.ImageURL != "" {
			form.Set(prefix+"[price_data][product_data][images][0]", li.ImageURL)
		}
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(li.UnitAmount, 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(li.Quantity))
	}
	for k, v := range p.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", form, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// RetrieveSession fetches a session by id, e.g. to check payment status
// from the success page.
func (c *Client) RetrieveSession(ctx context.Context, id string) (*Session, error) {
	var session Session
	path := "/v1/checkout/sessions/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, out any) error {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("stripe request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope errorEnvelope
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return &Error{
			StatusCode: resp.StatusCode,
			Type:       envelope.Error.Type,
			Code:       envelope.Error.Code,
			Message:    envelope.Error.Message,
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode stripe response: %w", err)
	}
	return nil
}
