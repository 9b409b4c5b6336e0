package pricing

import (
	"encoding/json"
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"biomed-backend/internal/catalog"
	"biomed-backend/internal/gateway/stripe"
)

// ErrEmptyCart is returned when a checkout request carries no items.
var ErrEmptyCart = errors.New("cart items are required")

// CartItem is one raw cart entry as submitted by the client. Price and
// name are fallbacks only: when the id resolves in the catalog the
// catalog values are authoritative, which prevents price tampering.
// Quantity is untyped because clients send both numbers and strings.
type CartItem struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price"`
	DiscountedPrice *float64 `json:"discountedPrice"`
	Quantity        any      `json:"quantity"`
	Image           string   `json:"image"`
}

// ItemSummary is one normalized cart entry: resolved name and price in
// major units, quantity clamped to at least 1. It is what gets
// serialized into session metadata and persisted with the order.
type ItemSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Builder turns raw carts into gateway line items and normalized
// summaries, reconciling client values against the catalog.
type Builder struct {
	catalog     *catalog.Catalog
	frontendURL string
}

func NewBuilder(cat *catalog.Catalog, frontendURL string) *Builder {
	return &Builder{catalog: cat, frontendURL: frontendURL}
}

// BuildLineItems prices each cart entry. Known ids take the catalog's
// discounted price and name; unknown ids fall back to client values.
func (b *Builder) BuildLineItems(items []CartItem) ([]stripe.LineItem, []ItemSummary, error) {
	if len(items) == 0 {
		return nil, nil, ErrEmptyCart
	}
	lineItems := make([]stripe.LineItem, 0, len(items))
	summaries := make([]ItemSummary, 0, len(items))
	for _, item := range items {
		summary := b.Normalize(item)
		lineItems = append(lineItems, stripe.LineItem{
			Name:       summary.Name,
			ImageURL:   resolveImageURL(b.frontendURL, item.Image),
			UnitAmount: MinorUnits(summary.Price),
			Quantity:   summary.Quantity,
		})
		summaries = append(summaries, summary)
	}
	return lineItems, summaries, nil
}

// Normalize resolves one cart entry to its authoritative name, price
// and quantity.
func (b *Builder) Normalize(item CartItem) ItemSummary {
	summary := ItemSummary{
		ID:       item.ID,
		Name:     item.Name,
		Quantity: coerceQuantity(item.Quantity),
	}
	if product, ok := b.catalog.Get(item.ID); ok {
		summary.Name = product.Name
		summary.Price = product.DiscountedPrice
		return summary
	}
	switch {
	case item.DiscountedPrice != nil:
		summary.Price = *item.DiscountedPrice
	case item.Price != nil:
		summary.Price = *item.Price
	}
	return summary
}

// MinorUnits converts a major-unit price to the currency's smallest
// unit, rounding half away from zero. Both the paid and the
// cash-on-delivery path use this single rule.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// Total sums price × quantity over normalized items and scales the
// result to minor units.
func Total(items []ItemSummary) int64 {
	var sum float64
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	return MinorUnits(sum)
}

// coerceQuantity parses a client-supplied quantity, clamping malformed
// or non-positive values to 1.
func coerceQuantity(v any) int {
	switch q := v.(type) {
	case float64:
		if n := int(q); n >= 1 {
			return n
		}
	case int:
		if q >= 1 {
			return q
		}
	case json.Number:
		if n, err := strconv.Atoi(string(q)); err == nil && n >= 1 {
			return n
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(q)); err == nil && n >= 1 {
			return n
		}
	}
	return 1
}

// resolveImageURL makes a cart image absolute against the storefront
// origin; the gateway rejects relative image URLs.
func resolveImageURL(frontendURL, image string) string {
	if image == "" {
		return ""
	}
	base, err := url.Parse(frontendURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(image)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
