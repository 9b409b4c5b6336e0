package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biomed-backend/internal/catalog"
)

func testBuilder(t *testing.T) *Builder {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return NewBuilder(cat, "http://biomedpharmas.com")
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestBuildLineItemsKnownIDUsesCatalogPrice(t *testing.T) {
	b := testBuilder(t)

	// Client-supplied price and name must be ignored for known ids.
	lineItems, summaries, err := b.BuildLineItems([]CartItem{
		{ID: "prod-1", Name: "tampered", Price: floatPtr(1), DiscountedPrice: floatPtr(1), Quantity: float64(2)},
	})
	require.NoError(t, err)
	require.Len(t, lineItems, 1)

	assert.Equal(t, "Magioo Magnesium Glycinate (1000mg)", lineItems[0].Name)
	assert.Equal(t, int64(239000), lineItems[0].UnitAmount)
	assert.Equal(t, 2, lineItems[0].Quantity)

	require.Len(t, summaries, 1)
	assert.Equal(t, 2390.0, summaries[0].Price)
	assert.Equal(t, int64(478000), Total(summaries))
}

func TestBuildLineItemsUnknownIDFallsBackToClientValues(t *testing.T) {
	b := testBuilder(t)

	lineItems, summaries, err := b.BuildLineItems([]CartItem{
		{ID: "x", Name: "Custom", Price: floatPtr(10), Quantity: float64(3)},
	})
	require.NoError(t, err)
	require.Len(t, lineItems, 1)

	assert.Equal(t, "Custom", lineItems[0].Name)
	assert.Equal(t, int64(1000), lineItems[0].UnitAmount)
	assert.Equal(t, 3, lineItems[0].Quantity)
	assert.Equal(t, int64(3000), Total(summaries))
}

func TestBuildLineItemsPrefersDiscountedPrice(t *testing.T) {
	b := testBuilder(t)

	_, summaries, err := b.BuildLineItems([]CartItem{
		{ID: "y", Name: "Thing", Price: floatPtr(20), DiscountedPrice: floatPtr(15), Quantity: float64(1)},
	})
	require.NoError(t, err)
	assert.Equal(t, 15.0, summaries[0].Price)
}

func TestBuildLineItemsEmptyCart(t *testing.T) {
	b := testBuilder(t)

	_, _, err := b.BuildLineItems(nil)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, _, err = b.BuildLineItems([]CartItem{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCoerceQuantityClampsMalformedValues(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
	}{
		{"nil", nil, 1},
		{"zero", float64(0), 1},
		{"negative", float64(-2), 1},
		{"fractional", float64(2.7), 2},
		{"numeric string", "4", 4},
		{"padded string", " 5 ", 5},
		{"garbage string", "abc", 1},
		{"negative string", "-3", 1},
		{"bool", true, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, coerceQuantity(tc.in))
		})
	}
}

func TestMinorUnitsRounding(t *testing.T) {
	assert.Equal(t, int64(239000), MinorUnits(2390))
	assert.Equal(t, int64(1000), MinorUnits(10))
	assert.Equal(t, int64(1234), MinorUnits(12.34))
	assert.Equal(t, int64(9999), MinorUnits(99.99))
	assert.Equal(t, int64(0), MinorUnits(0))
}

func TestTotalMatchesPaidPathRounding(t *testing.T) {
	// COD totals and paid-path unit amounts share one rounding rule.
	summaries := []ItemSummary{
		{ID: "a", Price: 12.345, Quantity: 2},
		{ID: "b", Price: 0.5, Quantity: 1},
	}
	assert.Equal(t, int64(2519), Total(summaries))
}

func TestResolveImageURL(t *testing.T) {
	assert.Equal(t,
		"http://biomedpharmas.com/assets/new-products/product-1.jpeg",
		resolveImageURL("http://biomedpharmas.com", "/assets/new-products/product-1.jpeg"),
	)
	assert.Equal(t,
		"https://cdn.example.com/p.jpeg",
		resolveImageURL("http://biomedpharmas.com", "https://cdn.example.com/p.jpeg"),
	)
	assert.Equal(t, "", resolveImageURL("http://biomedpharmas.com", ""))
}
