package domain

// Product is a catalog entry. Prices are in major currency units
// (e.g. 2390 PKR); conversion to minor units happens at checkout time.
type Product struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	OriginalPrice   float64 `json:"originalPrice"`
	DiscountedPrice float64 `json:"discountedPrice"`
	Image           string  `json:"image"`
}
