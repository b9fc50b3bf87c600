// Package model defines the domain types used across the application.
package model

// Deal represents a discounted or free game listing from a storefront.
// Prices are in the store's currency units, not cents.
type Deal struct {
	Store           string
	ID              string
	Title           string
	OriginalPrice   float64
	FinalPrice      float64
	DiscountPercent int
	Currency        string
	Description     string
	Rating          string
	URL             string
}

// Key returns the dedup cache key for the deal.
func (d Deal) Key() string {
	return d.Store + "/" + d.ID
}

// Free reports whether the deal costs nothing.
func (d Deal) Free() bool {
	return d.FinalPrice == 0
}
