// Package filter implements the deal eligibility rules.
package filter

import (
	"github.com/samber/lo"

	"dealbot/internal/model"
)

// MinDiscountPercent is the discount a deal needs to qualify for
// announcement. Free deals always qualify.
const MinDiscountPercent = 50

// Eligible reports whether a single deal qualifies for announcement.
func Eligible(d model.Deal) bool {
	return d.DiscountPercent >= MinDiscountPercent || d.Free()
}

// Apply returns the subset of deals that qualify for announcement,
// preserving order.
func Apply(deals []model.Deal) []model.Deal {
	return lo.Filter(deals, func(d model.Deal, _ int) bool {
		return Eligible(d)
	})
}
