package notify

import (
	"fmt"
	"strings"

	"dealbot/internal/model"
)

// Format renders a deal and its blurb as a chat message.
func Format(deal model.Deal, blurb string) string {
	rating := deal.Rating
	if rating == "" {
		rating = "N/A"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s** on %s - %d%% off\n", deal.Title, deal.Store, deal.DiscountPercent)
	fmt.Fprintf(&b, "Price: %.2f %s\n", deal.FinalPrice, deal.Currency)
	fmt.Fprintf(&b, "Rating: %s\n", rating)
	fmt.Fprintf(&b, "Summary: %s", blurb)
	if deal.URL != "" {
		b.WriteString("\n")
		b.WriteString(deal.URL)
	}
	return b.String()
}
