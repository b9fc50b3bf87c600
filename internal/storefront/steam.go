package storefront

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"dealbot/internal/model"
)

// Steam API endpoints.
const (
	steamSpecialsURL   = "https://store.steampowered.com/api/featuredcategories"
	steamAppDetailsURL = "https://store.steampowered.com/api/appdetails?appids=%s&l=en"
	steamAppReviewsURL = "https://store.steampowered.com/appreviews/%s?json=1&language=all&purchase_type=all"
)

// Steam fetches current specials from the Steam storefront API.
type Steam struct {
	client HTTPClient
	log    *slog.Logger
}

// NewSteam creates a Steam client with the given HTTP client.
func NewSteam(client HTTPClient, log *slog.Logger) *Steam {
	return &Steam{client: client, log: log}
}

// Name returns the store name used in deal keys and messages.
func (s *Steam) Name() string { return "Steam" }

type steamFeaturedResponse struct {
	Specials struct {
		Items []steamSpecialItem `json:"items"`
	} `json:"specials"`
}

type steamSpecialItem struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DiscountPercent int    `json:"discount_percent"`
	OriginalPrice   int64  `json:"original_price"`
	FinalPrice      int64  `json:"final_price"`
	Currency        string `json:"currency"`
}

// FetchDeals returns the current Steam specials normalized into deals.
// Prices arrive from the API in cents.
func (s *Steam) FetchDeals(ctx context.Context) ([]model.Deal, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var resp steamFeaturedResponse
	if err := getJSON(ctx, s.client, steamSpecialsURL, &resp); err != nil {
		return nil, fmt.Errorf("fetch steam specials: %w", err)
	}

	deals := make([]model.Deal, 0, len(resp.Specials.Items))
	for _, item := range resp.Specials.Items {
		currency := item.Currency
		if currency == "" {
			currency = "USD"
		}
		deals = append(deals, model.Deal{
			Store:           s.Name(),
			ID:              strconv.FormatInt(item.ID, 10),
			Title:           item.Name,
			OriginalPrice:   float64(item.OriginalPrice) / 100,
			FinalPrice:      float64(item.FinalPrice) / 100,
			DiscountPercent: item.DiscountPercent,
			Currency:        currency,
			URL:             fmt.Sprintf("https://store.steampowered.com/app/%d", item.ID),
		})
	}
	return deals, nil
}

type steamAppDetailsResponse map[string]struct {
	Data struct {
		ShortDescription string `json:"short_description"`
	} `json:"data"`
}

type steamAppReviewsResponse struct {
	QuerySummary struct {
		ReviewScoreDesc string `json:"review_score_desc"`
	} `json:"query_summary"`
}

// Enrich fills in the deal's description and review rating from the
// appdetails and appreviews endpoints. Each lookup degrades independently:
// a failure is logged and leaves the field at its fallback value.
func (s *Steam) Enrich(ctx context.Context, deal model.Deal) model.Deal {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	deal.Rating = "Unknown"

	var details steamAppDetailsResponse
	if err := getJSON(ctx, s.client, fmt.Sprintf(steamAppDetailsURL, deal.ID), &details); err != nil {
		s.log.Error("fetch app details", "app_id", deal.ID, "error", err)
	} else if entry, ok := details[deal.ID]; ok {
		deal.Description = entry.Data.ShortDescription
	}

	var reviews steamAppReviewsResponse
	if err := getJSON(ctx, s.client, fmt.Sprintf(steamAppReviewsURL, deal.ID), &reviews); err != nil {
		s.log.Error("fetch app reviews", "app_id", deal.ID, "error", err)
	} else if reviews.QuerySummary.ReviewScoreDesc != "" {
		deal.Rating = reviews.QuerySummary.ReviewScoreDesc
	}

	return deal
}
