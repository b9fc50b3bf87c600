package storefront

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"dealbot/internal/model"
)

const epicFreeGamesURL = "https://store-site-backend-static.ak.epicgames.com/freeGamesPromotions?locale=en-US&country=US&allowCountries=US"

// Epic fetches current promotions from the Epic Games storefront API.
type Epic struct {
	client HTTPClient
	log    *slog.Logger
}

// NewEpic creates an Epic client with the given HTTP client.
func NewEpic(client HTTPClient, log *slog.Logger) *Epic {
	return &Epic{client: client, log: log}
}

// Name returns the store name used in deal keys and messages.
func (e *Epic) Name() string { return "Epic" }

type epicResponse struct {
	Data struct {
		Catalog struct {
			SearchStore struct {
				Elements []epicElement `json:"elements"`
			} `json:"searchStore"`
		} `json:"Catalog"`
	} `json:"data"`
}

type epicElement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ProductSlug string `json:"productSlug"`
	Price       struct {
		TotalPrice struct {
			OriginalPrice int64 `json:"originalPrice"`
			// Pointer so an absent field defaults to the original price
			// instead of reading as free.
			DiscountPrice *int64 `json:"discountPrice"`
			CurrencyCode  string `json:"currencyCode"`
		} `json:"totalPrice"`
	} `json:"price"`
}

// FetchDeals returns the current Epic promotions that are free or at
// least half off by price ratio, normalized into deals. Prices arrive
// from the API in cents.
func (e *Epic) FetchDeals(ctx context.Context) ([]model.Deal, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var resp epicResponse
	if err := getJSON(ctx, e.client, epicFreeGamesURL, &resp); err != nil {
		return nil, fmt.Errorf("fetch epic promotions: %w", err)
	}

	elements := resp.Data.Catalog.SearchStore.Elements
	deals := make([]model.Deal, 0, len(elements))
	for _, el := range elements {
		price := el.Price.TotalPrice
		original := price.OriginalPrice
		discounted := original
		if price.DiscountPrice != nil {
			discounted = *price.DiscountPrice
		}

		// The displayed percent below floors fractions, so a 49.x% cut
		// can read as 50; gate on the true price ratio instead.
		if discounted != 0 && (original == 0 || discounted*2 > original) {
			continue
		}

		percent := 100
		if original > 0 {
			percent = int(100 - discounted*100/original)
		}

		currency := price.CurrencyCode
		if currency == "" {
			currency = "USD"
		}

		deals = append(deals, model.Deal{
			Store:           e.Name(),
			ID:              el.ID,
			Title:           el.Title,
			OriginalPrice:   float64(original) / 100,
			FinalPrice:      float64(discounted) / 100,
			DiscountPercent: percent,
			Currency:        currency,
			Description:     el.Description,
			URL:             epicDealURL(el),
		})
	}
	return deals, nil
}

func epicDealURL(el epicElement) string {
	if el.ProductSlug != "" {
		return "https://store.epicgames.com/en-US/p/" + el.ProductSlug
	}
	return "https://store.epicgames.com/en-US/browse?q=" + url.QueryEscape(el.Title)
}
