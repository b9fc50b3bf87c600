package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"dealbot/internal/model"
)

func TestEligible(t *testing.T) {
	tests := []struct {
		name string
		deal model.Deal
		want bool
	}{
		{
			name: "free deal always qualifies",
			deal: model.Deal{Store: "Steam", ID: "S1", FinalPrice: 0, DiscountPercent: 100},
			want: true,
		},
		{
			name: "free deal qualifies even with low discount percent",
			deal: model.Deal{Store: "Epic", ID: "E9", FinalPrice: 0, DiscountPercent: 10},
			want: true,
		},
		{
			name: "half off qualifies",
			deal: model.Deal{Store: "Steam", ID: "S2", OriginalPrice: 40, FinalPrice: 20, DiscountPercent: 50},
			want: true,
		},
		{
			name: "deep discount qualifies",
			deal: model.Deal{Store: "Steam", ID: "S3", OriginalPrice: 60, FinalPrice: 6, DiscountPercent: 90},
			want: true,
		},
		{
			name: "shallow discount does not qualify",
			deal: model.Deal{Store: "Epic", ID: "E1", OriginalPrice: 20, FinalPrice: 12, DiscountPercent: 40},
			want: false,
		},
		{
			name: "full price does not qualify",
			deal: model.Deal{Store: "Epic", ID: "E2", OriginalPrice: 30, FinalPrice: 30, DiscountPercent: 0},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Eligible(tt.deal); got != tt.want {
				t.Errorf("Eligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	deals := []model.Deal{
		{Store: "Steam", ID: "S1", Title: "Free Game", FinalPrice: 0, DiscountPercent: 100},
		{Store: "Epic", ID: "E1", Title: "Shallow", OriginalPrice: 20, FinalPrice: 12, DiscountPercent: 40},
		{Store: "Steam", ID: "S2", Title: "Half Off", OriginalPrice: 40, FinalPrice: 20, DiscountPercent: 50},
	}

	got := Apply(deals)

	var gotTitles []string
	for _, d := range got {
		gotTitles = append(gotTitles, d.Title)
	}
	wantTitles := []string{"Free Game", "Half Off"}
	if diff := cmp.Diff(wantTitles, gotTitles); diff != "" {
		t.Errorf("titles mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEmpty(t *testing.T) {
	if got := Apply(nil); len(got) != 0 {
		t.Errorf("expected no deals, got %d", len(got))
	}
}
