package repository

import (
	"testing"

	"pgregory.net/rapid"
)

func TestPriceRangeFilterOrdersBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.IntRange(0, 1_000_000).Draw(t, "a")
		b := rapid.IntRange(0, 1_000_000).Draw(t, "b")

		forward := PriceRangeFilter(&a, &b)
		backward := PriceRangeFilter(&b, &a)

		if *forward.PriceLower > *forward.PriceUpper {
			t.Fatalf("lower %d above upper %d", *forward.PriceLower, *forward.PriceUpper)
		}
		if *forward.PriceLower != *backward.PriceLower || *forward.PriceUpper != *backward.PriceUpper {
			t.Fatalf("bounds differ: %d..%d vs %d..%d", *forward.PriceLower, *forward.PriceUpper, *backward.PriceLower, *backward.PriceUpper)
		}
	})
}

func TestPriceRangeFilterSingleBound(t *testing.T) {
	lower := 300
	filter := PriceRangeFilter(&lower, nil)
	if filter.PriceLower == nil || *filter.PriceLower != 300 || filter.PriceUpper != nil {
		t.Fatalf("unexpected single bound filter: %+v", filter)
	}
}

func TestBrandNamesFilterNormalizes(t *testing.T) {
	filter := BrandNamesFilter([]string{" Apple", "", "SAMSUNG "})
	if len(filter.BrandNames) != 2 || filter.BrandNames[0] != "apple" || filter.BrandNames[1] != "samsung" {
		t.Fatalf("unexpected brand names: %+v", filter.BrandNames)
	}
}
