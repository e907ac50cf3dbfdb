package inquiry

import (
	"reflect"
	"testing"

	"inquiryflow/property"
)

func TestExtract_FullInquiry(t *testing.T) {
	criteria := Extract("I want a 3 bedroom apartment for rent in Lagos")

	if criteria.Location == nil || *criteria.Location != "lagos" {
		t.Fatalf("expected location lagos, got %v", deref(criteria.Location))
	}
	if criteria.PropertyType == nil || *criteria.PropertyType != "apartment" {
		t.Fatalf("expected property type apartment, got %v", deref(criteria.PropertyType))
	}
	if criteria.ListingType == nil || *criteria.ListingType != property.ListingRent {
		t.Fatalf("expected listing type rent, got %v", criteria.ListingType)
	}
	if criteria.Bedrooms == nil || *criteria.Bedrooms != 3 {
		t.Fatalf("expected 3 bedrooms, got %v", criteria.Bedrooms)
	}
	if criteria.MinPrice != nil {
		t.Fatalf("expected no price, got %d", *criteria.MinPrice)
	}
}

func TestExtract_PriceSuffixes(t *testing.T) {
	cases := []struct {
		text string
		want int64
	}{
		{"Looking for land for sale in Abuja under 50m", 50_000_000},
		{"anything around 500k would work", 500_000},
		{"my budget is 3million", 3_000_000},
		{"up to 250 thousand", 250_000},
	}

	for _, tc := range cases {
		criteria := Extract(tc.text)
		if criteria.MinPrice == nil {
			t.Fatalf("%q: expected a price, got none", tc.text)
		}
		if *criteria.MinPrice != tc.want {
			t.Errorf("%q: expected %d, got %d", tc.text, tc.want, *criteria.MinPrice)
		}
		if criteria.MaxPrice != nil {
			t.Errorf("%q: extraction must never set MaxPrice", tc.text)
		}
	}
}

func TestExtract_SaleAndAbujaLand(t *testing.T) {
	criteria := Extract("Looking for land for sale in Abuja under 50m")

	if criteria.Location == nil || *criteria.Location != "abuja" {
		t.Fatalf("expected location abuja, got %v", deref(criteria.Location))
	}
	if criteria.PropertyType == nil || *criteria.PropertyType != "land" {
		t.Fatalf("expected property type land, got %v", deref(criteria.PropertyType))
	}
	if criteria.ListingType == nil || *criteria.ListingType != property.ListingSale {
		t.Fatalf("expected listing type sale, got %v", criteria.ListingType)
	}
}

func TestExtract_SaleWinsOverRent(t *testing.T) {
	criteria := Extract("is this flat for sale or for rent?")
	if criteria.ListingType == nil || *criteria.ListingType != property.ListingSale {
		t.Fatalf("expected sale to win when both phrases appear, got %v", criteria.ListingType)
	}
}

func TestExtract_LongestLocationWins(t *testing.T) {
	criteria := Extract("show me houses in lagos island please")
	if criteria.Location == nil || *criteria.Location != "lagos island" {
		t.Fatalf("expected compound locality to beat its prefix, got %v", deref(criteria.Location))
	}

	criteria = Extract("a shop on victoria island for rent")
	if criteria.Location == nil || *criteria.Location != "victoria island" {
		t.Fatalf("expected victoria island, got %v", deref(criteria.Location))
	}
}

func TestExtract_FirstPriceTokenOnly(t *testing.T) {
	criteria := Extract("between 500k and 2m in lekki")
	if criteria.MinPrice == nil || *criteria.MinPrice != 500_000 {
		t.Fatalf("expected first price token to win, got %v", criteria.MinPrice)
	}
}

func TestExtract_EmptySignalIsValid(t *testing.T) {
	criteria := Extract("hello, can you help me?")
	if !reflect.DeepEqual(criteria, property.SearchCriteria{}) {
		t.Fatalf("expected empty criteria, got %+v", criteria)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	const text = "I want a 2 bed duplex for rent in ikoyi around 10m"
	first := Extract(text)
	second := Extract(text)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("extraction is not idempotent: %+v vs %+v", first, second)
	}
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
