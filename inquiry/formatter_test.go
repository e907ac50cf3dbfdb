package inquiry

import (
	"fmt"
	"strings"
	"testing"

	"inquiryflow/property"
)

func TestFormat_NoResults(t *testing.T) {
	dup := "duplex"
	abuja := "abuja"
	sale := property.ListingSale
	criteria := property.SearchCriteria{
		Location:     &abuja,
		PropertyType: &dup,
		ListingType:  &sale,
	}

	out := Format(criteria, nil)

	if !strings.Contains(out, "duplex in abuja for sale") {
		t.Fatalf("expected criteria restatement, got:\n%s", out)
	}
	if !strings.HasSuffix(out, "?") {
		t.Fatalf("no-results message must end with a question, got:\n%s", out)
	}
	if strings.Contains(out, "\u20a6") {
		t.Fatalf("no-results message must not mention a price, got:\n%s", out)
	}
}

func TestFormat_NoResultsWithoutCriteria(t *testing.T) {
	out := Format(property.SearchCriteria{}, nil)
	if !strings.Contains(out, "any property") {
		t.Fatalf("expected generic noun for empty criteria, got:\n%s", out)
	}
}

func TestFormat_HeadlineCountMatchesResults(t *testing.T) {
	apt := "apartment"
	lagos := "lagos"
	rent := property.ListingRent
	criteria := property.SearchCriteria{
		Location:     &lagos,
		PropertyType: &apt,
		ListingType:  &rent,
	}

	results := []property.Record{
		rentalApartment("1", 1_500_000),
		rentalApartment("2", 2_000_000),
		rentalApartment("3", 2_500_000),
	}

	out := Format(criteria, results)

	if !strings.Contains(out, fmt.Sprintf("I found %d apartments in lagos for rent", len(results))) {
		t.Fatalf("headline count mismatch:\n%s", out)
	}
	for i := range results {
		if !strings.Contains(out, fmt.Sprintf("%d. APARTMENT FOR RENT", i+1)) {
			t.Fatalf("missing block %d:\n%s", i+1, out)
		}
	}
}

func TestFormat_SingleResultStaysSingular(t *testing.T) {
	apt := "apartment"
	criteria := property.SearchCriteria{PropertyType: &apt}

	out := Format(criteria, []property.Record{rentalApartment("1", 1_500_000)})
	if !strings.Contains(out, "I found 1 apartment") {
		t.Fatalf("expected singular headline:\n%s", out)
	}
	if strings.Contains(out, "apartments") {
		t.Fatalf("unexpected plural for a single result:\n%s", out)
	}
}

func TestFormat_RentPriceLine(t *testing.T) {
	out := Format(property.SearchCriteria{}, []property.Record{rentalApartment("1", 1_234_567)})
	if !strings.Contains(out, "\u20a61,234,567/year") {
		t.Fatalf("expected rent price line with /year suffix:\n%s", out)
	}
}

func TestFormat_SalePriceHasNoYearSuffix(t *testing.T) {
	rec := rentalApartment("1", 25_000_000)
	rec.ListingType = property.ListingSale
	out := Format(property.SearchCriteria{}, []property.Record{rec})
	if !strings.Contains(out, "\u20a625,000,000\n") {
		t.Fatalf("expected plain sale price:\n%s", out)
	}
	if strings.Contains(out, "/year") {
		t.Fatalf("sale listing must not carry /year:\n%s", out)
	}
}

func TestFormat_AmenitiesAndLandmark(t *testing.T) {
	one := 1
	two := 2
	area := 120.0
	landmark := "Lekki Phase 1 Gate"
	rec := rentalApartment("1", 1_000_000)
	rec.Bedrooms = &one
	rec.Bathrooms = &two
	rec.Area = &area
	rec.Landmark = &landmark

	out := Format(property.SearchCriteria{}, []property.Record{rec})

	if !strings.Contains(out, "1 bedroom 2 bathrooms 120 sqm") {
		t.Fatalf("expected amenities line with singular/plural agreement:\n%s", out)
	}
	if !strings.Contains(out, "Near Lekki Phase 1 Gate") {
		t.Fatalf("expected landmark line:\n%s", out)
	}
}

func TestFormat_DescriptionTruncated(t *testing.T) {
	long := strings.Repeat("a", 150)
	rec := rentalApartment("1", 1_000_000)
	rec.Description = &long

	out := Format(property.SearchCriteria{}, []property.Record{rec})

	want := strings.Repeat("a", 100) + "..."
	if !strings.Contains(out, want) {
		t.Fatalf("expected truncated description")
	}
	if strings.Contains(out, strings.Repeat("a", 101)) {
		t.Fatalf("description exceeded the truncation limit")
	}
}

func TestPluralize(t *testing.T) {
	cases := map[string]string{
		"apartment": "apartments",
		"duplex":    "duplexs",
		"property":  "properties",
		"house":     "houses",
	}
	for noun, want := range cases {
		if got := pluralize(noun); got != want {
			t.Errorf("pluralize(%q) = %q, want %q", noun, got, want)
		}
	}
}

func TestGroupThousands(t *testing.T) {
	cases := map[int64]string{
		0:          "0",
		999:        "999",
		1_000:      "1,000",
		1_234_567:  "1,234,567",
		50_000_000: "50,000,000",
	}
	for n, want := range cases {
		if got := groupThousands(n); got != want {
			t.Errorf("groupThousands(%d) = %q, want %q", n, got, want)
		}
	}
}

func rentalApartment(id string, price int64) property.Record {
	three := 3
	return property.Record{
		ID:           id,
		Address:      "12 Admiralty Way",
		City:         "Lekki",
		State:        "Lagos",
		PropertyType: "apartment",
		ListingType:  property.ListingRent,
		Status:       property.StatusApproved,
		Price:        price,
		Bedrooms:     &three,
	}
}
