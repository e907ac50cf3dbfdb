package inquiry

import (
	"regexp"
	"strconv"
	"strings"

	"inquiryflow/property"
)

// Recognized locality keywords. Matching is longest-keyword-first so compound
// names ("lagos island") win over their prefixes ("lagos") regardless of
// list order.
var locationKeywords = []string{
	"lagos", "lagos island", "lekki", "ikeja", "ikoyi", "victoria island",
	"banana island", "ajah", "yaba", "surulere", "gbagada", "magodo",
	"maryland", "festac", "epe", "badagry",
	"abuja", "gwarinpa", "maitama", "asokoro", "wuse", "garki", "lugbe",
	"port harcourt", "ibadan", "kano", "kaduna", "enugu", "owerri", "uyo",
	"calabar", "warri", "benin city", "jos", "abeokuta", "onitsha", "asaba",
}

var propertyTypeKeywords = []string{
	"land", "house", "apartment", "duplex", "bungalow", "flat", "office",
	"shop", "warehouse",
}

// Sale phrases are checked before rent phrases; when both appear, sale wins.
var (
	salePhrases = []string{"for sale", "to buy", "purchase"}
	rentPhrases = []string{"for rent", "to rent", "rental"}
)

var (
	// Longer alternates first: Go regexp alternation is leftmost-first, so
	// "million" must precede "m" or "3million" would scale by the wrong unit.
	priceRe   = regexp.MustCompile(`(\d+)\s*(million|thousand|k|m)\b`)
	bedroomRe = regexp.MustCompile(`(\d+)\s*(bedroom|bed)`)
)

// Extract parses a free-text transcription into search criteria. It is pure
// and total: absence of a signal for any field simply leaves it unset, and an
// empty criteria record is a legitimate, common result.
func Extract(transcription string) property.SearchCriteria {
	text := strings.ToLower(transcription)

	var criteria property.SearchCriteria

	if loc, ok := matchKeyword(text, locationKeywords); ok {
		criteria.Location = &loc
	}
	if pt, ok := matchKeyword(text, propertyTypeKeywords); ok {
		criteria.PropertyType = &pt
	}

	switch {
	case containsAny(text, salePhrases):
		lt := property.ListingSale
		criteria.ListingType = &lt
	case containsAny(text, rentPhrases):
		lt := property.ListingRent
		criteria.ListingType = &lt
	}

	if m := priceRe.FindStringSubmatch(text); m != nil {
		if amount, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			switch m[2] {
			case "k", "thousand":
				amount *= 1_000
			case "m", "million":
				amount *= 1_000_000
			}
			criteria.MinPrice = &amount
		}
	}

	if m := bedroomRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			criteria.Bedrooms = &n
		}
	}

	return criteria
}

// matchKeyword returns the longest keyword appearing as a substring of text.
// Ties on length are broken by the earliest occurrence, then by list order.
func matchKeyword(text string, keywords []string) (string, bool) {
	best := ""
	bestIdx := -1
	for _, kw := range keywords {
		idx := strings.Index(text, kw)
		if idx < 0 {
			continue
		}
		if len(kw) > len(best) || (len(kw) == len(best) && idx < bestIdx) {
			best = kw
			bestIdx = idx
		}
	}
	return best, best != ""
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
