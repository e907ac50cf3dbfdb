package inquiry

import (
	"fmt"
	"strconv"
	"strings"

	"inquiryflow/property"
)

// LookupUnavailable is sent instead of a listing when the property store
// cannot be queried. The low-level error never reaches the end user.
const LookupUnavailable = "Sorry, I'm having trouble searching our listings right now. Please try again in a few minutes."

const descriptionLimit = 100

// Format renders the reply for an inquiry: either a broadening-guidance
// message when nothing matched, or an enumerated listing of the results.
// Deterministic and pure.
func Format(criteria property.SearchCriteria, results []property.Record) string {
	if len(results) == 0 {
		return formatNoResults(criteria)
	}
	return formatResults(criteria, results)
}

func formatNoResults(criteria property.SearchCriteria) string {
	phrase := criteriaPhrase(criteria, typeNoun(criteria, 1))
	return fmt.Sprintf("Sorry, I couldn't find any %s at the moment.\n\n"+
		"You could try:\n"+
		"- widening the area you're searching in\n"+
		"- adjusting your budget\n"+
		"- considering a different property type\n\n"+
		"Would you like me to search again with different criteria?", phrase)
}

func formatResults(criteria property.SearchCriteria, results []property.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Great news! I found %d %s:\n\n",
		len(results), criteriaPhrase(criteria, typeNoun(criteria, len(results))))

	for i, rec := range results {
		fmt.Fprintf(&b, "%d. %s FOR %s\n", i+1,
			strings.ToUpper(rec.PropertyType), strings.ToUpper(string(rec.ListingType)))
		fmt.Fprintf(&b, "%s, %s, %s\n", rec.Address, rec.City, rec.State)

		price := "\u20a6" + groupThousands(rec.Price)
		if rec.ListingType == property.ListingRent {
			price += "/year"
		}
		b.WriteString(price + "\n")

		if line := amenitiesLine(rec); line != "" {
			b.WriteString(line + "\n")
		}
		if rec.Description != nil {
			b.WriteString(truncate(*rec.Description, descriptionLimit) + "\n")
		}
		if rec.Landmark != nil {
			b.WriteString("Near " + *rec.Landmark + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Reply with the number of any listing you'd like to know more about and I'll connect you with the agent.")
	return b.String()
}

// criteriaPhrase restates the applied criteria as "<noun> in <location> for
// <listing type>", omitting unset parts.
func criteriaPhrase(criteria property.SearchCriteria, noun string) string {
	var b strings.Builder
	b.WriteString(noun)
	if criteria.Location != nil {
		b.WriteString(" in " + *criteria.Location)
	}
	if criteria.ListingType != nil {
		b.WriteString(" for " + string(*criteria.ListingType))
	}
	return b.String()
}

func typeNoun(criteria property.SearchCriteria, count int) string {
	noun := "property"
	if criteria.PropertyType != nil {
		noun = *criteria.PropertyType
	}
	if count != 1 {
		noun = pluralize(noun)
	}
	return noun
}

func pluralize(noun string) string {
	if strings.HasSuffix(noun, "y") {
		return strings.TrimSuffix(noun, "y") + "ies"
	}
	return noun + "s"
}

func amenitiesLine(rec property.Record) string {
	parts := make([]string, 0, 3)
	if rec.Bedrooms != nil {
		parts = append(parts, countNoun(*rec.Bedrooms, "bedroom"))
	}
	if rec.Bathrooms != nil {
		parts = append(parts, countNoun(*rec.Bathrooms, "bathroom"))
	}
	if rec.Area != nil {
		parts = append(parts, strconv.FormatFloat(*rec.Area, 'f', -1, 64)+" sqm")
	}
	return strings.Join(parts, " ")
}

func countNoun(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// groupThousands renders a non-negative amount with comma separators.
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	out := b.String()
	if neg {
		out = "-" + out
	}
	return out
}
