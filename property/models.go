package property

import "time"

// ListingType distinguishes sale listings from rentals.
type ListingType string

const (
	ListingSale ListingType = "sale"
	ListingRent ListingType = "rent"
)

// Status is the moderation lifecycle of a listing. Only approved listings are
// eligible for inquiry matching; the lifecycle itself is owned by the
// back-office moderation flow.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Record mirrors the properties table columns read by the inquiry pipeline.
type Record struct {
	ID           string
	Address      string
	City         string
	State        string
	Landmark     *string
	PropertyType string
	ListingType  ListingType
	Status       Status
	Price        int64
	Bedrooms     *int
	Bathrooms    *int
	Area         *float64
	Description  *string
	AgentID      *string
	CreatedAt    time.Time
}

// SearchCriteria is the structured interpretation of a free-text inquiry.
// Every field is independently optional; an empty criteria record is valid
// and matches anything the store returns.
type SearchCriteria struct {
	Location     *string
	PropertyType *string
	ListingType  *ListingType
	MinPrice     *int64
	// MaxPrice is accepted by the query layer but never populated by
	// extraction today. Kept so range queries from other callers work.
	MaxPrice *int64
	Bedrooms *int
}
