package entity

// ListingSnapshot is the bounded plain-text signal produced from a fetched
// listing page. Immutable once created; it has no identity beyond the URL it
// was derived from and is never persisted.
type ListingSnapshot struct {
	SourceURL string   `json:"source_url"`
	Text      string   `json:"text"`
	Price     *float64 `json:"price,omitempty"`
	Title     string   `json:"title,omitempty"`
}

// HasPrice reports whether a price could be extracted from the page.
func (s ListingSnapshot) HasPrice() bool {
	return s.Price != nil
}
