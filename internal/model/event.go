package model

// Artist is a lineup entry. Rank 1 is the headliner; support acts carry
// higher ranks. Ranks are preserved from the source that reported them.
type Artist struct {
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

// PricingTier is a named ticket tier. Price is kept as a string because
// sources report currency symbols, ranges, and fee suffixes inconsistently.
type PricingTier struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// VIPInfo describes premium ticketing, if the event offers it.
type VIPInfo struct {
	Enabled  bool          `json:"enabled"`
	Tiers    []PricingTier `json:"tiers"`
	Included []string      `json:"included"`
}

// ExtractedEventData is the structured event record built from one URL, or
// merged from several. Zero value means nothing was extracted.
type ExtractedEventData struct {
	Description  string        `json:"description,omitempty"`
	Venue        string        `json:"venue,omitempty"`
	Lineup       []Artist      `json:"lineup"`
	PricingTiers []PricingTier `json:"pricing_tiers"`
	VIP          VIPInfo       `json:"vip_info"`
	SourceURL    string        `json:"source_url,omitempty"`
}

// HasData reports whether any field holds extracted content.
func (e ExtractedEventData) HasData() bool {
	return e.Description != "" ||
		e.Venue != "" ||
		len(e.Lineup) > 0 ||
		len(e.PricingTiers) > 0 ||
		e.VIP.Enabled
}
