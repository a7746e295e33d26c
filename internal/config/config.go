package config

// Config holds user settings (in-memory representation). These are the
// defaults merged into calculation requests that omit a field; persistence
// is handled by the internal/db package.
type Config struct {
	Category        string  `json:"category"`
	FulfillmentMode string  `json:"fulfillment_mode"` // platform | seller
	Season          string  `json:"season"`           // standard | peak
	StorageMonths   float64 `json:"storage_months"`

	// Cost model selection for prep and additional services:
	// none | per_item | per_pound.
	PrepCostModel       string `json:"prep_cost_model"`
	AdditionalCostModel string `json:"additional_cost_model"`

	// SchedulePath points at a schedule JSON file; empty means use the last
	// stored schedule, falling back to the embedded default.
	SchedulePath string `json:"schedule_path"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Category:            "everything_else",
		FulfillmentMode:     "platform",
		Season:              "standard",
		StorageMonths:       1,
		PrepCostModel:       "none",
		AdditionalCostModel: "none",
	}
}
