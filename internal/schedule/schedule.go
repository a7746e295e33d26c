// Package schedule holds the versioned fee-rate tables the calculation engine
// runs against. A Config is loaded once, validated, and never mutated; the
// engine treats it as read-only. Per-lookup misses (unknown category, weight
// past the last bounded tier) fall back to schedule-defined defaults — only
// structural problems are fatal, and only at load time.
package schedule

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed default_schedule.json
var defaultJSON []byte

// Config is an immutable, versioned bundle of marketplace rates.
type Config struct {
	Version string `json:"version"`

	Referral         ReferralTable `json:"referral"`
	FulfillmentTiers []WeightTier  `json:"fulfillment_tiers"`
	Surcharges       Surcharges    `json:"surcharges"`
	Storage          StorageRates  `json:"storage"`
	Inbound          InboundRates  `json:"inbound"`
	Prep             HandlingRates `json:"prep"`
	Additional       HandlingRates `json:"additional"`

	// DimWeightDivisorIn3 converts cubic inches to dimensional pounds.
	DimWeightDivisorIn3 float64 `json:"dim_weight_divisor_in3"`

	// Inbound carriers and the fulfillment program round billable weight
	// independently, each with its own packaging buffer and granularity.
	InboundBufferLb     float64 `json:"inbound_buffer_lb"`
	InboundRoundLb      float64 `json:"inbound_round_lb"`
	FulfillmentBufferLb float64 `json:"fulfillment_buffer_lb"`
	FulfillmentRoundLb  float64 `json:"fulfillment_round_lb"`
}

// ReferralTable maps contract categories to referral-rate fractions.
type ReferralTable struct {
	Rates           map[string]float64 `json:"rates"`
	DefaultCategory string             `json:"default_category"`
}

// WeightTier is one fulfillment-fee bracket. Tiers are ordered ascending by
// MaxWeightLb; a MaxWeightLb of 0 marks the unbounded final tier.
type WeightTier struct {
	MaxWeightLb    float64 `json:"max_weight_lb"`
	BaseFee        float64 `json:"base_fee"`
	OveragePerLb   float64 `json:"overage_per_lb"`
	OverageAboveLb float64 `json:"overage_above_lb"`
}

// Surcharges are fixed add-ons layered on top of the tier result. They are
// additive: a bulky hazmat apparel item pays all three.
type Surcharges struct {
	BulkyFee   float64 `json:"bulky_fee"`
	ApparelFee float64 `json:"apparel_fee"`
	HazmatFee  float64 `json:"hazmat_fee"`
}

// StorageRates are monthly storage rates per cubic foot, by season window.
type StorageRates struct {
	StandardPerCubicFt float64 `json:"standard_per_cubic_ft"`
	PeakPerCubicFt     float64 `json:"peak_per_cubic_ft"`
}

// InboundRates are per-pound inbound shipping rates by fulfillment mode.
// SellerPerLb may legitimately be 0 — sellers can ship by other means — but
// that is this table's decision, not the engine's.
type InboundRates struct {
	PlatformPerLb float64 `json:"platform_per_lb"`
	SellerPerLb   float64 `json:"seller_per_lb"`
}

// HandlingRates price prep or additional services under either cost model.
type HandlingRates struct {
	PerItem float64 `json:"per_item"`
	PerLb   float64 `json:"per_lb"`
}

// ReferralRate returns the referral-rate fraction for a category. Unknown
// categories resolve to the default category's rate; defaulted reports that
// fallback so the caller can flag it.
func (c *Config) ReferralRate(category string) (rate float64, defaulted bool) {
	if r, ok := c.Referral.Rates[category]; ok {
		return r, false
	}
	return c.Referral.Rates[c.Referral.DefaultCategory], true
}

// FulfillmentTier matches a billable weight against the ordered tiers.
// A weight past the last bounded tier falls back to the heaviest tier;
// defaulted reports that fallback.
func (c *Config) FulfillmentTier(billableLb float64) (tier WeightTier, defaulted bool) {
	for _, t := range c.FulfillmentTiers {
		if t.MaxWeightLb == 0 || billableLb <= t.MaxWeightLb {
			return t, false
		}
	}
	return c.FulfillmentTiers[len(c.FulfillmentTiers)-1], true
}

// StorageMonthlyRate returns the per-cubic-foot monthly rate for a season
// key ("standard" or "peak"); unknown keys use the standard rate.
func (c *Config) StorageMonthlyRate(season string) float64 {
	if season == "peak" {
		return c.Storage.PeakPerCubicFt
	}
	return c.Storage.StandardPerCubicFt
}

// Load parses and validates a schedule from JSON.
func Load(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse schedule: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile reads and validates a schedule JSON file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}
	return Load(data)
}

// Default returns the embedded fallback schedule. It panics only if the
// embedded asset itself is broken, which is a build defect.
func Default() *Config {
	cfg, err := Load(defaultJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded default schedule invalid: %v", err))
	}
	return cfg
}
