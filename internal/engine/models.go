// Package engine computes resale fees and profitability. It is pure and
// synchronous: no I/O, no globals, same inputs always produce the same
// result. Persistence and presentation belong to the api/db layers.
package engine

// FulfillmentMode selects which fee branches are active.
type FulfillmentMode int

const (
	// PlatformFulfilled: the marketplace stores and ships the item.
	PlatformFulfilled FulfillmentMode = iota
	// SellerFulfilled: the seller ships; the fulfillment fee is exactly 0.
	SellerFulfilled
)

func (m FulfillmentMode) String() string {
	if m == SellerFulfilled {
		return "seller"
	}
	return "platform"
}

// ParseFulfillmentMode maps a settings string to a mode. Unknown values
// resolve to PlatformFulfilled.
func ParseFulfillmentMode(s string) FulfillmentMode {
	if s == "seller" {
		return SellerFulfilled
	}
	return PlatformFulfilled
}

// SeasonWindow selects the storage-rate row.
type SeasonWindow int

const (
	SeasonStandard SeasonWindow = iota
	SeasonPeak
)

// Key returns the schedule lookup key for the season.
func (s SeasonWindow) Key() string {
	if s == SeasonPeak {
		return "peak"
	}
	return "standard"
}

// ParseSeason maps a settings string to a season window. Unknown values
// resolve to SeasonStandard.
func ParseSeason(s string) SeasonWindow {
	if s == "peak" {
		return SeasonPeak
	}
	return SeasonStandard
}

// HandlingMode is the cost model for prep and additional services.
type HandlingMode int

const (
	HandlingNone HandlingMode = iota
	HandlingPerItem
	HandlingPerPound
)

// ParseHandlingMode maps a settings string to a handling cost model.
func ParseHandlingMode(s string) HandlingMode {
	switch s {
	case "per_item":
		return HandlingPerItem
	case "per_pound":
		return HandlingPerPound
	}
	return HandlingNone
}

// ProductPhysical holds raw measurements as entered. Negative or non-finite
// values are clamped to 0 during normalization, never propagated.
type ProductPhysical struct {
	LengthIn float64 `json:"length_in"`
	WidthIn  float64 `json:"width_in"`
	HeightIn float64 `json:"height_in"`
	WeightLb float64 `json:"weight_lb"`
}

// PricingInputs are the seller's cost and price, independently settable.
type PricingInputs struct {
	SalePrice   float64 `json:"sale_price"`
	ProductCost float64 `json:"product_cost"`
}

// ItemFlags mark surcharge-eligible item properties. Surcharges are
// additive; multiple flags can apply at once.
type ItemFlags struct {
	Bulky   bool `json:"bulky"`
	Apparel bool `json:"apparel"`
	Hazmat  bool `json:"hazmat"`
}

// Inputs is the full per-calculation input contract.
type Inputs struct {
	Physical      ProductPhysical `json:"physical"`
	Pricing       PricingInputs   `json:"pricing"`
	Mode          FulfillmentMode `json:"mode"`
	Category      string          `json:"category"`
	Season        SeasonWindow    `json:"season"`
	StorageMonths float64         `json:"storage_months"`
	Flags         ItemFlags       `json:"flags"`

	PrepMode       HandlingMode `json:"prep_mode"`
	AdditionalMode HandlingMode `json:"additional_mode"`

	// Fields carries per-field override state; nil means all fields derived.
	Fields *FieldStateSet `json:"-"`
}

// Warning markers attached to a Result when a fail-soft fallback fired.
const (
	WarnCategoryDefaulted   = "category_defaulted"
	WarnWeightTierDefaulted = "weight_tier_defaulted"
)

// Result is always fully populated; margin and ROI carry validity flags and
// never surface NaN or Infinity.
type Result struct {
	ReferralFee    float64 `json:"referral_fee"`
	FulfillmentFee float64 `json:"fulfillment_fee"`
	InboundFee     float64 `json:"inbound_shipping_fee"`
	StorageFee     float64 `json:"storage_fee"`
	PrepFee        float64 `json:"prep_fee"`
	AdditionalFees float64 `json:"additional_fees"`

	TotalFees   float64 `json:"total_fees"`
	TotalProfit float64 `json:"total_profit"`
	Margin      float64 `json:"margin"`
	ROI         float64 `json:"roi"`
	MarginValid bool    `json:"margin_valid"`
	ROIValid    bool    `json:"roi_valid"`

	// Normalizer outputs, exposed for the UI breakdown.
	CubicFeet             float64 `json:"cubic_feet"`
	InboundBillableLb     float64 `json:"inbound_billable_lb"`
	FulfillmentBillableLb float64 `json:"fulfillment_billable_lb"`

	Warnings []string `json:"warnings,omitempty"`
}

// CostSolution is the inverse-solve output: the product cost required to hit
// a target margin at a given sale price.
type CostSolution struct {
	ProductCost float64 `json:"product_cost"`
	TotalFees   float64 `json:"total_fees"`
	// Attainable is false when the target margin would require a negative
	// cost; the raw value is still reported rather than clamped so the
	// forward round trip stays exact.
	Attainable bool `json:"attainable"`
}
