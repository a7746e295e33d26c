package engine

import (
	"fmt"

	"resale-radar/internal/schedule"
)

// Calculator applies a validated fee schedule to normalized inputs. It holds
// no mutable state; one Calculator can serve any number of calculations.
type Calculator struct {
	Schedule *schedule.Config
}

// NewCalculator refuses to build against a missing or structurally invalid
// schedule. This is the load-time gate: per-product lookups never fail hard.
func NewCalculator(sched *schedule.Config) (*Calculator, error) {
	if sched == nil {
		return nil, &schedule.ConfigurationError{Field: "schedule", Reason: "not loaded"}
	}
	if err := sched.Validate(); err != nil {
		return nil, fmt.Errorf("calculator: %w", err)
	}
	return &Calculator{Schedule: sched}, nil
}

// ReferralFee is the marketplace commission: salePrice × rate(category).
// Unknown categories use the schedule's default rate; defaulted reports the
// fallback.
func (c *Calculator) ReferralFee(salePrice float64, category string) (fee float64, defaulted bool) {
	rate, defaulted := c.Schedule.ReferralRate(category)
	return clampNonNegative(salePrice) * rate, defaulted
}

// FulfillmentFee is the pick/pack/ship fee for platform-fulfilled items,
// tiered by fulfillment billable weight plus additive surcharges. Seller
// fulfilled is exactly 0 regardless of weight, dimensions, or flags.
func (c *Calculator) FulfillmentFee(mode FulfillmentMode, billableLb float64, flags ItemFlags) (fee float64, defaulted bool) {
	if mode == SellerFulfilled {
		return 0, false
	}
	tier, defaulted := c.Schedule.FulfillmentTier(billableLb)
	fee = tier.BaseFee
	if tier.OveragePerLb > 0 && billableLb > tier.OverageAboveLb {
		fee += (billableLb - tier.OverageAboveLb) * tier.OveragePerLb
	}
	if flags.Bulky {
		fee += c.Schedule.Surcharges.BulkyFee
	}
	if flags.Apparel {
		fee += c.Schedule.Surcharges.ApparelFee
	}
	if flags.Hazmat {
		fee += c.Schedule.Surcharges.HazmatFee
	}
	return fee, defaulted
}

// InboundFee bills the inbound billable weight at the schedule's per-pound
// rate for the mode. A zero seller rate is a schedule decision, not an
// engine assumption.
func (c *Calculator) InboundFee(mode FulfillmentMode, billableLb float64) float64 {
	rate := c.Schedule.Inbound.PlatformPerLb
	if mode == SellerFulfilled {
		rate = c.Schedule.Inbound.SellerPerLb
	}
	return billableLb * rate
}

// StorageFee bills cubic volume at the seasonal monthly rate for the given
// duration.
func (c *Calculator) StorageFee(cubicFt float64, season SeasonWindow, months float64) float64 {
	return cubicFt * c.Schedule.StorageMonthlyRate(season.Key()) * clampNonNegative(months)
}

// handlingFee prices prep or additional services under the selected cost
// model: flat per item, or rate × normalized unit weight.
func handlingFee(mode HandlingMode, rates schedule.HandlingRates, unitWeightLb float64) float64 {
	switch mode {
	case HandlingPerItem:
		return rates.PerItem
	case HandlingPerPound:
		return rates.PerLb * unitWeightLb
	}
	return 0
}

// Calculate runs the full pipeline: normalize, compute each fee in
// dependency order, apply overrides, aggregate. Overridden fields keep
// their stored value; everything else re-derives from current inputs.
// A result is always produced.
func (c *Calculator) Calculate(in Inputs) Result {
	n := Normalize(in.Physical, c.Schedule)
	price := clampNonNegative(in.Pricing.SalePrice)
	cost := clampNonNegative(in.Pricing.ProductCost)

	res := Result{
		CubicFeet:             n.CubicFeet,
		InboundBillableLb:     n.InboundBillableLb,
		FulfillmentBillableLb: n.FulfillmentBillableLb,
	}

	res.ReferralFee = c.finalizeField(in.Fields, FieldReferral, func() float64 {
		fee, defaulted := c.ReferralFee(price, in.Category)
		if defaulted {
			res.Warnings = append(res.Warnings, WarnCategoryDefaulted)
		}
		return fee
	})

	res.FulfillmentFee = c.finalizeField(in.Fields, FieldFulfillment, func() float64 {
		fee, defaulted := c.FulfillmentFee(in.Mode, n.FulfillmentBillableLb, in.Flags)
		if defaulted {
			res.Warnings = append(res.Warnings, WarnWeightTierDefaulted)
		}
		return fee
	})

	res.InboundFee = c.finalizeField(in.Fields, FieldInbound, func() float64 {
		return c.InboundFee(in.Mode, n.InboundBillableLb)
	})

	res.StorageFee = c.finalizeField(in.Fields, FieldStorage, func() float64 {
		return c.StorageFee(n.CubicFeet, in.Season, in.StorageMonths)
	})

	res.PrepFee = c.finalizeField(in.Fields, FieldPrep, func() float64 {
		return handlingFee(in.PrepMode, c.Schedule.Prep, n.UnitWeightLb)
	})

	res.AdditionalFees = c.finalizeField(in.Fields, FieldAdditional, func() float64 {
		return handlingFee(in.AdditionalMode, c.Schedule.Additional, n.UnitWeightLb)
	})

	aggregate(&res, price, cost)
	return res
}

// finalizeField returns the override value when the field is frozen,
// otherwise computes it. Either way the fee is clamped non-negative and
// rounded to cents here — the single finalization point per fee.
func (c *Calculator) finalizeField(fields *FieldStateSet, key FieldKey, compute func() float64) float64 {
	if v, ok := fields.OverrideValue(key); ok {
		return roundCents(clampNonNegative(v))
	}
	return roundCents(clampNonNegative(compute()))
}
