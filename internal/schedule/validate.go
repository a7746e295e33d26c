package schedule

import "fmt"

// ConfigurationError marks a structurally invalid schedule. It is fatal at
// load time: the engine refuses to calculate against a broken schedule
// rather than silently defaulting, because a silent default here would
// misinform a buy/skip decision.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("schedule config: %s: %s", e.Field, e.Reason)
}

func confErr(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the schedule's structure. Any returned error is a
// *ConfigurationError.
func (c *Config) Validate() error {
	if len(c.Referral.Rates) == 0 {
		return confErr("referral.rates", "table is empty")
	}
	if c.Referral.DefaultCategory == "" {
		return confErr("referral.default_category", "not set")
	}
	if _, ok := c.Referral.Rates[c.Referral.DefaultCategory]; !ok {
		return confErr("referral.default_category", "%q has no rate entry", c.Referral.DefaultCategory)
	}
	for cat, rate := range c.Referral.Rates {
		if rate < 0 || rate > 1 {
			return confErr("referral.rates", "category %q rate %g outside [0,1]", cat, rate)
		}
	}

	if len(c.FulfillmentTiers) == 0 {
		return confErr("fulfillment_tiers", "no weight tiers")
	}
	prev := 0.0
	for i, t := range c.FulfillmentTiers {
		last := i == len(c.FulfillmentTiers)-1
		if t.MaxWeightLb == 0 && !last {
			return confErr("fulfillment_tiers", "tier %d: unbounded tier must be last", i)
		}
		if t.MaxWeightLb != 0 && t.MaxWeightLb <= prev {
			return confErr("fulfillment_tiers", "tier %d: max weight %g not above previous %g", i, t.MaxWeightLb, prev)
		}
		if t.BaseFee < 0 || t.OveragePerLb < 0 || t.OverageAboveLb < 0 {
			return confErr("fulfillment_tiers", "tier %d: negative fee component", i)
		}
		if t.MaxWeightLb != 0 {
			prev = t.MaxWeightLb
		}
	}

	if c.Surcharges.BulkyFee < 0 || c.Surcharges.ApparelFee < 0 || c.Surcharges.HazmatFee < 0 {
		return confErr("surcharges", "negative surcharge")
	}
	if c.Storage.StandardPerCubicFt < 0 || c.Storage.PeakPerCubicFt < 0 {
		return confErr("storage", "negative monthly rate")
	}
	if c.Inbound.PlatformPerLb < 0 || c.Inbound.SellerPerLb < 0 {
		return confErr("inbound", "negative per-pound rate")
	}
	if c.Prep.PerItem < 0 || c.Prep.PerLb < 0 {
		return confErr("prep", "negative rate")
	}
	if c.Additional.PerItem < 0 || c.Additional.PerLb < 0 {
		return confErr("additional", "negative rate")
	}

	if c.DimWeightDivisorIn3 <= 0 {
		return confErr("dim_weight_divisor_in3", "must be positive, got %g", c.DimWeightDivisorIn3)
	}
	if c.InboundBufferLb < 0 || c.FulfillmentBufferLb < 0 {
		return confErr("buffers", "negative packaging buffer")
	}
	if c.InboundRoundLb <= 0 {
		return confErr("inbound_round_lb", "granularity must be positive, got %g", c.InboundRoundLb)
	}
	if c.FulfillmentRoundLb <= 0 {
		return confErr("fulfillment_round_lb", "granularity must be positive, got %g", c.FulfillmentRoundLb)
	}
	return nil
}
