package schedule

import (
	"errors"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("embedded default schedule invalid: %v", err)
	}
	if cfg.Version == "" {
		t.Error("default schedule has no version")
	}
}

func TestReferralRate_FallbackToDefault(t *testing.T) {
	cfg := Default()

	rate, defaulted := cfg.ReferralRate("electronics")
	if defaulted || rate != 0.08 {
		t.Errorf("electronics rate = %v (defaulted=%v), want 0.08", rate, defaulted)
	}

	rate, defaulted = cfg.ReferralRate("no-such-category")
	if !defaulted {
		t.Error("unknown category did not report fallback")
	}
	if rate != cfg.Referral.Rates[cfg.Referral.DefaultCategory] {
		t.Errorf("fallback rate = %v, want default category rate", rate)
	}
}

func TestFulfillmentTier_Matching(t *testing.T) {
	cfg := Default()

	tests := []struct {
		name     string
		weight   float64
		wantBase float64
	}{
		{"light item first tier", 0.5, 3.22},
		{"exact boundary stays in tier", 1, 3.22},
		{"second tier", 1.5, 4.75},
		{"mid range", 10, 6.10},
		{"unbounded tail", 150, 9.95},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, defaulted := cfg.FulfillmentTier(tt.weight)
			if tier.BaseFee != tt.wantBase {
				t.Errorf("tier base = %v, want %v", tier.BaseFee, tt.wantBase)
			}
			if defaulted {
				t.Error("defaulted = true with an unbounded final tier")
			}
		})
	}
}

func TestValidate_StructuralErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty referral table", func(c *Config) { c.Referral.Rates = nil }},
		{"no default category", func(c *Config) { c.Referral.DefaultCategory = "" }},
		{"default category missing", func(c *Config) { c.Referral.DefaultCategory = "ghost" }},
		{"rate above one", func(c *Config) { c.Referral.Rates["home"] = 1.5 }},
		{"no weight tiers", func(c *Config) { c.FulfillmentTiers = nil }},
		{"unbounded tier not last", func(c *Config) {
			c.FulfillmentTiers = []WeightTier{{MaxWeightLb: 0, BaseFee: 1}, {MaxWeightLb: 2, BaseFee: 2}}
		}},
		{"tiers out of order", func(c *Config) {
			c.FulfillmentTiers = []WeightTier{{MaxWeightLb: 5, BaseFee: 1}, {MaxWeightLb: 2, BaseFee: 2}}
		}},
		{"negative tier fee", func(c *Config) { c.FulfillmentTiers[0].BaseFee = -1 }},
		{"negative surcharge", func(c *Config) { c.Surcharges.BulkyFee = -1 }},
		{"negative storage rate", func(c *Config) { c.Storage.PeakPerCubicFt = -0.5 }},
		{"negative inbound rate", func(c *Config) { c.Inbound.PlatformPerLb = -1 }},
		{"zero dim divisor", func(c *Config) { c.DimWeightDivisorIn3 = 0 }},
		{"zero inbound granularity", func(c *Config) { c.InboundRoundLb = 0 }},
		{"negative buffer", func(c *Config) { c.FulfillmentBufferLb = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var confErr *ConfigurationError
			if !errors.As(err, &confErr) {
				t.Fatalf("error type = %T, want *ConfigurationError", err)
			}
		})
	}
}

func TestLoad_RejectsBadPayloads(t *testing.T) {
	if _, err := Load([]byte("{not json")); err == nil {
		t.Error("expected parse error")
	}
	// Well-formed JSON but structurally empty: fatal, not defaulted.
	if _, err := Load([]byte("{}")); err == nil {
		t.Error("expected configuration error for empty schedule")
	}
}

func TestLoad_RoundTripsDefaultPayload(t *testing.T) {
	cfg, err := Load(defaultJSON)
	if err != nil {
		t.Fatalf("Load(defaultJSON): %v", err)
	}
	if cfg.DimWeightDivisorIn3 != 139 {
		t.Errorf("DimWeightDivisorIn3 = %v, want 139", cfg.DimWeightDivisorIn3)
	}
	if cfg.Storage.PeakPerCubicFt != 2.40 {
		t.Errorf("PeakPerCubicFt = %v, want 2.40", cfg.Storage.PeakPerCubicFt)
	}
}
