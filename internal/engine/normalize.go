package engine

import (
	"math"

	"resale-radar/internal/schedule"
)

const cubicInPerCubicFt = 1728.0

// Normalized carries the volume and billable weights derived from raw
// measurements. Intermediate values stay at full precision; rounding
// happens only where each fee is finalized.
type Normalized struct {
	CubicIn      float64
	CubicFeet    float64
	DimWeightLb  float64
	UnitWeightLb float64 // max(actual, dimensional), before buffers

	// Inbound carriers and the fulfillment program bill weight with
	// different buffers and rounding, so the two are tracked separately.
	InboundBillableLb     float64
	FulfillmentBillableLb float64
}

// sanitizeFloat replaces NaN/Inf with 0 so bad inputs never propagate.
func sanitizeFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// clampNonNegative sanitizes v and floors it at 0.
func clampNonNegative(v float64) float64 {
	v = sanitizeFloat(v)
	if v < 0 {
		return 0
	}
	return v
}

// roundUpTo rounds v up to the next multiple of step. The epsilon keeps
// exact multiples (2.0 at step 0.5) from being bumped a full step by float
// representation error.
func roundUpTo(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Ceil(v/step-1e-9) * step
}

// Normalize converts raw measurements into cubic volume and the two
// billable weights the schedule bills against.
func Normalize(p ProductPhysical, sched *schedule.Config) Normalized {
	l := clampNonNegative(p.LengthIn)
	w := clampNonNegative(p.WidthIn)
	h := clampNonNegative(p.HeightIn)
	actual := clampNonNegative(p.WeightLb)

	cubicIn := l * w * h
	dim := cubicIn / sched.DimWeightDivisorIn3

	unit := actual
	if dim > unit {
		unit = dim
	}

	return Normalized{
		CubicIn:               cubicIn,
		CubicFeet:             cubicIn / cubicInPerCubicFt,
		DimWeightLb:           dim,
		UnitWeightLb:          unit,
		InboundBillableLb:     roundUpTo(unit+sched.InboundBufferLb, sched.InboundRoundLb),
		FulfillmentBillableLb: roundUpTo(unit+sched.FulfillmentBufferLb, sched.FulfillmentRoundLb),
	}
}
