package engine

// aggregate fills the profitability section of a result. TotalFees is the
// exact sum of the six finalized fees; TotalProfit is price − cost − fees.
// Margin and ROI are computed from the unrounded profit so the inverse-solve
// round trip holds to well under 0.01 percentage points, then rounded for
// presentation. Zero denominators yield a 0 sentinel with the validity flag
// cleared, never NaN or Infinity.
func aggregate(res *Result, price, cost float64) {
	res.TotalFees = roundCents(res.ReferralFee + res.FulfillmentFee + res.InboundFee +
		res.StorageFee + res.PrepFee + res.AdditionalFees)

	profit := price - cost - res.TotalFees
	res.TotalProfit = roundCents(profit)

	if price > 0 {
		res.Margin = roundPct(profit / price * 100)
		res.MarginValid = true
	}
	if cost > 0 {
		res.ROI = roundPct(profit / cost * 100)
		res.ROIValid = true
	}
}

// SolveCost answers "what may this product cost to hit a target margin at
// this sale price". The closed form
//
//	productCost = salePrice × (1 − m/100) − totalFees
//
// is valid only because no fee depends on productCost. If a cost-dependent
// fee is ever added, this must become an iterative root-find.
//
// The returned cost is deliberately unrounded: feeding it back through
// Calculate reproduces the target margin exactly up to presentation
// rounding.
func (c *Calculator) SolveCost(in Inputs, targetMarginPct float64) CostSolution {
	// Fees are cost-independent, so calculate once at any cost.
	base := c.Calculate(in)
	price := clampNonNegative(in.Pricing.SalePrice)
	m := sanitizeFloat(targetMarginPct)

	cost := price*(1-m/100) - base.TotalFees
	return CostSolution{
		ProductCost: cost,
		TotalFees:   base.TotalFees,
		Attainable:  cost >= 0,
	}
}
