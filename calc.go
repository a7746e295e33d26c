package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"resale-radar/internal/engine"
	"resale-radar/internal/logger"
	"resale-radar/internal/schedule"
)

var calcFlags struct {
	price, cost     float64
	dims            string
	weight          float64
	category        string
	mode            string
	season          string
	months          float64
	bulky           bool
	apparel         bool
	hazmat          bool
	prepModel       string
	additionalModel string
	schedulePath    string
	targetMargin    float64
	jsonOut         bool
}

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Run a one-shot profitability calculation",
	Long: `Compute all fees and profitability for a single product.

With --target-margin the product cost is solved instead: the result is the
maximum cost that still hits the target margin at the given sale price.`,
	RunE: runCalc,
}

func init() {
	f := calcCmd.Flags()
	f.Float64Var(&calcFlags.price, "price", 0, "sale price")
	f.Float64Var(&calcFlags.cost, "cost", 0, "product cost")
	f.StringVar(&calcFlags.dims, "dims", "", "dimensions in inches, LxWxH (e.g. 10x8x2)")
	f.Float64Var(&calcFlags.weight, "weight", 0, "actual weight in pounds")
	f.StringVar(&calcFlags.category, "category", "", "contract category (default from schedule)")
	f.StringVar(&calcFlags.mode, "mode", "platform", "fulfillment mode: platform | seller")
	f.StringVar(&calcFlags.season, "season", "standard", "storage season: standard | peak")
	f.Float64Var(&calcFlags.months, "months", 1, "storage duration in months")
	f.BoolVar(&calcFlags.bulky, "bulky", false, "bulky-size surcharge applies")
	f.BoolVar(&calcFlags.apparel, "apparel", false, "apparel surcharge applies")
	f.BoolVar(&calcFlags.hazmat, "hazmat", false, "hazardous-material surcharge applies")
	f.StringVar(&calcFlags.prepModel, "prep", "none", "prep cost model: none | per_item | per_pound")
	f.StringVar(&calcFlags.additionalModel, "additional", "none", "additional cost model: none | per_item | per_pound")
	f.StringVar(&calcFlags.schedulePath, "schedule", "", "schedule JSON file (default: embedded schedule)")
	f.Float64Var(&calcFlags.targetMargin, "target-margin", -1, "solve for the cost that hits this margin %")
	f.BoolVar(&calcFlags.jsonOut, "json", false, "print result as JSON")
}

func parseDims(s string) (l, w, h float64, err error) {
	if s == "" {
		return 0, 0, 0, nil
	}
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("dims must be LxWxH, got %q", s)
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("dims component %q: %w", p, err)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], nil
}

func runCalc(cmd *cobra.Command, args []string) error {
	sched := schedule.Default()
	if calcFlags.schedulePath != "" {
		loaded, err := schedule.LoadFile(calcFlags.schedulePath)
		if err != nil {
			return err
		}
		sched = loaded
	}

	calc, err := engine.NewCalculator(sched)
	if err != nil {
		return err
	}

	l, w, h, err := parseDims(calcFlags.dims)
	if err != nil {
		return err
	}

	category := calcFlags.category
	if category == "" {
		category = sched.Referral.DefaultCategory
	}

	in := engine.Inputs{
		Physical:       engine.ProductPhysical{LengthIn: l, WidthIn: w, HeightIn: h, WeightLb: calcFlags.weight},
		Pricing:        engine.PricingInputs{SalePrice: calcFlags.price, ProductCost: calcFlags.cost},
		Mode:           engine.ParseFulfillmentMode(calcFlags.mode),
		Category:       category,
		Season:         engine.ParseSeason(calcFlags.season),
		StorageMonths:  calcFlags.months,
		Flags:          engine.ItemFlags{Bulky: calcFlags.bulky, Apparel: calcFlags.apparel, Hazmat: calcFlags.hazmat},
		PrepMode:       engine.ParseHandlingMode(calcFlags.prepModel),
		AdditionalMode: engine.ParseHandlingMode(calcFlags.additionalModel),
	}

	if calcFlags.targetMargin >= 0 {
		sol := calc.SolveCost(in, calcFlags.targetMargin)
		if calcFlags.jsonOut {
			return json.NewEncoder(os.Stdout).Encode(sol)
		}
		logger.Section("Cost solve")
		logger.Stats("target margin %", calcFlags.targetMargin)
		logger.Stats("total fees", fmt.Sprintf("%.2f", sol.TotalFees))
		logger.Stats("max product cost", fmt.Sprintf("%.2f", sol.ProductCost))
		if !sol.Attainable {
			logger.Warn("Solve", "Target margin not attainable at this price")
		}
		return nil
	}

	res := calc.Calculate(in)
	if calcFlags.jsonOut {
		return json.NewEncoder(os.Stdout).Encode(res)
	}

	logger.Section("Fees")
	logger.Stats("referral", fmt.Sprintf("%.2f", res.ReferralFee))
	logger.Stats("fulfillment", fmt.Sprintf("%.2f", res.FulfillmentFee))
	logger.Stats("inbound", fmt.Sprintf("%.2f", res.InboundFee))
	logger.Stats("storage", fmt.Sprintf("%.2f", res.StorageFee))
	logger.Stats("prep", fmt.Sprintf("%.2f", res.PrepFee))
	logger.Stats("additional", fmt.Sprintf("%.2f", res.AdditionalFees))
	logger.Stats("total fees", fmt.Sprintf("%.2f", res.TotalFees))

	logger.Section("Profitability")
	logger.Stats("profit", fmt.Sprintf("%.2f", res.TotalProfit))
	if res.MarginValid {
		logger.Stats("margin %", fmt.Sprintf("%.2f", res.Margin))
	} else {
		logger.Stats("margin %", "n/a (no sale price)")
	}
	if res.ROIValid {
		logger.Stats("roi %", fmt.Sprintf("%.2f", res.ROI))
	} else {
		logger.Stats("roi %", "n/a (no product cost)")
	}
	for _, warn := range res.Warnings {
		logger.Warn("Calc", warn)
	}
	return nil
}
