package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resale-radar/internal/config"
	"resale-radar/internal/engine"
	"resale-radar/internal/schedule"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	calc, err := engine.NewCalculator(schedule.Default())
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	return NewServer(config.Default(), calc, nil)
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleStatus_ReportsScheduleVersion(t *testing.T) {
	srv := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/api/status", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["schedule_version"] == "" {
		t.Error("missing schedule_version")
	}
}

func TestHandleGetConfig_ReturnsSettings(t *testing.T) {
	srv := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/api/config", "")

	if rec.Code != http.StatusOK {
		t.Errorf("GET /api/config status = %d, want 200", rec.Code)
	}
	var out config.Config
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if out.Season != "standard" || out.FulfillmentMode != "platform" {
		t.Errorf("config = %+v", out)
	}
}

func TestHandleCalculate_ReferenceFixture(t *testing.T) {
	srv := newTestServer(t)
	body := `{
		"physical": {"length_in": 10, "width_in": 8, "height_in": 2, "weight_lb": 2},
		"pricing": {"sale_price": 29.99, "product_cost": 10},
		"mode": "platform",
		"category": "home",
		"season": "standard",
		"storage_months": 1
	}`
	rec := do(t, srv, http.MethodPost, "/api/calculate", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var res engine.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.ReferralFee != 4.50 || res.FulfillmentFee != 5.40 {
		t.Errorf("referral/fulfillment = %v/%v, want 4.50/5.40", res.ReferralFee, res.FulfillmentFee)
	}
	if res.TotalFees != 11.36 || res.TotalProfit != 8.63 {
		t.Errorf("fees/profit = %v/%v, want 11.36/8.63", res.TotalFees, res.TotalProfit)
	}
}

func TestHandleCalculate_DefaultsFromSettings(t *testing.T) {
	srv := newTestServer(t)
	// Mode, category, season, and months omitted: settings defaults apply
	// (platform, everything_else, standard, 1 month).
	body := `{
		"physical": {"length_in": 10, "width_in": 8, "height_in": 2, "weight_lb": 2},
		"pricing": {"sale_price": 29.99, "product_cost": 10}
	}`
	rec := do(t, srv, http.MethodPost, "/api/calculate", body)

	var res engine.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.FulfillmentFee != 5.40 {
		t.Errorf("FulfillmentFee = %v, want 5.40 via default platform mode", res.FulfillmentFee)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v; default category must not warn", res.Warnings)
	}
}

func TestHandleCalculate_BadPayload(t *testing.T) {
	srv := newTestServer(t)
	rec := do(t, srv, http.MethodPost, "/api/calculate", "{nope")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleCalculateBatch_PreservesOrder(t *testing.T) {
	srv := newTestServer(t)
	body := `{"products": [
		{"pricing": {"sale_price": 10, "product_cost": 2}, "physical": {"weight_lb": 1}},
		{"pricing": {"sale_price": 500, "product_cost": 100}, "physical": {"weight_lb": 1}}
	]}`
	rec := do(t, srv, http.MethodPost, "/api/calculate/batch", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Results []engine.Result `json:"results"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(out.Results))
	}
	// Referral at 15%: 1.50 for the first, 75.00 for the second.
	if out.Results[0].ReferralFee != 1.50 || out.Results[1].ReferralFee != 75.00 {
		t.Errorf("referral fees = %v/%v, want 1.50/75.00",
			out.Results[0].ReferralFee, out.Results[1].ReferralFee)
	}
}

func TestHandleSolveCost_ClosedForm(t *testing.T) {
	srv := newTestServer(t)
	body := `{
		"physical": {"length_in": 10, "width_in": 8, "height_in": 2, "weight_lb": 2},
		"pricing": {"sale_price": 29.99},
		"category": "home",
		"storage_months": 1,
		"target_margin": 25
	}`
	rec := do(t, srv, http.MethodPost, "/api/solve-cost", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var sol engine.CostSolution
	if err := json.NewDecoder(rec.Body).Decode(&sol); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// 29.99 × 0.75 − 11.36 = 11.1325.
	if sol.ProductCost < 11.1324 || sol.ProductCost > 11.1326 {
		t.Errorf("ProductCost = %v, want ≈11.1325", sol.ProductCost)
	}
	if !sol.Attainable {
		t.Error("Attainable = false")
	}
}

func TestFieldEndpoints_WithoutPersistence(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/products/B0TEST/fields", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET fields status = %d, want 503 without a database", rec.Code)
	}

	rec = do(t, srv, http.MethodPost, "/api/products/B0TEST/fields/prep_fee/override", `{"value": 1}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("override status = %d, want 503 without a database", rec.Code)
	}
}
