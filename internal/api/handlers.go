package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"resale-radar/internal/config"
	"resale-radar/internal/engine"
	"resale-radar/internal/schedule"
)

// batchLimit bounds concurrent calculations in the batch endpoint. The
// engine is pure, so the only cost is CPU.
const batchLimit = 8

// calculateRequest is the wire form of engine.Inputs: enum fields travel as
// settings strings, and omitted fields fall back to the stored settings.
type calculateRequest struct {
	ProductID string `json:"product_id,omitempty"`

	Physical engine.ProductPhysical `json:"physical"`
	Pricing  engine.PricingInputs   `json:"pricing"`

	Mode            string           `json:"mode,omitempty"`   // platform | seller
	Category        string           `json:"category,omitempty"`
	Season          string           `json:"season,omitempty"` // standard | peak
	StorageMonths   *float64         `json:"storage_months,omitempty"`
	Flags           engine.ItemFlags `json:"flags"`
	PrepModel       string           `json:"prep_model,omitempty"`
	AdditionalModel string           `json:"additional_model,omitempty"`
}

// inputs merges the request with settings defaults and, when a product ID is
// present, the product's persisted field overrides.
func (s *Server) inputs(req calculateRequest) (engine.Inputs, error) {
	cfg := s.settings()

	pick := func(v, fallback string) string {
		if v != "" {
			return v
		}
		return fallback
	}

	months := cfg.StorageMonths
	if req.StorageMonths != nil {
		months = *req.StorageMonths
	}

	in := engine.Inputs{
		Physical:       req.Physical,
		Pricing:        req.Pricing,
		Mode:           engine.ParseFulfillmentMode(pick(req.Mode, cfg.FulfillmentMode)),
		Category:       pick(req.Category, cfg.Category),
		Season:         engine.ParseSeason(pick(req.Season, cfg.Season)),
		StorageMonths:  months,
		Flags:          req.Flags,
		PrepMode:       engine.ParseHandlingMode(pick(req.PrepModel, cfg.PrepCostModel)),
		AdditionalMode: engine.ParseHandlingMode(pick(req.AdditionalModel, cfg.AdditionalCostModel)),
	}

	if req.ProductID != "" && s.db != nil {
		fields, err := s.db.FieldStates(req.ProductID)
		if err != nil {
			return engine.Inputs{}, fmt.Errorf("field states for %s: %w", req.ProductID, err)
		}
		in.Fields = fields
	}
	return in, nil
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"schedule_version": s.calculator().Schedule.Version,
	})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg := s.settings()
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	var cfg config.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid config payload")
		return
	}
	if s.db != nil {
		if err := s.db.SaveConfig(&cfg); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("save config: %v", err))
			return
		}
	}
	s.setSettings(&cfg)
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.calculator().Schedule)
}

// handleReloadSchedule re-resolves the schedule source (settings file, then
// stored copy, then embedded default). Structural validation failures are
// fatal for the reload and reported as 422; the previous schedule stays
// active.
func (s *Server) handleReloadSchedule(w http.ResponseWriter, r *http.Request) {
	v, err, _ := s.reload.Do("reload", func() (any, error) {
		cfg := s.settings()

		var sched *schedule.Config
		switch {
		case cfg.SchedulePath != "":
			loaded, err := schedule.LoadFile(cfg.SchedulePath)
			if err != nil {
				return nil, err
			}
			sched = loaded
			if s.db != nil {
				payload, _ := json.Marshal(loaded)
				if err := s.db.SaveSchedule(loaded.Version, payload); err != nil {
					return nil, err
				}
			}
		default:
			sched = s.storedOrDefault()
		}

		calc, err := engine.NewCalculator(sched)
		if err != nil {
			return nil, err
		}
		s.setCalculator(calc)
		return sched.Version, nil
	})
	if err != nil {
		var confErr *schedule.ConfigurationError
		if errors.As(err, &confErr) {
			writeError(w, http.StatusUnprocessableEntity, confErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"schedule_version": v})
}

// storedOrDefault prefers the last schedule persisted to the database and
// falls back to the embedded default.
func (s *Server) storedOrDefault() *schedule.Config {
	if s.db != nil {
		if payload, _, ok, err := s.db.LatestSchedule(); err == nil && ok {
			if sched, err := schedule.Load(payload); err == nil {
				return sched
			}
		}
	}
	return schedule.Default()
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid calculation payload")
		return
	}
	in, err := s.inputs(req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.calculator().Calculate(in))
}

func (s *Server) handleCalculateBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Products []calculateRequest `json:"products"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid batch payload")
		return
	}

	calc := s.calculator()
	results := make([]engine.Result, len(req.Products))

	g, _ := errgroup.WithContext(r.Context())
	g.SetLimit(batchLimit)
	for i, p := range req.Products {
		g.Go(func() error {
			in, err := s.inputs(p)
			if err != nil {
				return err
			}
			results[i] = calc.Calculate(in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleSolveCost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		calculateRequest
		TargetMargin float64 `json:"target_margin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid solve payload")
		return
	}
	in, err := s.inputs(req.calculateRequest)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.calculator().SolveCost(in, req.TargetMargin))
}

func (s *Server) handleGetFields(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "no persistence configured")
		return
	}
	set, err := s.db.FieldStates(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, set.States())
}

func (s *Server) handleOverrideField(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "no persistence configured")
		return
	}
	key, ok := engine.ParseFieldKey(r.PathValue("field"))
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown field %q", r.PathValue("field")))
		return
	}
	var body struct {
		Value float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid override payload")
		return
	}

	productID := r.PathValue("id")
	set, err := s.db.FieldStates(productID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	set.Override(key, body.Value)
	if err := s.db.SaveFieldStates(productID, set); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, set.States())
}

func (s *Server) handleResetFields(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusServiceUnavailable, "no persistence configured")
		return
	}
	var body struct {
		Scope string `json:"scope"` // field | group | all
		Field string `json:"field,omitempty"`
		Group string `json:"group,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid reset payload")
		return
	}

	productID := r.PathValue("id")
	set, err := s.db.FieldStates(productID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	switch body.Scope {
	case "field":
		key, ok := engine.ParseFieldKey(body.Field)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown field %q", body.Field))
			return
		}
		set.Reset(key)
	case "group":
		if engine.FieldGroup(body.Group) == nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown group %q", body.Group))
			return
		}
		set.ResetGroup(body.Group)
	case "all":
		set.ResetAll()
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown scope %q", body.Scope))
		return
	}

	if err := s.db.SaveFieldStates(productID, set); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, set.States())
}
