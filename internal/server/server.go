// Package server exposes the economics engine over a JSON HTTP API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/iwvelando/yard-economics/internal/config"
	"github.com/iwvelando/yard-economics/internal/optimizer"
	"github.com/iwvelando/yard-economics/internal/projection"
	"github.com/iwvelando/yard-economics/pkg/constants"
	"github.com/iwvelando/yard-economics/pkg/economics"
	"github.com/iwvelando/yard-economics/pkg/format"
	"github.com/iwvelando/yard-economics/pkg/network"
	"github.com/iwvelando/yard-economics/pkg/output"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the per-request id in both directions.
const RequestIDHeader = "X-Request-ID"

const maxLimiters = 10000

type requestIDKey struct{}

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string

	rateLimit  rate.Limit
	rateBurst  int
	limitersMu sync.RWMutex
	limiters   map[string]*rate.Limiter
}

// NewHandler constructs the HTTP handler that serves the economics API.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	maxBodySize := cfg.BodySizeBytes()
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		rateLimit:   rate.Limit(cfg.RateLimit.RequestsPerSecond),
		rateBurst:   cfg.RateLimit.Burst,
		limiters:    make(map[string]*rate.Limiter),
	}

	r := chi.NewRouter()
	r.Use(h.requestID)
	r.Use(middleware.Recoverer)
	r.Use(h.accessLog)
	if h.rateLimit > 0 {
		r.Use(h.limit)
	}

	r.Get("/api/version", h.handleVersion)
	r.Route("/api/v2", func(r chi.Router) {
		r.Post("/roi", h.handleRoi)
		r.Post("/scenario", h.handleScenario)
		r.Post("/projections", h.handleProjections)
		r.Get("/multiplier", h.handleMultiplier)
		r.Get("/presets", h.handlePresetList)
		r.Get("/presets/{scenario}/{mode}", h.handlePreset)
	})

	return r
}

func (h *handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (h *handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Debug("request served",
			zap.String("op", "server.accessLog"),
			zap.String("requestId", requestIDFrom(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (h *handler) limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.limiterFor(clientIP(r)).Allow() {
			h.respondErrorWithOp(w, r, http.StatusTooManyRequests, "rate limit exceeded", "server.limit")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) limiterFor(ip string) *rate.Limiter {
	h.limitersMu.RLock()
	limiter, exists := h.limiters[ip]
	h.limitersMu.RUnlock()
	if exists {
		return limiter
	}

	h.limitersMu.Lock()
	defer h.limitersMu.Unlock()
	if existing, exists := h.limiters[ip]; exists {
		return existing
	}

	limiter = rate.NewLimiter(h.rateLimit, h.rateBurst)
	h.limiters[ip] = limiter

	if len(h.limiters) > maxLimiters {
		target := len(h.limiters) / 2
		removed := 0
		for key := range h.limiters {
			if key == ip {
				continue
			}
			delete(h.limiters, key)
			removed++
			if removed >= target {
				break
			}
		}
		h.logger.Info("trimmed client rate limiters",
			zap.String("op", "server.limiterFor"),
			zap.Int("removed", removed),
			zap.Int("remaining", len(h.limiters)),
		)
	}
	return limiter
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type roiRequest struct {
	Quick  *economics.QuickInput `json:"quick,omitempty"`
	Input  *economics.RoiV2Input `json:"input,omitempty"`
	Preset *presetSelection      `json:"preset,omitempty"`
}

type presetSelection struct {
	Scenario string `json:"scenario"`
	Mode     string `json:"mode"`
	Industry string `json:"industry,omitempty"`
}

type displayValues struct {
	TotalAnnualSavings string `json:"totalAnnualSavings"`
	BaseSavings        string `json:"baseSavings"`
	NetworkBonus       string `json:"networkBonus"`
	NetworkMultiplier  string `json:"networkMultiplier"`
	YearOneRoi         string `json:"yearOneRoi"`
	Payback            string `json:"payback"`
	FiveYearValue      string `json:"fiveYearValue"`
}

type roiResponse struct {
	Result   economics.RoiV2Result `json:"result"`
	Display  displayValues         `json:"display"`
	Warnings []economics.Warning   `json:"warnings"`
}

type scenarioRequest struct {
	roiRequest
	Profit       economics.ProfitAssumptions `json:"profit"`
	DiscountRate *float64                    `json:"discountRate,omitempty"`
	GrowthRate   *float64                    `json:"growthRate,omitempty"`
}

type scenarioResponse struct {
	Scenario economics.Scenario `json:"scenario"`
	Display  displayValues      `json:"display"`
}

type projectionsResponse struct {
	Projections []projection.Projection `json:"projections"`
	CSV         string                  `json:"csv"`
	Warnings    []string                `json:"warnings,omitempty"`
	Duration    string                  `json:"duration"`
}

type multiplierResponse struct {
	network.Result
	Display string `json:"display"`
}

type presetResponse struct {
	Quick  economics.QuickInput  `json:"quick"`
	Input  economics.RoiV2Input  `json:"input"`
	Result economics.RoiV2Result `json:"result"`
}

type presetListResponse struct {
	Scenarios  []economics.ScenarioPreset `json:"scenarios"`
	Modes      []economics.ModePreset     `json:"modes"`
	Industries []economics.IndustryPreset `json:"industries"`
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version":      h.version,
		"modelVersion": constants.ModelVersion,
	})
}

func (h *handler) handleRoi(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRoi"

	var req roiRequest
	if !h.decodeBody(w, r, &req, op) {
		return
	}
	in, err := req.resolve()
	if err != nil {
		h.respondEngineError(w, r, err, op)
		return
	}
	result, err := economics.CalcRoiV2(in)
	if err != nil {
		h.respondEngineError(w, r, err, op)
		return
	}

	h.writeJSON(w, http.StatusOK, roiResponse{
		Result:   result,
		Display:  display(result),
		Warnings: nonNilWarnings(economics.CheckCredibility(in, result)),
	})
}

func (h *handler) handleScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScenario"

	var req scenarioRequest
	if !h.decodeBody(w, r, &req, op) {
		return
	}
	in, err := req.resolve()
	if err != nil {
		h.respondEngineError(w, r, err, op)
		return
	}
	if req.Profit.Method == "" {
		req.Profit.Method = economics.ProfitContributionMargin
	}
	// Omitted rates fall back to the input's own finance assumptions.
	discount, growth := in.Finance.DiscountRate, in.Finance.GrowthRate
	if req.DiscountRate != nil {
		discount = *req.DiscountRate
	}
	if req.GrowthRate != nil {
		growth = *req.GrowthRate
	}
	scenario, err := economics.CalcScenario(economics.ScenarioInput{
		Roi:          in,
		Profit:       req.Profit,
		DiscountRate: discount,
		GrowthRate:   growth,
	})
	if err != nil {
		h.respondEngineError(w, r, err, op)
		return
	}
	scenario.Warnings = nonNilWarnings(scenario.Warnings)

	h.writeJSON(w, http.StatusOK, scenarioResponse{Scenario: scenario, Display: display(scenario.Roi)})
}

func (h *handler) handleProjections(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjections"
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r.Body); err != nil {
		h.respondBodyError(w, r, err, op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	warnings := cfg.ValidateConfiguration()

	results, err := projection.GetProjections(r.Context(), h.logger, *cfg)
	if err != nil {
		h.respondEngineError(w, r, err, op)
		return
	}

	runner, err := optimizer.NewRunner(h.logger, cfg)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to initialize optimizer: %v", err), op)
		return
	}
	optimizationResult, err := runner.Run()
	if errors.Is(err, optimizer.ErrInvalidTarget) {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	if err != nil {
		h.respondEngineError(w, r, fmt.Errorf("optimizer execution failed: %w", err), op)
		return
	}
	optimizationResult.Apply(results)

	if results == nil {
		results = []projection.Projection{}
	}
	elapsed := time.Since(start)
	h.logger.Info("projections computed",
		zap.String("op", op),
		zap.String("requestId", requestIDFrom(r.Context())),
		zap.Int("scenarios", len(results)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, projectionsResponse{
		Projections: results,
		CSV:         output.CsvString(results),
		Warnings:    warnings,
		Duration:    elapsed.String(),
	})
}

func (h *handler) handleMultiplier(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleMultiplier"
	query := r.URL.Query()

	n, err := strconv.Atoi(query.Get("n"))
	if err != nil || n < 1 || n > economics.MaxFacilities {
		h.respondErrorWithOp(w, r, http.StatusBadRequest,
			fmt.Sprintf("n must be an integer between 1 and %d", economics.MaxFacilities), op)
		return
	}

	params := network.DefaultParams()
	for name, dst := range map[string]*float64{"beta": &params.Beta, "tau": &params.Tau} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("%s must be a number", name), op)
			return
		}
		*dst = v
	}
	if err := economics.ValidateNetworkParams(params); err != nil {
		h.respondEngineError(w, r, err, op)
		return
	}

	result := network.MetcalfeInspiredMultiplier(n, params)
	h.writeJSON(w, http.StatusOK, multiplierResponse{Result: result, Display: format.Multiplier(result.Multiplier)})
}

func (h *handler) handlePresetList(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, presetListResponse{
		Scenarios:  economics.ScenarioPresets(),
		Modes:      economics.ModePresets(),
		Industries: economics.IndustryPresets(),
	})
}

func (h *handler) handlePreset(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePreset"

	sel := presetSelection{
		Scenario: chi.URLParam(r, "scenario"),
		Mode:     chi.URLParam(r, "mode"),
		Industry: r.URL.Query().Get("industry"),
	}
	q, err := sel.quickInput()
	if err != nil {
		h.respondEngineError(w, r, err, op)
		return
	}
	in, err := economics.RoiV2InputsFromQuickMode(q)
	if err != nil {
		h.respondEngineError(w, r, err, op)
		return
	}
	result, err := economics.CalcRoiV2(in)
	if err != nil {
		h.respondEngineError(w, r, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, presetResponse{Quick: q, Input: in, Result: result})
}

func (s presetSelection) quickInput() (economics.QuickInput, error) {
	mode := s.Mode
	if mode == "" {
		mode = economics.ModeExpected
	}
	q, err := economics.GetQuickInputsForPreset(s.Scenario, mode)
	if err != nil {
		return economics.QuickInput{}, err
	}
	if s.Industry != "" {
		return economics.ApplyIndustryPreset(q, s.Industry)
	}
	return q, nil
}

// resolve turns exactly one of quick, input or preset into engine input.
func (req roiRequest) resolve() (economics.RoiV2Input, error) {
	given := 0
	for _, set := range []bool{req.Quick != nil, req.Input != nil, req.Preset != nil} {
		if set {
			given++
		}
	}
	if given != 1 {
		return economics.RoiV2Input{}, &economics.InvalidInputError{
			Field:  "request",
			Value:  given,
			Reason: "exactly one of quick, input or preset is required",
		}
	}

	switch {
	case req.Input != nil:
		return *req.Input, nil
	case req.Preset != nil:
		q, err := req.Preset.quickInput()
		if err != nil {
			return economics.RoiV2Input{}, err
		}
		return economics.RoiV2InputsFromQuickMode(q)
	default:
		return economics.RoiV2InputsFromQuickMode(*req.Quick)
	}
}

func display(r economics.RoiV2Result) displayValues {
	return displayValues{
		TotalAnnualSavings: format.Money(r.TotalAnnualSavings),
		BaseSavings:        format.Money(r.BaseSavings),
		NetworkBonus:       format.Money(r.NetworkBonusSavings),
		NetworkMultiplier:  format.Multiplier(r.NetworkMultiplier),
		YearOneRoi:         format.ROI(r.YearOneRoiPercent),
		Payback:            format.Payback(r.PaybackMonths),
		FiveYearValue:      format.Money(r.FiveYearValue),
	}
}

func nonNilWarnings(warnings []economics.Warning) []economics.Warning {
	if warnings == nil {
		return []economics.Warning{}
	}
	return warnings
}

func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		h.respondBodyError(w, r, err, op)
		return false
	}
	return true
}

func (h *handler) respondBodyError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
		return
	}
	h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
}

// statusFor maps engine errors onto HTTP statuses.
func statusFor(err error) int {
	var inputErr *economics.InvalidInputError
	var divErr *economics.DivisionByZeroError
	var invariantErr *economics.InvariantViolationError
	switch {
	case errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.As(err, &divErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &invariantErr):
		return http.StatusInternalServerError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *handler) respondEngineError(w http.ResponseWriter, r *http.Request, err error, op string) {
	h.respondErrorWithOp(w, r, statusFor(err), err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("requestId", requestIDFrom(r.Context())),
		zap.Int("status", status),
		zap.String("error", msg),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Warn("request rejected", fields...)
	}
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode JSON response", zap.String("op", "server.writeJSON"), zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.logger.Error("failed to write JSON response", zap.String("op", "server.writeJSON"), zap.Error(err))
	}
}
