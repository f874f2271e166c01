// File: formula.go
// Purpose: HTTP handlers for formula validation and evaluation
// Pattern: decode request -> call core dsl package -> encode response,
// grounded on the teacher's internal/handlers/dsl.go
// (ValidateDSLFormula/PreviewDSLFormula)
// Dependencies: internal/dsl, internal/chart

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/astroformula/dsl/internal/chart"
	"github.com/astroformula/dsl/internal/dsl"
)

// FormulaValidateRequest is the body of POST /api/v1/formula/validate.
type FormulaValidateRequest struct {
	Formula string `json:"formula"`
}

// FormulaValidateResponse reports whether a formula is well-formed and
// astrologically sound, plus every diagnostic found either way.
type FormulaValidateResponse struct {
	Valid       bool             `json:"valid"`
	Diagnostics []dsl.Diagnostic `json:"diagnostics,omitempty"`
}

// ValidateFormula validates a formula against the server's dignity
// configuration without evaluating it against any chart.
func (h *Handlers) ValidateFormula(w http.ResponseWriter, r *http.Request) {
	var req FormulaValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondBadRequest(w, r, "invalid request body")
		return
	}
	if req.Formula == "" {
		RespondValidationError(w, r, "formula is required", map[string]string{"formula": "must not be empty"})
		return
	}

	ast, err := h.cache.ParseCachedMirrored(req.Formula)
	if err != nil {
		RespondValidationError(w, r, "formula failed to parse", map[string]string{"formula": err.Error()})
		return
	}

	diags := dsl.Validate(ast, h.dignity)
	hasErrors := false
	for _, d := range diags {
		if d.Severity == dsl.SeverityError {
			hasErrors = true
			break
		}
	}

	RespondJSON(w, r, http.StatusOK, FormulaValidateResponse{
		Valid:       !hasErrors,
		Diagnostics: diags,
	})
}

// FormulaEvaluateRequest is the body of POST /api/v1/formula/evaluate.
type FormulaEvaluateRequest struct {
	Formula string      `json:"formula"`
	Chart   chart.Chart `json:"chart"`
}

// FormulaEvaluateResponse carries the boolean result plus any
// diagnostics the validator surfaced before evaluation ran.
type FormulaEvaluateResponse struct {
	Result      bool             `json:"result"`
	Diagnostics []dsl.Diagnostic `json:"diagnostics,omitempty"`
	ChartID     string           `json:"chart_id,omitempty"`
}

// EvaluateFormula validates then evaluates a formula against the
// supplied chart, using the handler's shared AST cache.
func (h *Handlers) EvaluateFormula(w http.ResponseWriter, r *http.Request) {
	var req FormulaEvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondBadRequest(w, r, "invalid request body")
		return
	}
	if req.Formula == "" {
		RespondValidationError(w, r, "formula is required", map[string]string{"formula": "must not be empty"})
		return
	}
	if err := req.Chart.Validate(); err != nil {
		RespondValidationError(w, r, "invalid chart", map[string]string{"chart": err.Error()})
		return
	}

	ast, err := h.cache.ParseCachedMirrored(req.Formula)
	if err != nil {
		RespondBadRequest(w, r, "formula failed to parse: "+err.Error())
		return
	}

	diags := dsl.Validate(ast, h.dignity)
	for _, d := range diags {
		if d.Severity == dsl.SeverityError {
			slog.Warn("formula validation failed before evaluate", "formula", req.Formula, "code", d.Code)
			RespondValidationError(w, r, "formula has validation errors", map[string]string{d.Code: d.Message})
			return
		}
	}

	evaluator := dsl.NewEvaluator(&req.Chart, h.dignity)
	result, err := evaluator.Eval(ast)
	if err != nil {
		slog.Warn("formula evaluation failed", "error", err, "formula", req.Formula, "chart_id", req.Chart.ID)
		RespondBadRequest(w, r, "evaluation failed: "+err.Error())
		return
	}
	if !result.IsBool() {
		RespondBadRequest(w, r, "formula did not evaluate to a boolean result")
		return
	}

	RespondJSON(w, r, http.StatusOK, FormulaEvaluateResponse{
		Result:      result.Bool,
		Diagnostics: diags,
		ChartID:     req.Chart.ID,
	})
}
