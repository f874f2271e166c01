package dsl

import (
	"testing"

	"github.com/astroformula/dsl/internal/dignity"
)

func validateFormula(t *testing.T, formula string, cfg *dignity.Config) []Diagnostic {
	t.Helper()
	if cfg == nil {
		cfg = dignity.Default()
	}
	node, err := Parse(formula)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", formula, err)
	}
	return Validate(node, cfg)
}

func hasCode(diags []Diagnostic, code string) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestValidateRetroLuminary(t *testing.T) {
	diags := validateFormula(t, "Sun.Retrograde == true", nil)
	if !hasCode(diags, RuleRetroLuminary) {
		t.Errorf("expected %s, got %+v", RuleRetroLuminary, diags)
	}
}

func TestValidateRetroAngle(t *testing.T) {
	diags := validateFormula(t, "Asc.Retrograde == true", nil)
	if !hasCode(diags, RuleRetroAngle) {
		t.Errorf("expected %s, got %+v", RuleRetroAngle, diags)
	}
}

func TestValidateAspectSelf(t *testing.T) {
	diags := validateFormula(t, "Asp(Sun, Sun, Trine) == true", nil)
	if !hasCode(diags, RuleAspectSelf) {
		t.Errorf("expected %s, got %+v", RuleAspectSelf, diags)
	}
}

func TestValidateHouseRange(t *testing.T) {
	diags := validateFormula(t, "Sun.House == 13", nil)
	if !hasCode(diags, RuleHouseRange) {
		t.Errorf("expected %s, got %+v", RuleHouseRange, diags)
	}
}

func TestValidateDegreeRange(t *testing.T) {
	diags := validateFormula(t, "Sun.Degree == 30", nil)
	if !hasCode(diags, RuleDegreeRange) {
		t.Errorf("expected %s, got %+v", RuleDegreeRange, diags)
	}
}

func TestValidateLongitudeRange(t *testing.T) {
	diags := validateFormula(t, "Sun.Longitude == 360", nil)
	if !hasCode(diags, RuleDegreeRange) {
		t.Errorf("expected %s, got %+v", RuleDegreeRange, diags)
	}
}

func TestValidateRulerMisuse(t *testing.T) {
	diags := validateFormula(t, "Sun.Ruler == Mars", nil)
	if !hasCode(diags, RuleRulerMisuse) {
		t.Errorf("expected %s, got %+v", RuleRulerMisuse, diags)
	}
}

func TestValidateDignitySignMismatch(t *testing.T) {
	diags := validateFormula(t, "Sun.Sign == Taurus AND Sun.Dignity == Exaltation", nil)
	if !hasCode(diags, RuleDignitySignMismatch) {
		t.Errorf("expected %s, got %+v", RuleDignitySignMismatch, diags)
	}
}

func TestValidateDignityConflict(t *testing.T) {
	diags := validateFormula(t, "Sun.Dignity == Exaltation AND Sun.Dignity == Fall", nil)
	if !hasCode(diags, RuleDignityConflict) {
		t.Errorf("expected %s, got %+v", RuleDignityConflict, diags)
	}
}

func TestValidateModeMismatch(t *testing.T) {
	cfg := dignity.Default()
	cfg.Mode = dignity.Traditional
	diags := validateFormula(t, "Uranus.Sign == Aquarius", cfg)
	if !hasCode(diags, RuleModeMismatch) {
		t.Errorf("expected %s, got %+v", RuleModeMismatch, diags)
	}
}

func TestValidateModeMismatchAbsentUnderModern(t *testing.T) {
	cfg := dignity.Default()
	cfg.Mode = dignity.Modern
	diags := validateFormula(t, "Uranus.Sign == Aquarius", cfg)
	if hasCode(diags, RuleModeMismatch) {
		t.Errorf("did not expect %s under modern mode, got %+v", RuleModeMismatch, diags)
	}
}

func TestValidateOrbLarge(t *testing.T) {
	diags := validateFormula(t, "Asp(Sun, Moon, Trine, orb<15) == true", nil)
	if !hasCode(diags, RuleOrbLarge) {
		t.Errorf("expected %s, got %+v", RuleOrbLarge, diags)
	}
}

func TestValidateTypeMismatch(t *testing.T) {
	diags := validateFormula(t, `Sun.House == "first"`, nil)
	if !hasCode(diags, RuleType) {
		t.Errorf("expected %s, got %+v", RuleType, diags)
	}
}

func TestValidateCleanFormulaHasNoErrors(t *testing.T) {
	diags := validateFormula(t, "Sun.Sign == Aries AND Moon.House == 4", nil)
	for _, d := range diags {
		if d.Severity == SeverityError {
			t.Errorf("unexpected error diagnostic on a well-formed formula: %+v", d)
		}
	}
}
