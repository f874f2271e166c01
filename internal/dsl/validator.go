// File: validator.go
// Purpose: astrological validation of a parsed formula AST against a
// DignityConfig - rule checking, not type checking alone
// Pattern: diagnostics-collector (walks whole AST, never stops at first rule)
// Dependencies: ast.go, diagnostic.go, internal/dignity

package dsl

import (
	"fmt"
	"strings"

	"github.com/astroformula/dsl/internal/dignity"
)

// luminaries never carry the Retrograde property, by chart invariant.
var luminaries = map[string]bool{"Sun": true, "Moon": true}

// angles are chart points, not moving bodies; Retrograde on them is
// merely unusual, not invalid.
var angles = map[string]bool{"Asc": true, "MC": true, "IC": true, "Dsc": true}

// Validator walks a parsed AST and emits Diagnostics against a dignity
// configuration. It never panics on malformed input; nodes it does not
// recognize are skipped without a diagnostic.
type Validator struct {
	cfg   *dignity.Config
	diags Diagnostics
}

// NewValidator creates a Validator bound to cfg. cfg must not be mutated
// for the lifetime of the Validator; DignityConfig is immutable by
// contract once constructed.
func NewValidator(cfg *dignity.Config) *Validator {
	return &Validator{cfg: cfg}
}

// Validate parses nothing; it walks an already-parsed AST and returns
// every diagnostic found, regardless of severity.
func Validate(node Node, cfg *dignity.Config) []Diagnostic {
	v := NewValidator(cfg)
	v.walk(node, nil)
	v.checkDignityConflicts(node)
	return v.diags.All()
}

// ValidateFormula parses formula and validates the resulting AST in one
// step, returning both so a caller that only validated can still reuse
// the AST for evaluation without reparsing.
func ValidateFormula(formula string, cfg *dignity.Config) (Node, []Diagnostic, error) {
	node, err := Parse(formula)
	if err != nil {
		return nil, nil, err
	}
	return node, Validate(node, cfg), nil
}

func (v *Validator) add(pos Position, sev Severity, code, msgKey, format string, bindings map[string]string, suggestions []string, args ...interface{}) {
	v.diags.Add(Diagnostic{
		Severity:    sev,
		Code:        code,
		MessageKey:  msgKey,
		Message:     fmt.Sprintf(format, args...),
		Bindings:    bindings,
		Suggestions: suggestions,
		Pos:         pos,
	})
}

// walk recurses over the whole AST. scope carries the domain kind bound
// by the nearest enclosing aggregator, used to resolve bare ScopeRefs.
func (v *Validator) walk(node Node, scope *DomainKind) {
	if node == nil {
		return
	}
	switch n := node.(type) {
	case *BoolExpr:
		v.walk(n.Left, scope)
		v.walk(n.Right, scope)

	case *Not:
		v.walk(n.Inner, scope)

	case *Comparison:
		v.validateComparison(n, scope)
		v.walk(n.Left, scope)
		v.walk(n.Right, scope)

	case *PropertyAccess:
		v.validateProperty(n, scope)
		v.walk(n.Target, scope)

	case *AspectCall:
		v.validateAspectCall(n, scope)
		v.walk(n.P1, scope)
		v.walk(n.P2, scope)

	case *Aggregator:
		v.walk(n.Filter, &n.Domain)
		v.walk(n.Body, &n.Domain)

	case *Count:
		v.walk(n.Filter, &n.Domain)

	case *List:
		for _, e := range n.Elements {
			v.walk(e, scope)
		}

	case *PlanetRef:
		v.validateModeMismatchRef(n)

	case *Literal, *SignRef, *HouseNumber, *ScopeRef:
		// leaves; nothing further to check here
	}
}

func (v *Validator) validateProperty(n *PropertyAccess, scope *DomainKind) {
	if n.Property != PropRetrograde {
		return
	}
	name, isPlanet := targetName(n.Target)
	if !isPlanet {
		return
	}
	if luminaries[name] {
		v.add(n.Pos(), SeverityError, RuleRetroLuminary, "validator.retro_luminary",
			"%s cannot be retrograde.", nil,
			[]string{"Mercury.Retrograde == True", "Venus.Retrograde == True"}, name)
		return
	}
	if angles[name] {
		v.add(n.Pos(), SeverityWarning, RuleRetroAngle, "validator.retro_angle",
			"Retrograde is not a meaningful property of %s; chart angles do not move retrograde.",
			nil, nil, name)
	}
}

// literalValue extracts the comparable value from a Literal or SignRef
// right-hand side; SignRef is a distinct AST variant from Literal (it
// carries its own canonicalized Name) but behaves like a string literal
// for every validator/evaluator purpose.
func literalValue(n Node) (interface{}, bool) {
	switch t := n.(type) {
	case *Literal:
		return t.Value, true
	case *SignRef:
		return t.Name, true
	}
	return nil, false
}

// targetName extracts a bare planet/scope name from a property-access
// target, if it names one directly (not through another PropertyAccess).
func targetName(n Node) (string, bool) {
	switch t := n.(type) {
	case *PlanetRef:
		return t.Name, true
	case *ScopeRef:
		return t.Domain, t.Domain != ""
	}
	return "", false
}

func (v *Validator) validateAspectCall(n *AspectCall, scope *DomainKind) {
	n1, ok1 := targetName(n.P1)
	n2, ok2 := targetName(n.P2)
	if ok1 && ok2 && n1 == n2 {
		v.add(n.Pos(), SeverityError, RuleAspectSelf, "validator.aspect_self",
			"Asp(%s, %s, %s): a planet cannot aspect itself.", nil, nil, n1, n2, n.Kind)
	}
	if n.Orb != nil && *n.Orb > 10 {
		v.add(n.Pos(), SeverityWarning, RuleOrbLarge, "validator.orb_large",
			"orb<%g exceeds the conventional 10° ceiling for %s.", nil, nil, *n.Orb, n.Kind)
	}
}

func (v *Validator) validateComparison(n *Comparison, scope *DomainKind) {
	v.validateHouseRange(n)
	v.validateDegreeRange(n)
	v.validateRulerMisuse(n)
	v.validateDignitySignMismatch(n)
	v.validateTypeMismatch(n)
}

func (v *Validator) validateHouseRange(n *Comparison) {
	if pa, ok := n.Left.(*PropertyAccess); !ok || pa.Property != PropHouse {
		return
	}
	lit, ok := n.Right.(*Literal)
	if !ok {
		return
	}
	num, ok := lit.Value.(float64)
	if !ok {
		return
	}
	if num < 1 || num > 12 || num != float64(int(num)) {
		suggestion := fmt.Sprintf("house numbers run from the %s to the %s", ordinalHouse(1), ordinalHouse(12))
		v.add(n.Pos(), SeverityError, RuleHouseRange, "validator.house_range",
			"House number must be 1..12, got %g.", nil, []string{suggestion}, num)
	}
}

func (v *Validator) validateDegreeRange(n *Comparison) {
	pa, ok := n.Left.(*PropertyAccess)
	if !ok {
		return
	}
	lit, ok := n.Right.(*Literal)
	if !ok {
		return
	}
	num, ok := lit.Value.(float64)
	if !ok {
		return
	}
	switch pa.Property {
	case PropDegree:
		if num < 0 || num >= 30 {
			v.add(n.Pos(), SeverityError, RuleDegreeRange, "validator.degree_range",
				"Degree-in-sign must be in [0, 30), got %g.", nil, nil, num)
		}
	case PropLongitude:
		if num < 0 || num >= 360 {
			v.add(n.Pos(), SeverityError, RuleDegreeRange, "validator.degree_range",
				"Longitude must be in [0, 360), got %g.", nil, nil, num)
		}
	}
}

func (v *Validator) validateRulerMisuse(n *Comparison) {
	if n.Op != CmpEq && n.Op != CmpNeq {
		return
	}
	pa, ok := n.Left.(*PropertyAccess)
	if !ok || pa.Property != PropRuler {
		return
	}
	if _, isPlanet := n.Right.(*PlanetRef); isPlanet {
		v.add(n.Pos(), SeverityError, RuleRulerMisuse, "validator.ruler_misuse",
			"Ruler comparisons take a sign or another .Ruler reference, not a bare planet name.",
			nil, []string{"Sun.Ruler == Mercury.Ruler"})
	}
}

// validateDignitySignMismatch is intentionally a no-op at the
// single-comparison level: `P.Sign == S AND P.Dignity == Exaltation`
// requires seeing both comparisons at once, which only
// checkDignityConflicts (walking whole AND-chains) can do.
func (v *Validator) validateDignitySignMismatch(n *Comparison) {}

func (v *Validator) checkDignityAgainstSign(pos Position, planet, sign string, kind DignityKind) {
	switch kind {
	case DignityExaltation:
		if want, ok := v.cfg.ExaltationSign(planet); ok && want != sign {
			v.add(pos, SeverityError, RuleDignitySignMismatch, "validator.dignity_sign_mismatch",
				"%s is exalted in %s, not in %s.", nil, nil, planet, want, sign)
		}
	case DignityRulership:
		if !v.cfg.IsRuler(planet, sign) {
			v.add(pos, SeverityError, RuleDignitySignMismatch, "validator.dignity_sign_mismatch",
				"%s does not rule %s.", nil, nil, planet, sign)
		}
	case DignityFall:
		if want, ok := v.cfg.FallSign(planet); ok && want != sign {
			v.add(pos, SeverityError, RuleDignitySignMismatch, "validator.dignity_sign_mismatch",
				"%s is in its fall in %s, not in %s.", nil, nil, planet, want, sign)
		}
	case DignityDetriment:
		if !v.cfg.IsDetriment(planet, sign) {
			v.add(pos, SeverityError, RuleDignitySignMismatch, "validator.dignity_sign_mismatch",
				"%s is not in detriment in %s.", nil, nil, planet, sign)
		}
	}
}

// checkDignityConflicts walks AND-chains, collecting `Sign ==`/`Dignity
// ==` comparisons about the same planet, and flags both
// V-DIGNITY-SIGN-MISMATCH (cross-checked against config) and
// V-DIGNITY-CONFLICT (two incompatible dignities asserted at once).
func (v *Validator) checkDignityConflicts(root Node) {
	for _, chain := range andChains(root) {
		signOf := map[string]string{}
		dignitiesOf := map[string][]DignityKind{}
		for _, cmp := range chain {
			pa, ok := cmp.Left.(*PropertyAccess)
			if !ok {
				continue
			}
			planet, ok := targetName(pa.Target)
			if !ok {
				continue
			}
			val, ok := literalValue(cmp.Right)
			if !ok {
				continue
			}
			switch pa.Property {
			case PropSign:
				if s, ok := val.(string); ok {
					signOf[planet] = s
				}
			case PropDignity:
				if k, ok := val.(DignityKind); ok {
					dignitiesOf[planet] = append(dignitiesOf[planet], k)
				}
			}
		}
		for planet, kinds := range dignitiesOf {
			if sign, ok := signOf[planet]; ok {
				for _, k := range kinds {
					v.checkDignityAgainstSign(root.Pos(), planet, sign, k)
				}
			}
			if len(kinds) > 1 {
				distinct := map[DignityKind]bool{}
				for _, k := range kinds {
					distinct[k] = true
				}
				if len(distinct) > 1 {
					names := make([]string, 0, len(distinct))
					for k := range distinct {
						names = append(names, string(k))
					}
					v.add(root.Pos(), SeverityError, RuleDignityConflict, "validator.dignity_conflict",
						"%s cannot simultaneously be %s.", nil, nil, planet, strings.Join(names, " and "))
				}
			}
		}
	}
}

// andChains flattens every maximal run of AND-joined Comparison leaves
// reachable from root, including nested ones inside aggregator bodies
// and filters, so the conflict check covers the whole formula.
func andChains(root Node) [][]*Comparison {
	var chains [][]*Comparison
	var visit func(Node)
	visit = func(n Node) {
		switch t := n.(type) {
		case *BoolExpr:
			if t.Op == BoolAnd {
				chains = append(chains, flattenAnd(t))
			}
			visit(t.Left)
			visit(t.Right)
		case *Not:
			visit(t.Inner)
		case *Aggregator:
			visit(t.Filter)
			visit(t.Body)
		case *Count:
			visit(t.Filter)
		}
	}
	visit(root)
	return chains
}

func flattenAnd(n Node) []*Comparison {
	var out []*Comparison
	var visit func(Node)
	visit = func(n Node) {
		switch t := n.(type) {
		case *BoolExpr:
			if t.Op == BoolAnd {
				visit(t.Left)
				visit(t.Right)
				return
			}
		case *Comparison:
			out = append(out, t)
		}
	}
	visit(n)
	return out
}

// validateModeMismatchRef flags any reference to a modern-only co-ruler
// (Uranus/Neptune/Pluto) while the config is pinned to Traditional mode,
// wherever the planet name appears: `Uranus.Sign == ...`, `Sun.Ruler ==
// Uranus`, `Asp(Uranus, Mars, Trine)`, and so on.
func (v *Validator) validateModeMismatchRef(n *PlanetRef) {
	if v.cfg.Mode != dignity.Traditional {
		return
	}
	if dignity.ModernRulers[n.Name] {
		v.add(n.Pos(), SeverityWarning, RuleModeMismatch, "validator.mode_mismatch",
			"%s is only a co-ruler under modern mode; this chart uses traditional rulerships.",
			nil, nil, n.Name)
	}
}

func (v *Validator) validateTypeMismatch(n *Comparison) {
	pa, ok := n.Left.(*PropertyAccess)
	if !ok {
		return
	}
	val, ok := literalValue(n.Right)
	if !ok {
		return
	}
	wantsString := map[PropKind]bool{PropSign: true}
	wantsNumber := map[PropKind]bool{PropHouse: true, PropDegree: true, PropLongitude: true, PropSpeed: true}
	wantsBool := map[PropKind]bool{PropRetrograde: true}
	wantsDignity := map[PropKind]bool{PropDignity: true}

	switch {
	case wantsString[pa.Property]:
		if _, ok := val.(string); !ok {
			v.typeError(n, pa.Property, val)
		}
	case wantsNumber[pa.Property]:
		if _, ok := val.(float64); !ok {
			v.typeError(n, pa.Property, val)
		}
	case wantsBool[pa.Property]:
		if _, ok := val.(bool); !ok {
			v.typeError(n, pa.Property, val)
		}
	case wantsDignity[pa.Property]:
		if _, ok := val.(DignityKind); !ok {
			v.typeError(n, pa.Property, val)
		}
	}
}

func (v *Validator) typeError(n *Comparison, prop PropKind, got interface{}) {
	v.add(n.Pos(), SeverityError, RuleType, "validator.type_mismatch",
		"%s cannot be compared against %v: type mismatch.", nil, nil, prop, got)
}
