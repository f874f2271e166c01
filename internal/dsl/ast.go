package dsl

import "fmt"

// Node is the common interface implemented by every AST node variant.
// The set of implementations is closed (this file is the only place new
// variants may be added) so the validator's type rules are decidable.
type Node interface {
	Pos() Position
	node()
}

// PropKind is the closed enumeration of properties a PropertyAccess can
// resolve. Before this rewrite the source reached chart fields by
// reflection; here every accessible property is named up front.
type PropKind int

const (
	PropSign PropKind = iota
	PropHouse
	PropDegree
	PropRetrograde
	PropDignity
	PropSpeed
	PropLongitude
	PropRuler
	PropPlanetsCount // derived attribute on house/sign domain elements
)

var propKindNames = map[PropKind]string{
	PropSign:         "Sign",
	PropHouse:        "House",
	PropDegree:       "Degree",
	PropRetrograde:   "Retrograde",
	PropDignity:      "Dignity",
	PropSpeed:        "Speed",
	PropLongitude:    "Longitude",
	PropRuler:        "Ruler",
	PropPlanetsCount: "PlanetsCount",
}

func (p PropKind) String() string {
	if s, ok := propKindNames[p]; ok {
		return s
	}
	return "Unknown"
}

// LookupPropKind maps a lower-cased property identifier to a PropKind.
func LookupPropKind(lower string) (PropKind, bool) {
	switch lower {
	case "sign":
		return PropSign, true
	case "house":
		return PropHouse, true
	case "degree":
		return PropDegree, true
	case "retrograde":
		return PropRetrograde, true
	case "dignity":
		return PropDignity, true
	case "speed":
		return PropSpeed, true
	case "longitude":
		return PropLongitude, true
	case "ruler":
		return PropRuler, true
	case "planetscount":
		return PropPlanetsCount, true
	}
	return 0, false
}

// CmpOp is the closed set of comparison operators.
type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpNeq
	CmpLt
	CmpLe
	CmpGt
	CmpGe
	CmpIn
)

func (op CmpOp) String() string {
	switch op {
	case CmpEq:
		return "=="
	case CmpNeq:
		return "!="
	case CmpLt:
		return "<"
	case CmpLe:
		return "<="
	case CmpGt:
		return ">"
	case CmpGe:
		return ">="
	case CmpIn:
		return "IN"
	default:
		return "?"
	}
}

// DomainKind is the closed set of aggregator domains.
type DomainKind int

const (
	DomainPlanet DomainKind = iota
	DomainAspect
	DomainHouse
	DomainSign
)

func (d DomainKind) String() string {
	switch d {
	case DomainPlanet:
		return "planet"
	case DomainAspect:
		return "aspect"
	case DomainHouse:
		return "house"
	case DomainSign:
		return "sign"
	default:
		return "?"
	}
}

// LookupDomainKind maps a lower-cased domain keyword (singular or plural)
// to a DomainKind.
func LookupDomainKind(lower string) (DomainKind, bool) {
	switch lower {
	case "planet", "planets":
		return DomainPlanet, true
	case "aspect", "aspects":
		return DomainAspect, true
	case "house", "houses":
		return DomainHouse, true
	case "sign", "signs":
		return DomainSign, true
	}
	return 0, false
}

// Quantifier distinguishes any(...) from all(...).
type Quantifier int

const (
	QuantifierAny Quantifier = iota
	QuantifierAll
)

func (q Quantifier) String() string {
	if q == QuantifierAny {
		return "any"
	}
	return "all"
}

// AspectKind is the closed set of named angular relationships.
type AspectKind string

const (
	AspectConj         AspectKind = "Conj"
	AspectOpp          AspectKind = "Opp"
	AspectTrine        AspectKind = "Trine"
	AspectSquare       AspectKind = "Square"
	AspectSextile      AspectKind = "Sextile"
	AspectQuincunx     AspectKind = "Quincunx"
	AspectSemisextile  AspectKind = "Semisextile"
	AspectSemisquare   AspectKind = "Semisquare"
	AspectSesquisquare AspectKind = "Sesquisquare"
)

// DignityKind is the closed set of dignity values.
type DignityKind string

const (
	DignityRulership  DignityKind = "Rulership"
	DignityExaltation DignityKind = "Exaltation"
	DignityDetriment  DignityKind = "Detriment"
	DignityFall       DignityKind = "Fall"
	DignityNeutral    DignityKind = "Neutral"
	DignityPeregrine  DignityKind = "Peregrine"
)

// base embeds the source position shared by every node; it is not a Node
// itself (it does not implement node()).
type base struct {
	P Position
}

func (b base) Pos() Position { return b.P }

// Literal wraps a bare bool, number, string, sign, aspect-kind, or
// dignity-kind value appearing in formula text.
type Literal struct {
	base
	Value interface{} // bool | float64 | string | SignRef-name | AspectKind | DignityKind
}

func (*Literal) node() {}

// List is a bracketed `[a, b, c]` literal list.
type List struct {
	base
	Elements []Node
}

func (*List) node() {}

// PlanetRef names a planet (e.g. `Sun`, `Mars`).
type PlanetRef struct {
	base
	Name string // canonical, e.g. "Sun"
}

func (*PlanetRef) node() {}

// SignRef names a zodiac sign (e.g. `Aries`).
type SignRef struct {
	base
	Name string // canonical, e.g. "Aries"
}

func (*SignRef) node() {}

// HouseNumber is an integer house literal, 1..12 (range enforced by the
// validator, not the parser).
type HouseNumber struct {
	base
	Number int
}

func (*HouseNumber) node() {}

// ScopeRef refers to the variable bound by an enclosing aggregator's
// domain (e.g. the implicit `planet` in `any(planet WHERE Sign == ...)`).
// Domain is empty when the reference appears bare inside a WHERE clause,
// in which case the evaluator binds it to the nearest enclosing scope.
type ScopeRef struct {
	base
	Domain string
}

func (*ScopeRef) node() {}

// PropertyAccess reads a property off a planet, sign, or scoped
// aggregator variable, e.g. `Sun.Sign` or `planet.House`.
type PropertyAccess struct {
	base
	Target   Node
	Property PropKind
}

func (*PropertyAccess) node() {}

// Comparison is a binary comparison between two values.
type Comparison struct {
	base
	Left  Node
	Op    CmpOp
	Right Node
}

func (*Comparison) node() {}

// AspectCall is `Asp(p1, p2, kind[, orb<number])`.
type AspectCall struct {
	base
	P1   Node
	P2   Node
	Kind AspectKind
	Orb  *float64 // nil means use the aspect kind's canonical orb
}

func (*AspectCall) node() {}

// Aggregator is `any(domain [WHERE filter]).Body` or
// `all(domain [WHERE filter]).Body`. Body is itself a comparison (or
// boolean expression) over the scoped variable bound by the quantifier.
type Aggregator struct {
	base
	Quantifier Quantifier
	Domain     DomainKind
	Filter     Node // nil if no WHERE clause
	Body       Node
}

func (*Aggregator) node() {}

// Count is `count(domain[, filter])`, a number-typed node that only
// appears inside a Comparison.
type Count struct {
	base
	Domain DomainKind
	Filter Node // nil if no filter
}

func (*Count) node() {}

// BoolOp is a binary logical AND/OR.
type BoolOp int

const (
	BoolAnd BoolOp = iota
	BoolOr
)

func (b BoolOp) String() string {
	if b == BoolAnd {
		return "AND"
	}
	return "OR"
}

// BoolExpr is `left AND right` or `left OR right`.
type BoolExpr struct {
	base
	Op    BoolOp
	Left  Node
	Right Node
}

func (*BoolExpr) node() {}

// Not is `NOT inner`.
type Not struct {
	base
	Inner Node
}

func (*Not) node() {}

// String renders a compact, round-trippable form of a node, used by the
// parser round-trip property test (spec §8), by the Redis mirror, and by
// the CLI's parse command.
func String(n Node) string {
	switch v := n.(type) {
	case *Literal:
		return fmt.Sprintf("%v", v.Value)
	case *List:
		s := "["
		for i, e := range v.Elements {
			if i > 0 {
				s += ","
			}
			s += String(e)
		}
		return s + "]"
	case *PlanetRef:
		return v.Name
	case *SignRef:
		return v.Name
	case *ScopeRef:
		// A bare domain keyword used as a value, e.g. the (unusual but
		// grammar-valid) `planet` standing alone. Re-lexes as TOKEN_DOMAIN.
		// When Domain is empty, the reference only ever appears as a
		// PropertyAccess target (see below) and never stands alone.
		return v.Domain
	case *HouseNumber:
		return fmt.Sprintf("%d", v.Number)
	case *PropertyAccess:
		// A scoped property - `planet.Sign` inside an aggregator body, or
		// the implicit-scope shorthand `Speed > 0` inside a WHERE clause -
		// never re-states its scope: the grammar's dot already belongs to
		// the enclosing aggregator/count header, and the implicit-scope
		// case has no surface token for its target at all.
		if _, ok := v.Target.(*ScopeRef); ok {
			return v.Property.String()
		}
		return fmt.Sprintf("%s.%s", String(v.Target), v.Property)
	case *Comparison:
		return fmt.Sprintf("%s %s %s", String(v.Left), v.Op, String(v.Right))
	case *AspectCall:
		if v.Orb != nil {
			return fmt.Sprintf("Asp(%s,%s,%s,orb<%g)", String(v.P1), String(v.P2), v.Kind, *v.Orb)
		}
		return fmt.Sprintf("Asp(%s,%s,%s)", String(v.P1), String(v.P2), v.Kind)
	case *Aggregator:
		filter := ""
		if v.Filter != nil {
			filter = " WHERE " + String(v.Filter)
		}
		return fmt.Sprintf("%s(%s%s).%s", v.Quantifier, v.Domain, filter, String(v.Body))
	case *Count:
		if v.Filter != nil {
			return fmt.Sprintf("count(%s,%s)", v.Domain, String(v.Filter))
		}
		return fmt.Sprintf("count(%s)", v.Domain)
	case *BoolExpr:
		return fmt.Sprintf("(%s %s %s)", String(v.Left), v.Op, String(v.Right))
	case *Not:
		return fmt.Sprintf("NOT %s", String(v.Inner))
	default:
		return "<nil>"
	}
}
