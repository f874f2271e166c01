// File: casefold.go
// Purpose: locale-independent case folding for identifiers (planet,
// sign, aspect, dignity names), per spec §3: "identifiers ... are
// case-insensitive on input and canonicalized internally". Uses
// golang.org/x/text instead of hand-rolled strings.ToUpper/ToLower so
// folding behaves correctly regardless of the host locale.
// Dependencies: golang.org/x/text/cases, golang.org/x/text/language

package dsl

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	foldCaser  = cases.Fold()
	titleCaser = cases.Title(language.Und)
)

// foldIdent lowercases lexeme for case-insensitive keyword/identifier
// lookup (e.g. matching against the keyword table).
func foldIdent(lexeme string) string {
	return foldCaser.String(lexeme)
}

// titleIdent canonicalizes lexeme to its display form (first letter
// capitalized, e.g. "VENUS" / "venus" -> "Venus").
func titleIdent(lexeme string) string {
	return titleCaser.String(foldIdent(lexeme))
}
