package dsl

import (
	"fmt"
	"strings"
)

// ErrorType distinguishes which pipeline stage raised a DSLError.
type ErrorType int

const (
	ErrorTypeLex ErrorType = iota
	ErrorTypeSyntax
	ErrorTypeSemantic
	ErrorTypeRuntime
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeLex:
		return "lex"
	case ErrorTypeSyntax:
		return "syntax"
	case ErrorTypeSemantic:
		return "semantic"
	case ErrorTypeRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

// Stable error kinds, named in spec §7. Kind is the machine-checkable
// identifier; Message is the human-readable rendering.
const (
	KindUnterminatedString = "UnterminatedString"
	KindUnknownCharacter   = "UnknownCharacter"
	KindMalformedNumber    = "MalformedNumber"
	KindFormulaTooLong     = "FormulaTooLong"

	KindUnexpectedToken = "UnexpectedToken"
	KindUnexpectedEOF   = "UnexpectedEOF"
	KindEmptyList       = "EmptyList"
	KindUnknownFunction = "UnknownFunction"
	KindTooDeep         = "TooDeep"

	KindUnknownPlanet  = "UnknownPlanet"
	KindUnknownSign    = "UnknownSign"
	KindTypeMismatch   = "TypeMismatch"
	KindNotABoolean    = "NotABoolean"
	KindUnknownScope   = "UnknownScope"
)

// DSLError is a single positional error raised by the lexer, parser, or
// evaluator. Validator diagnostics use the richer Diagnostic type instead
// (see diagnostic.go), since they carry a stable rule code and severity
// rather than a single fatal/non-fatal distinction.
type DSLError struct {
	Type       ErrorType
	Kind       string
	Message    string
	Offset     int
	Line       int
	Column     int
	Suggestion string
}

func (e *DSLError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s error at %d:%d: %s (%s)", e.Type, e.Line, e.Column, e.Message, e.Suggestion)
	}
	return fmt.Sprintf("%s error at %d:%d: %s", e.Type, e.Line, e.Column, e.Message)
}

// ErrorList accumulates DSLErrors from a single lex/parse/eval pass.
type ErrorList struct {
	errors []*DSLError
}

// Add appends an error to the list.
func (l *ErrorList) Add(e *DSLError) {
	l.errors = append(l.errors, e)
}

// HasErrors reports whether any error has been recorded.
func (l *ErrorList) HasErrors() bool {
	return len(l.errors) > 0
}

// Errors returns the accumulated errors in insertion order.
func (l *ErrorList) Errors() []*DSLError {
	return l.errors
}

// First returns the first recorded error, or nil if none.
func (l *ErrorList) First() *DSLError {
	if len(l.errors) == 0 {
		return nil
	}
	return l.errors[0]
}

// Error implements the error interface by joining all messages.
func (l *ErrorList) Error() string {
	if len(l.errors) == 0 {
		return "no errors"
	}
	parts := make([]string, len(l.errors))
	for i, e := range l.errors {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

// LexError is returned by Tokenize. It is always a single error: the
// lexer stops at the first malformed token.
type LexError struct {
	*DSLError
}

// ParseError is returned by Parse. It wraps the parser's accumulated
// ErrorList; Go callers that only want the first failure can call
// ParseError.First().
type ParseError struct {
	*ErrorList
}

func (e *ParseError) Error() string {
	return e.ErrorList.Error()
}

// EvalError is returned by Evaluate. Like ParseError it wraps an
// ErrorList, though in practice the evaluator stops at the first error.
type EvalError struct {
	*ErrorList
}

func (e *EvalError) Error() string {
	return e.ErrorList.Error()
}
