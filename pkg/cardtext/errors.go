package cardtext

import (
	"fmt"
	"strings"
)

// ErrorKind discriminates the two recognized failure modes of the
// compiler, matching spec §7's error taxonomy.
type ErrorKind int

const (
	// ParseError: a recognizer started but failed mid-parse (missing
	// mandatory token, unknown counter type, unresolved pronoun,
	// malformed P/T modifier, unsupported token name, etc).
	ParseError ErrorKind = iota
	// UnsupportedLine: the line matched no recognizer and contained no
	// interpretable effect sentence.
	UnsupportedLine
)

func (k ErrorKind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case UnsupportedLine:
		return "UnsupportedLine"
	default:
		return "Unknown"
	}
}

// CardTextError is the single error type the compiler surfaces. Every
// recognizer and lowering step that fails returns one of these rather than
// panicking, in the teacher's own Parser func([]string, string) (*Ability,
// error) style (pkg/ability/parser.go).
type CardTextError struct {
	Kind    ErrorKind
	Message string
	Clause  string
}

func (e *CardTextError) Error() string {
	if e.Clause != "" {
		return fmt.Sprintf("%s: %s (clause: %q)", e.Kind, e.Message, e.Clause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newParseError(message string, clause string) *CardTextError {
	return &CardTextError{Kind: ParseError, Message: message, Clause: clause}
}

func newUnsupportedLine(line string) *CardTextError {
	return &CardTextError{Kind: UnsupportedLine, Message: "unsupported line", Clause: line}
}

// IsTokenError reports whether err is a ParseError whose message concerns
// an unrecognized token definition, per §7's from_text_with_metadata rule:
// a token-specific ParseError always propagates even though other
// ParseErrors are swallowed by the degraded-build fallback.
func IsTokenError(err error) bool {
	cte, ok := err.(*CardTextError)
	if !ok {
		return false
	}
	return cte.Kind == ParseError && strings.Contains(cte.Message, "token")
}
