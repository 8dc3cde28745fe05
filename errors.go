package json5parser_airp

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotArrayOrObject is returned by lookups that descend into a
// standalone value.
var ErrNotArrayOrObject = errors.New("not array or object")

// ErrChildNotFound signals that a path does not name a child.
var ErrChildNotFound = errors.New("child not found")

// ErrMaxDepth is the cause of a ParseError for input nested deeper than
// Parser.MaxDepth.
var ErrMaxDepth = errors.New("maximum nesting depth exceeded")

// ParseError captures information on errors when parsing.
type ParseError struct {
	msg        string
	expected   bool
	token      token
	before     token
	parentType JSONType
	key        string
	cause      error
}

// newParseError reports that after was found where msg was expected.
func newParseError(msg string, before, after token, p *parser) *ParseError {
	parent, key := p.context()
	return &ParseError{
		msg:        msg,
		expected:   true,
		before:     before,
		token:      after,
		parentType: parent,
		key:        key,
	}
}

// newSyntaxError reports a malformed token t.
func newSyntaxError(msg string, t token, cause error) *ParseError {
	return &ParseError{
		msg:   msg,
		token: t,
		cause: cause,
	}
}

func (e *ParseError) Error() string {
	if !e.expected {
		where := fmt.Sprintf("line %d, column %d", e.token.Position[0], e.token.Position[1])
		if e.cause != nil {
			return fmt.Sprintf("%s: %s: %v", where, e.msg, e.cause)
		}
		return fmt.Sprintf("%s: %s", where, e.msg)
	}
	if e.before == (token{}) {
		return fmt.Sprintf("%s; expected %s", e.token.Error(), e.msg)
	}
	if e.parentType == Error {
		return fmt.Sprintf("%s; expected %s after %s",
			e.token.Error(), e.msg, e.before.String())
	}
	if e.key == "" {
		return fmt.Sprintf("%s; expected %s after %s (in %s)",
			e.token.Error(), e.msg, e.before.String(), e.parentType)
	}
	return fmt.Sprintf("%s; expected %s after %s (at %q in %s)",
		e.token.Error(), e.msg, e.before.String(), e.key, e.parentType)
}

// Where returns the line and column where the syntax error occurred.
// Both start at 1.
func (e *ParseError) Where() (row, col int) {
	return e.token.Position[0], e.token.Position[1]
}

// Unwrap returns the error that made a token invalid, such as
// ErrInvalidDecimal or ErrMaxDepth, or nil.
func (e *ParseError) Unwrap() error {
	return e.cause
}
