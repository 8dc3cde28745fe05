package json5parser_airp

import (
	"io"
	"io/ioutil"
	"sort"

	"github.com/pkg/errors"
)

// ParseConfig holds parse options by name. No option is recognized yet;
// unknown keys are accepted and ignored. A nil ParseConfig is valid.
type ParseConfig map[string]interface{}

// recognizedOptions lists the ParseConfig keys the parser acts on.
var recognizedOptions = map[string]struct{}{}

// Recognized returns the sorted keys of c the parser acts on.
func (c ParseConfig) Recognized() []string {
	var ss []string
	for k := range c {
		if _, ok := recognizedOptions[k]; ok {
			ss = append(ss, k)
		}
	}
	sort.Strings(ss)
	return ss
}

// Parser parses JSON5 text. The zero value is ready to use.
type Parser struct {
	// MaxDepth limits the nesting of arrays and objects. Zero or less
	// means unlimited: nesting is then bounded by memory only.
	MaxDepth int
}

// Parse parses text as exactly one JSON5 value.
// The returned error is a *ParseError. config has no recognized options
// yet and does not change the result.
func (p Parser) Parse(text string, config ParseConfig) (Value, error) {
	return parse(text, p.MaxDepth)
}

// Parse parses text as exactly one JSON5 value without a nesting limit.
func Parse(text string, config ParseConfig) (Value, error) {
	return Parser{}.Parse(text, config)
}

// MakeDecimal decomposes a standalone numeric text. Any mismatch with the
// decimal grammar yields ErrInvalidDecimal.
func MakeDecimal(text string) (Decimal, error) {
	d, err := Normalize(text)
	if err != nil {
		return Decimal{}, ErrInvalidDecimal
	}
	return d, nil
}

// Valid reports whether data is a valid JSON5 encoding.
func Valid(data []byte) bool {
	_, err := parse(string(data), 0)
	return err == nil
}

// NewJSON5 reads r to the end and parses its content.
func NewJSON5(r io.Reader) (Value, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return Value{}, errors.Wrap(err, "reading JSON5 input")
	}
	return parse(string(data), 0)
}
