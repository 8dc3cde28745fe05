package json5parser_airp

import "fmt"

// frame is an array or object whose closing token has not been read yet.
type frame struct {
	jsonType JSONType
	elems    []Value
	fields   map[string]Value
	key      string
}

// parser is a state machine creating a value tree from lexer tokens.
// Open arrays and objects are kept on an explicit stack instead of the
// call stack, so nesting is limited by memory or maxDepth only.
type parser struct {
	lex      *lexer
	stack    []frame
	root     Value
	prev     token
	maxDepth int
}

type parseFunc func(p *parser) (parseFunc, error)

// parse reads exactly one JSON5 value from data.
// maxDepth <= 0 disables the nesting limit.
func parse(data string, maxDepth int) (Value, error) {
	p := &parser{
		lex:      newLexer(data),
		maxDepth: maxDepth,
	}
	var err error
	for f := parseFunc(expectValue); f != nil && err == nil; f, err = f(p) {
	}
	if err != nil {
		return Value{}, err
	}
	return p.root, nil
}

func (p *parser) next() (token, error) {
	t := p.lex.next()
	if t.Type == errToken {
		return t, newSyntaxError(t.Value, t, nil)
	}
	return t, nil
}

func (p *parser) top() *frame {
	if len(p.stack) == 0 {
		return nil
	}
	return &p.stack[len(p.stack)-1]
}

// context returns the type of the innermost open container and the key
// currently being read in it.
func (p *parser) context() (JSONType, string) {
	f := p.top()
	if f == nil {
		return Error, ""
	}
	return f.jsonType, f.key
}

func (p *parser) push(t token, typ JSONType) error {
	if p.maxDepth > 0 && len(p.stack) >= p.maxDepth {
		return newSyntaxError(
			fmt.Sprintf("more than %d nested arrays or objects", p.maxDepth),
			t, ErrMaxDepth)
	}
	f := frame{jsonType: typ}
	if typ == Object {
		f.fields = make(map[string]Value)
	}
	p.stack = append(p.stack, f)
	return nil
}

// add stores v in the innermost open container or makes it the root.
// A repeated object key replaces the earlier value.
func (p *parser) add(v Value) {
	f := p.top()
	switch {
	case f == nil:
		p.root = v
	case f.jsonType == Array:
		f.elems = append(f.elems, v)
	default:
		f.fields[f.key] = v
		f.key = ""
	}
}

// pop closes the innermost container and adds it to its parent.
func (p *parser) pop() {
	n := len(p.stack) - 1
	f := p.stack[n]
	p.stack[n] = frame{}
	p.stack = p.stack[:n]
	if f.jsonType == Array {
		p.add(Value{jsonType: Array, arr: f.elems})
		return
	}
	p.add(Value{jsonType: Object, obj: f.fields})
}

// parseFunc's

func expectValue(p *parser) (parseFunc, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	defer func() { p.prev = t }()
	switch t.Type {
	case arrayCToken:
		// directly after '[' or after a trailing comma
		if f := p.top(); f != nil && f.jsonType == Array {
			p.pop()
			return expectDelim, nil
		}
	case numberToken:
		if nonFinite(t.Value) {
			return nil, newNonFiniteError(t)
		}
		d, err := Normalize(t.Value)
		if err != nil {
			return nil, newSyntaxError("invalid number "+t.Value, t, err)
		}
		p.add(Value{jsonType: Number, num: d})
		return expectDelim, nil
	case stringToken:
		p.add(Value{jsonType: String, str: t.Value})
		return expectDelim, nil
	case nullToken:
		p.add(Value{jsonType: Null})
		return expectDelim, nil
	case trueToken:
		p.add(Value{jsonType: Bool, b: true})
		return expectDelim, nil
	case falseToken:
		p.add(Value{jsonType: Bool, b: false})
		return expectDelim, nil
	case identToken:
		if nonFinite(t.Value) {
			return nil, newNonFiniteError(t)
		}
	case arrayOToken:
		if err := p.push(t, Array); err != nil {
			return nil, err
		}
		return expectValue, nil
	case objectOToken:
		if err := p.push(t, Object); err != nil {
			return nil, err
		}
		return expectKey, nil
	}
	return nil, newParseError("value", p.prev, t, p)
}

func expectKey(p *parser) (parseFunc, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	defer func() { p.prev = t }()
	switch t.Type {
	case objectCToken:
		// directly after '{' or after a trailing comma
		p.pop()
		return expectDelim, nil
	case stringToken, identToken, nullToken, trueToken, falseToken:
		p.top().key = t.Value
		return expectColon, nil
	}
	return nil, newParseError("key", p.prev, t, p)
}

func expectColon(p *parser) (parseFunc, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	defer func() { p.prev = t }()
	if t.Type != colonToken {
		return nil, newParseError("':'", p.prev, t, p)
	}
	return expectValue, nil
}

func expectDelim(p *parser) (parseFunc, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	defer func() { p.prev = t }()
	f := p.top()
	if f == nil {
		if t.Type == eofToken {
			return nil, nil // all OK!
		}
		return nil, newParseError("end of input", p.prev, t, p)
	}
	switch {
	case t.Type == commaToken && f.jsonType == Array:
		return expectValue, nil
	case t.Type == commaToken:
		return expectKey, nil
	case t.Type == arrayCToken && f.jsonType == Array,
		t.Type == objectCToken && f.jsonType == Object:
		p.pop()
		return expectDelim, nil
	case f.jsonType == Array:
		return nil, newParseError("',' or ']'", p.prev, t, p)
	default:
		return nil, newParseError("',' or '}'", p.prev, t, p)
	}
}

// helper functions

func nonFinite(lit string) bool {
	if lit != "" && (lit[0] == '+' || lit[0] == '-') {
		lit = lit[1:]
	}
	return lit == "Infinity" || lit == "NaN"
}

func newNonFiniteError(t token) *ParseError {
	return newSyntaxError(t.Value+" cannot be represented as an exact decimal", t, nil)
}
