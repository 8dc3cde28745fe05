package json5parser_airp

import "fmt"

type tokenType uint8

const (
	errToken tokenType = iota
	eofToken
	nullToken
	trueToken
	falseToken
	numberToken
	stringToken
	identToken
	commaToken
	colonToken
	arrayOToken
	arrayCToken
	objectOToken
	objectCToken
)

// token is one lexeme. Value holds the decoded text of strings and
// identifiers, the verbatim literal of numbers, the keyword of null, true
// and false and the description of lexing errors.
// Position is line and column, both starting at 1.
type token struct {
	Type     tokenType
	Value    string
	Position [2]int
}

func newToken(r rune) token {
	var t token
	switch r {
	case '{':
		t.Type = objectOToken
	case '}':
		t.Type = objectCToken
	case '[':
		t.Type = arrayOToken
	case ']':
		t.Type = arrayCToken
	case ':':
		t.Type = colonToken
	case ',':
		t.Type = commaToken
	default:
		t.Value = string(r)
	}
	return t
}

// String generates a readable form of a token for error messages.
func (t token) String() string {
	switch t.Type {
	case errToken:
		return "invalid input"
	case eofToken:
		return "end of input"
	case nullToken:
		return "'null'"
	case trueToken:
		return "'true'"
	case falseToken:
		return "'false'"
	case numberToken:
		return "number " + t.Value
	case stringToken:
		return fmt.Sprintf("string %q", t.Value)
	case identToken:
		return "identifier " + t.Value
	case commaToken:
		return "','"
	case colonToken:
		return "':'"
	case arrayOToken:
		return "'['"
	case arrayCToken:
		return "']'"
	case objectOToken:
		return "'{'"
	case objectCToken:
		return "'}'"
	default:
		return "unknown token"
	}
}

// Error describes where a token was found.
func (t token) Error() string {
	return fmt.Sprintf("line %d, column %d: found %s",
		t.Position[0], t.Position[1], t.String())
}
