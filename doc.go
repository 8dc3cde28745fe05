/*
Package json5parser_airp decodes JSON5 into an immutable value tree.

JSON5 is a superset of JSON that allows comments, trailing commas,
unquoted keys, single-quoted strings and more number forms. airp keeps
every number exact: a literal is never converted to float64 but split
into sign, coefficient and exponent (see Decimal), so 0.1 stays 1e-1 and
a 50 digit integer keeps all of its digits.

Infinity and NaN have no exact decimal form and are rejected with a
ParseError.

Nested arrays and objects are parsed with an explicit stack. Deep input
does not grow the goroutine stack; Parser.MaxDepth bounds it if needed.
*/
package json5parser_airp // import "github.com/d1ced/json5parser_airp"
