package json5parser_airp

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrInvalidDecimal is returned when a numeric text does not match the
// decimal grammar.
var ErrInvalidDecimal = errors.New("Invalid decimal")

// ErrExponentRange signals that an exponent does not fit the target type.
var ErrExponentRange = errors.New("exponent out of range")

var bigTen = big.NewInt(10)

// Decimal is an exact decimal number with the value
//     sign * coefficient * 10^exponent
// The coefficient is never negative and the sign is 1 or -1. Zero always
// has sign 1. The zero value of Decimal is the number 0.
type Decimal struct {
	coef *big.Int
	exp  int64
	neg  bool
}

func newDecimal(coef *big.Int, exp int64, neg bool) Decimal {
	if coef.Sign() == 0 {
		neg = false
	}
	return Decimal{coef: coef, exp: exp, neg: neg}
}

// FromInt64 creates a Decimal with exponent 0 holding i.
func FromInt64(i int64) Decimal {
	c := new(big.Int).SetInt64(i)
	return newDecimal(c.Abs(c), 0, i < 0)
}

// FromBigInt creates the Decimal v * 10^exp. v is copied.
func FromBigInt(v *big.Int, exp int64) Decimal {
	if v == nil {
		return Decimal{exp: exp}
	}
	c := new(big.Int).Abs(v)
	return newDecimal(c, exp, v.Sign() < 0)
}

// Normalize decomposes a numeric text into sign, coefficient and exponent.
// It accepts an optional sign followed by either a hexadecimal integer
// (0x1F) or a decimal with optional fraction and exponent (1, 1.50, .5,
// 5., 1e-3). Digits after the decimal point are kept as scale, so
// "123.450" yields coefficient 123450 and exponent -3.
func Normalize(text string) (Decimal, error) {
	d, ok := normalize(text)
	if !ok {
		return Decimal{}, ErrInvalidDecimal
	}
	return d, nil
}

func normalize(s string) (Decimal, bool) {
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		hex := s[2:]
		if !allDigits(hex, isHexDigit) {
			return Decimal{}, false
		}
		c, ok := new(big.Int).SetString(hex, 16)
		if !ok {
			return Decimal{}, false
		}
		return newDecimal(c, 0, neg), true
	}

	mant, exp := s, int64(0)
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		e := s[i+1:]
		digits := e
		if digits != "" && (digits[0] == '+' || digits[0] == '-') {
			digits = digits[1:]
		}
		if digits == "" || !allDigits(digits, isDigit) {
			return Decimal{}, false
		}
		var err error
		if exp, err = strconv.ParseInt(e, 10, 64); err != nil {
			return Decimal{}, false
		}
		mant = s[:i]
	}
	intPart, frac := mant, ""
	if i := strings.IndexByte(mant, '.'); i >= 0 {
		intPart, frac = mant[:i], mant[i+1:]
	}
	if intPart == "" && frac == "" {
		return Decimal{}, false
	}
	if !allDigits(intPart, isDigit) || !allDigits(frac, isDigit) {
		return Decimal{}, false
	}
	scale := int64(len(frac))
	if exp < math.MinInt64+scale {
		return Decimal{}, false
	}
	c, ok := new(big.Int).SetString(intPart+frac, 10)
	if !ok {
		return Decimal{}, false
	}
	return newDecimal(c, exp-scale, neg), true
}

// Sign returns 1 or -1.
func (d Decimal) Sign() int8 {
	if d.neg {
		return -1
	}
	return 1
}

// Coefficient returns a copy of the non-negative coefficient.
func (d Decimal) Coefficient() *big.Int {
	if d.coef == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(d.coef)
}

// Exponent returns the power of ten the coefficient is scaled by.
func (d Decimal) Exponent() int64 {
	return d.exp
}

// IsZero reports whether d is 0 regardless of its exponent.
func (d Decimal) IsZero() bool {
	return d.coef == nil || d.coef.Sign() == 0
}

// IsInteger reports whether d has no fractional part.
func (d Decimal) IsInteger() bool {
	if d.exp >= 0 || d.IsZero() {
		return true
	}
	s := d.coef.Text(10)
	zeros := len(s) - len(strings.TrimRight(s, "0"))
	return int64(zeros) >= -d.exp
}

// Rat reconstructs the exact value of d.
// The cost grows with the magnitude of the exponent.
func (d Decimal) Rat() *big.Rat {
	r := new(big.Rat).SetInt(d.Coefficient())
	if d.exp != 0 {
		e := d.exp
		if e < 0 {
			e = -e
		}
		p := new(big.Int).Exp(bigTen, new(big.Int).SetUint64(uint64(e)), nil)
		if d.exp > 0 {
			r.Mul(r, new(big.Rat).SetInt(p))
		} else {
			r.Quo(r, new(big.Rat).SetInt(p))
		}
	}
	if d.neg {
		r.Neg(r)
	}
	return r
}

// Cmp compares the numeric values of d and o and returns -1, 0 or +1.
func (d Decimal) Cmp(o Decimal) int {
	ds, xs := d.signum(), o.signum()
	switch {
	case ds < xs:
		return -1
	case ds > xs:
		return 1
	case ds == 0:
		return 0
	}
	c := cmpAbs(d, o)
	if ds < 0 {
		return -c
	}
	return c
}

// Equal reports whether d and o are numerically equal; 1.50 equals 1.5.
func (d Decimal) Equal(o Decimal) bool {
	return d.Cmp(o) == 0
}

// Identical reports whether d and o have the same sign, coefficient and
// exponent.
func (d Decimal) Identical(o Decimal) bool {
	return d.neg == o.neg && d.exp == o.exp && d.Coefficient().Cmp(o.Coefficient()) == 0
}

func (d Decimal) signum() int {
	if d.IsZero() {
		return 0
	}
	if d.neg {
		return -1
	}
	return 1
}

// cmpAbs compares the magnitudes of two non-zero decimals. The adjusted
// exponents (digit count + exponent) decide first so that no power of ten
// larger than the coefficients is ever built.
func cmpAbs(a, b Decimal) int {
	ad, bd := int64(len(a.coef.Text(10))), int64(len(b.coef.Text(10)))
	aAdj := new(big.Int).Add(big.NewInt(a.exp), big.NewInt(ad))
	bAdj := new(big.Int).Add(big.NewInt(b.exp), big.NewInt(bd))
	if c := aAdj.Cmp(bAdj); c != 0 {
		return c
	}
	// equal adjusted exponents: the exponent gap equals the digit gap
	x, y := new(big.Int).Set(a.coef), new(big.Int).Set(b.coef)
	switch {
	case a.exp > b.exp:
		x.Mul(x, new(big.Int).Exp(bigTen, big.NewInt(bd-ad), nil))
	case b.exp > a.exp:
		y.Mul(y, new(big.Int).Exp(bigTen, big.NewInt(ad-bd), nil))
	}
	return x.Cmp(y)
}

// String formats d as [-]<coefficient>[e<exponent>], for example
// "123450e-3". The output is accepted by Normalize and yields an
// identical Decimal.
func (d Decimal) String() string {
	b := &strings.Builder{}
	if d.neg {
		b.WriteByte('-')
	}
	b.WriteString(d.Coefficient().String())
	if d.exp != 0 {
		b.WriteByte('e')
		b.WriteString(strconv.FormatInt(d.exp, 10))
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Normalize.
func (d *Decimal) UnmarshalText(text []byte) error {
	v, err := Normalize(string(text))
	if err != nil {
		return errors.Wrapf(err, "decimal %q", text)
	}
	*d = v
	return nil
}

// Shopspring converts d into a shopspring decimal for arithmetic.
// It fails when the exponent does not fit into an int32.
func (d Decimal) Shopspring() (decimal.Decimal, error) {
	if d.exp < math.MinInt32 || d.exp > math.MaxInt32 {
		return decimal.Decimal{}, errors.Wrapf(ErrExponentRange, "exponent %d", d.exp)
	}
	c := d.Coefficient()
	if d.neg {
		c.Neg(c)
	}
	return decimal.NewFromBigInt(c, int32(d.exp)), nil
}

// FromShopspring converts a shopspring decimal without loss.
func FromShopspring(v decimal.Decimal) Decimal {
	return FromBigInt(v.Coefficient(), int64(v.Exponent()))
}

func allDigits(s string, ok func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if !ok(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F'
}
