// Package value defines the configuration value tree consumed by cfgconv.
//
// A Value is one of exactly four variants: Bool, Number, Text and List.
// Values are immutable once constructed and may be shared freely.
package value

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"
)

// Kind identifies the variant of a Value.
type Kind int

const (
	BoolKind   Kind = iota // true or false
	NumberKind             // arbitrary-precision decimal
	TextKind               // UTF-8 text
	ListKind               // ordered list of values
)

func (k Kind) String() string {
	switch k {
	case BoolKind:
		return "bool"
	case NumberKind:
		return "number"
	case TextKind:
		return "text"
	case ListKind:
		return "list"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a node of a configuration value tree. The set of implementations
// is closed: Bool, Number, Text and List.
type Value interface {
	// Kind returns the variant of the value.
	Kind() Kind
	// String returns the value in literal syntax, as accepted by Parse.
	String() string

	isValue()
}

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind { return BoolKind }
func (Bool) isValue()   {}
func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}

// Text is a string value.
type Text string

func (Text) Kind() Kind       { return TextKind }
func (Text) isValue()         {}
func (t Text) String() string { return quote(string(t)) }

// quote renders s as a double-quoted literal using only the escapes Parse
// understands.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			// Invalid UTF-8 decodes as utf8.RuneError and is written as \uFFFD.
			if r < 0x20 || r == 0x7F || r == utf8.RuneError {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// List is an ordered sequence of values.
type List []Value

func (List) Kind() Kind { return ListKind }
func (List) isValue()   {}
func (l List) String() string {
	elements := make([]string, 0, len(l))
	for _, el := range l {
		elements = append(elements, el.String())
	}
	return "[" + strings.Join(elements, ", ") + "]"
}

// Number is an arbitrary-precision decimal value.
type Number struct {
	d *apd.Decimal // never mutated after construction
}

// NewNumber returns a Number holding a copy of d.
func NewNumber(d *apd.Decimal) Number {
	return Number{d: new(apd.Decimal).Set(d)}
}

// Int returns a Number holding i.
func Int(i int64) Number {
	return Number{d: apd.New(i, 0)}
}

// ParseNumber parses a decimal literal such as "42", "-3.50" or "1e9".
func ParseNumber(s string) (Number, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Number{}, fmt.Errorf("value: invalid number %q: %w", s, err)
	}
	if d.Form != apd.Finite {
		return Number{}, fmt.Errorf("value: invalid number %q: not finite", s)
	}
	return Number{d: d}, nil
}

// MustNumber is like ParseNumber but panics if s is not a valid number.
func MustNumber(s string) Number {
	n, err := ParseNumber(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (Number) Kind() Kind { return NumberKind }
func (Number) isValue()   {}

func (n Number) String() string {
	if n.d == nil {
		return "0"
	}
	return n.d.String()
}

// Decimal returns a copy of the number's decimal.
func (n Number) Decimal() *apd.Decimal {
	if n.d == nil {
		return new(apd.Decimal)
	}
	return new(apd.Decimal).Set(n.d)
}

// Cmp compares n and m numerically and returns -1, 0 or +1.
func (n Number) Cmp(m Number) int {
	return n.decimal().Cmp(m.decimal())
}

func (n Number) decimal() *apd.Decimal {
	if n.d == nil {
		return new(apd.Decimal)
	}
	return n.d
}

// Equal reports whether a and b are the same tree. Numbers compare by
// numeric value, so 3.0 equals 3.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case Text:
		b, ok := b.(Text)
		return ok && a == b
	case Number:
		b, ok := b.(Number)
		return ok && a.Cmp(b) == 0
	case List:
		b, ok := b.(List)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	}
	return false
}

// Describe returns a short human readable description of v, such as
// `number 300` or `list of 3 elements`.
func Describe(v Value) string {
	switch v := v.(type) {
	case nil:
		return "nothing"
	case List:
		if len(v) == 1 {
			return "list of 1 element"
		}
		return fmt.Sprintf("list of %d elements", len(v))
	default:
		return v.Kind().String() + " " + v.String()
	}
}
