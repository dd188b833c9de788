package cfgconv

import (
	"math/big"
	"strconv"
	"time"
	"unicode/utf8"
	"unsafe"

	"github.com/KimNorgaard/go-cfgconv/value"
	"github.com/cockroachdb/apd/v3"
)

// maxIntegerDigits bounds the size of integers BigInt will expand from an
// exponent, so that 1e99999 stays cheap to reject.
const maxIntegerDigits = 1 << 16

// Bool decodes a boolean.
func Bool() Parser[bool] {
	return New("bool", func(v value.Value) Result[bool] {
		b, ok := v.(value.Bool)
		if !ok {
			return Failed[bool](Single(typeMismatch("Bool", v, "bool", value.BoolKind)))
		}
		return Ok(bool(b), Errors{})
	})
}

// String decodes a text value.
func String() Parser[string] {
	return New("string", func(v value.Value) Result[string] {
		t, ok := v.(value.Text)
		if !ok {
			return Failed[string](Single(typeMismatch("String", v, "string", value.TextKind)))
		}
		return Ok(string(t), Errors{})
	})
}

// Rune decodes a text value holding exactly one code point.
func Rune() Parser[rune] {
	return New("rune", func(v value.Value) Result[rune] {
		t, ok := v.(value.Text)
		if !ok {
			return Failed[rune](Single(typeMismatch("Rune", v, "rune", value.TextKind)))
		}
		if utf8.RuneCountInString(string(t)) != 1 {
			return Failed[rune](Single(valueError("Rune", v, "rune", "expecting exactly one character")))
		}
		r, size := utf8.DecodeRuneInString(string(t))
		if r == utf8.RuneError && size == 1 {
			return Failed[rune](Single(valueError("Rune", v, "rune", "invalid UTF-8")))
		}
		return Ok(r, Errors{})
	})
}

// Decimal decodes a number as is. The result is a copy the caller owns.
func Decimal() Parser[*apd.Decimal] {
	return New("decimal", func(v value.Value) Result[*apd.Decimal] {
		n, ok := v.(value.Number)
		if !ok {
			return Failed[*apd.Decimal](Single(typeMismatch("Decimal", v, "decimal", value.NumberKind)))
		}
		return Ok(n.Decimal(), Errors{})
	})
}

// BigInt decodes a number with no fractional part into an arbitrary
// precision integer. Trailing fractional zeros are accepted, so 3.0
// decodes as 3.
func BigInt() Parser[*big.Int] {
	return New("bigint", func(v value.Value) Result[*big.Int] {
		n, ok := v.(value.Number)
		if !ok {
			return Failed[*big.Int](Single(typeMismatch("BigInt", v, "bigint", value.NumberKind)))
		}
		i, ce, ok := integral("BigInt", n, "bigint", maxIntegerDigits)
		if !ok {
			return Failed[*big.Int](Single(ce))
		}
		return Ok(i, Errors{})
	})
}

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Int decodes a number into an int.
func Int() Parser[int] { return boundedInt[int]("Int", "int") }

// Int8 decodes a number into an int8.
func Int8() Parser[int8] { return boundedInt[int8]("Int8", "int8") }

// Int16 decodes a number into an int16.
func Int16() Parser[int16] { return boundedInt[int16]("Int16", "int16") }

// Int32 decodes a number into an int32.
func Int32() Parser[int32] { return boundedInt[int32]("Int32", "int32") }

// Int64 decodes a number into an int64.
func Int64() Parser[int64] { return boundedInt[int64]("Int64", "int64") }

// Uint decodes a number into a uint.
func Uint() Parser[uint] { return boundedInt[uint]("Uint", "uint") }

// Uint8 decodes a number into a uint8.
func Uint8() Parser[uint8] { return boundedInt[uint8]("Uint8", "uint8") }

// Uint16 decodes a number into a uint16.
func Uint16() Parser[uint16] { return boundedInt[uint16]("Uint16", "uint16") }

// Uint32 decodes a number into a uint32.
func Uint32() Parser[uint32] { return boundedInt[uint32]("Uint32", "uint32") }

// Uint64 decodes a number into a uint64.
func Uint64() Parser[uint64] { return boundedInt[uint64]("Uint64", "uint64") }

// boundedInt decodes a number into T. A fractional number is reported as
// "not an integer" and one outside T's range as "overflow", both as
// ValueError.
func boundedInt[T integer](loc string, typ Type) Parser[T] {
	lo, hi := integerBounds[T]()
	return New(typ, func(v value.Value) Result[T] {
		n, ok := v.(value.Number)
		if !ok {
			return Failed[T](Single(typeMismatch(loc, v, typ, value.NumberKind)))
		}
		// 64-bit values have at most 20 digits; anything longer overflows
		// and need not be expanded.
		i, ce, ok := integral(loc, n, typ, 21)
		if !ok {
			return Failed[T](Single(ce))
		}
		if i.Cmp(lo) < 0 || i.Cmp(hi) > 0 {
			return Failed[T](Single(valueError(loc, v, typ, "overflow")))
		}
		if lo.Sign() < 0 {
			return Ok(T(i.Int64()), Errors{})
		}
		return Ok(T(i.Uint64()), Errors{})
	})
}

func integerBounds[T integer]() (lo, hi *big.Int) {
	var zero T
	bits := uint(unsafe.Sizeof(zero)) * 8
	one := big.NewInt(1)
	if ^zero < 0 {
		hi = new(big.Int).Lsh(one, bits-1)
		lo = new(big.Int).Neg(hi)
		hi.Sub(hi, one)
		return lo, hi
	}
	hi = new(big.Int).Lsh(one, bits)
	hi.Sub(hi, one)
	return new(big.Int), hi
}

// integral converts n to an integer. Numbers whose reduced form still has a
// negative exponent are not integers. Numbers with more than maxDigits
// digits are reported as overflow.
func integral(loc string, n value.Number, typ Type, maxDigits int64) (*big.Int, ConversionError, bool) {
	d := n.Decimal()
	if d.Form != apd.Finite {
		return nil, valueError(loc, n, typ, "not an integer"), false
	}
	if d.IsZero() {
		return new(big.Int), ConversionError{}, true
	}
	d.Reduce(d)
	if d.Exponent < 0 {
		return nil, valueError(loc, n, typ, "not an integer"), false
	}
	if d.NumDigits()+int64(d.Exponent) > maxDigits {
		return nil, valueError(loc, n, typ, "overflow"), false
	}
	i, ok := new(big.Int).SetString(d.Text('f'), 10)
	if !ok {
		return nil, valueError(loc, n, typ, "not an integer"), false
	}
	return i, ConversionError{}, true
}

// Float64 decodes a number into the nearest float64. Numbers beyond the
// float64 range are reported as "overflow".
func Float64() Parser[float64] {
	return floatParser[float64]("Float64", "float64", 64)
}

// Float32 decodes a number into the nearest float32. Numbers beyond the
// float32 range are reported as "overflow".
func Float32() Parser[float32] {
	return floatParser[float32]("Float32", "float32", 32)
}

func floatParser[T float32 | float64](loc string, typ Type, bitSize int) Parser[T] {
	return New(typ, func(v value.Value) Result[T] {
		n, ok := v.(value.Number)
		if !ok {
			return Failed[T](Single(typeMismatch(loc, v, typ, value.NumberKind)))
		}
		f, err := strconv.ParseFloat(n.String(), bitSize)
		if err != nil {
			return Failed[T](Single(valueError(loc, v, typ, "overflow")))
		}
		return Ok(T(f), Errors{})
	})
}

// Duration decodes a text value such as "1m30s" with time.ParseDuration.
func Duration() Parser[time.Duration] {
	return New("duration", func(v value.Value) Result[time.Duration] {
		t, ok := v.(value.Text)
		if !ok {
			return Failed[time.Duration](Single(typeMismatch("Duration", v, "duration", value.TextKind)))
		}
		d, err := time.ParseDuration(string(t))
		if err != nil {
			return Failed[time.Duration](Single(valueError("Duration", v, "duration", err.Error())))
		}
		return Ok(d, Errors{})
	})
}

// SliceOf decodes a list whose elements all decode with p. Every element
// is decoded, so the result carries the diagnostics of every bad element,
// in list order; the parse fails if any element failed.
func SliceOf[T any](p Parser[T]) Parser[[]T] {
	typ := "list(" + p.typ + ")"
	return New(typ, func(v value.Value) Result[[]T] {
		list, ok := v.(value.List)
		if !ok {
			return Failed[[]T](Single(typeMismatch("SliceOf", v, typ, value.ListKind)))
		}
		out := make([]T, 0, len(list))
		var errs Errors
		failed := false
		for _, el := range list {
			r := p.run(el)
			errs = errs.Concat(r.errs)
			x, ok := r.Get()
			if !ok {
				failed = true
				continue
			}
			out = append(out, x)
		}
		if failed {
			return Failed[[]T](errs)
		}
		return Ok(out, errs)
	})
}
