package cfgconv

import (
	"fmt"

	"github.com/KimNorgaard/go-cfgconv/value"
)

// ListParser decodes a fixed shape from an ordered list of values,
// consuming elements from the front and passing the unconsumed remainder to
// the next step.
type ListParser[T any] struct {
	typ Type
	run func([]value.Value) ListResult[T]
}

// NewList returns a ListParser for target type typ that runs fn.
func NewList[T any](typ Type, fn func([]value.Value) ListResult[T]) ListParser[T] {
	return ListParser[T]{typ: typ, run: fn}
}

// Type returns the target type descriptor used in diagnostics.
func (lp ListParser[T]) Type() Type { return lp.typ }

// Named returns a copy of lp that reports typ in diagnostics.
func (lp ListParser[T]) Named(typ Type) ListParser[T] {
	lp.typ = typ
	return lp
}

// Parse runs lp on vs.
func (lp ListParser[T]) Parse(vs []value.Value) ListResult[T] {
	return lp.run(vs)
}

// Or returns a list parser that runs lp and falls back to q on the same
// elements. NotAList and Exhausted both count as failure; otherwise the
// rules of Parser.Or apply. When both fail with diagnostics the result
// carries q's outcome.
func (lp ListParser[T]) Or(q ListParser[T]) ListParser[T] {
	return NewList(lp.typ, func(vs []value.Value) ListResult[T] {
		return orElseList(lp.run(vs), func() ListResult[T] { return q.run(vs) })
	})
}

// Lenient promotes lp to a Parser that accepts a list value. Elements left
// over after lp succeeds are reported with an ExtraValues diagnostic, but
// the payload is kept.
func (lp ListParser[T]) Lenient() Parser[T] {
	return lp.promote("Lenient", false)
}

// Strict promotes lp to a Parser that accepts a list value. Elements left
// over after lp succeeds are reported with an ExtraValues diagnostic and
// the parse fails.
func (lp ListParser[T]) Strict() Parser[T] {
	return lp.promote("Strict", true)
}

func (lp ListParser[T]) promote(loc string, strict bool) Parser[T] {
	return New(lp.typ, func(v value.Value) Result[T] {
		list, ok := v.(value.List)
		if !ok {
			return Failed[T](Single(typeMismatch(loc, v, lp.typ, value.ListKind)))
		}
		r := lp.run(list)
		out, rest, parsed := r.Get()
		if !parsed {
			if !r.errs.Empty() {
				return Failed[T](r.errs)
			}
			// Running out of elements is structural; it becomes a
			// diagnostic only here, where the whole list is known.
			return Failed[T](Single(ConversionError{
				Location: loc,
				Kind:     ExhaustedValues,
				Value:    v,
				Type:     lp.typ,
				Message:  "not enough elements",
			}))
		}
		if len(rest) == 0 {
			return Ok(out, r.errs)
		}
		errs := r.errs.Concat(Single(ConversionError{
			Location: loc,
			Kind:     ExtraValues,
			Value:    v,
			Type:     lp.typ,
			Message:  fmt.Sprintf("%d unconsumed", len(rest)),
		}))
		if strict {
			return Failed[T](errs)
		}
		return Ok(out, errs)
	})
}

// Element consumes one element and decodes it with p. An empty list fails
// with Exhausted and no diagnostics; an element p rejects fails with
// Exhausted and p's diagnostics.
func Element[T any](p Parser[T]) ListParser[T] {
	return NewList(p.typ, func(vs []value.Value) ListResult[T] {
		if len(vs) == 0 {
			return ListFailed[T](Exhausted, Errors{})
		}
		r := p.run(vs[0])
		out, ok := r.Get()
		if !ok {
			return ListFailed[T](Exhausted, r.errs)
		}
		return ListOk(out, vs[1:], r.errs)
	})
}

// Nested consumes one element that must itself be a list and decodes it
// strictly with lp. An element that is not a list fails with NotAList.
func Nested[T any](lp ListParser[T]) ListParser[T] {
	inner := lp.Strict()
	return NewList(lp.typ, func(vs []value.Value) ListResult[T] {
		if len(vs) == 0 {
			return ListFailed[T](Exhausted, Errors{})
		}
		if _, ok := vs[0].(value.List); !ok {
			return ListFailed[T](NotAList, Single(typeMismatch("Nested", vs[0], lp.typ, value.ListKind)))
		}
		r := inner.run(vs[0])
		out, ok := r.Get()
		if !ok {
			return ListFailed[T](Exhausted, r.errs)
		}
		return ListOk(out, vs[1:], r.errs)
	})
}

// BindList runs lp and then the list parser f chooses from lp's payload on
// the elements lp left over, with the rules of Bind.
func BindList[A, B any](lp ListParser[A], f func(A) ListParser[B]) ListParser[B] {
	return NewList(lp.typ, func(vs []value.Value) ListResult[B] {
		return andThenList(lp.run(vs), func(a A, rest []value.Value) ListResult[B] {
			return f(a).run(rest)
		})
	})
}

// MapList applies f to the payload of lp.
func MapList[A, B any](lp ListParser[A], f func(A) B) ListParser[B] {
	return NewList(lp.typ, func(vs []value.Value) ListResult[B] {
		return andThenList(lp.run(vs), func(a A, rest []value.Value) ListResult[B] {
			return ListOk(f(a), rest, Errors{})
		})
	})
}

// PureList returns a list parser that succeeds with v and consumes
// nothing.
func PureList[T any](v T) ListParser[T] {
	return NewList("", func(vs []value.Value) ListResult[T] {
		return ListOk(v, vs, Errors{})
	})
}

// Many applies lp repeatedly, each time to the elements the previous
// application left over, and collects the payloads. It stops at the first
// failure and always succeeds; the diagnostics of that final failed
// attempt are dropped, as a fallback to an empty list drops them. It also
// stops after an application that consumes nothing.
func Many[T any](lp ListParser[T]) ListParser[[]T] {
	return NewList("list("+lp.typ+")", func(vs []value.Value) ListResult[[]T] {
		out := []T{}
		var errs Errors
		rest := vs
		for {
			r := lp.run(rest)
			v, next, ok := r.Get()
			if !ok {
				break
			}
			errs = errs.Concat(r.errs)
			out = append(out, v)
			progressed := len(next) < len(rest)
			rest = next
			if !progressed {
				break
			}
		}
		return ListOk(out, rest, errs)
	})
}

// Many1 is like Many but requires at least one application of lp to
// succeed; the first failure is returned as is.
func Many1[T any](lp ListParser[T]) ListParser[[]T] {
	return BindList(lp, func(first T) ListParser[[]T] {
		return MapList(Many(lp), func(more []T) []T {
			return append([]T{first}, more...)
		})
	}).Named("list(" + lp.typ + ")")
}
