package cfgconv

import "github.com/KimNorgaard/go-cfgconv/value"

// OptionalParser converts a slot that may be absent into a T. Its input is
// the comma-ok pair returned by a lookup, so a document lookup can be
// passed straight through:
//
//	port, ok, errs := cfgconv.Required(cfgconv.Uint16()).Run(doc.Lookup("port"))
type OptionalParser[T any] struct {
	typ Type
	run func(v value.Value, ok bool) Result[T]
}

// NewOptional returns an OptionalParser for target type typ that runs fn.
func NewOptional[T any](typ Type, fn func(v value.Value, ok bool) Result[T]) OptionalParser[T] {
	return OptionalParser[T]{typ: typ, run: fn}
}

// Type returns the target type descriptor used in diagnostics.
func (op OptionalParser[T]) Type() Type { return op.typ }

// Parse runs op on the slot (v, ok). When ok is false, v is ignored.
func (op OptionalParser[T]) Parse(v value.Value, ok bool) Result[T] {
	if !ok {
		v = nil
	}
	return op.run(v, ok)
}

// Run runs op on the slot (v, ok) and returns the payload, whether there
// is one, and every diagnostic in the order produced.
func (op OptionalParser[T]) Run(v value.Value, ok bool) (T, bool, ErrorList) {
	r := op.Parse(v, ok)
	out, found := r.Get()
	return out, found, r.errs.List()
}

// Or returns an optional parser that tries op and falls back to q, with
// the rules of Parser.Or.
func (op OptionalParser[T]) Or(q OptionalParser[T]) OptionalParser[T] {
	return NewOptional(op.typ, func(v value.Value, ok bool) Result[T] {
		return orElse(op.run(v, ok), func() Result[T] { return q.run(v, ok) })
	})
}

// Optional lifts p to a slot that may be absent. An absent slot fails
// silently: no payload and no diagnostics. A present slot is handed to p.
func Optional[T any](p Parser[T]) OptionalParser[T] {
	return NewOptional(p.typ, func(v value.Value, ok bool) Result[T] {
		if !ok {
			return Failed[T](Errors{})
		}
		return p.run(v)
	})
}

// Required lifts p to a slot that must be present. An absent slot fails
// with a single MissingValue diagnostic naming p's type.
func Required[T any](p Parser[T]) OptionalParser[T] {
	return NewOptional(p.typ, func(v value.Value, ok bool) Result[T] {
		if !ok {
			return Failed[T](Single(ConversionError{
				Location: "Required",
				Kind:     MissingValue,
				Type:     p.typ,
			}))
		}
		return p.run(v)
	})
}

// Default lifts p to a slot that yields def when absent. A present slot
// is handed to p, and its diagnostics are kept even when p fails.
func Default[T any](p Parser[T], def T) OptionalParser[T] {
	return NewOptional(p.typ, func(v value.Value, ok bool) Result[T] {
		if !ok {
			return Ok(def, Errors{})
		}
		return p.run(v)
	})
}

// PureOptional returns an optional parser that succeeds with v whether or
// not the slot is present.
func PureOptional[T any](v T) OptionalParser[T] {
	return NewOptional("", func(value.Value, bool) Result[T] { return Ok(v, Errors{}) })
}

// BindOptional runs op and then the optional parser f chooses from op's
// payload, on the same slot, with the rules of Bind.
func BindOptional[A, B any](op OptionalParser[A], f func(A) OptionalParser[B]) OptionalParser[B] {
	return NewOptional(op.typ, func(v value.Value, ok bool) Result[B] {
		return andThen(op.run(v, ok), func(a A) Result[B] { return f(a).run(v, ok) })
	})
}

// MapOptional applies f to the payload of op.
func MapOptional[A, B any](op OptionalParser[A], f func(A) B) OptionalParser[B] {
	return NewOptional(op.typ, func(v value.Value, ok bool) Result[B] {
		return andThen(op.run(v, ok), func(a A) Result[B] { return Ok(f(a), Errors{}) })
	})
}
