package cfgconv

import "github.com/KimNorgaard/go-cfgconv/value"

// Parser converts a single value that is known to be present into a T.
//
// Parsers are immutable and safe for concurrent use. Composition is
// strictly left to right: the order in which parsers run determines both
// the order of diagnostics and, for Or, which result wins.
type Parser[T any] struct {
	typ Type
	run func(value.Value) Result[T]
}

// New returns a Parser for target type typ that runs fn.
func New[T any](typ Type, fn func(value.Value) Result[T]) Parser[T] {
	return Parser[T]{typ: typ, run: fn}
}

// Type returns the target type descriptor used in diagnostics.
func (p Parser[T]) Type() Type { return p.typ }

// Named returns a copy of p that reports typ in diagnostics.
func (p Parser[T]) Named(typ Type) Parser[T] {
	p.typ = typ
	return p
}

// Parse runs p on v.
func (p Parser[T]) Parse(v value.Value) Result[T] {
	return p.run(v)
}

// Run runs p on v and returns the payload, whether there is one, and every
// diagnostic in the order produced.
func (p Parser[T]) Run(v value.Value) (T, bool, ErrorList) {
	r := p.run(v)
	out, ok := r.Get()
	return out, ok, r.errs.List()
}

// Or returns a parser that tries p and falls back to q.
//
// If p succeeds, its result is returned and q is never run. If p fails
// silently, q's result is returned as is. If p fails with diagnostics, q
// runs: when q succeeds its result is returned as is and p's diagnostics
// are dropped; when q fails too, the diagnostics of both are joined, p's
// first.
func (p Parser[T]) Or(q Parser[T]) Parser[T] {
	return New(p.typ, func(v value.Value) Result[T] {
		return orElse(p.run(v), func() Result[T] { return q.run(v) })
	})
}

// Check returns a parser that passes each payload of p to validate and
// rejects it, as Reject does, when validate returns an error.
func (p Parser[T]) Check(validate func(T) error) Parser[T] {
	return Bind(p, func(t T) Parser[T] {
		if err := validate(t); err != nil {
			return reject[T](p.typ, err.Error())
		}
		return Pure(t)
	})
}

// OneOf tries each parser in turn with the fallback rules of Or. With no
// parsers it fails silently.
func OneOf[T any](ps ...Parser[T]) Parser[T] {
	if len(ps) == 0 {
		return Empty[T]()
	}
	p := ps[0]
	for _, q := range ps[1:] {
		p = p.Or(q)
	}
	return p
}

// Bind runs p and then the parser f chooses from p's payload, on the same
// value.
//
// If p fails, its diagnostics are returned and f is never called. If p
// succeeds cleanly, the second parser's result is returned as is. If p
// succeeds with diagnostics, the second parser runs regardless and its
// diagnostics are appended to p's.
func Bind[A, B any](p Parser[A], f func(A) Parser[B]) Parser[B] {
	return New(p.typ, func(v value.Value) Result[B] {
		return andThen(p.run(v), func(a A) Result[B] { return f(a).run(v) })
	})
}

// Map applies f to the payload of p.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return New(p.typ, func(v value.Value) Result[B] {
		return andThen(p.run(v), func(a A) Result[B] { return Ok(f(a), Errors{}) })
	})
}

// Pair holds the payloads of two sequenced parsers.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Both runs p and then q on the same value and pairs their payloads.
func Both[A, B any](p Parser[A], q Parser[B]) Parser[Pair[A, B]] {
	typ := "(" + p.typ + ", " + q.typ + ")"
	return Bind(p, func(a A) Parser[Pair[A, B]] {
		return Map(q, func(b B) Pair[A, B] { return Pair[A, B]{First: a, Second: b} })
	}).Named(typ)
}

// Pure returns a parser that succeeds with v without diagnostics and
// ignores its input.
func Pure[T any](v T) Parser[T] {
	return New("", func(value.Value) Result[T] { return Ok(v, Errors{}) })
}

// Empty returns a parser that fails silently. It is the identity of Or.
func Empty[T any]() Parser[T] {
	return New("", func(value.Value) Result[T] { return Failed[T](Errors{}) })
}

// Reject returns a parser that fails with a single UserFail diagnostic
// carrying msg. It signals a value that parsed structurally but is not
// acceptable.
func Reject[T any](msg string) Parser[T] {
	return reject[T]("", msg)
}

func reject[T any](typ Type, msg string) Parser[T] {
	return New(typ, func(v value.Value) Result[T] {
		return Failed[T](Single(ConversionError{
			Location: "Reject",
			Kind:     UserFail,
			Value:    v,
			Type:     typ,
			Message:  msg,
		}))
	})
}
