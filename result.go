package cfgconv

import "github.com/KimNorgaard/go-cfgconv/value"

// Result is the outcome of a Parser or OptionalParser: an optional payload
// and the diagnostics produced on the way. A failed result may carry no
// diagnostics (a silent failure such as an absent optional value), and a
// successful result may carry non-fatal ones.
type Result[T any] struct {
	value T
	ok    bool
	errs  Errors
}

// Ok returns a successful result carrying v and errs.
func Ok[T any](v T, errs Errors) Result[T] {
	return Result[T]{value: v, ok: true, errs: errs}
}

// Failed returns a failed result carrying errs.
func Failed[T any](errs Errors) Result[T] {
	return Result[T]{errs: errs}
}

// Get returns the payload and whether there is one.
func (r Result[T]) Get() (T, bool) { return r.value, r.ok }

// OK reports whether r carries a payload.
func (r Result[T]) OK() bool { return r.ok }

// Errors returns the accumulated diagnostics.
func (r Result[T]) Errors() Errors { return r.errs }

// Diagnostics returns the diagnostics as a flat list.
func (r Result[T]) Diagnostics() ErrorList { return r.errs.List() }

// Outcome tags the result of a ListParser.
type Outcome int

const (
	// NotAList means the input was not of list shape.
	NotAList Outcome = iota
	// Exhausted means the list ran out of elements or an element failed
	// to decode.
	Exhausted
	// Parsed means decoding succeeded.
	Parsed
)

func (o Outcome) String() string {
	switch o {
	case NotAList:
		return "not a list"
	case Exhausted:
		return "exhausted or mismatched"
	case Parsed:
		return "parsed"
	}
	return "Outcome(?)"
}

// ListResult is the outcome of a ListParser. On success it carries the
// payload and the elements that were not consumed.
type ListResult[T any] struct {
	outcome Outcome
	value   T
	rest    []value.Value
	errs    Errors
}

// ListOk returns a successful list result carrying v and the unconsumed
// elements rest.
func ListOk[T any](v T, rest []value.Value, errs Errors) ListResult[T] {
	return ListResult[T]{outcome: Parsed, value: v, rest: rest, errs: errs}
}

// ListFailed returns a failed list result. o must be NotAList or Exhausted.
func ListFailed[T any](o Outcome, errs Errors) ListResult[T] {
	if o == Parsed {
		panic("cfgconv: ListFailed called with Parsed outcome")
	}
	return ListResult[T]{outcome: o, errs: errs}
}

// Outcome returns the tag of r.
func (r ListResult[T]) Outcome() Outcome { return r.outcome }

// Get returns the payload, the unconsumed elements and whether decoding
// succeeded.
func (r ListResult[T]) Get() (T, []value.Value, bool) {
	return r.value, r.rest, r.outcome == Parsed
}

// Errors returns the accumulated diagnostics.
func (r ListResult[T]) Errors() Errors { return r.errs }

// andThen sequences a result with the next step. A failure short-circuits
// with its diagnostics. A clean success hands over to next verbatim. A
// success with diagnostics always runs next and prepends its diagnostics
// to next's.
func andThen[A, B any](r Result[A], next func(A) Result[B]) Result[B] {
	a, ok := r.Get()
	if !ok {
		return Failed[B](r.errs)
	}
	n := next(a)
	if r.errs.Empty() {
		return n
	}
	n.errs = r.errs.Concat(n.errs)
	return n
}

// orElse implements fallback. A success is kept and next never runs. After
// a failure next runs; its result is returned verbatim if the failure was
// silent or next succeeded, and otherwise both diagnostic sets are joined.
func orElse[T any](r Result[T], next func() Result[T]) Result[T] {
	if r.ok {
		return r
	}
	n := next()
	if r.errs.Empty() || n.ok {
		return n
	}
	return Failed[T](r.errs.Concat(n.errs))
}

func andThenList[A, B any](r ListResult[A], next func(A, []value.Value) ListResult[B]) ListResult[B] {
	a, rest, ok := r.Get()
	if !ok {
		return ListResult[B]{outcome: r.outcome, errs: r.errs}
	}
	n := next(a, rest)
	if r.errs.Empty() {
		return n
	}
	n.errs = r.errs.Concat(n.errs)
	return n
}

func orElseList[T any](r ListResult[T], next func() ListResult[T]) ListResult[T] {
	if r.outcome == Parsed {
		return r
	}
	n := next()
	if r.errs.Empty() || n.outcome == Parsed {
		return n
	}
	return ListResult[T]{outcome: n.outcome, errs: r.errs.Concat(n.errs)}
}
