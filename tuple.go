package cfgconv

import "strings"

// Triple holds three decoded elements.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Quad holds four decoded elements.
type Quad[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

func tupleType(types ...Type) Type {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return Type("tuple(" + strings.Join(names, ", ") + ")")
}

// Seq2 decodes the next two elements with a and b.
func Seq2[A, B any](a Parser[A], b Parser[B]) ListParser[Pair[A, B]] {
	return BindList(Element(a), func(x A) ListParser[Pair[A, B]] {
		return MapList(Element(b), func(y B) Pair[A, B] {
			return Pair[A, B]{First: x, Second: y}
		})
	}).Named(tupleType(a.typ, b.typ))
}

// Seq3 decodes the next three elements with a, b and c.
func Seq3[A, B, C any](a Parser[A], b Parser[B], c Parser[C]) ListParser[Triple[A, B, C]] {
	return BindList(Seq2(a, b), func(xy Pair[A, B]) ListParser[Triple[A, B, C]] {
		return MapList(Element(c), func(z C) Triple[A, B, C] {
			return Triple[A, B, C]{First: xy.First, Second: xy.Second, Third: z}
		})
	}).Named(tupleType(a.typ, b.typ, c.typ))
}

// Seq4 decodes the next four elements with a, b, c and d.
func Seq4[A, B, C, D any](a Parser[A], b Parser[B], c Parser[C], d Parser[D]) ListParser[Quad[A, B, C, D]] {
	return BindList(Seq3(a, b, c), func(xyz Triple[A, B, C]) ListParser[Quad[A, B, C, D]] {
		return MapList(Element(d), func(w D) Quad[A, B, C, D] {
			return Quad[A, B, C, D]{First: xyz.First, Second: xyz.Second, Third: xyz.Third, Fourth: w}
		})
	}).Named(tupleType(a.typ, b.typ, c.typ, d.typ))
}

// Tuple2 decodes a list of exactly two elements.
func Tuple2[A, B any](a Parser[A], b Parser[B]) Parser[Pair[A, B]] {
	return Seq2(a, b).Strict()
}

// Tuple3 decodes a list of exactly three elements.
func Tuple3[A, B, C any](a Parser[A], b Parser[B], c Parser[C]) Parser[Triple[A, B, C]] {
	return Seq3(a, b, c).Strict()
}

// Tuple4 decodes a list of exactly four elements.
func Tuple4[A, B, C, D any](a Parser[A], b Parser[B], c Parser[C], d Parser[D]) Parser[Quad[A, B, C, D]] {
	return Seq4(a, b, c, d).Strict()
}
