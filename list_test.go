package cfgconv_test

import (
	"testing"

	"github.com/KimNorgaard/go-cfgconv"
	"github.com/KimNorgaard/go-cfgconv/value"
	"github.com/stretchr/testify/require"
)

func TestPromotion_TrailingElements(t *testing.T) {
	input := value.MustParse(`["a", 1, "extra"]`)
	pair := cfgconv.Seq2(cfgconv.String(), cfgconv.Int())

	t.Run("lenient keeps payload", func(t *testing.T) {
		out, ok, errs := pair.Lenient().Run(input)
		require.True(t, ok)
		require.Equal(t, cfgconv.Pair[string, int]{First: "a", Second: 1}, out)
		require.Len(t, errs, 1)
		require.Equal(t, cfgconv.ExtraValues, errs[0].Kind)
		require.Equal(t, input, errs[0].Value, "the diagnostic carries the whole list")
		require.Equal(t, "1 unconsumed", errs[0].Message)
		require.Equal(t, cfgconv.Type("tuple(string, int)"), errs[0].Type)
	})

	t.Run("strict fails", func(t *testing.T) {
		_, ok, errs := pair.Strict().Run(input)
		require.False(t, ok)
		require.Equal(t, []cfgconv.Kind{cfgconv.ExtraValues}, errs.Kinds())
		require.Equal(t, input, errs[0].Value)
	})

	t.Run("exact length", func(t *testing.T) {
		for _, p := range []cfgconv.Parser[cfgconv.Pair[string, int]]{pair.Lenient(), pair.Strict()} {
			out, ok, errs := p.Run(value.MustParse(`["a", 1]`))
			require.True(t, ok)
			require.Empty(t, errs)
			require.Equal(t, "a", out.First)
		}
	})
}

func TestPromotion_Failures(t *testing.T) {
	pair := cfgconv.Seq2(cfgconv.String(), cfgconv.Int())

	testCases := []struct {
		name        string
		input       string
		expectKinds []cfgconv.Kind
	}{
		{name: "not a list", input: `"a"`, expectKinds: []cfgconv.Kind{cfgconv.TypeMismatch}},
		{name: "empty list", input: `[]`, expectKinds: []cfgconv.Kind{cfgconv.ExhaustedValues}},
		{name: "too short", input: `["a"]`, expectKinds: []cfgconv.Kind{cfgconv.ExhaustedValues}},
		{name: "first element wrong", input: `[1, 1]`, expectKinds: []cfgconv.Kind{cfgconv.TypeMismatch}},
		{name: "second element overflows", input: `["a", 1e30]`, expectKinds: []cfgconv.Kind{cfgconv.ValueError}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, p := range []cfgconv.Parser[cfgconv.Pair[string, int]]{pair.Lenient(), pair.Strict()} {
				_, ok, errs := p.Run(value.MustParse(tc.input))
				require.False(t, ok)
				require.Equal(t, tc.expectKinds, errs.Kinds())
			}
		})
	}
}

func TestElement(t *testing.T) {
	el := cfgconv.Element(cfgconv.Bool())

	r := el.Parse(nil)
	require.Equal(t, cfgconv.Exhausted, r.Outcome())
	require.True(t, r.Errors().Empty())

	r = el.Parse([]value.Value{value.Int(1)})
	require.Equal(t, cfgconv.Exhausted, r.Outcome())
	require.Equal(t, 1, r.Errors().Len())

	r = el.Parse([]value.Value{value.Bool(true), value.Int(1)})
	out, rest, ok := r.Get()
	require.True(t, ok)
	require.Equal(t, cfgconv.Parsed, r.Outcome())
	require.True(t, out)
	require.Equal(t, []value.Value{value.Int(1)}, rest)
}

func TestListOr(t *testing.T) {
	num := cfgconv.MapList(cfgconv.Element(cfgconv.Int()), func(n int) string { return "number" })
	text := cfgconv.Element(cfgconv.String())
	p := num.Or(text)

	r := p.Parse([]value.Value{value.Text("x")})
	out, rest, ok := r.Get()
	require.True(t, ok)
	require.Equal(t, "x", out)
	require.Empty(t, rest)
	require.True(t, r.Errors().Empty(), "first attempt's diagnostics are dropped")

	r = p.Parse([]value.Value{value.Bool(true)})
	require.Equal(t, cfgconv.Exhausted, r.Outcome())
	require.Equal(t, 2, r.Errors().Len())

	pair := cfgconv.MapList(cfgconv.Nested(cfgconv.Seq2(cfgconv.Int(), cfgconv.Int())), func(cfgconv.Pair[int, int]) string { return "pair" })
	r = pair.Or(text).Parse([]value.Value{value.Text("y")})
	out, rest, ok = r.Get()
	require.True(t, ok)
	require.Equal(t, "y", out)
	require.Empty(t, rest)
	require.True(t, r.Errors().Empty())

	r = pair.Parse([]value.Value{value.Text("y")})
	require.Equal(t, cfgconv.NotAList, r.Outcome())
}

func TestNested(t *testing.T) {
	point := cfgconv.Seq2(cfgconv.Int(), cfgconv.Int())
	segment := cfgconv.Seq2(cfgconv.Int(), cfgconv.Int())
	line := cfgconv.BindList(cfgconv.Nested(point), func(a cfgconv.Pair[int, int]) cfgconv.ListParser[[2]cfgconv.Pair[int, int]] {
		return cfgconv.MapList(cfgconv.Nested(segment), func(b cfgconv.Pair[int, int]) [2]cfgconv.Pair[int, int] {
			return [2]cfgconv.Pair[int, int]{a, b}
		})
	}).Strict()

	out, ok, errs := line.Run(value.MustParse(`[[1, 2], [3, 4]]`))
	require.True(t, ok)
	require.Empty(t, errs)
	require.Equal(t, 4, out[1].Second)

	_, ok, errs = line.Run(value.MustParse(`[[1, 2], [3, 4, 5]]`))
	require.False(t, ok)
	require.Equal(t, []cfgconv.Kind{cfgconv.ExtraValues}, errs.Kinds(), "nested lists are strict")

	r := cfgconv.Nested(point).Parse([]value.Value{value.Int(1)})
	require.Equal(t, cfgconv.NotAList, r.Outcome())
	require.Equal(t, 1, r.Errors().Len())
}

func TestMany(t *testing.T) {
	ints := cfgconv.Many(cfgconv.Element(cfgconv.Int()))

	testCases := []struct {
		name       string
		input      string
		expected   []int
		expectRest int
	}{
		{name: "empty", input: `[]`, expected: []int{}, expectRest: 0},
		{name: "all", input: `[1, 2, 3]`, expected: []int{1, 2, 3}, expectRest: 0},
		{name: "stops at mismatch", input: `[1, 2, "x", 4]`, expected: []int{1, 2}, expectRest: 2},
		{name: "none match", input: `["x"]`, expected: []int{}, expectRest: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := ints.Parse(value.MustParse(tc.input).(value.List))
			out, rest, ok := r.Get()
			require.True(t, ok)
			require.True(t, r.Errors().Empty())
			require.Equal(t, tc.expected, out)
			require.Len(t, rest, tc.expectRest)
		})
	}
}

func TestMany_StopsWithoutProgress(t *testing.T) {
	p := cfgconv.Many(cfgconv.PureList(7))
	out, rest, ok := p.Parse([]value.Value{value.Int(1)}).Get()
	require.True(t, ok)
	require.Equal(t, []int{7}, out)
	require.Len(t, rest, 1)
}

func TestMany1(t *testing.T) {
	p := cfgconv.Many1(cfgconv.Element(cfgconv.String()))
	require.Equal(t, cfgconv.Type("list(string)"), p.Type())

	out, ok, errs := p.Strict().Run(value.MustParse(`["a", "b"]`))
	require.True(t, ok)
	require.Empty(t, errs)
	require.Equal(t, []string{"a", "b"}, out)

	_, ok, errs = p.Strict().Run(value.MustParse(`[]`))
	require.False(t, ok)
	require.Equal(t, []cfgconv.Kind{cfgconv.ExhaustedValues}, errs.Kinds())

	_, ok, errs = p.Strict().Run(value.MustParse(`[true]`))
	require.False(t, ok)
	require.Equal(t, []cfgconv.Kind{cfgconv.TypeMismatch}, errs.Kinds())
}

func TestSequenceMixedShape(t *testing.T) {
	// A name followed by any number of ports.
	service := cfgconv.BindList(cfgconv.Element(cfgconv.String()), func(name string) cfgconv.ListParser[cfgconv.Pair[string, []uint16]] {
		return cfgconv.MapList(cfgconv.Many(cfgconv.Element(cfgconv.Uint16())), func(ports []uint16) cfgconv.Pair[string, []uint16] {
			return cfgconv.Pair[string, []uint16]{First: name, Second: ports}
		})
	})

	out, ok, errs := service.Strict().Run(value.MustParse(`["web", 80, 443]`))
	require.True(t, ok)
	require.Empty(t, errs)
	require.Equal(t, "web", out.First)
	require.Equal(t, []uint16{80, 443}, out.Second)

	_, ok, errs = service.Strict().Run(value.MustParse(`["web", 80, 70000]`))
	require.False(t, ok)
	require.Equal(t, []cfgconv.Kind{cfgconv.ExtraValues}, errs.Kinds())
}
