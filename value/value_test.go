package value_test

import (
	"testing"

	"github.com/KimNorgaard/go-cfgconv/value"
	"github.com/cockroachdb/apd/v3"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// numberComparer lets cmp compare value trees without reaching into the
// unexported decimal pointer.
var numberComparer = cmp.Comparer(func(a, b value.Number) bool { return a.Cmp(b) == 0 })

func TestKind(t *testing.T) {
	testCases := []struct {
		v    value.Value
		kind value.Kind
		name string
	}{
		{v: value.Bool(true), kind: value.BoolKind, name: "bool"},
		{v: value.Int(3), kind: value.NumberKind, name: "number"},
		{v: value.Text("x"), kind: value.TextKind, name: "text"},
		{v: value.List{}, kind: value.ListKind, name: "list"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.kind, tc.v.Kind())
			require.Equal(t, tc.name, tc.v.Kind().String())
		})
	}
	require.Equal(t, "Kind(9)", value.Kind(9).String())
}

func TestString(t *testing.T) {
	v := value.List{
		value.Bool(false),
		value.MustNumber("-3.50"),
		value.Text("say \"hi\""),
		value.List{value.Int(1)},
	}
	require.Equal(t, `[false, -3.50, "say \"hi\"", [1]]`, v.String())
	require.Equal(t, "0", value.Number{}.String())
}

func TestNumber(t *testing.T) {
	t.Run("Parse", func(t *testing.T) {
		n, err := value.ParseNumber("1.25e2")
		require.NoError(t, err)
		require.Equal(t, 0, n.Cmp(value.Int(125)))
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := value.ParseNumber("twelve")
		require.Error(t, err)
		require.Contains(t, err.Error(), `value: invalid number "twelve"`)

		_, err = value.ParseNumber("NaN")
		require.EqualError(t, err, `value: invalid number "NaN": not finite`)
	})

	t.Run("Decimal Is A Copy", func(t *testing.T) {
		n := value.Int(7)
		d := n.Decimal()
		d.SetInt64(8)
		require.Equal(t, "7", n.String())
	})

	t.Run("NewNumber Copies", func(t *testing.T) {
		d := apd.New(15, -1)
		n := value.NewNumber(d)
		d.SetInt64(0)
		require.Equal(t, "1.5", n.String())
	})

	t.Run("MustNumber Panics", func(t *testing.T) {
		require.Panics(t, func() { value.MustNumber("x") })
	})
}

func TestEqual(t *testing.T) {
	testCases := []struct {
		name  string
		a, b  value.Value
		equal bool
	}{
		{name: "numbers compare numerically", a: value.MustNumber("3.0"), b: value.Int(3), equal: true},
		{name: "different numbers", a: value.Int(3), b: value.Int(4), equal: false},
		{name: "text", a: value.Text("a"), b: value.Text("a"), equal: true},
		{name: "text vs bool", a: value.Text("true"), b: value.Bool(true), equal: false},
		{name: "nested lists", a: value.List{value.List{value.Int(1)}}, b: value.List{value.List{value.MustNumber("1.00")}}, equal: true},
		{name: "list lengths differ", a: value.List{value.Int(1)}, b: value.List{}, equal: false},
		{name: "nil", a: nil, b: nil, equal: true},
		{name: "nil vs value", a: nil, b: value.Bool(false), equal: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.equal, value.Equal(tc.a, tc.b))
		})
	}
}

func TestDescribe(t *testing.T) {
	require.Equal(t, "number 300", value.Describe(value.Int(300)))
	require.Equal(t, `text "x"`, value.Describe(value.Text("x")))
	require.Equal(t, "list of 1 element", value.Describe(value.List{value.Bool(true)}))
	require.Equal(t, "list of 3 elements", value.Describe(value.List{value.Int(1), value.Int(2), value.Int(3)}))
	require.Equal(t, "nothing", value.Describe(nil))
}

func TestCmpWithComparer(t *testing.T) {
	a := value.List{value.MustNumber("2.0"), value.Text("x")}
	b := value.List{value.Int(2), value.Text("x")}
	require.Empty(t, cmp.Diff(a, b, numberComparer))
}
