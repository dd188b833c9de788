package formatter_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/KimNorgaard/go-cfgconv/internal/formatter"
	"github.com/KimNorgaard/go-cfgconv/value"
	"github.com/stretchr/testify/require"
)

// Centralized test cases to be used across different format settings.
var testCases = []struct {
	name             string
	value            value.Value
	expectedCompact  string
	expectedIndented string // 2 spaces
}{
	{
		name:             "Text",
		value:            value.Text("hello world"),
		expectedCompact:  `"hello world"`,
		expectedIndented: `"hello world"`,
	},
	{
		name:             "Number",
		value:            value.MustNumber("-3.50"),
		expectedCompact:  "-3.50",
		expectedIndented: "-3.50",
	},
	{
		name:             "Empty List",
		value:            value.List{},
		expectedCompact:  "[]",
		expectedIndented: "[]",
	},
	{
		name:             "List of scalars",
		value:            value.List{value.Int(1), value.Text("two"), value.Bool(true)},
		expectedCompact:  `[1, "two", true]`,
		expectedIndented: `[1, "two", true]`,
	},
	{
		name: "List of lists",
		value: value.List{
			value.List{value.Text("eu-west"), value.Int(3)},
			value.List{value.Text("us-east"), value.Int(2)},
		},
		expectedCompact:  `[["eu-west", 3], ["us-east", 2]]`,
		expectedIndented: "[\n  [\"eu-west\", 3],\n  [\"us-east\", 2]\n]",
	},
	{
		name: "Deeply nested",
		value: value.List{
			value.Int(1),
			value.List{value.List{value.Bool(false)}, value.List{}},
		},
		expectedCompact:  `[1, [[false], []]]`,
		expectedIndented: "[\n  1,\n  [\n    [false],\n    []\n  ]\n]",
	},
}

func TestFormatter_Indentation(t *testing.T) {
	t.Run("Default Indent (2 spaces)", func(t *testing.T) {
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				var buf bytes.Buffer
				f := formatter.New(&buf, nil)
				err := f.Format(tc.value)
				require.NoError(t, err)
				require.Equal(t, tc.expectedIndented, buf.String())
			})
		}
	})

	t.Run("Compact Output (indent 0)", func(t *testing.T) {
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				var buf bytes.Buffer
				zero := 0
				f := formatter.New(&buf, &zero)
				err := f.Format(tc.value)
				require.NoError(t, err)
				require.Equal(t, tc.expectedCompact, buf.String())
			})
		}
	})

	t.Run("Custom Indent (4 spaces)", func(t *testing.T) {
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				var buf bytes.Buffer
				four := 4
				f := formatter.New(&buf, &four)
				expected := strings.ReplaceAll(tc.expectedIndented, "  ", "    ")
				err := f.Format(tc.value)
				require.NoError(t, err)
				require.Equal(t, expected, buf.String())
			})
		}
	})
}

func TestFormatter_RoundTrip(t *testing.T) {
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, formatter.New(&buf, nil).Format(tc.value))
			parsed, err := value.Parse(buf.String())
			require.NoError(t, err)
			require.True(t, value.Equal(tc.value, parsed))
		})
	}
}

func TestFormatter_Nil(t *testing.T) {
	var buf bytes.Buffer
	err := formatter.New(&buf, nil).Format(nil)
	require.EqualError(t, err, "formatter: cannot format a nil value")
}
