package value_test

import (
	"strings"
	"testing"

	"github.com/KimNorgaard/go-cfgconv/value"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected value.Value
	}{
		{name: "true", input: `true`, expected: value.Bool(true)},
		{name: "false", input: `false`, expected: value.Bool(false)},
		{name: "integer with comment", input: "  42 # the answer\n", expected: value.Int(42)},
		{name: "negative decimal", input: `-3.50`, expected: value.MustNumber("-3.5")},
		{name: "exponent", input: `2.5E-3`, expected: value.MustNumber("0.0025")},
		{name: "text with escapes", input: `"tab\there é"`, expected: value.Text("tab\there é")},
		{name: "multiline text", input: "\"\"\"\nline one\nline two\n\"\"\"", expected: value.Text("line one\nline two\n")},
		{name: "empty list", input: `[]`, expected: value.List{}},
		{
			name:  "nested list with trailing comma",
			input: `[1, "two", [true, false], ]`,
			expected: value.List{
				value.Int(1),
				value.Text("two"),
				value.List{value.Bool(true), value.Bool(false)},
			},
		},
		{
			name: "newline separated list",
			input: `[
  # first
  "a"
  "b"
]`,
			expected: value.List{value.Text("a"), value.Text("b")},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := value.Parse(tc.input)
			require.NoError(t, err)
			require.Empty(t, cmp.Diff(tc.expected, v, numberComparer))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectedErr string
	}{
		{
			name:        "Empty input",
			input:       ``,
			expectedErr: "value: syntax error at line 1, column 0: empty input, expected a value",
		},
		{
			name:        "Unterminated list",
			input:       `[1, 2`,
			expectedErr: "value: syntax error at line 1, column 1: unterminated list, expected ']' got EOF",
		},
		{
			name:        "Missing separator",
			input:       `[1 2]`,
			expectedErr: "value: syntax error at line 1, column 4: expected ',' or ']' after list element, got NUMBER",
		},
		{
			name:        "Trailing value",
			input:       `1 2`,
			expectedErr: `value: syntax error at line 1, column 3: unexpected token after value: NUMBER ("2")`,
		},
		{
			name:        "Stray bracket",
			input:       `]`,
			expectedErr: `value: syntax error at line 1, column 1: unexpected ] ("]"), expected a value`,
		},
		{
			name:        "Unterminated string",
			input:       `"abc`,
			expectedErr: "value: syntax error at line 1, column 1: illegal token encountered: unterminated string",
		},
		{
			name:        "Several errors",
			input:       `[@, 007]`,
			expectedErr: "value: syntax error at line 1, column 2: illegal token encountered: @ (and 1 more errors)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := value.Parse(tc.input)
			require.Error(t, err)
			require.EqualError(t, err, tc.expectedErr)
		})
	}
}

func TestParse_CollectsEveryError(t *testing.T) {
	_, err := value.Parse(`[@, 007]`)
	var syntaxErrs value.SyntaxErrors
	require.ErrorAs(t, err, &syntaxErrs)
	require.Equal(t, value.SyntaxErrors{
		{Message: "illegal token encountered: @", Line: 1, Column: 2},
		{Message: "illegal token encountered: 007", Line: 1, Column: 5},
	}, syntaxErrs)
}

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		`[true, -0, 1E+3, 0.000, "a\"b\\c", "\u0001\u007F", [[]], "é"]`,
		`1.5E-7`,
		`"line\nbreak"`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			v, err := value.Parse(input)
			require.NoError(t, err)

			again, err := value.Parse(v.String())
			require.NoError(t, err)
			require.True(t, value.Equal(v, again), "%s != %s", v, again)
			require.Equal(t, v.String(), again.String())
		})
	}
}

func TestMustParse(t *testing.T) {
	require.Equal(t, value.Bool(true), value.MustParse("true"))
	require.Panics(t, func() { value.MustParse("[") })
}

func TestParse_MaxDepth(t *testing.T) {
	_, err := value.Parse("[[1]]", value.MaxDepth(2))
	require.NoError(t, err)

	_, err = value.Parse("[[[1]], 2]", value.MaxDepth(2))
	var syntaxErrs value.SyntaxErrors
	require.ErrorAs(t, err, &syntaxErrs)
	require.Len(t, syntaxErrs, 1, "enclosing lists are not reported as unterminated")
	require.Equal(t, value.SyntaxError{Message: "maximum nesting depth of 2 exceeded", Line: 1, Column: 3}, syntaxErrs[0])

	deep := strings.Repeat("[", 1001) + strings.Repeat("]", 1001)
	_, err = value.Parse(deep)
	require.ErrorContains(t, err, "maximum nesting depth of 1000 exceeded")

	_, err = value.Parse("1", value.MaxDepth(0))
	require.EqualError(t, err, "value: max depth must be a positive integer")
}

func FuzzParse(f *testing.F) {
	f.Add(`[1, "two", [true]]`)
	f.Add(`-1.5e-3`)
	f.Add("\"\"\"\nmulti\n\"\"\"")
	f.Add(`"\u0000"`)
	f.Add(`# only a comment`)

	f.Fuzz(func(t *testing.T, input string) {
		v, err := value.Parse(input)
		if err != nil {
			return
		}
		// Whatever parses must print back to something that parses to
		// the same tree.
		again, err := value.Parse(v.String())
		require.NoError(t, err, "reparse of %q", v.String())
		require.True(t, value.Equal(v, again), "%s != %s", v, again)
	})
}
