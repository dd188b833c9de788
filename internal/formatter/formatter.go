package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/KimNorgaard/go-cfgconv/value"
)

const (
	defaultIndent = 2
)

// Formatter writes value trees in literal syntax.
type Formatter struct {
	w      io.Writer
	indent string
	depth  int
}

// New returns a new formatter that writes to w. A nil indentSpaces selects
// the default of two spaces; zero selects compact single-line output.
func New(w io.Writer, indentSpaces *int) *Formatter {
	spaces := defaultIndent
	if indentSpaces != nil {
		spaces = *indentSpaces
	}
	var indentStr string
	if spaces > 0 {
		indentStr = strings.Repeat(" ", spaces)
	}
	return &Formatter{w: w, indent: indentStr}
}

// Format writes v to the writer. With indentation, lists that hold other
// lists are written one element per line; lists of scalars stay on one
// line.
func (f *Formatter) Format(v value.Value) error {
	return f.writeValue(v)
}

func (f *Formatter) write(s string) error {
	_, err := io.WriteString(f.w, s)
	return err
}

func (f *Formatter) writeIndent() error {
	if f.indent == "" {
		return nil
	}
	for i := 0; i < f.depth; i++ {
		if err := f.write(f.indent); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) writeValue(v value.Value) error {
	switch v := v.(type) {
	case value.List:
		if f.indent != "" && hasList(v) {
			return f.writeExpanded(v)
		}
		return f.writeInline(v)
	case value.Bool, value.Number, value.Text:
		return f.write(v.String())
	case nil:
		return fmt.Errorf("formatter: cannot format a nil value")
	default:
		return fmt.Errorf("formatter: unsupported value type %T", v)
	}
}

func (f *Formatter) writeInline(l value.List) error {
	if err := f.write("["); err != nil {
		return err
	}
	for i, el := range l {
		if i > 0 {
			if err := f.write(", "); err != nil {
				return err
			}
		}
		if err := f.writeValue(el); err != nil {
			return err
		}
	}
	return f.write("]")
}

func (f *Formatter) writeExpanded(l value.List) error {
	if err := f.write("["); err != nil {
		return err
	}
	f.depth++
	for i, el := range l {
		if err := f.write("\n"); err != nil {
			return err
		}
		if err := f.writeIndent(); err != nil {
			return err
		}
		if err := f.writeValue(el); err != nil {
			return err
		}
		if i < len(l)-1 {
			if err := f.write(","); err != nil {
				return err
			}
		}
	}
	f.depth--
	if err := f.write("\n"); err != nil {
		return err
	}
	if err := f.writeIndent(); err != nil {
		return err
	}
	return f.write("]")
}

func hasList(l value.List) bool {
	for _, el := range l {
		if _, ok := el.(value.List); ok {
			return true
		}
	}
	return false
}
