package cfgconv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-cfgconv/value"
)

// Kind classifies a ConversionError.
type Kind int

const (
	// Other is the kind of the zero ConversionError.
	Other Kind = iota
	// MissingValue reports a required slot that was absent.
	MissingValue
	// ExtraValues reports list elements left over after decoding.
	ExtraValues
	// ExhaustedValues reports a list that ran out of elements.
	ExhaustedValues
	// TypeMismatch reports a value of the wrong variant.
	TypeMismatch
	// ValueError reports a value of the right variant that cannot be
	// represented in the target type.
	ValueError
	// UserFail reports a value rejected by caller-supplied validation.
	UserFail
)

func (k Kind) String() string {
	switch k {
	case Other:
		return "other"
	case MissingValue:
		return "missing value"
	case ExtraValues:
		return "extra values"
	case ExhaustedValues:
		return "exhausted values"
	case TypeMismatch:
		return "type mismatch"
	case ValueError:
		return "value error"
	case UserFail:
		return "user failure"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Type describes the target type of a conversion, for diagnostics only.
type Type string

func (t Type) String() string { return string(t) }

// ConversionError describes a single conversion failure or non-fatal
// anomaly. The zero value is the default record: empty location, kind
// Other, and no value, type or message.
//
// A ConversionError must not be modified once it has been handed to an
// accumulator.
type ConversionError struct {
	// Location names the conversion that raised the error.
	Location string
	Kind     Kind
	// Value is the offending value, or nil.
	Value value.Value
	// Type is the requested target type, or empty.
	Type Type
	// Nested holds sub-errors for structured aggregation.
	Nested  []ConversionError
	Message string
}

func (e ConversionError) Error() string {
	var b strings.Builder
	b.WriteString("cfgconv: ")
	if e.Location != "" {
		b.WriteString(e.Location)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	var details []string
	if e.Type != "" {
		details = append(details, "type "+e.Type.String())
	}
	if e.Value != nil {
		details = append(details, "got "+value.Describe(e.Value))
	}
	if len(e.Nested) > 0 {
		details = append(details, fmt.Sprintf("%d nested", len(e.Nested)))
	}
	if len(details) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(details, ", "))
		b.WriteString(")")
	}
	return b.String()
}

// ErrorList is an ordered list of ConversionError that implements the
// error interface, so all diagnostics of a conversion can be returned at
// once.
type ErrorList []ConversionError

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return ""
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
}

// Err returns l as an error, or nil if l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Kinds returns the kind of every error in l, in order.
func (l ErrorList) Kinds() []Kind {
	kinds := make([]Kind, len(l))
	for i, e := range l {
		kinds[i] = e.Kind
	}
	return kinds
}

func typeMismatch(loc string, v value.Value, typ Type, want value.Kind) ConversionError {
	return ConversionError{
		Location: loc,
		Kind:     TypeMismatch,
		Value:    v,
		Type:     typ,
		Message:  "expecting " + want.String(),
	}
}

func valueError(loc string, v value.Value, typ Type, msg string) ConversionError {
	return ConversionError{
		Location: loc,
		Kind:     ValueError,
		Value:    v,
		Type:     typ,
		Message:  msg,
	}
}
