package value

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// FromCty converts a cty.Value, as produced by HCL expression evaluation,
// into a Value. Strings, numbers, booleans and list, tuple or set
// collections are supported. Null and unknown values, maps and objects have
// no counterpart in the value tree and are reported as errors.
func FromCty(v cty.Value) (Value, error) {
	if v.IsNull() {
		return nil, fmt.Errorf("value: null %s is not supported", v.Type().FriendlyName())
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("value: unknown %s is not supported", v.Type().FriendlyName())
	}
	v, _ = v.Unmark()

	ty := v.Type()
	switch {
	case ty == cty.String:
		return Text(v.AsString()), nil

	case ty == cty.Bool:
		return Bool(v.True()), nil

	case ty == cty.Number:
		// -1 selects the shortest decimal that identifies the float exactly.
		return ParseNumber(v.AsBigFloat().Text('f', -1))

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		list := make(List, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			idx, el := it.Element()
			converted, err := FromCty(el)
			if err != nil {
				if ty.IsSetType() {
					return nil, err
				}
				return nil, fmt.Errorf("at index %s: %w", idx.AsBigFloat().Text('f', 0), err)
			}
			list = append(list, converted)
		}
		return list, nil

	default:
		return nil, fmt.Errorf("value: unsupported cty type %s", ty.FriendlyName())
	}
}
