// Package hclsource reads flat HCL documents into named configuration
// values.
//
// Each top-level attribute becomes a slot. Its expression is evaluated
// without variables or functions and converted to a value.Value, so
// numbers, strings, booleans and tuples are supported. Blocks, objects and
// null values are reported as errors.
package hclsource

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/KimNorgaard/go-cfgconv/value"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
)

type slot struct {
	value value.Value
	rng   hcl.Range
}

// Document holds the attributes of a parsed HCL file.
type Document struct {
	filename string
	slots    map[string]slot
	keys     []string
}

// Load reads and parses the HCL file at path.
func Load(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hclsource: %w", err)
	}
	return Parse(src, path)
}

// Parse parses src as HCL native syntax. filename is used in ranges and
// error messages only.
//
// Every attribute is converted even when an earlier one fails; the returned
// error then joins one error per failing attribute.
func Parse(src []byte, filename string) (*Document, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("hclsource: failed to parse %s: %w", filename, diags)
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("hclsource: failed to decode %s: %w", filename, diags)
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		return cmp.Compare(attrs[a].Range.Start.Byte, attrs[b].Range.Start.Byte)
	})

	doc := &Document{
		filename: filename,
		slots:    make(map[string]slot, len(attrs)),
	}
	var errs []error
	for _, name := range names {
		attr := attrs[name]
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			errs = append(errs, fmt.Errorf("hclsource: %s: %w", name, diags))
			continue
		}
		converted, err := value.FromCty(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("hclsource: %s: %s: %w", attr.Range, name, err))
			continue
		}
		doc.slots[name] = slot{value: converted, rng: attr.Range}
		doc.keys = append(doc.keys, name)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return doc, nil
}

// Filename returns the name the document was parsed under.
func (d *Document) Filename() string { return d.filename }

// Lookup returns the value of the attribute key and whether it exists. The
// result can be handed straight to an OptionalParser.
func (d *Document) Lookup(key string) (value.Value, bool) {
	s, ok := d.slots[key]
	if !ok {
		return nil, false
	}
	return s.value, true
}

// Keys returns the attribute names in source order.
func (d *Document) Keys() []string {
	return slices.Clone(d.keys)
}

// Range returns the source range of the attribute key.
func (d *Document) Range(key string) (hcl.Range, bool) {
	s, ok := d.slots[key]
	return s.rng, ok
}
