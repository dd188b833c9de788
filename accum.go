package cfgconv

import "iter"

// Errors accumulates diagnostics in the order they were produced. The zero
// value holds no diagnostics.
//
// Errors is persistent: Concat never modifies its operands, so an Errors can
// be shared between results. Concat runs in constant time and keeps every
// element, duplicates included.
type Errors struct {
	root *chain
}

// chain is a node of a concatenation tree. Leaves hold one error; inner
// nodes join two non-empty subtrees.
type chain struct {
	err         ConversionError
	left, right *chain
	size        int
}

// Single returns an accumulator holding only e.
func Single(e ConversionError) Errors {
	return Errors{root: &chain{err: e, size: 1}}
}

// Of returns an accumulator holding errs in order.
func Of(errs ...ConversionError) Errors {
	var acc Errors
	for _, e := range errs {
		acc = acc.Concat(Single(e))
	}
	return acc
}

// Concat returns the diagnostics of a followed by those of b.
func (a Errors) Concat(b Errors) Errors {
	switch {
	case a.root == nil:
		return b
	case b.root == nil:
		return a
	}
	return Errors{root: &chain{left: a.root, right: b.root, size: a.root.size + b.root.size}}
}

// Empty reports whether a holds no diagnostics.
func (a Errors) Empty() bool { return a.root == nil }

// Len returns the number of diagnostics in a.
func (a Errors) Len() int {
	if a.root == nil {
		return 0
	}
	return a.root.size
}

// All returns an iterator over the diagnostics in order.
func (a Errors) All() iter.Seq[ConversionError] {
	return func(yield func(ConversionError) bool) {
		if a.root == nil {
			return
		}
		// Walk the tree with an explicit stack; deeply left- or
		// right-leaning chains are common when results are folded.
		stack := []*chain{a.root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if n.left == nil {
				if !yield(n.err) {
					return
				}
				continue
			}
			stack = append(stack, n.right, n.left)
		}
	}
}

// List flattens a into an ErrorList. It returns nil when a is empty.
func (a Errors) List() ErrorList {
	if a.root == nil {
		return nil
	}
	list := make(ErrorList, 0, a.root.size)
	for e := range a.All() {
		list = append(list, e)
	}
	return list
}

func (a Errors) String() string {
	return a.List().Error()
}
