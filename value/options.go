package value

import "fmt"

const defaultMaxDepth = 1000

// Option configures Parse.
type Option func(*options) error

type options struct {
	maxDepth int
}

// MaxDepth returns an Option that sets how deeply lists may nest. This
// prevents stack exhaustion on input such as "[[[[...".
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("value: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}
