package memo

import "github.com/vango-dev/widgetkit/internal/identity"

// Cache holds one calculation result and the inputs that produced it.
// The zero value is empty and ready to use.
type Cache[T any] struct {
	inputs []any
	result T
	valid  bool
}

// Result returns the cached result if inputs match the cached inputs
// position by position; otherwise it calls compute and caches its result.
// Inputs of a different length never match.
func (c *Cache[T]) Result(inputs []any, compute func() T) T {
	if c.valid && c.matches(inputs) {
		return c.result
	}
	c.result = compute()
	c.inputs = append(c.inputs[:0], inputs...)
	c.valid = true
	return c.result
}

// Invalidate drops the cached result and inputs.
func (c *Cache[T]) Invalidate() {
	var zero T
	c.result = zero
	c.inputs = nil
	c.valid = false
}

func (c *Cache[T]) matches(inputs []any) bool {
	if len(inputs) != len(c.inputs) {
		return false
	}
	for i, in := range inputs {
		if !identity.Equal(in, c.inputs[i]) {
			return false
		}
	}
	return true
}
