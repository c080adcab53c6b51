// Package memo provides helpers that keep render functions cheap.
//
// Cache remembers the result of one calculation together with the inputs
// that produced it. Mapping keeps a list of results, such as child trees or
// per-item components, in step with a list of sources, reusing the result
// of every source whose key survived.
//
//	var total memo.Cache[string]
//	label := total.Result([]any{cart.Lines, currency}, func() string {
//		return formatTotal(cart.Lines, currency)
//	})
//
// Inputs are compared by identity: comparable values with ==, slices,
// maps, pointers and funcs by reference. Replace a slice instead of
// mutating it in place when the result must change.
package memo
