// Package identity compares values by reference identity.
//
// Tree nodes, cache inputs and event handlers are compared the way a
// reference-typed language would compare them: comparable values with ==,
// reference types (funcs, maps, slices, channels, pointers) by the address
// they point to. Two distinct closures are never identical, even when they
// share code.
package identity

import (
	"reflect"
	"unsafe"
)

// Equal reports whether a and b are the same value or reference.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Func:
		return Func(a) == Func(b)
	case reflect.Map, reflect.Slice, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		if va.Kind() == reflect.Slice && va.Len() != vb.Len() {
			return false
		}
		return va.Pointer() == vb.Pointer()
	}
	if va.Type().Comparable() {
		return a == b
	}
	return false
}

// Func returns the closure address of a func value, or 0 for non-funcs
// and nil funcs. Func values are not comparable with ==; the closure
// address distinguishes two closures created from the same literal.
func Func(f any) uintptr {
	v := reflect.ValueOf(f)
	if v.Kind() != reflect.Func || v.IsNil() {
		return 0
	}
	iface := (*[2]unsafe.Pointer)(unsafe.Pointer(&f))
	return uintptr(iface[1])
}
