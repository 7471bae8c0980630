// SPDX-License-Identifier: MIT
package updatable

import "reflect"

// isNil reports a nil interface or a typed nil pointer/map/slice/func/chan.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// IsNil is the exported form used by packages that hold Updatable values.
func IsNil(v any) bool { return isNil(v) }
