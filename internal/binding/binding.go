package binding

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"github.com/desertthunder/lacery/internal/shared"
)

// TagName is the struct tag consulted when a key does not match a Go field name.
const TagName = "lace"

// Same reports whether a and b are the same host object.
//
// Only pointers and maps have identity; two nil or non-reference values are never the same.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return false
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Pointer, reflect.Map:
		if va.IsNil() || vb.IsNil() {
			return false
		}
		return va.UnsafePointer() == vb.UnsafePointer()
	default:
		return false
	}
}

// Overlaps reports whether the two key sets share at least one name.
func Overlaps(a, b []string) bool {
	for _, k := range a {
		if slices.Contains(b, k) {
			return true
		}
	}
	return false
}

// Get returns the current value stored under key, or false when the object or key is absent.
func Get(obj any, key string) (any, bool) {
	v := reflect.ValueOf(obj)
	if !v.IsValid() {
		return nil, false
	}

	switch v.Kind() {
	case reflect.Map:
		if v.IsNil() || v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		val := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true
	case reflect.Pointer:
		f, err := structField(v, key)
		if err != nil {
			return nil, false
		}
		return f.Interface(), true
	default:
		return nil, false
	}
}

// Set writes value under key, converting between numeric kinds when the destination is typed.
func Set(obj any, key string, value any) error {
	v := reflect.ValueOf(obj)
	if !v.IsValid() {
		return fmt.Errorf("%w: nil object", shared.ErrUnsupportedObject)
	}

	switch v.Kind() {
	case reflect.Map:
		if v.IsNil() {
			return fmt.Errorf("%w: nil map", shared.ErrUnsupportedObject)
		}
		if v.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("%w: map key type %s", shared.ErrUnsupportedObject, v.Type().Key())
		}
		nv, err := coerce(value, v.Type().Elem())
		if err != nil {
			return fmt.Errorf("failed to set %q: %w", key, err)
		}
		v.SetMapIndex(reflect.ValueOf(key).Convert(v.Type().Key()), nv)
		return nil
	case reflect.Pointer:
		f, err := structField(v, key)
		if err != nil {
			return err
		}
		if !f.CanSet() {
			return fmt.Errorf("%w: field %q is not settable", shared.ErrUnknownKey, key)
		}
		nv, err := coerce(value, f.Type())
		if err != nil {
			return fmt.Errorf("failed to set %q: %w", key, err)
		}
		f.Set(nv)
		return nil
	default:
		return fmt.Errorf("%w: %T", shared.ErrUnsupportedObject, obj)
	}
}

// Float reads key as a float64. Non-numeric and missing values read as zero.
func Float(obj any, key string) float64 {
	raw, ok := Get(obj, key)
	if !ok || raw == nil {
		return 0
	}

	v := reflect.ValueOf(raw)
	switch {
	case isInt(v.Kind()):
		return float64(v.Int())
	case isUint(v.Kind()):
		return float64(v.Uint())
	case isFloat(v.Kind()):
		return v.Float()
	case v.Kind() == reflect.String:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// String reads key as text. Strings are returned as-is, other values are formatted with %v.
func String(obj any, key string) string {
	raw, ok := Get(obj, key)
	if !ok || raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return s
	}
	v := reflect.ValueOf(raw)
	if v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprint(raw)
}

// Bool reads key as a boolean. Anything that is not a bool reads as false.
func Bool(obj any, key string) bool {
	raw, ok := Get(obj, key)
	if !ok || raw == nil {
		return false
	}
	v := reflect.ValueOf(raw)
	return v.Kind() == reflect.Bool && v.Bool()
}

// Bytes reads key as a byte slice, nil when absent or of another type.
func Bytes(obj any, key string) []byte {
	raw, ok := Get(obj, key)
	if !ok {
		return nil
	}
	b, _ := raw.([]byte)
	return b
}

func structField(ptr reflect.Value, key string) (reflect.Value, error) {
	if ptr.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: nil pointer", shared.ErrUnsupportedObject)
	}

	v := ptr.Elem()
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: pointer to %s", shared.ErrUnsupportedObject, v.Kind())
	}

	t := v.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if sf.Name == key || sf.Tag.Get(TagName) == key {
			return v.Field(i), nil
		}
	}

	return reflect.Value{}, fmt.Errorf("%w: %s", shared.ErrUnknownKey, key)
}

func coerce(value any, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(t), nil
	}

	v := reflect.ValueOf(value)
	switch {
	case v.Type().AssignableTo(t):
		return v, nil
	case isNumeric(v.Kind()) && isNumeric(t.Kind()):
		return v.Convert(t), nil
	case v.Kind() == t.Kind() && v.Type().ConvertibleTo(t):
		return v.Convert(t), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: cannot assign %s to %s", shared.ErrInvalidInput, v.Type(), t)
	}
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isNumeric(k reflect.Kind) bool {
	return isInt(k) || isUint(k) || isFloat(k)
}
