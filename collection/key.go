package collection

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
)

// DefaultKeyField is the field ByField reads when given an empty name.
const DefaultKeyField = "id"

// Key is the set of types a collection can be keyed by: strings and integers.
type Key interface {
	~string |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// KeyFunc derives the key of a value. It must be deterministic: the same value
// always yields the same key.
type KeyFunc[K Key, V any] func(value V) K

// ByField builds a KeyFunc that reads the named field off a value.
//
// V may be a struct, a pointer to a struct, or a map with string keys. Struct
// fields are matched by Go name (case-insensitively, so "id" finds ID) or by the
// name in their json tag; the field must be exported and of the same kind family
// as K (string-like for string keys, integer for integer keys). Map values are
// looked up by the exact name; a missing or unconvertible entry yields the zero K.
//
// Integer fields must fit K without loss: a uint8 key accepts uint8 fields, not
// int16 or int8 ones. Integers reaching ByField untyped (map[string]any entries)
// are range-checked per value and yield the zero K when they don't fit. A field
// promoted through a nil embedded pointer also yields the zero K.
//
// The shape of V is validated here, once, and ErrInvalidKeyField is returned if no
// key of type K can be read from it.
func ByField[K Key, V any](field string) (KeyFunc[K, V], error) {
	if field == "" {
		field = DefaultKeyField
	}

	keyType := reflect.TypeFor[K]()
	valueType := reflect.TypeFor[V]()

	switch {
	case valueType.Kind() == reflect.Struct:
		index, err := structFieldIndex(valueType, keyType, field)
		if err != nil {
			return nil, err
		}

		return func(value V) K {
			return fieldKey[K](reflect.ValueOf(value), index, keyType)
		}, nil

	case valueType.Kind() == reflect.Pointer && valueType.Elem().Kind() == reflect.Struct:
		index, err := structFieldIndex(valueType.Elem(), keyType, field)
		if err != nil {
			return nil, err
		}

		return func(value V) K {
			rv := reflect.ValueOf(value)
			if rv.IsNil() {
				var zero K

				return zero
			}

			return fieldKey[K](rv.Elem(), index, keyType)
		}, nil

	case valueType.Kind() == reflect.Map && valueType.Key().Kind() == reflect.String:
		elem := valueType.Elem()
		if elem.Kind() != reflect.Interface && !fitsKey(elem, keyType) {
			return nil, fmt.Errorf("%w: map values of type %s can't be %s keys", ErrInvalidKeyField, elem, keyType)
		}

		mapKey := reflect.ValueOf(field).Convert(valueType.Key())

		return func(value V) K {
			rv := reflect.ValueOf(value)
			if !rv.IsValid() || rv.IsNil() {
				var zero K

				return zero
			}

			return convertKey[K](rv.MapIndex(mapKey), keyType)
		}, nil

	default:
		return nil, fmt.Errorf("%w: can't read field %q from %s", ErrInvalidKeyField, field, valueType)
	}
}

// MustByField is ByField that panics on error. Meant for package-level variables.
func MustByField[K Key, V any](field string) KeyFunc[K, V] {
	keyOf, err := ByField[K, V](field)
	if err != nil {
		panic(err)
	}

	return keyOf
}

func structFieldIndex(structType, keyType reflect.Type, name string) ([]int, error) {
	var (
		found  reflect.StructField
		exists bool
	)

	for _, f := range reflect.VisibleFields(structType) {
		if !f.IsExported() || f.Anonymous {
			continue
		}

		if f.Name == name {
			found, exists = f, true

			break
		}

		if !exists && (strings.EqualFold(f.Name, name) || jsonName(f) == name) {
			found, exists = f, true
		}
	}

	if !exists {
		return nil, fmt.Errorf("%w: %s has no exported field %q", ErrInvalidKeyField, structType, name)
	}

	if !fitsKey(found.Type, keyType) {
		return nil, fmt.Errorf("%w: field %s.%s of type %s can't be a %s key",
			ErrInvalidKeyField, structType, found.Name, found.Type, keyType)
	}

	return found.Index, nil
}

func jsonName(f reflect.StructField) string {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return ""
	}

	name, _, _ := strings.Cut(tag, ",")

	return name
}

func isString(t reflect.Type) bool {
	return t.Kind() == reflect.String
}

func isSigned(t reflect.Type) bool {
	switch t.Kind() { //nolint:exhaustive
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isUnsigned(t reflect.Type) bool {
	switch t.Kind() { //nolint:exhaustive
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// fitsKey reports whether every value of type from converts to a key of type to
// without loss. Integers never become strings (reflect would treat them as runes),
// and narrowing or sign-dropping integer conversions are refused.
func fitsKey(from, to reflect.Type) bool {
	switch {
	case isString(from) && isString(to):
		return true
	case isSigned(from) && isSigned(to), isUnsigned(from) && isUnsigned(to):
		return from.Bits() <= to.Bits()
	case isUnsigned(from) && isSigned(to):
		return from.Bits() < to.Bits()
	default:
		return false
	}
}

// fieldKey reads the field at index off a struct value. The path may cross
// embedded pointers; a nil one yields the zero K.
func fieldKey[K Key](rv reflect.Value, index []int, keyType reflect.Type) K {
	field, err := rv.FieldByIndexErr(index)
	if err != nil {
		var zero K

		return zero
	}

	return convertKey[K](field, keyType)
}

// convertKey converts a field or map value to K. Values held in interfaces are
// unwrapped first; json.Number and whole float64s (what encoding/json produces for
// numbers in a map[string]any) are accepted for integer keys. Integers are
// range-checked against K; anything that doesn't fit yields the zero K.
func convertKey[K Key](rv reflect.Value, keyType reflect.Type) K {
	var zero K

	for rv.IsValid() && rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return zero
		}

		rv = rv.Elem()
	}

	if !rv.IsValid() {
		return zero
	}

	// out is settable and never read-only, unlike fields promoted through an
	// unexported embedded struct.
	out := reflect.New(keyType).Elem()

	if isString(keyType) {
		if !isString(rv.Type()) {
			return zero
		}

		out.SetString(rv.String())
		key, _ := out.Interface().(K)

		return key
	}

	switch {
	case rv.Type() == reflect.TypeFor[json.Number]():
		i, err := json.Number(rv.String()).Int64()
		if err != nil {
			return zero
		}

		rv = reflect.ValueOf(i)
	case rv.Kind() == reflect.Float64 || rv.Kind() == reflect.Float32:
		f := rv.Float()
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return zero
		}

		rv = reflect.ValueOf(int64(f))
	}

	switch {
	case isSigned(rv.Type()) && isSigned(keyType):
		if out.OverflowInt(rv.Int()) {
			return zero
		}

		out.SetInt(rv.Int())
	case isSigned(rv.Type()) && isUnsigned(keyType):
		if rv.Int() < 0 || out.OverflowUint(uint64(rv.Int())) { //nolint:gosec
			return zero
		}

		out.SetUint(uint64(rv.Int())) //nolint:gosec
	case isUnsigned(rv.Type()) && isUnsigned(keyType):
		if out.OverflowUint(rv.Uint()) {
			return zero
		}

		out.SetUint(rv.Uint())
	case isUnsigned(rv.Type()) && isSigned(keyType):
		if rv.Uint() > math.MaxInt64 || out.OverflowInt(int64(rv.Uint())) { //nolint:gosec
			return zero
		}

		out.SetInt(int64(rv.Uint())) //nolint:gosec
	default:
		return zero
	}

	key, _ := out.Interface().(K)

	return key
}
