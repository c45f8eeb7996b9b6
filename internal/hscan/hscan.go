// Package hscan copies the string fields of a search document into the
// tagged fields of a struct.
package hscan

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/redis/go-redis-stack/internal/util"
)

// decoderFunc decodes s into f and reports whether it succeeded.
type decoderFunc func(f reflect.Value, s string) bool

var (
	// Built-in decoders indexed by reflect.Kind. Kinds without a decoder
	// cannot be scanned into.
	decoders = [...]decoderFunc{
		reflect.Bool:    decodeBool,
		reflect.Int:     decodeInt,
		reflect.Int8:    decodeInt,
		reflect.Int16:   decodeInt,
		reflect.Int32:   decodeInt,
		reflect.Int64:   decodeInt,
		reflect.Uint:    decodeUint,
		reflect.Uint8:   decodeUint,
		reflect.Uint16:  decodeUint,
		reflect.Uint32:  decodeUint,
		reflect.Uint64:  decodeUint,
		reflect.Float32: decodeFloat,
		reflect.Float64: decodeFloat,
		reflect.Slice:   decodeBytes,
		reflect.String:  decodeString,

		reflect.UnsafePointer: nil,
	}

	// Field specs are computed once per struct type.
	globalStructMap = newStructMap()
)

// Scan decodes fields into the struct pointed to by dst. Keys are matched to
// the struct fields by their `redis` tag; keys without a field are skipped.
func Scan(dst interface{}, fields map[string]string) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("redis-stack: Scan(non-pointer %T)", dst)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("redis-stack: Scan(non-struct %T)", dst)
	}

	spec := globalStructMap.get(v.Type())
	for key, val := range fields {
		sf, ok := spec.get(key)
		if !ok {
			continue
		}
		field := v.Field(sf.index)
		if sf.fn == nil {
			return fmt.Errorf("redis-stack: Scan(unsupported %s)", field.Type())
		}
		if !sf.fn(field, val) {
			return fmt.Errorf("redis-stack: cannot scan %q into field %q (type %s)", val, key, field.Type())
		}
	}
	return nil
}

func decodeBool(f reflect.Value, s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	f.SetBool(b)
	return true
}

func decodeInt(f reflect.Value, s string) bool {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || f.OverflowInt(v) {
		return false
	}
	f.SetInt(v)
	return true
}

func decodeUint(f reflect.Value, s string) bool {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || f.OverflowUint(v) {
		return false
	}
	f.SetUint(v)
	return true
}

// decodeFloat maps "-nan" to util.NaNDefault like every other double reply.
func decodeFloat(f reflect.Value, s string) bool {
	v, err := util.ParseFloat(s)
	if err != nil || f.OverflowFloat(v) {
		return false
	}
	f.SetFloat(v)
	return true
}

func decodeString(f reflect.Value, s string) bool {
	f.SetString(s)
	return true
}

// decodeBytes only accepts []byte; other slices are not scannable.
func decodeBytes(f reflect.Value, s string) bool {
	if f.Type().Elem().Kind() != reflect.Uint8 {
		return false
	}
	f.SetBytes([]byte(s))
	return true
}
