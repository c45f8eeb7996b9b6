package stack

import (
	"github.com/redis/go-redis-stack/internal/proto"
	"github.com/redis/go-redis-stack/internal/util"
)

// infoTable maps the lower-cased keys of a flattened INFO reply to the
// decoder of the matching field. Keys missing from the table are skipped and
// fields missing from the reply keep their zero value.
type infoTable[T any] map[string]func(dst *T, v *proto.Value) error

func (t infoTable[T]) scan(dst *T, pv *proto.Value) error {
	return pv.MapScan(func(key string, val *proto.Value) error {
		return t.scanOne(dst, key, val)
	})
}

func (t infoTable[T]) scanOne(dst *T, key string, val *proto.Value) error {
	fn, ok := t[util.ToLower(key)]
	if !ok {
		return nil
	}
	return fn(dst, val)
}

func intInfo[T any](field func(*T) *int64) func(*T, *proto.Value) error {
	return func(dst *T, v *proto.Value) error {
		if v.IsNil() {
			return nil
		}
		n, err := v.Int64()
		if err != nil {
			// Some modules report counters as doubles.
			f, ferr := v.Float64()
			if ferr != nil {
				return err
			}
			n = int64(f)
		}
		*field(dst) = n
		return nil
	}
}

func floatInfo[T any](field func(*T) *float64) func(*T, *proto.Value) error {
	return func(dst *T, v *proto.Value) error {
		if v.IsNil() {
			return nil
		}
		f, err := v.Float64()
		if err != nil {
			return err
		}
		*field(dst) = f
		return nil
	}
}

func stringInfo[T any](field func(*T) *string) func(*T, *proto.Value) error {
	return func(dst *T, v *proto.Value) error {
		s, err := v.Text()
		if err != nil {
			return err
		}
		*field(dst) = s
		return nil
	}
}
