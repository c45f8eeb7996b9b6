package proto

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/redis/go-redis-stack/internal/util"
)

// Value is a decoded reply as handed over by the driver. It is read-only for
// decoders.
type Value struct {
	Typ     byte
	Str     string
	Integer int64
	Float   float64
	BigInt  *big.Int
	Boolean bool
	Slice   []*Value
	Map     []Pair

	RedisError error
}

// Pair is one key/value entry of a map reply or of a flattened array.
type Pair struct {
	Key *Value
	Val *Value
}

var (
	errInt    = errors.New("redis return value is not int")
	errFloat  = errors.New("redis return value is not float")
	errBool   = errors.New("redis return value is not bool")
	errStatus = errors.New("redis return value is not a status")
	errMap    = errors.New("redis return value is not map")
	errSlice  = errors.New("redis return value is not array")
	errStr    = errors.New("redis return value cannot be converted to string")
)

func (v *Value) IsNil() bool {
	return v == nil || v.Typ == redisNil
}

func (v *Value) IsSlice() bool {
	return v != nil && v.Typ == redisArray
}

// IsInt reports whether the reply is an integer, not a numeric string.
func (v *Value) IsInt() bool {
	return v != nil && v.Typ == redisInteger
}

func (v *Value) IsMap() bool {
	return v != nil && v.Typ == redisMap
}

// Err returns the embedded error reply, if any.
func (v *Value) Err() error {
	if v == nil {
		return nil
	}
	return v.RedisError
}

func (v *Value) Int64() (int64, error) {
	if v.RedisError != nil {
		return 0, v.RedisError
	}
	switch v.Typ {
	case redisInteger:
		return v.Integer, nil
	case redisBigInt:
		return v.BigInt.Int64(), nil
	case redisFloat:
		return int64(v.Float), nil
	case redisString, redisStatus:
		return strconv.ParseInt(v.Str, 10, 64)
	}

	return 0, errInt
}

// Float64 converts numeric replies; string replies go through
// util.ParseFloat so that "-nan" yields util.NaNDefault.
func (v *Value) Float64() (float64, error) {
	if v.RedisError != nil {
		return 0, v.RedisError
	}
	switch v.Typ {
	case redisFloat:
		return v.Float, nil
	case redisInteger:
		return float64(v.Integer), nil
	case redisString, redisStatus:
		return util.ParseFloat(v.Str)
	}

	return 0, errFloat
}

func (v *Value) Bool() (bool, error) {
	if v.RedisError != nil {
		return false, v.RedisError
	}
	switch v.Typ {
	case redisBool:
		return v.Boolean, nil
	case redisInteger:
		return v.Integer != 0, nil
	case redisString, redisStatus:
		return strconv.ParseBool(v.Str)
	}

	return false, errBool
}

// Status reports whether the reply is the literal "OK". A null reply is a
// negative outcome, not an error.
func (v *Value) Status() (bool, error) {
	if v.RedisError != nil {
		return false, v.RedisError
	}
	switch v.Typ {
	case redisNil:
		return false, nil
	case redisStatus, redisString:
		return v.Str == "OK", nil
	case redisBool:
		return v.Boolean, nil
	}

	return false, errStatus
}

// Member decodes one element of a membership reply: anything that
// stringifies to "1" is true, everything else (null included) is false.
func (v *Value) Member() bool {
	if v.IsNil() || v.RedisError != nil {
		return false
	}
	s, err := v.String()
	if err != nil {
		return false
	}
	return s == "1" || s == "true"
}

func (v *Value) String() (string, error) {
	if v.RedisError != nil {
		return "", v.RedisError
	}

	switch v.Typ {
	case redisStatus, redisString:
		return v.Str, nil
	case redisInteger:
		return strconv.FormatInt(v.Integer, 10), nil
	case redisFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64), nil
	case redisBool:
		if v.Boolean {
			return "true", nil
		}
		return "false", nil
	case redisBigInt:
		return v.BigInt.String(), nil
	}

	return "", errStr
}

// Text is like String but maps a null reply to "".
func (v *Value) Text() (string, error) {
	if v.IsNil() {
		return "", nil
	}
	return v.String()
}

func (v *Value) Array() ([]*Value, error) {
	if v.RedisError != nil {
		return nil, v.RedisError
	}
	if v.Typ != redisArray {
		return nil, errSlice
	}
	return v.Slice, nil
}

// ArrayLen returns the elements of an array reply that must hold exactly n
// elements.
func (v *Value) ArrayLen(n int) ([]*Value, error) {
	arr, err := v.Array()
	if err != nil {
		return nil, err
	}
	if len(arr) != n {
		return nil, fmt.Errorf("got %d elements in the reply, wanted %d", len(arr), n)
	}
	return arr, nil
}

// Pairs walks a map reply or a flattened [k1, v1, k2, v2, ...] array.
func (v *Value) Pairs() ([]Pair, error) {
	if v.RedisError != nil {
		return nil, v.RedisError
	}

	switch v.Typ {
	case redisMap:
		return v.Map, nil
	case redisArray:
		n := len(v.Slice)
		if n%2 != 0 {
			return nil, errors.New("the map requires the result set to be a multiple of 2")
		}
		pairs := make([]Pair, 0, n/2)
		for i := 0; i < n; i += 2 {
			pairs = append(pairs, Pair{Key: v.Slice[i], Val: v.Slice[i+1]})
		}
		return pairs, nil
	}

	return nil, errMap
}

// MapScan calls fn for every key of a map-like reply. Keys are stringified.
func (v *Value) MapScan(fn func(key string, val *Value) error) error {
	pairs, err := v.Pairs()
	if err != nil {
		return err
	}
	for _, p := range pairs {
		key, err := p.Key.String()
		if err != nil {
			return err
		}
		if err := fn(key, p.Val); err != nil {
			return err
		}
	}
	return nil
}

func (v *Value) SliceString() ([]string, error) {
	arr, err := v.Array()
	if err != nil {
		return nil, err
	}
	ss := make([]string, 0, len(arr))
	for _, val := range arr {
		s, err := val.Text()
		if err != nil {
			return nil, err
		}
		ss = append(ss, s)
	}
	return ss, nil
}

func (v *Value) SliceInt64() ([]int64, error) {
	arr, err := v.Array()
	if err != nil {
		return nil, err
	}
	si := make([]int64, 0, len(arr))
	for _, val := range arr {
		i, err := val.Int64()
		if err != nil {
			return nil, err
		}
		si = append(si, i)
	}
	return si, nil
}

func (v *Value) SliceFloat64() ([]float64, error) {
	arr, err := v.Array()
	if err != nil {
		return nil, err
	}
	sf := make([]float64, 0, len(arr))
	for _, val := range arr {
		f, err := val.Float64()
		if err != nil {
			return nil, err
		}
		sf = append(sf, f)
	}
	return sf, nil
}

func (v *Value) SliceMember() ([]bool, error) {
	arr, err := v.Array()
	if err != nil {
		return nil, err
	}
	sb := make([]bool, 0, len(arr))
	for _, val := range arr {
		sb = append(sb, val.Member())
	}
	return sb, nil
}

// Interface converts the reply back into plain Go values: string, int64,
// float64, bool, nil, []interface{} and map[string]interface{}.
func (v *Value) Interface() interface{} {
	if v == nil {
		return nil
	}
	if v.RedisError != nil {
		return v.RedisError
	}

	switch v.Typ {
	case redisStatus, redisString:
		return v.Str
	case redisInteger:
		return v.Integer
	case redisFloat:
		return v.Float
	case redisBool:
		return v.Boolean
	case redisBigInt:
		return v.BigInt.String()
	case redisArray:
		slice := make([]interface{}, 0, len(v.Slice))
		for _, val := range v.Slice {
			slice = append(slice, val.Interface())
		}
		return slice
	case redisMap:
		m := make(map[string]interface{}, len(v.Map))
		for _, p := range v.Map {
			key, _ := p.Key.String()
			m[key] = p.Val.Interface()
		}
		return m
	}

	return nil
}
