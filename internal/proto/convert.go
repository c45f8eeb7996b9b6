package proto

import (
	"fmt"
	"maps"
	"math/big"
	"slices"
	"strings"
)

// FromInterface converts a reply decoded by the driver (go-redis hands out
// string, int64, float64, bool, nil, *big.Int, []interface{},
// map[interface{}]interface{} and error values) into a Value.
//
// Go maps do not keep the server order of a RESP3 map, so map entries are
// sorted by key.
func FromInterface(v interface{}) *Value {
	switch v := v.(type) {
	case nil:
		return &Value{Typ: redisNil}
	case *Value:
		return v
	case string:
		return &Value{Typ: redisString, Str: v}
	case []byte:
		return &Value{Typ: redisString, Str: string(v)}
	case int64:
		return &Value{Typ: redisInteger, Integer: v}
	case int:
		return &Value{Typ: redisInteger, Integer: int64(v)}
	case float64:
		return &Value{Typ: redisFloat, Float: v}
	case bool:
		return &Value{Typ: redisBool, Boolean: v}
	case *big.Int:
		return &Value{Typ: redisBigInt, BigInt: v}
	case []interface{}:
		slice := make([]*Value, len(v))
		for i, elem := range v {
			slice[i] = FromInterface(elem)
		}
		return &Value{Typ: redisArray, Slice: slice}
	case []string:
		slice := make([]*Value, len(v))
		for i, elem := range v {
			slice[i] = &Value{Typ: redisString, Str: elem}
		}
		return &Value{Typ: redisArray, Slice: slice}
	case map[interface{}]interface{}:
		keys := slices.SortedFunc(maps.Keys(v), compareKeys)
		pairs := make([]Pair, 0, len(v))
		for _, key := range keys {
			pairs = append(pairs, Pair{Key: FromInterface(key), Val: FromInterface(v[key])})
		}
		return &Value{Typ: redisMap, Map: pairs}
	case map[string]interface{}:
		pairs := make([]Pair, 0, len(v))
		for _, key := range slices.Sorted(maps.Keys(v)) {
			pairs = append(pairs, Pair{Key: &Value{Typ: redisString, Str: key}, Val: FromInterface(v[key])})
		}
		return &Value{Typ: redisMap, Map: pairs}
	case error:
		return &Value{Typ: redisError, Str: v.Error(), RedisError: v}
	default:
		return &Value{Typ: redisString, Str: fmt.Sprint(v)}
	}
}

func compareKeys(a, b interface{}) int {
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
