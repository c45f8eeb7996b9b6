package stack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis-stack/internal/args"
	"github.com/redis/go-redis-stack/internal/proto"
)

const (
	jsonSet         = "JSON.SET"
	jsonMSet        = "JSON.MSET"
	jsonMerge       = "JSON.MERGE"
	jsonGet         = "JSON.GET"
	jsonMGet        = "JSON.MGET"
	jsonDel         = "JSON.DEL"
	jsonForget      = "JSON.FORGET"
	jsonClear       = "JSON.CLEAR"
	jsonType        = "JSON.TYPE"
	jsonArrAppend   = "JSON.ARRAPPEND"
	jsonArrInsert   = "JSON.ARRINSERT"
	jsonArrIndex    = "JSON.ARRINDEX"
	jsonArrLen      = "JSON.ARRLEN"
	jsonArrPop      = "JSON.ARRPOP"
	jsonArrTrim     = "JSON.ARRTRIM"
	jsonObjKeys     = "JSON.OBJKEYS"
	jsonObjLen      = "JSON.OBJLEN"
	jsonStrLen      = "JSON.STRLEN"
	jsonStrAppend   = "JSON.STRAPPEND"
	jsonToggle      = "JSON.TOGGLE"
	jsonNumIncrBy   = "JSON.NUMINCRBY"
	jsonNumMultBy   = "JSON.NUMMULTBY"
	jsonDebugMemory = "JSON.DEBUG MEMORY"

	jsonIndent  = "INDENT"
	jsonNewline = "NEWLINE"
	jsonSpace   = "SPACE"
)

// JSONGetArgs formats the reply of JSON.GET.
type JSONGetArgs struct {
	Indent  string
	Newline string
	Space   string
}

// JSONSetArgs is one triplet of JSON.MSET.
type JSONSetArgs struct {
	Key   string
	Path  string
	Value interface{}
}

// jsonValue returns the JSON text of value. Strings and byte slices are
// assumed to hold JSON already; anything else goes through encoding/json.
func jsonValue(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return v, nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	}
}

func jsonValues(values []interface{}) ([]interface{}, error) {
	out := make([]interface{}, len(values))
	for i, v := range values {
		j, err := jsonValue(v)
		if err != nil {
			return nil, err
		}
		out[i] = j
	}
	return out, nil
}

func marshalFailed(ctx context.Context, name string, err error) baseCmd {
	return failedCmd(ctx, name, args.Fail(name, "cannot marshal value: "+err.Error()))
}

// JSONSet sets the JSON value at path. The value is marshalled with
// encoding/json unless it is a string or a []byte, which is sent as is.
func (c cmdable) JSONSet(ctx context.Context, key, path string, value interface{}) *StatusCmd {
	return c.JSONSetMode(ctx, key, path, value, "")
}

// JSONSetMode is JSONSet with a mode of "NX" or "XX". The result is false
// when the condition of the mode was not met.
func (c cmdable) JSONSetMode(ctx context.Context, key, path string, value interface{}, mode string) *StatusCmd {
	cmd := &StatusCmd{tolerant: true}
	data, err := jsonValue(value)
	if err != nil {
		cmd.baseCmd = marshalFailed(ctx, jsonSet, err)
		return cmd
	}

	mode = strings.ToUpper(mode)
	cmd.baseCmd = buildCmd(ctx, args.Schema{
		Name:   jsonSet,
		Checks: []args.Check{args.Supported(mode == "" || mode == kwNX || mode == kwXX, "mode "+mode)},
		Parts: []args.Part{
			args.Pos(key, path, data),
			args.Opt("", mode != "", mode),
		},
	})
	_ = c(ctx, cmd)
	return cmd
}

// JSONMSet sets several values, possibly in several keys, atomically.
func (c cmdable) JSONMSet(ctx context.Context, params ...JSONSetArgs) *StatusCmd {
	cmd := &StatusCmd{tolerant: true}
	flat := make([]interface{}, 0, 3*len(params))
	for _, p := range params {
		data, err := jsonValue(p.Value)
		if err != nil {
			cmd.baseCmd = marshalFailed(ctx, jsonMSet, err)
			return cmd
		}
		flat = append(flat, p.Key, p.Path, data)
	}

	cmd.baseCmd = buildCmd(ctx, args.Schema{
		Name:   jsonMSet,
		Checks: []args.Check{args.NonEmpty("triplets", len(params))},
		Parts:  []args.Part{args.Pos(flat...)},
	})
	_ = c(ctx, cmd)
	return cmd
}

// JSONMerge merges value into the value at path following RFC 7396.
func (c cmdable) JSONMerge(ctx context.Context, key, path string, value interface{}) *StatusCmd {
	cmd := &StatusCmd{tolerant: true}
	data, err := jsonValue(value)
	if err != nil {
		cmd.baseCmd = marshalFailed(ctx, jsonMerge, err)
		return cmd
	}
	cmd.baseCmd = buildCmd(ctx, args.Schema{
		Name:  jsonMerge,
		Parts: []args.Part{args.Pos(key, path, data)},
	})
	_ = c(ctx, cmd)
	return cmd
}

// JSONGet returns the JSON text at paths. With several paths the reply is a
// JSON object keyed by path.
func (c cmdable) JSONGet(ctx context.Context, key string, paths ...string) *JSONCmd {
	return c.JSONGetWithArgs(ctx, key, nil, paths...)
}

func (c cmdable) JSONGetWithArgs(ctx context.Context, key string, options *JSONGetArgs, paths ...string) *JSONCmd {
	if options == nil {
		options = &JSONGetArgs{}
	}
	cmd := &JSONCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: jsonGet,
		Parts: []args.Part{
			args.Pos(key),
			args.Opt(jsonIndent, options.Indent != "", options.Indent),
			args.Opt(jsonNewline, options.Newline != "", options.Newline),
			args.Opt(jsonSpace, options.Space != "", options.Space),
			args.Pos(args.Strings(paths)...),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// JSONMGet returns the value at path of each key. The path comes first so
// that keys can be variadic.
func (c cmdable) JSONMGet(ctx context.Context, path string, keys ...string) *JSONSliceCmd {
	cmd := &JSONSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   jsonMGet,
		Checks: []args.Check{args.NonEmpty("keys", len(keys))},
		Parts:  []args.Part{args.Pos(args.Strings(keys)...), args.Pos(path)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// JSONDel deletes the values at path and returns their number. An empty
// path deletes the key.
func (c cmdable) JSONDel(ctx context.Context, key, path string) *IntCmd {
	return c.jsonKeyPathInt(ctx, jsonDel, key, path)
}

func (c cmdable) JSONForget(ctx context.Context, key, path string) *IntCmd {
	return c.jsonKeyPathInt(ctx, jsonForget, key, path)
}

// JSONClear empties arrays and objects and zeroes numbers at path.
func (c cmdable) JSONClear(ctx context.Context, key, path string) *IntCmd {
	return c.jsonKeyPathInt(ctx, jsonClear, key, path)
}

// JSONDebugMemory returns the size in bytes of the value at path.
func (c cmdable) JSONDebugMemory(ctx context.Context, key, path string) *IntCmd {
	return c.jsonKeyPathInt(ctx, jsonDebugMemory, key, path)
}

func (c cmdable) jsonKeyPathInt(ctx context.Context, name, key, path string) *IntCmd {
	cmd := &IntCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  name,
		Parts: []args.Part{args.Pos(key), args.Opt("", path != "", path)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) JSONType(ctx context.Context, key, path string) *StringSliceCmd {
	cmd := &StringSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  jsonType,
		Parts: []args.Part{args.Pos(key), args.Opt("", path != "", path)},
	}), scalar: true}
	_ = c(ctx, cmd)
	return cmd
}

// JSONArrAppend appends values to the arrays at path and returns their new
// lengths.
func (c cmdable) JSONArrAppend(ctx context.Context, key, path string, values ...interface{}) *IntPointerSliceCmd {
	cmd := &IntPointerSliceCmd{}
	data, err := jsonValues(values)
	if err != nil {
		cmd.baseCmd = marshalFailed(ctx, jsonArrAppend, err)
		return cmd
	}
	cmd.baseCmd = buildCmd(ctx, args.Schema{
		Name:   jsonArrAppend,
		Checks: []args.Check{args.NonEmpty("values", len(values))},
		Parts:  []args.Part{args.Pos(key, path), args.Pos(data...)},
	})
	_ = c(ctx, cmd)
	return cmd
}

// JSONArrInsert inserts values before index in the arrays at path.
func (c cmdable) JSONArrInsert(
	ctx context.Context, key, path string, index int64, values ...interface{},
) *IntPointerSliceCmd {
	cmd := &IntPointerSliceCmd{}
	data, err := jsonValues(values)
	if err != nil {
		cmd.baseCmd = marshalFailed(ctx, jsonArrInsert, err)
		return cmd
	}
	cmd.baseCmd = buildCmd(ctx, args.Schema{
		Name:   jsonArrInsert,
		Checks: []args.Check{args.NonEmpty("values", len(values))},
		Parts:  []args.Part{args.Pos(key, path, index), args.Pos(data...)},
	})
	_ = c(ctx, cmd)
	return cmd
}

// JSONArrIndex returns the position of the first occurrence of value in the
// arrays at path, -1 when absent.
func (c cmdable) JSONArrIndex(ctx context.Context, key, path string, value interface{}) *IntPointerSliceCmd {
	return c.jsonArrIndex(ctx, key, path, value, nil)
}

// JSONArrIndexStartStop limits the search to the [start, stop) slice.
func (c cmdable) JSONArrIndexStartStop(
	ctx context.Context, key, path string, value interface{}, start, stop int64,
) *IntPointerSliceCmd {
	return c.jsonArrIndex(ctx, key, path, value, []interface{}{start, stop})
}

func (c cmdable) jsonArrIndex(
	ctx context.Context, key, path string, value interface{}, bounds []interface{},
) *IntPointerSliceCmd {
	cmd := &IntPointerSliceCmd{}
	data, err := jsonValue(value)
	if err != nil {
		cmd.baseCmd = marshalFailed(ctx, jsonArrIndex, err)
		return cmd
	}
	cmd.baseCmd = buildCmd(ctx, args.Schema{
		Name:  jsonArrIndex,
		Parts: []args.Part{args.Pos(key, path, data), args.Pos(bounds...)},
	})
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) JSONArrLen(ctx context.Context, key, path string) *IntPointerSliceCmd {
	return c.jsonKeyPathInts(ctx, jsonArrLen, key, path)
}

// JSONArrPop removes and returns the element at index of the arrays at path.
func (c cmdable) JSONArrPop(ctx context.Context, key, path string, index int64) *StringSliceCmd {
	cmd := &StringSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  jsonArrPop,
		Parts: []args.Part{args.Pos(key, path, index)},
	}), scalar: true}
	_ = c(ctx, cmd)
	return cmd
}

// JSONArrTrim keeps the [start, stop] slice of the arrays at path.
func (c cmdable) JSONArrTrim(ctx context.Context, key, path string, start, stop int64) *IntPointerSliceCmd {
	cmd := &IntPointerSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  jsonArrTrim,
		Parts: []args.Part{args.Pos(key, path, start, stop)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// JSONObjKeys returns, for each object at path, its keys.
func (c cmdable) JSONObjKeys(ctx context.Context, key, path string) *SliceCmd {
	cmd := &SliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  jsonObjKeys,
		Parts: []args.Part{args.Pos(key, path)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) JSONObjLen(ctx context.Context, key, path string) *IntPointerSliceCmd {
	return c.jsonKeyPathInts(ctx, jsonObjLen, key, path)
}

func (c cmdable) JSONStrLen(ctx context.Context, key, path string) *IntPointerSliceCmd {
	return c.jsonKeyPathInts(ctx, jsonStrLen, key, path)
}

// JSONToggle flips the booleans at path and returns their new values as 0
// or 1.
func (c cmdable) JSONToggle(ctx context.Context, key, path string) *IntPointerSliceCmd {
	return c.jsonKeyPathInts(ctx, jsonToggle, key, path)
}

func (c cmdable) jsonKeyPathInts(ctx context.Context, name, key, path string) *IntPointerSliceCmd {
	cmd := &IntPointerSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  name,
		Parts: []args.Part{args.Pos(key, path)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// JSONStrAppend appends value, a JSON string such as `"abc"`, to the strings
// at path.
func (c cmdable) JSONStrAppend(ctx context.Context, key, path, value string) *IntPointerSliceCmd {
	cmd := &IntPointerSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  jsonStrAppend,
		Parts: []args.Part{args.Pos(key, path, value)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) JSONNumIncrBy(ctx context.Context, key, path string, value float64) *JSONCmd {
	return c.jsonNumOp(ctx, jsonNumIncrBy, key, path, value)
}

func (c cmdable) JSONNumMultBy(ctx context.Context, key, path string, value float64) *JSONCmd {
	return c.jsonNumOp(ctx, jsonNumMultBy, key, path, value)
}

func (c cmdable) jsonNumOp(ctx context.Context, name, key, path string, value float64) *JSONCmd {
	cmd := &JSONCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  name,
		Parts: []args.Part{args.Pos(key, path, value)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

//------------------------------------------------------------------------------

// JSONCmd holds the JSON text of a reply. Missing keys and paths yield "".
type JSONCmd struct {
	baseCmd

	val string
}

var _ Cmder = (*JSONCmd)(nil)

func NewJSONCmd(ctx context.Context, args ...interface{}) *JSONCmd {
	return &JSONCmd{
		baseCmd: newBaseCmd(ctx, args),
	}
}

func (cmd *JSONCmd) Val() string {
	if !cmd.Ready() {
		return ""
	}
	return cmd.val
}

func (cmd *JSONCmd) Result() (string, error) {
	if err := cmd.Err(); err != nil {
		return "", err
	}
	return cmd.val, nil
}

func (cmd *JSONCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

// Scan unmarshals the JSON text into dst.
func (cmd *JSONCmd) Scan(dst interface{}) error {
	if err := cmd.Err(); err != nil {
		return err
	}
	if cmd.val == "" {
		return fmt.Errorf("redis-stack: %s: empty reply", cmd.FullName())
	}
	return json.Unmarshal([]byte(cmd.val), dst)
}

// Expanded returns the reply decoded into plain Go values. It is nil for an
// empty reply.
func (cmd *JSONCmd) Expanded() (interface{}, error) {
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	if cmd.val == "" {
		return nil, nil
	}
	var v interface{}
	if err := json.Unmarshal([]byte(cmd.val), &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (cmd *JSONCmd) readReply(pv *proto.Value) (err error) {
	// RESP3 servers may reply with a number instead of its JSON text.
	if pv.IsSlice() {
		b, err := json.Marshal(pv.Interface())
		if err != nil {
			return err
		}
		cmd.val = string(b)
		return nil
	}
	cmd.val, err = pv.Text()
	return err
}

// JSONSliceCmd holds one decoded JSON value per key. Keys that do not exist
// or do not match the path yield nil.
type JSONSliceCmd struct {
	baseCmd

	val []interface{}
}

var _ Cmder = (*JSONSliceCmd)(nil)

func NewJSONSliceCmd(ctx context.Context, args ...interface{}) *JSONSliceCmd {
	return &JSONSliceCmd{
		baseCmd: newBaseCmd(ctx, args),
	}
}

func (cmd *JSONSliceCmd) Val() []interface{} {
	if !cmd.Ready() {
		return nil
	}
	return cmd.val
}

func (cmd *JSONSliceCmd) Result() ([]interface{}, error) {
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.val, nil
}

func (cmd *JSONSliceCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *JSONSliceCmd) readReply(pv *proto.Value) error {
	arr, err := pv.Array()
	if err != nil {
		return err
	}
	cmd.val = make([]interface{}, len(arr))
	for i, elem := range arr {
		s, err := elem.Text()
		if err != nil {
			return err
		}
		if s == "" {
			continue
		}
		if err := json.Unmarshal([]byte(s), &cmd.val[i]); err != nil {
			return err
		}
	}
	return nil
}
