package stack

import (
	"context"
	"time"

	"github.com/redis/go-redis-stack/internal/args"
	"github.com/redis/go-redis-stack/internal/proto"
)

const (
	clientSetInfo = "CLIENT SETINFO"
	bzPopMin      = "BZPOPMIN"
	bzPopMax      = "BZPOPMAX"
	bzMPop        = "BZMPOP"
	blPop         = "BLPOP"
	brPop         = "BRPOP"
	blMPop        = "BLMPOP"
	blMove        = "BLMOVE"
)

// ZOrder selects which end of a sorted set BZMPop pops from.
type ZOrder int

const (
	ZMin ZOrder = iota + 1
	ZMax
)

var zOrderTokens = enumTable[ZOrder]{
	ZMin: "MIN",
	ZMax: "MAX",
}

func (o ZOrder) String() string {
	return zOrderTokens.String(o)
}

// ListDirection selects an end of a list.
type ListDirection int

const (
	ListLeft ListDirection = iota + 1
	ListRight
)

var listDirectionTokens = enumTable[ListDirection]{
	ListLeft:  "LEFT",
	ListRight: "RIGHT",
}

func (d ListDirection) String() string {
	return listDirectionTokens.String(d)
}

// timeoutSec renders a blocking timeout in seconds. 0 blocks forever.
func timeoutSec(timeout time.Duration) float64 {
	return timeout.Seconds()
}

// LibraryInfo names the client library. Exactly one field must be set.
type LibraryInfo struct {
	LibName *string
	LibVer  *string
}

// ClientSetInfo sets the library name or version reported by CLIENT LIST.
// Servers without CLIENT SETINFO reply with an error, which callers usually
// ignore.
func (c cmdable) ClientSetInfo(ctx context.Context, info LibraryInfo) *StatusCmd {
	var attr, value string
	switch {
	case info.LibName != nil:
		attr, value = "LIB-NAME", *info.LibName
	case info.LibVer != nil:
		attr, value = "LIB-VER", *info.LibVer
	}
	cmd := &StatusCmd{
		baseCmd: buildCmd(ctx, args.Schema{
			Name: clientSetInfo,
			Checks: []args.Check{
				args.Exclusive("LibName and LibVer are mutually exclusive", info.LibName != nil, info.LibVer != nil),
				args.Require(attr != "", "LibName or LibVer is required"),
			},
			Parts: []args.Part{args.Pos(attr, value)},
		}),
		tolerant: true,
	}
	_ = c(ctx, cmd)
	return cmd
}

func blockingChecks(timeout time.Duration, keys []string) []args.Check {
	return []args.Check{
		args.NonEmpty("keys", len(keys)),
		args.NonNegative("timeout", float64(timeout)),
	}
}

// BZPopMin pops the lowest scored member of the first non-empty sorted set,
// blocking up to timeout. The result is zero when the timeout expires.
func (c cmdable) BZPopMin(ctx context.Context, timeout time.Duration, keys ...string) *ZWithKeyCmd {
	return c.bzPop(ctx, bzPopMin, timeout, keys)
}

func (c cmdable) BZPopMax(ctx context.Context, timeout time.Duration, keys ...string) *ZWithKeyCmd {
	return c.bzPop(ctx, bzPopMax, timeout, keys)
}

func (c cmdable) bzPop(ctx context.Context, name string, timeout time.Duration, keys []string) *ZWithKeyCmd {
	cmd := &ZWithKeyCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   name,
		Checks: blockingChecks(timeout, keys),
		Parts: []args.Part{
			args.Pos(args.Strings(keys)...),
			args.Pos(timeoutSec(timeout)),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// BZMPop pops up to count members from the first non-empty sorted set.
func (c cmdable) BZMPop(ctx context.Context, timeout time.Duration, order ZOrder, count int64, keys ...string) *ZMPopCmd {
	token, ok := zOrderTokens.token(order)
	cmd := &ZMPopCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: bzMPop,
		Checks: append(blockingChecks(timeout, keys),
			args.Supported(ok, "order"),
			args.NonNegative("count", float64(count)),
		),
		Parts: []args.Part{
			args.Pos(timeoutSec(timeout)),
			args.Counted("", args.Strings(keys)...),
			args.Pos(token),
			args.Opt(kwCount, count > 0, count),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// BLPop pops the head of the first non-empty list, blocking up to timeout.
func (c cmdable) BLPop(ctx context.Context, timeout time.Duration, keys ...string) *KeyValueCmd {
	return c.bPop(ctx, blPop, timeout, keys)
}

func (c cmdable) BRPop(ctx context.Context, timeout time.Duration, keys ...string) *KeyValueCmd {
	return c.bPop(ctx, brPop, timeout, keys)
}

func (c cmdable) bPop(ctx context.Context, name string, timeout time.Duration, keys []string) *KeyValueCmd {
	cmd := &KeyValueCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   name,
		Checks: blockingChecks(timeout, keys),
		Parts: []args.Part{
			args.Pos(args.Strings(keys)...),
			args.Pos(timeoutSec(timeout)),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// BLMPop pops up to count elements from the first non-empty list.
func (c cmdable) BLMPop(
	ctx context.Context, timeout time.Duration, direction ListDirection, count int64, keys ...string,
) *KeyValuesCmd {
	token, ok := listDirectionTokens.token(direction)
	cmd := &KeyValuesCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: blMPop,
		Checks: append(blockingChecks(timeout, keys),
			args.Supported(ok, "direction"),
			args.NonNegative("count", float64(count)),
		),
		Parts: []args.Part{
			args.Pos(timeoutSec(timeout)),
			args.Counted("", args.Strings(keys)...),
			args.Pos(token),
			args.Opt(kwCount, count > 0, count),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// BLMove moves an element from source to destination and returns it, ""
// when the timeout expires.
func (c cmdable) BLMove(
	ctx context.Context, source, destination string, from, to ListDirection, timeout time.Duration,
) *StringCmd {
	fromToken, fromOK := listDirectionTokens.token(from)
	toToken, toOK := listDirectionTokens.token(to)
	cmd := &StringCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: blMove,
		Checks: []args.Check{
			args.Supported(fromOK && toOK, "direction"),
			args.NonNegative("timeout", float64(timeout)),
		},
		Parts: []args.Part{args.Pos(source, destination, fromToken, toToken, timeoutSec(timeout))},
	})}
	_ = c(ctx, cmd)
	return cmd
}

//------------------------------------------------------------------------------

// Z is a sorted set member.
type Z struct {
	Score  float64
	Member string
}

// ZWithKey is a member popped from the sorted set at Key.
type ZWithKey struct {
	Z
	Key string
}

type ZWithKeyCmd struct {
	baseCmd

	val ZWithKey
}

var _ Cmder = (*ZWithKeyCmd)(nil)

func (cmd *ZWithKeyCmd) Val() ZWithKey {
	if !cmd.Ready() {
		return ZWithKey{}
	}
	return cmd.val
}

func (cmd *ZWithKeyCmd) Result() (ZWithKey, error) {
	if err := cmd.Err(); err != nil {
		return ZWithKey{}, err
	}
	return cmd.val, nil
}

func (cmd *ZWithKeyCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *ZWithKeyCmd) readReply(pv *proto.Value) (err error) {
	if pv.IsNil() {
		return nil
	}
	arr, err := pv.ArrayLen(3)
	if err != nil {
		return err
	}
	if cmd.val.Key, err = arr[0].Text(); err != nil {
		return err
	}
	if cmd.val.Member, err = arr[1].Text(); err != nil {
		return err
	}
	cmd.val.Score, err = arr[2].Float64()
	return err
}

type ZMPopCmd struct {
	baseCmd

	key string
	val []Z
}

var _ Cmder = (*ZMPopCmd)(nil)

func (cmd *ZMPopCmd) Val() (string, []Z) {
	if !cmd.Ready() {
		return "", nil
	}
	return cmd.key, cmd.val
}

func (cmd *ZMPopCmd) Result() (string, []Z, error) {
	if err := cmd.Err(); err != nil {
		return "", nil, err
	}
	return cmd.key, cmd.val, nil
}

func (cmd *ZMPopCmd) String() string {
	_, val := cmd.Val()
	return cmdString(cmd, val)
}

// readReply decodes [key, [[member, score], ...]]. RESP2 servers send the
// score as a string.
func (cmd *ZMPopCmd) readReply(pv *proto.Value) (err error) {
	if pv.IsNil() {
		return nil
	}
	arr, err := pv.ArrayLen(2)
	if err != nil {
		return err
	}
	if cmd.key, err = arr[0].Text(); err != nil {
		return err
	}
	members, err := arr[1].Array()
	if err != nil {
		return err
	}
	cmd.val = make([]Z, 0, len(members))
	for _, m := range members {
		pair, err := m.ArrayLen(2)
		if err != nil {
			return err
		}
		var z Z
		if z.Member, err = pair[0].Text(); err != nil {
			return err
		}
		if z.Score, err = pair[1].Float64(); err != nil {
			return err
		}
		cmd.val = append(cmd.val, z)
	}
	return nil
}

// KeyValue is an element popped from the list at Key.
type KeyValue struct {
	Key   string
	Value string
}

type KeyValueCmd struct {
	baseCmd

	val KeyValue
}

var _ Cmder = (*KeyValueCmd)(nil)

func (cmd *KeyValueCmd) Val() KeyValue {
	if !cmd.Ready() {
		return KeyValue{}
	}
	return cmd.val
}

func (cmd *KeyValueCmd) Result() (KeyValue, error) {
	if err := cmd.Err(); err != nil {
		return KeyValue{}, err
	}
	return cmd.val, nil
}

func (cmd *KeyValueCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *KeyValueCmd) readReply(pv *proto.Value) (err error) {
	if pv.IsNil() {
		return nil
	}
	arr, err := pv.ArrayLen(2)
	if err != nil {
		return err
	}
	if cmd.val.Key, err = arr[0].Text(); err != nil {
		return err
	}
	cmd.val.Value, err = arr[1].Text()
	return err
}

type KeyValuesCmd struct {
	baseCmd

	key string
	val []string
}

var _ Cmder = (*KeyValuesCmd)(nil)

func (cmd *KeyValuesCmd) Val() (string, []string) {
	if !cmd.Ready() {
		return "", nil
	}
	return cmd.key, cmd.val
}

func (cmd *KeyValuesCmd) Result() (string, []string, error) {
	if err := cmd.Err(); err != nil {
		return "", nil, err
	}
	return cmd.key, cmd.val, nil
}

func (cmd *KeyValuesCmd) String() string {
	_, val := cmd.Val()
	return cmdString(cmd, val)
}

func (cmd *KeyValuesCmd) readReply(pv *proto.Value) (err error) {
	if pv.IsNil() {
		return nil
	}
	arr, err := pv.ArrayLen(2)
	if err != nil {
		return err
	}
	if cmd.key, err = arr[0].Text(); err != nil {
		return err
	}
	cmd.val, err = arr[1].SliceString()
	return err
}
