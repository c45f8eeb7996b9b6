package stack

import (
	"context"

	"github.com/redis/go-redis-stack/internal/args"
	"github.com/redis/go-redis-stack/internal/proto"
)

const (
	topkReserve = "TOPK.RESERVE"
	topkAdd     = "TOPK.ADD"
	topkIncrBy  = "TOPK.INCRBY"
	topkQuery   = "TOPK.QUERY"
	topkCount   = "TOPK.COUNT"
	topkList    = "TOPK.LIST"
	topkInfo    = "TOPK.INFO"
)

// TopKIncrement is an item and the amount its score is increased by.
type TopKIncrement struct {
	Item      interface{}
	Increment int64
}

// TopKReserve creates a TopK sketch keeping the k most frequent items, with
// the server defaults for width, depth and decay.
func (c cmdable) TopKReserve(ctx context.Context, key string, k int64) *StatusCmd {
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  topkReserve,
		Parts: []args.Part{args.Pos(key, k)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) TopKReserveWithOptions(
	ctx context.Context, key string, k int64, width, depth int64, decay float64,
) *StatusCmd {
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: topkReserve,
		Checks: []args.Check{
			args.Require(width > 0 && depth > 0, "width and depth must be positive"),
			args.Require(decay >= 0 && decay <= 1, "decay must be between 0 and 1"),
		},
		Parts: []args.Part{args.Pos(key, k, width, depth, decay)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// TopKAdd adds items and returns, for each item, the item it expelled from
// the list or "" when nothing was expelled.
func (c cmdable) TopKAdd(ctx context.Context, key string, items ...interface{}) *StringSliceCmd {
	cmd := &StringSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   topkAdd,
		Checks: []args.Check{args.NonEmpty("items", len(items))},
		Parts:  []args.Part{args.Pos(key), args.Pos(items...)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) TopKIncrBy(ctx context.Context, key string, items ...TopKIncrement) *StringSliceCmd {
	pairs := make([]interface{}, 0, 2*len(items))
	negative := false
	for _, item := range items {
		negative = negative || item.Increment < 0
		pairs = append(pairs, item.Item, item.Increment)
	}

	cmd := &StringSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: topkIncrBy,
		Checks: []args.Check{
			args.NonEmpty("items", len(items)),
			args.Require(!negative, "increment must not be negative"),
		},
		Parts: []args.Part{args.Pos(key), args.Pos(pairs...)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) TopKQuery(ctx context.Context, key string, items ...interface{}) *BoolSliceCmd {
	cmd := &BoolSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   topkQuery,
		Checks: []args.Check{args.NonEmpty("items", len(items))},
		Parts:  []args.Part{args.Pos(key), args.Pos(items...)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// TopKCount returns the estimated count of each item.
//
// Deprecated: the command was removed in RedisBloom 2.4; use CMS for counts.
func (c cmdable) TopKCount(ctx context.Context, key string, items ...interface{}) *IntSliceCmd {
	cmd := &IntSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   topkCount,
		Checks: []args.Check{args.NonEmpty("items", len(items))},
		Parts:  []args.Part{args.Pos(key), args.Pos(items...)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) TopKList(ctx context.Context, key string) *StringSliceCmd {
	cmd := &StringSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  topkList,
		Parts: []args.Part{args.Pos(key)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) TopKListWithCount(ctx context.Context, key string) *TopKListWithCountCmd {
	cmd := &TopKListWithCountCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  topkList,
		Parts: []args.Part{args.Pos(key), args.Flag(kwWithCount, true)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) TopKInfo(ctx context.Context, key string) *TopKInfoCmd {
	cmd := &TopKInfoCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  topkInfo,
		Parts: []args.Part{args.Pos(key)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

//------------------------------------------------------------------------------

type TopKItem struct {
	Item  string
	Count int64
}

type TopKListWithCountCmd struct {
	baseCmd

	val []TopKItem
}

var _ Cmder = (*TopKListWithCountCmd)(nil)

func (cmd *TopKListWithCountCmd) Val() []TopKItem {
	if !cmd.Ready() {
		return nil
	}
	return cmd.val
}

func (cmd *TopKListWithCountCmd) Result() ([]TopKItem, error) {
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.val, nil
}

func (cmd *TopKListWithCountCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

// readReply keeps the order of the flattened [item, count, ...] reply, which
// is sorted by count.
func (cmd *TopKListWithCountCmd) readReply(pv *proto.Value) error {
	pairs, err := pv.Pairs()
	if err != nil {
		return err
	}
	cmd.val = make([]TopKItem, len(pairs))
	for i, p := range pairs {
		if cmd.val[i].Item, err = p.Key.Text(); err != nil {
			return err
		}
		if cmd.val[i].Count, err = p.Val.Int64(); err != nil {
			return err
		}
	}
	return nil
}

type TopKInfo struct {
	K     int64
	Width int64
	Depth int64
	Decay float64
}

var topkInfoFields = infoTable[TopKInfo]{
	"k":     intInfo(func(i *TopKInfo) *int64 { return &i.K }),
	"width": intInfo(func(i *TopKInfo) *int64 { return &i.Width }),
	"depth": intInfo(func(i *TopKInfo) *int64 { return &i.Depth }),
	"decay": floatInfo(func(i *TopKInfo) *float64 { return &i.Decay }),
}

type TopKInfoCmd struct {
	baseCmd

	val TopKInfo
}

var _ Cmder = (*TopKInfoCmd)(nil)

func (cmd *TopKInfoCmd) Val() TopKInfo {
	if !cmd.Ready() {
		return TopKInfo{}
	}
	return cmd.val
}

func (cmd *TopKInfoCmd) Result() (TopKInfo, error) {
	if err := cmd.Err(); err != nil {
		return TopKInfo{}, err
	}
	return cmd.val, nil
}

func (cmd *TopKInfoCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *TopKInfoCmd) readReply(pv *proto.Value) error {
	return topkInfoFields.scan(&cmd.val, pv)
}
