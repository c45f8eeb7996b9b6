package stack

import (
	"context"

	"github.com/redis/go-redis-stack/internal/args"
	"github.com/redis/go-redis-stack/internal/proto"
)

const (
	cmsInitByDim  = "CMS.INITBYDIM"
	cmsInitByProb = "CMS.INITBYPROB"
	cmsIncrBy     = "CMS.INCRBY"
	cmsQuery      = "CMS.QUERY"
	cmsMerge      = "CMS.MERGE"
	cmsInfo       = "CMS.INFO"
)

// CMSItem is an item and the amount its count is increased by.
type CMSItem struct {
	Item      interface{}
	Increment int64
}

func (c cmdable) CMSInitByDim(ctx context.Context, key string, width, depth int64) *StatusCmd {
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  cmsInitByDim,
		Parts: []args.Part{args.Pos(key, width, depth)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) CMSInitByProb(ctx context.Context, key string, errorRate, probability float64) *StatusCmd {
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  cmsInitByProb,
		Parts: []args.Part{args.Pos(key, errorRate, probability)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// CMSIncrBy increases the counts of items and returns the updated counts.
func (c cmdable) CMSIncrBy(ctx context.Context, key string, items ...CMSItem) *IntSliceCmd {
	pairs := make([]interface{}, 0, 2*len(items))
	negative := false
	for _, item := range items {
		negative = negative || item.Increment < 0
		pairs = append(pairs, item.Item, item.Increment)
	}

	cmd := &IntSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: cmsIncrBy,
		Checks: []args.Check{
			args.NonEmpty("items", len(items)),
			args.Require(!negative, "increment must not be negative"),
		},
		Parts: []args.Part{args.Pos(key), args.Pos(pairs...)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) CMSQuery(ctx context.Context, key string, items ...interface{}) *IntSliceCmd {
	cmd := &IntSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   cmsQuery,
		Checks: []args.Check{args.NonEmpty("items", len(items))},
		Parts:  []args.Part{args.Pos(key), args.Pos(items...)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// CMSMerge merges sources into dest, which must exist and have the same
// dimensions.
func (c cmdable) CMSMerge(ctx context.Context, dest string, sources ...string) *StatusCmd {
	return c.CMSMergeWithWeights(ctx, dest, sources, nil)
}

// CMSMergeWithWeights merges sources into dest, multiplying each source by
// the weight at the same position. Weights are optional but, when given,
// there must be exactly one per source.
func (c cmdable) CMSMergeWithWeights(ctx context.Context, dest string, sources []string, weights []int64) *StatusCmd {
	negative := false
	for _, w := range weights {
		negative = negative || w < 0
	}

	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: cmsMerge,
		Checks: []args.Check{
			args.NonEmpty("source keys", len(sources)),
			args.Require(len(weights) == 0 || len(weights) == len(sources),
				"number of weights must match the number of source keys"),
			args.Require(!negative, "weight must not be negative"),
		},
		Parts: []args.Part{
			args.Pos(dest),
			args.Counted("", args.Strings(sources)...),
			args.List(kwWeights, args.Ints(weights)...),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) CMSInfo(ctx context.Context, key string) *CMSInfoCmd {
	cmd := &CMSInfoCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  cmsInfo,
		Parts: []args.Part{args.Pos(key)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

//------------------------------------------------------------------------------

type CMSInfo struct {
	Width int64
	Depth int64
	Count int64
}

var cmsInfoFields = infoTable[CMSInfo]{
	"width": intInfo(func(i *CMSInfo) *int64 { return &i.Width }),
	"depth": intInfo(func(i *CMSInfo) *int64 { return &i.Depth }),
	"count": intInfo(func(i *CMSInfo) *int64 { return &i.Count }),
}

type CMSInfoCmd struct {
	baseCmd

	val CMSInfo
}

var _ Cmder = (*CMSInfoCmd)(nil)

func (cmd *CMSInfoCmd) Val() CMSInfo {
	if !cmd.Ready() {
		return CMSInfo{}
	}
	return cmd.val
}

func (cmd *CMSInfoCmd) Result() (CMSInfo, error) {
	if err := cmd.Err(); err != nil {
		return CMSInfo{}, err
	}
	return cmd.val, nil
}

func (cmd *CMSInfoCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *CMSInfoCmd) readReply(pv *proto.Value) error {
	return cmsInfoFields.scan(&cmd.val, pv)
}
