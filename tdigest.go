package stack

import (
	"context"

	"github.com/redis/go-redis-stack/internal/args"
	"github.com/redis/go-redis-stack/internal/proto"
)

const (
	tdigestCreate      = "TDIGEST.CREATE"
	tdigestReset       = "TDIGEST.RESET"
	tdigestAdd         = "TDIGEST.ADD"
	tdigestMerge       = "TDIGEST.MERGE"
	tdigestMergeStore  = "TDIGEST.MERGESTORE"
	tdigestMin         = "TDIGEST.MIN"
	tdigestMax         = "TDIGEST.MAX"
	tdigestQuantile    = "TDIGEST.QUANTILE"
	tdigestCDF         = "TDIGEST.CDF"
	tdigestTrimmedMean = "TDIGEST.TRIMMED_MEAN"
	tdigestRank        = "TDIGEST.RANK"
	tdigestRevRank     = "TDIGEST.REVRANK"
	tdigestByRank      = "TDIGEST.BYRANK"
	tdigestByRevRank   = "TDIGEST.BYREVRANK"
	tdigestInfo        = "TDIGEST.INFO"
)

type TDigestMergeOptions struct {
	Compression int64
	Override    bool
}

func (c cmdable) TDigestCreate(ctx context.Context, key string) *StatusCmd {
	return c.TDigestCreateWithCompression(ctx, key, 0)
}

// TDigestCreateWithCompression creates a sketch; a compression of 0 keeps
// the server default.
func (c cmdable) TDigestCreateWithCompression(ctx context.Context, key string, compression int64) *StatusCmd {
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   tdigestCreate,
		Checks: []args.Check{args.NonNegative("compression", float64(compression))},
		Parts: []args.Part{
			args.Pos(key),
			args.Opt(kwCompression, compression != 0, compression),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) TDigestReset(ctx context.Context, key string) *StatusCmd {
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  tdigestReset,
		Parts: []args.Part{args.Pos(key)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) TDigestAdd(ctx context.Context, key string, values ...float64) *StatusCmd {
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   tdigestAdd,
		Checks: []args.Check{args.NonEmpty("values", len(values))},
		Parts:  []args.Part{args.Pos(key), args.Pos(args.Floats(values)...)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// TDigestMerge merges sources into dest. Without Override the sources are
// merged into the existing content of dest.
func (c cmdable) TDigestMerge(
	ctx context.Context, dest string, options *TDigestMergeOptions, sources ...string,
) *StatusCmd {
	if options == nil {
		options = &TDigestMergeOptions{}
	}
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: tdigestMerge,
		Checks: []args.Check{
			args.NonEmpty("source keys", len(sources)),
			args.NonNegative("compression", float64(options.Compression)),
		},
		Parts: []args.Part{
			args.Pos(dest),
			args.Counted("", args.Strings(sources)...),
			args.Opt(kwCompression, options.Compression != 0, options.Compression),
			args.Flag(kwOverride, options.Override),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// TDigestMergeStore merges sources into a new sketch at dest.
//
// Deprecated: TDIGEST.MERGESTORE was replaced by TDIGEST.MERGE.
func (c cmdable) TDigestMergeStore(ctx context.Context, dest string, compression int64, sources ...string) *StatusCmd {
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   tdigestMergeStore,
		Checks: []args.Check{args.NonEmpty("source keys", len(sources))},
		Parts: []args.Part{
			args.Pos(dest),
			args.Counted("", args.Strings(sources)...),
			args.Opt(kwCompression, compression != 0, compression),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) TDigestMin(ctx context.Context, key string) *FloatCmd {
	return c.tdigestFloat(ctx, tdigestMin, key)
}

func (c cmdable) TDigestMax(ctx context.Context, key string) *FloatCmd {
	return c.tdigestFloat(ctx, tdigestMax, key)
}

func (c cmdable) tdigestFloat(ctx context.Context, name, key string) *FloatCmd {
	cmd := &FloatCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  name,
		Parts: []args.Part{args.Pos(key)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// TDigestTrimmedMean returns the mean of the values between the low and high
// cut quantiles.
func (c cmdable) TDigestTrimmedMean(ctx context.Context, key string, lowCut, highCut float64) *FloatCmd {
	cmd := &FloatCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: tdigestTrimmedMean,
		Checks: []args.Check{
			args.Require(lowCut >= 0 && highCut <= 1 && lowCut < highCut,
				"cut quantiles must satisfy 0 <= low < high <= 1"),
		},
		Parts: []args.Part{args.Pos(key, lowCut, highCut)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) TDigestQuantile(ctx context.Context, key string, quantiles ...float64) *FloatSliceCmd {
	return c.tdigestFloats(ctx, tdigestQuantile, key, "quantiles", args.Floats(quantiles))
}

func (c cmdable) TDigestCDF(ctx context.Context, key string, values ...float64) *FloatSliceCmd {
	return c.tdigestFloats(ctx, tdigestCDF, key, "values", args.Floats(values))
}

func (c cmdable) TDigestByRank(ctx context.Context, key string, ranks ...int64) *FloatSliceCmd {
	return c.tdigestFloats(ctx, tdigestByRank, key, "ranks", args.Ints(ranks))
}

func (c cmdable) TDigestByRevRank(ctx context.Context, key string, ranks ...int64) *FloatSliceCmd {
	return c.tdigestFloats(ctx, tdigestByRevRank, key, "ranks", args.Ints(ranks))
}

func (c cmdable) tdigestFloats(ctx context.Context, name, key, what string, values []interface{}) *FloatSliceCmd {
	cmd := &FloatSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   name,
		Checks: []args.Check{args.NonEmpty(what, len(values))},
		Parts:  []args.Part{args.Pos(key), args.Pos(values...)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) TDigestRank(ctx context.Context, key string, values ...float64) *IntSliceCmd {
	return c.tdigestRanks(ctx, tdigestRank, key, values)
}

func (c cmdable) TDigestRevRank(ctx context.Context, key string, values ...float64) *IntSliceCmd {
	return c.tdigestRanks(ctx, tdigestRevRank, key, values)
}

func (c cmdable) tdigestRanks(ctx context.Context, name, key string, values []float64) *IntSliceCmd {
	cmd := &IntSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   name,
		Checks: []args.Check{args.NonEmpty("values", len(values))},
		Parts:  []args.Part{args.Pos(key), args.Pos(args.Floats(values)...)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) TDigestInfo(ctx context.Context, key string) *TDigestInfoCmd {
	cmd := &TDigestInfoCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  tdigestInfo,
		Parts: []args.Part{args.Pos(key)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

//------------------------------------------------------------------------------

type TDigestInfo struct {
	Compression       int64
	Capacity          int64
	MergedNodes       int64
	UnmergedNodes     int64
	MergedWeight      float64
	UnmergedWeight    float64
	Observations      int64
	TotalCompressions int64
	MemoryUsage       int64
}

var tdigestInfoFields = infoTable[TDigestInfo]{
	"compression":        intInfo(func(i *TDigestInfo) *int64 { return &i.Compression }),
	"capacity":           intInfo(func(i *TDigestInfo) *int64 { return &i.Capacity }),
	"merged nodes":       intInfo(func(i *TDigestInfo) *int64 { return &i.MergedNodes }),
	"unmerged nodes":     intInfo(func(i *TDigestInfo) *int64 { return &i.UnmergedNodes }),
	"merged weight":      floatInfo(func(i *TDigestInfo) *float64 { return &i.MergedWeight }),
	"unmerged weight":    floatInfo(func(i *TDigestInfo) *float64 { return &i.UnmergedWeight }),
	"observations":       intInfo(func(i *TDigestInfo) *int64 { return &i.Observations }),
	"total compressions": intInfo(func(i *TDigestInfo) *int64 { return &i.TotalCompressions }),
	"memory usage":       intInfo(func(i *TDigestInfo) *int64 { return &i.MemoryUsage }),
}

type TDigestInfoCmd struct {
	baseCmd

	val TDigestInfo
}

var _ Cmder = (*TDigestInfoCmd)(nil)

func (cmd *TDigestInfoCmd) Val() TDigestInfo {
	if !cmd.Ready() {
		return TDigestInfo{}
	}
	return cmd.val
}

func (cmd *TDigestInfoCmd) Result() (TDigestInfo, error) {
	if err := cmd.Err(); err != nil {
		return TDigestInfo{}, err
	}
	return cmd.val, nil
}

func (cmd *TDigestInfoCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *TDigestInfoCmd) readReply(pv *proto.Value) error {
	return tdigestInfoFields.scan(&cmd.val, pv)
}
