package stack

import (
	"context"

	"github.com/redis/go-redis-stack/internal/args"
	"github.com/redis/go-redis-stack/internal/proto"
)

const (
	bfReserve   = "BF.RESERVE"
	bfAdd       = "BF.ADD"
	bfMAdd      = "BF.MADD"
	bfExists    = "BF.EXISTS"
	bfMExists   = "BF.MEXISTS"
	bfInsert    = "BF.INSERT"
	bfCard      = "BF.CARD"
	bfInfo      = "BF.INFO"
	bfScanDump  = "BF.SCANDUMP"
	bfLoadChunk = "BF.LOADCHUNK"

	bfError = "ERROR"
)

type BFReserveOptions struct {
	Expansion  int64
	NonScaling bool
}

type BFInsertOptions struct {
	Capacity   int64
	Error      float64
	Expansion  int64
	NoCreate   bool
	NonScaling bool
}

// BFReserve creates an empty Bloom filter.
func (c cmdable) BFReserve(ctx context.Context, key string, errorRate float64, capacity int64) *StatusCmd {
	return c.BFReserveWithArgs(ctx, key, errorRate, capacity, nil)
}

func (c cmdable) BFReserveWithArgs(
	ctx context.Context, key string, errorRate float64, capacity int64, options *BFReserveOptions,
) *StatusCmd {
	if options == nil {
		options = &BFReserveOptions{}
	}
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: bfReserve,
		Checks: []args.Check{
			args.Exclusive("EXPANSION and NONSCALING are mutually exclusive",
				options.Expansion != 0, options.NonScaling),
		},
		Parts: []args.Part{
			args.Pos(key, errorRate, capacity),
			args.Opt(kwExpansion, options.Expansion != 0, options.Expansion),
			args.Flag(kwNonScaling, options.NonScaling),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// BFAdd reports whether item was newly added.
func (c cmdable) BFAdd(ctx context.Context, key string, item interface{}) *BoolCmd {
	cmd := &BoolCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  bfAdd,
		Parts: []args.Part{args.Pos(key, item)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) BFMAdd(ctx context.Context, key string, items ...interface{}) *BoolSliceCmd {
	cmd := &BoolSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   bfMAdd,
		Checks: []args.Check{args.NonEmpty("items", len(items))},
		Parts:  []args.Part{args.Pos(key), args.Pos(items...)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) BFExists(ctx context.Context, key string, item interface{}) *BoolCmd {
	cmd := &BoolCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  bfExists,
		Parts: []args.Part{args.Pos(key, item)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) BFMExists(ctx context.Context, key string, items ...interface{}) *BoolSliceCmd {
	cmd := &BoolSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   bfMExists,
		Checks: []args.Check{args.NonEmpty("items", len(items))},
		Parts:  []args.Part{args.Pos(key), args.Pos(items...)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// BFInsert adds items, creating the filter with the given options unless
// NoCreate is set.
func (c cmdable) BFInsert(ctx context.Context, key string, options *BFInsertOptions, items ...interface{}) *BoolSliceCmd {
	if options == nil {
		options = &BFInsertOptions{}
	}
	cmd := &BoolSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: bfInsert,
		Checks: []args.Check{
			args.NonEmpty("items", len(items)),
			args.Exclusive("EXPANSION and NONSCALING are mutually exclusive",
				options.Expansion != 0, options.NonScaling),
			args.NonNegative("error rate", options.Error),
		},
		Parts: []args.Part{
			args.Pos(key),
			args.Opt(kwCapacity, options.Capacity != 0, options.Capacity),
			args.Opt(bfError, options.Error != 0, options.Error),
			args.Opt(kwExpansion, options.Expansion != 0, options.Expansion),
			args.Flag(kwNoCreate, options.NoCreate),
			args.Flag(kwNonScaling, options.NonScaling),
			args.List(kwItems, items...),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// BFCard returns the number of items added to the filter, 0 when the key
// does not exist.
func (c cmdable) BFCard(ctx context.Context, key string) *IntCmd {
	cmd := &IntCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  bfCard,
		Parts: []args.Part{args.Pos(key)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) BFInfo(ctx context.Context, key string) *BFInfoCmd {
	cmd := &BFInfoCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  bfInfo,
		Parts: []args.Part{args.Pos(key)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// BFScanDump returns the chunk of the filter that follows iterator. Start
// with 0 and stop when the returned iterator is 0.
func (c cmdable) BFScanDump(ctx context.Context, key string, iterator int64) *ScanDumpCmd {
	cmd := &ScanDumpCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  bfScanDump,
		Parts: []args.Part{args.Pos(key, iterator)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// BFLoadChunk restores a chunk returned by BFScanDump.
func (c cmdable) BFLoadChunk(ctx context.Context, key string, iterator int64, data interface{}) *StatusCmd {
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  bfLoadChunk,
		Parts: []args.Part{args.Pos(key, iterator, data)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

//------------------------------------------------------------------------------

type BFInfo struct {
	Capacity              int64
	Size                  int64
	NumberOfFilters       int64
	NumberOfItemsInserted int64
	ExpansionRate         int64
}

var bfInfoFields = infoTable[BFInfo]{
	"capacity":                 intInfo(func(i *BFInfo) *int64 { return &i.Capacity }),
	"size":                     intInfo(func(i *BFInfo) *int64 { return &i.Size }),
	"number of filters":        intInfo(func(i *BFInfo) *int64 { return &i.NumberOfFilters }),
	"number of items inserted": intInfo(func(i *BFInfo) *int64 { return &i.NumberOfItemsInserted }),
	"expansion rate":           intInfo(func(i *BFInfo) *int64 { return &i.ExpansionRate }),
}

type BFInfoCmd struct {
	baseCmd

	val BFInfo
}

var _ Cmder = (*BFInfoCmd)(nil)

func (cmd *BFInfoCmd) Val() BFInfo {
	if !cmd.Ready() {
		return BFInfo{}
	}
	return cmd.val
}

func (cmd *BFInfoCmd) Result() (BFInfo, error) {
	if err := cmd.Err(); err != nil {
		return BFInfo{}, err
	}
	return cmd.val, nil
}

func (cmd *BFInfoCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *BFInfoCmd) readReply(pv *proto.Value) error {
	return bfInfoFields.scan(&cmd.val, pv)
}
