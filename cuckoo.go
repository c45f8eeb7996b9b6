package stack

import (
	"context"

	"github.com/redis/go-redis-stack/internal/args"
	"github.com/redis/go-redis-stack/internal/proto"
)

const (
	cfReserve   = "CF.RESERVE"
	cfAdd       = "CF.ADD"
	cfAddNX     = "CF.ADDNX"
	cfInsert    = "CF.INSERT"
	cfInsertNX  = "CF.INSERTNX"
	cfExists    = "CF.EXISTS"
	cfMExists   = "CF.MEXISTS"
	cfDel       = "CF.DEL"
	cfCount     = "CF.COUNT"
	cfScanDump  = "CF.SCANDUMP"
	cfLoadChunk = "CF.LOADCHUNK"
	cfInfo      = "CF.INFO"

	cfBucketSize    = "BUCKETSIZE"
	cfMaxIterations = "MAXITERATIONS"
)

type CFReserveOptions struct {
	BucketSize    int64
	MaxIterations int64
	Expansion     int64
}

type CFInsertOptions struct {
	Capacity int64
	NoCreate bool
}

func (c cmdable) CFReserve(ctx context.Context, key string, capacity int64) *StatusCmd {
	return c.CFReserveWithArgs(ctx, key, capacity, nil)
}

func (c cmdable) CFReserveWithArgs(ctx context.Context, key string, capacity int64, options *CFReserveOptions) *StatusCmd {
	if options == nil {
		options = &CFReserveOptions{}
	}
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: cfReserve,
		Parts: []args.Part{
			args.Pos(key, capacity),
			args.Opt(cfBucketSize, options.BucketSize != 0, options.BucketSize),
			args.Opt(cfMaxIterations, options.MaxIterations != 0, options.MaxIterations),
			args.Opt(kwExpansion, options.Expansion != 0, options.Expansion),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) CFAdd(ctx context.Context, key string, item interface{}) *BoolCmd {
	return c.cfItemCmd(ctx, cfAdd, key, item)
}

// CFAddNX adds item unless it may already exist. A false result means the
// item was probably present.
func (c cmdable) CFAddNX(ctx context.Context, key string, item interface{}) *BoolCmd {
	return c.cfItemCmd(ctx, cfAddNX, key, item)
}

func (c cmdable) CFExists(ctx context.Context, key string, item interface{}) *BoolCmd {
	return c.cfItemCmd(ctx, cfExists, key, item)
}

// CFDel deletes one occurrence of item. A false result means the item was
// not found.
func (c cmdable) CFDel(ctx context.Context, key string, item interface{}) *BoolCmd {
	return c.cfItemCmd(ctx, cfDel, key, item)
}

func (c cmdable) cfItemCmd(ctx context.Context, name, key string, item interface{}) *BoolCmd {
	cmd := &BoolCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  name,
		Parts: []args.Part{args.Pos(key, item)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) CFInsert(ctx context.Context, key string, options *CFInsertOptions, items ...interface{}) *BoolSliceCmd {
	return c.cfInsert(ctx, cfInsert, key, options, items)
}

func (c cmdable) CFInsertNX(ctx context.Context, key string, options *CFInsertOptions, items ...interface{}) *BoolSliceCmd {
	return c.cfInsert(ctx, cfInsertNX, key, options, items)
}

func (c cmdable) cfInsert(
	ctx context.Context, name, key string, options *CFInsertOptions, items []interface{},
) *BoolSliceCmd {
	if options == nil {
		options = &CFInsertOptions{}
	}
	cmd := &BoolSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   name,
		Checks: []args.Check{args.NonEmpty("items", len(items))},
		Parts: []args.Part{
			args.Pos(key),
			args.Opt(kwCapacity, options.Capacity != 0, options.Capacity),
			args.Flag(kwNoCreate, options.NoCreate),
			args.List(kwItems, items...),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) CFMExists(ctx context.Context, key string, items ...interface{}) *BoolSliceCmd {
	cmd := &BoolSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   cfMExists,
		Checks: []args.Check{args.NonEmpty("items", len(items))},
		Parts:  []args.Part{args.Pos(key), args.Pos(items...)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) CFCount(ctx context.Context, key string, item interface{}) *IntCmd {
	cmd := &IntCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  cfCount,
		Parts: []args.Part{args.Pos(key, item)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) CFScanDump(ctx context.Context, key string, iterator int64) *ScanDumpCmd {
	cmd := &ScanDumpCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  cfScanDump,
		Parts: []args.Part{args.Pos(key, iterator)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) CFLoadChunk(ctx context.Context, key string, iterator int64, data interface{}) *StatusCmd {
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  cfLoadChunk,
		Parts: []args.Part{args.Pos(key, iterator, data)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) CFInfo(ctx context.Context, key string) *CFInfoCmd {
	cmd := &CFInfoCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  cfInfo,
		Parts: []args.Part{args.Pos(key)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

//------------------------------------------------------------------------------

type CFInfo struct {
	Size                  int64
	NumberOfBuckets       int64
	NumberOfFilters       int64
	NumberOfItemsInserted int64
	NumberOfItemsDeleted  int64
	BucketSize            int64
	ExpansionRate         int64
	MaxIteration          int64
}

var cfInfoFields = infoTable[CFInfo]{
	"size":                     intInfo(func(i *CFInfo) *int64 { return &i.Size }),
	"number of buckets":        intInfo(func(i *CFInfo) *int64 { return &i.NumberOfBuckets }),
	"number of filters":        intInfo(func(i *CFInfo) *int64 { return &i.NumberOfFilters }),
	"number of items inserted": intInfo(func(i *CFInfo) *int64 { return &i.NumberOfItemsInserted }),
	"number of items deleted":  intInfo(func(i *CFInfo) *int64 { return &i.NumberOfItemsDeleted }),
	"bucket size":              intInfo(func(i *CFInfo) *int64 { return &i.BucketSize }),
	"expansion rate":           intInfo(func(i *CFInfo) *int64 { return &i.ExpansionRate }),
	"max iterations":           intInfo(func(i *CFInfo) *int64 { return &i.MaxIteration }),
}

type CFInfoCmd struct {
	baseCmd

	val CFInfo
}

var _ Cmder = (*CFInfoCmd)(nil)

func (cmd *CFInfoCmd) Val() CFInfo {
	if !cmd.Ready() {
		return CFInfo{}
	}
	return cmd.val
}

func (cmd *CFInfoCmd) Result() (CFInfo, error) {
	if err := cmd.Err(); err != nil {
		return CFInfo{}, err
	}
	return cmd.val, nil
}

func (cmd *CFInfoCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *CFInfoCmd) readReply(pv *proto.Value) error {
	return cfInfoFields.scan(&cmd.val, pv)
}
