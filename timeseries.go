package stack

import (
	"context"
	"fmt"

	"github.com/redis/go-redis-stack/internal/args"
	"github.com/redis/go-redis-stack/internal/proto"
	"github.com/redis/go-redis-stack/internal/util"
)

const (
	tsCreate     = "TS.CREATE"
	tsAlter      = "TS.ALTER"
	tsAdd        = "TS.ADD"
	tsMAdd       = "TS.MADD"
	tsIncrBy     = "TS.INCRBY"
	tsDecrBy     = "TS.DECRBY"
	tsDel        = "TS.DEL"
	tsCreateRule = "TS.CREATERULE"
	tsDeleteRule = "TS.DELETERULE"
	tsRange      = "TS.RANGE"
	tsRevRange   = "TS.REVRANGE"
	tsMRange     = "TS.MRANGE"
	tsMRevRange  = "TS.MREVRANGE"
	tsGet        = "TS.GET"
	tsMGet       = "TS.MGET"
	tsInfo       = "TS.INFO"
	tsQueryIndex = "TS.QUERYINDEX"

	tsRetention       = "RETENTION"
	tsEncoding        = "ENCODING"
	tsChunkSize       = "CHUNK_SIZE"
	tsDuplicatePolicy = "DUPLICATE_POLICY"
	tsOnDuplicate     = "ON_DUPLICATE"
	tsIgnore          = "IGNORE"
	tsTimestamp       = "TIMESTAMP"
	tsUncompressed    = "UNCOMPRESSED"
	tsAggregation     = "AGGREGATION"
	tsLatest          = "LATEST"
	tsFilterByTS      = "FILTER_BY_TS"
	tsFilterByValue   = "FILTER_BY_VALUE"
	tsAlign           = "ALIGN"
	tsBucketTimestamp = "BUCKETTIMESTAMP"
	tsEmpty           = "EMPTY"
	tsWithLabels      = "WITHLABELS"
	tsSelectedLabels  = "SELECTED_LABELS"
	tsGroupBy         = "GROUPBY"
	tsReduce          = "REDUCE"
	tsDebug           = "DEBUG"

	// TSAutoTimestamp lets the server assign the current time to a sample.
	TSAutoTimestamp = "*"
)

// TSOptions configures TS.CREATE and TS.ADD. DuplicatePolicy is the policy
// of the series; OnDuplicate overrides it for one TS.ADD.
type TSOptions struct {
	Retention         int64
	Encoding          Encoding
	ChunkSize         int64
	DuplicatePolicy   DuplicatePolicy
	OnDuplicate       DuplicatePolicy
	IgnoreMaxTimeDiff int64
	IgnoreMaxValDiff  float64
	Labels            []TimeSeriesLabel
}

type TSAlterOptions struct {
	Retention         int64
	ChunkSize         int64
	DuplicatePolicy   DuplicatePolicy
	IgnoreMaxTimeDiff int64
	IgnoreMaxValDiff  float64
	Labels            []TimeSeriesLabel
}

type TSIncrDecrOptions struct {
	Timestamp         interface{}
	Retention         int64
	Uncompressed      bool
	ChunkSize         int64
	DuplicatePolicy   DuplicatePolicy
	IgnoreMaxTimeDiff int64
	IgnoreMaxValDiff  float64
	Labels            []TimeSeriesLabel
}

// TSSample is one sample of TS.MADD.
type TSSample struct {
	Key       string
	Timestamp interface{}
	Value     float64
}

// TSRangeOptions configures TS.RANGE and TS.REVRANGE. Align,
// BucketTimestamp and Empty apply to the aggregation and require
// Aggregator and BucketDuration.
type TSRangeOptions struct {
	Latest          bool
	FilterByTS      []int64
	FilterByValue   *ValueFilter
	Count           int64
	Align           interface{}
	Aggregator      Aggregator
	BucketDuration  int64
	BucketTimestamp BucketTimestamp
	Empty           bool
}

// TSMRangeOptions configures TS.MRANGE and TS.MREVRANGE. WithLabels and
// SelectedLabels are mutually exclusive; GroupByLabel requires Reducer.
type TSMRangeOptions struct {
	TSRangeOptions

	WithLabels     bool
	SelectedLabels []string
	GroupByLabel   string
	Reducer        Reducer
}

type TSGetOptions struct {
	Latest bool
}

type TSMGetOptions struct {
	Latest         bool
	WithLabels     bool
	SelectedLabels []string
}

type TSCreateRuleOptions struct {
	AlignTimestamp int64
}

func labelArgs(labels []TimeSeriesLabel) []interface{} {
	out := make([]interface{}, 0, 2*len(labels))
	for _, l := range labels {
		out = append(out, l.Key, l.Value)
	}
	return out
}

func validTimestamp(ts interface{}) bool {
	switch ts := ts.(type) {
	case int, int64, uint, uint64, int32, uint32:
		return true
	case string:
		return ts == TSAutoTimestamp
	}
	return false
}

func ignoreParts(maxTimeDiff int64, maxValDiff float64) args.Part {
	on := maxTimeDiff != 0 || maxValDiff != 0
	return args.Opt(tsIgnore, on, maxTimeDiff, maxValDiff)
}

func enumChecks(encoding Encoding, policy DuplicatePolicy) []args.Check {
	_, encOK := encodingTokens.token(encoding)
	_, dupOK := duplicatePolicyTokens.token(policy)
	return []args.Check{
		args.Supported(encoding == 0 || encOK, "encoding"),
		args.Supported(policy == 0 || dupOK, "duplicate policy"),
	}
}

func (c cmdable) TSCreate(ctx context.Context, key string) *StatusCmd {
	return c.TSCreateWithArgs(ctx, key, nil)
}

func (c cmdable) TSCreateWithArgs(ctx context.Context, key string, options *TSOptions) *StatusCmd {
	if options == nil {
		options = &TSOptions{}
	}
	checks := enumChecks(options.Encoding, options.DuplicatePolicy)
	checks = append(checks, args.Require(options.OnDuplicate == 0, "OnDuplicate applies to TS.ADD only"))

	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   tsCreate,
		Checks: checks,
		Parts: []args.Part{
			args.Pos(key),
			args.Opt(tsRetention, options.Retention != 0, options.Retention),
			args.Opt(tsEncoding, options.Encoding != 0, options.Encoding.String()),
			args.Opt(tsChunkSize, options.ChunkSize != 0, options.ChunkSize),
			args.Opt(tsDuplicatePolicy, options.DuplicatePolicy != 0, options.DuplicatePolicy.String()),
			ignoreParts(options.IgnoreMaxTimeDiff, options.IgnoreMaxValDiff),
			args.List(kwLabels, labelArgs(options.Labels)...),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) TSAlter(ctx context.Context, key string, options *TSAlterOptions) *StatusCmd {
	if options == nil {
		options = &TSAlterOptions{}
	}
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   tsAlter,
		Checks: enumChecks(0, options.DuplicatePolicy),
		Parts: []args.Part{
			args.Pos(key),
			args.Opt(tsRetention, options.Retention != 0, options.Retention),
			args.Opt(tsChunkSize, options.ChunkSize != 0, options.ChunkSize),
			args.Opt(tsDuplicatePolicy, options.DuplicatePolicy != 0, options.DuplicatePolicy.String()),
			ignoreParts(options.IgnoreMaxTimeDiff, options.IgnoreMaxValDiff),
			args.List(kwLabels, labelArgs(options.Labels)...),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// TSAdd appends a sample and returns its timestamp. timestamp is an integer
// in milliseconds or TSAutoTimestamp.
func (c cmdable) TSAdd(ctx context.Context, key string, timestamp interface{}, value float64) *IntCmd {
	return c.TSAddWithArgs(ctx, key, timestamp, value, nil)
}

// TSAddWithArgs is TSAdd creating the series with options when it does not
// exist.
func (c cmdable) TSAddWithArgs(
	ctx context.Context, key string, timestamp interface{}, value float64, options *TSOptions,
) *IntCmd {
	if options == nil {
		options = &TSOptions{}
	}
	_, onDupOK := duplicatePolicyTokens.token(options.OnDuplicate)
	checks := enumChecks(options.Encoding, options.DuplicatePolicy)
	checks = append(checks,
		args.Supported(options.OnDuplicate == 0 || onDupOK, "duplicate policy"),
		args.Require(validTimestamp(timestamp), "timestamp must be an integer or \"*\""),
	)

	cmd := &IntCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   tsAdd,
		Checks: checks,
		Parts: []args.Part{
			args.Pos(key, timestamp, value),
			args.Opt(tsRetention, options.Retention != 0, options.Retention),
			args.Opt(tsEncoding, options.Encoding != 0, options.Encoding.String()),
			args.Opt(tsChunkSize, options.ChunkSize != 0, options.ChunkSize),
			args.Opt(tsDuplicatePolicy, options.DuplicatePolicy != 0, options.DuplicatePolicy.String()),
			args.Opt(tsOnDuplicate, options.OnDuplicate != 0, options.OnDuplicate.String()),
			ignoreParts(options.IgnoreMaxTimeDiff, options.IgnoreMaxValDiff),
			args.List(kwLabels, labelArgs(options.Labels)...),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// TSMAdd appends samples to several series and returns the timestamp of
// each sample.
func (c cmdable) TSMAdd(ctx context.Context, samples ...TSSample) *IntSliceCmd {
	flat := make([]interface{}, 0, 3*len(samples))
	validTS := true
	for _, s := range samples {
		validTS = validTS && validTimestamp(s.Timestamp)
		flat = append(flat, s.Key, s.Timestamp, s.Value)
	}

	cmd := &IntSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: tsMAdd,
		Checks: []args.Check{
			args.NonEmpty("samples", len(samples)),
			args.Require(validTS, "timestamp must be an integer or \"*\""),
		},
		Parts: []args.Part{args.Pos(flat...)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) TSIncrBy(ctx context.Context, key string, value float64) *IntCmd {
	return c.tsIncrDecr(ctx, tsIncrBy, key, value, nil)
}

func (c cmdable) TSIncrByWithArgs(ctx context.Context, key string, value float64, options *TSIncrDecrOptions) *IntCmd {
	return c.tsIncrDecr(ctx, tsIncrBy, key, value, options)
}

func (c cmdable) TSDecrBy(ctx context.Context, key string, value float64) *IntCmd {
	return c.tsIncrDecr(ctx, tsDecrBy, key, value, nil)
}

func (c cmdable) TSDecrByWithArgs(ctx context.Context, key string, value float64, options *TSIncrDecrOptions) *IntCmd {
	return c.tsIncrDecr(ctx, tsDecrBy, key, value, options)
}

func (c cmdable) tsIncrDecr(
	ctx context.Context, name, key string, value float64, options *TSIncrDecrOptions,
) *IntCmd {
	if options == nil {
		options = &TSIncrDecrOptions{}
	}
	checks := enumChecks(0, options.DuplicatePolicy)
	checks = append(checks, args.Require(options.Timestamp == nil || validTimestamp(options.Timestamp),
		"timestamp must be an integer or \"*\""))

	cmd := &IntCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   name,
		Checks: checks,
		Parts: []args.Part{
			args.Pos(key, value),
			args.Opt(tsTimestamp, options.Timestamp != nil, options.Timestamp),
			args.Opt(tsRetention, options.Retention != 0, options.Retention),
			args.Flag(tsUncompressed, options.Uncompressed),
			args.Opt(tsChunkSize, options.ChunkSize != 0, options.ChunkSize),
			args.Opt(tsDuplicatePolicy, options.DuplicatePolicy != 0, options.DuplicatePolicy.String()),
			ignoreParts(options.IgnoreMaxTimeDiff, options.IgnoreMaxValDiff),
			args.List(kwLabels, labelArgs(options.Labels)...),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// TSDel deletes the samples between from and to, inclusive, and returns
// their number.
func (c cmdable) TSDel(ctx context.Context, key string, from, to int64) *IntCmd {
	cmd := &IntCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  tsDel,
		Parts: []args.Part{args.Pos(key, from, to)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) TSCreateRule(
	ctx context.Context, source, dest string, aggregator Aggregator, bucketDuration int64,
) *StatusCmd {
	return c.TSCreateRuleWithArgs(ctx, source, dest, aggregator, bucketDuration, nil)
}

func (c cmdable) TSCreateRuleWithArgs(
	ctx context.Context, source, dest string, aggregator Aggregator, bucketDuration int64,
	options *TSCreateRuleOptions,
) *StatusCmd {
	if options == nil {
		options = &TSCreateRuleOptions{}
	}
	token, ok := aggregatorTokens.token(aggregator)
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: tsCreateRule,
		Checks: []args.Check{
			args.Supported(ok, "aggregator"),
			args.Require(bucketDuration > 0, "bucket duration must be positive"),
		},
		Parts: []args.Part{
			args.Pos(source, dest),
			args.Opt(tsAggregation, true, token, bucketDuration),
			args.Opt("", options.AlignTimestamp != 0, options.AlignTimestamp),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) TSDeleteRule(ctx context.Context, source, dest string) *StatusCmd {
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  tsDeleteRule,
		Parts: []args.Part{args.Pos(source, dest)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

//------------------------------------------------------------------------------

// rangeSchema holds the checks and parts shared by the range commands.
type rangeSchema struct {
	checks  []args.Check
	filters []args.Part
	agg     args.Part
}

func newRangeSchema(o *TSRangeOptions) rangeSchema {
	token, ok := aggregatorTokens.token(o.Aggregator)
	bt, btOK := bucketTimestampTokens.token(o.BucketTimestamp)
	hasAgg := o.Aggregator != 0

	var byValue []interface{}
	if o.FilterByValue != nil {
		byValue = []interface{}{o.FilterByValue.Min, o.FilterByValue.Max}
	}

	return rangeSchema{
		checks: []args.Check{
			args.Supported(!hasAgg || ok, "aggregator"),
			args.Supported(o.BucketTimestamp == 0 || btOK, "bucket timestamp"),
			args.Require(!hasAgg || o.BucketDuration > 0, "AGGREGATION requires a bucket duration"),
			args.Require(hasAgg || (o.BucketDuration == 0 && o.Align == nil &&
				o.BucketTimestamp == 0 && !o.Empty), "bucket options require an aggregator"),
			args.NonNegative("count", float64(o.Count)),
		},
		filters: []args.Part{
			args.Flag(tsLatest, o.Latest),
			args.List(tsFilterByTS, args.Ints(o.FilterByTS)...),
			args.List(tsFilterByValue, byValue...),
		},
		agg: args.Group(hasAgg,
			args.Opt(tsAlign, o.Align != nil, o.Align),
			args.Opt(tsAggregation, true, token, o.BucketDuration),
			args.Opt(tsBucketTimestamp, o.BucketTimestamp != 0, bt),
			args.Flag(tsEmpty, o.Empty),
		),
	}
}

// TSRange returns the samples between from and to. Use "-" and "+" for the
// oldest and newest sample.
func (c cmdable) TSRange(ctx context.Context, key string, from, to interface{}) *TSTimestampValueSliceCmd {
	return c.tsRange(ctx, tsRange, key, from, to, nil)
}

func (c cmdable) TSRangeWithArgs(
	ctx context.Context, key string, from, to interface{}, options *TSRangeOptions,
) *TSTimestampValueSliceCmd {
	return c.tsRange(ctx, tsRange, key, from, to, options)
}

func (c cmdable) TSRevRange(ctx context.Context, key string, from, to interface{}) *TSTimestampValueSliceCmd {
	return c.tsRange(ctx, tsRevRange, key, from, to, nil)
}

func (c cmdable) TSRevRangeWithArgs(
	ctx context.Context, key string, from, to interface{}, options *TSRangeOptions,
) *TSTimestampValueSliceCmd {
	return c.tsRange(ctx, tsRevRange, key, from, to, options)
}

func (c cmdable) tsRange(
	ctx context.Context, name, key string, from, to interface{}, options *TSRangeOptions,
) *TSTimestampValueSliceCmd {
	if options == nil {
		options = &TSRangeOptions{}
	}
	rs := newRangeSchema(options)

	parts := []args.Part{args.Pos(key, from, to)}
	parts = append(parts, rs.filters...)
	parts = append(parts,
		args.Opt(kwCount, options.Count != 0, options.Count),
		rs.agg,
	)

	cmd := &TSTimestampValueSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   name,
		Checks: rs.checks,
		Parts:  parts,
	})}
	_ = c(ctx, cmd)
	return cmd
}

// TSMRange returns the samples between from and to of every series matching
// filters.
func (c cmdable) TSMRange(ctx context.Context, from, to interface{}, filters []string) *TSMRangeCmd {
	return c.tsMRange(ctx, tsMRange, from, to, filters, nil)
}

func (c cmdable) TSMRangeWithArgs(
	ctx context.Context, from, to interface{}, filters []string, options *TSMRangeOptions,
) *TSMRangeCmd {
	return c.tsMRange(ctx, tsMRange, from, to, filters, options)
}

func (c cmdable) TSMRevRange(ctx context.Context, from, to interface{}, filters []string) *TSMRangeCmd {
	return c.tsMRange(ctx, tsMRevRange, from, to, filters, nil)
}

func (c cmdable) TSMRevRangeWithArgs(
	ctx context.Context, from, to interface{}, filters []string, options *TSMRangeOptions,
) *TSMRangeCmd {
	return c.tsMRange(ctx, tsMRevRange, from, to, filters, options)
}

func (c cmdable) tsMRange(
	ctx context.Context, name string, from, to interface{}, filters []string, options *TSMRangeOptions,
) *TSMRangeCmd {
	if options == nil {
		options = &TSMRangeOptions{}
	}
	rs := newRangeSchema(&options.TSRangeOptions)
	reducer, reducerOK := reducerTokens.token(options.Reducer)
	grouped := options.GroupByLabel != ""

	checks := append(rs.checks,
		args.NonEmpty("filters", len(filters)),
		args.Exclusive("WITHLABELS and SELECTED_LABELS are mutually exclusive",
			options.WithLabels, len(options.SelectedLabels) > 0),
		args.Require(!grouped || options.Reducer != 0, "GROUPBY requires a reducer"),
		args.Require(grouped || options.Reducer == 0, "REDUCE requires GROUPBY"),
		args.Supported(options.Reducer == 0 || reducerOK, "reducer"),
	)

	parts := []args.Part{args.Pos(from, to)}
	parts = append(parts, rs.filters...)
	parts = append(parts,
		args.Flag(tsWithLabels, options.WithLabels),
		args.List(tsSelectedLabels, args.Strings(options.SelectedLabels)...),
		args.Opt(kwCount, options.Count != 0, options.Count),
		rs.agg,
		args.List(kwFilter, args.Strings(filters)...),
		args.Group(grouped,
			args.Opt(tsGroupBy, true, options.GroupByLabel),
			args.Opt(tsReduce, true, reducer),
		),
	)

	cmd := &TSMRangeCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   name,
		Checks: checks,
		Parts:  parts,
	})}
	_ = c(ctx, cmd)
	return cmd
}

// TSGet returns the last sample of a series.
func (c cmdable) TSGet(ctx context.Context, key string) *TSTimestampValueCmd {
	return c.TSGetWithArgs(ctx, key, nil)
}

func (c cmdable) TSGetWithArgs(ctx context.Context, key string, options *TSGetOptions) *TSTimestampValueCmd {
	if options == nil {
		options = &TSGetOptions{}
	}
	cmd := &TSTimestampValueCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  tsGet,
		Parts: []args.Part{args.Pos(key), args.Flag(tsLatest, options.Latest)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// TSMGet returns the last sample of every series matching filters.
func (c cmdable) TSMGet(ctx context.Context, filters []string) *TSMGetCmd {
	return c.TSMGetWithArgs(ctx, filters, nil)
}

func (c cmdable) TSMGetWithArgs(ctx context.Context, filters []string, options *TSMGetOptions) *TSMGetCmd {
	if options == nil {
		options = &TSMGetOptions{}
	}
	cmd := &TSMGetCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: tsMGet,
		Checks: []args.Check{
			args.NonEmpty("filters", len(filters)),
			args.Exclusive("WITHLABELS and SELECTED_LABELS are mutually exclusive",
				options.WithLabels, len(options.SelectedLabels) > 0),
		},
		Parts: []args.Part{
			args.Flag(tsLatest, options.Latest),
			args.Flag(tsWithLabels, options.WithLabels),
			args.List(tsSelectedLabels, args.Strings(options.SelectedLabels)...),
			args.List(kwFilter, args.Strings(filters)...),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) TSInfo(ctx context.Context, key string) *TSInfoCmd {
	return c.tsInfo(ctx, key, false)
}

// TSInfoWithDebug also returns the chunks of the series.
func (c cmdable) TSInfoWithDebug(ctx context.Context, key string) *TSInfoCmd {
	return c.tsInfo(ctx, key, true)
}

func (c cmdable) tsInfo(ctx context.Context, key string, debug bool) *TSInfoCmd {
	cmd := &TSInfoCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  tsInfo,
		Parts: []args.Part{args.Pos(key), args.Flag(tsDebug, debug)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// TSQueryIndex returns the keys of the series matching filters.
func (c cmdable) TSQueryIndex(ctx context.Context, filters ...string) *StringSliceCmd {
	cmd := &StringSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   tsQueryIndex,
		Checks: []args.Check{args.NonEmpty("filters", len(filters))},
		Parts:  []args.Part{args.Pos(args.Strings(filters)...)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

//------------------------------------------------------------------------------

func readTuple(pv *proto.Value) (TimeSeriesTuple, error) {
	arr, err := pv.ArrayLen(2)
	if err != nil {
		return TimeSeriesTuple{}, err
	}
	ts, err := arr[0].Int64()
	if err != nil {
		return TimeSeriesTuple{}, err
	}
	val, err := arr[1].Float64()
	if err != nil {
		return TimeSeriesTuple{}, err
	}
	return TimeSeriesTuple{Time: ts, Value: val}, nil
}

func readTuples(pv *proto.Value) ([]TimeSeriesTuple, error) {
	arr, err := pv.Array()
	if err != nil {
		return nil, err
	}
	tuples := make([]TimeSeriesTuple, len(arr))
	for i, elem := range arr {
		if tuples[i], err = readTuple(elem); err != nil {
			return nil, err
		}
	}
	return tuples, nil
}

// readLabels accepts a map or an array of [key, value] pairs. A null label
// value, as sent for missing SELECTED_LABELS, is "".
func readLabels(pv *proto.Value) ([]TimeSeriesLabel, error) {
	if pv.IsMap() {
		labels := make([]TimeSeriesLabel, 0, len(pv.Map))
		err := pv.MapScan(func(key string, val *proto.Value) error {
			s, err := val.Text()
			if err != nil {
				return err
			}
			labels = append(labels, TimeSeriesLabel{Key: key, Value: s})
			return nil
		})
		return labels, err
	}

	arr, err := pv.Array()
	if err != nil {
		return nil, err
	}
	labels := make([]TimeSeriesLabel, len(arr))
	for i, elem := range arr {
		kv, err := elem.ArrayLen(2)
		if err != nil {
			return nil, err
		}
		if labels[i].Key, err = kv[0].String(); err != nil {
			return nil, err
		}
		if labels[i].Value, err = kv[1].Text(); err != nil {
			return nil, err
		}
	}
	return labels, nil
}

// TSTimestampValueCmd holds one sample. Found is false when the series is
// empty.
type TSTimestampValueCmd struct {
	baseCmd

	val   TimeSeriesTuple
	found bool
}

var _ Cmder = (*TSTimestampValueCmd)(nil)

func (cmd *TSTimestampValueCmd) Val() TimeSeriesTuple {
	if !cmd.Ready() {
		return TimeSeriesTuple{}
	}
	return cmd.val
}

func (cmd *TSTimestampValueCmd) Found() bool {
	return cmd.Ready() && cmd.found
}

func (cmd *TSTimestampValueCmd) Result() (TimeSeriesTuple, error) {
	if err := cmd.Err(); err != nil {
		return TimeSeriesTuple{}, err
	}
	return cmd.val, nil
}

func (cmd *TSTimestampValueCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *TSTimestampValueCmd) readReply(pv *proto.Value) (err error) {
	if pv.IsNil() || (pv.IsSlice() && len(pv.Slice) == 0) {
		return nil
	}
	cmd.val, err = readTuple(pv)
	cmd.found = err == nil
	return err
}

type TSTimestampValueSliceCmd struct {
	baseCmd

	val []TimeSeriesTuple
}

var _ Cmder = (*TSTimestampValueSliceCmd)(nil)

func (cmd *TSTimestampValueSliceCmd) Val() []TimeSeriesTuple {
	if !cmd.Ready() {
		return nil
	}
	return cmd.val
}

func (cmd *TSTimestampValueSliceCmd) Result() ([]TimeSeriesTuple, error) {
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.val, nil
}

func (cmd *TSTimestampValueSliceCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *TSTimestampValueSliceCmd) readReply(pv *proto.Value) (err error) {
	cmd.val, err = readTuples(pv)
	return err
}

// TSMRangeEntry is the reply for one series, or one group with GROUPBY.
type TSMRangeEntry struct {
	Key     string
	Labels  []TimeSeriesLabel
	Samples []TimeSeriesTuple
}

type TSMRangeCmd struct {
	baseCmd

	val []TSMRangeEntry
}

var _ Cmder = (*TSMRangeCmd)(nil)

func (cmd *TSMRangeCmd) Val() []TSMRangeEntry {
	if !cmd.Ready() {
		return nil
	}
	return cmd.val
}

func (cmd *TSMRangeCmd) Result() ([]TSMRangeEntry, error) {
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.val, nil
}

func (cmd *TSMRangeCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

// readReply accepts the RESP2 shape [[key, labels, samples], ...] and the
// RESP3 shape {key: [labels, ..., samples]}. RESP2 entries keep the reply
// order; RESP3 entries come sorted by key.
func (cmd *TSMRangeCmd) readReply(pv *proto.Value) error {
	if pv.IsMap() {
		cmd.val = make([]TSMRangeEntry, 0, len(pv.Map))
		return pv.MapScan(func(key string, val *proto.Value) error {
			entry, err := readMRangeEntry(key, val)
			if err != nil {
				return err
			}
			cmd.val = append(cmd.val, entry)
			return nil
		})
	}

	arr, err := pv.Array()
	if err != nil {
		return err
	}
	cmd.val = make([]TSMRangeEntry, len(arr))
	for i, elem := range arr {
		parts, err := elem.Array()
		if err != nil {
			return err
		}
		if len(parts) < 3 {
			return fmt.Errorf("got %d elements in a series entry, wanted at least 3", len(parts))
		}
		key, err := parts[0].String()
		if err != nil {
			return err
		}
		if cmd.val[i], err = readMRangeEntry(key, &proto.Value{Typ: elem.Typ, Slice: parts[1:]}); err != nil {
			return err
		}
	}
	return nil
}

// readMRangeEntry decodes [labels, ..., samples]; metadata between the
// labels and the samples is skipped.
func readMRangeEntry(key string, pv *proto.Value) (TSMRangeEntry, error) {
	parts, err := pv.Array()
	if err != nil {
		return TSMRangeEntry{}, err
	}
	if len(parts) < 2 {
		return TSMRangeEntry{}, fmt.Errorf("got %d elements in a series entry, wanted at least 3", len(parts)+1)
	}

	entry := TSMRangeEntry{Key: key}
	if entry.Labels, err = readLabels(parts[0]); err != nil {
		return TSMRangeEntry{}, err
	}
	if entry.Samples, err = readTuples(parts[len(parts)-1]); err != nil {
		return TSMRangeEntry{}, err
	}
	return entry, nil
}

// TSMGetEntry is the last sample of one series. Found is false when the
// series is empty.
type TSMGetEntry struct {
	Key    string
	Labels []TimeSeriesLabel
	Sample TimeSeriesTuple
	Found  bool
}

type TSMGetCmd struct {
	baseCmd

	val []TSMGetEntry
}

var _ Cmder = (*TSMGetCmd)(nil)

func (cmd *TSMGetCmd) Val() []TSMGetEntry {
	if !cmd.Ready() {
		return nil
	}
	return cmd.val
}

func (cmd *TSMGetCmd) Result() ([]TSMGetEntry, error) {
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.val, nil
}

func (cmd *TSMGetCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

// readReply keeps the order of RESP2 replies; RESP3 entries come sorted by
// key.
func (cmd *TSMGetCmd) readReply(pv *proto.Value) error {
	read := func(key string, parts []*proto.Value) (TSMGetEntry, error) {
		if len(parts) != 2 {
			return TSMGetEntry{}, fmt.Errorf("got %d elements in a series entry, wanted 3", len(parts)+1)
		}
		entry := TSMGetEntry{Key: key}
		var err error
		if entry.Labels, err = readLabels(parts[0]); err != nil {
			return TSMGetEntry{}, err
		}
		if s := parts[1]; s.IsSlice() && len(s.Slice) == 0 {
			return entry, nil
		}
		if entry.Sample, err = readTuple(parts[1]); err != nil {
			return TSMGetEntry{}, err
		}
		entry.Found = true
		return entry, nil
	}

	if pv.IsMap() {
		cmd.val = make([]TSMGetEntry, 0, len(pv.Map))
		return pv.MapScan(func(key string, val *proto.Value) error {
			parts, err := val.Array()
			if err != nil {
				return err
			}
			entry, err := read(key, parts)
			if err != nil {
				return err
			}
			cmd.val = append(cmd.val, entry)
			return nil
		})
	}

	arr, err := pv.Array()
	if err != nil {
		return err
	}
	cmd.val = make([]TSMGetEntry, len(arr))
	for i, elem := range arr {
		parts, err := elem.Array()
		if err != nil {
			return err
		}
		if len(parts) == 0 {
			return fmt.Errorf("got an empty series entry")
		}
		key, err := parts[0].String()
		if err != nil {
			return err
		}
		if cmd.val[i], err = read(key, parts[1:]); err != nil {
			return err
		}
	}
	return nil
}

//------------------------------------------------------------------------------

type TSInfo struct {
	TotalSamples      int64
	MemoryUsage       int64
	FirstTimestamp    int64
	LastTimestamp     int64
	RetentionTime     int64
	ChunkCount        int64
	ChunkSize         int64
	ChunkType         string
	DuplicatePolicy   DuplicatePolicy
	Labels            []TimeSeriesLabel
	SourceKey         string
	Rules             []TimeSeriesRule
	IgnoreMaxTimeDiff int64
	IgnoreMaxValDiff  float64
	Chunks            []map[string]interface{}
}

// Encoding parses ChunkType; unknown types yield 0.
func (i TSInfo) Encoding() Encoding {
	e, _ := parseEncoding(i.ChunkType)
	return e
}

var tsInfoFields = infoTable[TSInfo]{
	"totalsamples":      intInfo(func(i *TSInfo) *int64 { return &i.TotalSamples }),
	"memoryusage":       intInfo(func(i *TSInfo) *int64 { return &i.MemoryUsage }),
	"firsttimestamp":    intInfo(func(i *TSInfo) *int64 { return &i.FirstTimestamp }),
	"lasttimestamp":     intInfo(func(i *TSInfo) *int64 { return &i.LastTimestamp }),
	"retentiontime":     intInfo(func(i *TSInfo) *int64 { return &i.RetentionTime }),
	"chunkcount":        intInfo(func(i *TSInfo) *int64 { return &i.ChunkCount }),
	"chunksize":         intInfo(func(i *TSInfo) *int64 { return &i.ChunkSize }),
	"chunktype":         stringInfo(func(i *TSInfo) *string { return &i.ChunkType }),
	"sourcekey":         stringInfo(func(i *TSInfo) *string { return &i.SourceKey }),
	"ignoremaxtimediff": intInfo(func(i *TSInfo) *int64 { return &i.IgnoreMaxTimeDiff }),
	"ignoremaxvaldiff":  floatInfo(func(i *TSInfo) *float64 { return &i.IgnoreMaxValDiff }),
	"duplicatepolicy": func(i *TSInfo, v *proto.Value) error {
		s, err := v.Text()
		if err != nil {
			return err
		}
		// Unknown policies of newer servers are left unset.
		i.DuplicatePolicy, _ = parseDuplicatePolicy(s)
		return nil
	},
	"labels": func(i *TSInfo, v *proto.Value) (err error) {
		i.Labels, err = readLabels(v)
		return err
	},
	"rules": func(i *TSInfo, v *proto.Value) (err error) {
		i.Rules, err = readRules(v)
		return err
	},
	"chunks": func(i *TSInfo, v *proto.Value) error {
		arr, err := v.Array()
		if err != nil {
			return err
		}
		i.Chunks = make([]map[string]interface{}, len(arr))
		for n, chunk := range arr {
			m := make(map[string]interface{})
			if err := chunk.MapScan(func(key string, val *proto.Value) error {
				m[util.ToLower(key)] = val.Interface()
				return nil
			}); err != nil {
				return err
			}
			i.Chunks[n] = m
		}
		return nil
	},
}

// readRules accepts [[dest, bucket, aggregator, align], ...] and
// {dest: [bucket, aggregator, align]}, the latter sorted by dest. The
// alignment is missing on old servers.
func readRules(pv *proto.Value) ([]TimeSeriesRule, error) {
	read := func(dest string, parts []*proto.Value) (TimeSeriesRule, error) {
		if len(parts) < 2 {
			return TimeSeriesRule{}, fmt.Errorf("got %d elements in a rule, wanted at least 3", len(parts)+1)
		}
		rule := TimeSeriesRule{DestKey: dest}
		var err error
		if rule.TimeBucket, err = parts[0].Int64(); err != nil {
			return TimeSeriesRule{}, err
		}
		agg, err := parts[1].String()
		if err != nil {
			return TimeSeriesRule{}, err
		}
		rule.Aggregator, _ = parseAggregator(agg)
		if len(parts) > 2 {
			if rule.AlignTimestamp, err = parts[2].Int64(); err != nil {
				return TimeSeriesRule{}, err
			}
		}
		return rule, nil
	}

	if pv.IsMap() {
		rules := make([]TimeSeriesRule, 0, len(pv.Map))
		err := pv.MapScan(func(key string, val *proto.Value) error {
			parts, err := val.Array()
			if err != nil {
				return err
			}
			rule, err := read(key, parts)
			if err != nil {
				return err
			}
			rules = append(rules, rule)
			return nil
		})
		return rules, err
	}

	arr, err := pv.Array()
	if err != nil {
		return nil, err
	}
	rules := make([]TimeSeriesRule, len(arr))
	for i, elem := range arr {
		parts, err := elem.Array()
		if err != nil {
			return nil, err
		}
		if len(parts) == 0 {
			return nil, fmt.Errorf("got an empty rule")
		}
		dest, err := parts[0].String()
		if err != nil {
			return nil, err
		}
		if rules[i], err = read(dest, parts[1:]); err != nil {
			return nil, err
		}
	}
	return rules, nil
}

type TSInfoCmd struct {
	baseCmd

	val TSInfo
}

var _ Cmder = (*TSInfoCmd)(nil)

func (cmd *TSInfoCmd) Val() TSInfo {
	if !cmd.Ready() {
		return TSInfo{}
	}
	return cmd.val
}

func (cmd *TSInfoCmd) Result() (TSInfo, error) {
	if err := cmd.Err(); err != nil {
		return TSInfo{}, err
	}
	return cmd.val, nil
}

func (cmd *TSInfoCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *TSInfoCmd) readReply(pv *proto.Value) error {
	return tsInfoFields.scan(&cmd.val, pv)
}
