package stack

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Aggregator is the aggregation applied to the samples of a bucket.
type Aggregator int

const (
	Avg Aggregator = iota + 1
	Sum
	Min
	Max
	Range
	Count
	First
	Last
	StdP
	StdS
	VarP
	VarS
	Twa
)

var aggregatorTokens = enumTable[Aggregator]{
	Avg:   "AVG",
	Sum:   "SUM",
	Min:   "MIN",
	Max:   "MAX",
	Range: "RANGE",
	Count: "COUNT",
	First: "FIRST",
	Last:  "LAST",
	StdP:  "STD.P",
	StdS:  "STD.S",
	VarP:  "VAR.P",
	VarS:  "VAR.S",
	Twa:   "TWA",
}

func (a Aggregator) String() string {
	return aggregatorTokens.String(a)
}

func parseAggregator(s string) (Aggregator, bool) {
	return aggregatorTokens.parse(s)
}

// DuplicatePolicy decides what happens when a sample is added for an
// existing timestamp.
type DuplicatePolicy int

const (
	DuplicateBlock DuplicatePolicy = iota + 1
	DuplicateFirst
	DuplicateLast
	DuplicateMin
	DuplicateMax
	DuplicateSum
)

var duplicatePolicyTokens = enumTable[DuplicatePolicy]{
	DuplicateBlock: "BLOCK",
	DuplicateFirst: "FIRST",
	DuplicateLast:  "LAST",
	DuplicateMin:   "MIN",
	DuplicateMax:   "MAX",
	DuplicateSum:   "SUM",
}

func (p DuplicatePolicy) String() string {
	return duplicatePolicyTokens.String(p)
}

func parseDuplicatePolicy(s string) (DuplicatePolicy, bool) {
	return duplicatePolicyTokens.parse(s)
}

// Reducer combines the series of one group in TS.MRANGE ... GROUPBY.
type Reducer int

const (
	ReduceAvg Reducer = iota + 1
	ReduceSum
	ReduceMin
	ReduceMax
	ReduceRange
	ReduceCount
	ReduceStdP
	ReduceStdS
	ReduceVarP
	ReduceVarS
)

var reducerTokens = enumTable[Reducer]{
	ReduceAvg:   "AVG",
	ReduceSum:   "SUM",
	ReduceMin:   "MIN",
	ReduceMax:   "MAX",
	ReduceRange: "RANGE",
	ReduceCount: "COUNT",
	ReduceStdP:  "STD.P",
	ReduceStdS:  "STD.S",
	ReduceVarP:  "VAR.P",
	ReduceVarS:  "VAR.S",
}

func (r Reducer) String() string {
	return reducerTokens.String(r)
}

// BucketTimestamp selects the timestamp reported for an aggregation bucket.
type BucketTimestamp int

const (
	BucketStart BucketTimestamp = iota + 1
	BucketEnd
	BucketMid
)

var bucketTimestampTokens = enumTable[BucketTimestamp]{
	BucketStart: "-",
	BucketEnd:   "+",
	BucketMid:   "~",
}

func (b BucketTimestamp) String() string {
	return bucketTimestampTokens.String(b)
}

// Encoding is the chunk encoding of a series.
type Encoding int

const (
	Compressed Encoding = iota + 1
	Uncompressed
)

var encodingTokens = enumTable[Encoding]{
	Compressed:   "COMPRESSED",
	Uncompressed: "UNCOMPRESSED",
}

func (e Encoding) String() string {
	return encodingTokens.String(e)
}

func parseEncoding(s string) (Encoding, bool) {
	return encodingTokens.parse(s)
}

//------------------------------------------------------------------------------

// TimeSeriesLabel is a label of a series.
type TimeSeriesLabel struct {
	Key   string
	Value string
}

func (l TimeSeriesLabel) String() string {
	return l.Key + "=" + l.Value
}

func (l TimeSeriesLabel) Hash() uint64 {
	return hashFields(l.Key, l.Value)
}

// TimeSeriesRule is a compaction rule of a source series.
type TimeSeriesRule struct {
	DestKey        string
	TimeBucket     int64
	Aggregator     Aggregator
	AlignTimestamp int64
}

func (r TimeSeriesRule) String() string {
	return r.DestKey + " " + strconv.FormatInt(r.TimeBucket, 10) + " " +
		r.Aggregator.String() + " " + strconv.FormatInt(r.AlignTimestamp, 10)
}

func (r TimeSeriesRule) Hash() uint64 {
	return hashFields(r.DestKey, strconv.FormatInt(r.TimeBucket, 10),
		r.Aggregator.String(), strconv.FormatInt(r.AlignTimestamp, 10))
}

// TimeSeriesTuple is one sample.
type TimeSeriesTuple struct {
	Time  int64
	Value float64
}

func (t TimeSeriesTuple) String() string {
	return strconv.FormatInt(t.Time, 10) + ":" + strconv.FormatFloat(t.Value, 'f', -1, 64)
}

func (t TimeSeriesTuple) Hash() uint64 {
	return hashFields(strconv.FormatInt(t.Time, 10), strconv.FormatFloat(t.Value, 'f', -1, 64))
}

// ValueFilter keeps samples with Min <= value <= Max.
type ValueFilter struct {
	Min float64
	Max float64
}

func (f ValueFilter) String() string {
	return strconv.FormatFloat(f.Min, 'f', -1, 64) + ".." + strconv.FormatFloat(f.Max, 'f', -1, 64)
}

func (f ValueFilter) Hash() uint64 {
	return hashFields(strconv.FormatFloat(f.Min, 'f', -1, 64), strconv.FormatFloat(f.Max, 'f', -1, 64))
}

// hashFields hashes the fields separated by a zero byte so that ("ab", "c")
// and ("a", "bc") differ.
func hashFields(fields ...string) uint64 {
	d := xxhash.New()
	for i, f := range fields {
		if i > 0 {
			_, _ = d.Write([]byte{0})
		}
		_, _ = d.WriteString(f)
	}
	return d.Sum64()
}
