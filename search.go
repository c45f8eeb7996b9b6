package stack

import (
	"context"
	"maps"
	"slices"

	"github.com/redis/go-redis-stack/internal/args"
)

const (
	ftList         = "FT._LIST"
	ftCreate       = "FT.CREATE"
	ftAlter        = "FT.ALTER"
	ftSearch       = "FT.SEARCH"
	ftAggregate    = "FT.AGGREGATE"
	ftInfo         = "FT.INFO"
	ftAliasAdd     = "FT.ALIASADD"
	ftAliasDel     = "FT.ALIASDEL"
	ftAliasUpdate  = "FT.ALIASUPDATE"
	ftCursorRead   = "FT.CURSOR READ"
	ftCursorDel    = "FT.CURSOR DEL"
	ftDictAdd      = "FT.DICTADD"
	ftDictDel      = "FT.DICTDEL"
	ftDictDump     = "FT.DICTDUMP"
	ftDropIndex    = "FT.DROPINDEX"
	ftExplain      = "FT.EXPLAIN"
	ftSpellCheck   = "FT.SPELLCHECK"
	ftSynDump      = "FT.SYNDUMP"
	ftSynUpdate    = "FT.SYNUPDATE"
	ftTagVals      = "FT.TAGVALS"
	ftConfigGet    = "FT.CONFIG GET"
	ftConfigSet    = "FT.CONFIG SET"
	ftSkipInitScan = "SKIPINITIALSCAN"
	ftDialect      = "DIALECT"
	ftTimeout      = "TIMEOUT"
	ftParams       = "PARAMS"
	ftSortBy       = "SORTBY"
	ftAs           = "AS"
)

// SearchFieldType is the type of an indexed attribute.
type SearchFieldType int

const (
	SearchFieldTypeText SearchFieldType = iota + 1
	SearchFieldTypeTag
	SearchFieldTypeNumeric
	SearchFieldTypeGeo
	SearchFieldTypeVector
	SearchFieldTypeGeoShape
)

var searchFieldTypeTokens = enumTable[SearchFieldType]{
	SearchFieldTypeText:     "TEXT",
	SearchFieldTypeTag:      "TAG",
	SearchFieldTypeNumeric:  "NUMERIC",
	SearchFieldTypeGeo:      "GEO",
	SearchFieldTypeVector:   "VECTOR",
	SearchFieldTypeGeoShape: "GEOSHAPE",
}

func (t SearchFieldType) String() string {
	return searchFieldTypeTokens.String(t)
}

func parseSearchFieldType(s string) (SearchFieldType, bool) {
	return searchFieldTypeTokens.parse(s)
}

// SearchReducer is a GROUPBY reducer of FT.AGGREGATE.
type SearchReducer int

const (
	SearchAvg SearchReducer = iota + 1
	SearchSum
	SearchMin
	SearchMax
	SearchCount
	SearchCountDistinct
	SearchCountDistinctish
	SearchStdDev
	SearchQuantile
	SearchToList
	SearchFirstValue
	SearchRandomSample
)

var searchReducerTokens = enumTable[SearchReducer]{
	SearchAvg:              "AVG",
	SearchSum:              "SUM",
	SearchMin:              "MIN",
	SearchMax:              "MAX",
	SearchCount:            "COUNT",
	SearchCountDistinct:    "COUNT_DISTINCT",
	SearchCountDistinctish: "COUNT_DISTINCTISH",
	SearchStdDev:           "STDDEV",
	SearchQuantile:         "QUANTILE",
	SearchToList:           "TOLIST",
	SearchFirstValue:       "FIRST_VALUE",
	SearchRandomSample:     "RANDOM_SAMPLE",
}

func (r SearchReducer) String() string {
	return searchReducerTokens.String(r)
}

//------------------------------------------------------------------------------

type FTCreateOptions struct {
	OnHash          bool
	OnJSON          bool
	Prefix          []string
	Filter          string
	DefaultLanguage string
	LanguageField   string
	Score           float64
	ScoreField      string
	PayloadField    string
	MaxTextFields   bool
	Temporary       int64
	NoOffsets       bool
	NoHL            bool
	NoFields        bool
	NoFreqs         bool
	// StopWords replaces the default stop-word list. A non-nil empty slice
	// disables stop words.
	StopWords       []string
	SkipInitialScan bool
}

// FieldSchema is one attribute of an index schema.
type FieldSchema struct {
	FieldName         string
	As                string
	FieldType         SearchFieldType
	Sortable          bool
	UNF               bool
	NoStem            bool
	NoIndex           bool
	PhoneticMatcher   string
	Weight            float64
	Separator         string
	CaseSensitive     bool
	WithSuffixtrie    bool
	IndexEmpty        bool
	IndexMissing      bool
	VectorArgs        *FTVectorArgs
	GeoShapeFieldType string
}

func (f *FieldSchema) String() string {
	s := f.FieldName
	if f.As != "" {
		s += " AS " + f.As
	}
	return s + " " + f.FieldType.String()
}

func (f *FieldSchema) Hash() uint64 {
	return hashFields(f.FieldName, f.As, f.FieldType.String())
}

type FTVectorArgs struct {
	FlatOptions *FTFlatOptions
	HNSWOptions *FTHNSWOptions
}

type FTFlatOptions struct {
	Type            string
	Dim             int64
	DistanceMetric  string
	InitialCapacity int64
	BlockSize       int64
}

type FTHNSWOptions struct {
	Type                   string
	Dim                    int64
	DistanceMetric         string
	InitialCapacity        int64
	MaxEdgesPerNode        int64
	MaxAllowedEdgesPerNode int64
	EFRunTime              int64
	Epsilon                float64
}

// attrs appends the "KEY value" pairs of set options.
type attrs []interface{}

func (a attrs) add(key string, on bool, value interface{}) attrs {
	if !on {
		return a
	}
	return append(a, key, value)
}

func (v *FTVectorArgs) part() args.Part {
	if o := v.FlatOptions; o != nil {
		a := attrs{"TYPE", o.Type, "DIM", o.Dim, "DISTANCE_METRIC", o.DistanceMetric}.
			add("INITIAL_CAP", o.InitialCapacity > 0, o.InitialCapacity).
			add("BLOCK_SIZE", o.BlockSize > 0, o.BlockSize)
		return args.Counted("FLAT", a...)
	}
	if o := v.HNSWOptions; o != nil {
		a := attrs{"TYPE", o.Type, "DIM", o.Dim, "DISTANCE_METRIC", o.DistanceMetric}.
			add("INITIAL_CAP", o.InitialCapacity > 0, o.InitialCapacity).
			add("M", o.MaxEdgesPerNode > 0, o.MaxEdgesPerNode).
			add("EF_CONSTRUCTION", o.MaxAllowedEdgesPerNode > 0, o.MaxAllowedEdgesPerNode).
			add("EF_RUNTIME", o.EFRunTime > 0, o.EFRunTime).
			add("EPSILON", o.Epsilon > 0, o.Epsilon)
		return args.Counted("HNSW", a...)
	}
	return args.Group(false)
}

func (f *FieldSchema) checks() []args.Check {
	_, typeOK := searchFieldTypeTokens.token(f.FieldType)
	checks := []args.Check{
		args.Require(f.FieldName != "", "field name is required"),
		args.Supported(typeOK, "field type"),
		args.Require(f.GeoShapeFieldType == "" || f.FieldType == SearchFieldTypeGeoShape,
			"a geoshape coordinate system requires a GEOSHAPE field"),
		args.NonNegative("weight", f.Weight),
	}
	if v := f.VectorArgs; v != nil {
		checks = append(checks,
			args.Require(f.FieldType == SearchFieldTypeVector, "vector options require a VECTOR field"),
			args.Exclusive("FLAT and HNSW are mutually exclusive", v.FlatOptions != nil, v.HNSWOptions != nil),
			args.Require(v.FlatOptions != nil || v.HNSWOptions != nil, "a vector field needs FLAT or HNSW options"),
		)
		if o := v.FlatOptions; o != nil {
			checks = append(checks, args.Require(o.Type != "" && o.Dim > 0 && o.DistanceMetric != "",
				"FLAT requires TYPE, DIM and DISTANCE_METRIC"))
		}
		if o := v.HNSWOptions; o != nil {
			checks = append(checks, args.Require(o.Type != "" && o.Dim > 0 && o.DistanceMetric != "",
				"HNSW requires TYPE, DIM and DISTANCE_METRIC"))
		}
	}
	return checks
}

func (f *FieldSchema) parts() []args.Part {
	vector := args.Group(false)
	if f.VectorArgs != nil {
		vector = f.VectorArgs.part()
	}
	return []args.Part{
		args.Pos(f.FieldName),
		args.Opt(ftAs, f.As != "", f.As),
		args.Pos(f.FieldType.String()),
		vector,
		args.Opt("", f.GeoShapeFieldType != "", f.GeoShapeFieldType),
		args.Flag("NOSTEM", f.NoStem),
		args.Flag("SORTABLE", f.Sortable),
		args.Flag("UNF", f.UNF),
		args.Flag("NOINDEX", f.NoIndex),
		args.Opt("PHONETIC", f.PhoneticMatcher != "", f.PhoneticMatcher),
		args.Opt("WEIGHT", f.Weight > 0, f.Weight),
		args.Opt("SEPARATOR", f.Separator != "", f.Separator),
		args.Flag("CASESENSITIVE", f.CaseSensitive),
		args.Flag("WITHSUFFIXTRIE", f.WithSuffixtrie),
		args.Flag("INDEXEMPTY", f.IndexEmpty),
		args.Flag("INDEXMISSING", f.IndexMissing),
	}
}

// schemaArgs returns the checks and parts of every field, in order.
func schemaArgs(fields []*FieldSchema) ([]args.Check, []args.Part) {
	checks := []args.Check{args.NonEmpty("schema", len(fields))}
	var parts []args.Part
	for _, f := range fields {
		if f == nil {
			checks = append(checks, args.Require(false, "schema field must not be nil"))
			continue
		}
		checks = append(checks, f.checks()...)
		parts = append(parts, f.parts()...)
	}
	return checks, parts
}

// paramArgs emits PARAMS with its names sorted, so equal maps build equal
// commands.
func paramArgs(params map[string]interface{}) args.Part {
	kv := make([]interface{}, 0, 2*len(params))
	for _, name := range slices.Sorted(maps.Keys(params)) {
		kv = append(kv, name, params[name])
	}
	return args.Counted(ftParams, kv...)
}

// FT_List returns the names of all indexes.
func (c cmdable) FT_List(ctx context.Context) *StringSliceCmd {
	cmd := &StringSliceCmd{baseCmd: buildCmd(ctx, args.Schema{Name: ftList})}
	_ = c(ctx, cmd)
	return cmd
}

// FTCreate creates an index with the given schema.
func (c cmdable) FTCreate(ctx context.Context, index string, options *FTCreateOptions, schema ...*FieldSchema) *StatusCmd {
	if options == nil {
		options = &FTCreateOptions{}
	}
	checks, fields := schemaArgs(schema)
	checks = append(checks,
		args.Exclusive("ON HASH and ON JSON are mutually exclusive", options.OnHash, options.OnJSON),
		args.NonNegative("score", options.Score),
	)

	parts := []args.Part{
		args.Pos(index),
		args.Opt("ON", options.OnHash, "HASH"),
		args.Opt("ON", options.OnJSON, "JSON"),
		args.Counted("PREFIX", args.Strings(options.Prefix)...),
		args.Opt(kwFilter, options.Filter != "", options.Filter),
		args.Opt("LANGUAGE", options.DefaultLanguage != "", options.DefaultLanguage),
		args.Opt("LANGUAGE_FIELD", options.LanguageField != "", options.LanguageField),
		args.Opt("SCORE", options.Score > 0, options.Score),
		args.Opt("SCORE_FIELD", options.ScoreField != "", options.ScoreField),
		args.Opt("PAYLOAD_FIELD", options.PayloadField != "", options.PayloadField),
		args.Flag("MAXTEXTFIELDS", options.MaxTextFields),
		args.Opt("TEMPORARY", options.Temporary > 0, options.Temporary),
		args.Flag("NOOFFSETS", options.NoOffsets),
		args.Flag("NOHL", options.NoHL),
		args.Flag("NOFIELDS", options.NoFields),
		args.Flag("NOFREQS", options.NoFreqs),
		args.Group(options.StopWords != nil,
			args.Pos("STOPWORDS", len(options.StopWords)),
			args.Pos(args.Strings(options.StopWords)...),
		),
		args.Flag(ftSkipInitScan, options.SkipInitialScan),
		args.Pos("SCHEMA"),
	}

	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   ftCreate,
		Checks: checks,
		Parts:  append(parts, fields...),
	})}
	_ = c(ctx, cmd)
	return cmd
}

// FTAlter adds fields to the schema of an index.
func (c cmdable) FTAlter(ctx context.Context, index string, skipInitialScan bool, fields ...*FieldSchema) *StatusCmd {
	checks, fieldParts := schemaArgs(fields)
	parts := []args.Part{
		args.Pos(index),
		args.Flag(ftSkipInitScan, skipInitialScan),
		args.Pos("SCHEMA", "ADD"),
	}
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   ftAlter,
		Checks: checks,
		Parts:  append(parts, fieldParts...),
	})}
	_ = c(ctx, cmd)
	return cmd
}

//------------------------------------------------------------------------------

type FTSearchFilter struct {
	FieldName string
	Min       interface{}
	Max       interface{}
}

type FTSearchGeoFilter struct {
	FieldName string
	Longitude float64
	Latitude  float64
	Radius    float64
	Unit      string
}

type FTSearchReturn struct {
	FieldName string
	As        string
}

type FTSearchSortBy struct {
	FieldName string
	Asc       bool
	Desc      bool
}

type FTSearchOptions struct {
	NoContent       bool
	Verbatim        bool
	NoStopWords     bool
	WithScores      bool
	WithPayloads    bool
	WithSortKeys    bool
	Filters         []FTSearchFilter
	GeoFilter       []FTSearchGeoFilter
	InKeys          []string
	InFields        []string
	Return          []FTSearchReturn
	Slop            int64
	Timeout         int64
	InOrder         bool
	Language        string
	Expander        string
	Scorer          string
	ExplainScore    bool
	Payload         string
	SortBy          *FTSearchSortBy
	SortByWithCount bool
	LimitOffset     int64
	Limit           int64
	// CountOnly sends LIMIT 0 0: the reply carries the total only.
	CountOnly       bool
	Params          map[string]interface{}
	DialectVersion  int64
}

// FTSearch runs query against index.
func (c cmdable) FTSearch(ctx context.Context, index, query string) *FTSearchCmd {
	return c.FTSearchWithArgs(ctx, index, query, nil)
}

func (c cmdable) FTSearchWithArgs(ctx context.Context, index, query string, options *FTSearchOptions) *FTSearchCmd {
	if options == nil {
		options = &FTSearchOptions{}
	}

	var filters []args.Part
	for _, f := range options.Filters {
		filters = append(filters, args.Opt(kwFilter, true, f.FieldName, f.Min, f.Max))
	}
	for _, g := range options.GeoFilter {
		filters = append(filters, args.Opt("GEOFILTER", true, g.FieldName, g.Longitude, g.Latitude, g.Radius, g.Unit))
	}

	var ret []interface{}
	for _, r := range options.Return {
		ret = append(ret, r.FieldName)
		if r.As != "" {
			ret = append(ret, ftAs, r.As)
		}
	}

	sortBy := args.Group(false)
	if s := options.SortBy; s != nil {
		sortBy = args.Group(true,
			args.Opt(ftSortBy, true, s.FieldName),
			args.Flag("ASC", s.Asc),
			args.Flag("DESC", s.Desc),
			args.Flag(kwWithCount, options.SortByWithCount),
		)
	}

	checks := []args.Check{
		args.Require(options.SortBy == nil || !(options.SortBy.Asc && options.SortBy.Desc),
			"ASC and DESC are mutually exclusive"),
		args.Require(options.SortBy != nil || !options.SortByWithCount, "WITHCOUNT requires SORTBY"),
		args.NonNegative("limit offset", float64(options.LimitOffset)),
		args.NonNegative("limit", float64(options.Limit)),
		args.Exclusive("CountOnly and Limit are mutually exclusive", options.CountOnly, options.Limit > 0),
		args.Require(options.LimitOffset == 0 || options.Limit > 0, "LimitOffset requires Limit"),
	}

	parts := []args.Part{
		args.Pos(index, query),
		args.Flag("NOCONTENT", options.NoContent),
		args.Flag("VERBATIM", options.Verbatim),
		args.Flag("NOSTOPWORDS", options.NoStopWords),
		args.Flag("WITHSCORES", options.WithScores),
		args.Flag("WITHPAYLOADS", options.WithPayloads),
		args.Flag("WITHSORTKEYS", options.WithSortKeys),
	}
	parts = append(parts, filters...)
	parts = append(parts,
		args.Counted("INKEYS", args.Strings(options.InKeys)...),
		args.Counted("INFIELDS", args.Strings(options.InFields)...),
		args.Counted("RETURN", ret...),
		args.Opt("SLOP", options.Slop > 0, options.Slop),
		args.Opt(ftTimeout, options.Timeout > 0, options.Timeout),
		args.Flag("INORDER", options.InOrder),
		args.Opt("LANGUAGE", options.Language != "", options.Language),
		args.Opt("EXPANDER", options.Expander != "", options.Expander),
		args.Opt("SCORER", options.Scorer != "", options.Scorer),
		args.Flag("EXPLAINSCORE", options.ExplainScore),
		args.Opt("PAYLOAD", options.Payload != "", options.Payload),
		sortBy,
		args.Opt(kwLimit, options.Limit > 0 || options.CountOnly, options.LimitOffset, options.Limit),
		paramArgs(options.Params),
		args.Opt(ftDialect, options.DialectVersion > 0, options.DialectVersion),
	)

	cmd := &FTSearchCmd{
		baseCmd: buildCmd(ctx, args.Schema{
			Name:   ftSearch,
			Checks: checks,
			Parts:  parts,
		}),
		noContent:    options.NoContent,
		withScores:   options.WithScores,
		withPayloads: options.WithPayloads,
		withSortKeys: options.WithSortKeys,
	}
	_ = c(ctx, cmd)
	return cmd
}

//------------------------------------------------------------------------------

type FTAggregateReducer struct {
	Reducer SearchReducer
	Args    []interface{}
	As      string
}

type FTAggregateGroupBy struct {
	Fields []string
	Reduce []FTAggregateReducer
}

type FTAggregateSortBy struct {
	FieldName string
	Asc       bool
	Desc      bool
}

type FTAggregateApply struct {
	Field string
	As    string
}

type FTAggregateLoad struct {
	Field string
	As    string
}

type FTAggregateWithCursor struct {
	Count   int64
	MaxIdle int64
}

type FTAggregateOptions struct {
	Verbatim          bool
	LoadAll           bool
	Load              []FTAggregateLoad
	Timeout           int64
	GroupBy           []FTAggregateGroupBy
	SortBy            []FTAggregateSortBy
	SortByMax         int64
	Apply             []FTAggregateApply
	LimitOffset       int64
	Limit             int64
	Filter            string
	WithCursor        bool
	WithCursorOptions *FTAggregateWithCursor
	Params            map[string]interface{}
	DialectVersion    int64
}

// FTAggregate runs query against index and applies the aggregation pipeline
// of options.
func (c cmdable) FTAggregate(ctx context.Context, index, query string) *AggregateCmd {
	return c.FTAggregateWithArgs(ctx, index, query, nil)
}

func (c cmdable) FTAggregateWithArgs(ctx context.Context, index, query string, options *FTAggregateOptions) *AggregateCmd {
	if options == nil {
		options = &FTAggregateOptions{}
	}

	checks := []args.Check{
		args.Exclusive("LOADALL and LOAD are mutually exclusive", options.LoadAll, len(options.Load) > 0),
		args.Require(options.WithCursor || options.WithCursorOptions == nil, "cursor options require WITHCURSOR"),
		args.NonNegative("limit offset", float64(options.LimitOffset)),
		args.NonNegative("limit", float64(options.Limit)),
		args.Require(options.LimitOffset == 0 || options.Limit > 0, "LimitOffset requires Limit"),
	}

	var load []interface{}
	for _, l := range options.Load {
		load = append(load, l.Field)
		if l.As != "" {
			load = append(load, ftAs, l.As)
		}
	}

	parts := []args.Part{
		args.Pos(index, query),
		args.Flag("VERBATIM", options.Verbatim),
		args.Opt("LOAD", options.LoadAll, "*"),
		args.Counted("LOAD", load...),
		args.Opt(ftTimeout, options.Timeout > 0, options.Timeout),
	}

	for _, g := range options.GroupBy {
		checks = append(checks, args.NonEmpty("GROUPBY fields", len(g.Fields)))
		parts = append(parts, args.Counted("GROUPBY", args.Strings(g.Fields)...))
		for _, r := range g.Reduce {
			token, ok := searchReducerTokens.token(r.Reducer)
			checks = append(checks, args.Supported(ok, "reducer"))
			parts = append(parts,
				args.Pos("REDUCE", token, len(r.Args)),
				args.Pos(r.Args...),
				args.Opt(ftAs, r.As != "", r.As),
			)
		}
	}

	var sortBy []interface{}
	for _, s := range options.SortBy {
		checks = append(checks, args.Exclusive("ASC and DESC are mutually exclusive", s.Asc, s.Desc))
		sortBy = append(sortBy, s.FieldName)
		if s.Asc {
			sortBy = append(sortBy, "ASC")
		}
		if s.Desc {
			sortBy = append(sortBy, "DESC")
		}
	}
	parts = append(parts,
		args.Counted(ftSortBy, sortBy...),
		args.Opt("MAX", options.SortByMax > 0, options.SortByMax),
	)

	for _, a := range options.Apply {
		parts = append(parts,
			args.Opt("APPLY", true, a.Field),
			args.Opt(ftAs, a.As != "", a.As),
		)
	}

	cursor := options.WithCursorOptions
	if cursor == nil {
		cursor = &FTAggregateWithCursor{}
	}
	parts = append(parts,
		args.Opt(kwLimit, options.Limit > 0, options.LimitOffset, options.Limit),
		args.Opt(kwFilter, options.Filter != "", options.Filter),
		args.Group(options.WithCursor,
			args.Flag("WITHCURSOR", true),
			args.Opt(kwCount, cursor.Count > 0, cursor.Count),
			args.Opt("MAXIDLE", cursor.MaxIdle > 0, cursor.MaxIdle),
		),
		paramArgs(options.Params),
		args.Opt(ftDialect, options.DialectVersion > 0, options.DialectVersion),
	)

	cmd := &AggregateCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   ftAggregate,
		Checks: checks,
		Parts:  parts,
	})}
	_ = c(ctx, cmd)
	return cmd
}

// FTCursorRead reads the next batch of an aggregation cursor. A count of 0
// uses the batch size the cursor was created with.
func (c cmdable) FTCursorRead(ctx context.Context, index string, cursorID int64, count int64) *AggregateCmd {
	cmd := &AggregateCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   ftCursorRead,
		Checks: []args.Check{args.NonNegative("count", float64(count))},
		Parts: []args.Part{
			args.Pos(index, cursorID),
			args.Opt(kwCount, count > 0, count),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) FTCursorDel(ctx context.Context, index string, cursorID int64) *StatusCmd {
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  ftCursorDel,
		Parts: []args.Part{args.Pos(index, cursorID)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

//------------------------------------------------------------------------------

func (c cmdable) FTInfo(ctx context.Context, index string) *FTInfoCmd {
	cmd := &FTInfoCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  ftInfo,
		Parts: []args.Part{args.Pos(index)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// FTAliasAdd adds alias to index.
func (c cmdable) FTAliasAdd(ctx context.Context, index, alias string) *StatusCmd {
	return c.ftAlias(ctx, ftAliasAdd, alias, index)
}

func (c cmdable) FTAliasDel(ctx context.Context, alias string) *StatusCmd {
	return c.ftAlias(ctx, ftAliasDel, alias)
}

// FTAliasUpdate points alias at index, removing it from its current index.
func (c cmdable) FTAliasUpdate(ctx context.Context, index, alias string) *StatusCmd {
	return c.ftAlias(ctx, ftAliasUpdate, alias, index)
}

func (c cmdable) ftAlias(ctx context.Context, name string, values ...interface{}) *StatusCmd {
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  name,
		Parts: []args.Part{args.Pos(values...)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// FTDictAdd returns the number of new terms.
func (c cmdable) FTDictAdd(ctx context.Context, dict string, terms ...string) *IntCmd {
	return c.ftDict(ctx, ftDictAdd, dict, terms)
}

// FTDictDel returns the number of deleted terms.
func (c cmdable) FTDictDel(ctx context.Context, dict string, terms ...string) *IntCmd {
	return c.ftDict(ctx, ftDictDel, dict, terms)
}

func (c cmdable) ftDict(ctx context.Context, name, dict string, terms []string) *IntCmd {
	cmd := &IntCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   name,
		Checks: []args.Check{args.NonEmpty("terms", len(terms))},
		Parts:  []args.Part{args.Pos(dict), args.Pos(args.Strings(terms)...)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) FTDictDump(ctx context.Context, dict string) *StringSliceCmd {
	cmd := &StringSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  ftDictDump,
		Parts: []args.Part{args.Pos(dict)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

type FTDropIndexOptions struct {
	DeleteDocs bool
}

func (c cmdable) FTDropIndex(ctx context.Context, index string) *StatusCmd {
	return c.FTDropIndexWithArgs(ctx, index, nil)
}

// FTDropIndexWithArgs drops index. With DeleteDocs the indexed documents are
// deleted too.
func (c cmdable) FTDropIndexWithArgs(ctx context.Context, index string, options *FTDropIndexOptions) *StatusCmd {
	if options == nil {
		options = &FTDropIndexOptions{}
	}
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: ftDropIndex,
		Parts: []args.Part{
			args.Pos(index),
			args.Flag("DD", options.DeleteDocs),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

type FTExplainOptions struct {
	Dialect int64
}

// FTExplain returns the execution plan of query.
func (c cmdable) FTExplain(ctx context.Context, index, query string) *StringCmd {
	return c.FTExplainWithArgs(ctx, index, query, nil)
}

func (c cmdable) FTExplainWithArgs(ctx context.Context, index, query string, options *FTExplainOptions) *StringCmd {
	if options == nil {
		options = &FTExplainOptions{}
	}
	cmd := &StringCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: ftExplain,
		Parts: []args.Part{
			args.Pos(index, query),
			args.Opt(ftDialect, options.Dialect > 0, options.Dialect),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

type SpellCheckTerms struct {
	Include    bool
	Exclude    bool
	Dictionary string
}

type FTSpellCheckOptions struct {
	Distance int64
	Terms    *SpellCheckTerms
	Dialect  int64
}

func (c cmdable) FTSpellCheck(ctx context.Context, index, query string) *FTSpellCheckCmd {
	return c.FTSpellCheckWithArgs(ctx, index, query, nil)
}

// FTSpellCheckWithArgs returns spelling suggestions for the terms of query.
// Distance must be between 1 and 4 when set.
func (c cmdable) FTSpellCheckWithArgs(ctx context.Context, index, query string, options *FTSpellCheckOptions) *FTSpellCheckCmd {
	if options == nil {
		options = &FTSpellCheckOptions{}
	}
	terms := options.Terms
	if terms == nil {
		terms = &SpellCheckTerms{}
	}
	hasTerms := terms.Include || terms.Exclude

	cmd := &FTSpellCheckCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: ftSpellCheck,
		Checks: []args.Check{
			args.Require(options.Distance >= 0 && options.Distance <= 4, "DISTANCE must be between 1 and 4"),
			args.Exclusive("INCLUDE and EXCLUDE are mutually exclusive", terms.Include, terms.Exclude),
			args.Require(!hasTerms || terms.Dictionary != "", "TERMS requires a dictionary"),
		},
		Parts: []args.Part{
			args.Pos(index, query),
			args.Opt("DISTANCE", options.Distance > 0, options.Distance),
			args.Opt("TERMS", terms.Include, "INCLUDE", terms.Dictionary),
			args.Opt("TERMS", terms.Exclude, "EXCLUDE", terms.Dictionary),
			args.Opt(ftDialect, options.Dialect > 0, options.Dialect),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) FTSynDump(ctx context.Context, index string) *FTSynDumpCmd {
	cmd := &FTSynDumpCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  ftSynDump,
		Parts: []args.Part{args.Pos(index)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

type FTSynUpdateOptions struct {
	SkipInitialScan bool
}

// FTSynUpdate adds terms to the synonym group groupID.
func (c cmdable) FTSynUpdate(ctx context.Context, index string, groupID interface{}, terms ...string) *StatusCmd {
	return c.FTSynUpdateWithArgs(ctx, index, groupID, nil, terms...)
}

func (c cmdable) FTSynUpdateWithArgs(
	ctx context.Context, index string, groupID interface{}, options *FTSynUpdateOptions, terms ...string,
) *StatusCmd {
	if options == nil {
		options = &FTSynUpdateOptions{}
	}
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   ftSynUpdate,
		Checks: []args.Check{args.NonEmpty("terms", len(terms))},
		Parts: []args.Part{
			args.Pos(index, groupID),
			args.Flag(ftSkipInitScan, options.SkipInitialScan),
			args.Pos(args.Strings(terms)...),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// FTTagVals returns the distinct values of a TAG field.
func (c cmdable) FTTagVals(ctx context.Context, index, field string) *StringSliceCmd {
	cmd := &StringSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  ftTagVals,
		Parts: []args.Part{args.Pos(index, field)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// FTConfigGet returns the configuration options matching option, "*" for
// all of them.
func (c cmdable) FTConfigGet(ctx context.Context, option string) *FTConfigCmd {
	cmd := &FTConfigCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  ftConfigGet,
		Parts: []args.Part{args.Pos(option)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) FTConfigSet(ctx context.Context, option string, value interface{}) *StatusCmd {
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  ftConfigSet,
		Parts: []args.Part{args.Pos(option, value)},
	})}
	_ = c(ctx, cmd)
	return cmd
}
