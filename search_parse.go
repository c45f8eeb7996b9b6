package stack

import (
	"fmt"
	"strings"

	"github.com/redis/go-redis-stack/internal/hscan"
	"github.com/redis/go-redis-stack/internal/proto"
	"github.com/redis/go-redis-stack/internal/util"
)

// Document is one hit of FT.SEARCH. Score, Payload and SortKey are only set
// when the matching WITH* option was requested; Fields is nil with
// NOCONTENT.
type Document struct {
	ID      string
	Score   float64
	Payload string
	SortKey string
	Fields  map[string]string
}

// Scan copies the document fields into the struct pointed to by dst. Fields
// are matched by the `redis` struct tag, e.g. `redis:"title"`, or
// `redis:"$"` for the document of a JSON index.
func (d Document) Scan(dst interface{}) error {
	return hscan.Scan(dst, d.Fields)
}

type FTSearchResult struct {
	Total int64
	Docs  []Document
}

type FTSearchCmd struct {
	baseCmd

	val FTSearchResult

	noContent    bool
	withScores   bool
	withPayloads bool
	withSortKeys bool
}

var _ Cmder = (*FTSearchCmd)(nil)

func (cmd *FTSearchCmd) Val() FTSearchResult {
	if !cmd.Ready() {
		return FTSearchResult{}
	}
	return cmd.val
}

func (cmd *FTSearchCmd) Result() (FTSearchResult, error) {
	if err := cmd.Err(); err != nil {
		return FTSearchResult{}, err
	}
	return cmd.val, nil
}

func (cmd *FTSearchCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *FTSearchCmd) readReply(pv *proto.Value) error {
	if pv.IsMap() {
		return cmd.readMap(pv)
	}

	arr, err := pv.Array()
	if err != nil {
		return err
	}
	if len(arr) == 0 {
		return fmt.Errorf("got empty reply, wanted total count")
	}
	if cmd.val.Total, err = arr[0].Int64(); err != nil {
		return err
	}

	// Every hit is the id followed by one element per requested extra.
	stride := 1
	for _, on := range []bool{cmd.withScores, cmd.withPayloads, cmd.withSortKeys, !cmd.noContent} {
		if on {
			stride++
		}
	}
	rest := arr[1:]
	if len(rest)%stride != 0 {
		return fmt.Errorf("got %d elements after the total, wanted a multiple of %d", len(rest), stride)
	}

	cmd.val.Docs = make([]Document, 0, len(rest)/stride)
	for i := 0; i < len(rest); i += stride {
		hit := rest[i : i+stride]

		var doc Document
		if doc.ID, err = hit[0].Text(); err != nil {
			return err
		}
		j := 1
		if cmd.withScores {
			if doc.Score, err = readScore(hit[j]); err != nil {
				return err
			}
			j++
		}
		if cmd.withPayloads {
			if doc.Payload, err = hit[j].Text(); err != nil {
				return err
			}
			j++
		}
		if cmd.withSortKeys {
			if doc.SortKey, err = hit[j].Text(); err != nil {
				return err
			}
			j++
		}
		if !cmd.noContent {
			if doc.Fields, err = readFields(hit[j]); err != nil {
				return err
			}
		}
		cmd.val.Docs = append(cmd.val.Docs, doc)
	}
	return nil
}

func (cmd *FTSearchCmd) readMap(pv *proto.Value) error {
	return pv.MapScan(func(key string, val *proto.Value) error {
		switch key {
		case "total_results":
			n, err := val.Int64()
			cmd.val.Total = n
			return err
		case "results":
			results, err := val.Array()
			if err != nil {
				return err
			}
			cmd.val.Docs = make([]Document, 0, len(results))
			for _, r := range results {
				doc, err := readDocumentMap(r)
				if err != nil {
					return err
				}
				cmd.val.Docs = append(cmd.val.Docs, doc)
			}
		}
		return nil
	})
}

func readDocumentMap(pv *proto.Value) (Document, error) {
	var doc Document
	err := pv.MapScan(func(key string, val *proto.Value) (err error) {
		switch key {
		case "id":
			doc.ID, err = val.Text()
		case "score":
			doc.Score, err = readScore(val)
		case "payload":
			doc.Payload, err = val.Text()
		case "sortkey":
			doc.SortKey, err = val.Text()
		case "extra_attributes":
			doc.Fields, err = readFields(val)
		}
		return err
	})
	return doc, err
}

// readScore accepts a plain score and the [score, explanation] pair sent
// with EXPLAINSCORE.
func readScore(pv *proto.Value) (float64, error) {
	if pv.IsSlice() {
		arr, _ := pv.Array()
		if len(arr) == 0 {
			return 0, fmt.Errorf("got empty score")
		}
		pv = arr[0]
	}
	return pv.Float64()
}

func readFields(pv *proto.Value) (map[string]string, error) {
	if pv.IsNil() {
		return nil, nil
	}
	fields := make(map[string]string)
	err := pv.MapScan(func(key string, val *proto.Value) error {
		s, err := val.Text()
		if err != nil {
			return err
		}
		fields[key] = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fields, nil
}

//------------------------------------------------------------------------------

// AggregateResult is one batch of FT.AGGREGATE rows. CursorID is 0 when the
// query did not use a cursor or the cursor is exhausted.
type AggregateResult struct {
	Total    int64
	Rows     []map[string]interface{}
	CursorID int64
}

type AggregateCmd struct {
	baseCmd

	val AggregateResult
}

var _ Cmder = (*AggregateCmd)(nil)

func (cmd *AggregateCmd) Val() AggregateResult {
	if !cmd.Ready() {
		return AggregateResult{}
	}
	return cmd.val
}

func (cmd *AggregateCmd) Result() (AggregateResult, error) {
	if err := cmd.Err(); err != nil {
		return AggregateResult{}, err
	}
	return cmd.val, nil
}

func (cmd *AggregateCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *AggregateCmd) readReply(pv *proto.Value) error {
	body := pv
	if pv.IsSlice() {
		arr, _ := pv.Array()
		// WITHCURSOR wraps the batch: [batch, cursor id].
		if len(arr) == 2 && (arr[0].IsSlice() || arr[0].IsMap()) {
			id, err := arr[1].Int64()
			if err != nil {
				return err
			}
			cmd.val.CursorID = id
			body = arr[0]
		}
	}

	if body.IsMap() {
		return cmd.readMap(body)
	}

	arr, err := body.Array()
	if err != nil {
		return err
	}
	if len(arr) == 0 {
		return fmt.Errorf("got empty reply, wanted total count")
	}
	if cmd.val.Total, err = arr[0].Int64(); err != nil {
		return err
	}
	cmd.val.Rows = make([]map[string]interface{}, 0, len(arr)-1)
	for _, row := range arr[1:] {
		m, err := readRow(row)
		if err != nil {
			return err
		}
		cmd.val.Rows = append(cmd.val.Rows, m)
	}
	return nil
}

func (cmd *AggregateCmd) readMap(pv *proto.Value) error {
	return pv.MapScan(func(key string, val *proto.Value) error {
		switch key {
		case "total_results":
			n, err := val.Int64()
			cmd.val.Total = n
			return err
		case "results":
			results, err := val.Array()
			if err != nil {
				return err
			}
			cmd.val.Rows = make([]map[string]interface{}, 0, len(results))
			for _, r := range results {
				var row map[string]interface{}
				err := r.MapScan(func(key string, val *proto.Value) (err error) {
					if key == "extra_attributes" {
						row, err = readRow(val)
					}
					return err
				})
				if err != nil {
					return err
				}
				if row == nil {
					row = map[string]interface{}{}
				}
				cmd.val.Rows = append(cmd.val.Rows, row)
			}
		}
		return nil
	})
}

func readRow(pv *proto.Value) (map[string]interface{}, error) {
	row := make(map[string]interface{})
	err := pv.MapScan(func(key string, val *proto.Value) error {
		row[key] = val.Interface()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

//------------------------------------------------------------------------------

type FTIndexDefinition struct {
	KeyType         string
	Prefixes        []string
	Filter          string
	DefaultLanguage string
	LanguageField   string
	DefaultScore    float64
	ScoreField      string
	PayloadField    string
}

type FTAttribute struct {
	Identifier     string
	Attribute      string
	Type           string
	Weight         float64
	Separator      string
	Phonetic       string
	Sortable       bool
	UNF            bool
	NoStem         bool
	NoIndex        bool
	CaseSensitive  bool
	WithSuffixtrie bool
	IndexEmpty     bool
	IndexMissing   bool

	// Vector fields only.
	Algorithm      string
	DataType       string
	Dim            int64
	DistanceMetric string
	M              int64
	EFConstruction int64
}

// FieldType parses Type; unknown types yield 0.
func (a FTAttribute) FieldType() SearchFieldType {
	t, _ := parseSearchFieldType(a.Type)
	return t
}

type FTGCStats struct {
	BytesCollected       int64
	TotalMsRun           int64
	TotalCycles          int64
	AverageCycleTimeMs   float64
	LastRunTimeMs        int64
	GCNumericTreesMissed int64
	GCBlocksDenied       int64
}

type FTCursorStats struct {
	GlobalIdle    int64
	GlobalTotal   int64
	IndexCapacity int64
	IndexTotal    int64
}

type FTIndexErrors struct {
	IndexingFailures         int64
	LastIndexingError        string
	LastIndexingErrorKey     string
	BackgroundIndexingStatus string
}

type FTFieldStatistic struct {
	Identifier  string
	Attribute   string
	IndexErrors FTIndexErrors
}

// FTInfo is the decoded FT.INFO reply. Averages the server reports as "nan"
// for an empty index decode to 0.
type FTInfo struct {
	IndexName                string
	IndexOptions             []string
	IndexDefinition          FTIndexDefinition
	Attributes               []FTAttribute
	NumDocs                  int64
	MaxDocID                 int64
	NumTerms                 int64
	NumRecords               int64
	InvertedSzMB             float64
	VectorIndexSzMB          float64
	TotalInvertedIndexBlocks int64
	OffsetVectorsSzMB        float64
	DocTableSizeMB           float64
	SortableValuesSizeMB     float64
	KeyTableSizeMB           float64
	TotalIndexMemorySzMB     float64
	RecordsPerDocAvg         float64
	BytesPerRecordAvg        float64
	OffsetsPerTermAvg        float64
	OffsetBitsPerRecordAvg   float64
	HashIndexingFailures     int64
	TotalIndexingTime        float64
	Indexing                 int64
	PercentIndexed           float64
	NumberOfUses             int64
	Cleaning                 int64
	GCStats                  FTGCStats
	CursorStats              FTCursorStats
	DialectStats             map[string]int64
	IndexErrors              FTIndexErrors
	FieldStatistics          []FTFieldStatistic
}

// nanFloatInfo is floatInfo for statistics that are "nan" while undefined.
func nanFloatInfo[T any](field func(*T) *float64) func(*T, *proto.Value) error {
	decode := floatInfo(field)
	return func(dst *T, v *proto.Value) error {
		if s, err := v.String(); err == nil && strings.EqualFold(strings.TrimPrefix(s, "-"), "nan") {
			*field(dst) = util.NaNDefault
			return nil
		}
		return decode(dst, v)
	}
}

func stringsInfo[T any](field func(*T) *[]string) func(*T, *proto.Value) error {
	return func(dst *T, v *proto.Value) error {
		if v.IsNil() {
			return nil
		}
		ss, err := v.SliceString()
		if err != nil {
			return err
		}
		*field(dst) = ss
		return nil
	}
}

func nestedInfo[T, N any](table infoTable[N], field func(*T) *N) func(*T, *proto.Value) error {
	return func(dst *T, v *proto.Value) error {
		if v.IsNil() {
			return nil
		}
		return table.scan(field(dst), v)
	}
}

var ftIndexDefinitionFields = infoTable[FTIndexDefinition]{
	"key_type":         stringInfo(func(d *FTIndexDefinition) *string { return &d.KeyType }),
	"prefixes":         stringsInfo(func(d *FTIndexDefinition) *[]string { return &d.Prefixes }),
	"filter":           stringInfo(func(d *FTIndexDefinition) *string { return &d.Filter }),
	"default_language": stringInfo(func(d *FTIndexDefinition) *string { return &d.DefaultLanguage }),
	"language_field":   stringInfo(func(d *FTIndexDefinition) *string { return &d.LanguageField }),
	"default_score":    nanFloatInfo(func(d *FTIndexDefinition) *float64 { return &d.DefaultScore }),
	"score_field":      stringInfo(func(d *FTIndexDefinition) *string { return &d.ScoreField }),
	"payload_field":    stringInfo(func(d *FTIndexDefinition) *string { return &d.PayloadField }),
}

var ftAttributeFields = infoTable[FTAttribute]{
	"identifier":      stringInfo(func(a *FTAttribute) *string { return &a.Identifier }),
	"attribute":       stringInfo(func(a *FTAttribute) *string { return &a.Attribute }),
	"type":            stringInfo(func(a *FTAttribute) *string { return &a.Type }),
	"weight":          nanFloatInfo(func(a *FTAttribute) *float64 { return &a.Weight }),
	"separator":       stringInfo(func(a *FTAttribute) *string { return &a.Separator }),
	"phonetic":        stringInfo(func(a *FTAttribute) *string { return &a.Phonetic }),
	"algorithm":       stringInfo(func(a *FTAttribute) *string { return &a.Algorithm }),
	"data_type":       stringInfo(func(a *FTAttribute) *string { return &a.DataType }),
	"dim":             intInfo(func(a *FTAttribute) *int64 { return &a.Dim }),
	"distance_metric": stringInfo(func(a *FTAttribute) *string { return &a.DistanceMetric }),
	"m":               intInfo(func(a *FTAttribute) *int64 { return &a.M }),
	"ef_construction": intInfo(func(a *FTAttribute) *int64 { return &a.EFConstruction }),
}

// setFlag sets the flag named s and reports whether s is a known flag.
func (a *FTAttribute) setFlag(s string) bool {
	switch strings.ToUpper(s) {
	case "SORTABLE":
		a.Sortable = true
	case "UNF":
		a.UNF = true
	case "NOSTEM":
		a.NoStem = true
	case "NOINDEX":
		a.NoIndex = true
	case "CASESENSITIVE":
		a.CaseSensitive = true
	case "WITHSUFFIXTRIE":
		a.WithSuffixtrie = true
	case "INDEXEMPTY":
		a.IndexEmpty = true
	case "INDEXMISSING":
		a.IndexMissing = true
	default:
		return false
	}
	return true
}

// readAttribute decodes one schema attribute. RESP2 interleaves bare flags
// with the key/value pairs; RESP3 sends a map with the flags under "flags".
func readAttribute(pv *proto.Value) (FTAttribute, error) {
	var attr FTAttribute

	if pv.IsMap() {
		err := pv.MapScan(func(key string, val *proto.Value) error {
			if !strings.EqualFold(key, "flags") {
				return ftAttributeFields.scanOne(&attr, key, val)
			}
			flags, err := val.SliceString()
			if err != nil {
				return err
			}
			for _, f := range flags {
				attr.setFlag(f)
			}
			return nil
		})
		return attr, err
	}

	arr, err := pv.Array()
	if err != nil {
		return attr, err
	}
	for i := 0; i < len(arr); i++ {
		key, err := arr[i].Text()
		if err != nil {
			return attr, err
		}
		if attr.setFlag(key) {
			continue
		}
		if i+1 == len(arr) {
			return attr, fmt.Errorf("attribute option %q has no value", key)
		}
		i++
		if err := ftAttributeFields.scanOne(&attr, key, arr[i]); err != nil {
			return attr, err
		}
	}
	return attr, nil
}

var ftGCStatsFields = infoTable[FTGCStats]{
	"bytes_collected":         intInfo(func(s *FTGCStats) *int64 { return &s.BytesCollected }),
	"total_ms_run":            intInfo(func(s *FTGCStats) *int64 { return &s.TotalMsRun }),
	"total_cycles":            intInfo(func(s *FTGCStats) *int64 { return &s.TotalCycles }),
	"average_cycle_time_ms":   nanFloatInfo(func(s *FTGCStats) *float64 { return &s.AverageCycleTimeMs }),
	"last_run_time_ms":        intInfo(func(s *FTGCStats) *int64 { return &s.LastRunTimeMs }),
	"gc_numeric_trees_missed": intInfo(func(s *FTGCStats) *int64 { return &s.GCNumericTreesMissed }),
	"gc_blocks_denied":        intInfo(func(s *FTGCStats) *int64 { return &s.GCBlocksDenied }),
}

var ftCursorStatsFields = infoTable[FTCursorStats]{
	"global_idle":    intInfo(func(s *FTCursorStats) *int64 { return &s.GlobalIdle }),
	"global_total":   intInfo(func(s *FTCursorStats) *int64 { return &s.GlobalTotal }),
	"index_capacity": intInfo(func(s *FTCursorStats) *int64 { return &s.IndexCapacity }),
	"index_total":    intInfo(func(s *FTCursorStats) *int64 { return &s.IndexTotal }),
}

var ftIndexErrorsFields = infoTable[FTIndexErrors]{
	"indexing failures":          intInfo(func(e *FTIndexErrors) *int64 { return &e.IndexingFailures }),
	"last indexing error":        stringInfo(func(e *FTIndexErrors) *string { return &e.LastIndexingError }),
	"last indexing error key":    stringInfo(func(e *FTIndexErrors) *string { return &e.LastIndexingErrorKey }),
	"background indexing status": stringInfo(func(e *FTIndexErrors) *string { return &e.BackgroundIndexingStatus }),
}

var ftFieldStatisticFields = infoTable[FTFieldStatistic]{
	"identifier":   stringInfo(func(s *FTFieldStatistic) *string { return &s.Identifier }),
	"attribute":    stringInfo(func(s *FTFieldStatistic) *string { return &s.Attribute }),
	"index errors": nestedInfo(ftIndexErrorsFields, func(s *FTFieldStatistic) *FTIndexErrors { return &s.IndexErrors }),
}

func readAttributes(i *FTInfo, v *proto.Value) error {
	arr, err := v.Array()
	if err != nil {
		return err
	}
	i.Attributes = make([]FTAttribute, 0, len(arr))
	for _, a := range arr {
		attr, err := readAttribute(a)
		if err != nil {
			return err
		}
		i.Attributes = append(i.Attributes, attr)
	}
	return nil
}

func readFieldStatistics(i *FTInfo, v *proto.Value) error {
	arr, err := v.Array()
	if err != nil {
		return err
	}
	i.FieldStatistics = make([]FTFieldStatistic, len(arr))
	for n, s := range arr {
		if err := ftFieldStatisticFields.scan(&i.FieldStatistics[n], s); err != nil {
			return err
		}
	}
	return nil
}

func readDialectStats(i *FTInfo, v *proto.Value) error {
	i.DialectStats = make(map[string]int64)
	return v.MapScan(func(key string, val *proto.Value) error {
		n, err := val.Int64()
		if err != nil {
			return err
		}
		i.DialectStats[key] = n
		return nil
	})
}

var ftInfoFields = infoTable[FTInfo]{
	"index_name":                  stringInfo(func(i *FTInfo) *string { return &i.IndexName }),
	"index_options":               stringsInfo(func(i *FTInfo) *[]string { return &i.IndexOptions }),
	"index_definition":            nestedInfo(ftIndexDefinitionFields, func(i *FTInfo) *FTIndexDefinition { return &i.IndexDefinition }),
	"attributes":                  readAttributes,
	"num_docs":                    intInfo(func(i *FTInfo) *int64 { return &i.NumDocs }),
	"max_doc_id":                  intInfo(func(i *FTInfo) *int64 { return &i.MaxDocID }),
	"num_terms":                   intInfo(func(i *FTInfo) *int64 { return &i.NumTerms }),
	"num_records":                 intInfo(func(i *FTInfo) *int64 { return &i.NumRecords }),
	"inverted_sz_mb":              nanFloatInfo(func(i *FTInfo) *float64 { return &i.InvertedSzMB }),
	"vector_index_sz_mb":          nanFloatInfo(func(i *FTInfo) *float64 { return &i.VectorIndexSzMB }),
	"total_inverted_index_blocks": intInfo(func(i *FTInfo) *int64 { return &i.TotalInvertedIndexBlocks }),
	"offset_vectors_sz_mb":        nanFloatInfo(func(i *FTInfo) *float64 { return &i.OffsetVectorsSzMB }),
	"doc_table_size_mb":           nanFloatInfo(func(i *FTInfo) *float64 { return &i.DocTableSizeMB }),
	"sortable_values_size_mb":     nanFloatInfo(func(i *FTInfo) *float64 { return &i.SortableValuesSizeMB }),
	"key_table_size_mb":           nanFloatInfo(func(i *FTInfo) *float64 { return &i.KeyTableSizeMB }),
	"total_index_memory_sz_mb":    nanFloatInfo(func(i *FTInfo) *float64 { return &i.TotalIndexMemorySzMB }),
	"records_per_doc_avg":         nanFloatInfo(func(i *FTInfo) *float64 { return &i.RecordsPerDocAvg }),
	"bytes_per_record_avg":        nanFloatInfo(func(i *FTInfo) *float64 { return &i.BytesPerRecordAvg }),
	"offsets_per_term_avg":        nanFloatInfo(func(i *FTInfo) *float64 { return &i.OffsetsPerTermAvg }),
	"offset_bits_per_record_avg":  nanFloatInfo(func(i *FTInfo) *float64 { return &i.OffsetBitsPerRecordAvg }),
	"hash_indexing_failures":      intInfo(func(i *FTInfo) *int64 { return &i.HashIndexingFailures }),
	"total_indexing_time":         nanFloatInfo(func(i *FTInfo) *float64 { return &i.TotalIndexingTime }),
	"indexing":                    intInfo(func(i *FTInfo) *int64 { return &i.Indexing }),
	"percent_indexed":             nanFloatInfo(func(i *FTInfo) *float64 { return &i.PercentIndexed }),
	"number_of_uses":              intInfo(func(i *FTInfo) *int64 { return &i.NumberOfUses }),
	"cleaning":                    intInfo(func(i *FTInfo) *int64 { return &i.Cleaning }),
	"gc_stats":                    nestedInfo(ftGCStatsFields, func(i *FTInfo) *FTGCStats { return &i.GCStats }),
	"cursor_stats":                nestedInfo(ftCursorStatsFields, func(i *FTInfo) *FTCursorStats { return &i.CursorStats }),
	"dialect_stats":               readDialectStats,
	"index errors":                nestedInfo(ftIndexErrorsFields, func(i *FTInfo) *FTIndexErrors { return &i.IndexErrors }),
	"field statistics":            readFieldStatistics,
}

type FTInfoCmd struct {
	baseCmd

	val FTInfo
}

var _ Cmder = (*FTInfoCmd)(nil)

func (cmd *FTInfoCmd) Val() FTInfo {
	if !cmd.Ready() {
		return FTInfo{}
	}
	return cmd.val
}

func (cmd *FTInfoCmd) Result() (FTInfo, error) {
	if err := cmd.Err(); err != nil {
		return FTInfo{}, err
	}
	return cmd.val, nil
}

func (cmd *FTInfoCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *FTInfoCmd) readReply(pv *proto.Value) error {
	return ftInfoFields.scan(&cmd.val, pv)
}

//------------------------------------------------------------------------------

type SpellCheckSuggestion struct {
	Score      float64
	Suggestion string
}

type SpellCheckResult struct {
	Term        string
	Suggestions []SpellCheckSuggestion
}

type FTSpellCheckCmd struct {
	baseCmd

	val []SpellCheckResult
}

var _ Cmder = (*FTSpellCheckCmd)(nil)

func (cmd *FTSpellCheckCmd) Val() []SpellCheckResult {
	if !cmd.Ready() {
		return nil
	}
	return cmd.val
}

func (cmd *FTSpellCheckCmd) Result() ([]SpellCheckResult, error) {
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.val, nil
}

func (cmd *FTSpellCheckCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

// readReply keeps the term order of RESP2 replies. RESP3 results are
// sorted by term.
func (cmd *FTSpellCheckCmd) readReply(pv *proto.Value) error {
	if pv.IsMap() {
		return pv.MapScan(func(key string, val *proto.Value) error {
			if key != "results" {
				return nil
			}
			return val.MapScan(func(term string, sugg *proto.Value) error {
				res := SpellCheckResult{Term: term}
				list, err := sugg.Array()
				if err != nil {
					return err
				}
				for _, s := range list {
					err := s.MapScan(func(word string, score *proto.Value) error {
						f, err := score.Float64()
						if err != nil {
							return err
						}
						res.Suggestions = append(res.Suggestions, SpellCheckSuggestion{Score: f, Suggestion: word})
						return nil
					})
					if err != nil {
						return err
					}
				}
				cmd.val = append(cmd.val, res)
				return nil
			})
		})
	}

	// RESP2: [["TERM", term, [[score, suggestion], ...]], ...]
	terms, err := pv.Array()
	if err != nil {
		return err
	}
	cmd.val = make([]SpellCheckResult, 0, len(terms))
	for _, t := range terms {
		parts, err := t.ArrayLen(3)
		if err != nil {
			return err
		}
		var res SpellCheckResult
		if res.Term, err = parts[1].Text(); err != nil {
			return err
		}
		list, err := parts[2].Array()
		if err != nil {
			return err
		}
		for _, s := range list {
			pair, err := s.ArrayLen(2)
			if err != nil {
				return err
			}
			var sugg SpellCheckSuggestion
			if sugg.Score, err = pair[0].Float64(); err != nil {
				return err
			}
			if sugg.Suggestion, err = pair[1].Text(); err != nil {
				return err
			}
			res.Suggestions = append(res.Suggestions, sugg)
		}
		cmd.val = append(cmd.val, res)
	}
	return nil
}

//------------------------------------------------------------------------------

// FTSynDumpResult lists the synonym groups a term belongs to.
type FTSynDumpResult struct {
	Term     string
	Synonyms []string
}

type FTSynDumpCmd struct {
	baseCmd

	val []FTSynDumpResult
}

var _ Cmder = (*FTSynDumpCmd)(nil)

func (cmd *FTSynDumpCmd) Val() []FTSynDumpResult {
	if !cmd.Ready() {
		return nil
	}
	return cmd.val
}

func (cmd *FTSynDumpCmd) Result() ([]FTSynDumpResult, error) {
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.val, nil
}

func (cmd *FTSynDumpCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *FTSynDumpCmd) readReply(pv *proto.Value) error {
	return pv.MapScan(func(term string, val *proto.Value) error {
		groups, err := val.SliceString()
		if err != nil {
			return err
		}
		cmd.val = append(cmd.val, FTSynDumpResult{Term: term, Synonyms: groups})
		return nil
	})
}

//------------------------------------------------------------------------------

// FTConfigCmd holds configuration options by name. Unset options are "".
type FTConfigCmd struct {
	baseCmd

	val map[string]string
}

var _ Cmder = (*FTConfigCmd)(nil)

func (cmd *FTConfigCmd) Val() map[string]string {
	if !cmd.Ready() {
		return nil
	}
	return cmd.val
}

func (cmd *FTConfigCmd) Result() (map[string]string, error) {
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.val, nil
}

func (cmd *FTConfigCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *FTConfigCmd) readReply(pv *proto.Value) error {
	cmd.val = make(map[string]string)
	if pv.IsMap() {
		return pv.MapScan(func(key string, val *proto.Value) error {
			s, err := val.Text()
			cmd.val[key] = s
			return err
		})
	}

	// RESP2: [[name, value], ...]
	arr, err := pv.Array()
	if err != nil {
		return err
	}
	for _, kv := range arr {
		pair, err := kv.ArrayLen(2)
		if err != nil {
			return err
		}
		key, err := pair[0].Text()
		if err != nil {
			return err
		}
		if cmd.val[key], err = pair[1].Text(); err != nil {
			return err
		}
	}
	return nil
}
