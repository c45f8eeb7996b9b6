package stack

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis-stack/internal/args"
	"github.com/redis/go-redis-stack/internal/proto"
)

const (
	graphQuery   = "GRAPH.QUERY"
	graphROQuery = "GRAPH.RO_QUERY"
	graphDelete  = "GRAPH.DELETE"
	graphList    = "GRAPH.LIST"
	graphExplain = "GRAPH.EXPLAIN"
)

// GraphQuery executes query on the graph stored at key.
func (c cmdable) GraphQuery(ctx context.Context, key, query string) *GraphCmd {
	return c.graphQuery(ctx, graphQuery, key, query)
}

// GraphROQuery executes a read-only query.
func (c cmdable) GraphROQuery(ctx context.Context, key, query string) *GraphCmd {
	return c.graphQuery(ctx, graphROQuery, key, query)
}

func (c cmdable) graphQuery(ctx context.Context, name, key, query string) *GraphCmd {
	cmd := &GraphCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:   name,
		Checks: []args.Check{args.Require(query != "", "query must not be empty")},
		Parts:  []args.Part{args.Pos(key, query)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// GraphDelete deletes the graph and returns the server's confirmation.
func (c cmdable) GraphDelete(ctx context.Context, key string) *StringCmd {
	cmd := &StringCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  graphDelete,
		Parts: []args.Part{args.Pos(key)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) GraphList(ctx context.Context) *StringSliceCmd {
	cmd := &StringSliceCmd{baseCmd: buildCmd(ctx, args.Schema{Name: graphList})}
	_ = c(ctx, cmd)
	return cmd
}

// GraphExplain returns the execution plan of query, one operation per line.
func (c cmdable) GraphExplain(ctx context.Context, key, query string) *StringSliceCmd {
	cmd := &StringSliceCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  graphExplain,
		Parts: []args.Part{args.Pos(key, query)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// ----------------------------------------------------------------------------

type GraphValue interface {
	IsNil() bool
	String() string
	Int() int
	Bool() bool
	Float64() float64
	Node() (*GraphNode, bool)
	Edge() (*GraphEdge, bool)
}

type (
	graphDataType int
	graphRowType  int
)

const (
	graphInteger graphDataType = iota + 1 // int (graph int)
	graphNil                              // nil (graph nil/null)
	graphString                           // string (graph string/boolean/double)
)

const (
	graphResultBasic graphRowType = iota + 1 // int/nil/string
	graphResultNode                          // node, id + labels + properties
	graphResultEdge                          // edge, id + type + src_node + dest_node + properties
)

// GraphResult is the reply of a graph query: an optional result set followed
// by the execution statistics.
type GraphResult struct {
	noResult bool
	text     []string
	field    []string
	rows     [][]*graphRow
}

// Message returns the execution statistics, e.g. "Nodes created: 1".
func (g *GraphResult) Message() []string {
	return g.text
}

// IsResult reports whether the query has a result set. A MATCH always has
// one, even with zero rows; a CREATE has none.
func (g *GraphResult) IsResult() bool {
	return !g.noResult
}

// Field returns the column names, nil when there is no result set.
func (g *GraphResult) Field() []string {
	return g.field
}

func (g *GraphResult) Len() int {
	return len(g.rows)
}

// Row returns the first row by column name, or ErrNoRows.
func (g *GraphResult) Row() (map[string]GraphValue, error) {
	if g.noResult || len(g.field) == 0 || len(g.rows) == 0 {
		return nil, ErrNoRows
	}
	return g.row(0), nil
}

// Rows returns every row by column name, or ErrNoRows.
func (g *GraphResult) Rows() ([]map[string]GraphValue, error) {
	if g.noResult || len(g.field) == 0 || len(g.rows) == 0 {
		return nil, ErrNoRows
	}
	rows := make([]map[string]GraphValue, 0, len(g.rows))
	for i := range g.rows {
		rows = append(rows, g.row(i))
	}
	return rows, nil
}

func (g *GraphResult) row(i int) map[string]GraphValue {
	row := make(map[string]GraphValue, len(g.field))
	for x, f := range g.field {
		if x < len(g.rows[i]) {
			row[f] = g.rows[i][x]
		}
	}
	return row
}

type graphRow struct {
	typ   graphRowType
	basic GraphData
	node  GraphNode
	edge  GraphEdge
}

func (g *graphRow) IsNil() bool              { return g.typ == graphResultBasic && g.basic.IsNil() }
func (g *graphRow) String() string           { return g.basic.String() }
func (g *graphRow) Int() int                 { return g.basic.Int() }
func (g *graphRow) Bool() bool               { return g.basic.Bool() }
func (g *graphRow) Float64() float64         { return g.basic.Float64() }
func (g *graphRow) Node() (*GraphNode, bool) { return &g.node, g.typ == graphResultNode }
func (g *graphRow) Edge() (*GraphEdge, bool) { return &g.edge, g.typ == graphResultEdge }

// GraphData is a scalar cell or property value.
type GraphData struct {
	typ        graphDataType
	integerVal int64
	stringVal  string
}

func (d GraphData) IsNil() bool {
	return d.typ == graphNil
}

func (d GraphData) String() string {
	switch d.typ {
	case graphInteger:
		return strconv.FormatInt(d.integerVal, 10)
	case graphString:
		return d.stringVal
	default:
		return ""
	}
}

func (d GraphData) Int() int {
	switch d.typ {
	case graphInteger:
		return int(d.integerVal)
	case graphString:
		n, _ := strconv.Atoi(d.stringVal)
		return n
	default:
		return 0
	}
}

func (d GraphData) Bool() bool {
	switch d.typ {
	case graphInteger:
		return d.integerVal != 0
	case graphString:
		return d.stringVal == "true"
	default:
		return false
	}
}

func (d GraphData) Float64() float64 {
	switch d.typ {
	case graphInteger:
		return float64(d.integerVal)
	case graphString:
		v, _ := strconv.ParseFloat(d.stringVal, 64)
		return v
	default:
		return 0
	}
}

type GraphNode struct {
	ID         int64
	Labels     []string
	Properties map[string]GraphData
}

type GraphEdge struct {
	ID         int64
	Typ        string
	SrcNode    int64
	DstNode    int64
	Properties map[string]GraphData
}

// ----------------------------------------------------------------------------

type GraphCmd struct {
	baseCmd

	val *GraphResult
}

var _ Cmder = (*GraphCmd)(nil)

func (cmd *GraphCmd) Val() *GraphResult {
	if !cmd.Ready() {
		return nil
	}
	return cmd.val
}

func (cmd *GraphCmd) Result() (*GraphResult, error) {
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.val, nil
}

func (cmd *GraphCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

// readReply decodes [statistics] or [header, rows, statistics].
func (cmd *GraphCmd) readReply(pv *proto.Value) (err error) {
	arr, err := pv.Array()
	if err != nil {
		return err
	}

	res := &GraphResult{}
	switch len(arr) {
	case 1:
		res.noResult = true
		if res.text, err = arr[0].SliceString(); err != nil {
			return err
		}
	case 3:
		if res.field, err = arr[0].SliceString(); err != nil {
			return err
		}
		if res.rows, err = readGraphRows(arr[1], len(res.field)); err != nil {
			return err
		}
		if res.text, err = arr[2].SliceString(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("got %d elements in the graph reply, wanted 1 or 3", len(arr))
	}

	cmd.val = res
	return nil
}

func readGraphRows(pv *proto.Value, columns int) ([][]*graphRow, error) {
	rows, err := pv.Array()
	if err != nil {
		return nil, err
	}
	out := make([][]*graphRow, 0, len(rows))
	for _, r := range rows {
		cells, err := r.Array()
		if err != nil {
			return nil, err
		}
		if len(cells) != columns {
			return nil, fmt.Errorf("got %d cells in a row, wanted %d", len(cells), columns)
		}
		row := make([]*graphRow, 0, len(cells))
		for _, c := range cells {
			cell, err := readGraphCell(c)
			if err != nil {
				return nil, err
			}
			row = append(row, cell)
		}
		out = append(out, row)
	}
	return out, nil
}

func readGraphCell(pv *proto.Value) (*graphRow, error) {
	if !pv.IsSlice() {
		d, err := readGraphData(pv)
		if err != nil {
			return nil, err
		}
		return &graphRow{typ: graphResultBasic, basic: d}, nil
	}

	// Entities are lists of [name, value] pairs; nodes carry "labels" and
	// edges carry "type".
	fields := make(map[string]*proto.Value)
	arr, _ := pv.Array()
	for _, f := range arr {
		kv, err := f.ArrayLen(2)
		if err != nil {
			return nil, err
		}
		name, err := kv[0].Text()
		if err != nil {
			return nil, err
		}
		fields[name] = kv[1]
	}

	cell := &graphRow{}
	switch {
	case hasGraphFields(fields, "id", "labels"):
		cell.typ = graphResultNode
		return cell, readGraphNode(&cell.node, fields)
	case hasGraphFields(fields, "id", "type", "src_node", "dest_node"):
		cell.typ = graphResultEdge
		return cell, readGraphEdge(&cell.edge, fields)
	}
	return nil, fmt.Errorf("graph cell is neither a node nor an edge")
}

func hasGraphFields(fields map[string]*proto.Value, names ...string) bool {
	for _, name := range names {
		if _, ok := fields[name]; !ok {
			return false
		}
	}
	return true
}

func readGraphNode(n *GraphNode, fields map[string]*proto.Value) (err error) {
	if n.ID, err = fields["id"].Int64(); err != nil {
		return err
	}
	if n.Labels, err = fields["labels"].SliceString(); err != nil {
		return err
	}
	n.Properties, err = readGraphProperties(fields["properties"])
	return err
}

func readGraphEdge(e *GraphEdge, fields map[string]*proto.Value) (err error) {
	if e.ID, err = fields["id"].Int64(); err != nil {
		return err
	}
	if e.Typ, err = fields["type"].Text(); err != nil {
		return err
	}
	if e.SrcNode, err = fields["src_node"].Int64(); err != nil {
		return err
	}
	if e.DstNode, err = fields["dest_node"].Int64(); err != nil {
		return err
	}
	e.Properties, err = readGraphProperties(fields["properties"])
	return err
}

func readGraphProperties(pv *proto.Value) (map[string]GraphData, error) {
	props := make(map[string]GraphData)
	if pv.IsNil() {
		return props, nil
	}
	arr, err := pv.Array()
	if err != nil {
		return nil, err
	}
	for _, p := range arr {
		kv, err := p.ArrayLen(2)
		if err != nil {
			return nil, err
		}
		name, err := kv[0].Text()
		if err != nil {
			return nil, err
		}
		if props[name], err = readGraphData(kv[1]); err != nil {
			return nil, err
		}
	}
	return props, nil
}

func readGraphData(pv *proto.Value) (GraphData, error) {
	if pv.IsNil() {
		return GraphData{typ: graphNil}, nil
	}
	if pv.IsInt() {
		return GraphData{typ: graphInteger, integerVal: pv.Integer}, nil
	}
	s, err := pv.String()
	if err != nil {
		return GraphData{}, err
	}
	return GraphData{typ: graphString, stringVal: s}, nil
}
