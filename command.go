package stack

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis-stack/internal"
	"github.com/redis/go-redis-stack/internal/args"
	"github.com/redis/go-redis-stack/internal/proto"
	"github.com/redis/go-redis-stack/internal/util"
)

// Cmder is a command handle. It is created by a Client, an AsyncClient or a
// Pipeline and resolved exactly once, either with a decoded reply or with an
// error.
type Cmder interface {
	Name() string
	FullName() string
	Args() []interface{}
	String() string
	Err() error

	// Ready reports whether the command has been resolved.
	Ready() bool
	// Wait blocks until the command is resolved or ctx is done.
	Wait(ctx context.Context) error

	readReply(pv *proto.Value) error
	resolve(err error)
}

func cmdsFirstErr(cmds []Cmder) error {
	for _, cmd := range cmds {
		if err := cmd.Err(); err != nil {
			return err
		}
	}
	return nil
}

// finishCmd decodes a raw driver reply into cmd and resolves it. Errors
// reported by the driver and error replies are passed through unchanged;
// replies that cannot be decoded produce a DecodeError.
func finishCmd(cmd Cmder, reply interface{}, err error) error {
	if err != nil {
		cmd.resolve(err)
		return err
	}

	pv := proto.FromInterface(reply)
	if err := pv.Err(); err != nil {
		cmd.resolve(err)
		return err
	}

	if err := cmd.readReply(pv); err != nil {
		if !isRedisError(err) {
			err = &DecodeError{Cmd: cmd.FullName(), Err: err}
		}
		cmd.resolve(err)
		return err
	}

	cmd.resolve(nil)
	return nil
}

func cmdString(cmd Cmder, val interface{}) string {
	b := make([]byte, 0, 64)

	for i, arg := range cmd.Args() {
		if i > 0 {
			b = append(b, ' ')
		}
		b = internal.AppendArg(b, arg)
	}

	if !cmd.Ready() {
		return string(b)
	}
	if err := cmd.Err(); err != nil {
		b = append(b, ": "...)
		b = append(b, err.Error()...)
	} else if val != nil {
		b = append(b, ": "...)
		b = internal.AppendArg(b, val)
	}

	return string(b)
}

//------------------------------------------------------------------------------

type baseCmd struct {
	ctx  context.Context
	args []interface{}
	err  error

	done chan struct{}
}

func newBaseCmd(ctx context.Context, args []interface{}) baseCmd {
	return baseCmd{
		ctx:  ctx,
		args: args,
		done: make(chan struct{}),
	}
}

// buildCmd builds the arguments of s. When the schema is rejected the
// command is resolved right away with the argument error and carries only
// its name tokens.
func buildCmd(ctx context.Context, s args.Schema) baseCmd {
	a, err := s.Build()
	if err != nil {
		cmd := newBaseCmd(ctx, args.Strings(strings.Fields(s.Name)))
		cmd.err = err
		close(cmd.done)
		return cmd
	}
	return newBaseCmd(ctx, a)
}

// failedCmd is a command that was rejected before its arguments were built.
func failedCmd(ctx context.Context, name string, err error) baseCmd {
	cmd := newBaseCmd(ctx, args.Strings(strings.Fields(name)))
	cmd.err = err
	close(cmd.done)
	return cmd
}

func (cmd *baseCmd) Name() string {
	if len(cmd.args) == 0 {
		return ""
	}
	// Cmd name must be lower cased.
	return util.ToLower(cmd.stringArg(0))
}

func (cmd *baseCmd) FullName() string {
	switch name := cmd.Name(); name {
	case "tfunction", "client", "ft.config", "ft.cursor", "json.debug":
		if len(cmd.args) == 1 {
			return name
		}
		if s2, ok := cmd.args[1].(string); ok {
			return name + " " + util.ToLower(s2)
		}
		return name
	default:
		return name
	}
}

func (cmd *baseCmd) Args() []interface{} {
	return cmd.args
}

func (cmd *baseCmd) stringArg(pos int) string {
	if pos < 0 || pos >= len(cmd.args) {
		return ""
	}
	s, _ := cmd.args[pos].(string)
	return s
}

func (cmd *baseCmd) Ready() bool {
	select {
	case <-cmd.done:
		return true
	default:
		return false
	}
}

func (cmd *baseCmd) Wait(ctx context.Context) error {
	select {
	case <-cmd.done:
		return cmd.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns ErrNotReady until the command is resolved.
func (cmd *baseCmd) Err() error {
	if !cmd.Ready() {
		return ErrNotReady
	}
	return cmd.err
}

func (cmd *baseCmd) resolve(err error) {
	if cmd.Ready() {
		return
	}
	cmd.err = err
	close(cmd.done)
}

//------------------------------------------------------------------------------

// Cmd holds a reply whose shape depends on the invoked function, e.g.
// TFCALL.
type Cmd struct {
	baseCmd

	val *proto.Value
}

var _ Cmder = (*Cmd)(nil)

func NewCmd(ctx context.Context, args ...interface{}) *Cmd {
	return &Cmd{
		baseCmd: newBaseCmd(ctx, args),
	}
}

func (cmd *Cmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *Cmd) Val() interface{} {
	if !cmd.Ready() || cmd.val == nil {
		return nil
	}
	return cmd.val.Interface()
}

func (cmd *Cmd) Result() (interface{}, error) {
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.val.Interface(), nil
}

func (cmd *Cmd) Text() (string, error) {
	if err := cmd.Err(); err != nil {
		return "", err
	}
	return cmd.val.Text()
}

func (cmd *Cmd) Int64() (int64, error) {
	if err := cmd.Err(); err != nil {
		return 0, err
	}
	return cmd.val.Int64()
}

func (cmd *Cmd) Float64() (float64, error) {
	if err := cmd.Err(); err != nil {
		return 0, err
	}
	return cmd.val.Float64()
}

func (cmd *Cmd) Bool() (bool, error) {
	if err := cmd.Err(); err != nil {
		return false, err
	}
	return cmd.val.Bool()
}

func (cmd *Cmd) Slice() ([]interface{}, error) {
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	if _, err := cmd.val.Array(); err != nil {
		return nil, err
	}
	return cmd.val.Interface().([]interface{}), nil
}

func (cmd *Cmd) readReply(pv *proto.Value) error {
	cmd.val = pv
	return nil
}

//------------------------------------------------------------------------------

type SliceCmd struct {
	baseCmd

	val []interface{}
}

var _ Cmder = (*SliceCmd)(nil)

func NewSliceCmd(ctx context.Context, args ...interface{}) *SliceCmd {
	return &SliceCmd{
		baseCmd: newBaseCmd(ctx, args),
	}
}

func (cmd *SliceCmd) Val() []interface{} {
	if !cmd.Ready() {
		return nil
	}
	return cmd.val
}

func (cmd *SliceCmd) Result() ([]interface{}, error) {
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.val, nil
}

func (cmd *SliceCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *SliceCmd) readReply(pv *proto.Value) error {
	arr, err := pv.Array()
	if err != nil {
		return err
	}
	cmd.val = make([]interface{}, len(arr))
	for i, elem := range arr {
		cmd.val[i] = elem.Interface()
	}
	return nil
}

//------------------------------------------------------------------------------

// StatusCmd decodes an "OK" reply to true and a null reply to false. A
// strict StatusCmd rejects any other string; a tolerant one decodes it to
// false.
type StatusCmd struct {
	baseCmd

	val      bool
	tolerant bool
}

var _ Cmder = (*StatusCmd)(nil)

func NewStatusCmd(ctx context.Context, args ...interface{}) *StatusCmd {
	return &StatusCmd{
		baseCmd: newBaseCmd(ctx, args),
	}
}

func (cmd *StatusCmd) Val() bool {
	if !cmd.Ready() {
		return false
	}
	return cmd.val
}

func (cmd *StatusCmd) Result() (bool, error) {
	if err := cmd.Err(); err != nil {
		return false, err
	}
	return cmd.val, nil
}

func (cmd *StatusCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *StatusCmd) readReply(pv *proto.Value) (err error) {
	cmd.val, err = pv.Status()
	if err != nil {
		return err
	}
	if !cmd.val && !cmd.tolerant && !pv.IsNil() {
		s, _ := pv.String()
		return fmt.Errorf("got %q, wanted OK", s)
	}
	return nil
}

//------------------------------------------------------------------------------

type BoolCmd struct {
	baseCmd

	val bool
}

var _ Cmder = (*BoolCmd)(nil)

func NewBoolCmd(ctx context.Context, args ...interface{}) *BoolCmd {
	return &BoolCmd{
		baseCmd: newBaseCmd(ctx, args),
	}
}

func (cmd *BoolCmd) Val() bool {
	if !cmd.Ready() {
		return false
	}
	return cmd.val
}

func (cmd *BoolCmd) Result() (bool, error) {
	if err := cmd.Err(); err != nil {
		return false, err
	}
	return cmd.val, nil
}

func (cmd *BoolCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *BoolCmd) readReply(pv *proto.Value) (err error) {
	if pv.IsNil() {
		cmd.val = false
		return nil
	}
	cmd.val, err = pv.Bool()
	return err
}

//------------------------------------------------------------------------------

// BoolSliceCmd holds a membership reply: "1" is true, anything else is
// false.
type BoolSliceCmd struct {
	baseCmd

	val []bool
}

var _ Cmder = (*BoolSliceCmd)(nil)

func NewBoolSliceCmd(ctx context.Context, args ...interface{}) *BoolSliceCmd {
	return &BoolSliceCmd{
		baseCmd: newBaseCmd(ctx, args),
	}
}

func (cmd *BoolSliceCmd) Val() []bool {
	if !cmd.Ready() {
		return nil
	}
	return cmd.val
}

func (cmd *BoolSliceCmd) Result() ([]bool, error) {
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.val, nil
}

func (cmd *BoolSliceCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *BoolSliceCmd) readReply(pv *proto.Value) (err error) {
	cmd.val, err = pv.SliceMember()
	return err
}

//------------------------------------------------------------------------------

type IntCmd struct {
	baseCmd

	val int64
}

var _ Cmder = (*IntCmd)(nil)

func NewIntCmd(ctx context.Context, args ...interface{}) *IntCmd {
	return &IntCmd{
		baseCmd: newBaseCmd(ctx, args),
	}
}

func (cmd *IntCmd) Val() int64 {
	if !cmd.Ready() {
		return 0
	}
	return cmd.val
}

func (cmd *IntCmd) Result() (int64, error) {
	if err := cmd.Err(); err != nil {
		return 0, err
	}
	return cmd.val, nil
}

func (cmd *IntCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *IntCmd) readReply(pv *proto.Value) (err error) {
	cmd.val, err = pv.Int64()
	return err
}

//------------------------------------------------------------------------------

type IntSliceCmd struct {
	baseCmd

	val []int64
}

var _ Cmder = (*IntSliceCmd)(nil)

func NewIntSliceCmd(ctx context.Context, args ...interface{}) *IntSliceCmd {
	return &IntSliceCmd{
		baseCmd: newBaseCmd(ctx, args),
	}
}

func (cmd *IntSliceCmd) Val() []int64 {
	if !cmd.Ready() {
		return nil
	}
	return cmd.val
}

func (cmd *IntSliceCmd) Result() ([]int64, error) {
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.val, nil
}

func (cmd *IntSliceCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *IntSliceCmd) readReply(pv *proto.Value) (err error) {
	cmd.val, err = pv.SliceInt64()
	return err
}

//------------------------------------------------------------------------------

// IntPointerSliceCmd holds one integer per matched path. A nil element means
// the path matched a value of the wrong type.
type IntPointerSliceCmd struct {
	baseCmd

	val []*int64
}

var _ Cmder = (*IntPointerSliceCmd)(nil)

func NewIntPointerSliceCmd(ctx context.Context, args ...interface{}) *IntPointerSliceCmd {
	return &IntPointerSliceCmd{
		baseCmd: newBaseCmd(ctx, args),
	}
}

func (cmd *IntPointerSliceCmd) Val() []*int64 {
	if !cmd.Ready() {
		return nil
	}
	return cmd.val
}

func (cmd *IntPointerSliceCmd) Result() ([]*int64, error) {
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.val, nil
}

func (cmd *IntPointerSliceCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *IntPointerSliceCmd) readReply(pv *proto.Value) error {
	// Legacy paths reply with a single integer.
	if !pv.IsSlice() {
		if pv.IsNil() {
			cmd.val = []*int64{nil}
			return nil
		}
		n, err := pv.Int64()
		if err != nil {
			return err
		}
		cmd.val = []*int64{&n}
		return nil
	}

	cmd.val = make([]*int64, len(pv.Slice))
	for i, elem := range pv.Slice {
		if elem.IsNil() {
			continue
		}
		n, err := elem.Int64()
		if err != nil {
			return err
		}
		cmd.val[i] = &n
	}
	return nil
}

//------------------------------------------------------------------------------

// FloatCmd holds a double reply. "-nan" decodes to 0.
type FloatCmd struct {
	baseCmd

	val float64
}

var _ Cmder = (*FloatCmd)(nil)

func NewFloatCmd(ctx context.Context, args ...interface{}) *FloatCmd {
	return &FloatCmd{
		baseCmd: newBaseCmd(ctx, args),
	}
}

func (cmd *FloatCmd) Val() float64 {
	if !cmd.Ready() {
		return 0
	}
	return cmd.val
}

func (cmd *FloatCmd) Result() (float64, error) {
	if err := cmd.Err(); err != nil {
		return 0, err
	}
	return cmd.val, nil
}

func (cmd *FloatCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *FloatCmd) readReply(pv *proto.Value) (err error) {
	cmd.val, err = pv.Float64()
	return err
}

//------------------------------------------------------------------------------

type FloatSliceCmd struct {
	baseCmd

	val []float64
}

var _ Cmder = (*FloatSliceCmd)(nil)

func NewFloatSliceCmd(ctx context.Context, args ...interface{}) *FloatSliceCmd {
	return &FloatSliceCmd{
		baseCmd: newBaseCmd(ctx, args),
	}
}

func (cmd *FloatSliceCmd) Val() []float64 {
	if !cmd.Ready() {
		return nil
	}
	return cmd.val
}

func (cmd *FloatSliceCmd) Result() ([]float64, error) {
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.val, nil
}

func (cmd *FloatSliceCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *FloatSliceCmd) readReply(pv *proto.Value) (err error) {
	// A single double is accepted for commands that take one value.
	if !pv.IsSlice() {
		f, err := pv.Float64()
		if err != nil {
			return err
		}
		cmd.val = []float64{f}
		return nil
	}
	cmd.val, err = pv.SliceFloat64()
	return err
}

//------------------------------------------------------------------------------

// StringCmd holds a bulk string reply. A null reply is "".
type StringCmd struct {
	baseCmd

	val string
}

var _ Cmder = (*StringCmd)(nil)

func NewStringCmd(ctx context.Context, args ...interface{}) *StringCmd {
	return &StringCmd{
		baseCmd: newBaseCmd(ctx, args),
	}
}

func (cmd *StringCmd) Val() string {
	if !cmd.Ready() {
		return ""
	}
	return cmd.val
}

func (cmd *StringCmd) Result() (string, error) {
	if err := cmd.Err(); err != nil {
		return "", err
	}
	return cmd.val, nil
}

func (cmd *StringCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *StringCmd) readReply(pv *proto.Value) (err error) {
	cmd.val, err = pv.Text()
	return err
}

//------------------------------------------------------------------------------

// StringSliceCmd holds an array of strings. Null elements are "".
type StringSliceCmd struct {
	baseCmd

	val []string

	// scalar accepts a single string reply as a one element slice. JSON
	// commands with a legacy path reply that way.
	scalar bool
}

var _ Cmder = (*StringSliceCmd)(nil)

func NewStringSliceCmd(ctx context.Context, args ...interface{}) *StringSliceCmd {
	return &StringSliceCmd{
		baseCmd: newBaseCmd(ctx, args),
	}
}

func (cmd *StringSliceCmd) Val() []string {
	if !cmd.Ready() {
		return nil
	}
	return cmd.val
}

func (cmd *StringSliceCmd) Result() ([]string, error) {
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.val, nil
}

func (cmd *StringSliceCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *StringSliceCmd) readReply(pv *proto.Value) (err error) {
	if cmd.scalar && !pv.IsSlice() {
		s, err := pv.Text()
		if err != nil {
			return err
		}
		cmd.val = []string{s}
		return nil
	}
	cmd.val, err = pv.SliceString()
	return err
}

//------------------------------------------------------------------------------

// ScanDump is one chunk of a SCANDUMP iteration. Iterator 0 ends it.
type ScanDump struct {
	Iter int64
	Data string
}

type ScanDumpCmd struct {
	baseCmd

	val ScanDump
}

var _ Cmder = (*ScanDumpCmd)(nil)

func NewScanDumpCmd(ctx context.Context, args ...interface{}) *ScanDumpCmd {
	return &ScanDumpCmd{
		baseCmd: newBaseCmd(ctx, args),
	}
}

func (cmd *ScanDumpCmd) Val() ScanDump {
	if !cmd.Ready() {
		return ScanDump{}
	}
	return cmd.val
}

func (cmd *ScanDumpCmd) Result() (ScanDump, error) {
	if err := cmd.Err(); err != nil {
		return ScanDump{}, err
	}
	return cmd.val, nil
}

func (cmd *ScanDumpCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *ScanDumpCmd) readReply(pv *proto.Value) error {
	arr, err := pv.ArrayLen(2)
	if err != nil {
		return err
	}
	if cmd.val.Iter, err = arr[0].Int64(); err != nil {
		return err
	}
	cmd.val.Data, err = arr[1].Text()
	return err
}
