package stack

import (
	"context"
	"strings"

	"github.com/redis/go-redis-stack/internal/args"
	"github.com/redis/go-redis-stack/internal/proto"
)

const (
	tfunctionLoad   = "TFUNCTION LOAD"
	tfunctionDelete = "TFUNCTION DELETE"
	tfunctionList   = "TFUNCTION LIST"
	tfCall          = "TFCALL"
	tfCallAsync     = "TFCALLASYNC"

	// Highest verbosity accepted by TFUNCTION LIST ("vvv").
	tfMaxVerbose = 3
)

type TFunctionLoadOptions struct {
	Replace bool
	Config  string
}

type TFunctionListOptions struct {
	WithCode bool
	Verbose  int
	Library  string
}

type TFCallOptions struct {
	Keys      []string
	Arguments []interface{}
}

// TFunctionLoad loads the JavaScript library code.
func (c cmdable) TFunctionLoad(ctx context.Context, code string) *StatusCmd {
	return c.TFunctionLoadArgs(ctx, code, nil)
}

func (c cmdable) TFunctionLoadArgs(ctx context.Context, code string, options *TFunctionLoadOptions) *StatusCmd {
	if options == nil {
		options = &TFunctionLoadOptions{}
	}
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: tfunctionLoad,
		Parts: []args.Part{
			args.Flag(kwReplace, options.Replace),
			args.Opt("CONFIG", options.Config != "", options.Config),
			args.Pos(code),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) TFunctionDelete(ctx context.Context, library string) *StatusCmd {
	cmd := &StatusCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name:  tfunctionDelete,
		Parts: []args.Part{args.Pos(library)},
	})}
	_ = c(ctx, cmd)
	return cmd
}

func (c cmdable) TFunctionList(ctx context.Context) *TFunctionListCmd {
	return c.TFunctionListArgs(ctx, nil)
}

// TFunctionListArgs lists the loaded libraries. Verbose repeats the "v"
// token up to three times.
func (c cmdable) TFunctionListArgs(ctx context.Context, options *TFunctionListOptions) *TFunctionListCmd {
	if options == nil {
		options = &TFunctionListOptions{}
	}
	cmd := &TFunctionListCmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: tfunctionList,
		Checks: []args.Check{
			args.Require(options.Verbose >= 0 && options.Verbose <= tfMaxVerbose, "verbosity must be between 0 and 3"),
		},
		Parts: []args.Part{
			args.Flag("WITHCODE", options.WithCode),
			args.Opt("", options.Verbose > 0, strings.Repeat("v", options.Verbose)),
			args.Opt("LIBRARY", options.Library != "", options.Library),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

// TFCall invokes library.function without keys or arguments.
func (c cmdable) TFCall(ctx context.Context, library, function string) *Cmd {
	return c.tfCall(ctx, tfCall, library, function, nil)
}

// TFCallArgs invokes library.function. The key count is taken from
// options.Keys.
func (c cmdable) TFCallArgs(ctx context.Context, library, function string, options *TFCallOptions) *Cmd {
	return c.tfCall(ctx, tfCall, library, function, options)
}

func (c cmdable) TFCallAsync(ctx context.Context, library, function string) *Cmd {
	return c.tfCall(ctx, tfCallAsync, library, function, nil)
}

func (c cmdable) TFCallAsyncArgs(ctx context.Context, library, function string, options *TFCallOptions) *Cmd {
	return c.tfCall(ctx, tfCallAsync, library, function, options)
}

func (c cmdable) tfCall(ctx context.Context, name, library, function string, options *TFCallOptions) *Cmd {
	if options == nil {
		options = &TFCallOptions{}
	}
	cmd := &Cmd{baseCmd: buildCmd(ctx, args.Schema{
		Name: name,
		Checks: []args.Check{
			args.Require(library != "" && function != "", "library and function names are required"),
		},
		Parts: []args.Part{
			args.Pos(library+"."+function, len(options.Keys)),
			args.Pos(args.Strings(options.Keys)...),
			args.Pos(options.Arguments...),
		},
	})}
	_ = c(ctx, cmd)
	return cmd
}

//------------------------------------------------------------------------------

// TFunctionListCmd holds one map per library. Nested arrays and maps are
// kept as []interface{} and map[string]interface{}.
type TFunctionListCmd struct {
	baseCmd

	val []map[string]interface{}
}

var _ Cmder = (*TFunctionListCmd)(nil)

func (cmd *TFunctionListCmd) Val() []map[string]interface{} {
	if !cmd.Ready() {
		return nil
	}
	return cmd.val
}

func (cmd *TFunctionListCmd) Result() ([]map[string]interface{}, error) {
	if err := cmd.Err(); err != nil {
		return nil, err
	}
	return cmd.val, nil
}

func (cmd *TFunctionListCmd) String() string {
	return cmdString(cmd, cmd.Val())
}

func (cmd *TFunctionListCmd) readReply(pv *proto.Value) error {
	libs, err := pv.Array()
	if err != nil {
		return err
	}
	cmd.val = make([]map[string]interface{}, 0, len(libs))
	for _, lib := range libs {
		m, err := readRow(lib)
		if err != nil {
			return err
		}
		cmd.val = append(cmd.val, m)
	}
	return nil
}
