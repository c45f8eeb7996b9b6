package stack

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/redis/go-redis-stack/internal"
)

// Options configures a Client.
type Options struct {
	// Driver submits commands to the server. Required.
	Driver Driver
}

// cmdable is the function every facade method submits its command through.
// The Client processes the command right away, the AsyncClient processes it
// in the background and the Pipeline queues it.
type cmdable func(ctx context.Context, cmd Cmder) error

// Client exposes the module commands. Every method builds one command,
// submits it once and returns the resolved command handle. It is safe for
// concurrent use.
type Client struct {
	cmdable
	hooksMixin

	opt *Options
}

// NewClient returns a client that submits commands through opt.Driver.
func NewClient(opt *Options) *Client {
	if opt == nil || opt.Driver == nil {
		panic("redis-stack: Options.Driver is required")
	}

	c := &Client{opt: opt}
	c.initHooks(hooks{
		process:         c.process,
		processPipeline: c.processPipeline,
	})
	c.cmdable = c.Process
	return c
}

// NewClientFromRedis returns a client backed by a go-redis client.
func NewClientFromRedis(rdb redis.UniversalClient) *Client {
	return NewClient(&Options{Driver: NewGoRedisDriver(rdb)})
}

func (c *Client) Options() *Options {
	return c.opt
}

// Process submits an already built command and resolves it. Commands that
// are resolved already, e.g. because their arguments were rejected, are not
// submitted. An error returned by a hook resolves the command if the hook
// did not.
func (c *Client) Process(ctx context.Context, cmd Cmder) error {
	if cmd.Ready() {
		return cmd.Err()
	}
	err := c.processHook(ctx, cmd)
	if err != nil {
		cmd.resolve(err)
	}
	return err
}

func (c *Client) process(ctx context.Context, cmd Cmder) error {
	reply, err := c.opt.Driver.Do(ctx, cmd.Args()...)
	return finishCmd(cmd, reply, err)
}

func (c *Client) processPipeline(ctx context.Context, cmds []Cmder) error {
	batch := make([][]interface{}, len(cmds))
	for i, cmd := range cmds {
		batch[i] = cmd.Args()
	}

	replies, err := c.opt.Driver.DoBatch(ctx, batch)
	if err == nil && len(replies) != len(cmds) {
		err = &DecodeError{
			Cmd: "pipeline",
			Err: fmt.Errorf("got %d replies, wanted %d", len(replies), len(cmds)),
		}
	}
	if err != nil {
		for _, cmd := range cmds {
			cmd.resolve(err)
		}
		return err
	}

	for i, cmd := range cmds {
		_ = finishCmd(cmd, replies[i].Val, replies[i].Err)
	}
	internal.Debugf(ctx, "pipeline: resolved %d commands", len(cmds))
	return nil
}

// Async returns a client whose methods return immediately. Each command is
// submitted on its own goroutine; use Cmder.Wait to get the outcome.
func (c *Client) Async() *AsyncClient {
	a := &AsyncClient{client: c}
	a.cmdable = a.process
	return a
}

// Pipeline returns a new pipeline that queues commands until Exec.
func (c *Client) Pipeline() *Pipeline {
	pipe := &Pipeline{exec: c.processPipelineHook}
	pipe.cmdable = pipe.Process
	return pipe
}

// Pipelined queues the commands issued by fn and executes them.
func (c *Client) Pipelined(ctx context.Context, fn func(*Pipeline) error) ([]Cmder, error) {
	pipe := c.Pipeline()
	if err := fn(pipe); err != nil {
		return nil, err
	}
	return pipe.Exec(ctx)
}

// SetLogger replaces the logger of the package.
func SetLogger(logger internal.Logging) {
	internal.Logger = logger
}
