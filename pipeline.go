package stack

import "context"

type pipelineExecer func(ctx context.Context, cmds []Cmder) error

// Pipeline queues commands and submits them as one batch on Exec. The
// returned command handles are resolved by Exec, in the order they were
// queued; before that their Err and Result report ErrNotReady.
//
// A pipeline is executed at most once. Queuing after Exec resolves the
// command with ErrPipelineFlushed.
//
// Pipeline is not safe for concurrent use.
type Pipeline struct {
	cmdable

	exec    pipelineExecer
	cmds    []Cmder
	flushed bool
}

// Process queues cmd. Commands whose arguments were rejected are not
// queued.
func (p *Pipeline) Process(ctx context.Context, cmd Cmder) error {
	if p.flushed {
		cmd.resolve(ErrPipelineFlushed)
		return ErrPipelineFlushed
	}
	if cmd.Ready() {
		return cmd.Err()
	}
	p.cmds = append(p.cmds, cmd)
	return nil
}

// Len returns the number of queued commands.
func (p *Pipeline) Len() int {
	return len(p.cmds)
}

// Exec submits all queued commands and resolves them. It returns the
// commands in queue order and the first error, if any.
func (p *Pipeline) Exec(ctx context.Context) ([]Cmder, error) {
	if p.flushed {
		return nil, ErrPipelineFlushed
	}
	p.flushed = true

	cmds := p.cmds
	p.cmds = nil
	if len(cmds) == 0 {
		return cmds, nil
	}

	if err := p.exec(ctx, cmds); err != nil {
		for _, cmd := range cmds {
			cmd.resolve(err)
		}
		return cmds, err
	}
	return cmds, cmdsFirstErr(cmds)
}
