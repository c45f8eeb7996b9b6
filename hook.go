package stack

import (
	"context"
	"sync"
)

type (
	ProcessHook         func(ctx context.Context, cmd Cmder) error
	ProcessPipelineHook func(ctx context.Context, cmds []Cmder) error
)

// Hook wraps command processing. A hook must call next exactly once, unless
// it resolves the commands itself.
//
// Hooks run after the arguments were built: commands rejected by argument
// validation never reach them.
type Hook interface {
	ProcessHook(next ProcessHook) ProcessHook
	ProcessPipelineHook(next ProcessPipelineHook) ProcessPipelineHook
}

type hooks struct {
	process         ProcessHook
	processPipeline ProcessPipelineHook
}

type hooksMixin struct {
	mu sync.RWMutex

	slice   []Hook
	initial hooks
	current hooks
}

func (hs *hooksMixin) initHooks(h hooks) {
	hs.initial = h
	hs.chain()
}

// AddHook adds a hook. Hooks added later run closer to the driver.
func (hs *hooksMixin) AddHook(hook Hook) {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	hs.slice = append(hs.slice, hook)
	hs.chain()
}

func (hs *hooksMixin) chain() {
	hs.current = hs.initial

	for i := len(hs.slice) - 1; i >= 0; i-- {
		if wrapped := hs.slice[i].ProcessHook(hs.current.process); wrapped != nil {
			hs.current.process = wrapped
		}
		if wrapped := hs.slice[i].ProcessPipelineHook(hs.current.processPipeline); wrapped != nil {
			hs.current.processPipeline = wrapped
		}
	}
}

func (hs *hooksMixin) processHook(ctx context.Context, cmd Cmder) error {
	hs.mu.RLock()
	process := hs.current.process
	hs.mu.RUnlock()
	return process(ctx, cmd)
}

func (hs *hooksMixin) processPipelineHook(ctx context.Context, cmds []Cmder) error {
	hs.mu.RLock()
	process := hs.current.processPipeline
	hs.mu.RUnlock()
	return process(ctx, cmds)
}
