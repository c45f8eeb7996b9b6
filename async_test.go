package stack_test

import (
	"context"
	"errors"
	"time"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"

	stack "github.com/redis/go-redis-stack"
)

// blockingDriver holds every command until release is closed.
type blockingDriver struct {
	*scriptDriver
	release chan struct{}
}

func (d *blockingDriver) Do(ctx context.Context, args ...interface{}) (interface{}, error) {
	<-d.release
	return d.scriptDriver.Do(ctx, args...)
}

var _ = Describe("AsyncClient", func() {
	var client *stack.Client
	var driver *blockingDriver

	BeforeEach(func() {
		driver = &blockingDriver{scriptDriver: newScriptDriver(), release: make(chan struct{})}
		client = stack.NewClient(&stack.Options{Driver: driver})
	})

	It("should return before the reply arrives", func() {
		driver.Reply(int64(1))

		cmd := client.Async().BFAdd(ctx, "bf", "a")
		Expect(cmd.Ready()).To(BeFalse())
		Expect(cmd.Err()).To(Equal(stack.ErrNotReady))

		close(driver.release)
		Expect(cmd.Wait(ctx)).To(Succeed())
		Expect(cmd.Val()).To(BeTrue())
		Expect(driver.LastArgs()).To(Equal([]interface{}{"BF.ADD", "bf", "a"}))
	})

	It("should stop waiting when the context is done", func() {
		driver.Reply(int64(1))
		cmd := client.Async().TSAdd(ctx, "ts", stack.TSAutoTimestamp, 42)

		waitCtx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()
		Expect(cmd.Wait(waitCtx)).To(Equal(context.DeadlineExceeded))
		Expect(cmd.Ready()).To(BeFalse())

		close(driver.release)
		Expect(cmd.Wait(ctx)).To(Succeed())
		Expect(cmd.Val()).To(Equal(int64(1)))
	})

	It("should return rejected commands resolved", func() {
		cmd := client.Async().BFMAdd(ctx, "bf")
		Expect(cmd.Ready()).To(BeTrue())
		Expect(errors.Is(cmd.Wait(ctx), stack.ErrInvalidArgument)).To(BeTrue())
		close(driver.release)
		Expect(driver.Calls()).To(BeEmpty())
	})

	It("should pass through server errors", func() {
		driver.Reply(redisError("ERR item exists"))
		close(driver.release)

		cmd := client.Async().CFAddNX(ctx, "cf", "a")
		err := cmd.Wait(ctx)
		Expect(err).To(MatchError("ERR item exists"))
		Expect(stack.HasErrorPrefix(err, "item exists")).To(BeTrue())
	})
})
