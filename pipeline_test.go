package stack_test

import (
	"errors"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"

	stack "github.com/redis/go-redis-stack"
)

var _ = Describe("Pipeline", func() {
	var client *stack.Client
	var driver *scriptDriver

	BeforeEach(func() {
		client, driver = newTestClient()
	})

	It("should resolve commands in queue order", func() {
		driver.Reply(int64(1), []interface{}{int64(1), int64(0)}, "OK")

		pipe := client.Pipeline()
		add := pipe.BFAdd(ctx, "bf", "a")
		exists := pipe.BFMExists(ctx, "bf", "a", "b")
		reserve := pipe.CFReserve(ctx, "cf", 1000)
		Expect(pipe.Len()).To(Equal(3))

		Expect(add.Err()).To(Equal(stack.ErrNotReady))
		Expect(add.Ready()).To(BeFalse())
		Expect(driver.Calls()).To(BeEmpty())

		cmds, err := pipe.Exec(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(cmds).To(HaveLen(3))
		Expect(cmds[0]).To(BeIdenticalTo(add))

		Expect(add.Val()).To(BeTrue())
		Expect(exists.Val()).To(Equal([]bool{true, false}))
		Expect(reserve.Val()).To(BeTrue())

		Expect(driver.batches).To(Equal(1))
		Expect(driver.Calls()).To(Equal([][]interface{}{
			{"BF.ADD", "bf", "a"},
			{"BF.MEXISTS", "bf", "a", "b"},
			{"CF.RESERVE", "cf", int64(1000)},
		}))
	})

	It("should return the first command error", func() {
		driver.Reply([]interface{}{int64(1)}, redisError("ERR not found"), int64(2))

		pipe := client.Pipeline()
		first := pipe.CMSQuery(ctx, "cms", "a")
		second := pipe.TopKCount(ctx, "topk", "a")
		third := pipe.TDigestMax(ctx, "td")

		_, err := pipe.Exec(ctx)
		Expect(err).To(MatchError("ERR not found"))
		Expect(first.Err()).NotTo(HaveOccurred())
		Expect(second.Err()).To(MatchError("ERR not found"))
		Expect(third.Err()).NotTo(HaveOccurred())
		Expect(third.Val()).To(Equal(2.0))
	})

	It("should not queue commands with invalid arguments", func() {
		driver.Reply(int64(1))

		pipe := client.Pipeline()
		bad := pipe.BFMAdd(ctx, "bf")
		good := pipe.BFAdd(ctx, "bf", "a")
		Expect(pipe.Len()).To(Equal(1))
		Expect(errors.Is(bad.Err(), stack.ErrInvalidArgument)).To(BeTrue())

		cmds, err := pipe.Exec(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(cmds).To(Equal([]stack.Cmder{good}))
	})

	It("should fail every command when the batch fails", func() {
		driver.batchErr = errors.New("connection reset")

		pipe := client.Pipeline()
		a := pipe.BFAdd(ctx, "bf", "a")
		b := pipe.BFAdd(ctx, "bf", "b")

		_, err := pipe.Exec(ctx)
		Expect(err).To(MatchError("connection reset"))
		Expect(a.Err()).To(MatchError("connection reset"))
		Expect(b.Err()).To(MatchError("connection reset"))
	})

	It("should be flushed after Exec", func() {
		pipe := client.Pipeline()
		cmds, err := pipe.Exec(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(cmds).To(BeEmpty())
		Expect(driver.batches).To(BeZero())

		late := pipe.BFAdd(ctx, "bf", "a")
		Expect(late.Err()).To(Equal(stack.ErrPipelineFlushed))

		_, err = pipe.Exec(ctx)
		Expect(err).To(Equal(stack.ErrPipelineFlushed))
	})

	It("should run Pipelined", func() {
		driver.Reply("OK", int64(3))

		var incr *stack.IntSliceCmd
		cmds, err := client.Pipelined(ctx, func(pipe *stack.Pipeline) error {
			pipe.CMSInitByDim(ctx, "cms", 1000, 5)
			incr = pipe.CMSIncrBy(ctx, "cms", stack.CMSItem{Item: "a", Increment: 3})
			return nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(cmds).To(HaveLen(2))
		Expect(incr.Val()).To(Equal([]int64{3}))
	})

	It("should not execute when Pipelined fails", func() {
		_, err := client.Pipelined(ctx, func(pipe *stack.Pipeline) error {
			pipe.BFAdd(ctx, "bf", "a")
			return errors.New("abort")
		})
		Expect(err).To(MatchError("abort"))
		Expect(driver.Calls()).To(BeEmpty())
	})
})
