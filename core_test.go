package stack_test

import (
	"errors"
	"time"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"

	stack "github.com/redis/go-redis-stack"
)

var _ = Describe("Core commands", func() {
	var client *stack.Client
	var driver *scriptDriver

	BeforeEach(func() {
		client, driver = newTestClient()
	})

	Describe("sorted sets", func() {
		It("should BZPopMin", func() {
			driver.Reply([]interface{}{"zset1", "one", "1"})
			res, err := client.BZPopMin(ctx, time.Second, "zset1", "zset2").Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(Equal(stack.ZWithKey{Z: stack.Z{Score: 1, Member: "one"}, Key: "zset1"}))
			Expect(driver.LastArgs()).To(Equal([]interface{}{"BZPOPMIN", "zset1", "zset2", 1.0}))
		})

		It("should return the zero value when BZPopMax times out", func() {
			driver.Reply(nil)
			res, err := client.BZPopMax(ctx, 0, "zset1").Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(Equal(stack.ZWithKey{}))
		})

		It("should BZMPop", func() {
			driver.Reply([]interface{}{"zset", []interface{}{
				[]interface{}{"one", "1"},
				[]interface{}{"two", 2.0},
			}})
			key, elems, err := client.BZMPop(ctx, 1500*time.Millisecond, stack.ZMin, 2, "zset", "other").Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(Equal("zset"))
			Expect(elems).To(Equal([]stack.Z{{Score: 1, Member: "one"}, {Score: 2, Member: "two"}}))
			Expect(driver.LastArgs()).To(Equal([]interface{}{
				"BZMPOP", 1.5, 2, "zset", "other", "MIN", "COUNT", int64(2),
			}))
		})

		It("should reject BZMPop without an order", func() {
			err := client.BZMPop(ctx, time.Second, 0, 1, "zset").Err()
			Expect(errors.Is(err, stack.ErrUnsupportedValue)).To(BeTrue())
			Expect(driver.Calls()).To(BeEmpty())
		})

		It("should reject blocking pops without keys", func() {
			err := client.BZPopMin(ctx, time.Second).Err()
			Expect(errors.Is(err, stack.ErrInvalidArgument)).To(BeTrue())
			err = client.BLPop(ctx, -time.Second, "list").Err()
			Expect(errors.Is(err, stack.ErrInvalidArgument)).To(BeTrue())
			Expect(driver.Calls()).To(BeEmpty())
		})
	})

	Describe("lists", func() {
		It("should BLPop and BRPop", func() {
			driver.Reply([]interface{}{"list1", "a"}, nil)
			Expect(client.BLPop(ctx, time.Second, "list1").Val()).To(Equal(stack.KeyValue{Key: "list1", Value: "a"}))
			Expect(client.BRPop(ctx, time.Second, "list1").Val()).To(Equal(stack.KeyValue{}))
			Expect(driver.Calls()[1]).To(Equal([]interface{}{"BRPOP", "list1", 1.0}))
		})

		It("should BLMPop", func() {
			driver.Reply([]interface{}{"list", []interface{}{"a", "b"}})
			key, vals, err := client.BLMPop(ctx, 0, stack.ListRight, 0, "list").Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(Equal("list"))
			Expect(vals).To(Equal([]string{"a", "b"}))
			Expect(driver.LastArgs()).To(Equal([]interface{}{"BLMPOP", 0.0, 1, "list", "RIGHT"}))
		})

		It("should BLMove", func() {
			driver.Reply("c", nil)
			Expect(client.BLMove(ctx, "src", "dst", stack.ListLeft, stack.ListRight, time.Second).Val()).To(Equal("c"))
			Expect(driver.LastArgs()).To(Equal([]interface{}{"BLMOVE", "src", "dst", "LEFT", "RIGHT", 1.0}))

			val, err := client.BLMove(ctx, "src", "dst", stack.ListLeft, stack.ListRight, time.Second).Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(val).To(BeEmpty())
		})
	})

	Describe("ClientSetInfo", func() {
		It("should set the library name", func() {
			driver.Reply("OK")
			name := "go-redis-stack"
			cmd := client.ClientSetInfo(ctx, stack.LibraryInfo{LibName: &name})
			Expect(cmd.Val()).To(BeTrue())
			Expect(cmd.FullName()).To(Equal("client setinfo"))
			Expect(driver.LastArgs()).To(Equal([]interface{}{"CLIENT", "SETINFO", "LIB-NAME", "go-redis-stack"}))
		})

		It("should reject both fields", func() {
			name, ver := "go-redis-stack", "1.0.0"
			err := client.ClientSetInfo(ctx, stack.LibraryInfo{LibName: &name, LibVer: &ver}).Err()
			Expect(errors.Is(err, stack.ErrInvalidArgument)).To(BeTrue())

			err = client.ClientSetInfo(ctx, stack.LibraryInfo{}).Err()
			Expect(errors.Is(err, stack.ErrInvalidArgument)).To(BeTrue())
			Expect(driver.Calls()).To(BeEmpty())
		})

		It("should pass through the server error", func() {
			driver.Reply(redisError("ERR unknown subcommand 'SETINFO'"))
			ver := "1.0.0"
			err := client.ClientSetInfo(ctx, stack.LibraryInfo{LibVer: &ver}).Err()
			Expect(err).To(MatchError("ERR unknown subcommand 'SETINFO'"))
		})
	})
})
