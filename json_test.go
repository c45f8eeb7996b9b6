package stack_test

import (
	"errors"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"

	stack "github.com/redis/go-redis-stack"
)

type JSONGetTestStruct struct {
	Hello string `json:"hello"`
}

var _ = Describe("JSON commands", Label("json"), func() {
	var client *stack.Client
	var driver *scriptDriver

	BeforeEach(func() {
		client, driver = newTestClient()
	})

	Describe("set and get", func() {
		It("should marshal values that are not text", func() {
			driver.Reply("OK")
			ok, err := client.JSONSet(ctx, "doc", "$", map[string]interface{}{"hello": "world"}).Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(driver.LastArgs()).To(Equal([]interface{}{"JSON.SET", "doc", "$", `{"hello":"world"}`}))
		})

		It("should send strings as is", func() {
			driver.Reply("OK")
			Expect(client.JSONSet(ctx, "doc", "$", `{"a":1}`).Err()).NotTo(HaveOccurred())
			Expect(driver.LastArgs()).To(Equal([]interface{}{"JSON.SET", "doc", "$", `{"a":1}`}))
		})

		It("should report an unmet JSONSetMode condition as false", func() {
			driver.Reply(nil)
			ok, err := client.JSONSetMode(ctx, "doc", "$", `1`, "nx").Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(driver.LastArgs()).To(Equal([]interface{}{"JSON.SET", "doc", "$", "1", "NX"}))
		})

		It("should reject unknown modes", func() {
			err := client.JSONSetMode(ctx, "doc", "$", `1`, "YY").Err()
			Expect(errors.Is(err, stack.ErrUnsupportedValue)).To(BeTrue())
		})

		It("should reject values that cannot be marshalled", func() {
			cmd := client.JSONSet(ctx, "doc", "$", make(chan int))
			Expect(cmd.Ready()).To(BeTrue())
			Expect(errors.Is(cmd.Err(), stack.ErrInvalidArgument)).To(BeTrue())
			Expect(driver.Calls()).To(BeEmpty())
		})

		It("should JSONMSet", func() {
			driver.Reply("OK")
			err := client.JSONMSet(ctx,
				stack.JSONSetArgs{Key: "a", Path: "$", Value: 1},
				stack.JSONSetArgs{Key: "b", Path: "$.x", Value: `"y"`},
			).Err()
			Expect(err).NotTo(HaveOccurred())
			Expect(driver.LastArgs()).To(Equal([]interface{}{"JSON.MSET", "a", "$", "1", "b", "$.x", `"y"`}))
		})

		It("should JSONGetWithArgs and Scan", func() {
			driver.Reply(`[{"hello":"world"}]`)
			cmd := client.JSONGetWithArgs(ctx, "doc", &stack.JSONGetArgs{Indent: "  "}, "$")
			Expect(cmd.Err()).NotTo(HaveOccurred())
			Expect(driver.LastArgs()).To(Equal([]interface{}{"JSON.GET", "doc", "INDENT", "  ", "$"}))

			var docs []JSONGetTestStruct
			Expect(cmd.Scan(&docs)).To(Succeed())
			Expect(docs).To(Equal([]JSONGetTestStruct{{Hello: "world"}}))

			expanded, err := cmd.Expanded()
			Expect(err).NotTo(HaveOccurred())
			Expect(expanded).To(Equal([]interface{}{map[string]interface{}{"hello": "world"}}))
		})

		It("should yield an empty JSONGet for missing keys", func() {
			driver.Reply(nil)
			cmd := client.JSONGet(ctx, "missing")
			Expect(cmd.Val()).To(Equal(""))
			expanded, err := cmd.Expanded()
			Expect(err).NotTo(HaveOccurred())
			Expect(expanded).To(BeNil())
			Expect(cmd.Scan(&struct{}{})).To(HaveOccurred())
		})

		It("should JSONMGet", func() {
			driver.Reply([]interface{}{`[1]`, nil})
			res, err := client.JSONMGet(ctx, "$.a", "k1", "k2").Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(Equal([]interface{}{[]interface{}{1.0}, nil}))
			Expect(driver.LastArgs()).To(Equal([]interface{}{"JSON.MGET", "k1", "k2", "$.a"}))
		})
	})

	Describe("arrays", Label("arrays"), func() {
		It("should JSONArrAppend", func() {
			driver.Reply([]interface{}{int64(3), nil})
			res, err := client.JSONArrAppend(ctx, "doc", "$..a", 1, "\"x\"").Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(HaveLen(2))
			Expect(*res[0]).To(Equal(int64(3)))
			Expect(res[1]).To(BeNil())
			Expect(driver.LastArgs()).To(Equal([]interface{}{"JSON.ARRAPPEND", "doc", "$..a", "1", `"x"`}))
		})

		It("should JSONArrIndexStartStop", func() {
			driver.Reply([]interface{}{int64(-1)})
			Expect(client.JSONArrIndexStartStop(ctx, "doc", "$.a", 2, 0, 5).Err()).NotTo(HaveOccurred())
			Expect(driver.LastArgs()).To(Equal([]interface{}{"JSON.ARRINDEX", "doc", "$.a", "2", int64(0), int64(5)}))
		})

		It("should decode a legacy integer reply", func() {
			driver.Reply(int64(4))
			res, err := client.JSONArrLen(ctx, "doc", ".a").Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(HaveLen(1))
			Expect(*res[0]).To(Equal(int64(4)))
		})

		It("should JSONArrPop", func() {
			driver.Reply([]interface{}{"3", nil})
			Expect(client.JSONArrPop(ctx, "doc", "$..a", -1).Val()).To(Equal([]string{"3", ""}))
		})

		It("should decode a legacy JSONArrPop reply", func() {
			driver.Reply("3", nil)
			Expect(client.JSONArrPop(ctx, "doc", ".a", -1).Val()).To(Equal([]string{"3"}))
			Expect(driver.LastArgs()).To(Equal([]interface{}{"JSON.ARRPOP", "doc", ".a", int64(-1)}))

			res, err := client.JSONArrPop(ctx, "doc", ".a", 0).Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(Equal([]string{""}))
		})
	})

	Describe("misc", func() {
		It("should omit an empty path", func() {
			driver.Reply(int64(1))
			Expect(client.JSONDel(ctx, "doc", "").Val()).To(Equal(int64(1)))
			Expect(driver.LastArgs()).To(Equal([]interface{}{"JSON.DEL", "doc"}))
		})

		It("should JSONDebugMemory", func() {
			driver.Reply(int64(64))
			cmd := client.JSONDebugMemory(ctx, "doc", "$")
			Expect(cmd.Val()).To(Equal(int64(64)))
			Expect(cmd.FullName()).To(Equal("json.debug memory"))
			Expect(driver.LastArgs()).To(Equal([]interface{}{"JSON.DEBUG", "MEMORY", "doc", "$"}))
		})

		It("should JSONNumIncrBy", func() {
			driver.Reply("[3]")
			Expect(client.JSONNumIncrBy(ctx, "doc", "$.n", 2).Val()).To(Equal("[3]"))
		})

		It("should marshal an array reply of JSONNumIncrBy", func() {
			driver.Reply([]interface{}{int64(3), nil})
			Expect(client.JSONNumIncrBy(ctx, "doc", "$..n", 2).Val()).To(Equal("[3,null]"))
		})

		It("should JSONType", func() {
			driver.Reply([]interface{}{"object"})
			Expect(client.JSONType(ctx, "doc", "$").Val()).To(Equal([]string{"object"}))
		})

		It("should decode a JSONType reply without a path", func() {
			driver.Reply("object")
			res, err := client.JSONType(ctx, "doc", "").Result()
			Expect(err).NotTo(HaveOccurred())
			Expect(res).To(Equal([]string{"object"}))
			Expect(driver.LastArgs()).To(Equal([]interface{}{"JSON.TYPE", "doc"}))
		})

		It("should still reject a scalar reply to a list command", func() {
			driver.Reply("g1")
			Expect(client.GraphList(ctx).Err()).To(MatchError(stack.ErrUnexpectedReply))
		})

		It("should JSONObjKeys", func() {
			driver.Reply([]interface{}{[]interface{}{"a", "b"}, nil})
			Expect(client.JSONObjKeys(ctx, "doc", "$..o").Val()).To(Equal([]interface{}{
				[]interface{}{"a", "b"}, nil,
			}))
		})
	})
})
