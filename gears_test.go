package stack_test

import (
	"errors"
	"fmt"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"

	stack "github.com/redis/go-redis-stack"
)

func libCode(libName string) string {
	return fmt.Sprintf("#!js api_version=1.0 name=%s\n redis.registerFunction('foo', ()=>{{return 'bar'}})", libName)
}

var _ = Describe("Gears commands", func() {
	var client *stack.Client
	var driver *scriptDriver

	BeforeEach(func() {
		client, driver = newTestClient()
	})

	It("should TFunctionLoad", func() {
		driver.Reply("OK")
		Expect(client.TFunctionLoad(ctx, libCode("lib1")).Val()).To(BeTrue())
		Expect(driver.LastArgs()).To(Equal([]interface{}{"TFUNCTION", "LOAD", libCode("lib1")}))
	})

	It("should TFunctionLoadArgs", func() {
		driver.Reply("OK")
		cmd := client.TFunctionLoadArgs(ctx, libCode("lib1"), &stack.TFunctionLoadOptions{
			Replace: true,
			Config:  `{"last_update_field_name":"last_update"}`,
		})
		Expect(cmd.Err()).NotTo(HaveOccurred())
		Expect(cmd.FullName()).To(Equal("tfunction load"))
		Expect(driver.LastArgs()).To(Equal([]interface{}{
			"TFUNCTION", "LOAD", "REPLACE", "CONFIG", `{"last_update_field_name":"last_update"}`, libCode("lib1"),
		}))
	})

	It("should TFunctionDelete", func() {
		driver.Reply("OK")
		Expect(client.TFunctionDelete(ctx, "lib1").Err()).NotTo(HaveOccurred())
		Expect(driver.LastArgs()).To(Equal([]interface{}{"TFUNCTION", "DELETE", "lib1"}))
	})

	It("should TFunctionListArgs", func() {
		driver.Reply([]interface{}{
			[]interface{}{
				"name", "lib1",
				"engine", "js",
				"functions", []interface{}{"foo"},
				"pending_jobs", int64(0),
			},
		})
		libs, err := client.TFunctionListArgs(ctx, &stack.TFunctionListOptions{
			WithCode: true,
			Verbose:  2,
			Library:  "lib1",
		}).Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(libs).To(Equal([]map[string]interface{}{{
			"name":         "lib1",
			"engine":       "js",
			"functions":    []interface{}{"foo"},
			"pending_jobs": int64(0),
		}}))
		Expect(driver.LastArgs()).To(Equal([]interface{}{
			"TFUNCTION", "LIST", "WITHCODE", "vv", "LIBRARY", "lib1",
		}))
	})

	It("should reject a verbosity above 3", func() {
		err := client.TFunctionListArgs(ctx, &stack.TFunctionListOptions{Verbose: 4}).Err()
		Expect(errors.Is(err, stack.ErrInvalidArgument)).To(BeTrue())
		Expect(driver.Calls()).To(BeEmpty())
	})

	It("should TFCall", func() {
		driver.Reply("bar")
		res, err := client.TFCall(ctx, "lib1", "foo").Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal("bar"))
		Expect(driver.LastArgs()).To(Equal([]interface{}{"TFCALL", "lib1.foo", 0}))
	})

	It("should count the keys of TFCallArgs", func() {
		driver.Reply(int64(3))
		n, err := client.TFCallArgs(ctx, "lib1", "foo", &stack.TFCallOptions{
			Keys:      []string{"k"},
			Arguments: []interface{}{"a"},
		}).Int64()
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(3)))
		Expect(driver.LastArgs()).To(Equal([]interface{}{"TFCALL", "lib1.foo", 1, "k", "a"}))
	})

	It("should TFCallAsyncArgs", func() {
		driver.Reply("bar")
		err := client.TFCallAsyncArgs(ctx, "lib1", "foo", &stack.TFCallOptions{Keys: []string{"a", "b"}}).Err()
		Expect(err).NotTo(HaveOccurred())
		Expect(driver.LastArgs()).To(Equal([]interface{}{"TFCALLASYNC", "lib1.foo", 2, "a", "b"}))
	})

	It("should reject a missing function name", func() {
		err := client.TFCall(ctx, "lib1", "").Err()
		Expect(errors.Is(err, stack.ErrInvalidArgument)).To(BeTrue())
	})
})
