/*
Package stack implements typed commands for the Redis Stack modules: Bloom
and Cuckoo filters, Count-Min Sketch, TopK, T-Digest, Time Series, JSON,
Search, Graph and Gears, plus a few blocking core commands.

Every method builds the exact argument list of one server command, submits it
through a Driver and decodes the reply into a typed value. Arguments are
validated before anything is sent; a rejected command comes back already
resolved with an *ArgumentError.

Let's start with connecting to Redis:

	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	client := stack.NewClientFromRedis(rdb)

Then we can start sending commands:

	if err := client.BFReserve(ctx, "bf", 0.01, 1000).Err(); err != nil {
		panic(err)
	}

	exists, err := client.BFExists(ctx, "bf", "item").Result()

Commands can be pipelined; their handles are resolved by Exec:

	pipe := client.Pipeline()
	add := pipe.CMSIncrBy(ctx, "cms", stack.CMSItem{Item: "a", Increment: 1})
	query := pipe.CMSQuery(ctx, "cms", "a")
	if _, err := pipe.Exec(ctx); err != nil {
		panic(err)
	}
	fmt.Println(add.Val(), query.Val())

The AsyncClient returns right away; Wait blocks until the reply is decoded:

	cmd := client.Async().TSAdd(ctx, "ts", stack.TSAutoTimestamp, 42)
	if err := cmd.Wait(ctx); err != nil {
		panic(err)
	}
*/
package stack
