package stack

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/redis/go-redis-stack/internal"
)

// Driver submits fully built commands and hands back the decoded,
// untyped replies. Arguments must be sent in the given order.
//
// Do returns the reply of one command. A null reply is a nil value with a
// nil error; an error reply is returned as an error.
//
// DoBatch submits cmds as one batch and returns one BatchReply per command
// in the same order. The returned error is reserved for failures of the
// batch as a whole, e.g. a broken connection.
type Driver interface {
	Do(ctx context.Context, args ...interface{}) (interface{}, error)
	DoBatch(ctx context.Context, cmds [][]interface{}) ([]BatchReply, error)
}

// BatchReply is the outcome of one command of a batch.
type BatchReply struct {
	Val interface{}
	Err error
}

type goRedisDriver struct {
	rdb redis.UniversalClient
}

var _ Driver = (*goRedisDriver)(nil)

// NewGoRedisDriver returns a Driver that submits commands through rdb.
//
// Multi-key replies such as TS.MRANGE keep the server order only with
// Protocol: 2. go-redis hands RESP3 maps out as Go maps, which are decoded
// sorted by key.
func NewGoRedisDriver(rdb redis.UniversalClient) Driver {
	if goRedisProtocol(rdb) != 2 {
		internal.Infof(context.Background(),
			"RESP3 map replies are decoded sorted by key, use Protocol: 2 to keep the server order")
	}
	return &goRedisDriver{rdb: rdb}
}

// goRedisProtocol returns the RESP version of rdb, 3 when unknown.
func goRedisProtocol(rdb redis.UniversalClient) int {
	var protocol int
	switch rdb := rdb.(type) {
	case *redis.Client:
		protocol = rdb.Options().Protocol
	case *redis.ClusterClient:
		protocol = rdb.Options().Protocol
	}
	if protocol == 0 {
		return 3
	}
	return protocol
}

func (d *goRedisDriver) Do(ctx context.Context, args ...interface{}) (interface{}, error) {
	val, err := d.rdb.Do(ctx, args...).Result()
	if err == redis.Nil {
		return nil, nil
	}
	return val, err
}

func (d *goRedisDriver) DoBatch(ctx context.Context, cmds [][]interface{}) ([]BatchReply, error) {
	pipe := d.rdb.Pipeline()
	rcmds := make([]*redis.Cmd, len(cmds))
	for i, args := range cmds {
		rcmds[i] = pipe.Do(ctx, args...)
	}

	// Exec reports the first failed command; server errors are collected
	// per command below.
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		var rerr redis.Error
		if !errors.As(err, &rerr) {
			return nil, err
		}
	}

	replies := make([]BatchReply, len(rcmds))
	for i, cmd := range rcmds {
		val, err := cmd.Result()
		if err == redis.Nil {
			val, err = nil, nil
		}
		replies[i] = BatchReply{Val: val, Err: err}
	}
	return replies, nil
}
