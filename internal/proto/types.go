package proto

// Reply type tags. They follow the RESP3 type prefixes even when the driver
// talked RESP2, so one decoder handles both protocol versions.
const (
	redisStatus  = '+'
	redisError   = '-'
	redisString  = '$'
	redisInteger = ':'
	redisNil     = '_'
	redisFloat   = ','
	redisBool    = '#'
	redisBigInt  = '('
	redisArray   = '*'
	redisMap     = '%'
)

// RedisError is an error reply embedded in a larger reply, e.g. one failed
// sample inside a TS.MADD array.
type RedisError string

func (e RedisError) Error() string { return string(e) }

func (RedisError) RedisError() {}
