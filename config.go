package stack

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/redis/go-redis-stack/internal"
)

// Config describes the server connection. Zero values keep the go-redis
// defaults.
type Config struct {
	URL            string        `env:"REDIS_STACK_URL" envDefault:"redis://localhost:6379/0"`
	ConnectTimeout time.Duration `env:"REDIS_STACK_CONNECT_TIMEOUT" envDefault:"5s"`
	ReadTimeout    time.Duration `env:"REDIS_STACK_READ_TIMEOUT"`
	WriteTimeout   time.Duration `env:"REDIS_STACK_WRITE_TIMEOUT"`
	PoolSize       int           `env:"REDIS_STACK_POOL_SIZE"`
	Protocol       int           `env:"REDIS_STACK_PROTOCOL" envDefault:"2"`
}

// LoadConfig reads the configuration from the environment. The given
// dotenv files, or ".env" when none is given, are loaded first; missing
// files are ignored.
func LoadConfig(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("redis-stack: load %s: %w", file, err)
		}
	}

	cfg := new(Config)
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("redis-stack: parse config: %w", err)
	}
	return cfg, nil
}

// RedisOptions converts the configuration into go-redis options.
func (cfg *Config) RedisOptions() (*redis.Options, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis-stack: parse url: %w", err)
	}

	if cfg.ConnectTimeout > 0 {
		opt.DialTimeout = cfg.ConnectTimeout
	}
	if cfg.ReadTimeout != 0 {
		opt.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout != 0 {
		opt.WriteTimeout = cfg.WriteTimeout
	}
	if cfg.PoolSize > 0 {
		opt.PoolSize = cfg.PoolSize
	}
	if cfg.Protocol != 0 {
		opt.Protocol = cfg.Protocol
	}
	return opt, nil
}

// Connect opens a go-redis client for cfg, pings the server once and returns
// a Client backed by it.
func Connect(ctx context.Context, cfg *Config) (*Client, error) {
	opt, err := cfg.RedisOptions()
	if err != nil {
		return nil, err
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis-stack: ping %s: %w", opt.Addr, err)
	}

	internal.Infof(ctx, "connected to %s", opt.Addr)
	return NewClientFromRedis(rdb), nil
}
