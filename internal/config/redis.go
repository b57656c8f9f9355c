package config

// Redis backs the response cache and the rate limiter. If the server cannot
// be reached at startup NewRedisClient returns nil and both middlewares
// degrade to pass-through.

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the Redis connection settings. Addr takes precedence
// over Host/Port when both are set.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT"`
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	TLS      bool   `env:"REDIS_TLS" envDefault:"false"`
}

// Address resolves the host:port to dial.
func (c RedisConfig) Address() string {
	if c.Addr != "" {
		return c.Addr
	}
	if c.Host != "" && c.Port != "" {
		return c.Host + ":" + c.Port
	}
	return "localhost:6379"
}

// NewRedisClient instantiates a Redis client from the environment. The
// returned client is nil if a connection cannot be established.
func NewRedisClient() *redis.Client {
	var cfg RedisConfig
	if err := ParseEnv(&cfg); err != nil {
		return nil
	}
	var tlsConf *tls.Config
	if cfg.TLS {
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      cfg.Address(),
		Password:  cfg.Password,
		DB:        cfg.DB,
		TLSConfig: tlsConf,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
