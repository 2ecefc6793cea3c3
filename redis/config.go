package redis

import (
	"crypto/tls"
	"fmt"

	"github.com/go-redis/redis"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const envconfigPrefix = "XWALLET_REDIS"

// Config represents configuration options for the Redis connection used to
// hold durable sessions. Fields are read from XWALLET_REDIS_* environment
// variables only.
type Config struct {
	Host      string `required:"true"`
	Port      int    `default:"6379"`
	Password  string
	DB        int
	EnableTLS bool `split_words:"true"`
	// Prefix namespaces every key this package writes.
	Prefix string
}

// GetConfig returns Config populated from environment variables.
func GetConfig() (Config, error) {
	c := Config{}
	err := envconfig.Process(envconfigPrefix, &c)
	return c, errors.Wrap(
		err,
		"error getting redis configuration from environment",
	)
}

// Client returns a connection to the Redis database described by c.
func (c Config) Client() *redis.Client {
	redisOpts := &redis.Options{
		Addr:       fmt.Sprintf("%s:%d", c.Host, c.Port),
		Password:   c.Password,
		DB:         c.DB,
		MaxRetries: 5,
	}
	if c.EnableTLS {
		redisOpts.TLSConfig = &tls.Config{
			ServerName: c.Host,
		}
	}
	return redis.NewClient(redisOpts)
}
