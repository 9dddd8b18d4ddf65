package config

import (
	"log"

	"github.com/redis/rueidis"
)

// NewRedisClient connects to the Redis instance backing the shared
// rate limiter. Only called when REDIS_ADDR is configured.
func NewRedisClient(addr string) rueidis.Client {
	client, err := rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress: []string{addr},
		},
	)
	if err != nil {
		log.Fatalf("failed to create redis client: %v", err)
	}

	return client
}
