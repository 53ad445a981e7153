package rdx

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init opens the Redis connection used for the active-session hash and the
// reservation event channel.
func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})

	if err := Conn.Ping(context.Background()).Err(); err != nil {
		log.Printf("Redis unreachable at %s: %v", addr, err)
	}
}

// RdxHset stores a field in a Redis hash.
func RdxHset(group, field, value string) error {
	return Conn.HSet(context.Background(), group, field, value).Err()
}

// RdxHget retrieves a field from a Redis hash.
func RdxHget(group, field string) (string, error) {
	return Conn.HGet(context.Background(), group, field).Result()
}

// RdxHdel removes a field from a Redis hash.
func RdxHdel(group, field string) (int64, error) {
	return Conn.HDel(context.Background(), group, field).Result()
}
