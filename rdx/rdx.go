package rdx

import (
	"os"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init connects the shared Redis client used for caching and the
// event channel. Callers tolerate a nil Conn when REDIS_ADDR is
// unset.
func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}
