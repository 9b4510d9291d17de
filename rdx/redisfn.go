package rdx

import (
	"log"
	"os"
	"time"

	"kedai/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init connects to Redis if REDIS_URL is configured. Without it the cache
// helpers become no-ops; Redis is an optimization, not a dependency.
func Init() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set; response caching disabled")
		return
	}

	Conn = redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		log.Println("Redis ping failed; response caching disabled:", err)
		Conn = nil
	}
}

func RdxGet(key string) (string, error) {
	if Conn == nil {
		return "", nil
	}
	val, err := Conn.Get(globals.Ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func RdxSet(key, value string, ttl time.Duration) {
	if Conn == nil {
		return
	}
	if err := Conn.Set(globals.Ctx, key, value, ttl).Err(); err != nil {
		log.Printf("Redis Set error: %v", err)
	}
}

func RdxDel(key string) {
	if Conn == nil {
		return
	}
	if err := Conn.Del(globals.Ctx, key).Err(); err != nil {
		log.Printf("Redis Del error: %v", err)
	}
}
