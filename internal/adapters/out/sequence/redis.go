package sequence

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"manufacturing/internal/core/ports"
)

const defaultKeyPrefix = "mfg:sequence:"

// RedisGenerator draws values with INCR so that every replica shares one
// counter per series.
type RedisGenerator struct {
	client    redis.Cmdable
	keyPrefix string
}

func NewRedisGenerator(client redis.Cmdable, keyPrefix string) *RedisGenerator {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisGenerator{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (g *RedisGenerator) Next(ctx context.Context, series ports.Series) (int64, error) {
	value, err := g.client.Incr(ctx, g.key(series)).Result()
	if err != nil {
		return 0, fmt.Errorf("next %s sequence value: %w", series, err)
	}
	return value, nil
}

// seedScript raises KEYS[1] to ARGV[1] and never lowers it. It returns 1 when
// the counter was raised.
var seedScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
local target = tonumber(ARGV[1])
if current < target then
	redis.call("SET", KEYS[1], target)
	return 1
end
return 0
`)

// Seed makes the next value of series start after value unless the counter
// is already past it. It is used once at startup with the highest number found
// in the database and is safe to run while other replicas draw numbers.
func (g *RedisGenerator) Seed(ctx context.Context, series ports.Series, value int64) error {
	if err := seedScript.Run(ctx, g.client, []string{g.key(series)}, value).Err(); err != nil {
		return fmt.Errorf("seed %s sequence: %w", series, err)
	}
	return nil
}

func (g *RedisGenerator) key(series ports.Series) string {
	return g.keyPrefix + string(series)
}
