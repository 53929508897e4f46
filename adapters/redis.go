package adapters

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/reportgen/reportgen/core"
	"github.com/reportgen/reportgen/core/builders"
)

// Register client
func init() {
	_ = register(&Redis{}, "redis")
}

const (
	defaultRedisPattern = "*"
	redisScanCount      = 100
)

var _ core.Adapter = (*Redis)(nil)

// Redis turns every hash under a key pattern into a record.
// String keys become a record with a single value column.
type Redis struct{}

func (r *Redis) Connect(params *core.SourceParams) (core.Extractor, error) {
	opt, err := redis.ParseURL(params.Location)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to redis database: %v", err)
	}

	pattern := params.DataKey
	if pattern == "" {
		pattern = defaultRedisPattern
	}

	return &redisExtractor{
		redis:   redis.NewClient(opt),
		pattern: pattern,
	}, nil
}

type redisExtractor struct {
	redis   *redis.Client
	pattern string
}

func (e *redisExtractor) Extract(ctx context.Context) ([]core.Record, error) {
	var keys []string
	iter := e.redis.Scan(ctx, 0, e.pattern, redisScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNetwork, err)
	}
	sort.Strings(keys)

	// only hashes and strings map onto records
	var readable []redisKey
	for _, key := range keys {
		typ, err := e.redis.Type(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrNetwork, err)
		}
		if typ == "hash" || typ == "string" {
			readable = append(readable, redisKey{name: key, typ: typ})
		}
	}

	next, hasNext := builders.NextSlice(readable, func(k redisKey) (core.Record, error) {
		switch k.typ {
		case "hash":
			fields, err := e.redis.HGetAll(ctx, k.name).Result()
			if err != nil {
				return core.Record{}, fmt.Errorf("%w: %v", core.ErrNetwork, err)
			}
			return hashRecord(k.name, fields), nil
		default:
			val, err := e.redis.Get(ctx, k.name).Result()
			if err != nil {
				return core.Record{}, fmt.Errorf("%w: %v", core.ErrNetwork, err)
			}
			return core.NewRecord("key", k.name, "value", val), nil
		}
	})

	stream := builders.NewRecordStreamBuilder().
		WithNextFunc(next, hasNext).
		WithHeader(core.Header{"key"}).
		Build()

	return core.Drain(stream)
}

func (e *redisExtractor) Close() {
	e.redis.Close()
}

type redisKey struct {
	name string
	typ  string
}

// hashRecord builds a record from a hash: the key first, then fields sorted by name.
func hashRecord(key string, fields map[string]string) core.Record {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]any, 0, 2*(len(names)+1))
	pairs = append(pairs, "key", key)
	for _, name := range names {
		pairs = append(pairs, name, fields[name])
	}
	return core.NewRecord(pairs...)
}
