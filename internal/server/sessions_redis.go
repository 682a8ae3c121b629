package server

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisSessionPrefix = "ds:session:"

type redisSessions struct {
	client *redis.Client
	ttl    time.Duration
}

func newRedisSessions(client *redis.Client, ttl time.Duration) *redisSessions {
	return &redisSessions{client: client, ttl: ttl}
}

func (r *redisSessions) Load(ctx context.Context, id string) (sessionData, error) {
	raw, err := r.client.Get(ctx, redisSessionPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return sessionData{}, nil
		}
		return sessionData{}, err
	}
	var data sessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return sessionData{}, err
	}
	return data, nil
}

func (r *redisSessions) Save(ctx context.Context, id string, data sessionData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisSessionPrefix+id, raw, r.ttl).Err()
}

func (r *redisSessions) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, redisSessionPrefix+id).Err()
}
