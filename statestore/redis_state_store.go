// Package statestore keeps the one-time OAuth states minted for the
// LINE log in and LINE Notify redirect flows. States expire on their
// own and can be consumed at most once.
package statestore

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/unimarket/unimarket/model"
)

// A state not consumed within this window is treated as never issued.
const stateTTL = 30 * time.Minute

const (
	logInKeyPrefix  = "login_state_"
	notifyKeyPrefix = "notify_state_"
)

type RedisStateStore struct {
	inner *redis.Client
}

func NewRedisStateStore(addr, password string) *RedisStateStore {
	return &RedisStateStore{
		inner: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       0,
		}),
	}
}

func (r *RedisStateStore) CreateLogInState(ctx context.Context) (string, error) {
	state := uuid.NewString()
	if err := r.inner.Set(ctx, logInKeyPrefix+state, "1", stateTTL).Err(); err != nil {
		return "", errors.Wrap(err, "store log in state")
	}
	return state, nil
}

func (r *RedisStateStore) ConsumeLogInState(ctx context.Context, state string) (bool, error) {
	n, err := r.inner.Del(ctx, logInKeyPrefix+state).Result()
	if err != nil {
		return false, errors.Wrap(err, "consume log in state")
	}
	return n > 0, nil
}

func (r *RedisStateStore) CreateNotifyState(ctx context.Context, userID string) (string, error) {
	state := uuid.NewString()
	if err := r.inner.Set(ctx, notifyKeyPrefix+state, userID, stateTTL).Err(); err != nil {
		return "", errors.Wrap(err, "store notify state")
	}
	return state, nil
}

func (r *RedisStateStore) ConsumeNotifyState(ctx context.Context, state string) (string, error) {
	key := notifyKeyPrefix + state

	// GET then DEL inside a transaction so a state never pays out twice.
	var userID string
	err := r.inner.Watch(ctx, func(tx *redis.Tx) error {
		v, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			return errors.Wrapf(model.ErrNotFound, "notify state %s", state)
		}
		if err != nil {
			return errors.Wrap(err, "read notify state")
		}
		userID = v
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Ping verifies connectivity at start up.
func (r *RedisStateStore) Ping(ctx context.Context) error {
	return errors.Wrap(r.inner.Ping(ctx).Err(), "ping redis")
}
