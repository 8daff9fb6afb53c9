package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DistributedLock = (*Lock)(nil)

const lockPrefix = "descriptor-studio:lock:"

// ErrLockNotHeld is returned by Extend when this instance does not own the lock
var ErrLockNotHeld = errors.New("lock not held by this instance")

// Lock implements DistributedLock with SET NX PX and an owner token,
// so one instance can never release or extend another's lock.
type Lock struct {
	client  redis.UniversalClient
	ownerID string
}

// NewLock creates a Redis-backed lock with a fresh owner token
func NewLock(client redis.UniversalClient) *Lock {
	return &Lock{client: client, ownerID: newOwnerID()}
}

// newOwnerID returns hostname:pid:random
func newOwnerID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s:%d:%s", hostname, os.Getpid(), gonanoid.Must(12))
}

// Acquire takes the lock if nobody holds it. Not reentrant.
func (l *Lock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, lockPrefix+name, l.ownerID, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", name, err)
	}
	return ok, nil
}

// compare-and-delete
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	end
	return 0
`)

// Release drops the lock if this instance owns it. Missing or foreign
// locks are left alone.
func (l *Lock) Release(ctx context.Context, name string) error {
	err := releaseScript.Run(ctx, l.client, []string{lockPrefix + name}, l.ownerID).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release lock %s: %w", name, err)
	}
	return nil
}

// compare-and-pexpire
var extendScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("pexpire", KEYS[1], ARGV[2])
	end
	return 0
`)

// Extend resets the TTL of a lock this instance owns
func (l *Lock) Extend(ctx context.Context, name string, ttl time.Duration) error {
	n, err := extendScript.Run(ctx, l.client, []string{lockPrefix + name}, l.ownerID, ttl.Milliseconds()).Int64()
	if err != nil {
		return fmt.Errorf("extend lock %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrLockNotHeld, name)
	}
	return nil
}

// Ping checks if the Redis backend is healthy.
func (l *Lock) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// OwnerID identifies this instance in lock values
func (l *Lock) OwnerID() string {
	return l.ownerID
}
