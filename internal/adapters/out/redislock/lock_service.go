// Package redislock implements the distributed lock service on Redis.
//
// Each lock is a single key holding a random owner token set with NX and a
// TTL equal to the lease. Release compares the token before deleting, so an
// instance that outlived its lease can never free a lock a newer holder took
// over in the meantime.
package redislock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"datadelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "datadelivery:lock:"

// releaseScript deletes the lock key only when it still carries the caller's
// owner token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLockService implements ports.LockService on a Redis instance.
type RedisLockService struct {
	client *redis.Client

	mu     sync.Mutex
	owners map[string]string
}

// NewRedisLockService creates a lock service backed by the given Redis client.
func NewRedisLockService(client *redis.Client) (*RedisLockService, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}

	return &RedisLockService{
		client: client,
		owners: make(map[string]string),
	}, nil
}

// AcquireLock tries to take the named lock for the lease duration. Returns
// false without error when another holder owns it.
func (s *RedisLockService) AcquireLock(ctx context.Context, name string, lease time.Duration) (bool, error) {
	if name == "" {
		return false, errs.NewValueIsRequiredError("name")
	}
	if lease <= 0 {
		return false, errs.NewValueIsInvalidError("lease")
	}

	token := uuid.NewString()
	acquired, err := s.client.SetNX(ctx, lockKeyPrefix+name, token, lease).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", name, err)
	}
	if !acquired {
		return false, nil
	}

	s.mu.Lock()
	s.owners[name] = token
	s.mu.Unlock()
	return true, nil
}

// ReleaseLock releases the named lock if this instance still holds it. A lock
// that expired or was taken over by another holder is left untouched.
func (s *RedisLockService) ReleaseLock(ctx context.Context, name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	s.mu.Lock()
	token, held := s.owners[name]
	delete(s.owners, name)
	s.mu.Unlock()

	if !held {
		return errs.NewObjectNotFoundError("lock", name)
	}

	if err := releaseScript.Run(ctx, s.client, []string{lockKeyPrefix + name}, token).Err(); err != nil {
		return fmt.Errorf("release lock %s: %w", name, err)
	}
	return nil
}
