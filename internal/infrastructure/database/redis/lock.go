package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// unlockScript releases the lock only if the caller still owns it.
var unlockScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// extendScript refreshes the TTL only if the caller still owns the lock.
var extendScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("pexpire", KEYS[1], ARGV[2])
end
return 0
`)

// Mutex is a single-instance Redis lock used to serialize writes that must
// not interleave, such as replacing a job seeker's primary resume while a
// recommendation pass reads it.
type Mutex struct {
	client *goredis.Client
	key    string
	token  string
	ttl    time.Duration
}

// NewMutex builds an unheld mutex on key with the given TTL.
func NewMutex(client *goredis.Client, key string, ttl time.Duration) *Mutex {
	return &Mutex{
		client: client,
		key:    key,
		token:  uuid.NewString(),
		ttl:    ttl,
	}
}

// JobSeekerLockKey names the mutex guarding one job seeker's resume and
// recommendation writes.
func JobSeekerLockKey(prefix, jobSeekerID string) string {
	return prefix + ":lock:jobseeker:" + jobSeekerID
}

// TryLock attempts a single non-blocking acquisition.
func (m *Mutex) TryLock(ctx context.Context) (bool, error) {
	ok, err := m.client.SetNX(ctx, m.key, m.token, m.ttl).Result()
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrCodeCacheError, "lock acquire")
	}
	return ok, nil
}

// Lock blocks until the mutex is acquired or ctx is done, polling with a
// short backoff.
func (m *Mutex) Lock(ctx context.Context) error {
	const pollInterval = 50 * time.Millisecond
	for {
		ok, err := m.TryLock(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return appErrors.Wrap(ctx.Err(), appErrors.ErrCodeTimeout, "lock wait cancelled")
		case <-time.After(pollInterval):
		}
	}
}

// Unlock releases the mutex if still held by this instance.
func (m *Mutex) Unlock(ctx context.Context) error {
	n, err := unlockScript.Run(ctx, m.client, []string{m.key}, m.token).Int()
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeCacheError, "lock release")
	}
	if n == 0 {
		return appErrors.New(appErrors.ErrCodeLockNotHeld, "lock expired or held by another owner").
			WithDetail("key=" + m.key)
	}
	return nil
}

// Extend refreshes the TTL while still held.
func (m *Mutex) Extend(ctx context.Context) error {
	n, err := extendScript.Run(ctx, m.client, []string{m.key}, m.token, m.ttl.Milliseconds()).Int()
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeCacheError, "lock extend")
	}
	if n == 0 {
		return appErrors.New(appErrors.ErrCodeLockNotHeld, "lock expired or held by another owner").
			WithDetail("key=" + m.key)
	}
	return nil
}

// WithLock runs fn while holding the mutex, releasing it afterwards.  Release
// failures are returned only when fn itself succeeded.
func (m *Mutex) WithLock(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := m.Lock(ctx); err != nil {
		return err
	}
	fnErr := fn(ctx)
	unlockErr := m.Unlock(context.WithoutCancel(ctx))
	if fnErr != nil {
		return fnErr
	}
	return unlockErr
}

// LockManager hands out mutexes under a shared key prefix and TTL.
type LockManager struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewLockManager builds a LockManager.
func NewLockManager(client *goredis.Client, prefix string, ttl time.Duration) *LockManager {
	return &LockManager{client: client, prefix: prefix, ttl: ttl}
}

// WithJobSeekerLock serializes fn against other writers touching the same job
// seeker's resumes or recommendations.
func (lm *LockManager) WithJobSeekerLock(ctx context.Context, jobSeekerID string, fn func(ctx context.Context) error) error {
	m := NewMutex(lm.client, JobSeekerLockKey(lm.prefix, jobSeekerID), lm.ttl)
	return m.WithLock(ctx, fn)
}
