package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis so multiple instances can share one
// session space.  Each session lives under its own key with the store TTL;
// a per-user set indexes the tokens so DeleteAllForUser does not need to
// scan the keyspace.  The index set carries the same TTL, refreshed on
// every login, so it cannot outlive the sessions it points at by much.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore returns a RedisStore writing sessions with the given TTL.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(token string) string    { return "sess:" + token }
func userIndexKey(userID uint64) string { return fmt.Sprintf("sess:user:%d", userID) }

// Create stores the snapshot and registers the token in the user index.
func (s *RedisStore) Create(ctx context.Context, sess Session) error {
	body, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, sessionKey(sess.Token), body, s.ttl)
	pipe.SAdd(ctx, userIndexKey(sess.UserID), sess.Token)
	pipe.Expire(ctx, userIndexKey(sess.UserID), s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Get fetches and decodes the snapshot for a token.
func (s *RedisStore) Get(ctx context.Context, token string) (Session, error) {
	body, err := s.rdb.Get(ctx, sessionKey(token)).Bytes()
	if err == redis.Nil {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, err
	}
	var sess Session
	if err := json.Unmarshal(body, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Delete removes one session key.  The user index entry is cleaned up too
// when the snapshot is still readable; otherwise it simply expires.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if sess, err := s.Get(ctx, token); err == nil {
		s.rdb.SRem(ctx, userIndexKey(sess.UserID), token)
	}
	return s.rdb.Del(ctx, sessionKey(token)).Err()
}

// DeleteAllForUser removes every session registered in the user's index.
func (s *RedisStore) DeleteAllForUser(ctx context.Context, userID uint64) error {
	tokens, err := s.rdb.SMembers(ctx, userIndexKey(userID)).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	keys := make([]string, 0, len(tokens)+1)
	for _, t := range tokens {
		keys = append(keys, sessionKey(t))
	}
	keys = append(keys, userIndexKey(userID))
	return s.rdb.Del(ctx, keys...).Err()
}
