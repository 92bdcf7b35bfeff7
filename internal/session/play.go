package session

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/quizzes/internal/config"
)

// PlayStore keeps random-play progress in Redis, one SET per session.
type PlayStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewPlayStore creates a PlayStore. Progress untouched for ttl is forgotten.
func NewPlayStore(rdb *redis.Client, ttl time.Duration) *PlayStore {
	return &PlayStore{rdb: rdb, ttl: ttl}
}

// Open returns the play session of the given session id. Nothing is written
// to Redis until the first correct answer.
func (s *PlayStore) Open(sessionID string) *PlaySession {
	return &PlaySession{
		ID:    sessionID,
		key:   config.CacheKey.PlayAnsweredKey(sessionID),
		store: s,
	}
}

// PlaySession is one visitor's random-play run: the set of quiz ids already
// answered correctly. Every method is a single atomic Redis round trip.
type PlaySession struct {
	ID    string
	key   string
	store *PlayStore
}

// Answered returns the answered quiz ids in ascending order.
func (p *PlaySession) Answered(ctx context.Context) ([]int, error) {
	members, err := p.store.rdb.SMembers(ctx, p.key).Result()
	if err != nil {
		return nil, fmt.Errorf("read answered quizzes: %w", err)
	}
	ids := make([]int, 0, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m)
		if err != nil {
			return nil, fmt.Errorf("corrupt play member %q: %w", m, err)
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// MarkAnswered records a correct answer and returns the new score.
func (p *PlaySession) MarkAnswered(ctx context.Context, quizID int) (int, error) {
	var card *redis.IntCmd
	_, err := p.store.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, p.key, quizID)
		card = pipe.SCard(ctx, p.key)
		pipe.Expire(ctx, p.key, p.store.ttl)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("mark quiz %d answered: %w", quizID, err)
	}
	return int(card.Val()), nil
}

// Reset forgets every answer of the run.
func (p *PlaySession) Reset(ctx context.Context) error {
	if err := p.store.rdb.Del(ctx, p.key).Err(); err != nil {
		return fmt.Errorf("reset play: %w", err)
	}
	return nil
}

// Finish ends the run: it returns the final score and clears the set in one step.
func (p *PlaySession) Finish(ctx context.Context) (int, error) {
	var card *redis.IntCmd
	_, err := p.store.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		card = pipe.SCard(ctx, p.key)
		pipe.Del(ctx, p.key)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("finish play: %w", err)
	}
	return int(card.Val()), nil
}
