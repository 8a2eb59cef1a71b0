package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minerace/minerace-go/internal/model"
	"github.com/minerace/minerace-go/internal/storage"
)

// Hash fields of the per-name stats key
const (
	fieldWins        = "wins"
	fieldForfeitWins = "forfeit_wins"
	fieldLosses      = "losses"
)

// Leaderboard is a Redis-backed implementation of the leaderboard store.
// Rankings live in a sorted set scored by win count; per-name counters live
// in a hash, so the leaderboard survives server restarts even though room
// state does not.
type Leaderboard struct {
	client *redis.Client
}

// New creates a new Redis leaderboard
func New(cfg Config) (*Leaderboard, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Leaderboard{client: client}, nil
}

// NewWithClient creates a Redis leaderboard with an existing client (for testing)
func NewWithClient(client *redis.Client) *Leaderboard {
	return &Leaderboard{client: client}
}

// Close closes the Redis connection
func (l *Leaderboard) Close() error {
	return l.client.Close()
}

// Ensure Leaderboard implements the interface
var _ storage.Leaderboard = (*Leaderboard)(nil)

func (l *Leaderboard) RecordWin(ctx context.Context, name string, byForfeit bool) error {
	pipe := l.client.Pipeline()
	pipe.ZIncrBy(ctx, winsKey(), 1, name)
	pipe.HIncrBy(ctx, statsKey(name), fieldWins, 1)
	if byForfeit {
		pipe.HIncrBy(ctx, statsKey(name), fieldForfeitWins, 1)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (l *Leaderboard) RecordLoss(ctx context.Context, name string) error {
	return l.client.HIncrBy(ctx, statsKey(name), fieldLosses, 1).Err()
}

func (l *Leaderboard) Top(ctx context.Context, n int) ([]model.LeaderboardEntry, error) {
	if n <= 0 {
		return nil, nil
	}

	ranked, err := l.client.ZRevRangeWithScores(ctx, winsKey(), 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(ranked))
	for _, z := range ranked {
		name, ok := z.Member.(string)
		if !ok {
			continue
		}

		stats, err := l.client.HGetAll(ctx, statsKey(name)).Result()
		if err != nil {
			return nil, err
		}

		entries = append(entries, model.LeaderboardEntry{
			Name:        name,
			Wins:        hashInt(stats, fieldWins),
			ForfeitWins: hashInt(stats, fieldForfeitWins),
			Losses:      hashInt(stats, fieldLosses),
		})
	}
	return entries, nil
}

// hashInt reads an integer hash field, defaulting to 0
func hashInt(hash map[string]string, field string) int {
	v, err := strconv.Atoi(hash[field])
	if err != nil {
		return 0
	}
	return v
}
