package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
)

const defaultPrefix = "playoffs"

// Options configures key naming and expiry.
type Options struct {
	Prefix string
	TTL    time.Duration
}

// Store keeps one JSON document per season in redis.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New wraps an existing client.
func New(client *redis.Client, opts Options) *Store {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{client: client, prefix: prefix, ttl: opts.TTL}
}

// Dial connects to addr and verifies the connection.
func Dial(ctx context.Context, addr, password string, db int, opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return New(client, opts), nil
}

// SeasonKey returns the key holding a season's records.
func (s *Store) SeasonKey(season int) string {
	return s.prefix + ":season:" + strconv.Itoa(season)
}

// CombinedKey returns the key holding the multi-season collection.
func (s *Store) CombinedKey() string {
	return s.prefix + ":combined"
}

// Write replaces the season's document.
func (s *Store) Write(ctx context.Context, season int, records []playoffs.PlayerSeasonRecord) error {
	if records == nil {
		records = []playoffs.PlayerSeasonRecord{}
	}
	data, err := json.Marshal(playoffs.SeasonRecords{Season: season, Records: records})
	if err != nil {
		return fmt.Errorf("marshal season %d: %w", season, err)
	}
	return s.client.Set(ctx, s.SeasonKey(season), data, s.ttl).Err()
}

// ReadAll fetches every requested season in one round trip.
func (s *Store) ReadAll(ctx context.Context, seasons []int) (map[int][]playoffs.PlayerSeasonRecord, error) {
	out := make(map[int][]playoffs.PlayerSeasonRecord, len(seasons))
	if len(seasons) == 0 {
		return out, nil
	}
	keys := make([]string, len(seasons))
	for i, season := range seasons {
		keys[i] = s.SeasonKey(season)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget seasons: %w", err)
	}
	for i, v := range values {
		if v == nil {
			continue
		}
		str, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("season %d: unexpected value type %T", seasons[i], v)
		}
		var payload playoffs.SeasonRecords
		if err := json.Unmarshal([]byte(str), &payload); err != nil {
			return nil, fmt.Errorf("unmarshal season %d: %w", seasons[i], err)
		}
		if payload.Records == nil {
			payload.Records = []playoffs.PlayerSeasonRecord{}
		}
		out[seasons[i]] = payload.Records
	}
	return out, nil
}

// WriteCombined replaces the combined document.
func (s *Store) WriteCombined(ctx context.Context, records []playoffs.PlayerSeasonRecord) error {
	if records == nil {
		records = []playoffs.PlayerSeasonRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal combined: %w", err)
	}
	return s.client.Set(ctx, s.CombinedKey(), data, s.ttl).Err()
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
