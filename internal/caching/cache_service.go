package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"maintdesk/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "maintdesk:"
	scanBatch = 100
)

type CacheService interface {
	// Holiday caching, one entry per calendar year
	GetHolidays(ctx context.Context, year int) ([]*models.Holiday, error)
	SetHolidays(ctx context.Context, year int, holidays []*models.Holiday, ttl time.Duration) error
	InvalidateHolidays(ctx context.Context, years ...int) error

	// Dashboard caching
	GetDashboard(ctx context.Context) (*models.DashboardStats, error)
	SetDashboard(ctx context.Context, stats *models.DashboardStats, ttl time.Duration) error
	InvalidateDashboard(ctx context.Context) error

	// Login throttling
	LoginFailures(ctx context.Context, username string) (int, error)
	RecordLoginFailure(ctx context.Context, username string, window time.Duration) (int, error)
	ResetLoginFailures(ctx context.Context, username string) error

	InvalidateAllCache(ctx context.Context) error
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

// normalizeAddr strips a redis:// or rediss:// scheme so the value can be used as host:port
func normalizeAddr(addr string) string {
	for _, scheme := range []string{"redis://", "rediss://"} {
		if strings.HasPrefix(addr, scheme) {
			return strings.TrimSuffix(strings.TrimPrefix(addr, scheme), "/")
		}
	}
	return addr
}

func key(parts ...any) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = fmt.Sprint(p)
	}
	return keyPrefix + strings.Join(s, ":")
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := normalizeAddr(addr)
	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	} else {
		log.Printf("Redis connection established (%s)", parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) getJSON(ctx context.Context, k string, dest any) (bool, error) {
	data, err := r.client.Get(ctx, k).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil // cache miss
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) setJSON(ctx context.Context, k string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, k, data, ttl).Err()
}

func (r *redisCacheService) GetHolidays(ctx context.Context, year int) ([]*models.Holiday, error) {
	var holidays []*models.Holiday
	found, err := r.getJSON(ctx, key("holidays", year), &holidays)
	if err != nil || !found {
		return nil, err
	}
	if holidays == nil {
		holidays = []*models.Holiday{}
	}
	return holidays, nil
}

func (r *redisCacheService) SetHolidays(ctx context.Context, year int, holidays []*models.Holiday, ttl time.Duration) error {
	if holidays == nil {
		holidays = []*models.Holiday{}
	}
	return r.setJSON(ctx, key("holidays", year), holidays, ttl)
}

func (r *redisCacheService) InvalidateHolidays(ctx context.Context, years ...int) error {
	if len(years) == 0 {
		return nil
	}
	keys := make([]string, len(years))
	for i, y := range years {
		keys[i] = key("holidays", y)
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *redisCacheService) GetDashboard(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	found, err := r.getJSON(ctx, key("dashboard"), &stats)
	if err != nil || !found {
		return nil, err
	}
	return &stats, nil
}

func (r *redisCacheService) SetDashboard(ctx context.Context, stats *models.DashboardStats, ttl time.Duration) error {
	return r.setJSON(ctx, key("dashboard"), stats, ttl)
}

func (r *redisCacheService) InvalidateDashboard(ctx context.Context) error {
	return r.client.Del(ctx, key("dashboard")).Err()
}

func (r *redisCacheService) LoginFailures(ctx context.Context, username string) (int, error) {
	n, err := r.client.Get(ctx, key("login", strings.ToLower(username))).Int()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}

// RecordLoginFailure increments the failure counter; the window starts at the first failure
func (r *redisCacheService) RecordLoginFailure(ctx context.Context, username string, window time.Duration) (int, error) {
	cacheKey := key("login", strings.ToLower(username))
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		r.client.Expire(ctx, cacheKey, window)
	}
	return int(count), nil
}

func (r *redisCacheService) ResetLoginFailures(ctx context.Context, username string) error {
	return r.client.Del(ctx, key("login", strings.ToLower(username))).Err()
}

// InvalidateAllCache drops every key under the service prefix, walking the
// keyspace with SCAN in batches
func (r *redisCacheService) InvalidateAllCache(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, keyPrefix+"*", scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
