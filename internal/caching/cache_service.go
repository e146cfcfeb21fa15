package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"motocase/internal/models"
)

type CacheService interface {
	// First-login sessions: the possession-based signal for the relaxed
	// password-change path. Keyed by an opaque token, value is the user id.
	SetFirstLoginSession(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error
	GetFirstLoginSession(ctx context.Context, token string) (uuid.UUID, error)
	DeleteFirstLoginSession(ctx context.Context, token string) error

	// Workspace caching
	GetWorkspace(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error)
	SetWorkspace(ctx context.Context, workspace *models.Workspace, ttl time.Duration) error
	DeleteWorkspace(ctx context.Context, workspaceID uuid.UUID) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis:// and rediss:// style addresses as well as host:port
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Warn().Err(pingErr).Str("addr", parsedAddr).Msg("redis ping failed on initialization")
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) SetFirstLoginSession(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	key := fmt.Sprintf("motocase:firstlogin:%s", token)
	return r.client.Set(ctx, key, userID.String(), ttl).Err()
}

func (r *redisCacheService) GetFirstLoginSession(ctx context.Context, token string) (uuid.UUID, error) {
	key := fmt.Sprintf("motocase:firstlogin:%s", token)
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return uuid.Nil, nil // no session
		}
		return uuid.Nil, err
	}
	return uuid.Parse(val)
}

func (r *redisCacheService) DeleteFirstLoginSession(ctx context.Context, token string) error {
	key := fmt.Sprintf("motocase:firstlogin:%s", token)
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetWorkspace(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error) {
	key := fmt.Sprintf("motocase:workspace:%s", workspaceID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var workspace models.Workspace
	if err := json.Unmarshal(data, &workspace); err != nil {
		return nil, err
	}
	return &workspace, nil
}

func (r *redisCacheService) SetWorkspace(ctx context.Context, workspace *models.Workspace, ttl time.Duration) error {
	key := fmt.Sprintf("motocase:workspace:%s", workspace.ID.String())
	data, err := json.Marshal(workspace)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	key := fmt.Sprintf("motocase:workspace:%s", workspaceID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("motocase:ratelimit:%s", key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return true, err
	}

	// Set expiry on first request
	if count == 1 {
		r.client.Expire(ctx, cacheKey, window)
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
