// api/db/redis.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/orbitpm/api/logging"
	"github.com/orbitpm/api/model"
)

var RedisClient *redis.Client

func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
		PoolTimeout:  viper.GetDuration("redis.poolTimeout"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

func CachePrincipal(ctx context.Context, principal *model.Principal) error {
	principalJSON, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("failed to marshal principal: %w", err)
	}

	key := fmt.Sprintf("principal:%s", principal.ID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, principalJSON, defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache principal: %w", err)
	}

	logger.Debug("Principal cached successfully", zap.String("principalID", principal.ID))
	return nil
}

func GetCachedPrincipal(ctx context.Context, principalID string) (*model.Principal, error) {
	key := fmt.Sprintf("principal:%s", principalID)
	principalJSON, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Principal not found in cache", zap.String("principalID", principalID))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get principal from cache: %w", err)
	}

	var principal model.Principal
	err = json.Unmarshal([]byte(principalJSON), &principal)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal principal: %w", err)
	}

	logger.Debug("Principal retrieved from cache", zap.String("principalID", principalID))
	return &principal, nil
}

func DeleteCachedPrincipal(ctx context.Context, principalID string) error {
	key := fmt.Sprintf("principal:%s", principalID)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete principal from cache: %w", err)
	}
	logger.Debug("Principal deleted from cache", zap.String("principalID", principalID))
	return nil
}

func CacheWorkspace(ctx context.Context, workspace *model.Workspace) error {
	workspaceJSON, err := json.Marshal(workspace)
	if err != nil {
		return fmt.Errorf("failed to marshal workspace: %w", err)
	}

	key := fmt.Sprintf("workspace:%s", workspace.ID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, workspaceJSON, defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache workspace: %w", err)
	}

	logger.Debug("Workspace cached successfully", zap.String("workspaceID", workspace.ID))
	return nil
}

func GetCachedWorkspace(ctx context.Context, workspaceID string) (*model.Workspace, error) {
	key := fmt.Sprintf("workspace:%s", workspaceID)
	workspaceJSON, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Workspace not found in cache", zap.String("workspaceID", workspaceID))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get workspace from cache: %w", err)
	}

	var workspace model.Workspace
	err = json.Unmarshal([]byte(workspaceJSON), &workspace)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal workspace: %w", err)
	}

	logger.Debug("Workspace retrieved from cache", zap.String("workspaceID", workspaceID))
	return &workspace, nil
}

func DeleteCachedWorkspace(ctx context.Context, workspaceID string) error {
	key := fmt.Sprintf("workspace:%s", workspaceID)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete workspace from cache: %w", err)
	}
	logger.Debug("Workspace deleted from cache", zap.String("workspaceID", workspaceID))
	return nil
}

func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	pipe := RedisClient.Pipeline()
	now := time.Now().UnixNano()
	key = fmt.Sprintf("ratelimit:%s", key)

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-(per.Nanoseconds())))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	count := cmds[2].(*redis.IntCmd).Val()
	allowed := count <= int64(limit)
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Int("limit", limit),
		zap.Bool("allowed", allowed))
	return allowed, nil
}
