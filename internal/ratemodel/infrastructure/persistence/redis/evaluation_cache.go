package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wyfcoding/ratesanalytics/internal/ratemodel/domain"
)

// EvaluationRedisCache 基于 Redis 的最新评估结果读模型
type EvaluationRedisCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewEvaluationRedisCache 创建评估结果缓存
func NewEvaluationRedisCache(client redis.UniversalClient) *EvaluationRedisCache {
	return &EvaluationRedisCache{
		client: client,
		prefix: "ratemodel:evaluation:latest:",
		ttl:    24 * time.Hour,
	}
}

func (c *EvaluationRedisCache) GetLatest(ctx context.Context, scenarioID string) (*domain.Evaluation, error) {
	if scenarioID == "" {
		return nil, nil
	}
	data, err := c.client.Get(ctx, c.prefix+scenarioID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get evaluation from redis: %w", err)
	}
	var evaluation domain.Evaluation
	if err := json.Unmarshal(data, &evaluation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal evaluation: %w", err)
	}
	return &evaluation, nil
}

func (c *EvaluationRedisCache) SetLatest(ctx context.Context, evaluation *domain.Evaluation) error {
	if evaluation == nil || evaluation.ScenarioID == "" {
		return nil
	}
	data, err := json.Marshal(evaluation)
	if err != nil {
		return fmt.Errorf("failed to marshal evaluation: %w", err)
	}
	return c.client.Set(ctx, c.prefix+evaluation.ScenarioID, data, c.ttl).Err()
}

func (c *EvaluationRedisCache) Invalidate(ctx context.Context, scenarioID string) error {
	if scenarioID == "" {
		return nil
	}
	return c.client.Del(ctx, c.prefix+scenarioID).Err()
}
