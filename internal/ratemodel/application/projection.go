// Package application 评估结果读模型投影服务
package application

import (
	"context"
	"log/slog"

	"github.com/wyfcoding/ratesanalytics/internal/ratemodel/domain"
)

// ProjectionService 消费领域事件，把最新评估结果投影到 Redis 读模型
type ProjectionService struct {
	evaluationRepo domain.EvaluationRepository
	cache          EvaluationCache
	logger         *slog.Logger
}

// NewProjectionService 创建投影服务
func NewProjectionService(
	evaluationRepo domain.EvaluationRepository,
	cache EvaluationCache,
	logger *slog.Logger,
) *ProjectionService {
	return &ProjectionService{
		evaluationRepo: evaluationRepo,
		cache:          cache,
		logger:         logger,
	}
}

// RefreshLatest 从主存储回源并刷新情景的最新评估缓存
func (s *ProjectionService) RefreshLatest(ctx context.Context, scenarioID string) error {
	evaluation, err := s.evaluationRepo.LatestByScenario(ctx, scenarioID)
	if err != nil {
		return err
	}
	if err := s.cache.SetLatest(ctx, evaluation); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "evaluation projection refreshed", "scenario_id", scenarioID)
	return nil
}

// InvalidateScenario 情景归档后失效其缓存
func (s *ProjectionService) InvalidateScenario(ctx context.Context, scenarioID string) error {
	return s.cache.Invalidate(ctx, scenarioID)
}
