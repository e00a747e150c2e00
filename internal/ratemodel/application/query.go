// Package application 短期利率模型查询服务
package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/wyfcoding/ratesanalytics/internal/ratemodel/domain"
)

// EvaluationCache 最新评估结果读模型（Redis 实现见 infrastructure）
type EvaluationCache interface {
	GetLatest(ctx context.Context, scenarioID string) (*domain.Evaluation, error)
	SetLatest(ctx context.Context, evaluation *domain.Evaluation) error
	Invalidate(ctx context.Context, scenarioID string) error
}

// QueryService 情景查询服务
type QueryService struct {
	scenarioRepo   domain.ScenarioRepository
	evaluationRepo domain.EvaluationRepository
	cache          EvaluationCache
	logger         *slog.Logger
}

// NewQueryService 创建查询服务
func NewQueryService(
	scenarioRepo domain.ScenarioRepository,
	evaluationRepo domain.EvaluationRepository,
	cache EvaluationCache,
	logger *slog.Logger,
) *QueryService {
	return &QueryService{
		scenarioRepo:   scenarioRepo,
		evaluationRepo: evaluationRepo,
		cache:          cache,
		logger:         logger,
	}
}

// ScenarioDTO 情景 DTO
type ScenarioDTO struct {
	ScenarioID string
	Name       string
	Status     domain.ScenarioStatus
	Gamma      float64
	RBar       float64
	R0         float64
	Sigma      float64
	UpdatedAt  time.Time
}

// EvaluationDTO 评估记录 DTO
type EvaluationDTO struct {
	EvaluationID string
	ScenarioID   string
	Horizon      float64
	Mean         float64
	Variance     float64
	StdDev       float64
	ProbNegative float64
	CreatedAt    time.Time
}

func toScenarioDTO(s *domain.Scenario) *ScenarioDTO {
	p := s.Params()
	return &ScenarioDTO{
		ScenarioID: s.ScenarioID,
		Name:       s.Name,
		Status:     s.Status,
		Gamma:      p.Gamma,
		RBar:       p.RBar,
		R0:         p.R0,
		Sigma:      p.Sigma,
		UpdatedAt:  s.UpdatedAt,
	}
}

func toEvaluationDTO(e *domain.Evaluation) *EvaluationDTO {
	horizon, _ := e.Horizon.Float64()
	mean, _ := e.Mean.Float64()
	variance, _ := e.Variance.Float64()
	stdDev, _ := e.StdDev.Float64()
	probNegative, _ := e.ProbNegative.Float64()
	return &EvaluationDTO{
		EvaluationID: e.EvaluationID,
		ScenarioID:   e.ScenarioID,
		Horizon:      horizon,
		Mean:         mean,
		Variance:     variance,
		StdDev:       stdDev,
		ProbNegative: probNegative,
		CreatedAt:    e.CreatedAt,
	}
}

// GetScenario 获取情景
func (s *QueryService) GetScenario(ctx context.Context, scenarioID string) (*ScenarioDTO, error) {
	scenario, err := s.scenarioRepo.GetByID(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	return toScenarioDTO(scenario), nil
}

// ListScenarios 分页获取情景列表
func (s *QueryService) ListScenarios(ctx context.Context, status *domain.ScenarioStatus, page, pageSize int) ([]*ScenarioDTO, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	scenarios, total, err := s.scenarioRepo.List(ctx, status, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]*ScenarioDTO, 0, len(scenarios))
	for _, sc := range scenarios {
		dtos = append(dtos, toScenarioDTO(sc))
	}
	return dtos, total, nil
}

// GetEvaluation 获取单条评估记录
func (s *QueryService) GetEvaluation(ctx context.Context, evaluationID string) (*EvaluationDTO, error) {
	evaluation, err := s.evaluationRepo.GetByID(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	return toEvaluationDTO(evaluation), nil
}

// ListEvaluations 分页获取情景的历史评估记录
func (s *QueryService) ListEvaluations(ctx context.Context, scenarioID string, page, pageSize int) ([]*EvaluationDTO, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	evaluations, total, err := s.evaluationRepo.ListByScenario(ctx, scenarioID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]*EvaluationDTO, 0, len(evaluations))
	for _, e := range evaluations {
		dtos = append(dtos, toEvaluationDTO(e))
	}
	return dtos, total, nil
}

// LatestEvaluation 获取情景的最新评估，优先读 Redis 读模型
func (s *QueryService) LatestEvaluation(ctx context.Context, scenarioID string) (*EvaluationDTO, error) {
	if s.cache != nil {
		cached, err := s.cache.GetLatest(ctx, scenarioID)
		if err != nil {
			s.logger.WarnContext(ctx, "evaluation cache read failed", "scenario_id", scenarioID, "error", err)
		} else if cached != nil {
			return toEvaluationDTO(cached), nil
		}
	}

	evaluation, err := s.evaluationRepo.LatestByScenario(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	return toEvaluationDTO(evaluation), nil
}

// Distribution 无状态评估：直接对给定参数计算 r_t 的分布特征，不持久化
func (s *QueryService) Distribution(ctx context.Context, params domain.VasicekParams, horizon float64) (*domain.RateDistribution, error) {
	return domain.DistributionAt(params, horizon)
}
