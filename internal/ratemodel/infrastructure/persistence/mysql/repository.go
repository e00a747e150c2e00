// 生成摘要：实现短期利率模型服务的 MySQL 仓储层，基于 GORM。
package mysql

import (
	"context"
	"fmt"

	"github.com/wyfcoding/ratesanalytics/internal/ratemodel/domain"
	"gorm.io/gorm"
)

// scenarioRepository GORM 情景仓储实现
type scenarioRepository struct {
	db *gorm.DB
}

// NewScenarioRepository 创建情景仓储
func NewScenarioRepository(db *gorm.DB) domain.ScenarioRepository {
	return &scenarioRepository{db: db}
}

// Save 保存情景聚合根
func (r *scenarioRepository) Save(ctx context.Context, scenario *domain.Scenario) error {
	return r.db.WithContext(ctx).Save(scenario).Error
}

// GetByID 根据业务 ID 获取情景
func (r *scenarioRepository) GetByID(ctx context.Context, scenarioID string) (*domain.Scenario, error) {
	var scenario domain.Scenario
	if err := r.db.WithContext(ctx).Where("scenario_id = ?", scenarioID).First(&scenario).Error; err != nil {
		return nil, fmt.Errorf("scenario not found: %w", err)
	}
	return &scenario, nil
}

// List 分页获取情景列表
func (r *scenarioRepository) List(ctx context.Context, status *domain.ScenarioStatus, limit, offset int) ([]*domain.Scenario, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Scenario{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var scenarios []*domain.Scenario
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&scenarios).Error; err != nil {
		return nil, 0, err
	}
	return scenarios, total, nil
}

// evaluationRepository GORM 评估记录仓储实现
type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository 创建评估记录仓储
func NewEvaluationRepository(db *gorm.DB) domain.EvaluationRepository {
	return &evaluationRepository{db: db}
}

// Save 保存评估记录
func (r *evaluationRepository) Save(ctx context.Context, evaluation *domain.Evaluation) error {
	return r.db.WithContext(ctx).Create(evaluation).Error
}

// GetByID 根据业务 ID 获取评估记录
func (r *evaluationRepository) GetByID(ctx context.Context, evaluationID string) (*domain.Evaluation, error) {
	var evaluation domain.Evaluation
	if err := r.db.WithContext(ctx).Where("evaluation_id = ?", evaluationID).First(&evaluation).Error; err != nil {
		return nil, fmt.Errorf("evaluation not found: %w", err)
	}
	return &evaluation, nil
}

// ListByScenario 分页获取情景的评估记录
func (r *evaluationRepository) ListByScenario(ctx context.Context, scenarioID string, limit, offset int) ([]*domain.Evaluation, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Evaluation{}).Where("scenario_id = ?", scenarioID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var evaluations []*domain.Evaluation
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&evaluations).Error; err != nil {
		return nil, 0, err
	}
	return evaluations, total, nil
}

// LatestByScenario 获取情景的最新评估记录
func (r *evaluationRepository) LatestByScenario(ctx context.Context, scenarioID string) (*domain.Evaluation, error) {
	var evaluation domain.Evaluation
	err := r.db.WithContext(ctx).
		Where("scenario_id = ?", scenarioID).
		Order("created_at DESC").
		First(&evaluation).Error
	if err != nil {
		return nil, fmt.Errorf("evaluation not found: %w", err)
	}
	return &evaluation, nil
}
