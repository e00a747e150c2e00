// Package domain 短期利率模型服务仓储接口
package domain

import "context"

type ScenarioRepository interface {
	Save(ctx context.Context, scenario *Scenario) error
	GetByID(ctx context.Context, scenarioID string) (*Scenario, error)
	List(ctx context.Context, status *ScenarioStatus, limit, offset int) ([]*Scenario, int64, error)
}

type EvaluationRepository interface {
	Save(ctx context.Context, evaluation *Evaluation) error
	GetByID(ctx context.Context, evaluationID string) (*Evaluation, error)
	ListByScenario(ctx context.Context, scenarioID string, limit, offset int) ([]*Evaluation, int64, error)
	LatestByScenario(ctx context.Context, scenarioID string) (*Evaluation, error)
}
