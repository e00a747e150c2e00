// Package domain 利率情景聚合根与评估记录实体
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrScenarioNotActive 情景非活跃状态，不可评估
	ErrScenarioNotActive = errors.New("scenario is not active")
	// ErrScenarioArchived 情景已归档
	ErrScenarioArchived = errors.New("scenario already archived")
)

// ScenarioStatus 情景状态
type ScenarioStatus int8

const (
	ScenarioStatusActive   ScenarioStatus = 1 // 正常
	ScenarioStatusArchived ScenarioStatus = 2 // 已归档
)

// Scenario 利率情景聚合根
// 持久化一组命名的 Vasicek 模型参数，评估在聚合内完成以保证参数与结果一致。
type Scenario struct {
	gorm.Model
	ScenarioID string         `gorm:"column:scenario_id;type:varchar(32);unique_index;not null"`
	Name       string         `gorm:"column:name;type:varchar(64);not null"`
	Status     ScenarioStatus `gorm:"column:status;type:tinyint;not null;default:1"`

	Gamma decimal.Decimal `gorm:"column:gamma;type:decimal(20,10);not null"` // 均值回归速度
	RBar  decimal.Decimal `gorm:"column:r_bar;type:decimal(20,10);not null"` // 长期均值利率
	R0    decimal.Decimal `gorm:"column:r_0;type:decimal(20,10);not null"`   // 初始短期利率
	Sigma decimal.Decimal `gorm:"column:sigma;type:decimal(20,10);not null"` // 瞬时波动率

	// 领域事件
	domainEvents []DomainEvent `gorm:"-"`
}

// TableName 表名
func (Scenario) TableName() string {
	return "vasicek_scenarios"
}

// Evaluation 评估记录实体
// 记录某一情景在给定期限下的一次闭式解评估结果。
type Evaluation struct {
	gorm.Model
	EvaluationID string          `gorm:"column:evaluation_id;type:varchar(32);unique_index;not null"`
	ScenarioID   string          `gorm:"column:scenario_id;type:varchar(32);index;not null"`
	Horizon      decimal.Decimal `gorm:"column:horizon;type:decimal(20,10);not null"`        // 期限（年）
	Mean         decimal.Decimal `gorm:"column:mean;type:decimal(20,10);not null"`           // 条件期望
	Variance     decimal.Decimal `gorm:"column:variance;type:decimal(20,12);not null"`       // 条件方差
	StdDev       decimal.Decimal `gorm:"column:std_dev;type:decimal(20,12);not null"`        // 条件标准差
	ProbNegative decimal.Decimal `gorm:"column:prob_negative;type:decimal(20,12);not null"`  // 负利率概率
}

// TableName 表名
func (Evaluation) TableName() string {
	return "vasicek_evaluations"
}

// NewScenario 创建利率情景
func NewScenario(scenarioID, name string, params VasicekParams) (*Scenario, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	s := &Scenario{
		ScenarioID: scenarioID,
		Name:       name,
		Status:     ScenarioStatusActive,
		Gamma:      decimal.NewFromFloat(params.Gamma),
		RBar:       decimal.NewFromFloat(params.RBar),
		R0:         decimal.NewFromFloat(params.R0),
		Sigma:      decimal.NewFromFloat(params.Sigma),
	}

	s.addEvent(&ScenarioCreatedEvent{
		ScenarioID: scenarioID,
		Name:       name,
		Gamma:      params.Gamma,
		RBar:       params.RBar,
		R0:         params.R0,
		Sigma:      params.Sigma,
		Timestamp:  time.Now(),
	})

	return s, nil
}

// Params 还原为模型参数值对象
func (s *Scenario) Params() VasicekParams {
	gamma, _ := s.Gamma.Float64()
	rBar, _ := s.RBar.Float64()
	r0, _ := s.R0.Float64()
	sigma, _ := s.Sigma.Float64()
	return VasicekParams{Gamma: gamma, RBar: rBar, R0: r0, Sigma: sigma}
}

// Evaluate 在给定期限下评估情景，返回评估记录实体
func (s *Scenario) Evaluate(evaluationID string, horizon float64) (*Evaluation, error) {
	if s.Status != ScenarioStatusActive {
		return nil, ErrScenarioNotActive
	}

	dist, err := DistributionAt(s.Params(), horizon)
	if err != nil {
		return nil, err
	}

	eval := &Evaluation{
		EvaluationID: evaluationID,
		ScenarioID:   s.ScenarioID,
		Horizon:      decimal.NewFromFloat(dist.Horizon),
		Mean:         decimal.NewFromFloat(dist.Mean),
		Variance:     decimal.NewFromFloat(dist.Variance),
		StdDev:       decimal.NewFromFloat(dist.StdDev),
		ProbNegative: decimal.NewFromFloat(dist.ProbNegative),
	}

	s.addEvent(&ScenarioEvaluatedEvent{
		ScenarioID:   s.ScenarioID,
		EvaluationID: evaluationID,
		Horizon:      dist.Horizon,
		Mean:         dist.Mean,
		Variance:     dist.Variance,
		ProbNegative: dist.ProbNegative,
		Timestamp:    time.Now(),
	})

	return eval, nil
}

// Archive 归档情景
func (s *Scenario) Archive() error {
	if s.Status == ScenarioStatusArchived {
		return ErrScenarioArchived
	}
	s.Status = ScenarioStatusArchived

	s.addEvent(&ScenarioArchivedEvent{
		ScenarioID: s.ScenarioID,
		Timestamp:  time.Now(),
	})
	return nil
}

func (s *Scenario) addEvent(event DomainEvent) {
	s.domainEvents = append(s.domainEvents, event)
}

func (s *Scenario) GetDomainEvents() []DomainEvent {
	return s.domainEvents
}

func (s *Scenario) ClearDomainEvents() {
	s.domainEvents = nil
}
