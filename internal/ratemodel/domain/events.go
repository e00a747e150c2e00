// Package domain 短期利率模型服务领域事件
package domain

import "time"

type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

const (
	ScenarioCreatedEventType   = "ratemodel.scenario_created"
	ScenarioEvaluatedEventType = "ratemodel.scenario_evaluated"
	ScenarioArchivedEventType  = "ratemodel.scenario_archived"
)

// ScenarioCreatedEvent 情景创建事件
type ScenarioCreatedEvent struct {
	ScenarioID string    `json:"scenario_id"`
	Name       string    `json:"name"`
	Gamma      float64   `json:"gamma"`
	RBar       float64   `json:"r_bar"`
	R0         float64   `json:"r_0"`
	Sigma      float64   `json:"sigma"`
	Timestamp  time.Time `json:"timestamp"`
}

func (e *ScenarioCreatedEvent) EventName() string     { return ScenarioCreatedEventType }
func (e *ScenarioCreatedEvent) OccurredAt() time.Time { return e.Timestamp }

// ScenarioEvaluatedEvent 情景评估事件
type ScenarioEvaluatedEvent struct {
	ScenarioID   string    `json:"scenario_id"`
	EvaluationID string    `json:"evaluation_id"`
	Horizon      float64   `json:"horizon"`
	Mean         float64   `json:"mean"`
	Variance     float64   `json:"variance"`
	ProbNegative float64   `json:"prob_negative"`
	Timestamp    time.Time `json:"timestamp"`
}

func (e *ScenarioEvaluatedEvent) EventName() string     { return ScenarioEvaluatedEventType }
func (e *ScenarioEvaluatedEvent) OccurredAt() time.Time { return e.Timestamp }

// ScenarioArchivedEvent 情景归档事件
type ScenarioArchivedEvent struct {
	ScenarioID string    `json:"scenario_id"`
	Timestamp  time.Time `json:"timestamp"`
}

func (e *ScenarioArchivedEvent) EventName() string     { return ScenarioArchivedEventType }
func (e *ScenarioArchivedEvent) OccurredAt() time.Time { return e.Timestamp }
