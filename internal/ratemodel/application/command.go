// Package application 短期利率模型应用层
package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wyfcoding/pkg/messagequeue"
	"github.com/wyfcoding/ratesanalytics/internal/ratemodel/domain"
)

// CommandService 情景命令服务
type CommandService struct {
	scenarioRepo   domain.ScenarioRepository
	evaluationRepo domain.EvaluationRepository
	eventPublisher messagequeue.EventPublisher
	logger         *slog.Logger
}

// NewCommandService 创建命令服务
func NewCommandService(
	scenarioRepo domain.ScenarioRepository,
	evaluationRepo domain.EvaluationRepository,
	eventPublisher messagequeue.EventPublisher,
	logger *slog.Logger,
) *CommandService {
	return &CommandService{
		scenarioRepo:   scenarioRepo,
		evaluationRepo: evaluationRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// CreateScenarioCommand 创建情景命令
type CreateScenarioCommand struct {
	Name   string
	Params domain.VasicekParams
}

// CreateScenario 创建情景
func (s *CommandService) CreateScenario(ctx context.Context, cmd CreateScenarioCommand) (string, error) {
	now := time.Now()
	scenarioID := fmt.Sprintf("VSC%s%04d", now.Format("20060102150405"), now.UnixNano()%10000)

	scenario, err := domain.NewScenario(scenarioID, cmd.Name, cmd.Params)
	if err != nil {
		return "", err
	}

	if err := s.scenarioRepo.Save(ctx, scenario); err != nil {
		return "", err
	}

	s.publishEvents(ctx, scenario.GetDomainEvents())
	scenario.ClearDomainEvents()

	s.logger.InfoContext(ctx, "scenario created", "scenario_id", scenarioID, "name", cmd.Name)
	return scenarioID, nil
}

// EvaluateScenarioCommand 评估情景命令
type EvaluateScenarioCommand struct {
	ScenarioID string
	Horizon    float64 // 期限（年）
}

// EvaluateScenario 在给定期限下评估情景并持久化评估记录
func (s *CommandService) EvaluateScenario(ctx context.Context, cmd EvaluateScenarioCommand) (string, error) {
	scenario, err := s.scenarioRepo.GetByID(ctx, cmd.ScenarioID)
	if err != nil {
		return "", err
	}

	now := time.Now()
	evaluationID := fmt.Sprintf("EVL%s%04d", now.Format("20060102150405"), now.UnixNano()%10000)

	evaluation, err := scenario.Evaluate(evaluationID, cmd.Horizon)
	if err != nil {
		return "", err
	}

	if err := s.evaluationRepo.Save(ctx, evaluation); err != nil {
		return "", err
	}

	s.publishEvents(ctx, scenario.GetDomainEvents())
	scenario.ClearDomainEvents()

	s.logger.InfoContext(ctx, "scenario evaluated",
		"scenario_id", cmd.ScenarioID,
		"evaluation_id", evaluationID,
		"horizon", cmd.Horizon)
	return evaluationID, nil
}

// ArchiveScenario 归档情景
func (s *CommandService) ArchiveScenario(ctx context.Context, scenarioID string) error {
	scenario, err := s.scenarioRepo.GetByID(ctx, scenarioID)
	if err != nil {
		return err
	}

	if err := scenario.Archive(); err != nil {
		return err
	}

	if err := s.scenarioRepo.Save(ctx, scenario); err != nil {
		return err
	}

	s.publishEvents(ctx, scenario.GetDomainEvents())
	scenario.ClearDomainEvents()

	s.logger.InfoContext(ctx, "scenario archived", "scenario_id", scenarioID)
	return nil
}

func (s *CommandService) publishEvents(ctx context.Context, events []domain.DomainEvent) {
	for _, event := range events {
		if err := s.eventPublisher.Publish(ctx, event.EventName(), "", event); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish event",
				"event", event.EventName(),
				"error", err)
		}
	}
}
