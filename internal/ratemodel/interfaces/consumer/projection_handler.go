package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"github.com/wyfcoding/ratesanalytics/internal/ratemodel/application"
	"github.com/wyfcoding/ratesanalytics/internal/ratemodel/domain"
)

// ProjectionHandler 消费情景领域事件，维护评估结果读模型
type ProjectionHandler struct {
	projector *application.ProjectionService
	logger    *slog.Logger
}

func NewProjectionHandler(projector *application.ProjectionService, logger *slog.Logger) *ProjectionHandler {
	return &ProjectionHandler{projector: projector, logger: logger}
}

func (h *ProjectionHandler) Handle(ctx context.Context, msg kafka.Message) error {
	switch msg.Topic {
	case domain.ScenarioEvaluatedEventType:
		var payload struct {
			ScenarioID string `json:"scenario_id"`
		}
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			h.logger.ErrorContext(ctx, "failed to unmarshal scenario evaluated event", "error", err)
			return err
		}
		return h.projector.RefreshLatest(ctx, payload.ScenarioID)
	case domain.ScenarioArchivedEventType:
		var payload struct {
			ScenarioID string `json:"scenario_id"`
		}
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			h.logger.ErrorContext(ctx, "failed to unmarshal scenario archived event", "error", err)
			return err
		}
		return h.projector.InvalidateScenario(ctx, payload.ScenarioID)
	case domain.ScenarioCreatedEventType:
		// 创建时尚无评估记录，读模型无需处理
		return nil
	default:
		h.logger.WarnContext(ctx, "unknown ratemodel event topic", "topic", msg.Topic)
		return nil
	}
}
