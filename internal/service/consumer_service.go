package service

import (
	"context"
	"encoding/json"

	"ai-market-analysis-be/internal/dto"
	"ai-market-analysis-be/internal/entity"
	"ai-market-analysis-be/internal/pkg/logger"
	"ai-market-analysis-be/internal/repository/specification"
	"ai-market-analysis-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the step auto-save topic: every finished pipeline
// step is written as a step record and folded into the session's partial
// report, so pause/save/crash never loses completed work.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.StepSavedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("StepConsumer", "Failed to unmarshal step message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed, retrying will not help
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.AnalysisSessionRepository().FindOne(ctx, specification.ByID{ID: payload.SessionId})
	if err != nil {
		cs.logger.Error("StepConsumer", "Failed to load session", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}
	if session == nil {
		// Session deleted while the message was in flight.
		msg.Ack()
		return
	}

	record := entity.StepRecord{
		Id:        uuid.New(),
		SessionId: payload.SessionId,
		Step:      payload.Step,
		Name:      payload.Name,
		Category:  payload.Category,
		Payload:   payload.Sections,
	}
	if err := uow.StepRecordRepository().Save(ctx, &record); err != nil {
		cs.logger.Error("StepConsumer", "Failed to save step record", map[string]interface{}{
			"session_id": payload.SessionId,
			"step":       payload.Step,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	session.CurrentStep = payload.Step
	if payload.Step > session.StepsSaved {
		session.StepsSaved = payload.Step
	}
	if err := uow.AnalysisSessionRepository().Update(ctx, session); err != nil {
		cs.logger.Error("StepConsumer", "Failed to update session progress", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	// Fold the step output into the partial report so results are readable
	// for paused and saved sessions too.
	if len(payload.Sections) > 0 {
		report, err := uow.AnalysisReportRepository().FindOne(ctx, specification.BySession{SessionID: payload.SessionId})
		if err != nil {
			msg.Nack()
			return
		}
		if report == nil {
			report = &entity.AnalysisReport{
				Id:        uuid.New(),
				SessionId: payload.SessionId,
				Sections:  make(map[string]interface{}),
			}
		}
		if report.Sections == nil {
			report.Sections = make(map[string]interface{})
		}
		for k, v := range payload.Sections {
			report.Sections[k] = v
		}
		if err := uow.AnalysisReportRepository().Upsert(ctx, report); err != nil {
			cs.logger.Error("StepConsumer", "Failed to upsert partial report", map[string]interface{}{
				"session_id": payload.SessionId,
				"error":      err.Error(),
			})
			msg.Nack()
			return
		}
	}

	cs.logger.Debug("StepConsumer", "Step persisted", map[string]interface{}{
		"session_id": payload.SessionId,
		"step":       payload.Step,
	})
	msg.Ack()
}
