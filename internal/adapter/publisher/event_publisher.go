package publisher

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
	"github.com/wekeepgrowing/student-activity/internal/domain/repository"
	"github.com/wekeepgrowing/student-activity/internal/observability"
	"github.com/wekeepgrowing/student-activity/pkg/messaging"
)

// DefaultChannel 이벤트 채널
const DefaultChannel = "student-activity.events"

type eventData struct {
	ActivityID string   `json:"activityId,omitempty"`
	StudentID  string   `json:"studentId,omitempty"`
	PhotoIDs   []string `json:"photoIds,omitempty"`
}

type EventPublisherImpl struct {
	publisher messaging.Publisher
	channel   string
	logger    *zap.Logger
	timeout   time.Duration
	now       func() time.Time
}

// NewEventPublisher messaging.Publisher 위에서 도메인 이벤트를 JSON Envelope로 발행합니다
func NewEventPublisher(publisher messaging.Publisher, channel string, logger *zap.Logger) repository.EventPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &EventPublisherImpl{
		publisher: publisher,
		channel:   channel,
		logger:    logger,
		timeout:   2 * time.Second,
		now:       time.Now,
	}
}

// Publish 요청이 취소되어도 발행은 짧은 타임아웃 안에서 시도합니다
func (p *EventPublisherImpl) Publish(ctx context.Context, event entity.Event) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	err := p.publisher.Publish(pubCtx, p.channel, messaging.Envelope{
		Type:       event.Type,
		OccurredAt: p.now().UTC(),
		Data: eventData{
			ActivityID: event.ActivityID,
			StudentID:  event.StudentID,
			PhotoIDs:   event.PhotoIDs,
		},
	})
	observability.RecordEventPublished(event.Type, err)
	if err != nil {
		p.logger.Warn("이벤트 발행 실패",
			zap.String("channel", p.channel),
			zap.String("type", event.Type),
			zap.String("activity_id", event.ActivityID),
			zap.Error(err),
		)
	}
}
