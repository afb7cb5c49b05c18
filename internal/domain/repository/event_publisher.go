package repository

import (
	"context"

	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
)

// EventPublisher 도메인 이벤트 발행. 발행 실패는 구현체가 기록하며 호출자에게 전파되지 않습니다.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.Event)
}
