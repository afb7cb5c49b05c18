package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
	domainerrors "github.com/wekeepgrowing/student-activity/internal/domain/errors"
	"github.com/wekeepgrowing/student-activity/internal/domain/repository"
	"github.com/wekeepgrowing/student-activity/internal/observability"
	"github.com/wekeepgrowing/student-activity/internal/usecase/dto"
	"github.com/wekeepgrowing/student-activity/internal/usecase/interfaces"
	"github.com/wekeepgrowing/student-activity/pkg/errors"
)

const maxTitleLength = 255

// ActivityUseCaseImpl 활동 유스케이스 구현체
type ActivityUseCaseImpl struct {
	logger     *zap.Logger
	students   repository.StudentRepository
	activities repository.ActivityRepository
	events     repository.EventPublisher
	loc        *time.Location
}

// NewActivityUseCase 활동 유스케이스 생성. loc은 날짜의 달력 일자를 정하는 시간대입니다.
func NewActivityUseCase(
	logger *zap.Logger,
	students repository.StudentRepository,
	activities repository.ActivityRepository,
	events repository.EventPublisher,
	loc *time.Location,
) *ActivityUseCaseImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &ActivityUseCaseImpl{
		logger:     logger,
		students:   students,
		activities: activities,
		events:     events,
		loc:        loc,
	}
}

var _ interfaces.ActivityUseCase = (*ActivityUseCaseImpl)(nil)

// activityFields 검증을 통과한 활동 입력
type activityFields struct {
	studentID string
	title     string
	detail    *string
	date      time.Time
}

func (uc *ActivityUseCaseImpl) parseFields(studentID, title string, detail *string, date string) (activityFields, error) {
	f := activityFields{
		studentID: strings.TrimSpace(studentID),
		title:     entity.NormalizeTitle(title),
		detail:    normalizeDetail(detail),
	}
	if f.title == "" {
		return f, domainerrors.InvalidInput("title is required")
	}
	if utf8.RuneCountInString(f.title) > maxTitleLength {
		return f, domainerrors.InvalidInput("title must be at most %d characters", maxTitleLength)
	}

	parsed, err := ParseActivityDate(date, uc.loc)
	if err != nil {
		return f, err
	}
	f.date = parsed
	return f, nil
}

func normalizeDetail(detail *string) *string {
	if detail == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*detail)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// UpsertActivity 같은 학생, 제목, 날짜의 활동이 있으면 재사용합니다
func (uc *ActivityUseCaseImpl) UpsertActivity(ctx context.Context, input dto.UpsertActivityInput) (*entity.Activity, error) {
	fields, err := uc.parseFields(input.StudentID, input.Title, input.Detail, input.Date)
	if err != nil {
		return nil, err
	}
	if err := uc.requireStudent(ctx, fields.studentID); err != nil {
		return nil, err
	}

	activity, created, err := uc.upsert(ctx, fields)
	if err != nil {
		return nil, err
	}
	if created {
		observability.RecordActivityCreated()
		uc.events.Publish(ctx, entity.Event{Type: entity.EventActivityCreated, ActivityID: activity.ID, StudentID: activity.StudentID})
	}
	return activity, nil
}

func (uc *ActivityUseCaseImpl) requireStudent(ctx context.Context, studentID string) error {
	if studentID == "" {
		return domainerrors.InvalidInput("ownerId is required")
	}
	student, err := uc.students.FindByID(ctx, studentID)
	if err != nil {
		return errors.Wrap(err, "failed to load student")
	}
	if student == nil {
		return domainerrors.StudentNotFound(studentID)
	}
	return nil
}

// upsert 조회 후 없으면 ON CONFLICT DO NOTHING으로 삽입합니다.
// 삽입이 무시되었다면 동시에 다른 요청이 만든 행을 다시 읽습니다.
func (uc *ActivityUseCaseImpl) upsert(ctx context.Context, f activityFields) (*entity.Activity, bool, error) {
	start, end := entity.DayWindow(f.date, uc.loc)

	existing, err := uc.activities.FindByOwnerTitleWithin(ctx, f.studentID, f.title, start, end)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to look up activity")
	}
	if existing != nil {
		return existing, false, nil
	}

	candidate := entity.NewActivity(f.studentID, f.title, f.detail, f.date, uc.loc)
	created, err := uc.activities.CreateIfAbsent(ctx, candidate)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to create activity")
	}
	if created {
		uc.logger.Info("활동 생성",
			zap.String("activity_id", candidate.ID),
			zap.String("student_id", candidate.StudentID),
			zap.String("title", candidate.Title),
		)
		return candidate, true, nil
	}

	winner, err := uc.activities.FindByOwnerTitleWithin(ctx, f.studentID, f.title, start, end)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to re-read activity")
	}
	if winner == nil {
		return nil, false, errors.Wrap(fmt.Errorf("insert of %s/%q ignored but no row found", f.studentID, f.title), "failed to create activity")
	}
	return winner, false, nil
}

// UpdateActivity 제목과 날짜를 덮어쓰고 detail은 요청에 있을 때만 바꿉니다. 키가 다른 활동과 겹치면 Conflict
func (uc *ActivityUseCaseImpl) UpdateActivity(ctx context.Context, input dto.UpdateActivityInput) (*entity.Activity, error) {
	activityID := strings.TrimSpace(input.ActivityID)
	if activityID == "" {
		return nil, domainerrors.InvalidInput("activity id is required")
	}
	fields, err := uc.parseFields("", input.Title, nil, input.Date)
	if err != nil {
		return nil, err
	}

	activity, err := uc.activities.FindByID(ctx, activityID, false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load activity")
	}
	if activity == nil {
		return nil, domainerrors.ActivityNotFound(activityID)
	}

	// detail 키가 없으면 기존 값 유지, 있으면 받은 그대로 저장
	detail := activity.Detail
	if input.Detail.Set {
		detail = input.Detail.Value
	}
	activity.Reschedule(fields.title, detail, fields.date, uc.loc)
	if err := uc.activities.Update(ctx, activity); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateKey) {
			return nil, domainerrors.DuplicateActivity(activity.Title)
		}
		return nil, errors.Wrap(err, "failed to update activity")
	}
	return activity, nil
}

// GetActivity 사진 포함 단건 조회
func (uc *ActivityUseCaseImpl) GetActivity(ctx context.Context, id string) (*entity.Activity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domainerrors.InvalidInput("activity id is required")
	}
	activity, err := uc.activities.FindByID(ctx, id, true)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load activity")
	}
	if activity == nil {
		return nil, domainerrors.ActivityNotFound(id)
	}
	return activity, nil
}

func (uc *ActivityUseCaseImpl) ListByStudent(ctx context.Context, studentID string) ([]*entity.Activity, error) {
	activities, err := uc.activities.ListByStudent(ctx, strings.TrimSpace(studentID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list activities")
	}
	return activities, nil
}

func (uc *ActivityUseCaseImpl) ListAll(ctx context.Context) ([]*entity.Activity, error) {
	activities, err := uc.activities.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list activities")
	}
	return activities, nil
}

// ListTemplates 제목이 겹치지 않는 템플릿 목록. ID는 "central-<index>"
func (uc *ActivityUseCaseImpl) ListTemplates(ctx context.Context) ([]*entity.ActivityTemplate, error) {
	latest, err := uc.activities.ListLatestPerTitle(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list activity templates")
	}

	templates := make([]*entity.ActivityTemplate, 0, len(latest))
	seen := make(map[string]struct{}, len(latest))
	for _, a := range latest {
		if _, dup := seen[a.Title]; dup {
			continue
		}
		seen[a.Title] = struct{}{}
		templates = append(templates, &entity.ActivityTemplate{
			ID:     fmt.Sprintf("central-%d", len(templates)),
			Title:  a.Title,
			Detail: a.Detail,
			Date:   a.Date,
		})
	}
	return templates, nil
}
