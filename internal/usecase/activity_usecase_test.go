package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
	"github.com/wekeepgrowing/student-activity/internal/usecase"
	"github.com/wekeepgrowing/student-activity/internal/usecase/dto"
	"github.com/wekeepgrowing/student-activity/pkg/errors"
)

func newActivityUseCase(f *fixture, loc *time.Location) *usecase.ActivityUseCaseImpl {
	return usecase.NewActivityUseCase(zap.NewNop(), f.students, f.activities, f.events, loc)
}

func strPtr(s string) *string { return &s }

func TestUpsertActivity_SameKeyReturnsSameActivity(t *testing.T) {
	f := newFixture()
	f.events.On("Publish", mock.Anything, eventOfType(entity.EventActivityCreated)).Return().Once()
	uc := newActivityUseCase(f, time.UTC)
	ctx := context.Background()

	first, err := uc.UpsertActivity(ctx, dto.UpsertActivityInput{
		StudentID: "S1",
		Title:     "  Science Fair ",
		Detail:    strPtr("booth #3"),
		Date:      "2024-05-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Science Fair", first.Title)

	second, err := uc.UpsertActivity(ctx, dto.UpsertActivityInput{
		StudentID: "S1",
		Title:     "Science Fair",
		Date:      "2024-05-01T15:30",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.Detail)
	assert.Equal(t, "booth #3", *second.Detail)
	assert.Len(t, f.activities.activities, 1)
	f.events.AssertExpectations(t)
}

func TestUpsertActivity_DecomposedTitleMatchesComposed(t *testing.T) {
	f := newFixture()
	f.allowEvents()
	uc := newActivityUseCase(f, time.UTC)
	ctx := context.Background()

	// macOS 입력기는 한글을 자모 분해형(NFD)으로 보내기도 합니다
	composed := "\uD55C\uAE00\uB0A0"
	decomposed := "\u1112\u1161\u11AB\u1100\u1173\u11AF\u1102\u1161\u11AF"

	first, err := uc.UpsertActivity(ctx, dto.UpsertActivityInput{StudentID: "S1", Title: composed, Date: "2024-10-09"})
	require.NoError(t, err)
	second, err := uc.UpsertActivity(ctx, dto.UpsertActivityInput{StudentID: "S1", Title: decomposed, Date: "2024-10-09"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, composed, second.Title)
	assert.Len(t, f.activities.activities, 1)
}

func TestUpsertActivity_DifferentDaysCreateTwoActivities(t *testing.T) {
	f := newFixture()
	f.allowEvents()
	uc := newActivityUseCase(f, time.UTC)
	ctx := context.Background()

	first, err := uc.UpsertActivity(ctx, dto.UpsertActivityInput{StudentID: "S1", Title: "Choir", Date: "2024-05-01"})
	require.NoError(t, err)
	second, err := uc.UpsertActivity(ctx, dto.UpsertActivityInput{StudentID: "S1", Title: "Choir", Date: "2024-05-02"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, f.activities.activities, 2)
}

func TestUpsertActivity_DayFollowsConfiguredTimezone(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	f := newFixture()
	f.allowEvents()
	uc := newActivityUseCase(f, seoul)
	ctx := context.Background()

	// 2024-04-30T16:00Z 는 서울 기준 5월 1일 01:00
	first, err := uc.UpsertActivity(ctx, dto.UpsertActivityInput{StudentID: "S1", Title: "Choir", Date: "2024-04-30T16:00:00Z"})
	require.NoError(t, err)
	second, err := uc.UpsertActivity(ctx, dto.UpsertActivityInput{StudentID: "S1", Title: "Choir", Date: "2024-05-01"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestUpsertActivity_ConcurrentInsertReturnsWinner(t *testing.T) {
	f := newFixture()
	f.allowEvents()
	uc := newActivityUseCase(f, time.UTC)

	date := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	winner := entity.NewActivity("S1", "Choir", nil, date, time.UTC)
	f.activities.raceWinner = winner

	got, err := uc.UpsertActivity(context.Background(), dto.UpsertActivityInput{StudentID: "S1", Title: "Choir", Date: "2024-05-01"})
	require.NoError(t, err)
	assert.Equal(t, winner.ID, got.ID)
	assert.Len(t, f.activities.activities, 1)
	f.events.AssertNotCalled(t, "Publish", mock.Anything, eventOfType(entity.EventActivityCreated))
}

func TestUpsertActivity_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input dto.UpsertActivityInput
		code  string
	}{
		{"blank title", dto.UpsertActivityInput{StudentID: "S1", Title: "   ", Date: "2024-05-01"}, errors.ErrInvalidArgument},
		{"missing date", dto.UpsertActivityInput{StudentID: "S1", Title: "Choir"}, errors.ErrInvalidArgument},
		{"bad date", dto.UpsertActivityInput{StudentID: "S1", Title: "Choir", Date: "yesterday"}, errors.ErrInvalidArgument},
		{"missing owner", dto.UpsertActivityInput{Title: "Choir", Date: "2024-05-01"}, errors.ErrInvalidArgument},
		{"unknown owner", dto.UpsertActivityInput{StudentID: "S404", Title: "Choir", Date: "2024-05-01"}, errors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			uc := newActivityUseCase(f, time.UTC)

			_, err := uc.UpsertActivity(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
			assert.Empty(t, f.activities.activities)
		})
	}
}

func TestUpdateActivity(t *testing.T) {
	f := newFixture()
	f.allowEvents()
	uc := newActivityUseCase(f, time.UTC)
	ctx := context.Background()

	a, err := uc.UpsertActivity(ctx, dto.UpsertActivityInput{StudentID: "S1", Title: "Choir", Detail: strPtr("alto"), Date: "2024-05-01"})
	require.NoError(t, err)
	_, err = uc.UpsertActivity(ctx, dto.UpsertActivityInput{StudentID: "S1", Title: "Robotics", Date: "2024-05-02"})
	require.NoError(t, err)

	t.Run("absent detail is kept", func(t *testing.T) {
		updated, err := uc.UpdateActivity(ctx, dto.UpdateActivityInput{ActivityID: a.ID, Title: " Choir Concert ", Date: "2024-05-03"})
		require.NoError(t, err)
		assert.Equal(t, a.ID, updated.ID)
		assert.Equal(t, "Choir Concert", updated.Title)
		require.NotNil(t, updated.Detail)
		assert.Equal(t, "alto", *updated.Detail)
		assert.Equal(t, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), updated.Day)
	})

	t.Run("empty detail is stored as given", func(t *testing.T) {
		updated, err := uc.UpdateActivity(ctx, dto.UpdateActivityInput{
			ActivityID: a.ID, Title: "Choir Concert", Date: "2024-05-03",
			Detail: dto.OptionalString{Set: true, Value: strPtr("")},
		})
		require.NoError(t, err)
		require.NotNil(t, updated.Detail)
		assert.Equal(t, "", *updated.Detail)
	})

	t.Run("explicit null clears detail", func(t *testing.T) {
		updated, err := uc.UpdateActivity(ctx, dto.UpdateActivityInput{
			ActivityID: a.ID, Title: "Choir Concert", Date: "2024-05-03",
			Detail: dto.OptionalString{Set: true},
		})
		require.NoError(t, err)
		assert.Nil(t, updated.Detail)
	})

	t.Run("collision is a conflict", func(t *testing.T) {
		_, err := uc.UpdateActivity(ctx, dto.UpdateActivityInput{ActivityID: a.ID, Title: "Robotics", Date: "2024-05-02"})
		require.Error(t, err)
		assert.Equal(t, errors.ErrConflict, errors.CodeOf(err))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := uc.UpdateActivity(ctx, dto.UpdateActivityInput{ActivityID: "missing", Title: "x", Date: "2024-05-02"})
		require.Error(t, err)
		assert.Equal(t, errors.ErrNotFound, errors.CodeOf(err))
	})
}

func TestGetActivity_NotFound(t *testing.T) {
	f := newFixture()
	uc := newActivityUseCase(f, time.UTC)

	_, err := uc.GetActivity(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, errors.ErrNotFound, errors.CodeOf(err))
	assert.Equal(t, "activity nope not found", errors.PublicMessage(err))
}

func TestListTemplates_UniqueTitlesMostRecentFirst(t *testing.T) {
	f := newFixture()
	f.allowEvents()
	uc := newActivityUseCase(f, time.UTC)
	ctx := context.Background()

	inputs := []dto.UpsertActivityInput{
		{StudentID: "S1", Title: "Choir", Detail: strPtr("old"), Date: "2024-03-01"},
		{StudentID: "S2", Title: "Choir", Detail: strPtr("new"), Date: "2024-06-01"},
		{StudentID: "S1", Title: "Robotics", Date: "2024-05-01"},
		{StudentID: "S2", Title: "Robotics", Date: "2024-04-01"},
	}
	for _, in := range inputs {
		_, err := uc.UpsertActivity(ctx, in)
		require.NoError(t, err)
	}

	templates, err := uc.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 2)

	assert.Equal(t, "central-0", templates[0].ID)
	assert.Equal(t, "Choir", templates[0].Title)
	require.NotNil(t, templates[0].Detail)
	assert.Equal(t, "new", *templates[0].Detail)

	assert.Equal(t, "central-1", templates[1].ID)
	assert.Equal(t, "Robotics", templates[1].Title)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), templates[1].Date)
}

func TestListByStudent_IncludesPhotos(t *testing.T) {
	f := newFixture()
	f.allowEvents()
	uc := newActivityUseCase(f, time.UTC)
	ctx := context.Background()

	a, err := uc.UpsertActivity(ctx, dto.UpsertActivityInput{StudentID: "S1", Title: "Choir", Date: "2024-05-01"})
	require.NoError(t, err)
	require.NoError(t, f.photos.CreateBatch(ctx, []*entity.Photo{
		entity.NewPhoto(a.ID, entity.StoredFile{Filename: "1-a.png", URL: "/uploads/1-a.png"}),
	}))

	activities, err := uc.ListByStudent(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, activities, 1)
	require.Len(t, activities[0].Photos, 1)
	assert.Equal(t, "/uploads/1-a.png", activities[0].Photos[0].URL)

	none, err := uc.ListByStudent(ctx, "S2")
	require.NoError(t, err)
	assert.Empty(t, none)
}
