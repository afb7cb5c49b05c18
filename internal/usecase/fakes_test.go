package usecase_test

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
	domainerrors "github.com/wekeepgrowing/student-activity/internal/domain/errors"
	"github.com/wekeepgrowing/student-activity/internal/domain/repository"
	"github.com/wekeepgrowing/student-activity/internal/infrastructure/storage"
	"github.com/wekeepgrowing/student-activity/internal/usecase/dto"
)

// fakeStudentRepository 메모리 학생 저장소
type fakeStudentRepository struct {
	students map[string]*entity.Student
	counts   func(id string) int64
}

func (r *fakeStudentRepository) FindByID(ctx context.Context, id string) (*entity.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStudentRepository) ListWithActivityCount(ctx context.Context) ([]*entity.StudentSummary, error) {
	out := make([]*entity.StudentSummary, 0, len(r.students))
	for _, s := range r.students {
		var count int64
		if r.counts != nil {
			count = r.counts(s.ID)
		}
		out = append(out, &entity.StudentSummary{Student: *s, ActivityCount: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeStudentRepository) Upsert(ctx context.Context, student *entity.Student) error {
	cp := *student
	r.students[student.ID] = &cp
	return nil
}

// fakeActivityRepository 중복 제거 키 유니크 제약을 흉내 내는 메모리 저장소
type fakeActivityRepository struct {
	mu         sync.Mutex
	activities map[string]*entity.Activity
	photos     *fakePhotoRepository

	// raceWinner 가 설정되면 다음 CreateIfAbsent는 이 활동을 대신 저장하고 false를 반환합니다
	raceWinner *entity.Activity
}

func sameKey(a, b *entity.Activity) bool {
	return a.StudentID == b.StudentID && a.Title == b.Title && a.Day.Equal(b.Day)
}

func (r *fakeActivityRepository) FindByID(ctx context.Context, id string, withPhotos bool) (*entity.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.activities[id]
	if !ok {
		return nil, nil
	}
	return r.copyOf(a, withPhotos), nil
}

func (r *fakeActivityRepository) FindByOwnerTitleWithin(ctx context.Context, studentID, title string, start, end time.Time) (*entity.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.activities {
		if a.StudentID == studentID && a.Title == title && !a.Date.Before(start) && !a.Date.After(end) {
			return r.copyOf(a, false), nil
		}
	}
	return nil, nil
}

func (r *fakeActivityRepository) CreateIfAbsent(ctx context.Context, activity *entity.Activity) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.raceWinner != nil {
		winner := *r.raceWinner
		r.activities[winner.ID] = &winner
		r.raceWinner = nil
	}
	for _, a := range r.activities {
		if sameKey(a, activity) {
			return false, nil
		}
	}
	cp := *activity
	r.activities[activity.ID] = &cp
	return true, nil
}

func (r *fakeActivityRepository) Update(ctx context.Context, activity *entity.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.activities[activity.ID]; !ok {
		return domainerrors.ActivityNotFound(activity.ID)
	}
	for id, a := range r.activities {
		if id != activity.ID && sameKey(a, activity) {
			return domainerrors.ErrDuplicateKey
		}
	}
	cp := *activity
	cp.Photos = nil
	r.activities[activity.ID] = &cp
	return nil
}

func (r *fakeActivityRepository) ListByStudent(ctx context.Context, studentID string) ([]*entity.Activity, error) {
	return r.list(func(a *entity.Activity) bool { return a.StudentID == studentID }, true), nil
}

func (r *fakeActivityRepository) ListAll(ctx context.Context) ([]*entity.Activity, error) {
	return r.list(func(*entity.Activity) bool { return true }, false), nil
}

func (r *fakeActivityRepository) ListLatestPerTitle(ctx context.Context) ([]*entity.Activity, error) {
	all := r.list(func(*entity.Activity) bool { return true }, false)
	latest := make(map[string]*entity.Activity)
	for _, a := range all {
		cur, ok := latest[a.Title]
		if !ok || a.Date.After(cur.Date) || (a.Date.Equal(cur.Date) && a.CreatedAt.After(cur.CreatedAt)) {
			latest[a.Title] = a
		}
	}
	out := make([]*entity.Activity, 0, len(latest))
	for _, a := range latest {
		out = append(out, a)
	}
	sortByDateDesc(out)
	return out, nil
}

func (r *fakeActivityRepository) list(keep func(*entity.Activity) bool, withPhotos bool) []*entity.Activity {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Activity
	for _, a := range r.activities {
		if keep(a) {
			out = append(out, r.copyOf(a, withPhotos))
		}
	}
	sortByDateDesc(out)
	return out
}

func (r *fakeActivityRepository) copyOf(a *entity.Activity, withPhotos bool) *entity.Activity {
	cp := *a
	cp.Photos = nil
	if withPhotos && r.photos != nil {
		cp.Photos = r.photos.byActivity(a.ID)
	}
	return &cp
}

func sortByDateDesc(activities []*entity.Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		if activities[i].Date.Equal(activities[j].Date) {
			return activities[i].CreatedAt.After(activities[j].CreatedAt)
		}
		return activities[i].Date.After(activities[j].Date)
	})
}

// fakePhotoRepository 메모리 사진 저장소
type fakePhotoRepository struct {
	mu     sync.Mutex
	photos map[string]*entity.Photo

	failCreate error
	failUpdate error
	// lookupsOutsideTx 트랜잭션 ctx 없이 호출된 조회 수
	lookupsOutsideTx int
	// beforeLock 잠금 조회 직전에 호출됩니다 (동시 교체 재현용)
	beforeLock func()
}

func (r *fakePhotoRepository) FindByID(ctx context.Context, id string) (*entity.Photo, error) {
	return r.find(ctx, id)
}

func (r *fakePhotoRepository) FindByIDForUpdate(ctx context.Context, id string) (*entity.Photo, error) {
	if r.beforeLock != nil {
		hook := r.beforeLock
		r.beforeLock = nil
		hook()
	}
	return r.find(ctx, id)
}

func (r *fakePhotoRepository) find(ctx context.Context, id string) (*entity.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !inTransaction(ctx) {
		r.lookupsOutsideTx++
	}
	p, ok := r.photos[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePhotoRepository) CreateBatch(ctx context.Context, photos []*entity.Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	for _, p := range photos {
		cp := *p
		r.photos[p.ID] = &cp
	}
	return nil
}

func (r *fakePhotoRepository) Update(ctx context.Context, photo *entity.Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate != nil {
		return r.failUpdate
	}
	if _, ok := r.photos[photo.ID]; !ok {
		return domainerrors.PhotoNotFound(photo.ID)
	}
	cp := *photo
	r.photos[photo.ID] = &cp
	return nil
}

func (r *fakePhotoRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.photos[id]; !ok {
		return false, nil
	}
	delete(r.photos, id)
	return true, nil
}

func (r *fakePhotoRepository) byActivity(activityID string) []*entity.Photo {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Photo
	for _, p := range r.photos {
		if p.ActivityID == activityID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

type txMarker struct{}

func inTransaction(ctx context.Context) bool {
	return ctx.Value(txMarker{}) != nil
}

// passthroughTransactor 롤백 없이 fn을 실행하고 ctx에 트랜잭션 표시만 남깁니다
type passthroughTransactor struct {
	calls int
}

func (t *passthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(context.WithValue(ctx, txMarker{}, true))
}

// MockEventPublisher 이벤트 발행 mock
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event entity.Event) {
	m.Called(ctx, event)
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e entity.Event) bool { return e.Type == eventType })
}

// fixture 유스케이스 테스트에 필요한 저장소 묶음
type fixture struct {
	students   *fakeStudentRepository
	activities *fakeActivityRepository
	photos     *fakePhotoRepository
	tx         *passthroughTransactor
	files      *storage.MemoryStore
	events     *MockEventPublisher
	repos      *repository.Repositories
}

func newFixture() *fixture {
	f := &fixture{
		students: &fakeStudentRepository{students: map[string]*entity.Student{
			"S1": {ID: "S1", Name: "김하늘"},
			"S2": {ID: "S2", Name: "이바다"},
		}},
		photos: &fakePhotoRepository{photos: make(map[string]*entity.Photo)},
		tx:     &passthroughTransactor{},
		files:  storage.NewMemoryStore("/uploads"),
		events: new(MockEventPublisher),
	}
	f.activities = &fakeActivityRepository{activities: make(map[string]*entity.Activity), photos: f.photos}
	f.repos = repository.NewRepositories(f.students, f.activities, f.photos, f.tx, f.files)
	return f
}

// allowEvents 이벤트 검증이 필요 없는 테스트용
func (f *fixture) allowEvents() {
	f.events.On("Publish", mock.Anything, mock.Anything).Return().Maybe()
}

func upload(name string, content string) dto.FileUpload {
	return dto.FileUpload{
		Filename:    name,
		ContentType: "image/png",
		Size:        int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func sizedUpload(name string, size int64) dto.FileUpload {
	return upload(name, strings.Repeat("x", int(size)))
}
