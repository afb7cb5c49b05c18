package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
	domainerrors "github.com/wekeepgrowing/student-activity/internal/domain/errors"
	"github.com/wekeepgrowing/student-activity/internal/usecase/dto"
)

type MockActivityUseCase struct {
	mock.Mock
}

func (m *MockActivityUseCase) UpsertActivity(ctx context.Context, input dto.UpsertActivityInput) (*entity.Activity, error) {
	args := m.Called(ctx, input)
	a, _ := args.Get(0).(*entity.Activity)
	return a, args.Error(1)
}

func (m *MockActivityUseCase) UpdateActivity(ctx context.Context, input dto.UpdateActivityInput) (*entity.Activity, error) {
	args := m.Called(ctx, input)
	a, _ := args.Get(0).(*entity.Activity)
	return a, args.Error(1)
}

func (m *MockActivityUseCase) GetActivity(ctx context.Context, id string) (*entity.Activity, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*entity.Activity)
	return a, args.Error(1)
}

func (m *MockActivityUseCase) ListByStudent(ctx context.Context, studentID string) ([]*entity.Activity, error) {
	args := m.Called(ctx, studentID)
	a, _ := args.Get(0).([]*entity.Activity)
	return a, args.Error(1)
}

func (m *MockActivityUseCase) ListAll(ctx context.Context) ([]*entity.Activity, error) {
	args := m.Called(ctx)
	a, _ := args.Get(0).([]*entity.Activity)
	return a, args.Error(1)
}

func (m *MockActivityUseCase) ListTemplates(ctx context.Context) ([]*entity.ActivityTemplate, error) {
	args := m.Called(ctx)
	t, _ := args.Get(0).([]*entity.ActivityTemplate)
	return t, args.Error(1)
}

type MockPhotoUseCase struct {
	mock.Mock
}

func (m *MockPhotoUseCase) AddPhotos(ctx context.Context, activityID string, files []dto.FileUpload) (*dto.AddPhotosResult, error) {
	args := m.Called(ctx, activityID, files)
	r, _ := args.Get(0).(*dto.AddPhotosResult)
	return r, args.Error(1)
}

func (m *MockPhotoUseCase) UploadActivityPhotos(ctx context.Context, input dto.UploadActivityPhotosInput) (*dto.UploadResult, error) {
	args := m.Called(ctx, input)
	r, _ := args.Get(0).(*dto.UploadResult)
	return r, args.Error(1)
}

func (m *MockPhotoUseCase) DeletePhoto(ctx context.Context, photoID string) error {
	return m.Called(ctx, photoID).Error(0)
}

func (m *MockPhotoUseCase) ReplacePhoto(ctx context.Context, photoID string, file dto.FileUpload) (*entity.Photo, error) {
	args := m.Called(ctx, photoID, file)
	p, _ := args.Get(0).(*entity.Photo)
	return p, args.Error(1)
}

type MockStudentUseCase struct {
	mock.Mock
}

func (m *MockStudentUseCase) ListStudents(ctx context.Context) ([]*entity.StudentSummary, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]*entity.StudentSummary)
	return s, args.Error(1)
}

func (m *MockStudentUseCase) GetStudentActivities(ctx context.Context, studentID string) (*dto.StudentActivities, error) {
	args := m.Called(ctx, studentID)
	s, _ := args.Get(0).(*dto.StudentActivities)
	return s, args.Error(1)
}

type testServer struct {
	e          *echo.Echo
	activities *MockActivityUseCase
	photos     *MockPhotoUseCase
	students   *MockStudentUseCase
}

func newTestServer() *testServer {
	s := &testServer{
		e:          echo.New(),
		activities: new(MockActivityUseCase),
		photos:     new(MockPhotoUseCase),
		students:   new(MockStudentUseCase),
	}
	s.e.Validator = NewRequestValidator()
	NewHandlers(zap.NewNop(), s.activities, s.photos, s.students).RegisterRoutes(s.e.Group("/api"))
	return s
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

type formFile struct {
	field, name, content string
}

func multipartRequest(t *testing.T, method, target string, values map[string]string, files ...formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range values {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = io.WriteString(part, f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

var testDate = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func sampleActivity() *entity.Activity {
	return &entity.Activity{
		ID:        "a1",
		StudentID: "S1",
		Title:     "Choir",
		Date:      testDate,
		CreatedAt: testDate,
		UpdatedAt: testDate,
	}
}

func samplePhoto(id string) *entity.Photo {
	return &entity.Photo{
		ID:         id,
		ActivityID: "a1",
		Filename:   "1714521600000-abcdefghij.png",
		URL:        "/uploads/1714521600000-abcdefghij.png",
		Size:       5,
	}
}

func TestListActivities_Modes(t *testing.T) {
	t.Run("distinct templates", func(t *testing.T) {
		s := newTestServer()
		s.activities.On("ListTemplates", mock.Anything).Return([]*entity.ActivityTemplate{
			{ID: "central-0", Title: "Choir", Date: testDate},
		}, nil)

		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/activities?distinct=true&studentId=S1", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeList(t, rec)
		require.Len(t, body, 1)
		assert.Equal(t, "central-0", body[0]["std_act_id"])
		assert.Equal(t, "Choir", body[0]["title"])
		s.activities.AssertNotCalled(t, "ListByStudent", mock.Anything, mock.Anything)
	})

	t.Run("distinct only matches true", func(t *testing.T) {
		s := newTestServer()
		s.activities.On("ListAll", mock.Anything).Return([]*entity.Activity{sampleActivity()}, nil)

		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/activities?distinct=1", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeList(t, rec), 1)
		s.activities.AssertNotCalled(t, "ListTemplates", mock.Anything)
	})

	t.Run("single activity not found", func(t *testing.T) {
		s := newTestServer()
		s.activities.On("GetActivity", mock.Anything, "missing").Return(nil, domainerrors.ActivityNotFound("missing"))

		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/activities?activityId=missing", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "activity missing not found", body["message"])
	})

	t.Run("by student includes photos", func(t *testing.T) {
		s := newTestServer()
		a := sampleActivity()
		a.Photos = []*entity.Photo{samplePhoto("p1")}
		empty := sampleActivity()
		empty.ID = "a2"
		s.activities.On("ListByStudent", mock.Anything, "S1").Return([]*entity.Activity{a, empty}, nil)

		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/student-activities?studentId=S1", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeList(t, rec)
		require.Len(t, body, 2)
		assert.Equal(t, "a1", body[0]["std_act_id"])
		assert.Equal(t, "S1", body[0]["studentId"])
		assert.Len(t, body[0]["photos"], 1)
		assert.Equal(t, []interface{}{}, body[1]["photos"])
	})

	t.Run("all activities", func(t *testing.T) {
		s := newTestServer()
		s.activities.On("ListAll", mock.Anything).Return([]*entity.Activity{sampleActivity()}, nil)

		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/activities", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeList(t, rec)
		require.Len(t, body, 1)
		assert.NotContains(t, body[0], "photos")
	})

	t.Run("internal error hides cause", func(t *testing.T) {
		s := newTestServer()
		s.activities.On("ListAll", mock.Anything).Return(nil, fmt.Errorf("pq: connection refused"))

		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/activities", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
		assert.Equal(t, false, decode(t, rec)["success"])
	})
}

func TestUpdateActivity(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := newTestServer()
		updated := sampleActivity()
		updated.Title = "Choir Concert"
		s.activities.On("UpdateActivity", mock.Anything, dto.UpdateActivityInput{
			ActivityID: "a1",
			Title:      "Choir Concert",
			Date:       "2024-05-01",
		}).Return(updated, nil)

		req := httptest.NewRequest(http.MethodPut, "/api/activities/a1", strings.NewReader(`{"title":"Choir Concert","date":"2024-05-01"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := s.do(req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Choir Concert", body["activity"].(map[string]interface{})["title"])
		s.activities.AssertExpectations(t)
	})

	t.Run("detail key presence", func(t *testing.T) {
		empty := ""
		tests := []struct {
			name   string
			body   string
			detail dto.OptionalString
		}{
			{"absent keeps", `{"title":"Choir","date":"2024-05-01"}`, dto.OptionalString{}},
			{"null clears", `{"title":"Choir","detail":null,"date":"2024-05-01"}`, dto.OptionalString{Set: true}},
			{"empty string stored", `{"title":"Choir","detail":"","date":"2024-05-01"}`, dto.OptionalString{Set: true, Value: &empty}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s := newTestServer()
				var captured dto.UpdateActivityInput
				s.activities.On("UpdateActivity", mock.Anything, mock.Anything).
					Run(func(args mock.Arguments) { captured = args.Get(1).(dto.UpdateActivityInput) }).
					Return(sampleActivity(), nil)

				req := httptest.NewRequest(http.MethodPut, "/api/activities/a1", strings.NewReader(tt.body))
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
				rec := s.do(req)

				require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
				assert.Equal(t, tt.detail, captured.Detail)
			})
		}
	})

	t.Run("blank title", func(t *testing.T) {
		s := newTestServer()
		req := httptest.NewRequest(http.MethodPut, "/api/activities/a1", strings.NewReader(`{"title":"  ","date":"2024-05-01"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := s.do(req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "title cannot be blank", decode(t, rec)["message"])
		s.activities.AssertNotCalled(t, "UpdateActivity", mock.Anything, mock.Anything)
	})

	t.Run("conflict", func(t *testing.T) {
		s := newTestServer()
		s.activities.On("UpdateActivity", mock.Anything, mock.Anything).Return(nil, domainerrors.DuplicateActivity("Robotics"))

		req := httptest.NewRequest(http.MethodPut, "/api/activities/a1", strings.NewReader(`{"title":"Robotics","date":"2024-05-02"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := s.do(req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestUploadActivityPhotos(t *testing.T) {
	t.Run("accepts studentId alias and every file field", func(t *testing.T) {
		s := newTestServer()
		var captured dto.UploadActivityPhotosInput
		s.photos.On("UploadActivityPhotos", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { captured = args.Get(1).(dto.UploadActivityPhotosInput) }).
			Return(&dto.UploadResult{
				Activity: sampleActivity(),
				Photos:   []*entity.Photo{samplePhoto("p1"), samplePhoto("p2")},
			}, nil)

		req := multipartRequest(t, http.MethodPost, "/api/student-activities/upload",
			map[string]string{"studentId": "S1", "title": "Choir", "date": "2024-05-01"},
			formFile{"file", "a.png", "first"},
			formFile{"files[]", "b.png", "second"},
		)
		rec := s.do(req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "S1", captured.StudentID)
		assert.Equal(t, "Choir", captured.Title)
		assert.Nil(t, captured.Detail)
		require.Len(t, captured.Files, 2)
		assert.Equal(t, "a.png", captured.Files[0].Filename)
		assert.Equal(t, int64(len("first")), captured.Files[0].Size)

		rc, err := captured.Files[1].Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, "second", string(content))

		body := decode(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Len(t, body["photos"], 2)
		assert.Equal(t, []interface{}{}, body["rejected"])
	})

	t.Run("ownerId wins over studentId", func(t *testing.T) {
		s := newTestServer()
		s.photos.On("UploadActivityPhotos", mock.Anything, mock.MatchedBy(func(in dto.UploadActivityPhotosInput) bool {
			return in.StudentID == "S2" && in.Detail != nil && *in.Detail == "alto"
		})).Return(&dto.UploadResult{Activity: sampleActivity(), Rejected: []string{"huge.png"}}, nil)

		req := multipartRequest(t, http.MethodPost, "/api/activities/upload",
			map[string]string{"ownerId": "S2", "studentId": "S1", "title": "Choir", "date": "2024-05-01", "detail": "alto"},
			formFile{"files", "a.png", "first"},
		)
		rec := s.do(req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, []interface{}{"huge.png"}, decode(t, rec)["rejected"])
	})

	t.Run("not multipart", func(t *testing.T) {
		s := newTestServer()
		req := httptest.NewRequest(http.MethodPost, "/api/activities/upload", strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := s.do(req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		s.photos.AssertNotCalled(t, "UploadActivityPhotos", mock.Anything, mock.Anything)
	})

	t.Run("no accepted files", func(t *testing.T) {
		s := newTestServer()
		s.photos.On("UploadActivityPhotos", mock.Anything, mock.Anything).Return(nil, domainerrors.NoFilesAccepted(5*1024*1024))

		req := multipartRequest(t, http.MethodPost, "/api/activities/upload",
			map[string]string{"ownerId": "S1", "title": "Choir", "date": "2024-05-01"},
			formFile{"file", "huge.png", "x"},
		)
		rec := s.do(req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "no files accepted: every file exceeds the 5MB limit", decode(t, rec)["message"])
	})
}

func TestAddPhotos(t *testing.T) {
	s := newTestServer()
	s.photos.On("AddPhotos", mock.Anything, "a1", mock.MatchedBy(func(files []dto.FileUpload) bool {
		return len(files) == 1 && files[0].Filename == "c.png"
	})).Return(&dto.AddPhotosResult{Photos: []*entity.Photo{samplePhoto("p3")}}, nil)

	rec := s.do(multipartRequest(t, http.MethodPost, "/api/activities/a1/photos", nil, formFile{"file", "c.png", "third"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	photos := body["photos"].([]interface{})
	require.Len(t, photos, 1)
	assert.Equal(t, "p3", photos[0].(map[string]interface{})["id"])
	assert.Equal(t, "a1", photos[0].(map[string]interface{})["activityId"])
}

func TestDeletePhoto(t *testing.T) {
	s := newTestServer()
	s.photos.On("DeletePhoto", mock.Anything, "p1").Return(nil)
	s.photos.On("DeletePhoto", mock.Anything, "missing").Return(domainerrors.PhotoNotFound("missing"))

	rec := s.do(httptest.NewRequest(http.MethodDelete, "/api/photos/p1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])

	rec = s.do(httptest.NewRequest(http.MethodDelete, "/api/student-activities/photos/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "photo missing not found", decode(t, rec)["message"])
}

func TestReplacePhoto(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := newTestServer()
		replaced := samplePhoto("p1")
		replaced.Filename = "1714521600001-zyxwvutsrq.png"
		s.photos.On("ReplacePhoto", mock.Anything, "p1", mock.MatchedBy(func(f dto.FileUpload) bool {
			return f.Filename == "new.png"
		})).Return(replaced, nil)

		rec := s.do(multipartRequest(t, http.MethodPut, "/api/photos/p1", nil, formFile{"file", "new.png", "fresh"}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		photo := decode(t, rec)["photo"].(map[string]interface{})
		assert.Equal(t, "p1", photo["id"])
		assert.Equal(t, "1714521600001-zyxwvutsrq.png", photo["filename"])
	})

	t.Run("too large", func(t *testing.T) {
		s := newTestServer()
		s.photos.On("ReplacePhoto", mock.Anything, "p1", mock.Anything).Return(nil, domainerrors.FileTooLarge("big.png", 5*1024*1024))

		rec := s.do(multipartRequest(t, http.MethodPut, "/api/photos/p1", nil, formFile{"file", "big.png", "x"}))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "file big.png exceeds the 5MB limit", decode(t, rec)["message"])
	})

	t.Run("missing file", func(t *testing.T) {
		s := newTestServer()
		rec := s.do(multipartRequest(t, http.MethodPut, "/api/photos/p1", map[string]string{"note": "x"}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		s.photos.AssertNotCalled(t, "ReplacePhoto", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestStudents(t *testing.T) {
	t.Run("list with counts", func(t *testing.T) {
		s := newTestServer()
		s.students.On("ListStudents", mock.Anything).Return([]*entity.StudentSummary{
			{Student: entity.Student{ID: "S1", Name: "김하늘"}, ActivityCount: 2},
		}, nil)

		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/students", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeList(t, rec)
		require.Len(t, body, 1)
		assert.Equal(t, "S1", body[0]["std_id"])
		assert.Equal(t, map[string]interface{}{"activities": float64(2)}, body[0]["_count"])
	})

	t.Run("activities of unknown student", func(t *testing.T) {
		s := newTestServer()
		s.students.On("GetStudentActivities", mock.Anything, "S404").Return(nil, domainerrors.StudentNotFound("S404"))

		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/students/S404/activities", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, false, decode(t, rec)["success"])
	})

	t.Run("activities of known student", func(t *testing.T) {
		s := newTestServer()
		s.students.On("GetStudentActivities", mock.Anything, "S1").Return(&dto.StudentActivities{
			Student:    &entity.Student{ID: "S1", Name: "김하늘"},
			Activities: []*entity.Activity{sampleActivity()},
		}, nil)

		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/students/S1/activities", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "김하늘", body["student"].(map[string]interface{})["name"])
		assert.NotContains(t, body["student"], "_count")
		assert.Len(t, body["activities"], 1)
	})
}
