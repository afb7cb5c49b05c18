package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
	"github.com/wekeepgrowing/student-activity/pkg/errors"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type photoResponse struct {
	ID           string    `json:"id"`
	ActivityID   string    `json:"activityId"`
	Filename     string    `json:"filename"`
	URL          string    `json:"url"`
	OriginalName string    `json:"originalName,omitempty"`
	ContentType  string    `json:"contentType,omitempty"`
	Size         int64     `json:"size"`
	Width        int       `json:"width,omitempty"`
	Height       int       `json:"height,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type activityResponse struct {
	ID        string    `json:"std_act_id"`
	StudentID string    `json:"studentId"`
	Title     string    `json:"title"`
	Detail    *string   `json:"detail"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// activityWithPhotosResponse 사진을 함께 읽은 활동. photos는 항상 배열입니다.
type activityWithPhotosResponse struct {
	activityResponse
	Photos []photoResponse `json:"photos"`
}

type templateResponse struct {
	ID     string    `json:"std_act_id"`
	Title  string    `json:"title"`
	Detail *string   `json:"detail"`
	Date   time.Time `json:"date"`
}

type activityCount struct {
	Activities int64 `json:"activities"`
}

type studentResponse struct {
	ID    string         `json:"std_id"`
	Name  string         `json:"name"`
	Count *activityCount `json:"_count,omitempty"`
}

type studentActivitiesResponse struct {
	Student    studentResponse              `json:"student"`
	Activities []activityWithPhotosResponse `json:"activities"`
}

func presentPhoto(p *entity.Photo) photoResponse {
	return photoResponse{
		ID:           p.ID,
		ActivityID:   p.ActivityID,
		Filename:     p.Filename,
		URL:          p.URL,
		OriginalName: p.OriginalName,
		ContentType:  p.ContentType,
		Size:         p.Size,
		Width:        p.Width,
		Height:       p.Height,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func presentPhotos(photos []*entity.Photo) []photoResponse {
	out := make([]photoResponse, 0, len(photos))
	for _, p := range photos {
		out = append(out, presentPhoto(p))
	}
	return out
}

func presentActivity(a *entity.Activity) activityResponse {
	return activityResponse{
		ID:        a.ID,
		StudentID: a.StudentID,
		Title:     a.Title,
		Detail:    a.Detail,
		Date:      a.Date,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func presentActivityWithPhotos(a *entity.Activity) activityWithPhotosResponse {
	return activityWithPhotosResponse{
		activityResponse: presentActivity(a),
		Photos:           presentPhotos(a.Photos),
	}
}

func presentActivities(activities []*entity.Activity) []activityResponse {
	out := make([]activityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, presentActivity(a))
	}
	return out
}

func presentActivitiesWithPhotos(activities []*entity.Activity) []activityWithPhotosResponse {
	out := make([]activityWithPhotosResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, presentActivityWithPhotos(a))
	}
	return out
}

func presentTemplates(templates []*entity.ActivityTemplate) []templateResponse {
	out := make([]templateResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, templateResponse{ID: t.ID, Title: t.Title, Detail: t.Detail, Date: t.Date})
	}
	return out
}

func presentStudent(s *entity.Student) studentResponse {
	return studentResponse{ID: s.ID, Name: s.Name}
}

func presentStudentSummaries(students []*entity.StudentSummary) []studentResponse {
	out := make([]studentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, studentResponse{
			ID:    s.ID,
			Name:  s.Name,
			Count: &activityCount{Activities: s.ActivityCount},
		})
	}
	return out
}

// nonNil JSON에서 null 대신 빈 배열이 나가도록 합니다
func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}

// respondError 에러를 {"success": false, "message"} 응답으로 변환합니다.
// INTERNAL 에러는 원인을 로그로만 남기고 일반 메시지로 응답합니다.
func respondError(c echo.Context, logger *zap.Logger, err error) error {
	he := errors.ToHTTPError(err)
	if he.Code >= 500 {
		errors.LogError(logger, err, "요청 처리 실패",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
		)
	}

	message, ok := he.Message.(string)
	if !ok {
		message = "request failed"
	}
	return c.JSON(he.Code, errorResponse{Success: false, Message: message})
}
