package http

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/student-activity/internal/observability"
	"github.com/wekeepgrowing/student-activity/internal/usecase/dto"
	"github.com/wekeepgrowing/student-activity/internal/usecase/interfaces"
	"github.com/wekeepgrowing/student-activity/pkg/errors"
)

// ActivityHandler 활동 조회/수정/업로드 요청 처리
type ActivityHandler struct {
	logger     *zap.Logger
	activities interfaces.ActivityUseCase
	photos     interfaces.PhotoUseCase
}

// NewActivityHandler 활동 핸들러 생성
func NewActivityHandler(
	logger *zap.Logger,
	activities interfaces.ActivityUseCase,
	photos interfaces.PhotoUseCase,
) *ActivityHandler {
	return &ActivityHandler{
		logger:     logger,
		activities: activities,
		photos:     photos,
	}
}

type updateActivityRequest struct {
	ID     string         `param:"id" json:"-"`
	Title  string         `json:"title" validate:"notblank,max=255"`
	Detail optionalString `json:"detail"`
	Date   string         `json:"date" validate:"required"`
}

// optionalString JSON 키가 있었는지 기억합니다. null이면 Set만 true입니다.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// List GET /api/activities
// distinct=true, activityId, studentId 순서로 하나만 적용되며 없으면 전체 목록입니다.
func (h *ActivityHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if c.QueryParam("distinct") == "true" {
		templates, err := h.activities.ListTemplates(ctx)
		if err != nil {
			return respondError(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, presentTemplates(templates))
	}

	if activityID := c.QueryParam("activityId"); activityID != "" {
		return h.getActivity(c, activityID)
	}

	if studentID := c.QueryParam("studentId"); studentID != "" {
		activities, err := h.activities.ListByStudent(ctx, studentID)
		if err != nil {
			return respondError(c, h.logger, err)
		}
		return c.JSON(http.StatusOK, presentActivitiesWithPhotos(activities))
	}

	activities, err := h.activities.ListAll(ctx)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, presentActivities(activities))
}

// Get GET /api/activities/:id
func (h *ActivityHandler) Get(c echo.Context) error {
	return h.getActivity(c, c.Param("id"))
}

func (h *ActivityHandler) getActivity(c echo.Context, id string) error {
	activity, err := h.activities.GetActivity(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, presentActivityWithPhotos(activity))
}

// Update PUT /api/activities/:id
func (h *ActivityHandler) Update(c echo.Context) error {
	var req updateActivityRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, h.logger, errors.InvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, h.logger, err)
	}

	activity, err := h.activities.UpdateActivity(c.Request().Context(), dto.UpdateActivityInput{
		ActivityID: req.ID,
		Title:      req.Title,
		Detail:     dto.OptionalString{Set: req.Detail.Set, Value: req.Detail.Value},
		Date:       req.Date,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"activity": presentActivity(activity),
	})
}

// Upload POST /api/activities/upload (multipart)
// 같은 학생, 제목, 날짜의 활동이 있으면 그 활동에 사진을 붙입니다.
func (h *ActivityHandler) Upload(c echo.Context) error {
	form, err := multipartForm(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	result, err := h.photos.UploadActivityPhotos(c.Request().Context(), dto.UploadActivityPhotosInput{
		StudentID: formValue(form, "ownerId", "studentId"),
		Title:     formValue(form, "title"),
		Detail:    optionalFormValue(form, "detail"),
		Date:      formValue(form, "date"),
		Files:     formFiles(form),
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	observability.RecordFilesRejected("too_large", len(result.Rejected))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"activity": presentActivity(result.Activity),
		"photos":   presentPhotos(result.Photos),
		"rejected": nonNil(result.Rejected),
	})
}

// AddPhotos POST /api/activities/:id/photos (multipart)
func (h *ActivityHandler) AddPhotos(c echo.Context) error {
	form, err := multipartForm(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	result, err := h.photos.AddPhotos(c.Request().Context(), c.Param("id"), formFiles(form))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	observability.RecordFilesRejected("too_large", len(result.Rejected))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"photos":   presentPhotos(result.Photos),
		"rejected": nonNil(result.Rejected),
	})
}
