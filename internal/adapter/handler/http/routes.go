package http

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/student-activity/internal/usecase/interfaces"
)

// Handlers HTTP 핸들러 묶음
type Handlers struct {
	Activity *ActivityHandler
	Photo    *PhotoHandler
	Student  *StudentHandler
}

// NewHandlers 유스케이스로부터 핸들러 생성
func NewHandlers(
	logger *zap.Logger,
	activities interfaces.ActivityUseCase,
	photos interfaces.PhotoUseCase,
	students interfaces.StudentUseCase,
) *Handlers {
	return &Handlers{
		Activity: NewActivityHandler(logger, activities, photos),
		Photo:    NewPhotoHandler(logger, photos),
		Student:  NewStudentHandler(logger, students),
	}
}

// RegisterRoutes /api 그룹에 라우트 등록
func (h *Handlers) RegisterRoutes(api *echo.Group) {
	for _, prefix := range []string{"/activities", "/student-activities"} {
		g := api.Group(prefix)
		g.GET("", h.Activity.List)
		g.POST("/upload", h.Activity.Upload)
		g.GET("/:id", h.Activity.Get)
		g.PUT("/:id", h.Activity.Update)
		g.POST("/:id/photos", h.Activity.AddPhotos)
	}

	api.DELETE("/photos/:id", h.Photo.Delete)
	api.PUT("/photos/:id", h.Photo.Replace)
	// 예전 클라이언트 경로
	api.DELETE("/student-activities/photos/:id", h.Photo.Delete)
	api.PUT("/student-activities/photos/:id", h.Photo.Replace)

	api.GET("/students", h.Student.List)
	api.GET("/students/:id/activities", h.Student.Activities)
}
