package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/student-activity/internal/usecase/interfaces"
)

// StudentHandler 학생 목록 요청 처리
type StudentHandler struct {
	logger   *zap.Logger
	students interfaces.StudentUseCase
}

func NewStudentHandler(logger *zap.Logger, students interfaces.StudentUseCase) *StudentHandler {
	return &StudentHandler{logger: logger, students: students}
}

// List GET /api/students
func (h *StudentHandler) List(c echo.Context) error {
	students, err := h.students.ListStudents(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, presentStudentSummaries(students))
}

// Activities GET /api/students/:id/activities
func (h *StudentHandler) Activities(c echo.Context) error {
	result, err := h.students.GetStudentActivities(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, studentActivitiesResponse{
		Student:    presentStudent(result.Student),
		Activities: presentActivitiesWithPhotos(result.Activities),
	})
}
