package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainerrors "github.com/wekeepgrowing/student-activity/internal/domain/errors"
	"github.com/wekeepgrowing/student-activity/internal/usecase/interfaces"
)

// PhotoHandler 사진 삭제/교체 요청 처리
type PhotoHandler struct {
	logger *zap.Logger
	photos interfaces.PhotoUseCase
}

func NewPhotoHandler(logger *zap.Logger, photos interfaces.PhotoUseCase) *PhotoHandler {
	return &PhotoHandler{logger: logger, photos: photos}
}

// Delete DELETE /api/photos/:id
func (h *PhotoHandler) Delete(c echo.Context) error {
	if err := h.photos.DeletePhoto(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "photo deleted",
	})
}

// Replace PUT /api/photos/:id (multipart, 파일 하나)
func (h *PhotoHandler) Replace(c echo.Context) error {
	form, err := multipartForm(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	files := formFiles(form)
	if len(files) == 0 {
		return respondError(c, h.logger, domainerrors.InvalidInput("file is required"))
	}

	photo, err := h.photos.ReplacePhoto(c.Request().Context(), c.Param("id"), files[0])
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"photo":   presentPhoto(photo),
	})
}
