package http

import (
	"io"
	"mime/multipart"

	"github.com/labstack/echo/v4"

	domainerrors "github.com/wekeepgrowing/student-activity/internal/domain/errors"
	"github.com/wekeepgrowing/student-activity/internal/usecase/dto"
	"github.com/wekeepgrowing/student-activity/pkg/errors"
)

// 파일 필드 이름. 원래 클라이언트는 file, files[] 를 섞어 보냅니다
var fileFields = []string{"file", "file[]", "files", "files[]"}

func multipartForm(c echo.Context) (*multipart.Form, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// BodyLimit 초과는 413 그대로 전달
		if errors.Is(err, echo.ErrStatusRequestEntityTooLarge) {
			return nil, errors.PayloadTooLarge("request body too large")
		}
		return nil, domainerrors.InvalidInput("multipart/form-data body is required")
	}
	return form, nil
}

// formFiles 폼의 모든 파일 필드를 모읍니다
func formFiles(form *multipart.Form) []dto.FileUpload {
	var files []dto.FileUpload
	for _, field := range fileFields {
		for _, fh := range form.File[field] {
			files = append(files, toFileUpload(fh))
		}
	}
	return files
}

func toFileUpload(fh *multipart.FileHeader) dto.FileUpload {
	return dto.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func formValue(form *multipart.Form, keys ...string) string {
	for _, key := range keys {
		if values := form.Value[key]; len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return ""
}

func optionalFormValue(form *multipart.Form, key string) *string {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
