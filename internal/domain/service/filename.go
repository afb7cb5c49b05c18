package service

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	filenameAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	filenameIDLength = 10
	maxExtLength     = 10
)

var (
	whitespace = regexp.MustCompile(`\s`)
	extPattern = regexp.MustCompile(`^\.[a-z0-9]+$`)
)

// GenerateFilename 업로드 파일의 저장 이름을 만듭니다.
// 형식: <unix-millis>-<nanoid><.ext>. 원본 이름의 공백은 '_'로 바뀌고 확장자는 소문자로 유지됩니다.
func GenerateFilename(original string, now time.Time) (string, error) {
	id, err := gonanoid.Generate(filenameAlphabet, filenameIDLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate filename: %w", err)
	}
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), id, FileExt(original)), nil
}

// FileExt 안전한 확장자만 돌려줍니다. 없거나 이상하면 빈 문자열
func FileExt(original string) string {
	name := whitespace.ReplaceAllString(filepath.Base(original), "_")
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) > maxExtLength || !extPattern.MatchString(ext) {
		return ""
	}
	return ext
}

// SanitizeOriginalName 원본 파일명의 경로 요소를 제거하고 공백을 '_'로 바꿉니다
func SanitizeOriginalName(original string) string {
	name := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return whitespace.ReplaceAllString(name, "_")
}
