package usecase

import (
	"strings"
	"time"

	domainerrors "github.com/wekeepgrowing/student-activity/internal/domain/errors"
)

// 시간대가 없는 형식은 설정된 시간대로 해석합니다
var localDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseActivityDate 활동 날짜 문자열을 해석합니다
func ParseActivityDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, domainerrors.InvalidInput("date is required")
	}
	if loc == nil {
		loc = time.UTC
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	for _, layout := range localDateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domainerrors.InvalidInput("invalid date %q", value)
}
