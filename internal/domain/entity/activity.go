package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Activity 학생이 참여한 활동. (StudentID, Title, Day)가 중복 제거 키입니다.
type Activity struct {
	ID        string
	StudentID string
	Title     string
	Detail    *string
	Date      time.Time
	// Day Date의 달력 날짜(설정된 시간대 기준, 00:00 UTC로 저장)
	Day       time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	Photos    []*Photo
}

// NewActivity 새 활동 생성. title은 NormalizeTitle을 거칩니다.
func NewActivity(studentID, title string, detail *string, date time.Time, loc *time.Location) *Activity {
	now := time.Now()
	return &Activity{
		ID:        uuid.NewString(),
		StudentID: studentID,
		Title:     NormalizeTitle(title),
		Detail:    detail,
		Date:      date,
		Day:       CalendarDay(date, loc),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reschedule 제목, 상세, 날짜를 덮어씁니다
func (a *Activity) Reschedule(title string, detail *string, date time.Time, loc *time.Location) {
	a.Title = NormalizeTitle(title)
	a.Detail = detail
	a.Date = date
	a.Day = CalendarDay(date, loc)
	a.UpdatedAt = time.Now()
}

// NormalizeTitle 앞뒤 공백 제거 후 NFC 정규화
func NormalizeTitle(title string) string {
	return norm.NFC.String(strings.TrimSpace(title))
}

// CalendarDay loc 기준 날짜를 UTC 자정으로 반환합니다
func CalendarDay(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.In(locationOrUTC(loc)).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayWindow loc 기준으로 date가 속한 날의 [00:00:00.000, 23:59:59.999] 구간
func DayWindow(date time.Time, loc *time.Location) (time.Time, time.Time) {
	loc = locationOrUTC(loc)
	y, m, d := date.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
	return start, end
}

func locationOrUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
