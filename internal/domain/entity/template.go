package entity

import "time"

// ActivityTemplate 제목별 최신 활동을 보여주는 읽기 전용 프로젝션.
// ID는 "central-<index>" 형태의 임시 값이며 실제 활동 ID가 아닙니다.
type ActivityTemplate struct {
	ID     string
	Title  string
	Detail *string
	Date   time.Time
}
