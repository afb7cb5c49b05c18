package entity

// Student 학생. 시드 도구로만 생성되며 서비스 흐름에서는 읽기 전용입니다.
type Student struct {
	ID   string
	Name string
}

// StudentSummary 학생 목록 조회용 프로젝션
type StudentSummary struct {
	Student
	ActivityCount int64
}
