package repository

// Repositories 유스케이스에 주입되는 저장소 묶음
type Repositories struct {
	Student    StudentRepository
	Activity   ActivityRepository
	Photo      PhotoRepository
	Transactor Transactor
	Files      FileStore
}

// NewRepositories 저장소 묶음 생성
func NewRepositories(
	studentRepo StudentRepository,
	activityRepo ActivityRepository,
	photoRepo PhotoRepository,
	transactor Transactor,
	files FileStore,
) *Repositories {
	return &Repositories{
		Student:    studentRepo,
		Activity:   activityRepo,
		Photo:      photoRepo,
		Transactor: transactor,
		Files:      files,
	}
}
