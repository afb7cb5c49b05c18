package repository

import (
	"gorm.io/gorm"

	domainrepo "github.com/wekeepgrowing/student-activity/internal/domain/repository"
	"github.com/wekeepgrowing/student-activity/internal/infrastructure/db"
)

// InitRepositories 모든 레포지토리를 초기화하고 컬렉션을 반환합니다
func InitRepositories(database *gorm.DB, files domainrepo.FileStore) *domainrepo.Repositories {
	return domainrepo.NewRepositories(
		NewStudentRepository(database),
		NewActivityRepository(database),
		NewPhotoRepository(database),
		db.NewTransactor(database),
		files,
	)
}
