package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wekeepgrowing/student-activity/internal/adapter/mapper"
	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
	"github.com/wekeepgrowing/student-activity/internal/domain/repository"
	"github.com/wekeepgrowing/student-activity/internal/infrastructure/db"
	"github.com/wekeepgrowing/student-activity/internal/infrastructure/db/model"
)

type StudentRepositoryImpl struct {
	db *gorm.DB
}

// NewStudentRepository 학생 저장소 구현체 생성
func NewStudentRepository(database *gorm.DB) repository.StudentRepository {
	return &StudentRepositoryImpl{db: database}
}

// FindByID 학생 ID로 조회
func (r *StudentRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.Student, error) {
	var m model.StudentModel
	if err := db.Conn(ctx, r.db).First(&m, "std_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapper.StudentFromModel(&m), nil
}

// ListWithActivityCount 이름 오름차순으로 학생과 활동 수를 조회
func (r *StudentRepositoryImpl) ListWithActivityCount(ctx context.Context) ([]*entity.StudentSummary, error) {
	var rows []model.StudentCountRow
	err := db.Conn(ctx, r.db).
		Table("students AS s").
		Select("s.std_id, s.name, COUNT(a.std_act_id) AS activity_count").
		Joins("LEFT JOIN student_activities AS a ON a.student_id = s.std_id").
		Group("s.std_id, s.name").
		Order("s.name ASC, s.std_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return mapper.StudentSummariesFromRows(rows), nil
}

// Upsert 같은 ID가 있으면 이름만 갱신
func (r *StudentRepositoryImpl) Upsert(ctx context.Context, student *entity.Student) error {
	return db.Conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "std_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).
		Create(mapper.StudentToModel(student)).Error
}
