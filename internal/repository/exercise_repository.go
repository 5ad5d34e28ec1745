package repository

import (
	"pahamkode_backend/internal/model"

	"gorm.io/gorm"
)

type ExerciseRepository struct {
	DB *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{DB: db}
}

func (r *ExerciseRepository) Create(ex *model.Exercise) error {
	return r.DB.Create(ex).Error
}

func (r *ExerciseRepository) Update(ex *model.Exercise) error {
	return r.DB.Save(ex).Error
}

func (r *ExerciseRepository) Delete(id string) error {
	return r.DB.Delete(&model.Exercise{}, "id = ?", id).Error
}

func (r *ExerciseRepository) FindByID(id string) (*model.Exercise, error) {
	var ex model.Exercise
	if err := r.DB.First(&ex, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ex, nil
}

func (r *ExerciseRepository) Find(topik, kesulitan string, page, limit int) ([]model.Exercise, int64, error) {
	q := r.DB.Model(&model.Exercise{})
	if topik != "" {
		q = q.Where("topik = ?", topik)
	}
	if kesulitan != "" {
		q = q.Where("tingkat_kesulitan = ?", kesulitan)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Exercise
	err := q.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).Error
	return list, total, err
}

func (r *ExerciseRepository) CreateSubmission(sub *model.ExerciseSubmission) error {
	return r.DB.Create(sub).Error
}

func (r *ExerciseRepository) FindSubmissionsByStudent(studentID string, limit int) ([]model.ExerciseSubmission, error) {
	var subs []model.ExerciseSubmission
	err := r.DB.
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&subs).Error
	return subs, err
}
