package repository

import (
	"pahamkode_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PatternRepository mengelola tabel turunan error_patterns yang unik per
// (mahasiswa, jenis kesalahan).
type PatternRepository struct {
	DB *gorm.DB
}

func NewPatternRepository(db *gorm.DB) *PatternRepository {
	return &PatternRepository{DB: db}
}

// Upsert adalah satu statement atomik (INSERT ... ON CONFLICT/DUPLICATE KEY
// UPDATE), bukan read-then-write. Dua penulis konkuren pada kunci yang sama
// diserialisasi database: penulis kedua jatuh ke cabang update, tidak pernah
// membuat baris kedua. first_seen hanya terisi saat create dan tidak diubah
// oleh cabang update.
func (r *PatternRepository) Upsert(p *model.ErrorPattern) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "error_type"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"frequency",
			"misconception",
			"last_seen",
			"recommended_resources",
			"updated_at",
		}),
	}).Create(p).Error
}

func (r *PatternRepository) FindByStudent(studentID string, limit int) ([]model.ErrorPattern, error) {
	var patterns []model.ErrorPattern
	err := r.DB.
		Where("student_id = ?", studentID).
		Order("frequency DESC, error_type ASC").
		Limit(limit).
		Find(&patterns).Error
	return patterns, err
}

func (r *PatternRepository) Get(studentID, errorType string) (*model.ErrorPattern, error) {
	var pattern model.ErrorPattern
	err := r.DB.
		Where("student_id = ? AND error_type = ?", studentID, errorType).
		First(&pattern).Error
	if err != nil {
		return nil, err
	}
	return &pattern, nil
}

func (r *PatternRepository) CountByStudent(studentID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ErrorPattern{}).
		Where("student_id = ?", studentID).
		Count(&count).Error
	return count, err
}
