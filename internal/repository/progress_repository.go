package repository

import (
	"pahamkode_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository mengelola tabel turunan topic_progress yang unik per
// (mahasiswa, topik).
type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Upsert atomik dengan kontrak yang sama seperti PatternRepository.Upsert.
func (r *ProgressRepository) Upsert(tp *model.TopicProgress) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "topik"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"mastery_score",
			"error_count",
			"last_error_date",
			"updated_at",
		}),
	}).Create(tp).Error
}

func (r *ProgressRepository) Get(studentID, topik string) (*model.TopicProgress, error) {
	var tp model.TopicProgress
	err := r.DB.
		Where("student_id = ? AND topik = ?", studentID, topik).
		First(&tp).Error
	if err != nil {
		return nil, err
	}
	return &tp, nil
}

func (r *ProgressRepository) FindByStudent(studentID string) ([]model.TopicProgress, error) {
	var rows []model.TopicProgress
	err := r.DB.
		Where("student_id = ?", studentID).
		Order("mastery_score DESC, topik ASC").
		Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) WeakestByStudent(studentID string, maxScore, limit int) ([]model.TopicProgress, error) {
	var rows []model.TopicProgress
	err := r.DB.
		Where("student_id = ? AND mastery_score < ?", studentID, maxScore).
		Order("mastery_score ASC, topik ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) CountMastered(studentID string, minScore int) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TopicProgress{}).
		Where("student_id = ? AND mastery_score > ?", studentID, minScore).
		Count(&count).Error
	return count, err
}

// MeanMasteryByStudent mengembalikan rata-rata penguasaan dan jumlah baris;
// nol baris berarti rata-rata 0 tanpa error pembagian.
func (r *ProgressRepository) MeanMasteryByStudent(studentID string) (float64, int64, error) {
	var count int64
	if err := r.DB.Model(&model.TopicProgress{}).
		Where("student_id = ?", studentID).
		Count(&count).Error; err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}

	var mean float64
	err := r.DB.Model(&model.TopicProgress{}).
		Where("student_id = ?", studentID).
		Select("AVG(mastery_score)").
		Scan(&mean).Error
	return mean, count, err
}

func (r *ProgressRepository) GlobalMeanMastery() (float64, int64, error) {
	var count int64
	if err := r.DB.Model(&model.TopicProgress{}).Count(&count).Error; err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}

	var mean float64
	err := r.DB.Model(&model.TopicProgress{}).
		Select("AVG(mastery_score)").
		Scan(&mean).Error
	return mean, count, err
}

// TopicStat adalah baris agregat kesulitan per topik lintas mahasiswa.
type TopicStat struct {
	Topik       string  `json:"topik"`
	TotalError  int64   `json:"total_error"`
	Students    int64   `json:"jumlah_mahasiswa_kesulitan"`
	MeanMastery float64 `json:"rata_rata_penguasaan"`
}

// TopicStats mengurutkan topik berdasarkan total error menurun, seri dipecah
// dengan nama topik menaik.
func (r *ProgressRepository) TopicStats(limit int) ([]TopicStat, error) {
	var rows []TopicStat
	err := r.DB.Model(&model.TopicProgress{}).
		Select("topik AS topik, SUM(error_count) AS total_error, COUNT(DISTINCT student_id) AS students, AVG(mastery_score) AS mean_mastery").
		Group("topik").
		Order("total_error DESC, topik ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// TopicMean adalah rata-rata penguasaan satu topik lintas mahasiswa.
type TopicMean struct {
	Topik       string  `json:"topik"`
	MeanMastery float64 `json:"rata_rata_penguasaan"`
}

func (r *ProgressRepository) TopicMeans() ([]TopicMean, error) {
	var rows []TopicMean
	err := r.DB.Model(&model.TopicProgress{}).
		Select("topik AS topik, AVG(mastery_score) AS mean_mastery").
		Group("topik").
		Order("mean_mastery ASC, topik ASC").
		Scan(&rows).Error
	return rows, err
}
