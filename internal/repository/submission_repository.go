package repository

import (
	"strings"
	"time"

	"pahamkode_backend/internal/model"

	"gorm.io/gorm"
)

// SubmissionRepository mengelola log submisi yang append-only. Tidak ada
// operasi update atau delete di sini: baris submisi tidak pernah berubah.
type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// Append menulis submisi beserta baris topiknya dalam satu transaksi.
// Topik dinormalisasi (trim, dedup) sebelum dipecah ke submission_topics.
func (r *SubmissionRepository) Append(sub *model.ErrorSubmission) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		seen := make(map[string]bool, len(sub.RelatedTopics))
		for _, topik := range sub.RelatedTopics {
			topik = strings.TrimSpace(topik)
			if topik == "" || seen[topik] {
				continue
			}
			seen[topik] = true
			row := model.SubmissionTopic{
				SubmissionID: sub.ID,
				StudentID:    sub.StudentID,
				Topik:        topik,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SubmissionRepository) FindByID(id string) (*model.ErrorSubmission, error) {
	var sub model.ErrorSubmission
	if err := r.DB.First(&sub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubmissionRepository) CountByStudent(studentID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ErrorSubmission{}).
		Where("student_id = ?", studentID).
		Count(&count).Error
	return count, err
}

// CountByStudentAndType adalah hitungan penuh atas seluruh riwayat, bukan
// counter inkremental, sehingga hasilnya mengoreksi diri bila update
// sebelumnya pernah gagal.
func (r *SubmissionRepository) CountByStudentAndType(studentID, errorType string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ErrorSubmission{}).
		Where("student_id = ? AND error_type = ?", studentID, errorType).
		Count(&count).Error
	return count, err
}

// CountByStudentTopic menghitung submisi mahasiswa yang daftar topiknya
// memuat topik tersebut, lewat tabel submission_topics yang terindeks.
func (r *SubmissionRepository) CountByStudentTopic(studentID, topik string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.SubmissionTopic{}).
		Where("student_id = ? AND topik = ?", studentID, topik).
		Count(&count).Error
	return count, err
}

func (r *SubmissionRepository) CountByStudentSince(studentID string, since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ErrorSubmission{}).
		Where("student_id = ? AND created_at >= ?", studentID, since).
		Count(&count).Error
	return count, err
}

func (r *SubmissionRepository) CountAll() (int64, error) {
	var count int64
	err := r.DB.Model(&model.ErrorSubmission{}).Count(&count).Error
	return count, err
}

func (r *SubmissionRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ErrorSubmission{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *SubmissionRepository) CountBetween(start, end time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ErrorSubmission{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	return count, err
}

func (r *SubmissionRepository) DistinctStudentsBetween(start, end time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ErrorSubmission{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Distinct("student_id").
		Count(&count).Error
	return count, err
}

// FirstSeenAt mengembalikan waktu submisi paling awal untuk (mahasiswa, tipe).
func (r *SubmissionRepository) FirstSeenAt(studentID, errorType string) (*time.Time, error) {
	var sub model.ErrorSubmission
	err := r.DB.
		Where("student_id = ? AND error_type = ?", studentID, errorType).
		Order("created_at ASC").
		First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sub.CreatedAt, nil
}

// DistinctTopics mengembalikan gabungan topik terkait (dedup) dari seluruh
// submisi yang cocok dengan (mahasiswa, tipe), dibatasi limit.
func (r *SubmissionRepository) DistinctTopics(studentID, errorType string, limit int) ([]string, error) {
	var topics []string
	err := r.DB.Model(&model.SubmissionTopic{}).
		Joins("JOIN error_submissions ON error_submissions.id = submission_topics.submission_id").
		Where("submission_topics.student_id = ? AND error_submissions.error_type = ?", studentID, errorType).
		Distinct("submission_topics.topik").
		Order("submission_topics.topik ASC").
		Limit(limit).
		Pluck("submission_topics.topik", &topics).Error
	return topics, err
}

// LatestTopicErrorAt mengembalikan waktu submisi terbaru milik mahasiswa yang
// memuat topik tersebut. Dipakai sebagai tanggal_error_terakhir agar baris
// progress tetap fungsi murni dari riwayat, bukan dari jam dinding.
func (r *SubmissionRepository) LatestTopicErrorAt(studentID, topik string) (*time.Time, error) {
	var sub model.ErrorSubmission
	err := r.DB.
		Joins("JOIN submission_topics ON submission_topics.submission_id = error_submissions.id").
		Where("submission_topics.student_id = ? AND submission_topics.topik = ?", studentID, topik).
		Order("error_submissions.created_at DESC").
		First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sub.CreatedAt, nil
}

func (r *SubmissionRepository) FindByStudent(studentID string, page, limit int) ([]model.ErrorSubmission, int64, error) {
	var total int64
	if err := r.DB.Model(&model.ErrorSubmission{}).
		Where("student_id = ?", studentID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []model.ErrorSubmission
	err := r.DB.
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&subs).Error
	return subs, total, err
}

func (r *SubmissionRepository) FindRecentByStudent(studentID string, limit int) ([]model.ErrorSubmission, error) {
	var subs []model.ErrorSubmission
	err := r.DB.
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) FindByStudentSince(studentID string, since *time.Time) ([]model.ErrorSubmission, error) {
	q := r.DB.Where("student_id = ?", studentID)
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	var subs []model.ErrorSubmission
	err := q.Order("created_at DESC").Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) OldestByStudent(studentID string) (*model.ErrorSubmission, error) {
	var sub model.ErrorSubmission
	err := r.DB.
		Where("student_id = ?", studentID).
		Order("created_at ASC").
		First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubmissionRepository) NewestByStudent(studentID string) (*model.ErrorSubmission, error) {
	var sub model.ErrorSubmission
	err := r.DB.
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// TypeCount adalah baris agregat jumlah submisi per tipe error.
type TypeCount struct {
	ErrorType string `json:"tipe_error"`
	Jumlah    int64  `json:"jumlah"`
}

// TopErrorTypes mengurutkan tipe error berdasarkan jumlah kemunculan,
// seri dipecah dengan urutan tipe menaik agar hasil deterministik.
func (r *SubmissionRepository) TopErrorTypes(limit int) ([]TypeCount, error) {
	var rows []TypeCount
	err := r.DB.Model(&model.ErrorSubmission{}).
		Select("error_type AS error_type, COUNT(*) AS jumlah").
		Where("error_type <> ''").
		Group("error_type").
		Order("jumlah DESC, error_type ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// StudentCount adalah baris agregat jumlah submisi per mahasiswa.
type StudentCount struct {
	StudentID string `json:"id_mahasiswa"`
	Jumlah    int64  `json:"jumlah"`
}

func (r *SubmissionRepository) TopStudents(limit int) ([]StudentCount, error) {
	var rows []StudentCount
	err := r.DB.Model(&model.ErrorSubmission{}).
		Select("student_id AS student_id, COUNT(*) AS jumlah").
		Group("student_id").
		Order("jumlah DESC, student_id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// GlobalTypeStat adalah baris agregat lintas mahasiswa per tipe error.
type GlobalTypeStat struct {
	ErrorType string `json:"jenis_kesalahan"`
	Total     int64  `json:"total_kemunculan"`
	Students  int64  `json:"jumlah_mahasiswa_terpengaruh"`
}

func (r *SubmissionRepository) GlobalTypeStats(limit int) ([]GlobalTypeStat, error) {
	var rows []GlobalTypeStat
	err := r.DB.Model(&model.ErrorSubmission{}).
		Select("error_type AS error_type, COUNT(*) AS total, COUNT(DISTINCT student_id) AS students").
		Where("error_type <> ''").
		Group("error_type").
		Order("total DESC, error_type ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// DistinctConceptGaps mengambil sejumlah deskripsi miskonsepsi berbeda
// yang tercatat untuk satu tipe error.
func (r *SubmissionRepository) DistinctConceptGaps(errorType string, limit int) ([]string, error) {
	var gaps []string
	err := r.DB.Model(&model.ErrorSubmission{}).
		Where("error_type = ? AND concept_gap <> ''", errorType).
		Distinct("concept_gap").
		Order("concept_gap ASC").
		Limit(limit).
		Pluck("concept_gap", &gaps).Error
	return gaps, err
}
