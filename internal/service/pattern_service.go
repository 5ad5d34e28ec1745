package service

import (
	"fmt"
	"strings"
	"time"

	"pahamkode_backend/internal/model"
	"pahamkode_backend/internal/repository"
	"pahamkode_backend/pkg/logger"

	"go.uber.org/zap"
)

// PatternStore adalah bagian dari PatternRepository yang dipakai layanan ini.
type PatternStore interface {
	Upsert(p *model.ErrorPattern) error
	FindByStudent(studentID string, limit int) ([]model.ErrorPattern, error)
	CountByStudent(studentID string) (int64, error)
}

// PatternService mendeteksi pola kesalahan berulang. Seluruh kegagalan store
// di jalur ini bersifat non-fatal: dicatat di log, tidak pernah menggagalkan
// request analisis yang memicunya.
type PatternService struct {
	Submissions *repository.SubmissionRepository
	Patterns    PatternStore
	Mastery     *MasteryService

	// Ambang kemunculan tipe error yang sama sebelum pola dianggap terdeteksi.
	Threshold int
	// Batas atas daftar topik yang direkomendasikan pada satu pola.
	MaxTopics int
}

func NewPatternService(
	submissions *repository.SubmissionRepository,
	patterns PatternStore,
	mastery *MasteryService,
	threshold, maxTopics int,
) *PatternService {
	if threshold <= 0 {
		threshold = 3
	}
	if maxTopics <= 0 {
		maxTopics = 10
	}
	return &PatternService{
		Submissions: submissions,
		Patterns:    patterns,
		Mastery:     mastery,
		Threshold:   threshold,
		MaxTopics:   maxTopics,
	}
}

// Process menjalankan deteksi pola untuk satu submisi yang baru ditulis.
// Mengembalikan peringatan pola (kosong bila belum berulang) dan jumlah
// error serupa (0 bila di bawah ambang).
func (s *PatternService) Process(sub *model.ErrorSubmission) (string, int64) {
	count, err := s.Submissions.CountByStudentAndType(sub.StudentID, sub.ErrorType)
	if err != nil {
		logger.Log.Error("pattern detection: count failed",
			zap.String("student_id", sub.StudentID),
			zap.String("error_type", sub.ErrorType),
			zap.Error(err))
		return "", 0
	}

	if count < int64(s.Threshold) {
		return "", 0
	}

	warning := buildWarning(sub.ErrorType, count, sub.RelatedTopics)

	if err := s.upsertPattern(sub, count); err != nil {
		logger.Log.Error("pattern detection: upsert failed",
			zap.String("student_id", sub.StudentID),
			zap.String("error_type", sub.ErrorType),
			zap.Error(err))
		return warning, count
	}

	// Fan-out penguasaan hanya untuk topik submisi pemicu.
	for _, topik := range sub.RelatedTopics {
		if err := s.Mastery.Update(sub.StudentID, topik); err != nil {
			logger.Log.Error("mastery update failed",
				zap.String("student_id", sub.StudentID),
				zap.String("topik", topik),
				zap.Error(err))
		}
	}

	return warning, count
}

func buildWarning(errorType string, count int64, topics []string) string {
	if len(topics) > 3 {
		topics = topics[:3]
	}
	warning := fmt.Sprintf("Pola terdeteksi: kamu sudah mengalami '%s' sebanyak %d kali.", errorType, count)
	if len(topics) > 0 {
		warning += " Pertimbangkan untuk mempelajari kembali: " + strings.Join(topics, ", ")
	}
	return warning
}

func (s *PatternService) upsertPattern(sub *model.ErrorSubmission, count int64) error {
	firstSeen, err := s.Submissions.FirstSeenAt(sub.StudentID, sub.ErrorType)
	if err != nil {
		return err
	}
	if firstSeen == nil {
		now := time.Now()
		firstSeen = &now
	}

	topics, err := s.Submissions.DistinctTopics(sub.StudentID, sub.ErrorType, s.MaxTopics)
	if err != nil {
		return err
	}

	lastSeen := sub.CreatedAt
	pattern := model.ErrorPattern{
		StudentID:            sub.StudentID,
		ErrorType:            sub.ErrorType,
		Frequency:            int(count),
		FirstSeen:            firstSeen,
		LastSeen:             &lastSeen,
		Misconception:        sub.ConceptGap,
		RecommendedResources: topics,
	}

	// Konflik kunci yang lolos dari upsert atomik diperlakukan sebagai
	// kegagalan transien: dicoba ulang sekali sebelum menyerah.
	if err := s.Patterns.Upsert(&pattern); err != nil {
		pattern.ID = ""
		if retryErr := s.Patterns.Upsert(&pattern); retryErr != nil {
			return retryErr
		}
	}
	return nil
}

// PatternTrendSummary merangkum tren kesalahan satu mahasiswa.
type PatternTrendSummary struct {
	TotalSubmisi            int64              `json:"total_submisi"`
	PolaUnikTeridentifikasi int64              `json:"pola_unik_teridentifikasi"`
	KesalahanPalingSering   []PatternTrendItem `json:"kesalahan_paling_sering"`
}

type PatternTrendItem struct {
	Jenis       string `json:"jenis"`
	Frekuensi   int    `json:"frekuensi"`
	Miskonsepsi string `json:"miskonsepsi"`
}

// GetPatterns mengembalikan pola kesalahan mahasiswa, paling sering di atas.
func (s *PatternService) GetPatterns(studentID string, limit int) ([]model.ErrorPattern, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.Patterns.FindByStudent(studentID, limit)
}

// GetTrend merangkum riwayat kesalahan mahasiswa dari waktu ke waktu.
func (s *PatternService) GetTrend(studentID string) (*PatternTrendSummary, error) {
	total, err := s.Submissions.CountByStudent(studentID)
	if err != nil {
		return nil, err
	}

	unique, err := s.Patterns.CountByStudent(studentID)
	if err != nil {
		return nil, err
	}

	top, err := s.Patterns.FindByStudent(studentID, 3)
	if err != nil {
		return nil, err
	}

	items := make([]PatternTrendItem, len(top))
	for i, p := range top {
		items[i] = PatternTrendItem{
			Jenis:       p.ErrorType,
			Frekuensi:   p.Frequency,
			Miskonsepsi: p.Misconception,
		}
	}

	return &PatternTrendSummary{
		TotalSubmisi:            total,
		PolaUnikTeridentifikasi: unique,
		KesalahanPalingSering:   items,
	}, nil
}
