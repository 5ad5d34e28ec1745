package service

import (
	"context"
	"fmt"

	"pahamkode_backend/internal/model"
	"pahamkode_backend/internal/repository"
	"pahamkode_backend/internal/util"
	"pahamkode_backend/pkg/logger"

	"go.uber.org/zap"
)

// Classifier adalah kolaborator eksternal yang mengubah kode + pesan error
// menjadi hasil klasifikasi terstruktur.
type Classifier interface {
	Classify(ctx context.Context, kode, pesanError, bahasa string, sc StudentContext) (*ClassificationResult, error)
}

// AnalyzeRequest adalah input dari layer request.
type AnalyzeRequest struct {
	Kode       string `json:"kode" binding:"required"`
	PesanError string `json:"pesan_error" binding:"required"`
	Bahasa     string `json:"bahasa"`
}

// AnalysisResponse adalah hasil klasifikasi lengkap ditambah peringatan pola
// bila kesalahan yang sama sudah berulang.
type AnalysisResponse struct {
	ID string `json:"id"`
	ClassificationResult
	PeringatanPola    string `json:"peringatan_pola,omitempty"`
	JumlahErrorSerupa int64  `json:"jumlah_error_serupa"`
}

// AnalysisService adalah jalur ingest: klasifikasi dan penulisan submisi
// adalah satu unit logis (gagal klasifikasi berarti tidak ada baris ditulis),
// sedangkan pembaruan pola/penguasaan berjalan best-effort setelah respons
// utama terbentuk.
type AnalysisService struct {
	Classifier  Classifier
	Submissions *repository.SubmissionRepository
	Users       *repository.UserRepository
	Patterns    *PatternService
}

func NewAnalysisService(
	classifier Classifier,
	submissions *repository.SubmissionRepository,
	users *repository.UserRepository,
	patterns *PatternService,
) *AnalysisService {
	return &AnalysisService{
		Classifier:  classifier,
		Submissions: submissions,
		Users:       users,
		Patterns:    patterns,
	}
}

func (s *AnalysisService) Analyze(ctx context.Context, studentID string, req AnalyzeRequest) (*AnalysisResponse, error) {
	if req.Bahasa == "" {
		req.Bahasa = "python"
	}

	sc := s.buildStudentContext(studentID)

	result, err := s.Classifier.Classify(ctx, req.Kode, req.PesanError, req.Bahasa, sc)
	if err != nil {
		return nil, err
	}

	sub := model.ErrorSubmission{
		StudentID:         studentID,
		Code:              req.Kode,
		ErrorMessage:      req.PesanError,
		Language:          req.Bahasa,
		ErrorType:         result.TipeError,
		PrimaryCause:      result.PenyebabUtama,
		ConceptGap:        result.KesenjanganKonsep,
		BloomLevel:        result.LevelBloom,
		Explanation:       result.Penjelasan,
		SuggestedFix:      result.SaranPerbaikan,
		RelatedTopics:     result.TopikTerkait,
		SuggestedExercise: result.SaranLatihan,
	}
	if err := s.Submissions.Append(&sub); err != nil {
		return nil, err
	}

	resp := &AnalysisResponse{
		ID:                   sub.ID,
		ClassificationResult: *result,
	}

	// Deteksi pola berjalan setelah respons utama lengkap. Kegagalannya
	// sudah diisolasi di dalam Process; di sini hanya hasilnya yang dipakai.
	warning, count := s.Patterns.Process(&sub)
	resp.PeringatanPola = warning
	resp.JumlahErrorSerupa = count

	return resp, nil
}

// buildStudentContext mengumpulkan konteks personalisasi. Kegagalan di sini
// tidak menggagalkan analisis: konteks kosong tetap valid.
func (s *AnalysisService) buildStudentContext(studentID string) StudentContext {
	sc := StudentContext{TingkatKemahiran: model.KemahiranPemula}

	user, err := s.Users.FindByID(studentID)
	if err == nil && user.TingkatKemahiran != "" {
		sc.TingkatKemahiran = user.TingkatKemahiran
	}

	recent, err := s.Submissions.FindRecentByStudent(studentID, 5)
	if err != nil {
		logger.Log.Warn("failed to load submission history for context",
			zap.String("student_id", studentID),
			zap.Error(err))
		return sc
	}
	for _, r := range recent {
		if r.ErrorType == "" || r.ConceptGap == "" {
			continue
		}
		sc.RiwayatError = append(sc.RiwayatError, fmt.Sprintf("- %s: %s", r.ErrorType, r.ConceptGap))
	}
	return sc
}

// History mengembalikan riwayat submisi mahasiswa, terbaru dulu.
func (s *AnalysisService) History(studentID string, page, limit int) ([]model.ErrorSubmission, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Submissions.FindByStudent(studentID, page, limit)
}

// Detail mengembalikan satu submisi milik mahasiswa tersebut.
func (s *AnalysisService) Detail(studentID, submissionID string) (*model.ErrorSubmission, error) {
	sub, err := s.Submissions.FindByID(submissionID)
	if err != nil {
		return nil, err
	}
	if sub.StudentID != studentID {
		return nil, util.ErrSubmissionNotFound
	}
	return sub, nil
}
