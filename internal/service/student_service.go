package service

import (
	"bytes"
	"encoding/csv"
	"strings"
	"time"

	"pahamkode_backend/internal/model"
	"pahamkode_backend/internal/repository"
	"pahamkode_backend/internal/util"
)

// StudentService menyajikan dashboard dan rekomendasi per mahasiswa.
type StudentService struct {
	Submissions *repository.SubmissionRepository
	Patterns    *repository.PatternRepository
	Progress    *repository.ProgressRepository
	Resources   *repository.ResourceRepository
}

func NewStudentService(
	submissions *repository.SubmissionRepository,
	patterns *repository.PatternRepository,
	progress *repository.ProgressRepository,
	resources *repository.ResourceRepository,
) *StudentService {
	return &StudentService{
		Submissions: submissions,
		Patterns:    patterns,
		Progress:    progress,
		Resources:   resources,
	}
}

type WeakTopic struct {
	Topik             string `json:"topik"`
	TingkatPenguasaan int    `json:"tingkat_penguasaan"`
	JumlahError       int    `json:"jumlah_error"`
}

type StudentDashboard struct {
	TotalAnalisis      int64                   `json:"total_analisis"`
	RataPenguasaan     float64                 `json:"rata_rata_penguasaan"`
	Tren               string                  `json:"tren"`
	ErrorMingguIni     int64                   `json:"error_minggu_ini"`
	TopikDikuasai      int64                   `json:"topik_dikuasai"`
	JumlahPola         int64                   `json:"jumlah_pola"`
	AktivitasTerakhir  []model.ErrorSubmission `json:"aktivitas_terakhir"`
	RekomendasiBelajar []WeakTopic             `json:"rekomendasi_belajar"`
}

// GetDashboard merangkum kemajuan satu mahasiswa. Semua angka dihitung dari
// riwayat saat diminta, tanpa state antar panggilan.
func (s *StudentService) GetDashboard(studentID string) (*StudentDashboard, error) {
	dash := &StudentDashboard{}

	var err error
	if dash.TotalAnalisis, err = s.Submissions.CountByStudent(studentID); err != nil {
		return nil, err
	}

	mean, rows, err := s.Progress.MeanMasteryByStudent(studentID)
	if err != nil {
		return nil, err
	}
	dash.RataPenguasaan = mean
	// Tanpa data progress, tren netral: belum ada dasar untuk menilai.
	if rows == 0 {
		dash.Tren = model.TrenStabil
	} else {
		dash.Tren = model.TrendFor(mean)
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	if dash.ErrorMingguIni, err = s.Submissions.CountByStudentSince(studentID, weekAgo); err != nil {
		return nil, err
	}
	if dash.TopikDikuasai, err = s.Progress.CountMastered(studentID, 70); err != nil {
		return nil, err
	}
	if dash.JumlahPola, err = s.Patterns.CountByStudent(studentID); err != nil {
		return nil, err
	}
	if dash.AktivitasTerakhir, err = s.Submissions.FindRecentByStudent(studentID, 5); err != nil {
		return nil, err
	}

	weak, err := s.Progress.WeakestByStudent(studentID, 50, 3)
	if err != nil {
		return nil, err
	}
	dash.RekomendasiBelajar = make([]WeakTopic, 0, len(weak))
	for _, w := range weak {
		dash.RekomendasiBelajar = append(dash.RekomendasiBelajar, WeakTopic{
			Topik:             w.Topik,
			TingkatPenguasaan: w.MasteryScore,
			JumlahError:       w.ErrorCount,
		})
	}
	return dash, nil
}

// GetProgress mengembalikan seluruh baris penguasaan topik mahasiswa.
func (s *StudentService) GetProgress(studentID string) ([]model.TopicProgress, error) {
	return s.Progress.FindByStudent(studentID)
}

type ResourceRecommendation struct {
	TopikLemah []WeakTopic              `json:"topik_lemah"`
	SumberDaya []model.LearningResource `json:"sumber_daya"`
}

// GetResourceRecommendations mencari materi untuk topik dengan penguasaan
// di bawah 70. Mahasiswa tanpa topik lemah mendapat materi tingkat pemula.
func (s *StudentService) GetResourceRecommendations(studentID string) (*ResourceRecommendation, error) {
	weak, err := s.Progress.WeakestByStudent(studentID, 70, 5)
	if err != nil {
		return nil, err
	}

	rec := &ResourceRecommendation{
		TopikLemah: make([]WeakTopic, 0, len(weak)),
		SumberDaya: []model.LearningResource{},
	}
	topics := make([]string, 0, len(weak))
	for _, w := range weak {
		topics = append(topics, w.Topik)
		rec.TopikLemah = append(rec.TopikLemah, WeakTopic{
			Topik:             w.Topik,
			TingkatPenguasaan: w.MasteryScore,
			JumlahError:       w.ErrorCount,
		})
	}

	if len(topics) > 0 {
		rec.SumberDaya, err = s.Resources.FindByTopics(topics, 10)
		if err != nil {
			return nil, err
		}
	}
	if len(rec.SumberDaya) == 0 {
		rec.SumberDaya, err = s.Resources.FindByDifficulty(model.KemahiranPemula, 5)
		if err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// ExportCSV menulis riwayat analisis mahasiswa sebagai CSV.
// Periode: minggu_ini, bulan_ini, atau semua.
func (s *StudentService) ExportCSV(studentID, periode string) ([]byte, error) {
	var since *time.Time
	now := time.Now()
	switch periode {
	case util.PeriodeMingguIni:
		t := now.AddDate(0, 0, -7)
		since = &t
	case util.PeriodeBulanIni:
		t := now.AddDate(0, -1, 0)
		since = &t
	}

	subs, err := s.Submissions.FindByStudentSince(studentID, since)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"Tanggal", "Bahasa", "Tipe Error", "Penyebab Utama", "Kesenjangan Konsep", "Level Bloom", "Topik Terkait"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sub := range subs {
		record := []string{
			sub.CreatedAt.Format(util.TimeFormat),
			sub.Language,
			sub.ErrorType,
			sub.PrimaryCause,
			sub.ConceptGap,
			string(sub.BloomLevel),
			strings.Join(sub.RelatedTopics, "; "),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
