package service

import (
	"pahamkode_backend/internal/model"
	"pahamkode_backend/internal/repository"
)

// MasteryService menghitung ulang tingkat penguasaan satu topik untuk satu
// mahasiswa. Skor selalu diturunkan dari hitungan penuh riwayat submisi,
// tidak pernah diinkremen terpisah, sehingga pemanggilan berulang tanpa
// submisi baru menghasilkan baris yang identik.
type MasteryService struct {
	Submissions *repository.SubmissionRepository
	Progress    *repository.ProgressRepository
}

func NewMasteryService(submissions *repository.SubmissionRepository, progress *repository.ProgressRepository) *MasteryService {
	return &MasteryService{Submissions: submissions, Progress: progress}
}

// Update menghitung ulang dan meng-upsert TopicProgress(mahasiswa, topik).
func (s *MasteryService) Update(studentID, topik string) error {
	count, err := s.Submissions.CountByStudentTopic(studentID, topik)
	if err != nil {
		return err
	}

	lastError, err := s.Submissions.LatestTopicErrorAt(studentID, topik)
	if err != nil {
		return err
	}

	tp := model.TopicProgress{
		StudentID:     studentID,
		Topik:         topik,
		MasteryScore:  model.MasteryScoreFor(int(count)),
		ErrorCount:    int(count),
		LastErrorDate: lastError,
	}
	return s.Progress.Upsert(&tp)
}
