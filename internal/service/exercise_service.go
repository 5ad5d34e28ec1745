package service

import (
	"errors"

	"pahamkode_backend/internal/model"
	"pahamkode_backend/internal/repository"
	"pahamkode_backend/internal/util"

	"gorm.io/gorm"
)

// ExerciseService mengelola latihan terarah dan submisi jawabannya.
type ExerciseService struct {
	Exercises *repository.ExerciseRepository
	Progress  *repository.ProgressRepository
}

func NewExerciseService(exercises *repository.ExerciseRepository, progress *repository.ProgressRepository) *ExerciseService {
	return &ExerciseService{Exercises: exercises, Progress: progress}
}

func (s *ExerciseService) List(topik, kesulitan string, page, limit int) ([]model.Exercise, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Exercises.Find(topik, kesulitan, page, limit)
}

func (s *ExerciseService) Get(id string) (*model.Exercise, error) {
	ex, err := s.Exercises.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExerciseNotFound
		}
		return nil, err
	}
	return ex, nil
}

// Recommended mengembalikan latihan untuk topik terlemah mahasiswa.
// Tanpa topik lemah, daftar latihan pemula yang dikembalikan.
func (s *ExerciseService) Recommended(studentID string, limit int) ([]model.Exercise, error) {
	if limit <= 0 || limit > 20 {
		limit = 5
	}
	weak, err := s.Progress.WeakestByStudent(studentID, 70, 3)
	if err != nil {
		return nil, err
	}

	var out []model.Exercise
	seen := map[string]bool{}
	for _, w := range weak {
		exs, _, ferr := s.Exercises.Find(w.Topik, "", 1, limit)
		if ferr != nil {
			return nil, ferr
		}
		for _, ex := range exs {
			if len(out) >= limit {
				return out, nil
			}
			if seen[ex.ID] {
				continue
			}
			seen[ex.ID] = true
			out = append(out, ex)
		}
	}
	if len(out) == 0 {
		exs, _, ferr := s.Exercises.Find("", model.KemahiranPemula, 1, limit)
		if ferr != nil {
			return nil, ferr
		}
		out = exs
	}
	return out, nil
}

type ExerciseSubmitRequest struct {
	KodeSubmisi string `json:"kode_submisi" binding:"required"`
}

// Submit menyimpan jawaban latihan. Penilaian otomatis belum ada; submisi
// dicatat sebagai selesai dan bisa dinilai pengajar lewat admin.
func (s *ExerciseService) Submit(studentID, exerciseID string, req ExerciseSubmitRequest) (*model.ExerciseSubmission, error) {
	if _, err := s.Get(exerciseID); err != nil {
		return nil, err
	}

	sub := &model.ExerciseSubmission{
		StudentID:     studentID,
		ExerciseID:    exerciseID,
		KodeSubmisi:   req.KodeSubmisi,
		StatusSelesai: true,
	}
	if err := s.Exercises.CreateSubmission(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *ExerciseService) SubmissionHistory(studentID string, limit int) ([]model.ExerciseSubmission, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Exercises.FindSubmissionsByStudent(studentID, limit)
}

// Create, Update, dan Delete dipakai oleh pengajar/admin.
func (s *ExerciseService) Create(ex *model.Exercise) error {
	if !validKesulitan(ex.TingkatKesulitan) {
		ex.TingkatKesulitan = model.KemahiranPemula
	}
	return s.Exercises.Create(ex)
}

func (s *ExerciseService) Update(id string, ex *model.Exercise) error {
	existing, err := s.Get(id)
	if err != nil {
		return err
	}
	ex.ID = existing.ID
	ex.CreatedAt = existing.CreatedAt
	return s.Exercises.Update(ex)
}

func (s *ExerciseService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Exercises.Delete(id)
}

func validKesulitan(k string) bool {
	switch k {
	case model.KemahiranPemula, model.KemahiranMenengah, model.KemahiranMahir:
		return true
	}
	return false
}
