package service

import (
	"context"
	"testing"

	"pahamkode_backend/internal/model"
	"pahamkode_backend/internal/repository"
	"pahamkode_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeClassifier struct {
	result *ClassificationResult
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(ctx context.Context, kode, pesanError, bahasa string, sc StudentContext) (*ClassificationResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newAnalysisService(db *gorm.DB, classifier Classifier) *AnalysisService {
	subs := repository.NewSubmissionRepository(db)
	users := repository.NewUserRepository(db)
	return NewAnalysisService(classifier, subs, users, newPatternService(db))
}

func TestAnalyzeSuccess(t *testing.T) {
	db := newTestDB(t)
	student := createStudent(t, db, "analisis@uji.id")

	classifier := &fakeClassifier{result: &ClassificationResult{
		TipeError:         "TypeMismatch",
		PenyebabUtama:     "operasi string dengan angka",
		KesenjanganKonsep: "konversi tipe data",
		LevelBloom:        model.BloomUnderstand,
		Penjelasan:        "String dan int tidak bisa dijumlahkan langsung",
		SaranPerbaikan:    "gunakan int() atau str()",
		TopikTerkait:      []string{"tipe data"},
	}}
	svc := newAnalysisService(db, classifier)

	resp, err := svc.Analyze(context.Background(), student.ID, AnalyzeRequest{
		Kode:       "x = '1' + 2",
		PesanError: "TypeError",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "TypeMismatch", resp.TipeError)
	assert.Empty(t, resp.PeringatanPola)
	assert.Zero(t, resp.JumlahErrorSerupa)

	var rows int64
	db.Model(&model.ErrorSubmission{}).Where("student_id = ?", student.ID).Count(&rows)
	assert.Equal(t, int64(1), rows)

	var topics int64
	db.Model(&model.SubmissionTopic{}).Where("student_id = ?", student.ID).Count(&topics)
	assert.Equal(t, int64(1), topics)
}

func TestAnalyzeClassificationFailureWritesNothing(t *testing.T) {
	db := newTestDB(t)
	student := createStudent(t, db, "gagal@uji.id")

	classifier := &fakeClassifier{err: util.ErrClassificationFailed}
	svc := newAnalysisService(db, classifier)

	_, err := svc.Analyze(context.Background(), student.ID, AnalyzeRequest{
		Kode:       "print(x)",
		PesanError: "NameError",
	})
	require.ErrorIs(t, err, util.ErrClassificationFailed)

	var rows int64
	db.Model(&model.ErrorSubmission{}).Where("student_id = ?", student.ID).Count(&rows)
	assert.Zero(t, rows)
}

func TestAnalyzeWarnsOnThirdRecurrence(t *testing.T) {
	db := newTestDB(t)
	student := createStudent(t, db, "ketiga@uji.id")

	classifier := &fakeClassifier{result: &ClassificationResult{
		TipeError:         "IndexOutOfBounds",
		KesenjanganKonsep: "indeks list",
		LevelBloom:        model.BloomApply,
		TopikTerkait:      []string{"list"},
	}}
	svc := newAnalysisService(db, classifier)

	var resp *AnalysisResponse
	var err error
	for i := 0; i < 3; i++ {
		resp, err = svc.Analyze(context.Background(), student.ID, AnalyzeRequest{
			Kode:       "xs[5]",
			PesanError: "IndexError",
		})
		require.NoError(t, err)
	}

	assert.Equal(t, int64(3), resp.JumlahErrorSerupa)
	assert.Contains(t, resp.PeringatanPola, "IndexOutOfBounds")
	assert.Contains(t, resp.PeringatanPola, "3 kali")
}

func TestAnalyzeDefaultsLanguage(t *testing.T) {
	db := newTestDB(t)
	student := createStudent(t, db, "bahasa@uji.id")

	classifier := &fakeClassifier{result: &ClassificationResult{
		TipeError:  "SyntaxError",
		LevelBloom: model.BloomRemember,
	}}
	svc := newAnalysisService(db, classifier)

	resp, err := svc.Analyze(context.Background(), student.ID, AnalyzeRequest{
		Kode:       "if x",
		PesanError: "SyntaxError: invalid syntax",
	})
	require.NoError(t, err)

	sub, err := repository.NewSubmissionRepository(db).FindByID(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "python", sub.Language)
}

func TestAnalyzeUnknownStudentFallsBackToPemula(t *testing.T) {
	db := newTestDB(t)

	classifier := &fakeClassifier{result: &ClassificationResult{
		TipeError:  "NameError",
		LevelBloom: model.BloomRemember,
	}}
	svc := newAnalysisService(db, classifier)

	// ID tanpa baris user tetap dianalisis; konteks memakai default pemula.
	resp, err := svc.Analyze(context.Background(), model.GenerateUUID(), AnalyzeRequest{
		Kode:       "print(y)",
		PesanError: "NameError",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, classifier.calls)
	assert.NotEmpty(t, resp.ID)
}

func TestDetailOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := createStudent(t, db, "pemilik@uji.id")
	other := createStudent(t, db, "lain@uji.id")

	sub := appendSubmission(t, db, owner.ID, "TypeMismatch", nil)
	svc := newAnalysisService(db, &fakeClassifier{})

	got, err := svc.Detail(owner.ID, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)

	_, err = svc.Detail(other.ID, sub.ID)
	assert.ErrorIs(t, err, util.ErrSubmissionNotFound)
}
