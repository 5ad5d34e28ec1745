package service

import (
	"testing"

	"pahamkode_backend/internal/model"
	"pahamkode_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPatternService(db *gorm.DB) *PatternService {
	subs := repository.NewSubmissionRepository(db)
	pats := repository.NewPatternRepository(db)
	progress := repository.NewProgressRepository(db)
	mastery := NewMasteryService(subs, progress)
	return NewPatternService(subs, pats, mastery, 3, 10)
}

func TestProcessBelowThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := newPatternService(db)
	student := createStudent(t, db, "dibawah@uji.id")

	var last *model.ErrorSubmission
	for i := 0; i < 2; i++ {
		last = appendSubmission(t, db, student.ID, "TypeMismatch", []string{"tipe data"})
	}

	warning, count := svc.Process(last)
	assert.Empty(t, warning)
	assert.Zero(t, count)

	var rows int64
	db.Model(&model.ErrorPattern{}).Where("student_id = ?", student.ID).Count(&rows)
	assert.Zero(t, rows)
}

func TestProcessAtThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := newPatternService(db)
	student := createStudent(t, db, "ambang@uji.id")

	var last *model.ErrorSubmission
	for i := 0; i < 3; i++ {
		last = appendSubmission(t, db, student.ID, "TypeMismatch", []string{"tipe data", "konversi tipe"})
	}

	warning, count := svc.Process(last)
	assert.Equal(t, int64(3), count)
	assert.Contains(t, warning, "TypeMismatch")
	assert.Contains(t, warning, "3 kali")
	assert.Contains(t, warning, "tipe data")

	pattern, err := repository.NewPatternRepository(db).Get(student.ID, "TypeMismatch")
	require.NoError(t, err)
	assert.Equal(t, 3, pattern.Frequency)
	require.NotNil(t, pattern.FirstSeen)
	require.NotNil(t, pattern.LastSeen)
	assert.Contains(t, pattern.RecommendedResources, "tipe data")

	// Penguasaan topik pemicu ikut terdongkrak turun.
	tp, err := repository.NewProgressRepository(db).Get(student.ID, "tipe data")
	require.NoError(t, err)
	assert.Equal(t, 3, tp.ErrorCount)
	assert.Equal(t, 70, tp.MasteryScore)
}

func TestProcessRecountsNotIncrements(t *testing.T) {
	db := newTestDB(t)
	svc := newPatternService(db)
	student := createStudent(t, db, "hitungulang@uji.id")

	var last *model.ErrorSubmission
	for i := 0; i < 3; i++ {
		last = appendSubmission(t, db, student.ID, "IndexOutOfBounds", []string{"list"})
		svc.Process(last)
	}

	// Proses ulang submisi yang sama: frekuensi tetap hasil hitung penuh.
	warning, count := svc.Process(last)
	assert.Equal(t, int64(3), count)
	assert.NotEmpty(t, warning)

	var rows int64
	db.Model(&model.ErrorPattern{}).
		Where("student_id = ? AND error_type = ?", student.ID, "IndexOutOfBounds").
		Count(&rows)
	assert.Equal(t, int64(1), rows)

	pattern, err := repository.NewPatternRepository(db).Get(student.ID, "IndexOutOfBounds")
	require.NoError(t, err)
	assert.Equal(t, 3, pattern.Frequency)
}

func TestProcessFourthSubmission(t *testing.T) {
	db := newTestDB(t)
	svc := newPatternService(db)
	student := createStudent(t, db, "keempat@uji.id")

	for i := 0; i < 4; i++ {
		sub := appendSubmission(t, db, student.ID, "TypeMismatch", []string{"tipe data"})
		svc.Process(sub)
	}

	pattern, err := repository.NewPatternRepository(db).Get(student.ID, "TypeMismatch")
	require.NoError(t, err)
	assert.Equal(t, 4, pattern.Frequency)

	var rows int64
	db.Model(&model.ErrorPattern{}).Where("student_id = ?", student.ID).Count(&rows)
	assert.Equal(t, int64(1), rows)
}

func TestProcessTypesCountedSeparately(t *testing.T) {
	db := newTestDB(t)
	svc := newPatternService(db)
	student := createStudent(t, db, "terpisah@uji.id")

	for i := 0; i < 3; i++ {
		appendSubmission(t, db, student.ID, "TypeMismatch", []string{"tipe data"})
	}
	other := appendSubmission(t, db, student.ID, "NameError", []string{"variabel"})

	warning, count := svc.Process(other)
	assert.Empty(t, warning)
	assert.Zero(t, count)

	_, err := repository.NewPatternRepository(db).Get(student.ID, "NameError")
	assert.Error(t, err)
}

// conflictingPatternStore menggagalkan sejumlah panggilan Upsert pertama
// untuk meniru konflik kunci transien, lalu meneruskan ke repository asli.
type conflictingPatternStore struct {
	*repository.PatternRepository
	failures int
	calls    int
}

func (s *conflictingPatternStore) Upsert(p *model.ErrorPattern) error {
	s.calls++
	if s.calls <= s.failures {
		return gorm.ErrDuplicatedKey
	}
	return s.PatternRepository.Upsert(p)
}

func TestProcessRetriesUpsertOnConflict(t *testing.T) {
	db := newTestDB(t)
	subs := repository.NewSubmissionRepository(db)
	store := &conflictingPatternStore{PatternRepository: repository.NewPatternRepository(db), failures: 1}
	mastery := NewMasteryService(subs, repository.NewProgressRepository(db))
	svc := NewPatternService(subs, store, mastery, 3, 10)

	student := createStudent(t, db, "konflik@uji.id")
	var last *model.ErrorSubmission
	for i := 0; i < 3; i++ {
		last = appendSubmission(t, db, student.ID, "TypeMismatch", []string{"tipe data"})
	}

	warning, count := svc.Process(last)
	assert.Equal(t, int64(3), count)
	assert.NotEmpty(t, warning)
	assert.Equal(t, 2, store.calls)

	// Percobaan kedua berhasil, jadi pola tetap tersimpan.
	pattern, err := repository.NewPatternRepository(db).Get(student.ID, "TypeMismatch")
	require.NoError(t, err)
	assert.Equal(t, 3, pattern.Frequency)
}

func TestProcessUpsertFailureIsNonFatal(t *testing.T) {
	db := newTestDB(t)
	subs := repository.NewSubmissionRepository(db)
	store := &conflictingPatternStore{PatternRepository: repository.NewPatternRepository(db), failures: 2}
	mastery := NewMasteryService(subs, repository.NewProgressRepository(db))
	svc := NewPatternService(subs, store, mastery, 3, 10)

	student := createStudent(t, db, "gagalterus@uji.id")
	var last *model.ErrorSubmission
	for i := 0; i < 3; i++ {
		last = appendSubmission(t, db, student.ID, "TypeMismatch", []string{"tipe data"})
	}

	// Kedua percobaan gagal: hanya dicatat, peringatan tetap dikembalikan.
	warning, count := svc.Process(last)
	assert.Equal(t, int64(3), count)
	assert.NotEmpty(t, warning)
	assert.Equal(t, 2, store.calls)

	_, err := repository.NewPatternRepository(db).Get(student.ID, "TypeMismatch")
	assert.Error(t, err)
}

func TestGetTrend(t *testing.T) {
	db := newTestDB(t)
	svc := newPatternService(db)
	student := createStudent(t, db, "tren@uji.id")

	for i := 0; i < 3; i++ {
		sub := appendSubmission(t, db, student.ID, "TypeMismatch", []string{"tipe data"})
		svc.Process(sub)
	}
	appendSubmission(t, db, student.ID, "NameError", nil)

	trend, err := svc.GetTrend(student.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), trend.TotalSubmisi)
	assert.Equal(t, int64(1), trend.PolaUnikTeridentifikasi)
	require.Len(t, trend.KesalahanPalingSering, 1)
	assert.Equal(t, "TypeMismatch", trend.KesalahanPalingSering[0].Jenis)
	assert.Equal(t, 3, trend.KesalahanPalingSering[0].Frekuensi)
}

func TestGetTrendEmptyHistory(t *testing.T) {
	db := newTestDB(t)
	svc := newPatternService(db)

	trend, err := svc.GetTrend("tidak-ada")
	require.NoError(t, err)
	assert.Zero(t, trend.TotalSubmisi)
	assert.Zero(t, trend.PolaUnikTeridentifikasi)
	assert.Empty(t, trend.KesalahanPalingSering)
}
