package service

import (
	"testing"

	"pahamkode_backend/internal/model"
	"pahamkode_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMasteryScoreFor(t *testing.T) {
	cases := []struct {
		errorCount int
		want       int
	}{
		{0, 100},
		{1, 90},
		{3, 70},
		{5, 50},
		{10, 0},
		{15, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, model.MasteryScoreFor(c.errorCount), "errorCount=%d", c.errorCount)
	}
}

func TestMasteryUpdateCountsFullHistory(t *testing.T) {
	db := newTestDB(t)
	subs := repository.NewSubmissionRepository(db)
	progress := repository.NewProgressRepository(db)
	svc := NewMasteryService(subs, progress)

	student := createStudent(t, db, "mastery@uji.id")
	for i := 0; i < 3; i++ {
		appendSubmission(t, db, student.ID, "TypeMismatch", []string{"tipe data"})
	}

	require.NoError(t, svc.Update(student.ID, "tipe data"))

	tp, err := progress.Get(student.ID, "tipe data")
	require.NoError(t, err)
	assert.Equal(t, 3, tp.ErrorCount)
	assert.Equal(t, 70, tp.MasteryScore)
	require.NotNil(t, tp.LastErrorDate)
}

func TestMasteryUpdateIdempotent(t *testing.T) {
	db := newTestDB(t)
	subs := repository.NewSubmissionRepository(db)
	progress := repository.NewProgressRepository(db)
	svc := NewMasteryService(subs, progress)

	student := createStudent(t, db, "idempoten@uji.id")
	appendSubmission(t, db, student.ID, "IndexOutOfBounds", []string{"list"})
	appendSubmission(t, db, student.ID, "IndexOutOfBounds", []string{"list"})

	require.NoError(t, svc.Update(student.ID, "list"))
	first, err := progress.Get(student.ID, "list")
	require.NoError(t, err)

	// Hitung ulang tanpa submisi baru tidak mengubah apa pun.
	require.NoError(t, svc.Update(student.ID, "list"))
	second, err := progress.Get(student.ID, "list")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ErrorCount, second.ErrorCount)
	assert.Equal(t, first.MasteryScore, second.MasteryScore)
	assert.Equal(t, first.LastErrorDate.Unix(), second.LastErrorDate.Unix())

	var rows int64
	db.Model(&model.TopicProgress{}).Where("student_id = ?", student.ID).Count(&rows)
	assert.Equal(t, int64(1), rows)
}

func TestMasteryClampAtZero(t *testing.T) {
	db := newTestDB(t)
	subs := repository.NewSubmissionRepository(db)
	progress := repository.NewProgressRepository(db)
	svc := NewMasteryService(subs, progress)

	student := createStudent(t, db, "clamp@uji.id")
	for i := 0; i < 12; i++ {
		appendSubmission(t, db, student.ID, "NullPointer", []string{"pointer"})
	}

	// Cabang create: baris baru langsung tersimpan dengan skor 0.
	require.NoError(t, svc.Update(student.ID, "pointer"))

	tp, err := progress.Get(student.ID, "pointer")
	require.NoError(t, err)
	assert.Equal(t, 12, tp.ErrorCount)
	assert.Equal(t, 0, tp.MasteryScore)

	// Cabang update: baris yang sudah ada dengan skor positif juga
	// harus turun ke 0 saat riwayat melewati sepuluh error.
	appendSubmission(t, db, student.ID, "NullPointer", []string{"rekursi"})
	require.NoError(t, svc.Update(student.ID, "rekursi"))
	for i := 0; i < 10; i++ {
		appendSubmission(t, db, student.ID, "NullPointer", []string{"rekursi"})
	}
	require.NoError(t, svc.Update(student.ID, "rekursi"))

	tp, err = progress.Get(student.ID, "rekursi")
	require.NoError(t, err)
	assert.Equal(t, 11, tp.ErrorCount)
	assert.Equal(t, 0, tp.MasteryScore)
}
