package repository

import (
	"sync"
	"testing"
	"time"

	"pahamkode_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upsertPattern(t *testing.T, repo *PatternRepository, studentID, errorType string, freq int) {
	t.Helper()

	now := time.Now()
	require.NoError(t, repo.Upsert(&model.ErrorPattern{
		StudentID:     studentID,
		ErrorType:     errorType,
		Frequency:     freq,
		FirstSeen:     &now,
		LastSeen:      &now,
		Misconception: "konversi tipe",
	}))
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	db := newTestDB(t)
	repo := NewPatternRepository(db)

	upsertPattern(t, repo, "m1", "TypeMismatch", 3)

	first, err := repo.Get("m1", "TypeMismatch")
	require.NoError(t, err)
	assert.Equal(t, 3, first.Frequency)

	upsertPattern(t, repo, "m1", "TypeMismatch", 4)

	second, err := repo.Get("m1", "TypeMismatch")
	require.NoError(t, err)
	assert.Equal(t, 4, second.Frequency)
	// Cabang update tidak menyentuh first_seen.
	assert.Equal(t, first.FirstSeen.Unix(), second.FirstSeen.Unix())

	var rows int64
	db.Model(&model.ErrorPattern{}).Where("student_id = ?", "m1").Count(&rows)
	assert.Equal(t, int64(1), rows)
}

func TestUpsertConcurrentSameKey(t *testing.T) {
	db := newTestDB(t)
	repo := NewPatternRepository(db)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(freq int) {
			defer wg.Done()
			now := time.Now()
			repo.Upsert(&model.ErrorPattern{
				StudentID: "m1",
				ErrorType: "IndexOutOfBounds",
				Frequency: freq,
				FirstSeen: &now,
				LastSeen:  &now,
			})
		}(i + 1)
	}
	wg.Wait()

	var rows int64
	db.Model(&model.ErrorPattern{}).
		Where("student_id = ? AND error_type = ?", "m1", "IndexOutOfBounds").
		Count(&rows)
	assert.Equal(t, int64(1), rows)
}

func TestFindByStudentOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewPatternRepository(db)

	upsertPattern(t, repo, "m1", "ZError", 3)
	upsertPattern(t, repo, "m1", "AError", 3)
	upsertPattern(t, repo, "m1", "BError", 7)

	patterns, err := repo.FindByStudent("m1", 10)
	require.NoError(t, err)
	require.Len(t, patterns, 3)

	// Frekuensi menurun, seri dipecah alfabetis.
	assert.Equal(t, "BError", patterns[0].ErrorType)
	assert.Equal(t, "AError", patterns[1].ErrorType)
	assert.Equal(t, "ZError", patterns[2].ErrorType)
}
