package repository

import (
	"testing"

	"pahamkode_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendNormalizesTopics(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubmissionRepository(db)

	sub := newSubmission(t, repo, "m1", "TypeMismatch", []string{"tipe data", " tipe data ", "", "list"})

	var topics []string
	db.Model(&model.SubmissionTopic{}).
		Where("submission_id = ?", sub.ID).
		Order("topik ASC").
		Pluck("topik", &topics)
	assert.Equal(t, []string{"list", "tipe data"}, topics)
}

func TestCountByStudentAndType(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubmissionRepository(db)

	newSubmission(t, repo, "m1", "TypeMismatch", nil)
	newSubmission(t, repo, "m1", "TypeMismatch", nil)
	newSubmission(t, repo, "m1", "NameError", nil)
	newSubmission(t, repo, "m2", "TypeMismatch", nil)

	count, err := repo.CountByStudentAndType("m1", "TypeMismatch")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestTopErrorTypesTieBreak(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubmissionRepository(db)

	// ZError dan AError sama-sama dua kali; seri dipecah alfabetis.
	newSubmission(t, repo, "m1", "ZError", nil)
	newSubmission(t, repo, "m1", "ZError", nil)
	newSubmission(t, repo, "m1", "AError", nil)
	newSubmission(t, repo, "m1", "AError", nil)
	newSubmission(t, repo, "m1", "BError", nil)

	rows, err := repo.TopErrorTypes(5)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "AError", rows[0].ErrorType)
	assert.Equal(t, "ZError", rows[1].ErrorType)
	assert.Equal(t, "BError", rows[2].ErrorType)
}

func TestDistinctTopicsAcrossSubmissions(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubmissionRepository(db)

	newSubmission(t, repo, "m1", "TypeMismatch", []string{"tipe data"})
	newSubmission(t, repo, "m1", "TypeMismatch", []string{"tipe data", "konversi tipe"})
	newSubmission(t, repo, "m1", "NameError", []string{"variabel"})

	topics, err := repo.DistinctTopics("m1", "TypeMismatch", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"konversi tipe", "tipe data"}, topics)
}

func TestLatestTopicErrorAt(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubmissionRepository(db)

	newSubmission(t, repo, "m1", "TypeMismatch", []string{"tipe data"})
	second := newSubmission(t, repo, "m1", "NameError", []string{"tipe data"})

	at, err := repo.LatestTopicErrorAt("m1", "tipe data")
	require.NoError(t, err)
	require.NotNil(t, at)
	assert.Equal(t, second.CreatedAt.Unix(), at.Unix())

	missing, err := repo.LatestTopicErrorAt("m1", "tidak ada")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGlobalTypeStats(t *testing.T) {
	db := newTestDB(t)
	repo := NewSubmissionRepository(db)

	newSubmission(t, repo, "m1", "TypeMismatch", nil)
	newSubmission(t, repo, "m1", "TypeMismatch", nil)
	newSubmission(t, repo, "m2", "TypeMismatch", nil)
	newSubmission(t, repo, "m2", "NameError", nil)

	stats, err := repo.GlobalTypeStats(10)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "TypeMismatch", stats[0].ErrorType)
	assert.Equal(t, int64(3), stats[0].Total)
	assert.Equal(t, int64(2), stats[0].Students)
}
