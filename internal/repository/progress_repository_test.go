package repository

import (
	"testing"

	"pahamkode_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanMasteryNoRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)

	mean, rows, err := repo.MeanMasteryByStudent("tidak-ada")
	require.NoError(t, err)
	assert.Zero(t, mean)
	assert.Zero(t, rows)
}

func TestMeanMasteryByStudent(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)

	require.NoError(t, repo.Upsert(&model.TopicProgress{StudentID: "m1", Topik: "list", MasteryScore: 80}))
	require.NoError(t, repo.Upsert(&model.TopicProgress{StudentID: "m1", Topik: "pointer", MasteryScore: 40}))
	require.NoError(t, repo.Upsert(&model.TopicProgress{StudentID: "m2", Topik: "list", MasteryScore: 10}))

	mean, rows, err := repo.MeanMasteryByStudent("m1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)
	assert.InDelta(t, 60.0, mean, 0.001)
}

func TestUpsertPersistsZeroScore(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)

	// Skor 0 adalah nilai sah hasil clamp dan harus ikut tertulis
	// pada INSERT, bukan jatuh ke default kolom.
	require.NoError(t, repo.Upsert(&model.TopicProgress{StudentID: "m1", Topik: "pointer", MasteryScore: 0, ErrorCount: 10}))

	tp, err := repo.Get("m1", "pointer")
	require.NoError(t, err)
	assert.Equal(t, 0, tp.MasteryScore)
	assert.Equal(t, 10, tp.ErrorCount)

	// Jalur update pada kunci yang sama juga harus bisa menurunkan ke 0.
	require.NoError(t, repo.Upsert(&model.TopicProgress{StudentID: "m1", Topik: "list", MasteryScore: 50, ErrorCount: 5}))
	require.NoError(t, repo.Upsert(&model.TopicProgress{StudentID: "m1", Topik: "list", MasteryScore: 0, ErrorCount: 12}))

	tp, err = repo.Get("m1", "list")
	require.NoError(t, err)
	assert.Equal(t, 0, tp.MasteryScore)
	assert.Equal(t, 12, tp.ErrorCount)
}

func TestWeakestByStudent(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)

	require.NoError(t, repo.Upsert(&model.TopicProgress{StudentID: "m1", Topik: "list", MasteryScore: 80, ErrorCount: 2}))
	require.NoError(t, repo.Upsert(&model.TopicProgress{StudentID: "m1", Topik: "pointer", MasteryScore: 20, ErrorCount: 8}))
	require.NoError(t, repo.Upsert(&model.TopicProgress{StudentID: "m1", Topik: "rekursi", MasteryScore: 45, ErrorCount: 6}))

	weak, err := repo.WeakestByStudent("m1", 49, 5)
	require.NoError(t, err)
	require.Len(t, weak, 2)
	assert.Equal(t, "pointer", weak[0].Topik)
	assert.Equal(t, "rekursi", weak[1].Topik)
}

func TestTopicStatsOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)

	require.NoError(t, repo.Upsert(&model.TopicProgress{StudentID: "m1", Topik: "pointer", MasteryScore: 40, ErrorCount: 6}))
	require.NoError(t, repo.Upsert(&model.TopicProgress{StudentID: "m2", Topik: "pointer", MasteryScore: 60, ErrorCount: 4}))
	require.NoError(t, repo.Upsert(&model.TopicProgress{StudentID: "m1", Topik: "list", MasteryScore: 70, ErrorCount: 3}))

	stats, err := repo.TopicStats(10)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "pointer", stats[0].Topik)
	assert.Equal(t, int64(10), stats[0].TotalError)
	assert.Equal(t, int64(2), stats[0].Students)
	assert.InDelta(t, 50.0, stats[0].MeanMastery, 0.001)
}
