package repository

import (
	"fmt"
	"testing"

	"pahamkode_backend/internal/model"
	"pahamkode_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newSubmission(t *testing.T, repo *SubmissionRepository, studentID, errorType string, topics []string) *model.ErrorSubmission {
	t.Helper()

	sub := &model.ErrorSubmission{
		StudentID:     studentID,
		Code:          "x = '1' + 2",
		ErrorMessage:  "TypeError",
		Language:      "python",
		ErrorType:     errorType,
		ConceptGap:    "konversi tipe",
		BloomLevel:    model.BloomUnderstand,
		RelatedTopics: topics,
	}
	require.NoError(t, repo.Append(sub))
	return sub
}
