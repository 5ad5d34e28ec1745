package service

import (
	"fmt"
	"testing"

	"pahamkode_backend/internal/model"
	"pahamkode_backend/internal/repository"
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

func createStudent(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		Email:            email,
		Password:         "hashed",
		Nama:             "Mahasiswa Uji",
		Role:             model.RoleMahasiswa,
		TingkatKemahiran: model.KemahiranPemula,
		Status:           model.StatusAktif,
	}
	require.NoError(t, repository.NewUserRepository(db).Create(user))
	return user
}

func appendSubmission(t *testing.T, db *gorm.DB, studentID, errorType string, topics []string) *model.ErrorSubmission {
	t.Helper()

	sub := &model.ErrorSubmission{
		StudentID:     studentID,
		Code:          "x = '1' + 2",
		ErrorMessage:  "TypeError: can only concatenate str",
		Language:      "python",
		ErrorType:     errorType,
		PrimaryCause:  "operasi antar tipe yang tidak kompatibel",
		ConceptGap:    "konversi tipe data",
		BloomLevel:    model.BloomUnderstand,
		RelatedTopics: topics,
	}
	require.NoError(t, repository.NewSubmissionRepository(db).Append(sub))
	return sub
}
