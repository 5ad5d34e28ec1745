package database

import (
	"fmt"
	"log"

	"pahamkode_backend/internal/config"
	"pahamkode_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbc := cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbc.User,
		dbc.Password,
		dbc.Host,
		dbc.Port,
		dbc.DBName,
		dbc.Charset,
		dbc.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// Mode release tidak melakukan migrasi otomatis kecuali dipaksa lewat
	// flag -migrate.
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
		seedResources(db)
	}

	return db, nil
}

// Migrate menjalankan AutoMigrate untuk seluruh tabel aplikasi.
// Dipakai juga oleh test dengan driver sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.ErrorSubmission{},
		&model.SubmissionTopic{},
		&model.ErrorPattern{},
		&model.TopicProgress{},
		&model.LearningResource{},
		&model.ResourceTopic{},
		&model.Exercise{},
		&model.ExerciseSubmission{},
		&model.AIMetric{},
	)
}

// Sumber daya default agar rekomendasi pemula tidak kosong pada instalasi baru.
func seedResources(db *gorm.DB) {
	var count int64
	db.Model(&model.LearningResource{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.LearningResource{
		{
			Judul:            "Pengenalan Tipe Data Python",
			Deskripsi:        "Dasar tipe data, konversi tipe, dan kesalahan umum TypeMismatch",
			Tipe:             "artikel",
			TopikTerkait:     []string{"tipe data", "konversi tipe"},
			TingkatKesulitan: "pemula",
			Durasi:           20,
		},
		{
			Judul:            "Memahami Indeks dan List",
			Deskripsi:        "Cara kerja indeks list dan penyebab IndexError",
			Tipe:             "tutorial",
			TopikTerkait:     []string{"list", "indeks"},
			TingkatKesulitan: "pemula",
			Durasi:           25,
		},
		{
			Judul:            "Scope Variabel dan NameError",
			Deskripsi:        "Lingkup variabel lokal dan global",
			Tipe:             "video",
			TopikTerkait:     []string{"variabel", "scope"},
			TingkatKesulitan: "pemula",
			Durasi:           15,
		},
	}
	for i := range defaults {
		if err := db.Create(&defaults[i]).Error; err != nil {
			continue
		}
		for _, topik := range defaults[i].TopikTerkait {
			db.Create(&model.ResourceTopic{ResourceID: defaults[i].ID, Topik: topik})
		}
	}
}
