package model

import "time"

// ErrorPattern adalah tabel turunan, unik per (mahasiswa, jenis kesalahan).
// Frekuensi selalu hasil hitung ulang penuh atas error_submissions, bukan
// counter yang diinkremen terpisah.
// swagger:model ErrorPattern
type ErrorPattern struct {
	UUIDBase
	StudentID            string     `gorm:"type:varchar(36);not null;uniqueIndex:uniq_pattern_student_type,priority:1" json:"id_mahasiswa"`
	ErrorType            string     `gorm:"size:100;not null;uniqueIndex:uniq_pattern_student_type,priority:2" json:"jenis_kesalahan"`
	Frequency            int        `gorm:"not null;default:0" json:"frekuensi"`
	FirstSeen            *time.Time `json:"kejadian_pertama"`
	LastSeen             *time.Time `json:"kejadian_terakhir"`
	Misconception        string     `gorm:"type:text" json:"deskripsi_miskonsepsi"`
	RecommendedResources []string   `gorm:"serializer:json;type:json" json:"sumber_daya_direkomendasikan"`
}

func (ErrorPattern) TableName() string {
	return "error_patterns"
}
