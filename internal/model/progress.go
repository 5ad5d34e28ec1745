package model

import "time"

// Nilai tren perbaikan pada dashboard.
const (
	TrenMembaik = "membaik"
	TrenStabil  = "stabil"
	TrenMenurun = "menurun"
)

// TopicProgress adalah tabel turunan, unik per (mahasiswa, topik).
// tingkat_penguasaan = clamp(100 - 10*jumlah_error, 0, 100) dan selalu
// fungsi murni dari riwayat submisi, sehingga aman dihitung ulang kapan pun.
// swagger:model TopicProgress
type TopicProgress struct {
	UUIDBase
	StudentID     string     `gorm:"type:varchar(36);not null;uniqueIndex:uniq_progress_student_topic,priority:1" json:"id_mahasiswa"`
	Topik         string     `gorm:"size:100;not null;uniqueIndex:uniq_progress_student_topic,priority:2" json:"topik"`
	MasteryScore  int        `gorm:"not null" json:"tingkat_penguasaan"`
	ErrorCount    int        `gorm:"not null;default:0" json:"jumlah_error_di_topik"`
	LastErrorDate *time.Time `json:"tanggal_error_terakhir"`
}

func (TopicProgress) TableName() string {
	return "topic_progress"
}

// MasteryScore menghitung tingkat penguasaan dari jumlah error.
func MasteryScoreFor(errorCount int) int {
	score := 100 - errorCount*10
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// TrendFor menurunkan label tren dari rata-rata penguasaan seorang mahasiswa.
func TrendFor(meanMastery float64) string {
	switch {
	case meanMastery > 70:
		return TrenMembaik
	case meanMastery < 40:
		return TrenMenurun
	default:
		return TrenStabil
	}
}
