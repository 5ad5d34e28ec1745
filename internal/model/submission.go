package model

type BloomLevel string

const (
	BloomRemember   BloomLevel = "Remember"
	BloomUnderstand BloomLevel = "Understand"
	BloomApply      BloomLevel = "Apply"
	BloomAnalyze    BloomLevel = "Analyze"
	BloomEvaluate   BloomLevel = "Evaluate"
	BloomCreate     BloomLevel = "Create"
)

func (b BloomLevel) Valid() bool {
	switch b {
	case BloomRemember, BloomUnderstand, BloomApply, BloomAnalyze, BloomEvaluate, BloomCreate:
		return true
	}
	return false
}

// ErrorSubmission adalah log append-only: satu baris per analisis,
// tidak pernah di-update setelah dibuat.
// swagger:model ErrorSubmission
type ErrorSubmission struct {
	UUIDBase
	StudentID         string     `gorm:"type:varchar(36);not null;index:idx_submission_student_type,priority:1;index" json:"id_mahasiswa"`
	Code              string     `gorm:"type:text;not null" json:"kode"`
	ErrorMessage      string     `gorm:"type:text;not null" json:"pesan_error"`
	Language          string     `gorm:"size:30;default:'python'" json:"bahasa"`
	ErrorType         string     `gorm:"size:100;index:idx_submission_student_type,priority:2" json:"tipe_error"`
	PrimaryCause      string     `gorm:"type:text" json:"penyebab_utama"`
	ConceptGap        string     `gorm:"type:text" json:"kesenjangan_konsep"`
	BloomLevel        BloomLevel `gorm:"size:20" json:"level_bloom"`
	Explanation       string     `gorm:"type:text" json:"penjelasan"`
	SuggestedFix      string     `gorm:"type:text" json:"saran_perbaikan"`
	RelatedTopics     []string   `gorm:"serializer:json;type:json" json:"topik_terkait"`
	SuggestedExercise string     `gorm:"type:text" json:"saran_latihan"`
}

func (ErrorSubmission) TableName() string {
	return "error_submissions"
}

// SubmissionTopic memecah topik_terkait menjadi satu baris per topik agar
// hitungan keanggotaan topik bisa diindeks, bukan discan lewat kolom JSON.
type SubmissionTopic struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	SubmissionID string `gorm:"type:varchar(36);not null;index" json:"-"`
	StudentID    string `gorm:"type:varchar(36);not null;index:idx_topic_student,priority:1" json:"-"`
	Topik        string `gorm:"size:100;not null;index:idx_topic_student,priority:2" json:"topik"`
}

func (SubmissionTopic) TableName() string {
	return "submission_topics"
}
