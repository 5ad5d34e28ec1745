package model

// swagger:model Exercise
type Exercise struct {
	UUIDBase
	Judul            string   `gorm:"size:200;not null" json:"judul"`
	Deskripsi        string   `gorm:"type:text" json:"deskripsi"`
	Topik            string   `gorm:"size:100;not null;index" json:"topik"`
	TingkatKesulitan string   `gorm:"size:20;default:'pemula';index" json:"tingkat_kesulitan"`
	Instruksi        string   `gorm:"type:text" json:"instruksi"`
	KodePemula       string   `gorm:"type:text" json:"kode_pemula"`
	SolusiReferensi  string   `gorm:"type:text" json:"solusi_referensi"`
	TestCases        []string `gorm:"serializer:json;type:json" json:"test_cases"`
	PoinBelajar      []string `gorm:"serializer:json;type:json" json:"poin_belajar"`
	EstimasiWaktu    int      `json:"estimasi_waktu"` // menit
}

func (Exercise) TableName() string {
	return "exercises"
}

// swagger:model ExerciseSubmission
type ExerciseSubmission struct {
	UUIDBase
	StudentID     string `gorm:"type:varchar(36);not null;index:idx_exsub_student_exercise,priority:1" json:"id_mahasiswa"`
	ExerciseID    string `gorm:"type:varchar(36);not null;index:idx_exsub_student_exercise,priority:2" json:"id_exercise"`
	KodeSubmisi   string `gorm:"type:text;not null" json:"kode_submisi"`
	StatusSelesai bool   `gorm:"default:false" json:"status_selesai"`
	NilaiScore    *int   `json:"nilai_score"`
	Feedback      string `gorm:"type:text" json:"feedback"`
}

func (ExerciseSubmission) TableName() string {
	return "exercise_submissions"
}
