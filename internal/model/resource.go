package model

// LearningResource adalah materi belajar yang direkomendasikan ke mahasiswa
// berdasarkan topik yang lemah.
// swagger:model LearningResource
type LearningResource struct {
	UUIDBase
	Judul            string   `gorm:"size:200;not null" json:"judul"`
	Deskripsi        string   `gorm:"type:text" json:"deskripsi"`
	Tipe             string   `gorm:"size:30;not null" json:"tipe"` // video, artikel, tutorial, exercise, quiz
	URL              string   `gorm:"size:500" json:"url"`
	Konten           string   `gorm:"type:text" json:"konten"`
	TopikTerkait     []string `gorm:"serializer:json;type:json" json:"topik_terkait"`
	TingkatKesulitan string   `gorm:"size:20;default:'pemula';index" json:"tingkat_kesulitan"`
	Durasi           int      `json:"durasi"` // menit
}

func (LearningResource) TableName() string {
	return "learning_resources"
}

// ResourceTopic memetakan sumber daya ke topik untuk pencarian terindeks.
type ResourceTopic struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	ResourceID string `gorm:"type:varchar(36);not null;index" json:"-"`
	Topik      string `gorm:"size:100;not null;index" json:"topik"`
}

func (ResourceTopic) TableName() string {
	return "resource_topics"
}
