package model

// AIMetric mencatat satu panggilan klasifikasi ke layanan LLM eksternal.
type AIMetric struct {
	UUIDBase
	Model          string  `gorm:"size:100" json:"model"`
	TokenInput     int     `json:"token_input"`
	TokenOutput    int     `json:"token_output"`
	TotalToken     int     `json:"total_token"`
	Biaya          float64 `json:"biaya"`         // USD
	WaktuRespons   float64 `json:"waktu_respons"` // detik
	StatusBerhasil bool    `gorm:"index" json:"status_berhasil"`
}

func (AIMetric) TableName() string {
	return "ai_metrics"
}
