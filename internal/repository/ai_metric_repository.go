package repository

import (
	"pahamkode_backend/internal/model"

	"gorm.io/gorm"
)

type AIMetricRepository struct {
	DB *gorm.DB
}

func NewAIMetricRepository(db *gorm.DB) *AIMetricRepository {
	return &AIMetricRepository{DB: db}
}

func (r *AIMetricRepository) Create(m *model.AIMetric) error {
	return r.DB.Create(m).Error
}

// AIMetricSummary adalah agregat seluruh pemakaian klasifikasi.
type AIMetricSummary struct {
	TotalRequests    int64   `json:"total_requests"`
	TotalTokenInput  int64   `json:"total_token_input"`
	TotalTokenOutput int64   `json:"total_token_output"`
	TotalToken       int64   `json:"total_token"`
	TotalBiaya       float64 `json:"total_biaya"`
	RataWaktuRespons float64 `json:"rata_rata_waktu_respons"`
	SuccessRate      float64 `json:"success_rate"`
}

func (r *AIMetricRepository) Summary() (*AIMetricSummary, error) {
	var total int64
	if err := r.DB.Model(&model.AIMetric{}).Count(&total).Error; err != nil {
		return nil, err
	}
	if total == 0 {
		return &AIMetricSummary{}, nil
	}

	type agg struct {
		TokenInput   int64
		TokenOutput  int64
		TotalToken   int64
		Biaya        float64
		WaktuRespons float64
		Berhasil     int64
	}
	var a agg
	err := r.DB.Model(&model.AIMetric{}).
		Select("SUM(token_input) AS token_input, SUM(token_output) AS token_output, SUM(total_token) AS total_token, SUM(biaya) AS biaya, SUM(waktu_respons) AS waktu_respons, SUM(CASE WHEN status_berhasil THEN 1 ELSE 0 END) AS berhasil").
		Scan(&a).Error
	if err != nil {
		return nil, err
	}

	return &AIMetricSummary{
		TotalRequests:    total,
		TotalTokenInput:  a.TokenInput,
		TotalTokenOutput: a.TokenOutput,
		TotalToken:       a.TotalToken,
		TotalBiaya:       a.Biaya,
		RataWaktuRespons: a.WaktuRespons / float64(total),
		SuccessRate:      float64(a.Berhasil) / float64(total) * 100,
	}, nil
}
