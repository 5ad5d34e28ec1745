package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"pahamkode_backend/internal/config"
	"pahamkode_backend/internal/model"
	"pahamkode_backend/internal/repository"
	"pahamkode_backend/internal/util"
	"pahamkode_backend/pkg/logger"

	"go.uber.org/zap"
)

// ClassificationResult adalah keluaran terstruktur dari layanan klasifikasi
// eksternal. Field-nya kontrak tetap: detektor pola dan pelacak penguasaan
// bergantung padanya, bukan pada payload dinamis.
type ClassificationResult struct {
	TipeError         string           `json:"tipe_error"`
	PenyebabUtama     string           `json:"penyebab_utama"`
	KesenjanganKonsep string           `json:"kesenjangan_konsep"`
	LevelBloom        model.BloomLevel `json:"level_bloom"`
	Penjelasan        string           `json:"penjelasan"`
	SaranPerbaikan    string           `json:"saran_perbaikan"`
	TopikTerkait      []string         `json:"topik_terkait"`
	SaranLatihan      string           `json:"saran_latihan"`
}

// StudentContext memberi model konteks personalisasi.
type StudentContext struct {
	TingkatKemahiran string
	RiwayatError     []string
}

// ClassifierService memanggil API chat-completions yang kompatibel OpenAI.
// Konfigurasi bisa diganti saat runtime lewat watcher konfigurasi.
type ClassifierService struct {
	mu      sync.RWMutex
	cfg     config.AIConfig
	metrics *repository.AIMetricRepository
	client  *http.Client
}

func NewClassifierService(cfg config.AIConfig, metrics *repository.AIMetricRepository) *ClassifierService {
	return &ClassifierService{
		cfg:     cfg,
		metrics: metrics,
		client:  &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

func (s *ClassifierService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.client = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
}

type aiChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []aiChatMessage `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message aiChatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const classifierSystemPrompt = `Kamu adalah ahli pendidikan pemrograman yang spesialis dalam analisis error semantik.
Analisis error dari perspektif KONSEPTUAL: identifikasi kesenjangan konsep (miskonsepsi),
penyebab utama dari sudut pandang pembelajaran, level Bloom's Taxonomy yang tepat,
dan topik-topik yang perlu diperkuat. Gunakan Bahasa Indonesia yang jelas.

Jawab HANYA dengan objek JSON berisi field:
tipe_error, penyebab_utama, kesenjangan_konsep,
level_bloom (salah satu dari Remember/Understand/Apply/Analyze/Evaluate/Create),
penjelasan, saran_perbaikan, topik_terkait (array string), saran_latihan.`

// Classify meminta klasifikasi semantik untuk satu error. Kegagalan apa pun
// (timeout, output tidak valid, kuota) dikembalikan sebagai
// ErrClassificationFailed; tidak ada yang dipersist oleh pemanggil bila
// fungsi ini gagal.
func (s *ClassifierService) Classify(ctx context.Context, kode, pesanError, bahasa string, sc StudentContext) (*ClassificationResult, error) {
	s.mu.RLock()
	cfg := s.cfg
	client := s.client
	s.mu.RUnlock()

	riwayat := "Belum ada riwayat error sebelumnya"
	if len(sc.RiwayatError) > 0 {
		riwayat = strings.Join(sc.RiwayatError, "\n")
	}

	userPrompt := fmt.Sprintf(
		"Analisis error ini secara SEMANTIK:\n\nKode (%s):\n```\n%s\n```\n\nPesan Error:\n%s\n\nKonteks mahasiswa:\n- Tingkat kemahiran: %s\n- Riwayat error terakhir:\n%s",
		bahasa, kode, pesanError, sc.TingkatKemahiran, riwayat,
	)

	reqBody := chatCompletionRequest{
		Model: cfg.Model,
		Messages: []aiChatMessage{
			{Role: "system", Content: classifierSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrClassificationFailed, err)
	}

	start := time.Now()
	result, usage, err := s.doRequest(ctx, client, cfg, jsonData)
	s.recordMetric(cfg.Model, usage, time.Since(start), err == nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrClassificationFailed, err)
	}

	return result, nil
}

func (s *ClassifierService) doRequest(ctx context.Context, client *http.Client, cfg config.AIConfig, body []byte) (*ClassificationResult, *chatCompletionResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.BaseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, nil, fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(raw))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, nil, err
	}
	if completion.Error != nil {
		return nil, &completion, fmt.Errorf("AI API error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return nil, &completion, fmt.Errorf("AI API returned no choices")
	}

	result, err := parseClassification(completion.Choices[0].Message.Content)
	if err != nil {
		return nil, &completion, err
	}
	return result, &completion, nil
}

// parseClassification memvalidasi konten model menjadi hasil terstruktur.
// Pagar markdown dibuang dulu karena sebagian model tetap membungkus JSON.
func parseClassification(content string) (*ClassificationResult, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var result ClassificationResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("malformed classification output: %v", err)
	}

	if result.TipeError == "" {
		return nil, fmt.Errorf("classification output missing tipe_error")
	}
	if !result.LevelBloom.Valid() {
		result.LevelBloom = model.BloomUnderstand
	}

	// Daftar topik dibatasi agar fan-out penguasaan tetap terikat.
	topics := make([]string, 0, len(result.TopikTerkait))
	seen := make(map[string]bool)
	for _, t := range result.TopikTerkait {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		topics = append(topics, t)
		if len(topics) == 10 {
			break
		}
	}
	result.TopikTerkait = topics

	return &result, nil
}

func (s *ClassifierService) recordMetric(modelName string, usage *chatCompletionResponse, elapsed time.Duration, ok bool) {
	if s.metrics == nil {
		return
	}
	m := model.AIMetric{
		Model:          modelName,
		WaktuRespons:   elapsed.Seconds(),
		StatusBerhasil: ok,
	}
	if usage != nil {
		m.TokenInput = usage.Usage.PromptTokens
		m.TokenOutput = usage.Usage.CompletionTokens
		m.TotalToken = usage.Usage.TotalTokens
	}
	if err := s.metrics.Create(&m); err != nil {
		logger.Log.Warn("failed to record AI metric", zap.Error(err))
	}
}
