package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"pahamkode_backend/internal/config"
	"pahamkode_backend/internal/model"
	"pahamkode_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassification(t *testing.T) {
	raw := "```json\n" + `{
		"tipe_error": "TypeMismatch",
		"penyebab_utama": "operasi string dengan angka",
		"kesenjangan_konsep": "konversi tipe",
		"level_bloom": "Apply",
		"topik_terkait": ["tipe data", " tipe data ", "", "konversi tipe"]
	}` + "\n```"

	result, err := parseClassification(raw)
	require.NoError(t, err)
	assert.Equal(t, "TypeMismatch", result.TipeError)
	assert.Equal(t, model.BloomApply, result.LevelBloom)
	// Duplikat dan entri kosong dibuang.
	assert.Equal(t, []string{"tipe data", "konversi tipe"}, result.TopikTerkait)
}

func TestParseClassificationInvalidBloomDefaults(t *testing.T) {
	result, err := parseClassification(`{"tipe_error": "NameError", "level_bloom": "Entah"}`)
	require.NoError(t, err)
	assert.Equal(t, model.BloomUnderstand, result.LevelBloom)
}

func TestParseClassificationMissingType(t *testing.T) {
	_, err := parseClassification(`{"penyebab_utama": "tidak jelas"}`)
	assert.Error(t, err)

	_, err = parseClassification("bukan json")
	assert.Error(t, err)
}

func TestClassifyWrapsUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewClassifierService(config.AIConfig{
		BaseURL:        srv.URL,
		APIKey:         "uji",
		Model:          "model-uji",
		TimeoutSeconds: 5,
	}, nil)

	_, err := svc.Classify(context.Background(), "x = 1", "err", "python", StudentContext{})
	assert.ErrorIs(t, err, util.ErrClassificationFailed)
}

func TestClassifySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer uji", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{"message": {"content": "{\"tipe_error\": \"SyntaxError\", \"level_bloom\": \"Remember\"}"}}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	}))
	defer srv.Close()

	svc := NewClassifierService(config.AIConfig{
		BaseURL:        srv.URL,
		APIKey:         "uji",
		Model:          "model-uji",
		TimeoutSeconds: 5,
	}, nil)

	result, err := svc.Classify(context.Background(), "if x", "SyntaxError", "python", StudentContext{})
	require.NoError(t, err)
	assert.Equal(t, "SyntaxError", result.TipeError)
	assert.Equal(t, model.BloomRemember, result.LevelBloom)
}
