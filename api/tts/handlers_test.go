package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vocalforge/voice-api/api/types"
	"github.com/vocalforge/voice-api/internal/models"
	"github.com/vocalforge/voice-api/internal/services/synthesis"
	apperrors "github.com/vocalforge/voice-api/pkg/errors"
)

// MockSynthesisService is a mock implementation of synthesis.Service
type MockSynthesisService struct {
	mock.Mock
}

func (m *MockSynthesisService) Synthesize(ctx context.Context, params synthesis.SynthesizeParams) (*models.SynthesisRecord, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SynthesisRecord), args.Error(1)
}

func (m *MockSynthesisService) GetRecord(ctx context.Context, id string) (*models.SynthesisRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SynthesisRecord), args.Error(1)
}

func (m *MockSynthesisService) ListRecordsByModel(ctx context.Context, modelID string) ([]models.SynthesisRecord, error) {
	args := m.Called(ctx, modelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SynthesisRecord), args.Error(1)
}

func setupRouter(deps *types.Dependencies) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1/tts"), deps)
	return router
}

func postJSON(router *gin.Engine, path string, payload gin.H) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestSynthesize(t *testing.T) {
	t.Run("returns record with playback url", func(t *testing.T) {
		mockService := new(MockSynthesisService)
		router := setupRouter(&types.Dependencies{SynthesisService: mockService})

		mockService.On("Synthesize", mock.Anything, synthesis.SynthesizeParams{
			ModelID: "m-1",
			Text:    "hello",
			Format:  "wav",
		}).Return(&models.SynthesisRecord{
			ID:          "tts-1",
			ModelID:     "m-1",
			Text:        "hello",
			AudioPath:   "/audio/tts_tts-1.wav",
			AudioFormat: "wav",
			CreatedAt:   time.Now(),
		}, nil)

		w := postJSON(router, "/api/v1/tts", gin.H{"model_id": "m-1", "text": "hello", "format": "wav"})

		assert.Equal(t, http.StatusCreated, w.Code)

		var response types.SynthesisData
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "tts-1", response.ID)
		assert.Equal(t, "/api/v1/audio/tts-1", response.AudioURL)
		mockService.AssertExpectations(t)
	})

	t.Run("missing fields rejected by binding", func(t *testing.T) {
		router := setupRouter(&types.Dependencies{SynthesisService: new(MockSynthesisService)})

		w := postJSON(router, "/api/v1/tts", gin.H{"text": "hello"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = postJSON(router, "/api/v1/tts", gin.H{"model_id": "m-1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("model not ready maps to conflict", func(t *testing.T) {
		mockService := new(MockSynthesisService)
		router := setupRouter(&types.Dependencies{SynthesisService: mockService})

		mockService.On("Synthesize", mock.Anything, mock.Anything).
			Return(nil, apperrors.ModelNotReadyError("m-1", models.StatusCreating))

		w := postJSON(router, "/api/v1/tts", gin.H{"model_id": "m-1", "text": "hello"})

		assert.Equal(t, http.StatusConflict, w.Code)

		var response types.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, string(apperrors.ErrCodeModelNotReady), response.Error)
	})

	t.Run("remote timeout maps to gateway timeout", func(t *testing.T) {
		mockService := new(MockSynthesisService)
		router := setupRouter(&types.Dependencies{SynthesisService: mockService})

		mockService.On("Synthesize", mock.Anything, mock.Anything).
			Return(nil, apperrors.RemoteTimeoutError("synthesis", "60s"))

		w := postJSON(router, "/api/v1/tts", gin.H{"model_id": "m-1", "text": "hello"})
		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	})
}

func TestHistory(t *testing.T) {
	mockService := new(MockSynthesisService)
	router := setupRouter(&types.Dependencies{SynthesisService: mockService})

	mockService.On("ListRecordsByModel", mock.Anything, "m-1").Return([]models.SynthesisRecord{
		{ID: "tts-2", ModelID: "m-1", Text: "later"},
		{ID: "tts-1", ModelID: "m-1", Text: "earlier"},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/tts/history/m-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		History []types.SynthesisData `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.History, 2)
	assert.Equal(t, "tts-2", response.History[0].ID)
}
