package voicemodels

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vocalforge/voice-api/api/types"
	"github.com/vocalforge/voice-api/internal/models"
	"github.com/vocalforge/voice-api/internal/services/storage"
	"github.com/vocalforge/voice-api/internal/services/voicemodels"
	apperrors "github.com/vocalforge/voice-api/pkg/errors"
)

// MockModelService is a mock implementation of voicemodels.Service
type MockModelService struct {
	mock.Mock
}

func (m *MockModelService) CreateModel(ctx context.Context, params voicemodels.CreateModelParams) (*models.VoiceModel, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VoiceModel), args.Error(1)
}

func (m *MockModelService) GetModel(ctx context.Context, id string) (*models.VoiceModel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VoiceModel), args.Error(1)
}

func (m *MockModelService) ListModels(ctx context.Context) ([]voicemodels.ModelSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]voicemodels.ModelSummary), args.Error(1)
}

func (m *MockModelService) DeleteModel(ctx context.Context, id string) (*voicemodels.DeleteResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*voicemodels.DeleteResult), args.Error(1)
}

func setupRouter(deps *types.Dependencies) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api/v1/models")
	passthrough := func(c *gin.Context) { c.Next() }
	RegisterRoutes(group, deps, passthrough, passthrough)
	return router
}

func TestCreate(t *testing.T) {
	t.Run("json with base64 audio", func(t *testing.T) {
		mockService := new(MockModelService)
		router := setupRouter(&types.Dependencies{ModelService: mockService, MaxUploadBytes: 1 << 20})

		audio := []byte("audio-bytes")
		mockService.On("CreateModel", mock.Anything, mock.MatchedBy(func(p voicemodels.CreateModelParams) bool {
			return p.Title == "My Voice" && bytes.Equal(p.AudioData, audio)
		})).Return(&models.VoiceModel{
			ID:            "m-1",
			Title:         "My Voice",
			Status:        models.StatusReady,
			RemoteModelID: "r-1",
			CreatedAt:     time.Now(),
		}, nil)

		body, _ := json.Marshal(gin.H{
			"title":      "My Voice",
			"audio_data": base64.StdEncoding.EncodeToString(audio),
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/models", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response types.VoiceModelData
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "m-1", response.ID)
		assert.Equal(t, models.StatusReady, response.Status)
		mockService.AssertExpectations(t)
	})

	t.Run("multipart form", func(t *testing.T) {
		mockService := new(MockModelService)
		router := setupRouter(&types.Dependencies{ModelService: mockService, MaxUploadBytes: 1 << 20})

		mockService.On("CreateModel", mock.Anything, mock.MatchedBy(func(p voicemodels.CreateModelParams) bool {
			return p.Title == "Form Voice" && string(p.AudioData) == "sample-bytes"
		})).Return(&models.VoiceModel{ID: "m-2", Title: "Form Voice", Status: models.StatusReady}, nil)

		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		require.NoError(t, writer.WriteField("title", "Form Voice"))
		part, err := writer.CreateFormFile("audio", "sample.mp3")
		require.NoError(t, err)
		_, err = part.Write([]byte("sample-bytes"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/models", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("missing title", func(t *testing.T) {
		router := setupRouter(&types.Dependencies{ModelService: new(MockModelService)})

		body, _ := json.Marshal(gin.H{"audio_data": "aGk="})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/models", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid base64", func(t *testing.T) {
		router := setupRouter(&types.Dependencies{ModelService: new(MockModelService)})

		body, _ := json.Marshal(gin.H{"title": "x", "audio_data": "not base64!!"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/models", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("remote failure surfaces as bad gateway", func(t *testing.T) {
		mockService := new(MockModelService)
		router := setupRouter(&types.Dependencies{ModelService: mockService})

		mockService.On("CreateModel", mock.Anything, mock.Anything).
			Return(nil, apperrors.New(apperrors.ErrCodeRemoteUnreachable, "connection refused").
				WithDetail("model_id", "m-9"))

		body, _ := json.Marshal(gin.H{"title": "x", "audio_data": "aGk="})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/models", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)

		var response types.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, string(apperrors.ErrCodeRemoteUnreachable), response.Error)
	})

	t.Run("remote timeout surfaces as gateway timeout", func(t *testing.T) {
		mockService := new(MockModelService)
		router := setupRouter(&types.Dependencies{ModelService: mockService})

		mockService.On("CreateModel", mock.Anything, mock.Anything).
			Return(nil, apperrors.RemoteTimeoutError("model creation", "30s"))

		body, _ := json.Marshal(gin.H{"title": "x", "audio_data": "aGk="})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/models", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	})
}

func TestList(t *testing.T) {
	t.Run("returns models with usage data", func(t *testing.T) {
		mockService := new(MockModelService)
		router := setupRouter(&types.Dependencies{ModelService: mockService})

		lastUsed := time.Now()
		mockService.On("ListModels", mock.Anything).Return([]voicemodels.ModelSummary{
			{
				VoiceModel: models.VoiceModel{ID: "m-1", Title: "First", Status: models.StatusReady},
				UsageCount: 5,
				LastUsedAt: &lastUsed,
			},
			{
				VoiceModel: models.VoiceModel{ID: "m-2", Title: "Second", Status: models.StatusFailed},
			},
		}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/models", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response types.ModelsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 2, response.Count)
		assert.Equal(t, int64(5), response.Models[0].UsageCount)
		assert.NotNil(t, response.Models[0].LastUsedAt)
		assert.Equal(t, int64(0), response.Models[1].UsageCount)
	})

	t.Run("empty list", func(t *testing.T) {
		mockService := new(MockModelService)
		router := setupRouter(&types.Dependencies{ModelService: mockService})

		mockService.On("ListModels", mock.Anything).Return([]voicemodels.ModelSummary{}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/models", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.Contains(w.Body.String(), `"models":[]`))
	})
}

func TestGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockService := new(MockModelService)
		router := setupRouter(&types.Dependencies{ModelService: mockService})

		mockService.On("GetModel", mock.Anything, "m-1").Return(&models.VoiceModel{
			ID:     "m-1",
			Title:  "Voice",
			Status: models.StatusReady,
		}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/models/m-1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockService := new(MockModelService)
		router := setupRouter(&types.Dependencies{ModelService: mockService})

		mockService.On("GetModel", mock.Anything, "missing").
			Return(nil, apperrors.NotFound("voice model", "missing"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/models/missing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetAudio(t *testing.T) {
	newUploadStore := func(t *testing.T) *storage.FilesystemStorage {
		t.Helper()
		store, err := storage.NewFilesystemStorage(t.TempDir())
		require.NoError(t, err)
		return store
	}

	t.Run("serves the stored sample", func(t *testing.T) {
		mockService := new(MockModelService)
		store := newUploadStore(t)
		router := setupRouter(&types.Dependencies{ModelService: mockService, UploadStore: store})

		path, err := store.Save(context.Background(), strings.NewReader("sample-bytes"), "m-1.wav")
		require.NoError(t, err)

		mockService.On("GetModel", mock.Anything, "m-1").Return(&models.VoiceModel{
			ID:              "m-1",
			Status:          models.StatusReady,
			SourceAudioPath: path,
		}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/models/m-1/audio", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "sample-bytes", w.Body.String())
		assert.Equal(t, "audio/wav", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Cache-Control"), "max-age=31536000")
	})

	t.Run("supports range requests", func(t *testing.T) {
		mockService := new(MockModelService)
		store := newUploadStore(t)
		router := setupRouter(&types.Dependencies{ModelService: mockService, UploadStore: store})

		path, err := store.Save(context.Background(), strings.NewReader("0123456789"), "m-1.mp3")
		require.NoError(t, err)

		mockService.On("GetModel", mock.Anything, "m-1").Return(&models.VoiceModel{
			ID:              "m-1",
			Status:          models.StatusReady,
			SourceAudioPath: path,
		}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/models/m-1/audio", nil)
		req.Header.Set("Range", "bytes=2-5")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusPartialContent, w.Code)
		assert.Equal(t, "2345", w.Body.String())
	})

	t.Run("model without stored sample", func(t *testing.T) {
		mockService := new(MockModelService)
		router := setupRouter(&types.Dependencies{ModelService: mockService, UploadStore: newUploadStore(t)})

		mockService.On("GetModel", mock.Anything, "m-2").Return(&models.VoiceModel{
			ID:     "m-2",
			Status: models.StatusReady,
		}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/models/m-2/audio", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing blob", func(t *testing.T) {
		mockService := new(MockModelService)
		store := newUploadStore(t)
		router := setupRouter(&types.Dependencies{ModelService: mockService, UploadStore: store})

		mockService.On("GetModel", mock.Anything, "m-3").Return(&models.VoiceModel{
			ID:              "m-3",
			Status:          models.StatusReady,
			SourceAudioPath: filepath.Join(store.BasePath(), "gone.mp3"),
		}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/models/m-3/audio", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown model", func(t *testing.T) {
		mockService := new(MockModelService)
		router := setupRouter(&types.Dependencies{ModelService: mockService, UploadStore: newUploadStore(t)})

		mockService.On("GetModel", mock.Anything, "missing").
			Return(nil, apperrors.NotFound("voice model", "missing"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/models/missing/audio", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDelete(t *testing.T) {
	t.Run("reports failed remote deletion", func(t *testing.T) {
		mockService := new(MockModelService)
		router := setupRouter(&types.Dependencies{ModelService: mockService})

		mockService.On("DeleteModel", mock.Anything, "m-1").Return(&voicemodels.DeleteResult{
			RemoteDeleted:     false,
			RemoteDeleteError: "connection refused",
		}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/api/v1/models/m-1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response types.DeleteModelResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.RemoteDeleted)
		assert.Equal(t, "connection refused", response.RemoteDeleteError)
	})

	t.Run("clean deletion", func(t *testing.T) {
		mockService := new(MockModelService)
		router := setupRouter(&types.Dependencies{ModelService: mockService})

		mockService.On("DeleteModel", mock.Anything, "m-1").
			Return(&voicemodels.DeleteResult{RemoteDeleted: true}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/api/v1/models/m-1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response types.DeleteModelResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.RemoteDeleted)
		assert.Empty(t, response.RemoteDeleteError)
	})

	t.Run("not found", func(t *testing.T) {
		mockService := new(MockModelService)
		router := setupRouter(&types.Dependencies{ModelService: mockService})

		mockService.On("DeleteModel", mock.Anything, "missing").
			Return(nil, apperrors.NotFound("voice model", "missing"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/api/v1/models/missing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
