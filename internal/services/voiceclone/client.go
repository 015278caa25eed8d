package voiceclone

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/vocalforge/voice-api/pkg/errors"
)

// HTTPClient talks to the Fish Audio wire protocol over HTTP
type HTTPClient struct {
	httpClient       *http.Client
	baseURL          string
	apiKey           string
	createTimeout    time.Duration
	synthesisTimeout time.Duration
	listTimeout      time.Duration
}

// Config holds configuration for the voice clone client
type Config struct {
	APIKey           string
	BaseURL          string
	CreateTimeout    time.Duration
	SynthesisTimeout time.Duration
	ListTimeout      time.Duration
}

// NewClient creates a new remote voice service client
func NewClient(cfg Config) *HTTPClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.fish.audio"
	}
	if cfg.CreateTimeout <= 0 {
		cfg.CreateTimeout = 30 * time.Second
	}
	if cfg.SynthesisTimeout <= 0 {
		cfg.SynthesisTimeout = 60 * time.Second
	}
	if cfg.ListTimeout <= 0 {
		cfg.ListTimeout = 15 * time.Second
	}

	return &HTTPClient{
		// Per-operation deadlines come from contexts, not a client-wide timeout
		httpClient:       &http.Client{},
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:           cfg.APIKey,
		createTimeout:    cfg.CreateTimeout,
		synthesisTimeout: cfg.SynthesisTimeout,
		listTimeout:      cfg.ListTimeout,
	}
}

// remoteModelPayload matches the provider's model document
type remoteModelPayload struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p remoteModelPayload) toRemoteModel() RemoteModel {
	return RemoteModel{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		State:       p.State,
		CreatedAt:   p.CreatedAt,
	}
}

// CreateModel uploads a voice sample and creates a cloned model remotely
func (c *HTTPClient) CreateModel(ctx context.Context, title, description string, audio []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.createTimeout)
	defer cancel()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("title", title); err != nil {
		return "", fmt.Errorf("writing multipart field: %w", err)
	}
	if description != "" {
		if err := writer.WriteField("description", description); err != nil {
			return "", fmt.Errorf("writing multipart field: %w", err)
		}
	}
	if err := writer.WriteField("train_mode", "fast"); err != nil {
		return "", fmt.Errorf("writing multipart field: %w", err)
	}

	part, err := writer.CreateFormFile("voices", "sample.audio")
	if err != nil {
		return "", fmt.Errorf("creating multipart file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("writing multipart file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/model", &body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.classifyTransportError("create model", err, c.createTimeout)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", c.classifyStatus("create model", resp)
	}

	var payload remoteModelPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeRemoteService, "decoding model creation response")
	}
	if payload.ID == "" {
		return "", apperrors.New(apperrors.ErrCodeRemoteService, "remote service returned no model id")
	}

	return payload.ID, nil
}

// Synthesize runs text-to-speech against a remote model and returns raw audio
func (c *HTTPClient) Synthesize(ctx context.Context, text, remoteModelID, format string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.synthesisTimeout)
	defer cancel()

	reqBody, err := json.Marshal(map[string]any{
		"text":         text,
		"reference_id": remoteModelID,
		"format":       format,
		"normalize":    true,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding synthesis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/tts", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classifyTransportError("synthesize", err, c.synthesisTimeout)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.classifyStatus("synthesize", resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classifyTransportError("synthesize", err, c.synthesisTimeout)
	}
	if len(audio) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeRemoteService, "remote service returned empty audio")
	}

	return audio, nil
}

// ListModels fetches the provider's models for this account
func (c *HTTPClient) ListModels(ctx context.Context) ([]RemoteModel, error) {
	ctx, cancel := context.WithTimeout(ctx, c.listTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/model?self=true", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classifyTransportError("list models", err, c.listTimeout)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.classifyStatus("list models", resp)
	}

	var listResp struct {
		Items []remoteModelPayload `json:"items"`
		Total int                  `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeRemoteService, "decoding model list response")
	}

	remoteModels := make([]RemoteModel, 0, len(listResp.Items))
	for _, item := range listResp.Items {
		remoteModels = append(remoteModels, item.toRemoteModel())
	}

	return remoteModels, nil
}

// DeleteModel removes a model from the provider
func (c *HTTPClient) DeleteModel(ctx context.Context, remoteModelID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.listTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/model/"+remoteModelID, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.classifyTransportError("delete model", err, c.listTimeout)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.classifyStatus("delete model", resp)
	}

	return nil
}

func (c *HTTPClient) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

// classifyTransportError maps dial/timeout failures into the remote error
// taxonomy. Unrecognized failures fall through to REMOTE_SERVICE with the
// original message preserved.
func (c *HTTPClient) classifyTransportError(operation string, err error, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.RemoteTimeoutError(operation, timeout.String())
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.RemoteTimeoutError(operation, timeout.String())
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return apperrors.Wrapf(err, apperrors.ErrCodeRemoteUnreachable,
			"voice service unreachable during %s", operation)
	}

	return apperrors.Wrapf(err, apperrors.ErrCodeRemoteService,
		"voice service request failed during %s", operation)
}

// classifyStatus maps remote HTTP status codes into the error taxonomy
func (c *HTTPClient) classifyStatus(operation string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	message := strings.TrimSpace(string(body))
	if message == "" {
		message = resp.Status
	}

	log.Printf("[ERROR] Voice service returned status %d for %s: %s", resp.StatusCode, operation, message)

	var code apperrors.ErrorCode
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		code = apperrors.ErrCodeRemoteUnauthorized
	case http.StatusPaymentRequired:
		code = apperrors.ErrCodeRemoteInsufficientBalance
	case http.StatusNotFound:
		code = apperrors.ErrCodeNotFound
	case http.StatusTooManyRequests:
		code = apperrors.ErrCodeRemoteRateLimited
	default:
		code = apperrors.ErrCodeRemoteService
	}

	return apperrors.Newf(code, "voice service %s failed: %s", operation, message).
		WithDetail("status_code", resp.StatusCode).
		WithDetail("operation", operation)
}
