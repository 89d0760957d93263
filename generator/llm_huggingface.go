package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"content_generator/metrics"
)

const (
	DefaultHuggingFaceBaseURL = "https://api-inference.huggingface.co"
	DefaultHuggingFaceModel   = "EleutherAI/gpt-neo-2.7B"
)

// HuggingFaceLLM calls the Hugging Face inference text-generation task.
type HuggingFaceLLM struct {
	Model   string
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

type hfParameters struct {
	MaxLength          int `json:"max_length"`
	NumReturnSequences int `json:"num_return_sequences"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
	Options    hfOptions    `json:"options"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

// NewHuggingFaceLLMFromConfig builds the adapter. A nil logger falls back to slog.Default().
func NewHuggingFaceLLMFromConfig(cfg *LLMSettings, logger *slog.Logger) (*HuggingFaceLLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("huggingface api token missing; provide llm.api_key")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultHuggingFaceModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultHuggingFaceBaseURL
	}
	return &HuggingFaceLLM{
		Model:   model,
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger.With("provider", "huggingface", "model", model),
	}, nil
}

func (h *HuggingFaceLLM) Generate(ctx context.Context, prompt string, maxLength int) (string, error) {
	metrics.IncLLMRequest("huggingface", h.Model)

	body, err := json.Marshal(hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxLength:          maxLength,
			NumReturnSequences: 1,
		},
		Options: hfOptions{WaitForModel: true},
	})
	if err != nil {
		metrics.IncError("llm", "marshal_request")
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := h.baseURL + "/models/" + h.Model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		metrics.IncError("llm", "create_request")
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.apiKey)

	resp, err := h.client.Do(req)
	if err != nil {
		metrics.IncError("llm", "http_do")
		return "", fmt.Errorf("failed to call %s: %w", url, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			h.logger.Warn("close huggingface response body", "err", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		metrics.IncError("llm", fmt.Sprintf("api_error_%d", resp.StatusCode))
		return "", fmt.Errorf("huggingface api error: %d - %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out []hfGeneration
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		metrics.IncError("llm", "decode_response")
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out) == 0 {
		metrics.IncError("llm", "empty_response")
		return "", errors.New("huggingface: no generated sequences")
	}
	return out[0].GeneratedText, nil
}
