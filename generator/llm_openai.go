package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"content_generator/metrics"
)

// OpenAILLM implements LLMClient using the official openai-go SDK (chat completions).
// Any OpenAI-compatible endpoint works through BaseURL.
type OpenAILLM struct {
	Provider string
	Model    string
	client   openai.Client
}

func NewOpenAILLMFromConfig(cfg *LLMSettings) (*OpenAILLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; provide llm.api_key")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}
	provider := cfg.Provider
	if provider == "" {
		provider = "openai"
	}
	// 客户端在进程启动时创建一次，之后所有请求共享。
	return &OpenAILLM{
		Provider: provider,
		Model:    cfg.Model,
		client:   openai.NewClient(opts...),
	}, nil
}

func (o *OpenAILLM) Generate(ctx context.Context, prompt string, maxLength int) (string, error) {
	metrics.IncLLMRequest(o.Provider, o.Model)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		N: openai.Int(1),
	}
	if maxLength > 0 {
		params.MaxTokens = openai.Int(int64(maxLength))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		metrics.IncError("llm", "openai_request")
		return "", fmt.Errorf("%s chat completion: %w", o.Provider, err)
	}
	if len(resp.Choices) == 0 {
		metrics.IncError("llm", "openai_empty")
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
