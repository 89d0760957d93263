package generator

import (
	"context"
	"time"
)

// LLMClient 抽象文本生成模型，返回一条生成结果，便于替换/Mock。
type LLMClient interface {
	Generate(ctx context.Context, prompt string, maxLength int) (string, error)
}

// LLMSettings 提供给具体实现的基础配置。
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}
