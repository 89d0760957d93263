package generator

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
type MockLLM struct{}

func (m MockLLM) Generate(_ context.Context, prompt string, maxLength int) (string, error) {
	var sb strings.Builder
	sb.WriteString(prompt)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("This is placeholder text generated locally (max length %d).\n", maxLength))
	sb.WriteString("Configure llm.provider to use a real model.")
	return sb.String(), nil
}
