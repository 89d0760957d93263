package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"content_generator/config"
	"content_generator/exporter"
	"content_generator/generator"
)

func newMockAgent(t *testing.T) *generator.Agent {
	t.Helper()
	agent, err := generator.NewAgent(generator.MockLLM{}, exporter.NewPDFExporter(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	return agent
}

func TestRunOnceWritesPDF(t *testing.T) {
	req, err := requestFromFlags("Blog Post", "Casual", 500, "renewable energy")
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "out.pdf")
	var stdout bytes.Buffer
	if err := runOnce(context.Background(), newMockAgent(t), req, out, &stdout); err != nil {
		t.Fatalf("runOnce: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("written file is not a PDF")
	}
	want := "Write a Casual blog post of 500 words about renewable energy. Include an engaging introduction and conclusion."
	if !bytes.HasPrefix(stdout.Bytes(), []byte(want)) {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunOnceDefaultsFilenameFromTopic(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(wd) }()

	req, err := requestFromFlags("Social Media Post", "Humorous", 100, "Monday Coffee")
	if err != nil {
		t.Fatal(err)
	}
	if err := runOnce(context.Background(), newMockAgent(t), req, "", io.Discard); err != nil {
		t.Fatalf("runOnce: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "monday-coffee.pdf")); err != nil {
		t.Errorf("expected monday-coffee.pdf: %v", err)
	}
}

func TestRunOnceEmptyTopic(t *testing.T) {
	req, err := requestFromFlags("Blog Post", "Formal", 500, " ")
	if err != nil {
		t.Fatal(err)
	}
	err = runOnce(context.Background(), newMockAgent(t), req, filepath.Join(t.TempDir(), "x.pdf"), io.Discard)
	if !errors.Is(err, errNoTopic) || err.Error() != "Please provide a topic or keywords." {
		t.Errorf("err = %v", err)
	}
}

func TestRequestFromFlagsRejectsUnknown(t *testing.T) {
	if _, err := requestFromFlags("Essay", "Formal", 500, "x"); !errors.Is(err, generator.ErrUnknownContentType) {
		t.Errorf("content type err = %v", err)
	}
	if _, err := requestFromFlags("Blog Post", "Grumpy", 500, "x"); !errors.Is(err, generator.ErrUnknownTone) {
		t.Errorf("tone err = %v", err)
	}
}

func TestBuildLLM(t *testing.T) {
	tests := []struct {
		name    string
		llm     config.LLMConfig
		wantErr bool
	}{
		{"mock", config.LLMConfig{Provider: "mock"}, false},
		{"openai", config.LLMConfig{Provider: "openai", Model: "gpt-4o-mini", APIKey: "k"}, false},
		{"openai without key", config.LLMConfig{Provider: "openai", Model: "gpt-4o-mini"}, true},
		{"deepseek without base url", config.LLMConfig{Provider: "deepseek", Model: "deepseek-chat", APIKey: "k"}, true},
		{"deepseek", config.LLMConfig{Provider: "deepseek", Model: "deepseek-chat", APIKey: "k", BaseURL: "https://api.deepseek.com/v1"}, false},
		{"huggingface", config.LLMConfig{Provider: "huggingface", APIKey: "hf"}, false},
		{"unknown", config.LLMConfig{Provider: "local"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm, err := buildLLM(config.Config{LLM: tt.llm}, slog.New(slog.NewTextHandler(io.Discard, nil)))
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil || llm == nil {
				t.Errorf("buildLLM = %v, %v", llm, err)
			}
		})
	}
}
