package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"content_generator/metrics"
)

// EmptyTopicMessage is shown instead of a result when no topic was given.
const EmptyTopicMessage = "Please provide a topic or keywords."

var (
	ErrGeneration = errors.New("generation failed")
	ErrExport     = errors.New("export failed")
)

// Exporter renders a titled document into downloadable bytes.
type Exporter interface {
	Render(title, body string) ([]byte, error)
}

// Submitter is what every front-end talks to: submit a request, get the text and the file.
type Submitter interface {
	Submit(ctx context.Context, req Request) (Result, error)
}

var _ Submitter = (*Agent)(nil)

// Agent 串联 prompt 构建、模型生成与文档导出。无状态，可并发使用。
type Agent struct {
	llm      LLMClient
	exporter Exporter
	logger   *slog.Logger
}

func NewAgent(llm LLMClient, exporter Exporter, logger *slog.Logger) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if exporter == nil {
		return nil, errors.New("exporter is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{llm: llm, exporter: exporter, logger: logger}, nil
}

// Submit runs one request. An empty topic is not an error: the result carries
// EmptyTopicMessage and no file, and the model is never called.
func (a *Agent) Submit(ctx context.Context, req Request) (Result, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		metrics.IncGeneration(req.ContentType.String(), "empty_topic")
		return Result{Text: EmptyTopicMessage}, nil
	}
	if err := req.Validate(); err != nil {
		metrics.IncGeneration(req.ContentType.String(), "invalid")
		return Result{}, err
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		metrics.IncGeneration(req.ContentType.String(), "invalid")
		return Result{}, err
	}

	log := a.logger.With("content_type", req.ContentType.String(), "tone", req.Tone.String(), "length", req.TargetLength)
	log.Info("generating content", "topic", req.Topic)

	start := time.Now()
	text, err := a.llm.Generate(ctx, prompt, req.TargetLength)
	metrics.ObserveGenerationDuration(req.ContentType.String(), time.Since(start))
	if err != nil {
		metrics.IncGeneration(req.ContentType.String(), "llm_error")
		log.Error("generation failed", "err", err)
		return Result{}, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	doc := Document{Title: Title(req.ContentType, req.Topic), Body: text}
	pdf, err := a.exporter.Render(doc.Title, doc.Body)
	if err != nil {
		metrics.IncGeneration(req.ContentType.String(), "export_error")
		log.Error("export failed", "err", err)
		return Result{}, fmt.Errorf("%w: %w", ErrExport, err)
	}
	metrics.ObserveExportedBytes(len(pdf))
	metrics.IncGeneration(req.ContentType.String(), "ok")

	log.Info("content generated", "chars", len(text), "pdf_bytes", len(pdf), "duration", time.Since(start))
	return Result{
		Text:     text,
		PDF:      pdf,
		Filename: DownloadName(req.Topic),
	}, nil
}
