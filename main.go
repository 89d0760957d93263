package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"content_generator/config"
	"content_generator/exporter"
	"content_generator/generator"
	"content_generator/logging"
	"content_generator/server"
)

var verbose bool

func main() {
	configPath := flag.String("config", "config/config.json", "path to config.json")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	contentType := flag.String("type", generator.BlogPost.String(), "content type: Blog Post | Social Media Post | Product Description")
	tone := flag.String("tone", generator.Formal.String(), "tone: Formal | Casual | Professional | Inspirational | Humorous")
	length := flag.Int("length", generator.DefaultTargetLength, "content length in words (100-1500)")
	topic := flag.String("topic", "", "keywords or topic")
	out := flag.String("out", "", "output PDF path (default: derived from topic)")
	flag.BoolVar(&verbose, "v", false, "enable debug logs")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger := logging.New(level, cfg.Log.Format)
	slog.SetDefault(logger)

	// 模型客户端在进程启动时创建一次，整个进程生命周期内复用。
	llm, err := buildLLM(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	agent, err := generator.NewAgent(llm, exporter.NewPDFExporter(), logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Web server mode
	if *serve {
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		if listen == "" {
			listen = ":8080"
		}
		if err := runServer(agent, listen, logger); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	req, err := requestFromFlags(*contentType, *tone, *length, *topic)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := runOnce(ctx, agent, req, *out, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildLLM(cfg config.Config, logger *slog.Logger) (generator.LLMClient, error) {
	settings := &generator.LLMSettings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  cfg.LLM.Timeout,
	}
	switch cfg.LLM.Provider {
	case "mock":
		return generator.MockLLM{}, nil
	case "openai":
		return generator.NewOpenAILLMFromConfig(settings)
	case "deepseek":
		// DeepSeek 提供 OpenAI 兼容接口，需填写 base_url（例如官方/网关地址）。
		if cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return generator.NewOpenAILLMFromConfig(settings)
	case "huggingface":
		return generator.NewHuggingFaceLLMFromConfig(settings, logger)
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}

func requestFromFlags(contentType, tone string, length int, topic string) (generator.Request, error) {
	ct, err := generator.ParseContentType(contentType)
	if err != nil {
		return generator.Request{}, err
	}
	t, err := generator.ParseTone(tone)
	if err != nil {
		return generator.Request{}, err
	}
	return generator.Request{
		ContentType:  ct,
		Tone:         t,
		TargetLength: length,
		Topic:        topic,
	}, nil
}

var errNoTopic = errors.New(generator.EmptyTopicMessage)

// runOnce prints the generated text to w and writes the PDF to outPath.
func runOnce(ctx context.Context, s generator.Submitter, req generator.Request, outPath string, w io.Writer) error {
	res, err := s.Submit(ctx, req)
	if err != nil {
		return err
	}
	if res.PDF == nil {
		return errNoTopic
	}
	if outPath == "" {
		outPath = res.Filename
	}
	if err := os.WriteFile(outPath, res.PDF, 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	fmt.Fprintln(w, res.Text)
	slog.Info("[cli] pdf written", "path", outPath, "bytes", len(res.PDF))
	return nil
}

func runServer(agent generator.Submitter, listen string, logger *slog.Logger) error {
	srv, err := server.New(agent, logger)
	if err != nil {
		return err
	}
	httpSrv := &http.Server{
		Addr:              listen,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting web server", "addr", listen)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutdown signal received")
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("service stopped")
	return nil
}
