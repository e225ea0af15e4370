package app

import (
	"context"
	"fmt"
	"log"

	"agrisentry/internal/dealers"
	"agrisentry/internal/flows"
	"agrisentry/internal/gateway/config"
	"agrisentry/internal/gateway/handler"
	"agrisentry/internal/gateway/server"
	"agrisentry/internal/llm"
	"agrisentry/internal/tools"
	"agrisentry/internal/tts"
)

type App struct {
	server *server.Server
	client llm.Client
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var client llm.Client
	if cfg.LLM.APIKey == "" {
		log.Println("GEMINI_API_KEY not set; using fake model client")
		client = llm.NewFakeClient()
	} else {
		client, err = llm.NewGeminiClient(ctx, llm.GeminiOptions{
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout,
			RPS:     cfg.LLM.RPS,
			Burst:   cfg.LLM.Burst,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init model client: %w", err)
		}
	}

	// Static directory, loaded once; the model reaches it through the
	// dealers.lookup tool during diagnosis.
	directory := dealers.Default()
	registry := tools.NewRegistry(tools.NewDealerLookup(directory))

	var synth tts.Synthesizer
	if !cfg.TTS.Disabled {
		synth, err = tts.NewCache(tts.NewEdgeSynthesizer(cfg.TTS.Voice), cfg.TTS.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to init tts cache: %w", err)
		}
	}

	flowSvc := flows.New(client, registry, synth)
	h := handler.NewService(flowSvc)
	srv := server.New(cfg.Port, server.NewMux(h))

	return &App{server: srv, client: client}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	if err := a.client.Close(); err != nil {
		log.Printf("model client close: %v", err)
	}
	return a.server.Shutdown(ctx)
}
