// Package bootstrap wires the application graph. Everything is constructed
// here and injected; no package keeps process-global state.
package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gridrez/resume-parser/internal/config"
	"github.com/gridrez/resume-parser/internal/core/ports"
	"github.com/gridrez/resume-parser/internal/core/usecase"
	"github.com/gridrez/resume-parser/internal/export"
	"github.com/gridrez/resume-parser/internal/infrastructure/cache/fingerprint"
	"github.com/gridrez/resume-parser/internal/infrastructure/extractor"
	"github.com/gridrez/resume-parser/internal/infrastructure/llm/ollama"
	"github.com/gridrez/resume-parser/internal/infrastructure/queue/nats"
	"github.com/gridrez/resume-parser/internal/infrastructure/repository/inmemory"
	"github.com/gridrez/resume-parser/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Metrics *metrics.Metrics

	Store    ports.ResumeStore
	IntakeUC ports.ResumeIntake
	Exporter *export.Service

	closeFn func()
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	m := metrics.New("resume-parser")
	store := inmemory.NewResumeStore()
	cache := fingerprint.New(m)
	textExtractor := extractor.New(m)

	llmClient := ollama.New(
		cfg.OllamaURL,
		cfg.OllamaModel,
		time.Duration(cfg.OllamaTimeoutSeconds)*time.Second,
		m,
		logger,
	)

	publisher, err := nats.New(cfg.NATSURL, cfg.NATSSubject, logger)
	if err != nil {
		return nil, fmt.Errorf("init event publisher: %w", err)
	}
	if publisher.Enabled() {
		logger.Info("event_publishing_enabled", "subject", cfg.NATSSubject)
	}

	parseUC := usecase.NewParseResumeUseCase(store, llmClient, logger)
	intakeUC := usecase.NewIntakeResumeUseCase(
		textExtractor,
		cache,
		store,
		parseUC,
		publisher,
		cfg.MinTextChars,
		logger,
	)

	return &App{
		Config:   cfg,
		Metrics:  m,
		Store:    store,
		IntakeUC: intakeUC,
		Exporter: export.NewService(store, logger),

		closeFn: publisher.Close,
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
