package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"line-knowledge-assistant/config"
	_ "line-knowledge-assistant/docs" // Swagger docs
	"line-knowledge-assistant/internal/chat"
	lineDelivery "line-knowledge-assistant/internal/chat/delivery/line"
	chatUC "line-knowledge-assistant/internal/chat/usecase"
	"line-knowledge-assistant/internal/grounding"
	groundingRepo "line-knowledge-assistant/internal/grounding/repository"
	azureSearcher "line-knowledge-assistant/internal/grounding/repository/azure"
	qdrantSearcher "line-knowledge-assistant/internal/grounding/repository/qdrant"
	groundingUC "line-knowledge-assistant/internal/grounding/usecase"
	"line-knowledge-assistant/internal/httpserver"
	"line-knowledge-assistant/internal/prompt"
	"line-knowledge-assistant/internal/reply"
	"line-knowledge-assistant/internal/session"
	sessionRepo "line-knowledge-assistant/internal/session/repository"
	badgerRepo "line-knowledge-assistant/internal/session/repository/badger"
	memoryRepo "line-knowledge-assistant/internal/session/repository/memory"
	sessionUC "line-knowledge-assistant/internal/session/usecase"
	"line-knowledge-assistant/internal/webhook"
	"line-knowledge-assistant/pkg/azuresearch"
	"line-knowledge-assistant/pkg/line"
	"line-knowledge-assistant/pkg/llmprovider"
	"line-knowledge-assistant/pkg/log"
	"line-knowledge-assistant/pkg/metrics"
	"line-knowledge-assistant/pkg/qdrant"
	"line-knowledge-assistant/pkg/voyage"
)

// @title       LINE Knowledge Assistant API
// @description LINE chat webhook answering questions from an indexed knowledge base.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting LINE Knowledge Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	m := metrics.New()

	// 3. Sessions
	repo, closeRepo, err := newSessionRepository(cfg.Session, logger)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize session storage: %v", err)
		os.Exit(1)
	}
	defer closeRepo()

	sessions, err := sessionUC.New(logger, repo, session.Options{
		Capacity: 2 * cfg.Session.MaxExchanges,
		TTL:      time.Duration(cfg.Session.TTLSeconds) * time.Second,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize session store: %v", err)
		os.Exit(1)
	}

	// 4. Grounding
	searchers, err := newSearchers(cfg)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize search: %v", err)
		os.Exit(1)
	}
	for _, s := range searchers {
		logger.Infof(ctx, "Search backend: %s", s.Name())
	}
	resolver := groundingUC.New(logger, searchers, groundingOptions(cfg))

	// 5. Completion
	providers, err := llmprovider.InitializeProviders(&cfg.LLM, logger)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize LLM providers: %v", err)
		os.Exit(1)
	}
	var maxTotal time.Duration
	if cfg.LLM.MaxTotalTimeout != "" {
		if maxTotal, err = time.ParseDuration(cfg.LLM.MaxTotalTimeout); err != nil {
			logger.Warnf(ctx, "Invalid llm.max_total_timeout %q, disabling it: %v", cfg.LLM.MaxTotalTimeout, err)
			maxTotal = 0
		}
	}
	completer := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		MaxTotalTimeout: maxTotal,
	}, logger)

	// 6. LINE
	lineClient := line.NewClient(cfg.Line.ChannelAccessToken)
	lineClient.SetAPIURL(cfg.Line.APIURL)
	dispatcher := reply.NewDispatcher(lineClient, cfg.Prompt.QuickReplies)

	topicPattern := chat.DefaultTopicPattern
	if cfg.Session.TopicPattern != "" {
		topicPattern = cfg.Session.TopicPattern
	}
	topicRe, err := regexp.Compile(topicPattern)
	if err != nil {
		logger.Errorf(ctx, "Invalid session.topic_pattern %q: %v", topicPattern, err)
		os.Exit(1)
	}

	chatUseCase := chatUC.New(logger, sessions, resolver, completer, dispatcher, m, chat.Options{
		SystemInstruction: cfg.Prompt.SystemInstruction,
		Placement:         prompt.Placement(cfg.Prompt.GroundingPlacement),
		TopicPattern:      topicRe,
		Sampling: chat.Sampling{
			MaxTokens:        cfg.LLM.MaxTokens,
			Temperature:      cfg.LLM.Temperature,
			TopP:             cfg.LLM.TopP,
			FrequencyPenalty: cfg.LLM.FrequencyPenalty,
			PresencePenalty:  cfg.LLM.PresencePenalty,
		},
	})

	security := webhook.NewSecurityValidator(webhook.SecurityConfig{
		ChannelSecret:   cfg.Line.ChannelSecret,
		AllowedIPs:      cfg.Webhook.AllowedIPs,
		RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
	})
	lineHandler := lineDelivery.New(logger, chatUseCase, dispatcher, security, m)

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Metrics:     m,

		TrustedProxies: cfg.Webhook.TrustedProxies,
		LineHandler:    lineHandler,
		ReadyChecks: map[string]httpserver.ReadyCheck{
			"session": sessionReadyCheck(repo),
		},
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		os.Exit(1)
	}

	go registerWebhook(ctx, logger, lineClient, cfg.Line)

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}

	logger.Info(context.Background(), "Server stopped gracefully")
}

// newSessionRepository opens the configured session backend. The returned
// func releases it.
func newSessionRepository(cfg config.SessionConfig, l log.Logger) (sessionRepo.Repository, func(), error) {
	switch cfg.Backend {
	case "badger":
		db, err := badgerRepo.Open(cfg.BadgerPath, cfg.BadgerInMem, l)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				l.Errorf(context.Background(), "Failed to close session db: %v", err)
			}
		}
		return badgerRepo.New(db, l), closeDB, nil
	default:
		repo, err := memoryRepo.New(cfg.MemorySize)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	}
}

// sessionReadyCheck reports whether the session backend answers reads.
// A missing key is a successful read.
func sessionReadyCheck(repo sessionRepo.Repository) httpserver.ReadyCheck {
	return func(ctx context.Context) error {
		_, _, err := repo.Load(ctx, "readiness")
		return err
	}
}

// newSearchers builds the search collaborators in the order listed by search.backends.
func newSearchers(cfg *config.Config) ([]groundingRepo.Searcher, error) {
	var out []groundingRepo.Searcher

	for _, backend := range cfg.Search.Backends {
		switch backend {
		case "azure":
			fields := azureSearcher.Fields{
				Title:    cfg.AzureSearch.TitleField,
				Content:  cfg.AzureSearch.ContentField,
				Category: cfg.AzureSearch.CategoryField,
			}
			for _, index := range []string{cfg.AzureSearch.Index, cfg.AzureSearch.SecondaryIndex} {
				if index == "" {
					continue
				}
				client := azuresearch.NewClient(cfg.AzureSearch.Endpoint, index, cfg.AzureSearch.Key).
					WithAPIVersion(cfg.AzureSearch.APIVersion)
				out = append(out, azureSearcher.New(client, fields))
			}
		case "qdrant":
			embedder, err := voyage.New(cfg.Voyage.APIKey)
			if err != nil {
				return nil, err
			}
			if cfg.Voyage.Model != "" {
				embedder = embedder.WithModel(cfg.Voyage.Model)
			}
			client := qdrant.NewClient(cfg.Qdrant.URL).WithAPIKey(cfg.Qdrant.APIKey)
			out = append(out, qdrantSearcher.New(client, embedder, cfg.Qdrant.CollectionName))
		}
	}

	return out, nil
}

func groundingOptions(cfg *config.Config) grounding.Options {
	opts := grounding.Options{
		TopN:             cfg.Search.TopN,
		FallbackMessage:  cfg.Grounding.FallbackMessage,
		CategoryPrefixes: cfg.Grounding.CategoryPrefixes,
	}
	for _, kf := range cfg.Grounding.KeywordFallbacks {
		opts.KeywordFallbacks = append(opts.KeywordFallbacks, grounding.KeywordFallback{
			Keywords: kf.Keywords,
			Message:  kf.Message,
		})
	}
	return opts
}
