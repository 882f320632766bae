package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"inkscan/config"
	_ "inkscan/docs" // Swagger docs
	"inkscan/internal/httpserver"
	"inkscan/internal/indexer"
	"inkscan/internal/middleware"
	"inkscan/internal/monitor"
	noteHTTP "inkscan/internal/note/delivery/http"
	"inkscan/internal/note/repository"
	memosRepo "inkscan/internal/note/repository/memos"
	vaultRepo "inkscan/internal/note/repository/vault"
	"inkscan/internal/note/usecase"
	"inkscan/internal/related"
	"inkscan/internal/taskline"
	"inkscan/internal/trigger"
	"inkscan/pkg/datemath"
	"inkscan/pkg/gcalendar"
	"inkscan/pkg/llmprovider"
	"inkscan/pkg/log"
	"inkscan/pkg/qdrant"
	"inkscan/pkg/telegram"
	"inkscan/pkg/voyage"
)

// @title       Inkscan API
// @description Handwritten note scanning: Markdown normalization, task extraction, trigger actions, folder monitor.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
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

	logger.Info(ctx, "Starting Inkscan...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Vault backend: %s", cfg.Vault.Backend)

	// 3. Note repository
	var repo repository.NoteRepository
	switch cfg.Vault.Backend {
	case "memos":
		memosClient := memosRepo.NewClient(cfg.Memos.URL, cfg.Memos.AccessToken)
		repo = memosRepo.New(memosClient, logger)
	default:
		repo = vaultRepo.New(cfg.Vault.Path, logger)
	}

	// 4. LLM provider chain
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	llm := llmprovider.NewManager(providers, managerConfig(&cfg.LLM), logger)

	// 5. Date parsing and task extraction
	timezone := cfg.Tasks.Timezone
	dateParser, dtErr := datemath.NewParser(timezone)
	if dtErr != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", timezone, dtErr)
		dateParser, _ = datemath.NewParser("UTC")
		timezone = "UTC"
	}
	extractor := taskline.NewExtractor(dateParser, cfg.Tasks.DefaultTags)

	// 6. Optional integrations
	var calendarClient *gcalendar.Client
	if cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, err = gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath, cfg.GoogleCalendar.TokenPath)
		if err != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", err)
			logger.Warn(ctx, "→ Run `go run scripts/gcal-auth/main.go` to generate token.json")
			calendarClient = nil
		} else {
			logger.Info(ctx, "✅ Google Calendar initialized")
		}
	}

	var embedder voyage.IVoyage
	var vectorClient *qdrant.Client
	if cfg.Voyage.APIKey != "" && cfg.Qdrant.URL != "" {
		voyageClient, vErr := voyage.New(cfg.Voyage.APIKey)
		if vErr != nil {
			logger.Warnf(ctx, "Voyage embeddings not available (optional): %v", vErr)
		} else {
			embedder = voyageClient
			vectorClient = qdrant.NewClient(cfg.Qdrant.URL)
			logger.Info(ctx, "✅ Vector search initialized")
		}
	}

	var notifier usecase.Notifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		notifier = usecase.NewTelegramNotifier(telegram.NewBot(cfg.Telegram.BotToken), cfg.Telegram.ChatID)
		logger.Info(ctx, "✅ Telegram notifications enabled")
	}

	// 7. Vector indexing (optional)
	var noteIndexer usecase.Indexer
	if embedder != nil && vectorClient != nil {
		idx := indexer.New(logger, repo, embedder, vectorClient, cfg.Qdrant.CollectionName, cfg.Qdrant.VectorSize)
		idx.EnsureCollection(ctx)
		noteIndexer = idx
	}

	// 8. Trigger pipeline
	table := trigger.DefaultTable()
	for _, id := range cfg.Trigger.DisabledActions {
		if a, ok := table.ByID(id); ok {
			a.Enabled = false
			table.Register(a)
		}
	}

	relatedFinder := related.New(logger, repo, embedder, vectorClient, cfg.Qdrant.CollectionName)

	var filer trigger.TaskFiler
	if cfg.Trigger.TasksToNotes {
		filer = usecase.NewTaskFiler(logger, repo, extractor)
	}

	dispatcher := trigger.New(logger, table, usecase.NewLLMExecutor(llm), filer, relatedFinder, trigger.Config{
		ResponseStyle:  cfg.Trigger.ResponseStyle,
		ResponseLength: cfg.Trigger.ResponseLength,
		TasksToNotes:   cfg.Trigger.TasksToNotes,
		RatePerMinute:  cfg.Trigger.RatePerMinute,
	})

	// 9. Note UseCase
	noteUC := usecase.New(logger, repo, llm, dispatcher, table, extractor, calendarClient, noteIndexer, notifier, timezone)

	// 10. Folder monitor (optional, in-process)
	var mon *monitor.Monitor
	if cfg.Monitor.Enabled {
		mon, err = buildMonitor(logger, cfg.Monitor, noteUC, notifier)
		if err != nil {
			logger.Error(ctx, "Failed to initialize folder monitor: ", err)
			return
		}
		if err := mon.Start(ctx); err != nil {
			logger.Error(ctx, "Failed to start folder monitor: ", err)
			return
		}
		defer mon.Stop()
		logger.Infof(ctx, "✅ Folder monitor watching %s", cfg.Monitor.WatchFolder)
	}

	// 11. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		NoteHandler: noteHTTP.New(logger, noteUC, cfg.Ingest.Async),
		Middleware:  middleware.New(logger, cfg.Ingest),
		Monitor:     mon,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 12. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// managerConfig converts the string durations of the config file into the
// manager's typed config, with the documented defaults on parse failure.
func managerConfig(cfg *config.LLMConfig) *llmprovider.Config {
	retryDelay, err := time.ParseDuration(cfg.RetryDelay)
	if err != nil {
		retryDelay = time.Second
	}
	maxTimeout, err := time.ParseDuration(cfg.MaxTotalTimeout)
	if err != nil {
		maxTimeout = 60 * time.Second
	}
	return &llmprovider.Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTimeout,
	}
}

// buildMonitor assembles the folder monitor from config. The note usecase
// is its processor; archive and fsnotify wiring are optional.
func buildMonitor(logger log.Logger, cfg config.MonitorConfig, noteUC monitor.Processor, notifier usecase.Notifier) (*monitor.Monitor, error) {
	interval, err := time.ParseDuration(cfg.PollInterval)
	if err != nil {
		interval = 30 * time.Second
	}

	deps := monitor.Deps{
		Processor: noteUC,
		State:     monitor.NewFileStateStore(cfg.StateFile),
	}
	if cfg.ArchiveFolder != "" {
		deps.PostAction = monitor.NewArchiver(logger, cfg.ArchiveFolder)
	}
	if notifier != nil {
		deps.Notifier = notifier
	}
	if cfg.UseFsnotify {
		watcher, wErr := fsnotify.NewWatcher()
		if wErr != nil {
			logger.Warnf(context.Background(), "fsnotify unavailable, polling only: %v", wErr)
		} else {
			deps.Watcher = watcher
		}
	}

	return monitor.New(logger, monitor.Config{
		WatchFolder:  cfg.WatchFolder,
		Pattern:      cfg.Pattern,
		Extensions:   cfg.Extensions,
		PollInterval: interval,
		DedupSize:    cfg.DedupSize,
	}, deps)
}
