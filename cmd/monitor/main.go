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
	"inkscan/internal/indexer"
	"inkscan/internal/monitor"
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

// main is the entry point for the standalone folder monitor daemon.
// It runs the same scan pipeline as cmd/api but without the HTTP surface:
// watch folder in, processed notes out, until SIGINT/SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting folder monitor daemon...")

	if cfg.Monitor.WatchFolder == "" {
		logger.Error(ctx, "monitor.watch_folder is not configured")
		return
	}

	// Note repository
	var repo repository.NoteRepository
	switch cfg.Vault.Backend {
	case "memos":
		memosClient := memosRepo.NewClient(cfg.Memos.URL, cfg.Memos.AccessToken)
		repo = memosRepo.New(memosClient, logger)
	default:
		repo = vaultRepo.New(cfg.Vault.Path, logger)
	}

	// LLM provider chain
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	retryDelay, err := time.ParseDuration(cfg.LLM.RetryDelay)
	if err != nil {
		retryDelay = time.Second
	}
	maxTimeout, err := time.ParseDuration(cfg.LLM.MaxTotalTimeout)
	if err != nil {
		maxTimeout = 60 * time.Second
	}
	llm := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTimeout,
	}, logger)

	// Date parsing and task extraction
	timezone := cfg.Tasks.Timezone
	dateParser, dtErr := datemath.NewParser(timezone)
	if dtErr != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", timezone, dtErr)
		dateParser, _ = datemath.NewParser("UTC")
		timezone = "UTC"
	}
	extractor := taskline.NewExtractor(dateParser, cfg.Tasks.DefaultTags)

	// Optional integrations
	var calendarClient *gcalendar.Client
	if cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, err = gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath, cfg.GoogleCalendar.TokenPath)
		if err != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", err)
			calendarClient = nil
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
		}
	}

	var notifier usecase.Notifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		notifier = usecase.NewTelegramNotifier(telegram.NewBot(cfg.Telegram.BotToken), cfg.Telegram.ChatID)
	}

	var noteIndexer usecase.Indexer
	if embedder != nil && vectorClient != nil {
		idx := indexer.New(logger, repo, embedder, vectorClient, cfg.Qdrant.CollectionName, cfg.Qdrant.VectorSize)
		idx.EnsureCollection(ctx)
		noteIndexer = idx
	}

	// Trigger pipeline
	table := trigger.DefaultTable()
	for _, id := range cfg.Trigger.DisabledActions {
		if a, ok := table.ByID(id); ok {
			a.Enabled = false
			table.Register(a)
		}
	}

	var filer trigger.TaskFiler
	if cfg.Trigger.TasksToNotes {
		filer = usecase.NewTaskFiler(logger, repo, extractor)
	}

	dispatcher := trigger.New(logger, table, usecase.NewLLMExecutor(llm), filer,
		related.New(logger, repo, embedder, vectorClient, cfg.Qdrant.CollectionName),
		trigger.Config{
			ResponseStyle:  cfg.Trigger.ResponseStyle,
			ResponseLength: cfg.Trigger.ResponseLength,
			TasksToNotes:   cfg.Trigger.TasksToNotes,
			RatePerMinute:  cfg.Trigger.RatePerMinute,
		})

	noteUC := usecase.New(logger, repo, llm, dispatcher, table, extractor, calendarClient, noteIndexer, notifier, timezone)

	// Monitor
	interval, err := time.ParseDuration(cfg.Monitor.PollInterval)
	if err != nil {
		interval = 30 * time.Second
	}

	deps := monitor.Deps{
		Processor: noteUC,
		State:     monitor.NewFileStateStore(cfg.Monitor.StateFile),
	}
	if cfg.Monitor.ArchiveFolder != "" {
		deps.PostAction = monitor.NewArchiver(logger, cfg.Monitor.ArchiveFolder)
	}
	if notifier != nil {
		deps.Notifier = notifier
	}
	if cfg.Monitor.UseFsnotify {
		watcher, wErr := fsnotify.NewWatcher()
		if wErr != nil {
			logger.Warnf(ctx, "fsnotify unavailable, polling only: %v", wErr)
		} else {
			deps.Watcher = watcher
		}
	}

	mon, err := monitor.New(logger, monitor.Config{
		WatchFolder:  cfg.Monitor.WatchFolder,
		Pattern:      cfg.Monitor.Pattern,
		Extensions:   cfg.Monitor.Extensions,
		PollInterval: interval,
		DedupSize:    cfg.Monitor.DedupSize,
	}, deps)
	if err != nil {
		logger.Error(ctx, "Failed to initialize folder monitor: ", err)
		return
	}

	if err := mon.Start(ctx); err != nil {
		logger.Error(ctx, "Failed to start folder monitor: ", err)
		return
	}
	logger.Infof(ctx, "✅ Watching %s every %s", cfg.Monitor.WatchFolder, interval)

	// Run until signal
	<-ctx.Done()

	logger.Info(ctx, "Shutting down folder monitor...")
	mon.Stop()
	logger.Info(ctx, "Folder monitor stopped gracefully")
}
