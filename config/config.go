package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Pipeline
	Vault   VaultConfig
	Monitor MonitorConfig
	Trigger TriggerConfig
	Tasks   TasksConfig
	Ingest  IngestConfig

	// Integrations
	Memos          MemosConfig
	Qdrant         QdrantConfig
	Telegram       TelegramConfig
	GoogleCalendar GoogleCalendarConfig
	Voyage         VoyageConfig

	// LLM Provider Abstraction
	LLM LLMConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// VaultConfig selects and locates the note store.
type VaultConfig struct {
	Backend string // "vault" (filesystem) or "memos"
	Path    string // vault root directory for the filesystem backend
}

// MonitorConfig drives the folder monitor daemon.
type MonitorConfig struct {
	Enabled       bool
	WatchFolder   string
	Pattern       string   // filename glob, e.g. "scan-*"
	Extensions    []string // allow-list without dots; default png,jpg,jpeg
	PollInterval  string   // duration string; floored at 5s
	ArchiveFolder string   // processed files move here; empty leaves them in place
	StateFile     string   // persisted cutoff location
	DedupSize     int      // in-session dedup set capacity
	UseFsnotify   bool     // wake the poll loop on create events
}

// TriggerConfig tunes underline-trigger dispatch.
type TriggerConfig struct {
	DisabledActions []string // action ids switched off in the table
	ResponseStyle   string
	ResponseLength  string
	TasksToNotes    bool
	RatePerMinute   int
}

// TasksConfig tunes task extraction.
type TasksConfig struct {
	DefaultTags []string
	Timezone    string // IANA name for date resolution, e.g. "Europe/Berlin"; "Local" uses the host zone
}

// IngestConfig secures the HTTP ingest surface.
type IngestConfig struct {
	APIKeys         []string // accepted X-API-Key values; empty disables auth
	Secret          string   // HMAC secret for the scan route; empty disables
	RateLimitPerMin int
	Async           bool // scan endpoint acks and processes in the background
}

type MemosConfig struct {
	URL         string
	AccessToken string
}

type QdrantConfig struct {
	URL            string
	CollectionName string
	VectorSize     int
}

type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	TokenPath       string
}

type VoyageConfig struct {
	APIKey string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"` // Global timeout for entire fallback chain
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Vault
	cfg.Vault.Backend = viper.GetString("vault.backend")
	cfg.Vault.Path = viper.GetString("vault.path")

	// Monitor
	cfg.Monitor.Enabled = viper.GetBool("monitor.enabled")
	cfg.Monitor.WatchFolder = viper.GetString("monitor.watch_folder")
	cfg.Monitor.Pattern = viper.GetString("monitor.pattern")
	cfg.Monitor.Extensions = splitList(viper.GetString("monitor.extensions"))
	cfg.Monitor.PollInterval = viper.GetString("monitor.poll_interval")
	cfg.Monitor.ArchiveFolder = viper.GetString("monitor.archive_folder")
	cfg.Monitor.StateFile = viper.GetString("monitor.state_file")
	cfg.Monitor.DedupSize = viper.GetInt("monitor.dedup_size")
	cfg.Monitor.UseFsnotify = viper.GetBool("monitor.use_fsnotify")

	// Trigger dispatch
	cfg.Trigger.DisabledActions = splitList(viper.GetString("trigger.disabled_actions"))
	cfg.Trigger.ResponseStyle = viper.GetString("trigger.response_style")
	cfg.Trigger.ResponseLength = viper.GetString("trigger.response_length")
	cfg.Trigger.TasksToNotes = viper.GetBool("trigger.tasks_to_notes")
	cfg.Trigger.RatePerMinute = viper.GetInt("trigger.rate_per_minute")

	// Task extraction
	cfg.Tasks.DefaultTags = splitList(viper.GetString("tasks.default_tags"))
	cfg.Tasks.Timezone = viper.GetString("tasks.timezone")

	// Ingest security
	cfg.Ingest.APIKeys = splitList(expandEnvVar(viper.GetString("ingest.api_keys")))
	cfg.Ingest.Secret = viper.GetString("ingest.secret")
	if secret := viper.GetString("ingest_secret"); secret != "" {
		cfg.Ingest.Secret = secret
	}
	cfg.Ingest.RateLimitPerMin = viper.GetInt("ingest.rate_limit_per_min")
	cfg.Ingest.Async = viper.GetBool("ingest.async")

	// Memos backend
	cfg.Memos.URL = viper.GetString("memos.url")
	cfg.Memos.AccessToken = viper.GetString("memos.access_token")
	if memosURL := viper.GetString("memos_url"); memosURL != "" {
		cfg.Memos.URL = memosURL
	}
	if memosToken := viper.GetString("memos_access_token"); memosToken != "" {
		cfg.Memos.AccessToken = memosToken
	}

	cfg.Qdrant.URL = viper.GetString("qdrant.url")
	cfg.Qdrant.CollectionName = viper.GetString("qdrant.collection_name")
	cfg.Qdrant.VectorSize = viper.GetInt("qdrant.vector_size")
	if qdrantURL := viper.GetString("qdrant_url"); qdrantURL != "" {
		cfg.Qdrant.URL = qdrantURL
	}

	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.ChatID = viper.GetInt64("telegram.chat_id")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}
	cfg.GoogleCalendar.TokenPath = viper.GetString("google_calendar.token_path")

	// Voyage AI
	cfg.Voyage.APIKey = viper.GetString("voyage.api_key")
	if voyageKey := viper.GetString("voyage_api_key"); voyageKey != "" {
		cfg.Voyage.APIKey = voyageKey
	}

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	// Load provider configurations
	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, fmt.Errorf("llm config: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("vault.backend", "vault")
	viper.SetDefault("vault.path", "./vault")

	viper.SetDefault("monitor.enabled", false)
	viper.SetDefault("monitor.pattern", "*")
	viper.SetDefault("monitor.extensions", "png,jpg,jpeg")
	viper.SetDefault("monitor.poll_interval", "30s")
	viper.SetDefault("monitor.state_file", ".inkscan-monitor.json")
	viper.SetDefault("monitor.dedup_size", 512)
	viper.SetDefault("monitor.use_fsnotify", true)

	viper.SetDefault("trigger.tasks_to_notes", true)
	viper.SetDefault("trigger.rate_per_minute", 10)

	viper.SetDefault("tasks.timezone", "Local")

	viper.SetDefault("ingest.rate_limit_per_min", 60)

	viper.SetDefault("qdrant.collection_name", "notes")
	viper.SetDefault("qdrant.vector_size", 1024)

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")
}

// splitList parses a comma-separated config value. Viper cannot be relied on
// to produce slices when the value comes from an env var.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	// Check if value is in format ${VAR_NAME}
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		// Try lowercase version
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		// Try direct os.Getenv as last resort
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - please add llm.providers section to config.yaml")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		// Check required fields
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			// Check priority is valid
			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}

			// Check for duplicate priorities
			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true

			// Check API key is set (warning only)
			if provider.APIKey == "" {
				fmt.Printf("Warning: provider %s has no API key configured\n", provider.Name)
			}
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
