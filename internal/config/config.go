package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Sim     SimConfig     `yaml:"sim"`
	Store   StoreConfig   `yaml:"store"`
	Web     WebConfig     `yaml:"web"`
	Discord DiscordConfig `yaml:"discord"`
	AI      AIConfig      `yaml:"ai"`
	Claude  ClaudeConfig  `yaml:"claude"`
	Gemini  GeminiConfig  `yaml:"gemini"`
}

type SimConfig struct {
	TickPeriod    time.Duration `yaml:"tick_period"`
	TickThreshold int           `yaml:"tick_threshold"`
	FeedIncrement int           `yaml:"feed_increment"`
	PlayIncrement int           `yaml:"play_increment"`

	Foreground DecayConfig `yaml:"foreground"`
	Background DecayConfig `yaml:"background"`
}

type DecayConfig struct {
	HungerDecay    int `yaml:"hunger_decay"`
	HappinessDecay int `yaml:"happiness_decay"`
	PooGrowth      int `yaml:"poo_growth"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"` // "file" or "sqlite"
	Path    string `yaml:"path"`
}

type WebConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type DiscordConfig struct {
	Enabled   bool     `yaml:"enabled"`
	BotToken  string   `yaml:"bot_token"`
	ChannelID string   `yaml:"channel_id"`
	OwnerIDs  []string `yaml:"owner_ids"`
}

type AIConfig struct {
	Provider string `yaml:"provider"` // "claude", "gemini", or "" (auto-detect)
}

type ClaudeConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int64  `yaml:"max_tokens"`
	// Remark rate limiter
	RateLimit  int           `yaml:"rate_limit"`
	RateWindow time.Duration `yaml:"rate_window"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

func Load(path string) (*Config, error) {
	cfg := defaults()

	// Load .env file first (from same directory as binary, or working dir)
	loadDotEnv(".env")

	// Load YAML config if it exists
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// File doesn't exist — use defaults + env vars
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	// Env vars override config file (secrets live in .env or environment)
	if env := os.Getenv("DISCORD_BOT_TOKEN"); env != "" {
		cfg.Discord.BotToken = env
	}
	if env := os.Getenv("DISCORD_CHANNEL_ID"); env != "" {
		cfg.Discord.ChannelID = env
	}
	if env := os.Getenv("DISCORD_OWNER_IDS"); env != "" {
		// Comma-separated list of IDs
		ids := strings.Split(env, ",")
		var cleaned []string
		for _, id := range ids {
			id = strings.TrimSpace(id)
			if id != "" {
				cleaned = append(cleaned, id)
			}
		}
		if len(cleaned) > 0 {
			cfg.Discord.OwnerIDs = cleaned
		}
	}
	if env := os.Getenv("ANTHROPIC_API_KEY"); env != "" {
		cfg.Claude.APIKey = env
	}
	if env := os.Getenv("GOOGLE_API_KEY"); env != "" {
		cfg.Gemini.APIKey = env
	}
	if env := os.Getenv("AI_PROVIDER"); env != "" {
		cfg.AI.Provider = env
	}
	if env := os.Getenv("BADGAGOTCHI_ADDR"); env != "" {
		cfg.Web.Addr = env
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadDotEnv reads a .env file and sets env vars that aren't already set.
func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return // no .env, that's fine
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		// Strip surrounding quotes
		if len(val) >= 2 {
			if (val[0] == '"' && val[len(val)-1] == '"') ||
				(val[0] == '\'' && val[len(val)-1] == '\'') {
				val = val[1 : len(val)-1]
			}
		}

		// Only set if not already in environment
		if os.Getenv(key) == "" && val != "" {
			os.Setenv(key, val)
		}
	}
}

func defaults() *Config {
	return &Config{
		Sim: SimConfig{
			TickPeriod:    50 * time.Millisecond,
			TickThreshold: 50,
			FeedIncrement: 30,
			PlayIncrement: 30,
			Foreground: DecayConfig{
				HungerDecay:    8,
				HappinessDecay: 5,
				PooGrowth:      12,
			},
			Background: DecayConfig{
				HungerDecay:    4,
				HappinessDecay: 2,
				PooGrowth:      6,
			},
		},
		Store: StoreConfig{
			Backend: "file",
			Path:    "badgagotchi.json",
		},
		Web: WebConfig{
			Enabled: true,
			Addr:    ":8420",
		},
		Claude: ClaudeConfig{
			Model:      "claude-sonnet-4-5-20250929",
			MaxTokens:  256,
			RateLimit:  6,
			RateWindow: time.Minute,
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
	}
}

func validate(cfg *Config) error {
	if cfg.Sim.TickPeriod <= 0 {
		return fmt.Errorf("sim.tick_period must be positive")
	}
	if cfg.Sim.TickThreshold <= 0 {
		return fmt.Errorf("sim.tick_threshold must be positive")
	}
	if cfg.Sim.FeedIncrement <= 0 || cfg.Sim.PlayIncrement <= 0 {
		return fmt.Errorf("sim.feed_increment and sim.play_increment must be positive")
	}
	switch cfg.Store.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("store.backend must be \"file\" or \"sqlite\", got %q", cfg.Store.Backend)
	}
	if cfg.Web.Enabled && cfg.Web.Addr == "" {
		return fmt.Errorf("web.addr required when the web frontend is enabled")
	}
	if cfg.Discord.Enabled {
		if cfg.Discord.BotToken == "" {
			return fmt.Errorf("missing DISCORD_BOT_TOKEN with discord enabled")
		}
		if cfg.Discord.ChannelID == "" {
			return fmt.Errorf("missing DISCORD_CHANNEL_ID with discord enabled")
		}
	}
	return nil
}
