package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string
	LLM  LLMConfig
	TTS  TTSConfig
}

type LLMConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	RPS     float64
	Burst   int
}

type TTSConfig struct {
	Voice     string
	Disabled  bool
	CacheSize int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8081", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port: *port,
		Env:  env,
		LLM:  loadLLMConfig(),
		TTS:  loadTTSConfig(),
	}, nil
}

func loadLLMConfig() LLMConfig {
	cfg := LLMConfig{
		APIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Model:   firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_MODEL")), "gemini-2.0-flash"),
		Timeout: 60 * time.Second,
	}
	if v := os.Getenv("LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Timeout = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("LLM_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RPS = f
		}
	}
	if v := os.Getenv("LLM_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Burst = n
		}
	}
	return cfg
}

func loadTTSConfig() TTSConfig {
	cfg := TTSConfig{
		Voice:     strings.TrimSpace(os.Getenv("TTS_VOICE")),
		CacheSize: 256,
	}
	if v := strings.TrimSpace(os.Getenv("TTS_DISABLED")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Disabled = b
		}
	}
	if v := os.Getenv("TTS_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheSize = n
		}
	}
	return cfg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
