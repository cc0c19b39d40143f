package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"

	SearchTavily  = "tavily"
	SearchSearXNG = "searxng"
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Chat        ChatConfig        `yaml:"chat"`
	Search      SearchConfig      `yaml:"search"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
	Server      ServerConfig      `yaml:"server"`
}

// LLMConfig LLM 相关配置，Provider 为空表示未配置外部生成服务
type LLMConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	Timeout  int    `yaml:"timeout"` // 秒
}

// ChatConfig 本地对话机器人配置
type ChatConfig struct {
	LLM         LLMConfig `yaml:"llm"`
	HistoryFile string    `yaml:"history_file"`
}

// SearchConfig 搜索相关配置，用于采集阶段的参考资料
type SearchConfig struct {
	Provider   string        `yaml:"provider"`
	MaxResults int           `yaml:"max_results"`
	Tavily     TavilyConfig  `yaml:"tavily"`
	SearXNG    SearXNGConfig `yaml:"searxng"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 调用 LLM 的限流与重试配置
type ConcurrencyConfig struct {
	QPS        int `yaml:"qps"`
	RPM        int `yaml:"rpm"`
	MaxRetries int `yaml:"max_retries"`
}

// DBConfig 数据库相关配置，Host 为空时不启用持久化
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"`
}

// LoadConfig 从指定路径加载配置，文件不存在时使用默认配置。
// 环境变量（含 .env）会覆盖文件中的值。
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	if cfg.LLM.Provider == "" {
		switch {
		case os.Getenv("GEMINI_API_KEY") != "":
			cfg.LLM.Provider = ProviderGemini
		case os.Getenv("OPENAI_API_KEY") != "":
			cfg.LLM.Provider = ProviderOpenAI
		}
	}
	applyProviderEnv(&cfg.LLM)

	if v := os.Getenv("CHAT_PROVIDER"); v != "" {
		cfg.Chat.LLM.Provider = v
	}
	cfg.Chat.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.Chat.LLM.Provider))
	if cfg.Chat.LLM.Provider == "" {
		cfg.Chat.LLM.Provider = ProviderOllama
	}
	applyProviderEnv(&cfg.Chat.LLM)

	if v := os.Getenv("TAVILY_API_KEY"); v != "" {
		cfg.Search.Tavily.APIKey = v
	}
	if v := os.Getenv("SEARXNG_BASE_URL"); v != "" {
		cfg.Search.SearXNG.BaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func applyProviderEnv(c *LLMConfig) {
	switch c.Provider {
	case ProviderGemini:
		if c.APIKey == "" {
			c.APIKey = os.Getenv("GEMINI_API_KEY")
		}
		if v := os.Getenv("GEMINI_MODEL"); v != "" {
			c.Model = v
		}
	case ProviderOpenAI:
		if c.APIKey == "" {
			c.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
			c.BaseURL = v
		}
		if v := os.Getenv("OPENAI_MODEL"); v != "" {
			c.Model = v
		}
	case ProviderOllama:
		if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
			c.BaseURL = v
		}
		if v := os.Getenv("OLLAMA_MODEL"); v != "" {
			c.Model = v
		}
	}
}

// defaultConfig 数值类默认值在解析文件前填入，文件中显式写 0 即表示关闭
// (max_results: 0 不检索，max_retries: 0 不重试，rpm: 0 不限流)
func defaultConfig() Config {
	return Config{
		Search: SearchConfig{MaxResults: 5},
		Concurrency: ConcurrencyConfig{
			QPS:        1,
			RPM:        60,
			MaxRetries: 3,
		},
	}
}

func applyDefaults(cfg *Config) {
	applyLLMDefaults(&cfg.LLM)
	applyLLMDefaults(&cfg.Chat.LLM)

	if cfg.Chat.HistoryFile == "" {
		cfg.Chat.HistoryFile = "chat_history.txt"
	}

	// 未显式指定搜索服务时，按已有凭据推断
	if cfg.Search.Provider == "" {
		switch {
		case cfg.Search.Tavily.APIKey != "":
			cfg.Search.Provider = SearchTavily
		case cfg.Search.SearXNG.BaseURL != "":
			cfg.Search.Provider = SearchSearXNG
		}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if cfg.DB.Host != "" && cfg.DB.Port == 0 {
		cfg.DB.Port = 5432
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8000"
	}
	if cfg.Server.Timeout == "" {
		cfg.Server.Timeout = "120s"
	}
}

func applyLLMDefaults(c *LLMConfig) {
	if c.Timeout == 0 {
		c.Timeout = 60
	}
	if c.Model != "" {
		return
	}
	switch c.Provider {
	case ProviderGemini:
		c.Model = "gemini-2.5-flash"
	case ProviderOpenAI:
		c.Model = "gpt-4o-mini"
	case ProviderOllama:
		c.Model = "llama3.2:1b"
		if c.BaseURL == "" {
			c.BaseURL = "http://localhost:11434"
		}
	}
}

// Validate 校验配置取值
func (c *Config) Validate() error {
	if err := validateProvider("llm.provider", c.LLM.Provider, true); err != nil {
		return err
	}
	if err := validateProvider("chat.llm.provider", c.Chat.LLM.Provider, false); err != nil {
		return err
	}

	switch c.Search.Provider {
	case "", SearchTavily, SearchSearXNG:
	default:
		return fmt.Errorf("search.provider: unknown provider %q", c.Search.Provider)
	}
	if c.Search.MaxResults < 0 {
		return fmt.Errorf("search.max_results must be >= 0, got %d", c.Search.MaxResults)
	}

	if c.Concurrency.QPS < 0 || c.Concurrency.RPM < 0 || c.Concurrency.MaxRetries < 0 {
		return fmt.Errorf("concurrency values must be >= 0")
	}
	return nil
}

func validateProvider(field, provider string, allowEmpty bool) error {
	switch provider {
	case ProviderGemini, ProviderOpenAI, ProviderOllama:
		return nil
	case "":
		if allowEmpty {
			return nil
		}
	}
	return fmt.Errorf("%s: unknown provider %q (supported: gemini, openai, ollama)", field, provider)
}
