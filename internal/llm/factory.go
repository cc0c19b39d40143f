package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/company_intel/internal/config"
)

// NewFromConfig 根据配置创建带限流重试的 Generator。
// 未配置 provider 或缺少凭据时返回 ErrUnavailable，调用方据此决定走兜底逻辑。
func NewFromConfig(ctx context.Context, c config.LLMConfig, conc config.ConcurrencyConfig, log logrus.FieldLogger) (Generator, error) {
	timeout := time.Duration(c.Timeout) * time.Second

	var (
		gen Generator
		err error
	)
	switch c.Provider {
	case "":
		return nil, ErrUnavailable
	case config.ProviderGemini:
		gen, err = NewGeminiClient(ctx, c.APIKey, c.Model)
	case config.ProviderOpenAI:
		gen, err = NewOpenAIClient(ctx, c.BaseURL, c.APIKey, c.Model, timeout)
	case config.ProviderOllama:
		gen, err = NewOllamaClient(ctx, c.BaseURL, c.Model, timeout)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: gemini, openai, ollama)", c.Provider)
	}
	if err != nil {
		return nil, err
	}

	log.Infof("LLM 已初始化: %s", gen.Name())
	return NewRetryingGenerator(gen, conc.RPM, conc.QPS, conc.MaxRetries, log), nil
}
