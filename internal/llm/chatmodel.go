package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/ollama/ollama/api"
)

// ChatModelClient 把 eino ChatModel 适配为单轮 Generator
type ChatModelClient struct {
	name string
	cm   model.BaseChatModel
}

// NewChatModelClient 包装任意 eino ChatModel
func NewChatModelClient(name string, cm model.BaseChatModel) *ChatModelClient {
	return &ChatModelClient{name: name, cm: cm}
}

// NewOpenAIClient 兼容 OpenAI 协议的服务 (OpenAI, DeepSeek, Qwen 等)
func NewOpenAIClient(ctx context.Context, baseURL, apiKey, modelName string, timeout time.Duration) (*ChatModelClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY not set", ErrUnavailable)
	}
	temperature := float32(0)
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		Model:       modelName,
		Timeout:     timeout,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("openai init: %w", err)
	}
	return NewChatModelClient("openai:"+modelName, cm), nil
}

// NewOllamaClient 本地 Ollama 模型，温度固定为 0
func NewOllamaClient(ctx context.Context, baseURL, modelName string, timeout time.Duration) (*ChatModelClient, error) {
	cm, err := ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
		BaseURL: baseURL,
		Model:   modelName,
		Timeout: timeout,
		Options: &api.Options{
			Temperature: 0,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ollama init: %w", err)
	}
	return NewChatModelClient("ollama:"+modelName, cm), nil
}

func (c *ChatModelClient) Name() string { return c.name }

func (c *ChatModelClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.cm.Generate(ctx, []*schema.Message{
		{Role: schema.User, Content: prompt},
	})
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", nil
	}
	return resp.Content, nil
}
