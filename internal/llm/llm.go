// Package llm 封装外部文本生成服务。各 provider 只暴露 Generate，
// 调用方把任何错误都视为“不可用”并走兜底逻辑。
package llm

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable 未配置生成服务
	ErrUnavailable = errors.New("llm: generation capability not configured")
	// ErrCallFailed 调用过程中的网络、配额或运行时错误
	ErrCallFailed = errors.New("llm: generation call failed")
	// ErrMalformedResponse 返回内容为空或无法解析为预期结构
	ErrMalformedResponse = errors.New("llm: malformed response")
)

// Generator 接收 prompt，返回模型生成的文本
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc 允许用普通函数充当 Generator
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Name() string { return "func" }

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
