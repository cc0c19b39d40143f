// Package chat 实现带文件持久化的本地对话机器人。
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/company_intel/internal/llm"
	"github.com/iWorld-y/company_intel/internal/model"
	"github.com/iWorld-y/company_intel/internal/prompts"
)

// ErrEmptyMessage 用户输入为空
var ErrEmptyMessage = errors.New("chat: message is empty")

// Bot 对话机器人，记忆完全来自 messages
type Bot struct {
	mu       sync.Mutex
	gen      llm.Generator
	store    *Store
	messages []model.Message
	log      logrus.FieldLogger
}

// NewBot 创建机器人并从 store 恢复历史对话
func NewBot(gen llm.Generator, store *Store, log logrus.FieldLogger) (*Bot, error) {
	messages, err := store.Load()
	if err != nil {
		return nil, err
	}
	log.Infof("已恢复 %d 条对话记录", len(messages))
	return &Bot{gen: gen, store: store, messages: messages, log: log}, nil
}

// Send 记录用户消息并生成回复。生成失败时用户消息仍然保留。
func (b *Bot) Send(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrEmptyMessage
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.append(model.RoleUser, input); err != nil {
		return "", err
	}

	if b.gen == nil {
		return "", llm.ErrUnavailable
	}
	reply, err := b.gen.Generate(ctx, prompts.BuildChatPrompt(b.messages))
	if err != nil {
		b.log.WithError(err).Warn("生成回复失败")
		return "", fmt.Errorf("%w: %w", llm.ErrCallFailed, err)
	}
	reply = strings.TrimSpace(reply)

	if err := b.append(model.RoleAssistant, reply); err != nil {
		return "", err
	}
	return reply, nil
}

// append 先落盘再写入内存，保证两者一致
func (b *Bot) append(role model.Role, content string) error {
	if err := b.store.Save(role, content); err != nil {
		return err
	}
	b.messages = append(b.messages, model.Message{Role: role, Content: content})
	return nil
}

// Reset 清空内存中的对话并删除记录文件
func (b *Bot) Reset() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.messages = nil
	return b.store.Delete()
}

// Messages 返回对话副本
func (b *Bot) Messages() []model.Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]model.Message, len(b.messages))
	copy(out, b.messages)
	return out
}
