package chat

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/iWorld-y/company_intel/internal/model"
)

// Store 以 "role:content" 每行一条的形式追加保存对话
type Store struct {
	path string
}

// NewStore path 为对话记录文件路径
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path 返回记录文件路径
func (s *Store) Path() string { return s.path }

// Save 追加一条消息，内容中的换行替换为空格以保证一条消息一行
func (s *Store) Save(role model.Role, content string) error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	line := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(content)
	if _, err := fmt.Fprintf(f, "%s:%s\n", role, line); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	return nil
}

// Load 读取全部消息，文件不存在时返回空；没有 ':' 的行被忽略
func (s *Store) Load() ([]model.Message, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	var messages []model.Message
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		role, content, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		messages = append(messages, model.Message{
			Role:    model.Role(role),
			Content: strings.TrimSpace(content),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}
	return messages, nil
}

// Delete 删除记录文件，文件不存在不算错误
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete history file: %w", err)
	}
	return nil
}
