package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log 全局日志实例，仅供命令行入口使用；业务包通过构造参数注入 logger
var Log = logrus.New()

// LineFormatter 单行日志格式: [TIME] [LEVEL] [FILE:LINE] MSG k=v ...
type LineFormatter struct{}

// Format 实现 logrus.Formatter 接口
func (f *LineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var fileLine string
	if entry.HasCaller() {
		fileLine = fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}

	// 对齐级别长度，例如 INFO, WARN, ERRO
	level := strings.ToUpper(entry.Level.String())
	if len(level) > 4 {
		level = level[:4]
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] [%s] [%s] %s", entry.Time.Format("2006-01-02 15:04:05"), level, fileLine, entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// New 创建日志实例，filePath 非空时同时追加写入文件
func New(levelStr string, filePath string) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetReportCaller(true)
	l.SetFormatter(&LineFormatter{})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	writers := []io.Writer{os.Stderr}
	if filePath != "" {
		logDir := filepath.Dir(filePath)
		if logDir != "." {
			if err := os.MkdirAll(logDir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}

		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, err
		}
		writers = append(writers, file)
	}
	l.SetOutput(io.MultiWriter(writers...))

	return l, nil
}

// InitLogger 初始化全局日志
func InitLogger(levelStr string, filePath string) error {
	l, err := New(levelStr, filePath)
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// Discard 返回丢弃所有输出的日志实例，用于测试
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
