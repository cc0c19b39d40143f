// Package pipeline 把采集与分析两个阶段编排为一条 eino chain。
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/company_intel/internal/agent"
	"github.com/iWorld-y/company_intel/internal/model"
)

// ErrEmptyCompany 公司名为空
var ErrEmptyCompany = errors.New("pipeline: company name is empty")

// Recorder 持久化历史记录，nil 表示只保留在内存中
type Recorder interface {
	SaveEntry(ctx context.Context, entry model.HistoryEntry) error
}

// Composer 流水线编排器
type Composer struct {
	runnable compose.Runnable[string, model.HistoryEntry]
	recorder Recorder
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewComposer 编译 采集 -> 分析 两节点 chain。
// 采集结果随 chain 向后传递，历史记录与分析使用同一份 RawData。
func NewComposer(ctx context.Context, collector *agent.Collector, analyst *agent.Analyst, recorder Recorder, log logrus.FieldLogger) (*Composer, error) {
	c := &Composer{recorder: recorder, log: log, now: time.Now}

	chain := compose.NewChain[string, model.HistoryEntry]()
	chain.AppendLambda(compose.InvokableLambda(func(ctx context.Context, name string) (model.RawData, error) {
		return collector.Collect(ctx, name), nil
	}))
	chain.AppendLambda(compose.InvokableLambda(func(ctx context.Context, raw model.RawData) (model.HistoryEntry, error) {
		return model.HistoryEntry{
			CompanyName: raw.CompanyName,
			RawData:     raw,
			Analysis:    analyst.Analyze(ctx, raw),
			CreatedAt:   c.now(),
		}, nil
	}))

	r, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile pipeline: %w", err)
	}
	c.runnable = r
	return c, nil
}

// Run 执行一次流水线，向 history 追加恰好一条记录并返回分析结果。
// 持久化失败只记录日志。
func (c *Composer) Run(ctx context.Context, companyName string, history []model.HistoryEntry) (model.Analysis, []model.HistoryEntry, error) {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return model.Analysis{}, history, ErrEmptyCompany
	}

	log := c.log.WithField("company", companyName)
	log.Info("开始分析公司")

	entry, err := c.runnable.Invoke(ctx, companyName)
	if err != nil {
		return model.Analysis{}, history, fmt.Errorf("run pipeline: %w", err)
	}

	history = append(history, entry)

	if c.recorder != nil {
		if err := c.recorder.SaveEntry(ctx, entry); err != nil {
			log.WithError(err).Error("保存历史记录失败")
		}
	}

	log.WithField("sentiment", entry.Analysis.Sentiment).Info("分析完成")
	return entry.Analysis, history, nil
}
