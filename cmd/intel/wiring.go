package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/iWorld-y/company_intel/internal/agent"
	"github.com/iWorld-y/company_intel/internal/chat"
	"github.com/iWorld-y/company_intel/internal/config"
	"github.com/iWorld-y/company_intel/internal/llm"
	"github.com/iWorld-y/company_intel/internal/logger"
	"github.com/iWorld-y/company_intel/internal/pipeline"
	"github.com/iWorld-y/company_intel/internal/search"
	"github.com/iWorld-y/company_intel/internal/search/factory"
	"github.com/iWorld-y/company_intel/internal/storage"
)

// newComposer 组装流水线。生成服务、搜索与数据库都是可选的，缺失时降级运行。
// 返回的 store 可能为 nil。
func newComposer(ctx context.Context, cfg *config.Config) (*pipeline.Composer, *storage.Storage, error) {
	log := logger.Log

	gen, err := llm.NewFromConfig(ctx, cfg.LLM, cfg.Concurrency, log)
	switch {
	case errors.Is(err, llm.ErrUnavailable):
		log.Warnf("未配置生成服务，将使用规则分析: %v", err)
		gen = nil
	case err != nil:
		return nil, nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	var gatherer *search.Gatherer
	searcher, err := factory.NewSearcher(cfg.Search)
	switch {
	case err != nil:
		log.Warnf("搜索客户端初始化失败，跳过参考资料检索: %v", err)
	case searcher != nil && cfg.Search.MaxResults > 0:
		gatherer = search.NewGatherer(searcher, search.FetchReadable, cfg.Search.MaxResults, log)
	}

	// 如果配置了数据库信息，则尝试连接
	var (
		store    *storage.Storage
		recorder pipeline.Recorder
	)
	if cfg.DB.Host != "" {
		store, err = storage.NewStorage(cfg.DB)
		if err != nil {
			log.Warnf("数据库连接失败，历史记录只保存在内存中: %v", err)
			store = nil
		} else {
			recorder = store
		}
	}

	composer, err := pipeline.NewComposer(ctx,
		agent.NewCollector(gen, gatherer, log),
		agent.NewAnalyst(gen, log),
		recorder,
		log,
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, nil, err
	}
	return composer, store, nil
}

// newChatBot 创建本地对话机器人
func newChatBot(ctx context.Context, cfg *config.Config) (*chat.Bot, error) {
	gen, err := llm.NewFromConfig(ctx, cfg.Chat.LLM, cfg.Concurrency, logger.Log)
	if err != nil {
		return nil, fmt.Errorf("对话模型初始化失败: %w", err)
	}
	return chat.NewBot(gen, chat.NewStore(cfg.Chat.HistoryFile), logger.Log)
}
