package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/company_intel/internal/chat"
	"github.com/iWorld-y/company_intel/internal/model"
	"github.com/iWorld-y/company_intel/internal/pipeline"
	"github.com/iWorld-y/company_intel/internal/storage"
)

const historyLimit = 50

// CompanyLister 从持久化存储读取历史公司名
type CompanyLister interface {
	ListCompanies(ctx context.Context, limit int) ([]string, error)
}

type AnalyzeRequest struct {
	CompanyName string `json:"company_name"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatReply struct {
	Reply string `json:"reply"`
}

// IntelService HTTP 接口背后的业务实现。
// 流水线本身不处理并发，mu 只保护 history，不在调用模型期间持有。
type IntelService struct {
	composer *pipeline.Composer
	bot      *chat.Bot
	lister   CompanyLister
	log      *log.Helper

	mu      sync.Mutex
	history []model.HistoryEntry
}

// NewIntelService bot 与 lister 可以为 nil
func NewIntelService(composer *pipeline.Composer, bot *chat.Bot, lister CompanyLister, logger log.Logger) *IntelService {
	return &IntelService{
		composer: composer,
		bot:      bot,
		lister:   lister,
		log:      log.NewHelper(logger),
	}
}

// Analyze 执行一次流水线并记录到内存历史
func (s *IntelService) Analyze(ctx context.Context, in *AnalyzeRequest) (*model.Analysis, error) {
	analysis, added, err := s.composer.Run(ctx, in.CompanyName, nil)
	switch {
	case errors.Is(err, pipeline.ErrEmptyCompany):
		return nil, errors.BadRequest("EMPTY_COMPANY", "Please enter a company name.")
	case err != nil:
		s.log.Errorf("analyze %q failed: %v", in.CompanyName, err)
		return nil, errors.InternalServer("PIPELINE_FAILED", err.Error())
	}

	s.mu.Lock()
	s.history = append(s.history, added...)
	s.mu.Unlock()
	return &analysis, nil
}

// History 公司名按时间倒序，优先读取数据库
func (s *IntelService) History(ctx context.Context) ([]string, error) {
	if s.lister != nil {
		names, err := s.lister.ListCompanies(ctx, historyLimit)
		if err == nil {
			if names == nil {
				names = []string{}
			}
			return names, nil
		}
		s.log.Warnf("list companies from storage failed, using memory: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return storage.RecentCompanies(s.history), nil
}

// SendChat 发送一条消息给对话机器人
func (s *IntelService) SendChat(ctx context.Context, in *ChatRequest) (*ChatReply, error) {
	if s.bot == nil {
		return nil, errChatDisabled
	}
	reply, err := s.bot.Send(ctx, in.Message)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		return nil, errors.BadRequest("EMPTY_MESSAGE", err.Error())
	case err != nil:
		s.log.Warnf("chat failed: %v", err)
		return nil, errors.New(http.StatusBadGateway, "GENERATION_FAILED", err.Error())
	}
	return &ChatReply{Reply: reply}, nil
}

// ChatHistory 返回对话记录
func (s *IntelService) ChatHistory(ctx context.Context) ([]model.Message, error) {
	if s.bot == nil {
		return nil, errChatDisabled
	}
	return s.bot.Messages(), nil
}

// ResetChat 清空对话并返回清空后的记录
func (s *IntelService) ResetChat(ctx context.Context) ([]model.Message, error) {
	if s.bot == nil {
		return nil, errChatDisabled
	}
	if err := s.bot.Reset(); err != nil {
		s.log.Errorf("reset chat failed: %v", err)
		return nil, errors.InternalServer("RESET_FAILED", err.Error())
	}
	return s.bot.Messages(), nil
}

var errChatDisabled = errors.ServiceUnavailable("CHAT_DISABLED", "chat bot is not configured")
