package server

import (
	"context"
	"net/http"

	khttp "github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/company_intel/internal/model"
)

const (
	OperationAnalyze     = "/intel.v1.Intel/Analyze"
	OperationHistory     = "/intel.v1.Intel/History"
	OperationSendChat    = "/intel.v1.Intel/SendChat"
	OperationChatHistory = "/intel.v1.Intel/ChatHistory"
	OperationResetChat   = "/intel.v1.Intel/ResetChat"
)

// RegisterIntelHTTPServer 注册 /api 下的路由，请求解码和响应编码交给 kratos codec
func RegisterIntelHTTPServer(s *khttp.Server, srv *IntelService) {
	r := s.Route("/api")
	r.POST("/analyze", analyzeHandler(srv))
	r.GET("/history", historyHandler(srv))
	r.POST("/chat", sendChatHandler(srv))
	r.GET("/chat", chatHistoryHandler(srv))
	r.DELETE("/chat", resetChatHandler(srv))
}

func analyzeHandler(srv *IntelService) func(ctx khttp.Context) error {
	return func(ctx khttp.Context) error {
		var in AnalyzeRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		khttp.SetOperation(ctx, OperationAnalyze)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.Analyze(ctx, req.(*AnalyzeRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out.(*model.Analysis))
	}
}

func historyHandler(srv *IntelService) func(ctx khttp.Context) error {
	return func(ctx khttp.Context) error {
		khttp.SetOperation(ctx, OperationHistory)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.History(ctx)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out.([]string))
	}
}

func sendChatHandler(srv *IntelService) func(ctx khttp.Context) error {
	return func(ctx khttp.Context) error {
		var in ChatRequest
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		khttp.SetOperation(ctx, OperationSendChat)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.SendChat(ctx, req.(*ChatRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out.(*ChatReply))
	}
}

func chatHistoryHandler(srv *IntelService) func(ctx khttp.Context) error {
	return func(ctx khttp.Context) error {
		khttp.SetOperation(ctx, OperationChatHistory)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.ChatHistory(ctx)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out.([]model.Message))
	}
}

func resetChatHandler(srv *IntelService) func(ctx khttp.Context) error {
	return func(ctx khttp.Context) error {
		khttp.SetOperation(ctx, OperationResetChat)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return srv.ResetChat(ctx)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(http.StatusOK, out.([]model.Message))
	}
}
