package server

import (
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/company_intel/internal/config"
)

// NewHTTPServer 创建 HTTP 服务并注册接口
func NewHTTPServer(c config.ServerConfig, s *IntelService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Addr != "" {
		opts = append(opts, http.Address(c.Addr))
	}
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)
	RegisterIntelHTTPServer(srv, s)

	log.NewHelper(logger).Infof("HTTP 接口已注册: /api/analyze /api/history /api/chat")
	return srv
}
