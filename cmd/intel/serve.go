package main

import (
	"context"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"

	"github.com/iWorld-y/company_intel/internal/chat"
	"github.com/iWorld-y/company_intel/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline and chat bot over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	id, _ := os.Hostname()
	// 初始化日志记录器，包含时间戳、调用者信息、服务ID等上下文
	kl := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)
	helper := log.NewHelper(kl)

	ctx := context.Background()
	composer, store, err := newComposer(ctx, cfg)
	if err != nil {
		return err
	}

	var lister server.CompanyLister
	if store != nil {
		defer store.Close()
		lister = store
	}

	var bot *chat.Bot
	if b, err := newChatBot(ctx, cfg); err != nil {
		helper.Warnf("chat bot disabled: %v", err)
	} else {
		bot = b
	}

	hs := server.NewHTTPServer(cfg.Server, server.NewIntelService(composer, bot, lister, kl), kl)
	app := kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(kl),
		kratos.Server(hs),
	)
	return app.Run()
}
