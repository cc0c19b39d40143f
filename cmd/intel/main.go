package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/company_intel/internal/config"
	"github.com/iWorld-y/company_intel/internal/logger"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 是服务的名称
	Name = "company-intel"
	// Version 是服务的版本号
	Version = "v0.1.0"

	configPath string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "intel",
		Short: "LLM-backed company intelligence and a local chat bot",
		Long: `intel collects public information about a company with an LLM, turns it into
a structured analysis (industry, summary, strengths, risks, sentiment) and falls
back to a rule-based classifier when no model is available.

It also ships a small local chat bot backed by Ollama.`,
		SilenceUsage: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "config path")

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newChatCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", Name, Version)
		},
	}
}

// loadConfig 加载配置并初始化全局日志
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("无法加载配置文件: %w", err)
	}
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		return nil, fmt.Errorf("无法初始化日志: %w", err)
	}
	return cfg, nil
}
