package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/iWorld-y/company_intel/internal/formatter"
	"github.com/iWorld-y/company_intel/internal/logger"
	"github.com/iWorld-y/company_intel/internal/model"
	"github.com/iWorld-y/company_intel/internal/storage"
)

const historyLimit = 20

var (
	outputFormat string
	showHistory  bool
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [COMPANY]",
		Short: "Collect and analyze public information about a company",
		Long: `Run the two-stage pipeline (collect, then analyze) for a company.

Examples:
  # Analyze a company
  intel analyze "Infosys"

  # Machine-readable output
  intel analyze "Tata Motors" -o json

  # List previously analyzed companies (requires a database)
  intel analyze --history`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", formatter.FormatHuman, "Output format (human, json, yaml)")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Print previously analyzed companies, newest first")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !showHistory {
		return fmt.Errorf("please enter a company name")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	composer, store, err := newComposer(ctx, cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	var history []model.HistoryEntry
	if len(args) == 1 {
		var s *spinner.Spinner
		if outputFormat == formatter.FormatHuman {
			color.Cyan("🔍 Analyzing %s", args[0])
			s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			s.Suffix = " Collecting and analyzing company data..."
			s.Start()
		}

		var analysis model.Analysis
		analysis, history, err = composer.Run(ctx, args[0], history)
		if s != nil {
			s.Stop()
		}
		if err != nil {
			return err
		}
		if err := formatter.DisplayAnalysis(os.Stdout, analysis, outputFormat); err != nil {
			return err
		}
	}

	if !showHistory {
		return nil
	}

	names := storage.RecentCompanies(history)
	if store != nil {
		names, err = store.ListCompanies(ctx, historyLimit)
		if err != nil {
			return fmt.Errorf("读取历史记录失败: %w", err)
		}
	} else {
		logger.Log.Warn("未配置数据库，只显示本次运行的记录")
	}
	return formatter.DisplayHistory(os.Stdout, names, outputFormat)
}
