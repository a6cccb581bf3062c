// Package main is the entry point for the formbank CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hbmp/go-formbank/internal/compiler"
	"github.com/hbmp/go-formbank/internal/config"
	"github.com/hbmp/go-formbank/pkg/bank"
	"github.com/hbmp/go-formbank/pkg/orchestrator"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile   string
	appConfig config.Config
	logger    *zap.Logger
)

// rootCmd is the base command for the formbank CLI.
var rootCmd = &cobra.Command{
	Use:   "formbank",
	Short: "Compile question banks into form definitions",
	Long: `formbank reads a question bank (metadata, respondent fields, and
questions), validates and sorts its rows, and compiles them into an ordered
stream of form-building instructions. The stream can be rendered as an HTML
preview, run interactively in the terminal, or handed to a form-building
collaborator.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v := viper.GetViper()
		if err := config.Init(v, cfgFile); err != nil {
			return err
		}
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		appConfig = cfg
		logger = newLogger(cfg.Log)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./formbank.yaml or ~/.config/formbank/config.yaml)")
}

func newLogger(cfg config.LogConfig) *zap.Logger {
	level := zapcore.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var zcfg zap.Config
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	l, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// bankSource resolves the bank to use from the --bank flag or the config.
func bankSource(bankPath string) (bank.Source, error) {
	path := bankPath
	if path == "" {
		path = appConfig.Bank.Path
	}
	if path == "" {
		return nil, fmt.Errorf("no question bank given: pass --bank or set bank.path in the config")
	}
	return bank.SourceFromFile(path), nil
}

// newPipeline builds the orchestrator used by the bank-driven commands, with
// respondent-field warnings routed to the logger.
func newPipeline(options ...orchestrator.Option) *orchestrator.Orchestrator {
	warnf := compiler.WithWarnFunc(logger.Sugar().Warnf)
	options = append([]orchestrator.Option{
		orchestrator.WithCompiler(compiler.New(warnf)),
	}, options...)
	return orchestrator.New(options...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
