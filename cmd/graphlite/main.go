// Package main provides the graphlite CLI.
package main

import (
	"os"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/born-ml/graphlite/internal/config"
)

const version = "v0.1.0-dev"

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

// app carries the state shared by the subcommands once flags are parsed.
type app struct {
	configFile string
	cfg        *config.Config
	log        *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "graphlite [subcommand]",
		Short:         "Convert, inspect and verify graphlite model files",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = initLogger(cfg, cmd)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "configuration file (yaml, toml or json)")
	pf.String("log-level", "info", "log level [debug, info, warn, error]")
	pf.String("log-format", "text", "log format [text, json]")
	pf.Int64("max-model-size", 0, "largest model container accepted, in bytes")

	root.AddCommand(
		newConvertCmd(a),
		newInspectCmd(a),
		newVerifyCmd(a),
		newOpsCmd(),
		newVersionCmd(),
	)
	return root
}

func initLogger(cfg *config.Config, cmd *cobra.Command) *log.Logger {
	logger := log.New()
	logger.SetOutput(cmd.ErrOrStderr())

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Log.Format == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
