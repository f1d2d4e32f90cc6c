// Package cli implements chatcli, a terminal front end for the triage engine.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"agency-chatbot/internal/triage"
)

var (
	cfgFile string
	verbose bool

	// engine is built from the loaded knowledge base before any subcommand runs.
	engine *triage.Engine
	cfg    *Config
)

var rootCmd = &cobra.Command{
	Use:   "chatcli",
	Short: "Talk to the agency chatbot from a terminal",
	Long: `chatcli runs the agency's rule-based chatbot locally.

It loads the knowledge base shipped with the binary, or a YAML file given
with --kb (or CHATCLI_KB), and answers messages exactly as the web widget
would.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

		c, err := LoadConfig(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		kb, err := c.KnowledgeBase()
		if err != nil {
			return err
		}
		cfg = c
		engine = triage.NewEngine(kb)
		slog.Debug("knowledge base loaded", "source", c.Source(), "company", kb.Company.Name)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .chatcli.yaml in the working directory)")
	rootCmd.PersistentFlags().String("kb", "", "knowledge base YAML file (default: built-in)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// Execute runs the root command. An interrupt cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func requireEngine() error {
	if engine == nil {
		return fmt.Errorf("knowledge base not loaded")
	}
	return nil
}
