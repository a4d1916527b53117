// Command memurbot answers school office questions from a local
// question/answer file, asking a generative model when no stored
// question is close enough.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/0xcro3dile/memurbot-go/internal/config"
	httpserver "github.com/0xcro3dile/memurbot-go/internal/infrastructure/http"
	"github.com/0xcro3dile/memurbot-go/internal/infrastructure/tui"
	"github.com/0xcro3dile/memurbot-go/internal/logging"
)

var (
	// Global flags
	configPath string
	knowledge  string
	threshold  float64
	watch      bool
	verbose    bool
)

// rootCmd starts the chat window.
var rootCmd = &cobra.Command{
	Use:   "memurbot",
	Short: "Okul Memur Botu - school office question answering",
	Long: `memurbot answers questions from a local question/answer file
(soru_cevaplar.json). When no stored question is similar enough it asks a
generative model, grounding it on the whole file.

Run without arguments to start the interactive chat window.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := logging.NewInteractive(cfg.Logging)
		if err != nil {
			return err
		}
		defer logger.Sync()

		return runWithApp(cmd.Context(), cfg, logger, func(ctx context.Context, a *app) error {
			return tui.Run(ctx, a.assistant, logger.Named("tui"))
		})
	},
}

// askCmd answers a single question and exits.
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer one question and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := logging.New(cfg.Logging)
		if err != nil {
			return err
		}
		defer logger.Sync()

		a, err := buildApp(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer a.close()

		question := strings.Join(args, " ")
		if answer, ok := a.assistant.Submit(cmd.Context(), question); ok {
			fmt.Fprintln(cmd.OutOrStdout(), answer)
		}
		return nil
	},
}

// serveCmd runs the HTTP chat surface.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chat page and JSON API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		logger, err := logging.New(cfg.Logging)
		if err != nil {
			return err
		}
		defer logger.Sync()

		return runWithApp(cmd.Context(), cfg, logger, func(ctx context.Context, a *app) error {
			return httpserver.NewServer(a.assistant, cfg.Server.Addr, logger.Named("http")).Start(ctx)
		})
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

// configInitCmd writes the default configuration.
var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultPath
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().StringVarP(&knowledge, "knowledge", "k", "", "question/answer file (overrides config)")
	rootCmd.PersistentFlags().Float64VarP(&threshold, "threshold", "t", 0, "similarity threshold in [0,1] (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&watch, "watch", "w", false, "reload the question/answer file when it changes")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	serveCmd.Flags().String("addr", "", "listen address (overrides config)")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(askCmd, serveCmd, configCmd)
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("knowledge") {
		cfg.Knowledge.Path = knowledge
	}
	if flags.Changed("threshold") {
		cfg.Matcher.Threshold = threshold
	}
	if flags.Changed("watch") {
		cfg.Knowledge.Watch = watch
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// runWithApp wires the core and runs fn next to the optional reloader.
func runWithApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, fn func(context.Context, *app) error) error {
	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if a.reloader != nil {
		g.Go(func() error {
			// losing hot reload must not take the chat down
			if err := a.reloader.Run(gctx); err != nil {
				logger.Warn("knowledge reload disabled", zap.Error(err))
			}
			return nil
		})
	}
	g.Go(func() error {
		defer cancel()
		return fn(gctx, a)
	})
	return g.Wait()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
