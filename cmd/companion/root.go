package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/petasbytes/companion/internal/config"
	"github.com/petasbytes/companion/internal/observability"
	"github.com/petasbytes/companion/internal/provider"
	"github.com/petasbytes/companion/internal/runner"
	"github.com/petasbytes/companion/internal/shell"
	"github.com/petasbytes/companion/memory"
)

func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "companion",
		Short: "A gentle chat companion for people living with memory loss",
		Long: `companion is a patient conversation partner in the terminal.
It remembers reminders and what you had for lunch, and answers everything
else with a hosted language model.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          runChat,
	}

	addPersistentFlags(rootCmd)
	rootCmd.Flags().Bool("no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		NewRemindersCmd(),
		NewConfigCmd(),
		NewSchemaCmd(),
	)
	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", config.DefaultPath, "Path to the YAML config file")
	cmd.PersistentFlags().String("memory", "", "Path to the saved memory document")
	cmd.PersistentFlags().String("provider", "", "Model provider (anthropic|gemini)")
	cmd.PersistentFlags().String("model", "", "Model name")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	var o config.Overrides
	o.MemoryPath, _ = cmd.Flags().GetString("memory")
	o.Provider, _ = cmd.Flags().GetString("provider")
	o.Model, _ = cmd.Flags().GetString("model")
	return config.LoadWith(path, o)
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := observability.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)

	// Set up graceful shutdown on Ctrl-C (SIGINT) / SIGTERM
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		select {
		case <-sigch:
			fmt.Fprintln(cmd.OutOrStdout(), "\nExiting...")
			cancel()
		case <-ctx.Done():
		}
	}()

	gw, err := provider.New(ctx, cfg)
	if err != nil {
		return err
	}

	r := runner.New(gw, memory.NewStore(cfg.MemoryPath), runner.WithLogger(logger))
	logger.Debug("session started", "provider", cfg.Provider, "model", cfg.Model, "memory", cfg.MemoryPath)

	noColor, _ := cmd.Flags().GetBool("no-color")
	sh := shell.New(r, cmd.InOrStdin(), cmd.OutOrStdout(), cfg.MemoryPath,
		shell.WithColor(!noColor && os.Getenv("NO_COLOR") == ""),
	)
	return sh.Run(ctx)
}
