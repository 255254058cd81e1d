package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dupcon/cmd/dupcon/ui"
	"dupcon/internal/api"
	"dupcon/internal/config"
	"dupcon/internal/logging"
	"dupcon/internal/session"
)

var (
	cfgPath string
	apiBase string
	verbose bool
)

// rootCmd launches the interactive console.
var rootCmd = &cobra.Command{
	Use:   "dupcon",
	Short: "dupcon - duplicate customer review console",
	Long: `dupcon is a terminal console for back-office operators reviewing
duplicate customer records.

Log in, pick the canonical parent for each duplicate group, fix field
values inline, and merge. The "Resolved Merges" page lists already-merged
groups for audit. All data lives on the remote customer service; dupcon
holds only view state.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConsole()
	},
}

// logoutCmd clears the stored credential without starting the UI.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored API credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := session.Open(cfg.TokenPath).Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", config.DefaultPath(), "config file path")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api", "", "customer service base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(logoutCmd)
}

func loadConfig() (*config.Config, error) {
	// The flag rides the existing env override so it wins over the file.
	if apiBase != "" {
		os.Setenv("DUPCON_API_BASE_URL", apiBase)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func runConsole() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sess := session.Open(cfg.TokenPath)
	client := api.New(cfg.APIBaseURL, cfg.RequestTimeout, sess, logger)

	logger.Info("console starting",
		zap.String("api", cfg.APIBaseURL),
		zap.Bool("authenticated", sess.IsAuthenticated()))

	app := ui.NewApp(client, sess, cfg, logger)
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("console error: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
