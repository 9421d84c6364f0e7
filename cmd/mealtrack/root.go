package mealtrack

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saadjs/mealtrack/internal/app"
	"github.com/saadjs/mealtrack/internal/config"
	"github.com/saadjs/mealtrack/pkg/logger"
)

var (
	dbPath   string
	envFile  string
	logLevel string

	cfg        *config.Config
	baseLogger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "mealtrack",
	Short: "mealtrack tracks meals, macros and progress toward your goal",
	Long: "mealtrack is a local-first nutrition tracker: log foods and multi-ingredient meals, " +
		"follow daily, weekly and monthly progress, and serve the same data over a JSON API.",
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (overrides MEALTRACK_DB)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level debug|info|warn|error (overrides MEALTRACK_LOG_LEVEL)")
}

// loadRuntime resolves configuration and the logger before any command
// touches the database.
func loadRuntime(cmd *cobra.Command, args []string) error {
	c, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if dbPath != "" {
		if c.DBPath, err = app.ExpandPath(dbPath); err != nil {
			return err
		}
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	l, err := logger.New(c.LogLevel)
	if err != nil {
		return err
	}
	cfg, baseLogger = c, l
	return nil
}
