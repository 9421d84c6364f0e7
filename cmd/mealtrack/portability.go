package mealtrack

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/mealtrack/internal/service"
)

var (
	exportOut     string
	importIn      string
	importReplace bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data as JSON (stdout unless --out is set)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			data, err := service.ExportDataSnapshot(sqldb)
			if err != nil {
				return err
			}
			if strings.TrimSpace(exportOut) == "" {
				return writeJSON(cmd.OutOrStdout(), data)
			}
			b, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal export json: %w", err)
			}
			if err := os.WriteFile(exportOut, b, 0o644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported data to %s\n", exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a JSON export (merges unless --replace)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--file is required")
		}
		raw, err := os.ReadFile(importIn)
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		var payload service.ExportData
		if err := json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("parse import json: %w", err)
		}
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.ImportDataSnapshot(sqldb, &payload, !importReplace)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Import report: foods=%d meal_logs=%d meals=%d settings=%d off_days=%d weights=%d skipped=%d\n",
				report.Foods, report.MealLogs, report.Meals, report.Settings, report.OffDays, report.Weights, report.Skipped)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path")
	importCmd.Flags().StringVar(&importIn, "file", "", "Input file path")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "Clear existing data before importing")
}
