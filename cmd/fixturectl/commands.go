package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/club-fixtures/internal/app"
	"github.com/riskibarqy/club-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/club-fixtures/internal/usecase"
	"github.com/spf13/cobra"
)

type containerFactory func() (*app.Container, error)

var errValidationFailed = errors.New("validation failed")

func newRootCmd(open containerFactory) *cobra.Command {
	root := &cobra.Command{
		Use:           "fixturectl",
		Short:         "Club fixture import and export tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(validateCmd(open))
	root.AddCommand(importCmd(open))
	root.AddCommand(exportCmd(open))
	root.AddCommand(scrapeCmd(open))
	return root
}

func validateCmd(open containerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a fixtures JSON file without saving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(cmd, args[0])
			if err != nil {
				return err
			}
			return withContainer(open, func(c *app.Container) error {
				report := c.Import.Preview(cmd.Context(), payload)
				if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
				if !report.Valid {
					return fmt.Errorf("%w: %s", errValidationFailed, report.Message)
				}
				return nil
			})
		},
	}
}

func importCmd(open containerFactory) *cobra.Command {
	var (
		source   string
		sourceID string
		dryRun   bool
	)
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Validate and upsert a fixtures JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source = strings.ToLower(strings.TrimSpace(source))
			switch source {
			case fixture.ImportSourceManual, fixture.ImportSourceFile, fixture.ImportSourceScrape:
			default:
				return fmt.Errorf("invalid --source %q", source)
			}

			payload, err := readPayload(cmd, args[0])
			if err != nil {
				return err
			}
			return withContainer(open, func(c *app.Container) error {
				report, importErr := c.Import.ImportJSON(cmd.Context(), payload, usecase.ImportOptions{
					ImportSource: source,
					SourceID:     sourceID,
					DryRun:       dryRun,
				})
				if importErr != nil && !errors.Is(importErr, usecase.ErrImportRejected) {
					return importErr
				}
				if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
				return importErr
			})
		},
	}
	cmd.Flags().StringVar(&source, "source", fixture.ImportSourceFile, "Import source tag (manual, file, scrape)")
	cmd.Flags().StringVar(&sourceID, "source-id", "", "Batch id stored with every row (random when empty)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and assign ids without saving")
	return cmd
}

func exportCmd(open containerFactory) *cobra.Command {
	var (
		season      string
		competition string
		status      string
		out         string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored fixtures as a re-importable JSON array",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(open, func(c *app.Container) error {
				data, err := c.Fixtures.Export(cmd.Context(), fixture.Filter{
					Season:      season,
					Competition: competition,
					Status:      status,
				})
				if err != nil {
					return err
				}
				if out == "" || out == "-" {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(out, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", out, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "exported fixtures to %s\n", out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "Season filter, e.g. 2025/26")
	cmd.Flags().StringVar(&competition, "competition", "", "Competition filter")
	cmd.Flags().StringVar(&status, "status", "", "Status filter (upcoming, results, all)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (stdout when empty)")
	return cmd
}

func scrapeCmd(open containerFactory) *cobra.Command {
	var (
		sourceID string
		dryRun   bool
	)
	cmd := &cobra.Command{
		Use:   "scrape <url>...",
		Short: "Scrape fixtures pages and import the records found",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(open, func(c *app.Container) error {
				if c.Scrape == nil {
					return fmt.Errorf("%w: scraper is disabled, set SCRAPER_ENABLED=true", usecase.ErrDependencyUnavailable)
				}
				result, scrapeErr := c.Scrape.Scrape(cmd.Context(), usecase.ScrapeInput{
					Sources:  args,
					SourceID: sourceID,
					DryRun:   dryRun,
				})
				if scrapeErr != nil && !errors.Is(scrapeErr, usecase.ErrImportRejected) {
					return scrapeErr
				}
				if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
				return scrapeErr
			})
		},
	}
	cmd.Flags().StringVar(&sourceID, "source-id", "", "Batch id stored with every row (random when empty)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Scrape and validate without saving")
	return cmd
}

func withContainer(open containerFactory, fn func(c *app.Container) error) error {
	c, err := open()
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}

// readPayload reads a file, or stdin when path is "-".
func readPayload(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := sonic.ConfigDefault.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
