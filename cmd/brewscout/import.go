package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brewscout/brewscout/internal/application/handlers"
	"github.com/brewscout/brewscout/internal/domain/services"
)

type importFlags struct {
	format     string
	dryRun     bool
	onConflict string
}

func newImportCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import cafes from JSON or CSV",
		Long:  "Imports cafe records from a structured file and normalizes them into the catalog.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (json, csv, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Normalize without saving")
	cmd.Flags().StringVar(&flags.onConflict, "on-conflict", "skip", "Conflict handling (skip, overwrite)")

	return cmd
}

func runImport(cmd *cobra.Command, filePath string, flags importFlags) error {
	if flags.onConflict != "skip" && flags.onConflict != "overwrite" {
		return fmt.Errorf("invalid --on-conflict value %q (valid: skip, overwrite)", flags.onConflict)
	}
	if !isValidFormat(flags.format) {
		return fmt.Errorf("invalid --format value %q (valid: %v)", flags.format, validFormats)
	}

	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		opts := handlers.ImportOptions{
			Format:     flags.format,
			DryRun:     flags.dryRun,
			OnConflict: services.ConflictStrategy(flags.onConflict),
		}

		fmt.Printf("Importing %s...\n", filePath)

		result, err := d.ImportHandler.Handle(ctx, filePath, opts)
		if err != nil {
			return fmt.Errorf("importing file: %w", err)
		}

		fmt.Println()
		if flags.dryRun {
			fmt.Printf("Dry run: %d cafes would be imported", result.Imported)
		} else {
			fmt.Printf("Imported: %d cafes", result.Imported)
		}
		if result.Skipped > 0 {
			fmt.Printf(", %d skipped (already exist)", result.Skipped)
		}
		fmt.Println()

		return nil
	})
}

func isValidFormat(format string) bool {
	for _, valid := range validFormats {
		if format == valid {
			return true
		}
	}
	return false
}
