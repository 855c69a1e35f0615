package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/lacery/internal/formatter"
	"github.com/desertthunder/lacery/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export renders the scene panel, or every saved preset with --all.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}
	if cmd.Bool("all") {
		return r.exportAll(ctx, cmd)
	}

	format := cmd.String("format")
	if _, err := formatter.ParseFormat(format); err != nil {
		return err
	}

	l, s, err := r.scene()
	if err != nil {
		return err
	}

	if name := cmd.String("preset"); name != "" {
		store, err := r.openStore()
		if err != nil {
			return err
		}
		defer r.close()

		if err := store.Apply(name, s); err != nil {
			return suggest(store, name, err)
		}
		l.Update()
	}

	rows := formatter.Snapshot(l)

	output := cmd.String("output")
	if output == "" {
		return formatter.Write(r.output, format, rows)
	}

	path, err := formatter.WriteExport(format, rows, output)
	if err != nil {
		return err
	}

	r.logger.Info("exported scene", "path", path, "rows", len(rows))
	return r.writePlain("✓ Exported %d rows to %s\n", len(rows), path)
}

// exportAll writes one file per saved preset plus a manifest.
func (r *Runner) exportAll(ctx context.Context, cmd *cli.Command) error {
	store, err := r.openStore()
	if err != nil {
		return err
	}
	defer r.close()

	all, err := store.List()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		return r.writePlain("No presets saved\n")
	}

	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}

	engine, err := r.engine(store)
	if err != nil {
		return err
	}

	r.writePlain("Exporting %d presets...\n\n", len(names))

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.LoadPreset:
				r.writePlain("📥 [%d/%d] %s\n", update.Step, update.Total, update.Message)
			case tasks.ExportPreset:
				r.writePlain("   %s\n", update.Message)
			case tasks.WriteManifest:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	result, err := engine.BulkExport(ctx, progressCh, names, tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("dir"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	})
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Exported: %d/%d presets\n", result.SuccessfulExports, result.TotalPresets)
	r.writePlain("Directory: %s\n", result.OutputDirectory)
	r.writePlain("Manifest: %s\n", result.ManifestPath)

	if result.FailedExports > 0 {
		r.writePlain("\nFailed to export %d presets:\n", result.FailedExports)
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - %s: %s\n", res.Name, res.ErrorMsg)
			}
		}
		return fmt.Errorf("%d of %d preset exports failed", result.FailedExports, result.TotalPresets)
	}

	return nil
}
