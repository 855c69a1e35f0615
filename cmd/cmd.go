// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles setup operations for configuration and the preset database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "config",
				Usage:  "Write a config.toml template",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
			{
				Name:  "rollback",
				Usage: "Roll back the most recent database migration",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:  "to",
						Usage: "Roll back every migration newer than this version (-1 for all)",
					},
				},
				Action: r.SetupRollback,
			},
			{
				Name:   "status",
				Usage:  "List database migrations and whether they are applied",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupStatus,
			},
		},
	}
}

// presetCommand manages saved presets of the demo scene.
func presetCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "preset",
		Aliases: []string{"presets"},
		Usage:   "Manage saved scene presets",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List saved presets, most recent first",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.PresetList,
			},
			{
				Name:  "save",
				Usage: "Save the scene under a name",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "from",
						Usage: "Start from an existing preset instead of the defaults",
					},
					&cli.StringSliceFlag{
						Name:    "set",
						Aliases: []string{"s"},
						Usage:   "Set a scene value before saving (key=value, repeatable)",
					},
				},
				Action: r.PresetSave,
			},
			{
				Name:  "load",
				Usage: "Apply a preset to the scene and print the result",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: md, csv, yaml, txt",
						Value:   "txt",
					},
				},
				Action: r.PresetLoad,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete a preset",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.PresetDelete,
			},
		},
	}
}

// exportCommand exports the demo scene, or every saved preset of it.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the scene panel as Markdown, CSV, YAML or text",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: md, csv, yaml, txt",
				Value:   "md",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
			&cli.StringFlag{
				Name:    "preset",
				Aliases: []string{"p"},
				Usage:   "Apply a saved preset before exporting",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Export every saved preset into its own file",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Output directory for --all (default: lacery_export_{epoch})",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent writers for --all (max 10)",
				Value: 5,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Preset loads per second for --all",
				Value: 5,
			},
		},
		Action: r.Export,
	}
}

// tuiCommand returns the top-level TUI command for interactive scene editing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive scene panel",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "preset",
				Aliases: []string{"p"},
				Usage:   "Apply a saved preset on startup",
			},
		},
		Action: r.TUI,
	}
}
