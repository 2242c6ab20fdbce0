package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/eringen/compuclinic"
)

// version is set at build time via ldflags.
var version = "dev"

// loadConfig reads the YAML file named by --config, or the environment when
// no file is given.
func loadConfig(cmd *cli.Command) (compuclinic.SiteConfig, error) {
	path := cmd.String("config")
	if path == "" {
		return compuclinic.ConfigFromEnv(), nil
	}
	cfg, err := compuclinic.LoadConfigFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	app, err := compuclinic.New(cfg)
	if err != nil {
		return err
	}
	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func llms(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.LogLevel = compuclinic.LogLevelOff
	app, err := compuclinic.New(cfg)
	if err != nil {
		return err
	}
	doc, err := app.Digest(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(os.Stdout, doc)
	return err
}

func main() {
	cmd := &cli.Command{
		Name:   "compuclinic",
		Usage:  "CompuClinic site and blog backed by a headless CMS",
		Action: serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file (environment variables are used when empty)",
				Sources: cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server",
				Action: serve,
			},
			{
				Name:   "llms",
				Usage:  "Print the llms.txt content index to stdout",
				Action: llms,
			},
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(_ context.Context, _ *cli.Command) error {
					fmt.Printf("compuclinic %s\n", version)
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
