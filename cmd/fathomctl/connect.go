package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fathomctl/fathomctl/internal/config"
	"github.com/fathomctl/fathomctl/internal/connection"
	"github.com/fathomctl/fathomctl/internal/display"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   config.DefaultPath(),
		Usage:   "Path to the config file",
	}
}

// connect loads the config and builds the connection and printer shared by
// the api and filters commands. A missing API key surfaces here and is the
// one condition that aborts the command.
func connect(ctx context.Context, command *cli.Command) (*connection.Connection, *display.Printer, error) {
	logger := getLogger(ctx)

	cfg, err := config.Load(afero.NewOsFs(), command.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if command.Bool("prefer-rest") {
		cfg.PreferRest = true
	}

	conn, err := connection.New(connection.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.TimeoutDuration(),
		PreferREST: cfg.PreferRest,
		Debug:      command.Root().Bool("debug"),
	}, logger.Named("connection"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connection: %w", err)
	}

	printer := display.NewPrinter(os.Stdout, display.WithDecoration(isInteractive(ctx)))

	return conn, printer, nil
}
