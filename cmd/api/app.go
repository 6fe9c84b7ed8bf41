package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"github.com/vaultpass/passgen-go/internal/config"
	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/handler"
	"github.com/vaultpass/passgen-go/internal/logging"
	"github.com/vaultpass/passgen-go/internal/metrics"
	"github.com/vaultpass/passgen-go/internal/server"
	"github.com/vaultpass/passgen-go/internal/service"
)

const version = "1.0.0"

var errInvalidCount = errors.New("count must be at least 1")

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "passgen",
		Usage:   "Random password generator API",
		Version: version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to an optional TOML configuration file",
			},
			&cli.StringFlag{
				Name:  "port",
				Usage: "Listen port, overrides PORT and the config file",
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API (default)",
				Action: serve,
			},
			{
				Name:    "generate",
				Aliases: []string{"gen"},
				Usage:   "Print random passwords without starting the server",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "length",
						Aliases: []string{"l"},
						Usage:   "Password length",
						Value:   crypto.DefaultLength,
					},
					&cli.StringFlag{
						Name:  "charsets",
						Usage: "Comma separated classes: upper, lower, digits, symbols or all",
						Value: "all",
					},
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "Number of passwords to print",
						Value:   1,
					},
				},
				Action: generate,
			},
		},
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	if port := cmd.String("port"); port != "" {
		cfg.Port = port
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := logging.New(nil, cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	m := metrics.New()
	genService := service.NewGeneratorService(cfg.MaxLength, m)
	genHandler := handler.NewGeneratorHandler(genService, logger)

	router := server.NewRouter(server.RouterDeps{
		Logger:    logger,
		Generator: genHandler,
		Metrics:   m,
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("configuration loaded",
		"env", cfg.Env,
		"port", cfg.Port,
		"max_password_length", cfg.MaxLength,
	)

	return server.New(cfg.Addr(), router, logger, cfg.ShutdownTimeout).Run(ctx)
}

func generate(_ context.Context, cmd *cli.Command) error {
	opts, err := crypto.ParseCharsets(cmd.String("charsets"))
	if err != nil {
		return err
	}
	opts.Length = int(cmd.Int("length"))

	count := int(cmd.Int("count"))
	if count < 1 {
		return errInvalidCount
	}

	out := cmd.Root().Writer
	for i := 0; i < count; i++ {
		password, err := crypto.Generate(opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, password)
	}
	return nil
}
