package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/freqplot/internal/app"
	"github.com/RMahshie/freqplot/internal/config"
	"github.com/RMahshie/freqplot/internal/processing"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout); err != nil {
		log.Error().Err(err).Msg("Chart run failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Render.Run(ctx, processing.RunOptions{
		OutputFile:  cfg.Render.OutputFile,
		SeriesNames: cfg.Render.Series,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Result has been saved to %s\n", result.Path)
	if result.DownloadURL != "" {
		fmt.Fprintf(stdout, "Published to %s\n", result.DownloadURL)
	}
	return nil
}
