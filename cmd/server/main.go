package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/adrianliechti/narrator/config"
	"github.com/adrianliechti/narrator/pkg/otel"
	"github.com/adrianliechti/narrator/server"
)

var version = "dev"

func main() {
	configFlag := flag.String("config", "config.yaml", "configuration path")
	versionFlag := flag.Bool("version", false, "print version")

	flag.Parse()

	if *versionFlag {
		fmt.Println(version)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configFlag); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string) error {
	if otel.EnableDebug {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := otel.Setup(ctx, "narrator", version); err != nil {
		return err
	}

	cfg, err := config.Parse(path)

	if err != nil {
		return err
	}

	defer cfg.Close()

	s, err := server.New(cfg)

	if err != nil {
		return err
	}

	return s.ListenAndServe(ctx)
}
