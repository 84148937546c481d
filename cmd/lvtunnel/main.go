// Command lvtunnel computes the decay of a false vacuum in one of the
// built-in potentials and optionally records the result in SQLite.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/katalvlaran/lvtunnel/internal/app"
	"github.com/katalvlaran/lvtunnel/internal/config"
	"github.com/katalvlaran/lvtunnel/internal/store"
	"github.com/katalvlaran/lvtunnel/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[LVTUNNEL] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	shutdown, err := telemetry.Setup(ctx, app.ServiceName, telemetry.Settings{
		Endpoint: cfg.OTelEndpoint,
		Enabled:  cfg.OTelEnabled,
	})
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	var st *store.Store
	if cfg.DBPath != "" {
		if st, err = store.Open(cfg.DBPath); err != nil {
			return err
		}
		defer st.Close()
	}

	log.Printf("computing %s (%s) for %s potential", cfg.Strategy, cfg.Mode, cfg.Potential)
	start := time.Now()
	rep, err := app.Run(ctx, cfg, st)
	if err != nil {
		return err
	}
	log.Printf("done in %s", time.Since(start).Round(time.Millisecond))
	rep.Print(os.Stdout)
	return nil
}
