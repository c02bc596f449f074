// Command server runs the authoritative simulation behind a WebSocket endpoint.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/embedded"
	"github.com/gonewx/bastion/pkg/game"
	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gonewx/bastion/pkg/network"
)

var (
	addr          = flag.String("addr", ":8080", "listen address")
	catalogPath   = flag.String("catalog", embedded.CatalogPath, "catalog YAML (prefix embedded: for the built-in one)")
	seed          = flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	snapshotEvery = flag.Int("snapshot-every", 1, "broadcast a snapshot every N ticks")
	snapshotOut   = flag.String("snapshot-out", "", "write the final snapshot to this file on shutdown")
)

func main() {
	flag.Parse()
	log := logger.New()

	catalog, err := config.LoadCatalog(*catalogPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load catalog")
	}

	sim := game.NewSimulation(catalog, game.Options{Authority: true, Seed: *seed, Logger: log})
	loop := game.NewLoop(sim, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := network.NewServer(ctx, loop, log)
	loop.SnapshotEvery = *snapshotEvery

	httpServer := &http.Server{Addr: *addr, Handler: srv.Handler()}
	go func() {
		log.Infof("🛡️  server listening on %s (seed %d)", *addr, *seed)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("http server failed")
			stop()
		}
	}()

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("simulation loop failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown incomplete")
	}

	if *snapshotOut != "" {
		snap := sim.Snapshot()
		if err := game.SaveSnapshot(&snap, *snapshotOut); err != nil {
			log.WithError(err).Error("failed to save final snapshot")
		} else {
			log.WithField("path", *snapshotOut).Info("final snapshot saved")
		}
	}
}
