// Command debugview runs a local simulation in a window for tuning catalogs.
package main

import (
	"flag"
	"time"

	"github.com/gonewx/bastion/pkg/config"
	"github.com/gonewx/bastion/pkg/embedded"
	"github.com/gonewx/bastion/pkg/game"
	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gonewx/bastion/pkg/viewer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
)

var (
	catalogPath = flag.String("catalog", embedded.CatalogPath, "catalog YAML (prefix embedded: for the built-in one)")
	seed        = flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	name        = flag.String("name", "debug", "player name")
	players     = flag.Int("players", 1, "number of players, which also sets wave sizes")
)

func main() {
	flag.Parse()
	log := logger.New()

	catalog, err := config.LoadCatalog(*catalogPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load catalog")
	}

	sim := game.NewSimulation(catalog, game.Options{Authority: true, Seed: *seed, Logger: log})
	player, err := sim.AddPlayer(*name)
	if err != nil {
		log.WithError(err).Fatal("failed to add player")
	}
	for i := 1; i < *players; i++ {
		if _, err := sim.AddPlayer("bot"); err != nil {
			log.WithError(err).Fatal("failed to add player")
		}
	}

	store, err := gdata.Open(gdata.Config{AppName: "bastion_debugview"})
	if err != nil {
		log.WithError(err).Warn("settings storage unavailable, preferences will not persist")
		store = nil
	}
	settings := viewer.NewSettingsManager(store, log)

	v := viewer.New(sim, player, settings, log)
	w, h := v.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("bastion debug view")
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(v); err != nil {
		log.WithError(err).Error("viewer stopped")
	}
	if err := settings.Save(); err != nil {
		log.WithError(err).Warn("failed to save settings")
	}
}
