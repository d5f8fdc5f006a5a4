package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/calc-climb/internal/config"
	"github.com/vovakirdan/calc-climb/internal/core"
	"github.com/vovakirdan/calc-climb/internal/games/calcclimb"
	"github.com/vovakirdan/calc-climb/internal/storage"
)

// Shared by play, menu and online.
var (
	flagConfig     string
	flagDifficulty string
	flagTier       = -1
)

// runtimeConfig sizes the simulation to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// gameConfig loads the YAML config, applies --difficulty and --tier and hands the
// result to registry-created sessions.
func gameConfig() (config.CalcClimbConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset := config.DifficultyPreset(flagDifficulty)
		if _, ok := config.StartTierForPreset(preset); !ok && !config.IsFixedPreset(preset) {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagTier >= 0 {
		cfg.Difficulty.StartTier = min(flagTier, cfg.Difficulty.MaxTier)
	}
	calcclimb.SetConfig(cfg)
	return cfg, nil
}

// openStore opens the scores database. Storage is optional: an empty path
// or an open failure yields nil and play continues without it.
func openStore(path string) *storage.Store {
	if path == "" {
		return nil
	}
	store, err := storage.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}
