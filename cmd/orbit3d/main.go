package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"orbit3d/internal/config"
	"orbit3d/internal/game"
)

func main() {
	scenePath := flag.String("scene", "assets/scenes/planets.json", "scene file to load")
	configPath := flag.String("config", config.DefaultPath, "simulation config (YAML)")
	flag.Parse()

	// Paths given on the command line are relative to the caller
	flag.Visit(func(f *flag.Flag) {
		if abs, err := filepath.Abs(f.Value.String()); err == nil {
			f.Value.Set(abs)
		}
	})

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	ctx, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("orbit3d: %v", err)
	}

	g := game.New(ctx, *scenePath)
	if err := g.Run(); err != nil {
		log.Fatalf("orbit3d: %v", err)
	}
}
