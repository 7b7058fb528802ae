package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/leonelquinteros/gotext"

	"homebound/pkg/game/config"
	"homebound/pkg/game/devtools"
	"homebound/pkg/game/gameplay"
	"homebound/pkg/game/logger"
	"homebound/pkg/game/manifest"
	"homebound/pkg/game/renderer"
	ebitenrenderer "homebound/pkg/game/renderer/ebiten"
	"homebound/pkg/game/renderer/tui"
)

func initGettext(cfg *config.Config) {
	gotext.Configure(cfg.LocaleDir, cfg.Language, "default")
}

// loadManifest loads the content file. A failure is logged and the game
// runs without content, so the title screen can still tell the player.
func loadManifest(cfg *config.Config, dev bool, devFilter string, log *slog.Logger) *manifest.Manifest {
	m, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		log.Error("manifest failed to load", "path", cfg.ManifestPath, "error", err)
		return nil
	}
	for _, w := range manifest.Lint(m) {
		log.Warn("manifest lint", "problem", w)
	}
	log.Info("manifest loaded",
		"path", cfg.ManifestPath,
		"rooms", len(m.Rooms),
		"dialogues", len(m.Dialogues),
		"cinematics", len(m.Cinematics))

	if dev {
		m = devtools.DevManifest(m, devFilter, float64(cfg.WindowWidth), float64(cfg.WindowHeight))
		cfg.StartRoomID = devtools.DevRoomID
		log.Info("developer room enabled", "filter", devFilter, "items", len(m.Rooms[0].Items))
	}
	return m
}

func main() {
	os.Exit(run())
}

// run plays the game and returns the process exit status once every
// deferred cleanup has run.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	manifestPath := flag.String("manifest", cfg.ManifestPath, "path to the game manifest (json or yaml)")
	useTUI := flag.Bool("tui", false, "play in the terminal instead of a window")
	localeDir := flag.String("locale", cfg.LocaleDir, "directory holding translation catalogues")
	language := flag.String("lang", cfg.Language, "language of the translation catalogue")
	logLevel := flag.String("log-level", cfg.LogLevelRaw, "log level: debug, info, warn, error")
	logFile := flag.String("log-file", "homebound.log", "log file used by the terminal host")
	dev := flag.Bool("dev", false, "start in a developer room with every cinematic and dialogue")
	devFilter := flag.String("dev-filter", "", "only include developer room entries whose id contains this")
	dumpDir := flag.String("dump-dir", ".", "where F9 writes state dumps")
	flag.Parse()

	cfg.ManifestPath = *manifestPath
	cfg.LocaleDir = *localeDir
	cfg.Language = *language
	cfg.LogLevelRaw = *logLevel

	// The terminal host owns the screen, so its logs go to a file.
	logOut, closeLog, err := logger.Output(*useTUI, *logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeLog()
	log := logger.SetupWriter(cfg, logOut)
	log.Info("starting", "version", renderer.Version, "commit", renderer.Commit, "tui", *useTUI)

	initGettext(cfg)
	m := loadManifest(cfg, *dev, *devFilter, log)

	opts := []gameplay.Option{gameplay.WithDumpDir(*dumpDir)}
	if *useTUI {
		renderer.SetRenderer(tui.New(cfg, log))
	} else {
		r := ebitenrenderer.New(cfg, log)
		opts = append(opts, gameplay.WithAssets(r.Images()), gameplay.WithAudio(r.Audio()))
		renderer.SetRenderer(r)
	}

	g := gameplay.NewGame(cfg, m, log, opts...)

	if err := renderer.Init(); err != nil {
		log.Error("renderer init failed", "error", err)
		return 1
	}

	err = renderer.Run(g)
	g.Shutdown()
	if err != nil {
		log.Error("game loop failed", "error", err)
		return 1
	}
	log.Info("goodbye")
	return 0
}
