// Package gameplay wires the session, rooms, overlays, dialogue, hotspots and
// menus into one tick-driven game that hosts can run and draw.
package gameplay

import (
	"log/slog"
	"time"

	engineinput "homebound/pkg/engine/input"
	"homebound/pkg/engine/scene"
	"homebound/pkg/engine/task"
	"homebound/pkg/game/config"
	"homebound/pkg/game/dialogue"
	"homebound/pkg/game/hotspot"
	"homebound/pkg/game/logger"
	"homebound/pkg/game/manifest"
	"homebound/pkg/game/menu"
	"homebound/pkg/game/overlay"
	"homebound/pkg/game/rooms"
	"homebound/pkg/game/state"
)

// Game is one play session. It is driven from a single goroutine: the host
// calls Update once per tick and View whenever it draws.
type Game struct {
	cfg *config.Config
	m   *manifest.Manifest
	log *slog.Logger

	Session  *state.Session
	Sched    *task.Scheduler
	Scenes   *scene.Registry
	Nav      *rooms.Navigator
	Surfaces *overlay.Surfaces
	Seq      *overlay.Sequencer
	Panel    *dialogue.Panel
	Dialogue *dialogue.Player
	Board    *hotspot.Board
	Menu     *menu.MainMenu
	Pause    *menu.PauseMenu

	clicks     *engineinput.ClickFilter
	clock      time.Duration
	pointer    engineinput.Point
	hasPointer bool

	audio   dialogue.AudioPlayer
	assets  overlay.Assets
	dumpDir string

	interactions int
	quit         bool
}

// Option customises a Game.
type Option func(*Game)

// WithAudio routes dialogue voice cues to a.
func WithAudio(a dialogue.AudioPlayer) Option {
	return func(g *Game) { g.audio = a }
}

// WithAssets lets cinematics skip images the host cannot draw.
func WithAssets(a overlay.Assets) Option {
	return func(g *Game) { g.assets = a }
}

// WithDumpDir sets where developer dumps are written.
func WithDumpDir(dir string) Option {
	return func(g *Game) { g.dumpDir = dir }
}

// NewGame builds a game over m. m may be nil when the manifest failed to
// load; the game then stays on the main menu and reports the problem when
// the player tries to start.
func NewGame(cfg *config.Config, m *manifest.Manifest, log *slog.Logger, opts ...Option) *Game {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = slog.Default()
	}

	session := state.NewSession()
	log = log.With("session", session.ID.String())

	g := &Game{
		cfg:     cfg,
		m:       m,
		log:     log,
		Session: session,
		Sched:   task.NewScheduler(),
		Panel:   &dialogue.Panel{},
		clicks:  engineinput.NewClickFilter(cfg.ClickDebounce),
		dumpDir: ".",
	}
	for _, opt := range opts {
		opt(g)
	}

	sceneW, sceneH := float64(cfg.WindowWidth), float64(cfg.WindowHeight)

	g.Scenes = scene.NewRegistry(logger.Component(log, "scene"))

	g.Nav = rooms.NewNavigator(m, session, g.Scenes, g.Sched, logger.Component(log, "rooms"))
	g.Nav.SettleDelay = cfg.SettleDelay

	g.Dialogue = dialogue.NewPlayer(m, g.Panel, g.audio, logger.Component(log, "dialogue"))
	g.Dialogue.TypewriterInterval = cfg.TypewriterInterval
	g.Dialogue.Timeout = cfg.DialogueTimeout

	g.Surfaces = overlay.NewSurfaces(m)
	g.Seq = overlay.NewSequencer(m, session, g.Surfaces, g.Sched, logger.Component(log, "overlay"))
	g.Seq.FadeSpeed = cfg.FadeSpeed
	g.Seq.SetDialogue(g.Dialogue)
	if g.assets != nil {
		g.Seq.SetAssets(g.assets)
	}

	g.Board = hotspot.NewBoard(m, session, g.Sched, sceneW, sceneH, logger.Component(log, "hotspot"))
	g.Board.SetNavigator(g.Nav)
	g.Board.SetCinematics(g.Seq)
	g.Board.SetDialogue(g.Dialogue)
	g.Board.SetOverlays(g.Surfaces)

	g.Seq.SetRemover(&collector{g: g})
	g.Nav.SetFocusClearer(&roomEntry{g: g})
	session.OnGateChange(func(blocked bool) {
		g.log.Debug("input gate", "blocked", blocked)
	})

	layout := menu.DefaultLayout(sceneW, sceneH)
	g.Menu = menu.NewMainMenu(g, session, g.Sched, layout, logger.Component(log, "menu"))
	g.Menu.LoadingTimeout = cfg.LoadingTimeout
	g.Menu.MinLoadingShow = cfg.MinLoadingShow
	g.Pause = menu.NewPauseMenu(layout, g.resume)

	return g
}

// Manifest returns the content the game runs, or nil.
func (g *Game) Manifest() *manifest.Manifest {
	return g.m
}

// Clock returns the game time elapsed since the game was built.
func (g *Game) Clock() time.Duration {
	return g.clock
}

// QuitRequested reports whether the player asked to leave.
func (g *Game) QuitRequested() bool {
	return g.quit
}
