package ebiten

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"homebound/pkg/game/config"
	"homebound/pkg/game/logger"
	"homebound/pkg/game/renderer"
)

// New creates the Ebiten host. The image cache and clip player exist from
// the start so the game can be built with them before the window opens.
func New(cfg *config.Config, log *slog.Logger) *EbitenRenderer {
	if cfg == nil {
		cfg = config.Default()
	}
	log = logger.Component(log, "ebiten")
	return &EbitenRenderer{
		cfg:        cfg,
		log:        log,
		width:      cfg.WindowWidth,
		height:     cfg.WindowHeight,
		tick:       cfg.TickDuration(),
		images:     NewImageCache(cfg.AssetsDir, log),
		audio:      NewClipPlayer(cfg.AssetsDir, log),
		stickState: make(map[ebiten.GamepadID]int),
	}
}

// Images returns the host's image cache, which answers overlay.Assets.
func (e *EbitenRenderer) Images() *ImageCache {
	return e.images
}

// Audio returns the host's clip player, which answers dialogue.AudioPlayer.
func (e *EbitenRenderer) Audio() *ClipPlayer {
	return e.audio
}

// Init loads fonts and configures the window.
func (e *EbitenRenderer) Init() error {
	if err := e.loadFonts(); err != nil {
		return err
	}
	ebiten.SetWindowSize(e.width, e.height)
	ebiten.SetWindowTitle(renderer.Text("GAME_TITLE", "Homebound"))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(e.cfg.TickRate)
	return nil
}

// Run drives d until the player quits or the window closes.
func (e *EbitenRenderer) Run(d renderer.Driver) error {
	e.driver = d
	e.view = d.View()
	defer e.audio.Close()

	if err := ebiten.RunGame(e); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run ebiten: %w", err)
	}
	e.log.Info("window closed")
	return nil
}

// Layout returns the logical scene size (Ebiten interface). Hotspot
// rectangles are authored in these coordinates, so the cursor maps onto
// them whatever the window size.
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return e.width, e.height
}

// StyleText wraps text in the markup the window draws in colour.
func (e *EbitenRenderer) StyleText(text string, style renderer.TextStyle) string {
	switch style {
	case renderer.StyleItem:
		return "ITEM{" + text + "}"
	case renderer.StyleTitle:
		return "ROOM{" + text + "}"
	case renderer.StyleHover, renderer.StyleSelected:
		return "ACTION{" + text + "}"
	default:
		return text
	}
}
