package menu

import (
	"log/slog"
	"time"

	engineinput "homebound/pkg/engine/input"
	"homebound/pkg/engine/task"
	"homebound/pkg/game/renderer"
	"homebound/pkg/game/state"
)

// MainMenuAction represents the action type for main menu items.
type MainMenuAction int

const (
	MainMenuActionStart MainMenuAction = iota
	MainMenuActionOptions
	MainMenuActionQuit
)

// MainMenuItem represents a menu item in the main menu.
type MainMenuItem struct {
	Label  string
	Action MainMenuAction

	owner *MainMenu
}

// GetLabel returns the display label for this menu item.
func (m *MainMenuItem) GetLabel() string {
	return m.Label
}

// IsSelectable returns whether this item can be selected. Every item is
// disabled while the game is loading.
func (m *MainMenuItem) IsSelectable() bool {
	return m.owner == nil || !m.owner.loading
}

// GetHelpText returns help text for this menu item.
func (m *MainMenuItem) GetHelpText() string {
	switch m.Action {
	case MainMenuActionStart:
		return renderer.Text("MENU_START_HELP", "Start a new game")
	case MainMenuActionOptions:
		return renderer.Text("MENU_OPTIONS_HELP", "Show the controls")
	case MainMenuActionQuit:
		return renderer.Text("MENU_QUIT_HELP", "Exit the game")
	default:
		return ""
	}
}

// Starter kicks off loading the game. Loading finishes asynchronously; the
// session's phase reports when play begins.
type Starter interface {
	StartGame() error
}

// MainMenu is the title screen. Start shows a loading panel until the game
// reports it is playing or the loading timeout runs out.
type MainMenu struct {
	*Menu

	LoadingTimeout time.Duration
	MinLoadingShow time.Duration

	starter  Starter
	session  *state.Session
	sched    *task.Scheduler
	controls *Menu
	log      *slog.Logger

	loading     bool
	loadingText string
	quit        bool
}

// NewMainMenu creates the main menu, open.
func NewMainMenu(starter Starter, session *state.Session, sched *task.Scheduler, layout Layout, log *slog.Logger) *MainMenu {
	if log == nil {
		log = slog.Default()
	}
	mm := &MainMenu{
		LoadingTimeout: 15 * time.Second,
		MinLoadingShow: 500 * time.Millisecond,
		starter:        starter,
		session:        session,
		sched:          sched,
		log:            log,
	}
	items := []MenuItem{
		&MainMenuItem{Label: renderer.Text("MENU_START", "Start"), Action: MainMenuActionStart, owner: mm},
		&MainMenuItem{Label: renderer.Text("MENU_OPTIONS", "Options"), Action: MainMenuActionOptions, owner: mm},
		&MainMenuItem{Label: renderer.Text("MENU_QUIT", "Quit"), Action: MainMenuActionQuit, owner: mm},
	}
	mm.Menu = New(mm, items, layout)
	mm.controls = NewControlsMenu(layout)
	mm.Open()
	return mm
}

// GetTitle returns the menu title.
func (mm *MainMenu) GetTitle() string {
	return renderer.Text("GAME_TITLE", "Homebound")
}

// GetInstructions returns the menu instructions.
func (mm *MainMenu) GetInstructions(selected MenuItem) string {
	return renderer.Text("MENU_INSTRUCTIONS", "Use up/down to select, Enter or click to activate")
}

// ShouldCloseOnCancel returns false; the title screen stays up.
func (mm *MainMenu) ShouldCloseOnCancel() bool {
	return false
}

// OnExit is called when the menu is closed.
func (mm *MainMenu) OnExit() {
	mm.log.Debug("main menu closed")
}

// OnActivate is called when an item is activated.
func (mm *MainMenu) OnActivate(item MenuItem, index int) (shouldClose bool, helpText string) {
	mainItem, ok := item.(*MainMenuItem)
	if !ok {
		return false, ""
	}
	switch mainItem.Action {
	case MainMenuActionStart:
		mm.start()
	case MainMenuActionOptions:
		mm.log.Info("options opened")
		mm.controls.Open()
	case MainMenuActionQuit:
		mm.log.Info("quit requested from main menu")
		mm.quit = true
	}
	return false, ""
}

// ShouldQuit returns true if the player selected Quit.
func (mm *MainMenu) ShouldQuit() bool {
	return mm.quit
}

// Loading reports whether the loading panel is up.
func (mm *MainMenu) Loading() bool {
	return mm.loading
}

// LoadingText returns the loading panel text, which turns into a retry hint
// after a failed start.
func (mm *MainMenu) LoadingText() string {
	return mm.loadingText
}

// Update applies one tick of input to the menu or the controls listing.
func (mm *MainMenu) Update(f engineinput.Frame) bool {
	if mm.controls.IsOpen() {
		return mm.controls.Update(f)
	}
	return mm.Menu.Update(f)
}

// View returns whichever menu is in front.
func (mm *MainMenu) View() *renderer.MenuView {
	if mm.controls.IsOpen() {
		return mm.controls.View()
	}
	v := mm.Menu.View()
	v.Loading = mm.loading || mm.loadingText != ""
	v.LoadingText = mm.loadingText
	return v
}

func (mm *MainMenu) start() {
	if mm.loading {
		return
	}
	mm.loading = true
	mm.loadingText = renderer.Text("LOADING", "Loading…")
	mm.log.Info("starting game")

	w := &loadingWait{mm: mm}
	if err := mm.starter.StartGame(); err != nil {
		mm.log.Error("start game failed", "error", err)
		w.failed = true
	}

	mm.sched.Spawn(task.Sequence(w, task.Lazy(func() task.Task {
		if w.elapsed < mm.MinLoadingShow {
			return task.Wait(mm.MinLoadingShow - w.elapsed)
		}
		return nil
	}), task.Do(func() { mm.finishLoading(w.success) })))
}

func (mm *MainMenu) finishLoading(success bool) {
	mm.loading = false
	if success || mm.session.Phase == state.PhasePlaying {
		mm.loadingText = ""
		mm.Close()
		return
	}
	mm.log.Warn("game did not start, re-enabling menu", "timeout", mm.LoadingTimeout)
	mm.loadingText = renderer.Text("LOADING_FAILED", "Loading failed. Try again.")

	// Loading that is still running may finish after the timeout.
	if mm.session.Phase == state.PhaseLoading {
		mm.sched.Spawn(task.Sequence(
			task.WaitUntil(func() bool { return mm.session.Phase != state.PhaseLoading }),
			task.Do(func() {
				if !mm.loading && mm.IsOpen() && mm.session.Phase == state.PhasePlaying {
					mm.log.Info("game started after the loading timeout")
					mm.finishLoading(true)
				}
			}),
		))
	}
}

// loadingWait suspends until the game plays or the timeout passes.
type loadingWait struct {
	mm      *MainMenu
	elapsed time.Duration
	success bool
	failed  bool
}

func (w *loadingWait) Resume(dt time.Duration) task.Status {
	w.elapsed += dt
	if w.failed {
		return task.Done
	}
	if w.mm.session.Phase == state.PhasePlaying {
		w.success = true
		return task.Done
	}
	if w.elapsed >= w.mm.LoadingTimeout {
		return task.Done
	}
	return task.Suspended
}
