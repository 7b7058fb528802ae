package ebiten

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "homebound/pkg/engine/input"
)

// keyCodes maps keyboard keys to the raw codes the bindings understand.
var keyCodes = map[ebiten.Key]string{
	ebiten.KeyEscape:    "escape",
	ebiten.KeyX:         "x",
	ebiten.KeySpace:     "space",
	ebiten.KeyArrowUp:   "arrow_up",
	ebiten.KeyW:         "w",
	ebiten.KeyArrowDown: "arrow_down",
	ebiten.KeyS:         "s",
	ebiten.KeyEnter:     "enter",
	ebiten.KeyF9:        "f9",
	ebiten.KeyQ:         "q",
}

// gamepadCodes maps standard-layout gamepad buttons to raw codes.
var gamepadCodes = map[ebiten.StandardGamepadButton]string{
	ebiten.StandardGamepadButtonRightBottom: "gamepad_a",
	ebiten.StandardGamepadButtonRightRight:  "gamepad_b",
	ebiten.StandardGamepadButtonLeftTop:     "gamepad_dpad_up",
	ebiten.StandardGamepadButtonLeftBottom:  "gamepad_dpad_down",
	ebiten.StandardGamepadButtonCenterRight: "gamepad_start",
}

// Update advances the game by one tick (Ebiten interface).
func (e *EbitenRenderer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		e.log.Info("main window opened", "width", w, "height", h)
	}
	if e.driver == nil {
		return nil
	}

	e.driver.Update(e.tick, e.readFrame())
	e.view = e.driver.View()
	e.audio.reap()

	if e.driver.QuitRequested() {
		return ebiten.Termination
	}
	return nil
}

// readFrame gathers this tick's raw events from every device and runs them
// through the binding layers.
func (e *EbitenRenderer) readFrame() engineinput.Frame {
	var events []engineinput.RawInput
	now := time.Now()
	add := func(device engineinput.Device, code string) {
		events = append(events, engineinput.RawInput{Device: device, Code: code, Timestamp: now})
	}

	x, y := ebiten.CursorPosition()
	pointer := engineinput.Point{X: float64(x), Y: float64(y)}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		add(engineinput.DeviceMouse, "mouse_left")
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		pointer = engineinput.Point{X: float64(tx), Y: float64(ty)}
		add(engineinput.DeviceTouch, "touch")
	}

	for key, code := range keyCodes {
		if inpututil.IsKeyJustPressed(key) {
			add(engineinput.DeviceKeyboard, code)
		}
	}

	e.checkGamepadInput(add)

	return engineinput.FrameFromRaw(&pointer, events)
}

// checkGamepadInput reports pressed buttons and left stick steps on every
// connected standard-layout gamepad.
func (e *EbitenRenderer) checkGamepadInput(add func(engineinput.Device, string)) {
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for button, code := range gamepadCodes {
			if inpututil.IsStandardGamepadButtonJustPressed(id, button) {
				add(engineinput.DeviceGamepad, code)
			}
		}

		// The stick produces one step per deflection, not one per tick.
		v := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		dir := 0
		switch {
		case v < -stickDeadZone:
			dir = -1
		case v > stickDeadZone:
			dir = 1
		}
		if dir != e.stickState[id] {
			switch dir {
			case -1:
				add(engineinput.DeviceGamepad, "gamepad_dpad_up")
			case 1:
				add(engineinput.DeviceGamepad, "gamepad_dpad_down")
			}
			e.stickState[id] = dir
		}
	}
}
