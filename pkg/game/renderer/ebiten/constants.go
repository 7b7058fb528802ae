// Package ebiten provides the Ebiten window host for Homebound.
package ebiten

import "image/color"

// Color palette
var (
	colorBackground      = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorText            = color.RGBA{200, 210, 245, 255} // Soft off-white with blue-purple tint
	colorSubtle          = color.RGBA{120, 130, 180, 255} // Soft blue-purple-gray
	colorAction          = color.RGBA{180, 150, 250, 255} // Blue-purple
	colorItem            = color.RGBA{220, 170, 255, 255} // Bright purple
	colorRoom            = color.RGBA{160, 160, 180, 255} // Light gray-blue for room names
	colorExit            = color.RGBA{100, 255, 100, 255} // Bright green
	colorDisabled        = color.RGBA{100, 100, 120, 255}
	colorPanelBackground = color.RGBA{30, 30, 50, 220} // Semi-transparent dark
	colorPanelBorder     = color.RGBA{90, 90, 140, 255}
	colorHoverBackground = color.RGBA{60, 80, 100, 200}
	colorHotspotBorder   = color.RGBA{120, 130, 180, 120}
	colorDim             = color.RGBA{0, 0, 0, 160}
)

// Font sizes
const (
	uiFontSize     = 18.0
	smallFontSize  = 14.0
	titleFontSize  = 40.0
	dialogFontSize = 22.0
)

// Layout
const (
	screenMargin   = 24.0
	panelPadding   = 16.0
	cornerRadius   = 8.0
	dialogueHeight = 140.0
	lineSpacing    = 1.3
)

// Audio
const sampleRate = 44100

// Left stick deflection that counts as a menu step.
const stickDeadZone = 0.5
