package ebiten

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// loadFonts parses the embedded Go fonts into face sources.
func (e *EbitenRenderer) loadFonts() error {
	var err error
	if e.sansFontSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err != nil {
		return fmt.Errorf("load sans font: %w", err)
	}
	if e.sansBoldFontSource, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF)); err != nil {
		return fmt.Errorf("load sans bold font: %w", err)
	}
	if e.monoFontSource, err = text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF)); err != nil {
		return fmt.Errorf("load mono font: %w", err)
	}
	e.faces = make(map[faceKey]*text.GoTextFace)
	return nil
}

// face returns a cached face for source at size.
func (e *EbitenRenderer) face(source *text.GoTextFaceSource, size float64) *text.GoTextFace {
	key := faceKey{source: source, size: size}
	if f, ok := e.faces[key]; ok {
		return f
	}
	f := &text.GoTextFace{Source: source, Size: size}
	e.faces[key] = f
	return f
}

// getSansFontFace returns the face for UI text
func (e *EbitenRenderer) getSansFontFace() *text.GoTextFace {
	return e.face(e.sansFontSource, uiFontSize)
}

// getSmallFontFace returns the face for hints and help lines
func (e *EbitenRenderer) getSmallFontFace() *text.GoTextFace {
	return e.face(e.sansFontSource, smallFontSize)
}

// getDialogueFontFace returns the face for dialogue lines
func (e *EbitenRenderer) getDialogueFontFace() *text.GoTextFace {
	return e.face(e.sansFontSource, dialogFontSize)
}

// getSansBoldFontFace returns the bold face at UI size, for menu items
func (e *EbitenRenderer) getSansBoldFontFace() *text.GoTextFace {
	return e.face(e.sansBoldFontSource, uiFontSize)
}

// getTitleFontFace returns the large bold face for menu titles
func (e *EbitenRenderer) getTitleFontFace() *text.GoTextFace {
	return e.face(e.sansBoldFontSource, titleFontSize)
}

func (e *EbitenRenderer) getMonoFontFace() *text.GoTextFace {
	return e.face(e.monoFontSource, smallFontSize)
}
