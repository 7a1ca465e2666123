//go:build cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

var ebitenKeys = [keyCount]ebiten.Key{
	KeyUp:        ebiten.KeyArrowUp,
	KeyDown:      ebiten.KeyArrowDown,
	KeyLeft:      ebiten.KeyArrowLeft,
	KeyRight:     ebiten.KeyArrowRight,
	KeyEnter:     ebiten.KeyEnter,
	KeyEscape:    ebiten.KeyEscape,
	KeySpace:     ebiten.KeySpace,
	KeyBackspace: ebiten.KeyBackspace,
	KeyTab:       ebiten.KeyTab,
	KeyDelete:    ebiten.KeyDelete,
	KeyHome:      ebiten.KeyHome,
	KeyEnd:       ebiten.KeyEnd,
	KeyF1:        ebiten.KeyF1,
	KeyF2:        ebiten.KeyF2,
	KeyF3:        ebiten.KeyF3,
	KeyF11:       ebiten.KeyF11,
}

func init() {
	for k := KeyA; k <= KeyZ; k++ {
		ebitenKeys[k] = ebiten.KeyA + ebiten.Key(k-KeyA)
	}
	for k := Key0; k <= Key9; k++ {
		ebitenKeys[k] = ebiten.KeyDigit0 + ebiten.Key(k-Key0)
	}
}

var ebitenButtons = [mouseCount]ebiten.MouseButton{
	MouseLeft:   ebiten.MouseButtonLeft,
	MouseRight:  ebiten.MouseButtonRight,
	MouseMiddle: ebiten.MouseButtonMiddle,
}

// ebitenInput samples Ebiten's input state. It must be polled from Update.
type ebitenInput struct {
	chars []rune
}

func (in *ebitenInput) sample(uint64) rawInput {
	var raw rawInput
	for k := KeyNone + 1; k < keyCount; k++ {
		raw.keys[k] = ebiten.IsKeyPressed(ebitenKeys[k])
	}
	for b := MouseLeft; b < mouseCount; b++ {
		raw.mouse[b] = ebiten.IsMouseButtonPressed(ebitenButtons[b])
	}
	raw.mouseX, raw.mouseY = ebiten.CursorPosition()
	_, raw.wheel = ebiten.Wheel()
	in.chars = ebiten.AppendInputChars(in.chars[:0])
	raw.chars = in.chars
	raw.closeRequested = ebiten.IsWindowBeingClosed()
	return raw
}
