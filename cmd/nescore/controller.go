package main

import "github.com/hajimehoshi/ebiten/v2"

// button bit positions within the controller's shift register, matching
// the order the NES reads them back in over 0x4016/0x4017.
const (
	buttonA uint8 = 1 << iota
	buttonB
	buttonSelect
	buttonStart
	buttonUp
	buttonDown
	buttonLeft
	buttonRight
)

// keyBindings maps each button bit to the ebiten key that drives it.
var keyBindings = map[uint8]ebiten.Key{
	buttonA:      ebiten.KeyA,
	buttonB:      ebiten.KeyB,
	buttonSelect: ebiten.KeySpace,
	buttonStart:  ebiten.KeyEnter,
	buttonUp:     ebiten.KeyUp,
	buttonDown:   ebiten.KeyDown,
	buttonLeft:   ebiten.KeyLeft,
	buttonRight:  ebiten.KeyRight,
}

// keyboardPad implements bus.InputDevice over ebiten's keyboard state: a
// strobe-latched shift register over the 8 standard buttons. Writing an
// odd value holds the register open (every Read samples the keyboard
// live); writing an even value latches the current button state and
// starts shifting it out one bit per Read, oldest-bit-first.
type keyboardPad struct {
	latched  bool
	shiftReg uint8
	bit      uint8
}

func (k *keyboardPad) Write(strobe uint8) {
	k.latched = strobe&0x01 != 0
	if !k.latched {
		k.shiftReg = k.sample()
		k.bit = 0
	}
}

func (k *keyboardPad) Read() uint8 {
	if k.latched {
		return k.sample() & 1
	}
	if k.bit > 7 {
		return 1
	}
	v := (k.shiftReg >> k.bit) & 1
	k.bit++
	return v
}

func (k *keyboardPad) sample() uint8 {
	var state uint8
	for button, key := range keyBindings {
		if ebiten.IsKeyPressed(key) {
			state |= button
		}
	}
	return state
}
