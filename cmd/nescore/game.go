package main

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kestrel-emu/nescore/ppu"
)

// game is the ebiten.Game that displays a *nes.Console's output. The console
// runs its own step loop on a separate goroutine (see main.go); game's
// job is purely to hand the display whatever frame was most recently
// produced.
type game struct {
	mu    sync.Mutex
	frame *image.RGBA
}

// FrameReady implements bus.FrameObserver. It's called synchronously
// from the console's goroutine on every frame-complete edge, so the frame is
// copied out rather than aliased to avoid a data race with Draw running
// concurrently on ebiten's goroutine.
func (g *game) FrameReady(p *ppu.PPU) {
	src := p.Frame()
	cp := image.NewRGBA(src.Bounds())
	copy(cp.Pix, src.Pix)

	g.mu.Lock()
	g.frame = cp
	g.mu.Unlock()
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.FrameWidth, ppu.FrameHeight
}

func (g *game) Update() error {
	// Stepping happens on the console's own goroutine; ebiten only
	// drives Draw/Layout here.
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	frame := g.frame
	g.mu.Unlock()

	if frame == nil {
		return
	}

	rect := frame.Bounds()
	for x := 0; x < rect.Dx(); x++ {
		for y := 0; y < rect.Dy(); y++ {
			screen.Set(x, y, frame.At(x, y))
		}
	}
}
