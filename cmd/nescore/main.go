package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kestrel-emu/nescore/cartridge"
	"github.com/kestrel-emu/nescore/nes"
	"github.com/kestrel-emu/nescore/ppu"
)

var romFile = flag.String("nes_rom", "", "Path to NES ROM to run.")

func main() {
	flag.Parse()

	rom, err := cartridge.Load(*romFile)
	if err != nil {
		log.Fatalf("Invalid ROM: %v", err)
	}

	console, err := nes.New(rom)
	if err != nil {
		log.Fatalf("Couldn't build console: %v", err)
	}

	console.AttachControllers(&keyboardPad{}, nil)

	g := &game{}
	console.RegisterObserver(g)

	ebiten.SetWindowSize(ppu.FrameWidth*2, ppu.FrameHeight*2)
	ebiten.SetWindowTitle("nescore")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	ctx, cancel := context.WithCancel(context.Background())
	go console.Run(ctx)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}

	cancel()
	os.Exit(0)
}
