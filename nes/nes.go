// Package nes wires a cartridge, its mapper, the bus, CPU and PPU into one
// runnable console, grounded on the teacher's console/machine.go and
// console/bus.go's Run loop.
package nes

import (
	"context"
	"fmt"

	"github.com/kestrel-emu/nescore/bus"
	"github.com/kestrel-emu/nescore/cartridge"
	"github.com/kestrel-emu/nescore/cpu"
	"github.com/kestrel-emu/nescore/mappers"
	"github.com/kestrel-emu/nescore/ppu"
)

// Console owns the whole emulated machine: one cartridge's worth of
// mapped memory, a bus routing the CPU and PPU across it, and the two
// processors themselves.
type Console struct {
	Bus *bus.Bus
	CPU *cpu.CPU
	PPU *ppu.PPU

	mapperName string
}

// New loads rom, resolves its mapper, and wires up a ready-to-run
// console. The CPU has already been reset (PC loaded from the reset
// vector) by the time New returns.
func New(rom *cartridge.ROM) (*Console, error) {
	m, err := mappers.Get(rom)
	if err != nil {
		return nil, fmt.Errorf("nes: resolving mapper: %w", err)
	}

	b := bus.New(m)
	p := ppu.New(b)
	b.AttachPPU(p)
	c := cpu.New(b)
	c.Reset()

	return &Console{Bus: b, CPU: c, PPU: p, mapperName: m.Name()}, nil
}

// AttachControllers forwards to the bus; see bus.Bus.AttachControllers.
func (c *Console) AttachControllers(p1, p2 bus.InputDevice) {
	c.Bus.AttachControllers(p1, p2)
}

// RegisterObserver forwards to the bus; see bus.Bus.RegisterObserver.
func (c *Console) RegisterObserver(o bus.FrameObserver) {
	c.Bus.RegisterObserver(o)
}

// Run steps the CPU to completion until ctx is cancelled. The CPU's own
// System.Tick call (cpu.CPU.Step, into c.Bus.Tick) already advances the
// PPU 3 dots per CPU cycle on every instruction; Run does not tick the
// bus itself, or the PPU would run twice as fast as the CPU.
func (c *Console) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			c.CPU.Step()
		}
	}
}

// Step executes exactly one CPU instruction, returning the number of CPU
// cycles it consumed. The bus (and through it the PPU) is ticked
// internally by CPU.Step, not by Step itself. Used by an interactive
// monitor or tracer driving the machine one instruction at a time
// instead of via Run.
func (c *Console) Step() int {
	return c.CPU.Step()
}

func (c *Console) String() string {
	return fmt.Sprintf("nes{mapper=%s, %s}", c.mapperName, c.CPU)
}
