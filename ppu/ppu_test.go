package ppu

import (
	"testing"

	"github.com/kestrel-emu/nescore/cartridge"
)

// fakeCart is a minimal CartBus test double: flat CHR memory and a
// settable mirroring mode.
type fakeCart struct {
	chr       [0x2000]uint8
	mirroring cartridge.Mirroring
}

func (f *fakeCart) ChrRead(addr uint16) uint8       { return f.chr[addr] }
func (f *fakeCart) ChrWrite(addr uint16, val uint8) { f.chr[addr] = val }
func (f *fakeCart) Mirroring() cartridge.Mirroring  { return f.mirroring }

func TestBufferedPPUDataRead(t *testing.T) {
	cart := &fakeCart{}
	p := New(cart)
	cart.chr[0x0010] = 0x42
	cart.chr[0x0011] = 0x99

	// Point PPUADDR at 0x0010.
	p.WriteReg(PPUADDR, 0x00)
	p.WriteReg(PPUADDR, 0x10)

	// The first read returns whatever was buffered before (zero), and
	// primes the buffer with the byte at 0x0010.
	if got := p.ReadReg(PPUDATA); got != 0 {
		t.Fatalf("first PPUDATA read = %#02x, want 0 (buffered)", got)
	}
	if got := p.ReadReg(PPUDATA); got != 0x42 {
		t.Fatalf("second PPUDATA read = %#02x, want 0x42", got)
	}
}

func TestPaletteReadIsNotBuffered(t *testing.T) {
	cart := &fakeCart{}
	p := New(cart)
	p.palette[0] = 0x0F

	p.WriteReg(PPUADDR, 0x3F)
	p.WriteReg(PPUADDR, 0x00)
	if got := p.ReadReg(PPUDATA); got != 0x0F {
		t.Fatalf("palette PPUDATA read = %#02x, want 0x0F (no buffering)", got)
	}
}

func TestVramIncrementModes(t *testing.T) {
	cart := &fakeCart{}
	p := New(cart)
	p.WriteReg(PPUCTRL, 0) // increment by 1
	before := p.v
	p.WriteReg(PPUDATA, 0)
	if p.v != before+1 {
		t.Fatalf("v advanced by %d, want 1", p.v-before)
	}

	p.WriteReg(PPUCTRL, ctrlVRAMIncrement) // increment by 32
	before = p.v
	p.WriteReg(PPUDATA, 0)
	if p.v != before+32 {
		t.Fatalf("v advanced by %d, want 32", p.v-before)
	}
}

func TestStatusReadClearsVblankAndLatch(t *testing.T) {
	cart := &fakeCart{}
	p := New(cart)
	p.nmiOccurred = true
	p.wLatch = true

	status := p.ReadReg(PPUSTATUS)
	if status&statusVblank == 0 {
		t.Fatalf("status read didn't report vblank set")
	}
	if p.nmiOccurred {
		t.Fatalf("nmiOccurred still set after STATUS read")
	}
	if p.wLatch {
		t.Fatalf("write latch still set after STATUS read")
	}
}

func TestVblankSetsNMIAtScanline241Dot1(t *testing.T) {
	cart := &fakeCart{}
	p := New(cart)
	p.WriteReg(PPUCTRL, ctrlGenerateNMI)

	// Advance to scanline 241, dot 1, then one more tick: the vblank
	// flag and NMI line are set on entry to the Tick call that finds
	// that state already current, i.e. the tick just after reaching it.
	for p.scanline != vblankScanline || p.dot != 1 {
		p.Tick()
	}
	p.Tick()
	if !p.PollNMI() {
		t.Fatalf("expected NMI pending at scanline 241 dot 1")
	}
	if !p.InVBlank() {
		t.Fatalf("InVBlank() false during vblank scanlines")
	}
}

func TestNMIRetriggerOnCtrlWriteDuringVblank(t *testing.T) {
	cart := &fakeCart{}
	p := New(cart)

	for p.scanline != vblankScanline || p.dot != 1 {
		p.Tick()
	}
	p.Tick()
	// nmiOutput was off, so no NMI yet even though nmiOccurred latched.
	if p.PollNMI() {
		t.Fatalf("NMI fired with CTRL bit 7 clear")
	}
	// Turning NMI generation on while still inside vblank re-fires it.
	p.WriteReg(PPUCTRL, ctrlGenerateNMI)
	if !p.PollNMI() {
		t.Fatalf("expected NMI retrigger after enabling CTRL bit 7 during vblank")
	}
}

func TestFrameWrapsAtPreRenderLine(t *testing.T) {
	cart := &fakeCart{}
	p := New(cart)
	total := scanlinesPerFrame * dotsPerScanline
	for i := 0; i < total; i++ {
		p.Tick()
	}
	if p.frameCount != 1 {
		t.Fatalf("frameCount = %d, want 1 after one full frame of dots", p.frameCount)
	}
	if p.scanline != preRenderLine {
		t.Fatalf("scanline = %d, want %d after wrap", p.scanline, preRenderLine)
	}
}

func TestFrameBufferFilledWithBackdropColor(t *testing.T) {
	cart := &fakeCart{}
	p := New(cart)
	p.palette[0] = 0x21 // an arbitrary NES palette index

	total := scanlinesPerFrame * dotsPerScanline
	for i := 0; i < total; i++ {
		p.Tick()
	}

	want := SystemPalette[0x21]
	r, g, b, a := p.Frame().At(0, 0).RGBA()
	got := RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
	if got != want || a>>8 != 0xFF {
		t.Fatalf("Frame().At(0,0) = %v, want %v", got, want)
	}
}
