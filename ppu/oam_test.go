package ppu

import "testing"

func TestDecodeSprite(t *testing.T) {
	s := decodeSprite([4]uint8{0x10, 0x20, 0b1100_0010, 0x30})
	if s.Y != 0x10 || s.TileID != 0x20 || s.X != 0x30 {
		t.Fatalf("unexpected position/tile fields: %+v", s)
	}
	if s.Palette != 2 {
		t.Fatalf("palette = %d, want 2", s.Palette)
	}
	if s.Priority != BehindBackground {
		t.Fatalf("priority = %v, want BehindBackground", s.Priority)
	}
	if !s.FlipH || !s.FlipV {
		t.Fatalf("FlipH=%v FlipV=%v, want both true", s.FlipH, s.FlipV)
	}
}

func TestSpritesDecodesAll64(t *testing.T) {
	cart := &fakeCart{}
	p := New(cart)
	p.oamAddr = 0
	p.WriteReg(OAMDATA, 0x55) // oam[0].y = 0x55
	sprites := p.Sprites()
	if len(sprites) != 64 {
		t.Fatalf("len(Sprites()) = %d, want 64", len(sprites))
	}
	if sprites[0].Y != 0x55 {
		t.Fatalf("sprites[0].Y = %#02x, want 0x55", sprites[0].Y)
	}
}
