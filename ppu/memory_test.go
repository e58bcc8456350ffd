package ppu

import (
	"testing"

	"github.com/kestrel-emu/nescore/cartridge"
)

func TestNametableMirroring(t *testing.T) {
	cases := []struct {
		name      string
		mirroring cartridge.Mirroring
		addr      uint16
		want      uint16
	}{
		{"vertical low", cartridge.MirrorVertical, 0x2000, 0x0000},
		{"vertical mirrors to table 0", cartridge.MirrorVertical, 0x2800, 0x0000},
		{"vertical table 1", cartridge.MirrorVertical, 0x2400, 0x0400},
		{"vertical mirrors to table 1", cartridge.MirrorVertical, 0x2C00, 0x0400},
		{"horizontal table 0", cartridge.MirrorHorizontal, 0x2000, 0x0000},
		{"horizontal mirrors to table 0", cartridge.MirrorHorizontal, 0x2400, 0x0000},
		{"horizontal table 1", cartridge.MirrorHorizontal, 0x2800, 0x0400},
		{"horizontal mirrors to table 1", cartridge.MirrorHorizontal, 0x2C00, 0x0400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cart := &fakeCart{mirroring: tc.mirroring}
			p := New(cart)
			if got := p.nametableAddr(tc.addr); got != tc.want {
				t.Errorf("nametableAddr(%#04x) = %#04x, want %#04x", tc.addr, got, tc.want)
			}
		})
	}
}

func TestPaletteMirroring(t *testing.T) {
	cases := []struct {
		addr uint16
		want uint16
	}{
		{0x3F00, 0x00},
		{0x3F10, 0x00}, // background color 0 mirror
		{0x3F14, 0x04},
		{0x3F18, 0x08},
		{0x3F1C, 0x0C},
		{0x3F20, 0x00}, // wraps mod 32
		{0x3F11, 0x11}, // not a mirror slot, passes through
	}
	for _, tc := range cases {
		if got := paletteAddr(tc.addr); got != tc.want {
			t.Errorf("paletteAddr(%#04x) = %#02x, want %#02x", tc.addr, got, tc.want)
		}
	}
}
