package ppu

import (
	"testing"

	"gones/internal/cartridge"
)

type stubCart struct {
	chr    [0x2000]uint8
	mirror cartridge.Mirror
}

func (c *stubCart) ReadCHR(addr uint16) uint8         { return c.chr[addr&0x1FFF] }
func (c *stubCart) WriteCHR(addr uint16, value uint8) { c.chr[addr&0x1FFF] = value }
func (c *stubCart) Mirroring() cartridge.Mirror       { return c.mirror }

func TestTileDecodeRoundTrip(t *testing.T) {
	for plane0 := 0; plane0 < 256; plane0 += 37 {
		for plane1 := 0; plane1 < 256; plane1 += 53 {
			for dx := 0; dx < 8; dx++ {
				got := tilePixel(uint8(plane0), uint8(plane1), dx)
				shift := uint(7 - dx)
				want := ((uint8(plane1)>>shift)&1)<<1 | (uint8(plane0)>>shift)&1
				if got != want {
					t.Fatalf("tilePixel(%#02x,%#02x,%d) = %d, want %d", plane0, plane1, dx, got, want)
				}
				if got > 3 {
					t.Fatalf("pixel %d out of range", got)
				}
			}
		}
	}
}

func TestNametableMirroringVertical(t *testing.T) {
	cart := &stubCart{mirror: cartridge.MirrorVertical}
	p := New(cart)
	p.WriteVRAM(0x2000, 0x11)
	if got := p.ReadVRAM(0x2800); got != 0x11 {
		t.Errorf("vertical mirroring: $2800 = %#02x, want 0x11", got)
	}
	if got := p.ReadVRAM(0x2400); got == 0x11 {
		t.Errorf("vertical mirroring: $2400 should not alias $2000")
	}
}

func TestNametableMirroringHorizontal(t *testing.T) {
	cart := &stubCart{mirror: cartridge.MirrorHorizontal}
	p := New(cart)
	p.WriteVRAM(0x2000, 0x22)
	if got := p.ReadVRAM(0x2400); got != 0x22 {
		t.Errorf("horizontal mirroring: $2400 = %#02x, want 0x22", got)
	}
	if got := p.ReadVRAM(0x2800); got == 0x22 {
		t.Errorf("horizontal mirroring: $2800 should not alias $2000")
	}
}

func TestPaletteAliasing(t *testing.T) {
	p := New(&stubCart{})
	p.WriteVRAM(0x3F00, 0x0F)
	if got := p.ReadVRAM(0x3F10); got != 0x0F {
		t.Errorf("$3F10 should alias $3F00, got %#02x", got)
	}
	p.WriteVRAM(0x3F10, 0x20)
	if got := p.ReadVRAM(0x3F00); got != 0x20 {
		t.Errorf("write through $3F10 should alias back to $3F00, got %#02x", got)
	}
}

func TestPaletteMirrorsEvery32(t *testing.T) {
	p := New(&stubCart{})
	p.WriteVRAM(0x3F05, 0x07)
	if got := p.ReadVRAM(0x3F25); got != 0x07 {
		t.Errorf("$3F25 should mirror $3F05, got %#02x", got)
	}
}

func setTile(cart *stubCart, index int, plane0, plane1 [8]uint8) {
	base := index * 16
	for i := 0; i < 8; i++ {
		cart.chr[base+i] = plane0[i]
		cart.chr[base+8+i] = plane1[i]
	}
}

func TestRenderFrameBackground(t *testing.T) {
	cart := &stubCart{}
	var allFF, allZero [8]uint8
	for i := range allFF {
		allFF[i] = 0xFF
	}
	setTile(cart, 1, allFF, allZero)

	p := New(cart)
	p.WriteVRAM(0x2000, 1)          // top-left tile = tile index 1
	p.WriteVRAM(0x3F00, 0x0F)       // universal background: black
	p.WriteVRAM(0x3F01, 0x30)       // subpalette 0, entry 1: white

	frame := p.RenderFrame()
	want := masterPalette[0x30]
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := frame[y*frameWidth+x]; got != want {
				t.Fatalf("frame[%d][%d] = %#06x, want %#06x", y, x, got, want)
			}
		}
	}
}

func TestRenderFrameSpriteFlip(t *testing.T) {
	cart := &stubCart{}
	var allFF, allZero [8]uint8
	for i := range allFF {
		allFF[i] = 0xFF
	}
	setTile(cart, 1, allFF, allZero)

	p := New(cart)
	p.WriteVRAM(0x3F11, 0x21) // sprite subpalette 0, entry 1

	p.WriteOAM(0, 0)    // y
	p.WriteOAM(1, 1)    // tile
	p.WriteOAM(2, 0x40) // attrs: horizontal flip
	p.WriteOAM(3, 0)    // x

	frame := p.RenderFrame()
	if got, want := frame[0], masterPalette[0x21]; got != want {
		t.Errorf("sprite pixel (0,0) = %#06x, want %#06x", got, want)
	}
}

func TestSpriteZeroDrawsOnTopOfOtherSprites(t *testing.T) {
	cart := &stubCart{}
	var allFF, allZero [8]uint8
	for i := range allFF {
		allFF[i] = 0xFF
	}
	setTile(cart, 1, allFF, allZero) // pixel index 1, every column
	setTile(cart, 2, allZero, allFF) // pixel index 2, every column

	p := New(cart)
	p.WriteVRAM(0x3F11, 0x21) // subpalette 0 entry 1
	p.WriteVRAM(0x3F12, 0x16) // subpalette 0 entry 2

	// Sprite 1 at (0,0) draws pixel index 1; sprite 0 at the same spot
	// draws pixel index 2 — sprite 0 must win the overlap.
	p.WriteOAM(4, 0)
	p.WriteOAM(5, 1)
	p.WriteOAM(6, 0)
	p.WriteOAM(7, 0)

	p.WriteOAM(0, 0)
	p.WriteOAM(1, 2)
	p.WriteOAM(2, 0)
	p.WriteOAM(3, 0)

	frame := p.RenderFrame()
	if got, want := frame[0], masterPalette[0x16]; got != want {
		t.Errorf("sprite 0 should take priority, got %#06x want %#06x", got, want)
	}
}
