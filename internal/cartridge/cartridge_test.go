package cartridge

import (
	"bytes"
	"testing"
)

func buildROM(prgUnits, chrUnits uint8, flags6, flags7 uint8, prg, chr []uint8) []byte {
	h := make([]byte, 16)
	copy(h, []byte{'N', 'E', 'S', 0x1a})
	h[4] = prgUnits
	h[5] = chrUnits
	h[6] = flags6
	h[7] = flags7

	buf := append([]byte{}, h...)
	buf = append(buf, prg...)
	buf = append(buf, chr...)
	return buf
}

func TestLoadRejectsBadMagic(t *testing.T) {
	if _, err := Load(bytes.NewReader(make([]byte, 32))); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestLoadRejectsNonZeroMapper(t *testing.T) {
	prg := make([]byte, prgUnitSize)
	rom := buildROM(1, 1, 0x10, 0, prg, make([]byte, chrUnitSize))
	if _, err := Load(bytes.NewReader(rom)); err == nil {
		t.Fatal("expected error for mapper != 0")
	}
}

func TestLoad16KiBPRGMirrorsAcrossBothHalves(t *testing.T) {
	prg := make([]byte, prgUnitSize)
	prg[0] = 0xAA
	prg[prgUnitSize-1] = 0xBB
	rom := buildROM(1, 1, 0, 0, prg, make([]byte, chrUnitSize))

	cart, err := Load(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cart.ReadPRG(0x8000); got != 0xAA {
		t.Errorf("ReadPRG(0x8000) = %#02x, want 0xAA", got)
	}
	if got := cart.ReadPRG(0xC000); got != 0xAA {
		t.Errorf("ReadPRG(0xC000) = %#02x, want 0xAA (mirrored)", got)
	}
	if got := cart.ReadPRG(0xFFFF); got != 0xBB {
		t.Errorf("ReadPRG(0xFFFF) = %#02x, want 0xBB", got)
	}
}

func TestLoad32KiBPRGMapsLinearly(t *testing.T) {
	prg := make([]byte, 2*prgUnitSize)
	prg[0] = 0x11
	prg[prgUnitSize] = 0x22
	rom := buildROM(2, 1, 0, 0, prg, make([]byte, chrUnitSize))

	cart, err := Load(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cart.ReadPRG(0x8000); got != 0x11 {
		t.Errorf("ReadPRG(0x8000) = %#02x, want 0x11", got)
	}
	if got := cart.ReadPRG(0xC000); got != 0x22 {
		t.Errorf("ReadPRG(0xC000) = %#02x, want 0x22", got)
	}
}

func TestZeroCHRUnitsMeansRAM(t *testing.T) {
	prg := make([]byte, prgUnitSize)
	rom := buildROM(1, 0, 0, 0, prg, nil)

	cart, err := Load(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cart.WriteCHR(0x0010, 0x42)
	if got := cart.ReadCHR(0x0010); got != 0x42 {
		t.Errorf("CHR RAM write/read round trip: got %#02x, want 0x42", got)
	}
}

func TestCHRROMIsReadOnly(t *testing.T) {
	prg := make([]byte, prgUnitSize)
	chr := make([]byte, chrUnitSize)
	chr[5] = 0x99
	rom := buildROM(1, 1, 0, 0, prg, chr)

	cart, err := Load(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cart.WriteCHR(5, 0x00)
	if got := cart.ReadCHR(5); got != 0x99 {
		t.Errorf("CHR ROM write should be ignored: got %#02x, want 0x99", got)
	}
}

func TestMirroringFlag(t *testing.T) {
	prg := make([]byte, prgUnitSize)
	chr := make([]byte, chrUnitSize)

	vert := buildROM(1, 1, 0x01, 0, prg, chr)
	cart, err := Load(bytes.NewReader(vert))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cart.Mirroring() != MirrorVertical {
		t.Errorf("expected vertical mirroring")
	}

	horiz := buildROM(1, 1, 0x00, 0, prg, chr)
	cart, err = Load(bytes.NewReader(horiz))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cart.Mirroring() != MirrorHorizontal {
		t.Errorf("expected horizontal mirroring")
	}
}

func TestTrainerIsSkipped(t *testing.T) {
	h := make([]byte, 16)
	copy(h, []byte{'N', 'E', 'S', 0x1a})
	h[4] = 1
	h[5] = 1
	h[6] = 0x04 // trainer present

	prg := make([]byte, prgUnitSize)
	prg[0] = 0x7E
	chr := make([]byte, chrUnitSize)

	buf := append([]byte{}, h...)
	buf = append(buf, make([]byte, trainerSize)...)
	buf = append(buf, prg...)
	buf = append(buf, chr...)

	cart, err := Load(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cart.ReadPRG(0x8000); got != 0x7E {
		t.Errorf("ReadPRG(0x8000) = %#02x, want 0x7E after trainer skip", got)
	}
}
