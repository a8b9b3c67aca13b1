// Package memory implements the CPU-side address decoder: the bus that
// presents the 6502 core with a uniform Read/Write interface over work
// RAM, the cartridge, the controller latch, and the PPU register window,
// and that performs OAM DMA.
package memory

// Cartridge is the subset of cartridge.Cartridge the bus needs.
type Cartridge interface {
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
}

// PPU is the subset of ppu.PPU the bus needs: OAM DMA writes raw sprite
// bytes directly, bypassing the (unimplemented) $2000-$2007 register set.
type PPU interface {
	WriteOAM(index uint8, value uint8)
}

// Input is the subset of input.Input the bus needs.
type Input interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// APU is an inert sink for the sound registers; the APU itself is out of
// scope for this core (see package apu).
type APU interface {
	WriteRegister(address uint16, value uint8)
	ReadStatus() uint8
}

const sramSize = 0x2000

// Memory implements the main CPU memory map described in this core's
// specification: 2 KiB of mirrored work RAM, a stubbed PPU register
// window, the OAM DMA trigger, controller ports, cartridge SRAM, and the
// cartridge's PRG ROM.
type Memory struct {
	ram  [0x0800]uint8
	sram [sramSize]uint8

	cartridge Cartridge
	ppu       PPU
	apu       APU
	input     Input

	// dmaCycles accumulates the cycle cost of OAM DMA transfers so the
	// frame driver can fold it into the CPU's cycle budget, per this
	// core's simplified (non-sub-instruction) timing model.
	dmaCycles uint64
}

// New creates a Memory wired to the given components. ppu and input may
// be nil only in tests that don't exercise those address ranges.
func New(cart Cartridge, ppu PPU, apu APU, input Input) *Memory {
	return &Memory{
		cartridge: cart,
		ppu:       ppu,
		apu:       apu,
		input:     input,
	}
}

// Read implements the CPU's Read side of the memory map. No read has a
// side effect other than advancing a controller's shift register.
func (m *Memory) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return m.ram[addr&0x07FF]
	case addr < 0x4000:
		// PPU register window: simplified away in this core.
		return 0
	case addr == 0x4016 || addr == 0x4017:
		if m.input != nil {
			return m.input.Read(addr)
		}
		return 0
	case addr == 0x4015:
		if m.apu != nil {
			return m.apu.ReadStatus()
		}
		return 0
	case addr < 0x4020:
		return 0
	case addr >= 0x6000 && addr < 0x8000:
		return m.sram[addr-0x6000]
	case addr >= 0x8000:
		return m.cartridge.ReadPRG(addr)
	default:
		return 0
	}
}

// Write implements the CPU's Write side of the memory map.
func (m *Memory) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		m.ram[addr&0x07FF] = value
	case addr < 0x4000:
		// PPU register window: simplified away in this core.
	case addr == 0x4014:
		m.oamDMA(value)
	case addr == 0x4016:
		if m.input != nil {
			m.input.Write(addr, value)
		}
	case addr < 0x4020:
		if m.apu != nil {
			m.apu.WriteRegister(addr, value)
		}
	case addr >= 0x6000 && addr < 0x8000:
		m.sram[addr-0x6000] = value
	case addr >= 0x8000:
		m.cartridge.WritePRG(addr, value)
	}
}

// oamDMA copies the 256 bytes of CPU page page*$100 into sprite OAM, and
// charges a 513-cycle DMA stall to the pending-cycle counter.
func (m *Memory) oamDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		m.ppu.WriteOAM(uint8(i), m.Read(base+uint16(i)))
	}
	m.dmaCycles += 513
}

// TakeDMACycles returns and clears the cycles OAM DMA has charged since
// the last call.
func (m *Memory) TakeDMACycles() uint64 {
	c := m.dmaCycles
	m.dmaCycles = 0
	return c
}
