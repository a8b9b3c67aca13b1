// Package bus wires the cartridge, CPU, PPU, and controller latch
// together into one runnable system and drives it one frame at a time.
package bus

import (
	"gones/internal/apu"
	"gones/internal/cartridge"
	"gones/internal/cpu"
	"gones/internal/input"
	"gones/internal/memory"
	"gones/internal/ppu"
)

// cyclesPerFrame is the NTSC CPU-cycle budget for one frame: 341 PPU dots
// x 262 scanlines / 3 = 29780.67, rounded down (about 60.1 Hz against a
// 1.789773 MHz clock).
const cyclesPerFrame = 29780

// System owns every emulated component and advances them together one
// frame at a time, rather than interleaving CPU and PPU cycle-by-cycle.
type System struct {
	Cartridge *cartridge.Cartridge
	Memory    *memory.Memory
	CPU       *cpu.CPU
	PPU       *ppu.PPU
	APU       *apu.APU
	Input     *input.Input
}

// New builds a System around an already-loaded cartridge and resets it
// to its power-up state.
func New(cart *cartridge.Cartridge) *System {
	p := ppu.New(cart)
	a := apu.New()
	in := input.NewInput()
	mem := memory.New(cart, p, a, in)
	c := cpu.New(mem)

	s := &System{
		Cartridge: cart,
		Memory:    mem,
		CPU:       c,
		PPU:       p,
		APU:       a,
		Input:     in,
	}
	s.Reset()
	return s
}

// Reset returns the PPU, APU, controllers, and CPU to their power-up
// state. Work RAM, cartridge SRAM, and the cartridge are left as they are.
func (s *System) Reset() {
	s.PPU.Reset()
	s.APU.Reset()
	s.Input.Reset()
	s.CPU.Reset()
}

// SetButton updates one button on controller 1 or 2.
func (s *System) SetButton(controller int, b input.Button, pressed bool) {
	s.Input.SetButton(controller, b, pressed)
}

// StepFrame runs the CPU until this frame's cycle budget is exhausted,
// folding in any OAM DMA stalls charged along the way, then renders the
// frame and arms the NMI that starts the next one. Pending interrupts
// are only ever serviced at an instruction boundary, inside CPU.Step.
func (s *System) StepFrame() ppu.Frame {
	var executed uint64
	for executed < cyclesPerFrame {
		executed += s.CPU.Step()
		executed += s.Memory.TakeDMACycles()
	}

	frame := s.PPU.RenderFrame()
	s.CPU.TriggerNMI()
	return frame
}
